package config

// DefaultDomainName is the domain searched when nothing in a query points elsewhere.
const DefaultDomainName = "styles"

// DefaultRegistrySettings returns the built-in domain and stack table.
// Each call returns a fresh copy.
func DefaultRegistrySettings() RegistrySettings {
	return RegistrySettings{
		DefaultDomain: DefaultDomainName,
		Domains: []CollectionSettings{
			{
				Name:         "styles",
				File:         "styles.csv",
				SearchFields: []string{"Style Category", "Type", "Keywords"},
				OutputFields: []string{"Style Category", "Type", "Keywords", "Primary Colors", "Secondary Colors", "Effects & Animation", "Best For", "Light Mode ✓", "Dark Mode ✓", "Framework Compatibility"},
			},
			{
				Name:         "prompts",
				File:         "prompts.csv",
				SearchFields: []string{"Style Category", "AI Prompt Keywords (Copy-Paste Ready)", "CSS/Technical Keywords"},
				OutputFields: []string{"Style Category", "AI Prompt Keywords (Copy-Paste Ready)", "CSS/Technical Keywords", "Implementation Checklist", "Design System Variables"},
			},
			{
				Name:         "colors",
				File:         "colors.csv",
				SearchFields: []string{"Product Type", "Keywords"},
				OutputFields: []string{"Product Type", "Primary (Hex)", "Secondary (Hex)", "CTA (Hex)", "Background (Hex)", "Text (Hex)", "Border (Hex)", "Notes"},
			},
			{
				Name:         "charts",
				File:         "charts.csv",
				SearchFields: []string{"Data Type", "Keywords"},
				OutputFields: []string{"Data Type", "Best Chart Type", "Secondary Options", "Color Guidance", "Library Recommendation", "Interactive Level"},
			},
			{
				Name:         "landing",
				File:         "landing.csv",
				SearchFields: []string{"Pattern Name", "Keywords"},
				OutputFields: []string{"Pattern Name", "Section Order", "Primary CTA Placement", "Color Strategy", "Recommended Effects", "Conversion Optimization"},
			},
			{
				Name:         "products",
				File:         "products.csv",
				SearchFields: []string{"Product Type", "Keywords"},
				OutputFields: []string{"Product Type", "Primary Style", "Secondary Style", "Landing Pattern", "Dashboard Style", "Color Palette", "Key Considerations"},
			},
			{
				Name:         "ux",
				File:         "ux-guidelines.csv",
				SearchFields: []string{"Category", "Issue", "Description"},
				OutputFields: []string{"Category", "Issue", "Platform", "Description", "Do", "Don't", "Code Example Good", "Code Example Bad", "Severity"},
			},
			{
				Name:         "typography",
				File:         "typography.csv",
				SearchFields: []string{"Font Pairing Name", "Category", "Mood/Style Keywords", "Best For"},
				OutputFields: []string{"Font Pairing Name", "Heading Font", "Body Font", "Mood/Style Keywords", "Best For", "CSS Import", "Tailwind Config"},
			},
		},
		StackSchema: StackSchema{
			Dir:          "stacks",
			SearchFields: []string{"Category", "Guideline", "Description"},
			OutputFields: []string{"Category", "Guideline", "Description", "Do", "Don't", "Code Good", "Code Bad", "Severity"},
		},
		Stacks: []StackSettings{
			{Name: "html-tailwind", File: "html-tailwind.csv"},
			{Name: "react", File: "react.csv"},
			{Name: "nextjs", File: "nextjs.csv"},
			{Name: "vue", File: "vue.csv"},
			{Name: "svelte", File: "svelte.csv"},
			{Name: "swiftui", File: "swiftui.csv"},
			{Name: "react-native", File: "react-native.csv"},
			{Name: "flutter", File: "flutter.csv"},
		},
		// Declaration order is the tie-break order for auto-detection
		Detection: []DomainKeywords{
			{Domain: "styles", Keywords: []string{"glassmorphism", "neumorphism", "brutalism", "minimal", "dark mode", "style", "aesthetic", "ui style"}},
			{Domain: "colors", Keywords: []string{"color", "palette", "hex", "primary", "secondary", "theme"}},
			{Domain: "typography", Keywords: []string{"font", "typography", "typeface", "heading", "body text", "pairing"}},
			{Domain: "charts", Keywords: []string{"chart", "graph", "visualization", "data", "dashboard", "analytics"}},
			{Domain: "landing", Keywords: []string{"landing", "page", "hero", "cta", "conversion", "section"}},
			{Domain: "products", Keywords: []string{"saas", "ecommerce", "portfolio", "healthcare", "fintech", "product type"}},
			{Domain: "ux", Keywords: []string{"ux", "accessibility", "a11y", "animation", "loading", "error", "best practice"}},
			{Domain: "prompts", Keywords: []string{"prompt", "ai", "css", "implementation"}},
		},
	}
}
