// Package config provides the collection registry and application configuration.
// It defines which collections can be searched, which fields are searchable
// and which are returned, and the keywords used to guess a domain from a query.
package config

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/gcbaptista/styleguide-search/internal/errors"
)

// CollectionSettings describes one searchable collection.
// SearchFields are concatenated to build the text that is scored;
// OutputFields are the subset of a record returned to the caller, in order.
type CollectionSettings struct {
	Name         string   `yaml:"name" json:"name"`
	File         string   `yaml:"file" json:"file"` // Source identifier handed to the collection provider
	SearchFields []string `yaml:"search_fields" json:"search_fields"`
	OutputFields []string `yaml:"output_fields" json:"output_fields"`
}

// StackSchema is the field schema shared by every stack collection.
type StackSchema struct {
	Dir          string   `yaml:"dir"`
	SearchFields []string `yaml:"search_fields"`
	OutputFields []string `yaml:"output_fields"`
}

// StackSettings names a stack and its source file, relative to StackSchema.Dir.
type StackSettings struct {
	Name string `yaml:"name"`
	File string `yaml:"file"`
}

// DomainKeywords lists the substrings that point a query at a domain.
type DomainKeywords struct {
	Domain   string   `yaml:"domain" json:"domain"`
	Keywords []string `yaml:"keywords" json:"keywords"`
}

// RegistrySettings is the serializable form of a Registry.
//
// IMPORTANT: order matters. Domains and stacks are listed in declaration order,
// and Detection order breaks ties during domain auto-detection.
type RegistrySettings struct {
	DefaultDomain string               `yaml:"default_domain"`
	Domains       []CollectionSettings `yaml:"domains"`
	StackSchema   StackSchema          `yaml:"stack_schema"`
	Stacks        []StackSettings      `yaml:"stacks"`
	Detection     []DomainKeywords     `yaml:"detection"`
}

// Registry is the immutable, process-wide table of domains and stacks.
// All accessors return copies, so a Registry can be shared freely between goroutines.
type Registry struct {
	defaultDomain string
	domains       []CollectionSettings
	stacks        []CollectionSettings
	detection     []DomainKeywords
	domainIndex   map[string]int
	stackIndex    map[string]int
}

// NewRegistry validates the settings and builds a frozen Registry from them.
func NewRegistry(settings RegistrySettings) (*Registry, error) {
	settings.ApplyDefaults()
	if conflicts := settings.Validate(); len(conflicts) > 0 {
		return nil, errors.NewValidationError("registry", strings.Join(conflicts, "; "))
	}

	reg := &Registry{
		defaultDomain: settings.DefaultDomain,
		domains:       make([]CollectionSettings, 0, len(settings.Domains)),
		stacks:        make([]CollectionSettings, 0, len(settings.Stacks)),
		detection:     make([]DomainKeywords, 0, len(settings.Detection)),
		domainIndex:   make(map[string]int, len(settings.Domains)),
		stackIndex:    make(map[string]int, len(settings.Stacks)),
	}

	for _, domain := range settings.Domains {
		reg.domainIndex[domain.Name] = len(reg.domains)
		reg.domains = append(reg.domains, domain.clone())
	}

	for _, stack := range settings.Stacks {
		reg.stackIndex[stack.Name] = len(reg.stacks)
		reg.stacks = append(reg.stacks, CollectionSettings{
			Name:         stack.Name,
			File:         path.Join(settings.StackSchema.Dir, stack.File),
			SearchFields: cloneStrings(settings.StackSchema.SearchFields),
			OutputFields: cloneStrings(settings.StackSchema.OutputFields),
		})
	}

	for _, dk := range settings.Detection {
		keywords := make([]string, len(dk.Keywords))
		for i, kw := range dk.Keywords {
			keywords[i] = strings.ToLower(kw)
		}
		reg.detection = append(reg.detection, DomainKeywords{Domain: dk.Domain, Keywords: keywords})
	}

	return reg, nil
}

// DefaultRegistry returns the built-in registry. It is constructed exactly once.
var DefaultRegistry = sync.OnceValue(func() *Registry {
	reg, err := NewRegistry(DefaultRegistrySettings())
	if err != nil {
		panic(fmt.Sprintf("built-in registry is invalid: %v", err))
	}
	return reg
})

// LoadRegistry reads registry settings from a YAML file. Sections left out of
// the file fall back to the built-in defaults.
func LoadRegistry(filePath string) (*Registry, error) {
	data, err := os.ReadFile(filepath.Clean(filePath))
	if err != nil {
		return nil, fmt.Errorf("failed to read registry %s: %w", filePath, err)
	}

	var settings RegistrySettings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse registry %s: %w", filePath, err)
	}

	reg, err := NewRegistry(settings)
	if err != nil {
		return nil, fmt.Errorf("invalid registry %s: %w", filePath, err)
	}
	return reg, nil
}

// ApplyDefaults fills empty sections with the built-in defaults.
func (s *RegistrySettings) ApplyDefaults() {
	defaults := DefaultRegistrySettings()

	if len(s.Domains) == 0 {
		s.Domains = defaults.Domains
		// Built-in keywords only make sense for built-in domains
		if s.Detection == nil {
			s.Detection = defaults.Detection
		}
		if s.DefaultDomain == "" {
			s.DefaultDomain = defaults.DefaultDomain
		}
	}
	if s.DefaultDomain == "" && len(s.Domains) > 0 {
		s.DefaultDomain = s.Domains[0].Name
	}

	if len(s.Stacks) == 0 {
		s.Stacks = defaults.Stacks
	}
	if s.StackSchema.Dir == "" {
		s.StackSchema.Dir = defaults.StackSchema.Dir
	}
	if len(s.StackSchema.SearchFields) == 0 {
		s.StackSchema.SearchFields = defaults.StackSchema.SearchFields
	}
	if len(s.StackSchema.OutputFields) == 0 {
		s.StackSchema.OutputFields = defaults.StackSchema.OutputFields
	}

	// Initialize empty slices if nil
	if s.Detection == nil {
		s.Detection = []DomainKeywords{}
	}
}

// Validate returns a list of problems with the settings; an empty list means valid.
func (s *RegistrySettings) Validate() []string {
	var conflicts []string

	domainNames := make([]string, 0, len(s.Domains))
	for _, domain := range s.Domains {
		domainNames = append(domainNames, domain.Name)
		conflicts = append(conflicts, domain.validate("domain")...)
	}
	conflicts = append(conflicts, checkDuplicates("domains", domainNames)...)

	stackNames := make([]string, 0, len(s.Stacks))
	for _, stack := range s.Stacks {
		stackNames = append(stackNames, stack.Name)
		if strings.TrimSpace(stack.Name) == "" {
			conflicts = append(conflicts, "Stack name cannot be empty or whitespace-only")
		}
		if strings.TrimSpace(stack.File) == "" {
			conflicts = append(conflicts, "Stack '"+stack.Name+"' has no file")
		}
	}
	conflicts = append(conflicts, checkDuplicates("stacks", stackNames)...)

	if len(s.Stacks) > 0 && len(s.StackSchema.SearchFields) == 0 {
		conflicts = append(conflicts, "stack_schema.search_fields cannot be empty")
	}
	conflicts = append(conflicts, checkDuplicates("stack_schema.search_fields", s.StackSchema.SearchFields)...)
	conflicts = append(conflicts, checkDuplicates("stack_schema.output_fields", s.StackSchema.OutputFields)...)

	// Validate field references across configurations
	registered := make(map[string]bool, len(domainNames))
	for _, name := range domainNames {
		registered[name] = true
	}

	if !registered[s.DefaultDomain] {
		conflicts = append(conflicts, "Default domain '"+s.DefaultDomain+"' is not a registered domain")
	}

	detectionDomains := make([]string, 0, len(s.Detection))
	for _, dk := range s.Detection {
		detectionDomains = append(detectionDomains, dk.Domain)
		if !registered[dk.Domain] {
			conflicts = append(conflicts, "Detection domain '"+dk.Domain+"' is not a registered domain")
		}
		for _, kw := range dk.Keywords {
			if kw == "" {
				conflicts = append(conflicts, "Detection domain '"+dk.Domain+"' has an empty keyword")
			}
		}
	}
	conflicts = append(conflicts, checkDuplicates("detection", detectionDomains)...)

	return conflicts
}

func (c CollectionSettings) validate(kind string) []string {
	var errors []string

	if strings.TrimSpace(c.Name) == "" {
		errors = append(errors, strings.ToUpper(kind[:1])+kind[1:]+" name cannot be empty or whitespace-only")
	}
	if strings.TrimSpace(c.File) == "" {
		errors = append(errors, kind+" '"+c.Name+"' has no file")
	}
	if len(c.SearchFields) == 0 {
		errors = append(errors, kind+" '"+c.Name+"' has no search_fields")
	}

	errors = append(errors, checkDuplicates(kind+" '"+c.Name+"' search_fields", c.SearchFields)...)
	errors = append(errors, checkDuplicates(kind+" '"+c.Name+"' output_fields", c.OutputFields)...)

	for _, field := range append(cloneStrings(c.SearchFields), c.OutputFields...) {
		if strings.TrimSpace(field) == "" {
			errors = append(errors, "Field name cannot be empty or whitespace-only in "+kind+" '"+c.Name+"'")
		}
	}

	return errors
}

// checkDuplicates checks for duplicate values in a slice and returns error messages
func checkDuplicates(fieldName string, fields []string) []string {
	var errors []string
	seen := make(map[string]bool)

	for _, field := range fields {
		if seen[field] {
			errors = append(errors, "Duplicate '"+field+"' found in "+fieldName)
		}
		seen[field] = true
	}

	return errors
}

// Domain returns the collection registered under the domain name.
func (r *Registry) Domain(name string) (CollectionSettings, bool) {
	i, ok := r.domainIndex[name]
	if !ok {
		return CollectionSettings{}, false
	}
	return r.domains[i].clone(), true
}

// Stack returns the collection registered under the stack name.
func (r *Registry) Stack(name string) (CollectionSettings, bool) {
	i, ok := r.stackIndex[name]
	if !ok {
		return CollectionSettings{}, false
	}
	return r.stacks[i].clone(), true
}

// Domains returns every domain collection in declaration order.
func (r *Registry) Domains() []CollectionSettings {
	return cloneCollections(r.domains)
}

// Stacks returns every stack collection in declaration order.
func (r *Registry) Stacks() []CollectionSettings {
	return cloneCollections(r.stacks)
}

// DomainNames returns the registered domain names in declaration order.
func (r *Registry) DomainNames() []string {
	return collectionNames(r.domains)
}

// StackNames returns the registered stack names in declaration order.
func (r *Registry) StackNames() []string {
	return collectionNames(r.stacks)
}

// DefaultDomain is the domain used when auto-detection finds no keyword.
func (r *Registry) DefaultDomain() string {
	return r.defaultDomain
}

// Detection returns the lowercase detection keywords in tie-break order.
func (r *Registry) Detection() []DomainKeywords {
	out := make([]DomainKeywords, len(r.detection))
	for i, dk := range r.detection {
		out[i] = DomainKeywords{Domain: dk.Domain, Keywords: cloneStrings(dk.Keywords)}
	}
	return out
}

func (c CollectionSettings) clone() CollectionSettings {
	c.SearchFields = cloneStrings(c.SearchFields)
	c.OutputFields = cloneStrings(c.OutputFields)
	return c
}

func cloneCollections(in []CollectionSettings) []CollectionSettings {
	out := make([]CollectionSettings, len(in))
	for i, c := range in {
		out[i] = c.clone()
	}
	return out
}

func collectionNames(in []CollectionSettings) []string {
	names := make([]string, len(in))
	for i, c := range in {
		names[i] = c.Name
	}
	return names
}

func cloneStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
