// Package format renders search results for terminal and agent consumption.
package format

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gcbaptista/styleguide-search/services"
)

// MaxValueLength is the number of characters a field value is shown with
// before it is cut and suffixed with "...".
const MaxValueLength = 300

// Markdown renders a result bundle as markdown.
// A bundle carrying an error renders as a single "Error: <message>" line.
// Fields with empty values are skipped.
func Markdown(bundle services.ResultBundle) string {
	if bundle.Error != "" {
		return "Error: " + bundle.Error
	}
	if bundle.SearchResult == nil {
		return ""
	}

	result := bundle.SearchResult
	var lines []string

	if result.IsStack() {
		lines = append(lines, "## Stack: "+result.Stack)
	} else {
		lines = append(lines, "## Domain: "+result.Domain)
	}
	lines = append(lines,
		"Query: "+result.Query,
		fmt.Sprintf("Results: %d", result.Count),
		"",
	)

	for i, record := range result.Results {
		lines = append(lines, fmt.Sprintf("### Result %d", i+1))
		for _, field := range record {
			if field.Value == "" {
				continue
			}
			lines = append(lines, fmt.Sprintf("- **%s**: %s", field.Name, truncate(field.Value, MaxValueLength)))
		}
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}

// truncate cuts s to at most limit runes and marks the cut.
func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit]) + "..."
}
