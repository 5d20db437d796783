package services

import (
	"github.com/gcbaptista/styleguide-search/config"
	"github.com/gcbaptista/styleguide-search/model"
)

// SearchRequest is a caller-facing query.
// When Stack is set it takes priority over Domain; an empty Domain is auto-detected.
type SearchRequest struct {
	Query      string `json:"query"`
	Domain     string `json:"domain,omitempty"`
	Stack      string `json:"stack,omitempty"`
	MaxResults *int   `json:"max_results,omitempty"` // Optional: defaults to 3; values <= 0 return no results
}

// SearchResult is the outcome of a successful search.
// Exactly one of Domain and Stack is set.
type SearchResult struct {
	Domain       string               `json:"domain,omitempty"`
	Stack        string               `json:"stack,omitempty"`
	Query        string               `json:"query"`
	Results      []model.OutputRecord `json:"results"`
	Count        int                  `json:"count"`
	AutoDetected bool                 `json:"-"` // Domain was inferred from the query
}

// Selector returns the resolved domain or stack name.
func (r *SearchResult) Selector() string {
	if r.Stack != "" {
		return r.Stack
	}
	return r.Domain
}

// IsStack reports whether the result came from a stack search.
func (r *SearchResult) IsStack() bool {
	return r.Stack != ""
}

// ResultBundle is either a search result or an error message, never both.
type ResultBundle struct {
	*SearchResult
	Error string `json:"error,omitempty"`
}

// NewResultBundle wraps the outcome of a search call.
func NewResultBundle(result *SearchResult, err error) ResultBundle {
	if err != nil {
		return ResultBundle{Error: err.Error()}
	}
	return ResultBundle{SearchResult: result}
}

// Searcher defines operations for querying the style-guide collections
type Searcher interface {
	Search(req SearchRequest) (*SearchResult, error)
	SearchDomain(query, domain string, maxResults int) (*SearchResult, error)
	SearchStack(query, stack string, maxResults int) (*SearchResult, error)
	DetectDomain(query string) string
	Registry() *config.Registry
}
