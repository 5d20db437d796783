package model

import "time"

// SearchKind distinguishes domain searches from stack searches
type SearchKind string

const (
	SearchKindDomain SearchKind = "domain"
	SearchKindStack  SearchKind = "stack"
)

// SearchEvent represents a single search event for analytics tracking
type SearchEvent struct {
	ID           string        `json:"id"`
	Kind         SearchKind    `json:"kind"`
	Selector     string        `json:"selector"`      // Resolved domain or stack name
	AutoDetected bool          `json:"auto_detected"` // Domain was inferred from the query
	Query        string        `json:"query"`
	ResponseTime time.Duration `json:"response_time"`
	ResultCount  int           `json:"result_count"`
	Failed       bool          `json:"failed"`
	Timestamp    time.Time     `json:"timestamp"`
}

// PopularSearch represents aggregated data for popular search terms
type PopularSearch struct {
	Query       string `json:"query"`
	SearchCount int    `json:"search_count"`
}

// SelectorUsage represents how often a domain or stack was searched
type SelectorUsage struct {
	Kind        SearchKind `json:"kind"`
	Selector    string     `json:"selector"`
	SearchCount int        `json:"search_count"`
	ZeroResults int        `json:"zero_results"`
}

// AnalyticsSummary represents the aggregated analytics data
type AnalyticsSummary struct {
	TotalSearches   int             `json:"total_searches"`
	FailedSearches  int             `json:"failed_searches"`
	AutoDetected    int             `json:"auto_detected"`
	ZeroResultRate  float64         `json:"zero_result_rate"`
	AvgResponseTime int64           `json:"avg_response_time"` // in microseconds
	PopularSearches []PopularSearch `json:"popular_searches"`
	SelectorUsage   []SelectorUsage `json:"selector_usage"`
	LastSearchAt    *time.Time      `json:"last_search_at,omitempty"`
}
