// Package engine routes queries to style-guide collections and ranks their records.
package engine

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/gcbaptista/styleguide-search/config"
	"github.com/gcbaptista/styleguide-search/internal/errors"
	"github.com/gcbaptista/styleguide-search/internal/metrics"
	"github.com/gcbaptista/styleguide-search/internal/search"
	"github.com/gcbaptista/styleguide-search/model"
	"github.com/gcbaptista/styleguide-search/services"
	"github.com/gcbaptista/styleguide-search/store"
)

const (
	kindDomain = string(model.SearchKindDomain)
	kindStack  = string(model.SearchKindStack)
)

// Engine resolves a domain or stack to its collection, indexes the collection
// and ranks it against the query. It implements the services.Searcher interface.
//
// An Engine holds no mutable state: every search loads its records and builds
// a fresh index, so it is safe for concurrent use.
type Engine struct {
	registry *config.Registry
	provider store.Provider
	logger   *zap.Logger
	metrics  *metrics.Metrics
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for search diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMetrics enables Prometheus instrumentation.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// NewEngine creates an engine over the registry's collections, read through provider.
func NewEngine(registry *config.Registry, provider store.Provider, opts ...Option) *Engine {
	e := &Engine{
		registry: registry,
		provider: provider,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Registry returns the registry the engine routes with.
func (e *Engine) Registry() *config.Registry {
	return e.registry
}

// Search dispatches the request: a stack search when Stack is set, a domain search otherwise.
func (e *Engine) Search(req services.SearchRequest) (*services.SearchResult, error) {
	maxResults := search.DefaultTopK
	if req.MaxResults != nil {
		maxResults = *req.MaxResults
	}

	if req.Stack != "" {
		return e.SearchStack(req.Query, req.Stack, maxResults)
	}
	return e.SearchDomain(req.Query, req.Domain, maxResults)
}

// SearchDomain searches a domain collection. An empty domain is auto-detected from the query.
func (e *Engine) SearchDomain(query, domain string, maxResults int) (*services.SearchResult, error) {
	start := time.Now()

	autoDetected := false
	if domain == "" {
		domain = e.DetectDomain(query)
		autoDetected = true
	}

	settings, ok := e.registry.Domain(domain)
	if !ok {
		e.metrics.ObserveSearch(kindDomain, "", metrics.OutcomeUnknown, time.Since(start), 0)
		return nil, errors.NewUnknownDomainError(domain, e.registry.DomainNames())
	}

	results, err := e.searchCollection(kindDomain, query, settings, maxResults, start)
	if err != nil {
		return nil, err
	}

	return &services.SearchResult{
		Domain:       domain,
		Query:        query,
		Results:      results,
		Count:        len(results),
		AutoDetected: autoDetected,
	}, nil
}

// SearchStack searches a technology stack's guidelines. The stack must be given explicitly.
func (e *Engine) SearchStack(query, stack string, maxResults int) (*services.SearchResult, error) {
	start := time.Now()

	settings, ok := e.registry.Stack(stack)
	if !ok {
		e.metrics.ObserveSearch(kindStack, "", metrics.OutcomeUnknown, time.Since(start), 0)
		return nil, errors.NewUnknownStackError(stack, e.registry.StackNames())
	}

	results, err := e.searchCollection(kindStack, query, settings, maxResults, start)
	if err != nil {
		return nil, err
	}

	return &services.SearchResult{
		Stack:   stack,
		Query:   query,
		Results: results,
		Count:   len(results),
	}, nil
}

// searchCollection loads, indexes and ranks one collection, and projects the hits.
func (e *Engine) searchCollection(kind, query string, settings config.CollectionSettings, maxResults int, start time.Time) ([]model.OutputRecord, error) {
	records, err := e.provider.Load(settings.File)
	if err != nil {
		e.logger.Error("Failed to load collection",
			zap.String("kind", kind),
			zap.String("collection", settings.Name),
			zap.String("source", settings.File),
			zap.Error(err),
		)
		e.metrics.ObserveSearch(kind, settings.Name, metrics.OutcomeError, time.Since(start), 0)
		return nil, fmt.Errorf("failed to load %s '%s': %w", kind, settings.Name, err)
	}

	results := make([]model.OutputRecord, 0)
	if len(records) > 0 {
		idx := search.Build(BuildCorpus(records, settings.SearchFields))
		for _, hit := range idx.Rank(query, maxResults) {
			results = append(results, records[hit.DocIndex].Project(settings.OutputFields))
		}
	}

	outcome := metrics.OutcomeHit
	if len(results) == 0 {
		outcome = metrics.OutcomeEmpty
	}
	e.metrics.ObserveCorpus(kind, settings.Name, len(records))
	e.metrics.ObserveSearch(kind, settings.Name, outcome, time.Since(start), len(results))

	e.logger.Debug("Search completed",
		zap.String("kind", kind),
		zap.String("collection", settings.Name),
		zap.String("query", query),
		zap.Int("documents", len(records)),
		zap.Int("results", len(results)),
		zap.Duration("took", time.Since(start)),
	)

	return results, nil
}
