package analytics

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gcbaptista/styleguide-search/model"
)

const (
	maxEventsToKeep    = 10000 // Keep last 10k events for performance
	maxPopularSearches = 5
)

// Service implements in-memory analytics tracking and reporting
type Service struct {
	mutex  sync.RWMutex
	events []model.SearchEvent
	now    func() time.Time
}

// NewService creates a new analytics service
func NewService() *Service {
	return &Service{
		events: make([]model.SearchEvent, 0),
		now:    time.Now,
	}
}

// TrackSearchEvent records a new search event, assigning its ID and timestamp
func (s *Service) TrackSearchEvent(event model.SearchEvent) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	event.ID = uuid.New().String()
	event.Timestamp = s.now()
	s.events = append(s.events, event)

	// Keep only the latest events to prevent unbounded growth
	if len(s.events) > maxEventsToKeep {
		s.events = s.events[len(s.events)-maxEventsToKeep:]
	}
}

// Events returns a copy of the retained events, oldest first
func (s *Service) Events() []model.SearchEvent {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	events := make([]model.SearchEvent, len(s.events))
	copy(events, s.events)
	return events
}

// Summary aggregates the retained events
func (s *Service) Summary() model.AnalyticsSummary {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	summary := model.AnalyticsSummary{
		TotalSearches:   len(s.events),
		PopularSearches: s.getPopularSearches(),
		SelectorUsage:   s.getSelectorUsage(),
	}
	if len(s.events) == 0 {
		return summary
	}

	var total time.Duration
	zeroResults := 0
	for _, event := range s.events {
		total += event.ResponseTime
		if event.Failed {
			summary.FailedSearches++
			continue
		}
		if event.AutoDetected {
			summary.AutoDetected++
		}
		if event.ResultCount == 0 {
			zeroResults++
		}
	}

	if succeeded := len(s.events) - summary.FailedSearches; succeeded > 0 {
		summary.ZeroResultRate = float64(zeroResults) / float64(succeeded)
	}
	summary.AvgResponseTime = (total / time.Duration(len(s.events))).Microseconds()

	last := s.events[len(s.events)-1].Timestamp
	summary.LastSearchAt = &last

	return summary
}

// getPopularSearches returns the most frequent queries, most searched first.
// Ties keep the order in which queries were first seen.
func (s *Service) getPopularSearches() []model.PopularSearch {
	counts := make(map[string]int)
	var order []string

	for _, event := range s.events {
		if event.Query == "" {
			continue
		}
		if _, seen := counts[event.Query]; !seen {
			order = append(order, event.Query)
		}
		counts[event.Query]++
	}

	popular := make([]model.PopularSearch, 0, len(order))
	for _, query := range order {
		popular = append(popular, model.PopularSearch{Query: query, SearchCount: counts[query]})
	}

	sort.SliceStable(popular, func(i, j int) bool {
		return popular[i].SearchCount > popular[j].SearchCount
	})

	if len(popular) > maxPopularSearches {
		popular = popular[:maxPopularSearches]
	}
	return popular
}

// getSelectorUsage returns per-domain and per-stack counts in first-seen order.
// Failed searches are not attributed to a selector.
func (s *Service) getSelectorUsage() []model.SelectorUsage {
	type key struct {
		kind     model.SearchKind
		selector string
	}

	index := make(map[key]int)
	usage := make([]model.SelectorUsage, 0)

	for _, event := range s.events {
		if event.Failed || event.Selector == "" {
			continue
		}
		k := key{kind: event.Kind, selector: event.Selector}
		i, ok := index[k]
		if !ok {
			i = len(usage)
			index[k] = i
			usage = append(usage, model.SelectorUsage{Kind: event.Kind, Selector: event.Selector})
		}
		usage[i].SearchCount++
		if event.ResultCount == 0 {
			usage[i].ZeroResults++
		}
	}

	return usage
}
