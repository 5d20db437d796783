package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gcbaptista/styleguide-search/config"
	"github.com/gcbaptista/styleguide-search/internal/analytics"
	"github.com/gcbaptista/styleguide-search/services"
)

// API holds dependencies for API handlers, primarily the searcher.
type API struct {
	searcher          services.Searcher
	analytics         *analytics.Service
	defaultMaxResults int
	maxResultsLimit   int
}

// NewAPI creates a new API handler structure.
func NewAPI(searcher services.Searcher, searchConfig config.SearchConfig) *API {
	searchConfig.ApplyDefaults()
	return &API{
		searcher:          searcher,
		analytics:         analytics.NewService(),
		defaultMaxResults: searchConfig.DefaultMaxResults,
		maxResultsLimit:   searchConfig.MaxResultsLimit,
	}
}

// SetupRoutes defines all the API routes for the style-guide search engine.
func SetupRoutes(router *gin.Engine, searcher services.Searcher, searchConfig config.SearchConfig) {
	apiHandler := NewAPI(searcher, searchConfig)

	// Health check route
	router.GET("/health", apiHandler.HealthCheckHandler)

	// Analytics route
	router.GET("/analytics", apiHandler.GetAnalyticsHandler)

	// Registry routes
	router.GET("/domains", apiHandler.ListDomainsHandler)
	router.GET("/detect", apiHandler.DetectDomainHandler)

	// Search routes
	router.POST("/search", apiHandler.SearchHandler)

	stackRoutes := router.Group("/stacks")
	{
		stackRoutes.GET("", apiHandler.ListStacksHandler)                  // List all stacks
		stackRoutes.POST("/:stack/_search", apiHandler.StackSearchHandler) // Search one stack's guidelines
	}
}

// SetupMetricsRoute exposes the collectors registered with gatherer on /metrics.
func SetupMetricsRoute(router *gin.Engine, gatherer prometheus.Gatherer) {
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
}

// HealthCheckHandler provides a simple health check endpoint
func (api *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "styleguide-search",
		"timestamp": fmt.Sprintf("%d", time.Now().Unix()),
	})
}

// ListDomainsHandler lists the registered domains in declaration order.
func (api *API) ListDomainsHandler(c *gin.Context) {
	registry := api.searcher.Registry()
	c.JSON(http.StatusOK, gin.H{
		"domains":        registry.Domains(),
		"default_domain": registry.DefaultDomain(),
	})
}

// ListStacksHandler lists the registered stacks in declaration order.
func (api *API) ListStacksHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"stacks": api.searcher.Registry().Stacks(),
	})
}

// DetectDomainHandler reports the domain a query would be routed to.
// Query parameter: q
func (api *API) DetectDomainHandler(c *gin.Context) {
	query := c.Query("q")
	if strings.TrimSpace(query) == "" {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidQuery, "Query parameter 'q' is required")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query":  query,
		"domain": api.searcher.DetectDomain(query),
	})
}
