package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	internalErrors "github.com/gcbaptista/styleguide-search/internal/errors"
	"github.com/gcbaptista/styleguide-search/internal/logger"
	"github.com/gcbaptista/styleguide-search/model"
	"github.com/gcbaptista/styleguide-search/services"
)

// StackSearchRequest defines the body of a stack search; the stack comes from the path.
type StackSearchRequest struct {
	Query      string `json:"query"`
	MaxResults *int   `json:"max_results,omitempty"` // Optional: defaults to 3
}

// SearchHandler handles domain searches, or stack searches when the body names a stack.
// Request Body: services.SearchRequest
func (api *API) SearchHandler(c *gin.Context) {
	startTime := time.Now()

	var req services.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	if result := ValidateSearchRequest(&req, api.maxResultsLimit); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	api.search(c, req, startTime)
}

// StackSearchHandler handles search requests against one stack.
// Request Body: StackSearchRequest
func (api *API) StackSearchHandler(c *gin.Context) {
	startTime := time.Now()
	stack := c.Param("stack")

	if result := ValidateStackName(stack); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	var body StackSearchRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	req := services.SearchRequest{
		Query:      body.Query,
		Stack:      stack,
		MaxResults: body.MaxResults,
	}
	if result := ValidateSearchRequest(&req, api.maxResultsLimit); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	api.search(c, req, startTime)
}

// search runs a validated request, applying the configured default result count.
func (api *API) search(c *gin.Context, req services.SearchRequest, startTime time.Time) {
	if req.MaxResults == nil {
		maxResults := api.defaultMaxResults
		req.MaxResults = &maxResults
	}

	result, err := api.searcher.Search(req)
	api.respond(c, req, startTime, result, err)
}

// respond writes the result bundle and records the search event.
// Unknown domains and stacks are client errors and carry the bundle's error form.
func (api *API) respond(c *gin.Context, req services.SearchRequest, startTime time.Time, result *services.SearchResult, err error) {
	event := model.SearchEvent{
		Kind:         model.SearchKindDomain,
		Selector:     req.Domain,
		Query:        req.Query,
		ResponseTime: time.Since(startTime),
	}
	if req.Stack != "" {
		event.Kind = model.SearchKindStack
		event.Selector = req.Stack
	}

	if err != nil {
		event.Failed = true
		api.analytics.TrackSearchEvent(event)

		if errors.Is(err, internalErrors.ErrUnknownDomain) || errors.Is(err, internalErrors.ErrUnknownStack) {
			c.JSON(http.StatusNotFound, services.NewResultBundle(nil, err))
			return
		}

		logger.FromContext(c.Request.Context()).Error("Search failed",
			zap.String("kind", string(event.Kind)),
			zap.String("selector", event.Selector),
			zap.Error(err),
		)
		SendSearchError(c, event.Selector, err)
		return
	}

	event.Selector = result.Selector()
	event.AutoDetected = result.AutoDetected
	event.ResultCount = result.Count
	api.analytics.TrackSearchEvent(event)

	c.JSON(http.StatusOK, services.NewResultBundle(result, nil))
}
