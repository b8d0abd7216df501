package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gangulr/finace/internal/services"
)

// SummaryHandler serves per-user totals.
type SummaryHandler struct {
	summaryService services.SummaryServicer
	access         Access
}

// NewSummaryHandler creates a new SummaryHandler.
func NewSummaryHandler(summaryService services.SummaryServicer, access Access) *SummaryHandler {
	return &SummaryHandler{summaryService: summaryService, access: access}
}

// GetSummary returns a user's totals and per-category breakdown.
// @Summary     Get a user's summary
// @Description Totals budgeted, spent and received, the balance, and per-category sums
// @Tags        summary
// @Produce     json
// @Param       userId path     string true "Owner id"
// @Success     200    {object} services.Summary "Summary"
// @Failure     403    {object} ErrorResponse "Forbidden"
// @Failure     500    {object} ErrorResponse "Server error"
// @Router      /summary/{userId} [get]
func (h *SummaryHandler) GetSummary(c *gin.Context) {
	userID, err := h.access.owner(c, c.Param("userId"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.summaryService.GetSummary(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthResponse is the body of the health check.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Store  string `json:"store" example:"ok"`
}

// HealthHandler reports service health.
type HealthHandler struct {
	store Pinger
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(store Pinger) *HealthHandler {
	return &HealthHandler{store: store}
}

// Health checks the store connection.
// @Summary     Health check
// @Tags        health
// @Produce     json
// @Success     200 {object} HealthResponse "Healthy"
// @Failure     503 {object} HealthResponse "Store unreachable"
// @Router      /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, HealthResponse{Status: "degraded", Store: "unreachable"})
		return
	}
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Store: "ok"})
}
