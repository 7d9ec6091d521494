package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/relieflabs/claims-analytics/internal/analytics"
)

// Handler exposes one route per engine query. Absence results map to 404,
// the out-of-domain severity sentinel maps to 400.
type Handler struct {
	engine *analytics.Engine
}

func NewHandler(engine *analytics.Engine) *Handler {
	return &Handler{
		engine: engine,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.health)

	r.GET("/api/claims/closed/count", h.closedClaimCount)
	r.GET("/api/handlers/:id/claims/count", h.claimCountForHandler)
	r.GET("/api/handlers/:id/claims/average-cost", h.averageClaimCostForHandler)
	r.GET("/api/states/:state/disasters/count", h.disasterCountForState)
	r.GET("/api/states/:state/top-language", h.topLanguageForState)
	r.GET("/api/disasters/most-affected-state", h.stateWithMostDisasters)
	r.GET("/api/disasters/least-affected-state", h.stateWithLeastDisasters)
	r.GET("/api/disasters/declared-after-end/count", h.disastersDeclaredAfterEnd)
	r.GET("/api/disasters/:id/total-cost", h.totalClaimCostForDisaster)
	r.GET("/api/disasters/:id/claim-density", h.claimDensityForDisaster)
	r.GET("/api/agents/claim-costs", h.totalClaimCostByAgent)
	r.GET("/api/agents/:id/open-claims", h.openClaimCountForAgent)
	r.GET("/api/months/top-claim-costs", h.topMonthsByClaimCost)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) closedClaimCount(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"count": h.engine.ClosedClaimCount()})
}

func (h *Handler) claimCountForHandler(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"handler_id": id,
		"count":      h.engine.ClaimCountForHandler(id),
	})
}

func (h *Handler) averageClaimCostForHandler(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	avg := h.engine.AverageClaimCostForHandler(id)
	if avg == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no claims for handler"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"handler_id":   id,
		"average_cost": *avg,
	})
}

func (h *Handler) disasterCountForState(c *gin.Context) {
	state := c.Param("state")
	c.JSON(http.StatusOK, gin.H{
		"state": state,
		"count": h.engine.DisasterCountForState(state),
	})
}

func (h *Handler) topLanguageForState(c *gin.Context) {
	state := c.Param("state")
	c.JSON(http.StatusOK, gin.H{
		"state":    state,
		"language": h.engine.MostSpokenLanguageForState(state),
	})
}

func (h *Handler) stateWithMostDisasters(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"state": h.engine.StateWithMostDisasters()})
}

func (h *Handler) stateWithLeastDisasters(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"state": h.engine.StateWithLeastDisasters()})
}

func (h *Handler) disastersDeclaredAfterEnd(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"count": h.engine.DisastersDeclaredAfterEndCount()})
}

func (h *Handler) totalClaimCostForDisaster(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	total := h.engine.TotalClaimCostForDisaster(id)
	if total == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no claims for disaster"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"disaster_id": id,
		"total_cost":  *total,
	})
}

func (h *Handler) claimDensityForDisaster(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	density := h.engine.ClaimDensityForDisaster(id)
	if density == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no claims for disaster"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"disaster_id": id,
		"density":     *density,
	})
}

func (h *Handler) totalClaimCostByAgent(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"costs": h.engine.TotalClaimCostByAgent()})
}

func (h *Handler) openClaimCountForAgent(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	minSeverity, err := strconv.Atoi(c.DefaultQuery("min_severity", "1"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "min_severity must be an integer"})
		return
	}

	count := h.engine.OpenClaimCountForAgent(id, minSeverity)
	switch {
	case count != nil && *count == -1:
		c.JSON(http.StatusBadRequest, gin.H{"error": "min_severity must be between 1 and 10"})
	case count == nil:
		c.JSON(http.StatusNotFound, gin.H{"error": "no claims for agent"})
	default:
		c.JSON(http.StatusOK, gin.H{
			"agent_id":     id,
			"min_severity": minSeverity,
			"count":        *count,
		})
	}
}

func (h *Handler) topMonthsByClaimCost(c *gin.Context) {
	months := h.engine.TopThreeMonthsByClaimCost()
	if months == nil {
		months = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"months": months})
}

func intParam(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be an integer"})
		return 0, false
	}
	return v, true
}
