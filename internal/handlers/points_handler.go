package handlers

import (
	"net/http"
	"time"

	"github.com/clubhub/giveaway-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// PointsHandler handles eligibility check HTTP requests
type PointsHandler struct {
	pointsService   services.PointsService
	giveawayService services.GiveawayService
}

// NewPointsHandler creates a new PointsHandler
func NewPointsHandler(pointsService services.PointsService, giveawayService services.GiveawayService) *PointsHandler {
	return &PointsHandler{
		pointsService:   pointsService,
		giveawayService: giveawayService,
	}
}

// CheckEligibility handles GET /giveaways/:id/eligibility. It reports whether
// the caller meets the giveaway's points requirement; entry itself does not
// enforce the gate.
func (h *PointsHandler) CheckEligibility(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	detail, err := h.giveawayService.Get(c.Request.Context(), id, time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	g := detail.Giveaway

	result, err := h.pointsService.CheckEligibility(c.Request.Context(), userID, g.MinPoints, g.RequirementType, g.RequirementMessage)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check eligibility"})
		return
	}
	c.JSON(http.StatusOK, result)
}
