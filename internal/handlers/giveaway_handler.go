package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/clubhub/giveaway-backend/internal/models"
	"github.com/clubhub/giveaway-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// GiveawayHandler handles giveaway lifecycle and draw HTTP requests
type GiveawayHandler struct {
	giveawayService     services.GiveawayService
	drawService         services.DrawService
	entryService        services.EntryService
	notificationService services.NotificationService
}

// NewGiveawayHandler creates a new GiveawayHandler
func NewGiveawayHandler(
	giveawayService services.GiveawayService,
	drawService services.DrawService,
	entryService services.EntryService,
	notificationService services.NotificationService,
) *GiveawayHandler {
	return &GiveawayHandler{
		giveawayService:     giveawayService,
		drawService:         drawService,
		entryService:        entryService,
		notificationService: notificationService,
	}
}

// Create handles POST /giveaways
func (h *GiveawayHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.GiveawayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	giveaway, err := h.giveawayService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, giveaway)
}

// Update handles PUT /giveaways/:id
func (h *GiveawayHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.GiveawayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	giveaway, err := h.giveawayService.Update(c.Request.Context(), id, userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, giveaway)
}

// Delete handles DELETE /giveaways/:id
func (h *GiveawayHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.giveawayService.Delete(c.Request.Context(), id, userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Giveaway deleted"})
}

// Cancel handles POST /giveaways/:id/cancel
func (h *GiveawayHandler) Cancel(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.giveawayService.Cancel(c.Request.Context(), id, userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Giveaway cancelled"})
}

// Get handles GET /giveaways/:id
func (h *GiveawayHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	detail, err := h.giveawayService.Get(c.Request.Context(), id, time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// List handles GET /giveaways
func (h *GiveawayHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	details, err := h.giveawayService.List(c.Request.Context(), page, limit, time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

// Draw handles POST /giveaways/:id/draw
func (h *GiveawayHandler) Draw(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	winnerCount, err := h.drawService.ManualDraw(c.Request.Context(), id, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"winnerCount": winnerCount})
}

// Redraw handles POST /giveaways/:id/redraw
func (h *GiveawayHandler) Redraw(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	winnerCount, err := h.drawService.Redraw(c.Request.Context(), id, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"winnerCount": winnerCount})
}

// GetWinners handles GET /giveaways/:id/winners
func (h *GiveawayHandler) GetWinners(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	winners, err := h.drawService.GetWinners(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, winners)
}

// Enter handles POST /giveaways/:id/entries
func (h *GiveawayHandler) Enter(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	entry, err := h.entryService.Enter(c.Request.Context(), id, userID, currentUsername(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// CancelEntry handles DELETE /giveaways/:id/entries
func (h *GiveawayHandler) CancelEntry(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.entryService.Cancel(c.Request.Context(), id, userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Entry cancelled"})
}

// GetNotifications handles GET /giveaways/:id/notifications. Delivery records
// are visible to the creator only.
func (h *GiveawayHandler) GetNotifications(c *gin.Context) {
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
	if detail.Giveaway.CreatorID != userID {
		respondError(c, services.ErrNotCreator)
		return
	}

	notifications, err := h.notificationService.ListForGiveaway(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}
