package handlers

import (
	"net/http"

	"github.com/clubhub/giveaway-backend/internal/models"
	"github.com/clubhub/giveaway-backend/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RaffleHandler handles raffle application and allocation HTTP requests
type RaffleHandler struct {
	raffleService services.RaffleService
}

// NewRaffleHandler creates a new RaffleHandler
func NewRaffleHandler(raffleService services.RaffleService) *RaffleHandler {
	return &RaffleHandler{
		raffleService: raffleService,
	}
}

// Create handles POST /raffles
func (h *RaffleHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.RaffleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	raffle, err := h.raffleService.CreateRaffle(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, raffle)
}

// ApplyRequest is the payload for buying lots in a raffle
type ApplyRequest struct {
	LotCount  int    `json:"lotCount" binding:"required,min=1"`
	UnitPrice int    `json:"unitPrice"`
	Memo      string `json:"memo"`
}

// Apply handles POST /raffles/:id/slots
func (h *RaffleHandler) Apply(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	slots, err := h.raffleService.Apply(c.Request.Context(), id, userID, req.LotCount, req.UnitPrice, req.Memo)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, slots)
}

// AllocateRequest is the payload for resolving a user's pending slots
type AllocateRequest struct {
	UserID   string `json:"userId" binding:"required"`
	WonCount *int   `json:"wonCount" binding:"required"`
}

// Allocate handles POST /raffles/:id/allocate
func (h *RaffleHandler) Allocate(c *gin.Context) {
	requesterID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req AllocateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	result, allocErr := h.raffleService.AllocateOutcome(c.Request.Context(), id, requesterID, userID, *req.WonCount)
	if allocErr != nil {
		respondError(c, allocErr)
		return
	}
	c.JSON(http.StatusOK, result)
}
