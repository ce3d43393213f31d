package handlers

import (
	"errors"
	"net/http"

	"github.com/clubhub/giveaway-backend/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// currentUserID extracts the authenticated user's id set by the JWT middleware
func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	v, ok := c.Get("userID")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return primitive.NilObjectID, false
	}
	id, ok := v.(primitive.ObjectID)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return primitive.NilObjectID, false
	}
	return id, true
}

func currentUsername(c *gin.Context) string {
	if v, ok := c.Get("username"); ok {
		if name, ok := v.(string); ok {
			return name
		}
	}
	return ""
}

// pathID parses an ObjectID path parameter, responding 400 on failure
func pathID(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return primitive.NilObjectID, false
	}
	return id, true
}

// respondError maps service errors to HTTP statuses
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrGiveawayNotFound),
		errors.Is(err, services.ErrEntryNotFound),
		errors.Is(err, services.ErrRaffleNotFound),
		errors.Is(err, services.ErrMemberNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotCreator):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrAlreadyEntered),
		errors.Is(err, services.ErrAlreadyDrawn),
		errors.Is(err, services.ErrNotDrawn),
		errors.Is(err, services.ErrEventNotOpen),
		errors.Is(err, services.ErrEventNotEnded),
		errors.Is(err, services.ErrNoPendingSlots),
		errors.Is(err, services.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidWindow),
		errors.Is(err, services.ErrInvalidPrize),
		errors.Is(err, services.ErrNoPrizes),
		errors.Is(err, services.ErrInvalidLots),
		errors.Is(err, services.ErrWonCountExceedsPending):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidLogin):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
