package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"housing-service/domain"
)

// statusForError maps the domain error taxonomy onto HTTP statuses.
// ErrInvalidRelease stays a 500: it signals corrupted bookkeeping, not a
// caller mistake.
func statusForError(err error) int {
	switch {
	case domain.IsValidationError(err):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrCapacityExceeded()):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidTransition()):
		return http.StatusConflict
	case errors.Is(err, domain.ErrPropertyNotFound()),
		errors.Is(err, domain.ErrBookingNotFound()),
		errors.Is(err, domain.ErrRoomTypeNotFound()),
		errors.Is(err, mongo.ErrNoDocuments):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	c.JSON(statusForError(err), gin.H{"error": err.Error()})
}
