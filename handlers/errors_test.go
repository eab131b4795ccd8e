package handlers

import (
	"errors"
	"net/http"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"

	"housing-service/domain"
)

func TestStatusForError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", domain.NewValidationError("city", "required"), http.StatusBadRequest},
		{"capacity", domain.ErrCapacityExceeded(), http.StatusConflict},
		{"transition", domain.ErrInvalidTransition(), http.StatusConflict},
		{"property missing", domain.ErrPropertyNotFound(), http.StatusNotFound},
		{"booking missing", domain.ErrBookingNotFound(), http.StatusNotFound},
		{"room type missing", domain.ErrRoomTypeNotFound(), http.StatusNotFound},
		{"mongo missing", mongo.ErrNoDocuments, http.StatusNotFound},
		{"release bug", domain.ErrInvalidRelease(), http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		if got := statusForError(tc.err); got != tc.want {
			t.Errorf("%s: expected %d, got %d", tc.name, tc.want, got)
		}
	}
}
