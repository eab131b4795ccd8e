package services

import (
	"context"

	"housing-service/domain"
)

// ListingService is the stateless read path students use to browse
// available properties.
type ListingService interface {
	Search(ctx context.Context, filter domain.ListingFilter) (domain.Properties, error)
}
