package services

import (
	"context"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"housing-service/domain"
	"housing-service/repository"
)

type ListingServiceImpl struct {
	properties repository.PropertyStore
	tracer     trace.Tracer
}

func NewListingServiceImpl(properties repository.PropertyStore, tracer trace.Tracer) ListingService {
	return &ListingServiceImpl{
		properties: properties,
		tracer:     tracer,
	}
}

// Search returns available properties matching the conjunctive filter set,
// newest first.
func (s *ListingServiceImpl) Search(ctx context.Context, filter domain.ListingFilter) (domain.Properties, error) {
	ctx, span := s.tracer.Start(ctx, "ListingService.Search")
	defer span.End()

	if filter.MinPrice != nil && filter.MaxPrice != nil && *filter.MinPrice > *filter.MaxPrice {
		span.SetStatus(codes.Error, "bad price range")
		return nil, domain.NewValidationError("price", "min_price cannot exceed max_price")
	}
	if filter.PropertyType != "" && !isValidPropertyKind(filter.PropertyType) {
		return nil, domain.NewValidationError("property_type", "unknown property type")
	}
	if filter.GenderPreference != "" && !isValidGenderPreference(filter.GenderPreference) {
		return nil, domain.NewValidationError("gender_preference", "unknown gender preference")
	}
	filter.Normalize()

	properties, err := s.properties.Search(ctx, filter)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetStatus(codes.Ok, "search done")
	return properties, nil
}

func isValidPropertyKind(kind domain.PropertyKind) bool {
	switch kind {
	case domain.SharedRoom, domain.SingleRoom, domain.Apartment, domain.PayingGuest, domain.Hostel, domain.Flat:
		return true
	}
	return false
}

func isValidGenderPreference(preference domain.GenderPreference) bool {
	switch preference {
	case domain.GenderMale, domain.GenderFemale, domain.GenderAny:
		return true
	}
	return false
}
