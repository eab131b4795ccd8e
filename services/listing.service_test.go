package services

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel"

	"housing-service/domain"
)

type searchingPropertyStore struct {
	*fakePropertyStore
	lastFilter domain.ListingFilter
	results    domain.Properties
}

func (s *searchingPropertyStore) Search(_ context.Context, filter domain.ListingFilter) (domain.Properties, error) {
	s.lastFilter = filter
	return s.results, nil
}

func newListingServiceForTest(results domain.Properties) (ListingService, *searchingPropertyStore) {
	store := &searchingPropertyStore{fakePropertyStore: newFakePropertyStore(), results: results}
	return NewListingServiceImpl(store, otel.Tracer("test")), store
}

func TestSearchRejectsInvertedPriceRange(t *testing.T) {
	service, _ := newListingServiceForTest(nil)

	low, high := 5000.0, 10000.0
	_, err := service.Search(context.Background(), domain.ListingFilter{MinPrice: &high, MaxPrice: &low})
	if !domain.IsValidationError(err) {
		t.Fatalf("expected validation error for min above max, got %v", err)
	}
}

func TestSearchRejectsUnknownEnums(t *testing.T) {
	service, _ := newListingServiceForTest(nil)

	if _, err := service.Search(context.Background(), domain.ListingFilter{PropertyType: "Castle"}); !domain.IsValidationError(err) {
		t.Errorf("expected validation error for unknown property type, got %v", err)
	}
	if _, err := service.Search(context.Background(), domain.ListingFilter{GenderPreference: "Other"}); !domain.IsValidationError(err) {
		t.Errorf("expected validation error for unknown gender preference, got %v", err)
	}
}

func TestSearchNormalizesPagination(t *testing.T) {
	service, store := newListingServiceForTest(nil)

	if _, err := service.Search(context.Background(), domain.ListingFilter{}); err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if store.lastFilter.Page != 1 {
		t.Errorf("expected page defaulted to 1, got %d", store.lastFilter.Page)
	}
	if store.lastFilter.Limit != domain.DefaultPageSize {
		t.Errorf("expected limit defaulted to %d, got %d", domain.DefaultPageSize, store.lastFilter.Limit)
	}

	if _, err := service.Search(context.Background(), domain.ListingFilter{Limit: 9999}); err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if store.lastFilter.Limit != domain.MaxPageSize {
		t.Errorf("expected limit clamped to %d, got %d", domain.MaxPageSize, store.lastFilter.Limit)
	}
}

func TestSearchPassesResultsThrough(t *testing.T) {
	want := domain.Properties{
		{ID: primitive.NewObjectID(), Title: "Sunrise Hostel near IIT Delhi"},
		{ID: primitive.NewObjectID(), Title: "Quiet PG for graduate students"},
	}
	service, _ := newListingServiceForTest(want)

	got, err := service.Search(context.Background(), domain.ListingFilter{City: "delhi", PropertyType: domain.Hostel})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(got) != len(want) || got[0].ID != want[0].ID {
		t.Errorf("search did not return the repository results")
	}
}
