package services

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel"

	"housing-service/domain"
)

type fakeReviewStore struct {
	reviews map[primitive.ObjectID]*domain.Review
}

func newFakeReviewStore() *fakeReviewStore {
	return &fakeReviewStore{reviews: make(map[primitive.ObjectID]*domain.Review)}
}

func (f *fakeReviewStore) Insert(_ context.Context, review *domain.Review) (*domain.Review, error) {
	if review.ID.IsZero() {
		review.ID = primitive.NewObjectID()
	}
	f.reviews[review.ID] = review
	return review, nil
}

func (f *fakeReviewStore) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Review, error) {
	review, ok := f.reviews[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return review, nil
}

func (f *fakeReviewStore) GetByProperty(_ context.Context, propertyID primitive.ObjectID) (domain.Reviews, error) {
	var out domain.Reviews
	for _, review := range f.reviews {
		if review.PropertyID == propertyID {
			out = append(out, review)
		}
	}
	return out, nil
}

func (f *fakeReviewStore) Update(_ context.Context, review *domain.Review) error {
	f.reviews[review.ID] = review
	return nil
}

func (f *fakeReviewStore) Delete(_ context.Context, id primitive.ObjectID) error {
	delete(f.reviews, id)
	return nil
}

func newReviewServiceForTest(properties *fakePropertyStore, bookings *fakeBookingStore) (ReviewService, *fakeReviewStore) {
	store := newFakeReviewStore()
	service := NewReviewServiceImpl(store, properties, bookings, quietLogger(), otel.Tracer("test"))
	return service, store
}

func sampleReview(propertyID primitive.ObjectID, userID primitive.ObjectID, rating int) *domain.Review {
	return &domain.Review{
		PropertyID: propertyID,
		UserID:     userID,
		Rating:     rating,
		Title:      "Solid place for the price",
		Comment:    "Clean rooms and the landlord fixes things quickly.",
	}
}

func TestCreateReviewRefreshesPropertyStats(t *testing.T) {
	property := testProperty(4, 0)
	properties := newFakePropertyStore(property)
	service, _ := newReviewServiceForTest(properties, newFakeBookingStore())

	if _, err := service.CreateReview(context.Background(), sampleReview(property.ID, primitive.NewObjectID(), 4)); err != nil {
		t.Fatalf("first review failed: %v", err)
	}
	if _, err := service.CreateReview(context.Background(), sampleReview(property.ID, primitive.NewObjectID(), 2)); err != nil {
		t.Fatalf("second review failed: %v", err)
	}

	if property.TotalReviews != 2 {
		t.Errorf("expected 2 total reviews on property, got %d", property.TotalReviews)
	}
	if property.AverageRating != 3.0 {
		t.Errorf("expected average 3.0, got %v", property.AverageRating)
	}
}

func TestCreateReviewVerifiedOnlyAfterCompletedStay(t *testing.T) {
	property := testProperty(4, 0)
	properties := newFakePropertyStore(property)
	student := primitive.NewObjectID()

	completed := testBooking(property, domain.BookingCompleted)
	completed.StudentID = student
	bookings := newFakeBookingStore(completed)
	service, _ := newReviewServiceForTest(properties, bookings)

	review, err := service.CreateReview(context.Background(), sampleReview(property.ID, student, 5))
	if err != nil {
		t.Fatalf("review failed: %v", err)
	}
	if !review.IsVerified {
		t.Errorf("review after a completed stay should be verified")
	}

	other, err := service.CreateReview(context.Background(), sampleReview(property.ID, primitive.NewObjectID(), 3))
	if err != nil {
		t.Fatalf("review failed: %v", err)
	}
	if other.IsVerified {
		t.Errorf("review without a completed stay must not be verified")
	}
}

func TestDeleteReviewOnlyByAuthor(t *testing.T) {
	property := testProperty(4, 0)
	properties := newFakePropertyStore(property)
	service, store := newReviewServiceForTest(properties, newFakeBookingStore())

	author := primitive.NewObjectID()
	review, err := service.CreateReview(context.Background(), sampleReview(property.ID, author, 4))
	if err != nil {
		t.Fatalf("review failed: %v", err)
	}

	if err := service.DeleteReview(context.Background(), review.ID, primitive.NewObjectID()); !domain.IsValidationError(err) {
		t.Fatalf("delete by a stranger should fail, got %v", err)
	}
	if err := service.DeleteReview(context.Background(), review.ID, author); err != nil {
		t.Fatalf("delete by the author failed: %v", err)
	}
	if len(store.reviews) != 0 {
		t.Errorf("review not removed")
	}
	if property.TotalReviews != 0 {
		t.Errorf("property stats not refreshed after delete, got %d", property.TotalReviews)
	}
}

func TestRespondToReviewOnlyByPropertyLandlord(t *testing.T) {
	property := testProperty(4, 0)
	properties := newFakePropertyStore(property)
	service, _ := newReviewServiceForTest(properties, newFakeBookingStore())

	review, err := service.CreateReview(context.Background(), sampleReview(property.ID, primitive.NewObjectID(), 4))
	if err != nil {
		t.Fatalf("review failed: %v", err)
	}

	if _, err := service.RespondToReview(context.Background(), review.ID, primitive.NewObjectID(), "thanks"); !domain.IsValidationError(err) {
		t.Fatalf("response by a stranger should fail, got %v", err)
	}

	responded, err := service.RespondToReview(context.Background(), review.ID, property.LandlordID, "Thanks, glad you liked the place")
	if err != nil {
		t.Fatalf("landlord response failed: %v", err)
	}
	if responded.LandlordResponse == "" || responded.LandlordResponseDate == nil {
		t.Errorf("response not recorded")
	}
}

func TestVoteHelpful(t *testing.T) {
	property := testProperty(4, 0)
	properties := newFakePropertyStore(property)
	service, _ := newReviewServiceForTest(properties, newFakeBookingStore())

	review, err := service.CreateReview(context.Background(), sampleReview(property.ID, primitive.NewObjectID(), 4))
	if err != nil {
		t.Fatalf("review failed: %v", err)
	}

	if _, err := service.VoteHelpful(context.Background(), review.ID, true); err != nil {
		t.Fatalf("helpful vote failed: %v", err)
	}
	voted, err := service.VoteHelpful(context.Background(), review.ID, false)
	if err != nil {
		t.Fatalf("not-helpful vote failed: %v", err)
	}
	if voted.HelpfulCount != 1 || voted.NotHelpfulCount != 1 {
		t.Errorf("vote counters wrong: %d/%d", voted.HelpfulCount, voted.NotHelpfulCount)
	}
}
