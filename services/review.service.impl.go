package services

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"housing-service/domain"
	"housing-service/repository"
)

type ReviewServiceImpl struct {
	reviews    repository.ReviewStore
	properties repository.PropertyStore
	bookings   repository.BookingStore
	validate   *validator.Validate
	logger     *logrus.Logger
	tracer     trace.Tracer
}

func NewReviewServiceImpl(reviews repository.ReviewStore, properties repository.PropertyStore,
	bookings repository.BookingStore, logger *logrus.Logger, tracer trace.Tracer) ReviewService {
	return &ReviewServiceImpl{
		reviews:    reviews,
		properties: properties,
		bookings:   bookings,
		validate:   validator.New(),
		logger:     logger,
		tracer:     tracer,
	}
}

func (s *ReviewServiceImpl) CreateReview(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	ctx, span := s.tracer.Start(ctx, "ReviewService.CreateReview")
	defer span.End()

	if err := s.validate.Struct(review); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, domain.NewValidationError("", err.Error())
	}

	if _, err := s.properties.GetByID(ctx, review.PropertyID); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	review.IsApproved = true
	review.IsVerified = s.hasCompletedStay(ctx, review.UserID, review.PropertyID)
	review.HelpfulCount = 0
	review.NotHelpfulCount = 0
	review.LandlordResponse = ""
	review.LandlordResponseDate = nil

	created, err := s.reviews.Insert(ctx, review)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	s.refreshRatingStats(ctx, review.PropertyID)
	span.SetStatus(codes.Ok, "review created")
	return created, nil
}

func (s *ReviewServiceImpl) GetReviewsByProperty(ctx context.Context, propertyID primitive.ObjectID) (domain.Reviews, error) {
	return s.reviews.GetByProperty(ctx, propertyID)
}

func (s *ReviewServiceImpl) DeleteReview(ctx context.Context, id primitive.ObjectID, userID primitive.ObjectID) error {
	ctx, span := s.tracer.Start(ctx, "ReviewService.DeleteReview")
	defer span.End()

	review, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if review.UserID != userID {
		return domain.NewValidationError("user_id", "only the author can delete a review")
	}

	if err := s.reviews.Delete(ctx, id); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	s.refreshRatingStats(ctx, review.PropertyID)
	span.SetStatus(codes.Ok, "review deleted")
	return nil
}

func (s *ReviewServiceImpl) RespondToReview(ctx context.Context, id primitive.ObjectID, landlordID primitive.ObjectID, response string) (*domain.Review, error) {
	ctx, span := s.tracer.Start(ctx, "ReviewService.RespondToReview")
	defer span.End()

	if response == "" {
		return nil, domain.NewValidationError("response", "a response text is required")
	}

	review, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	property, err := s.properties.GetByID(ctx, review.PropertyID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if property.LandlordID != landlordID {
		return nil, domain.NewValidationError("landlord_id", "only the property landlord can respond")
	}

	now := time.Now()
	review.LandlordResponse = response
	review.LandlordResponseDate = &now

	if err := s.reviews.Update(ctx, review); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetStatus(codes.Ok, "landlord responded")
	return review, nil
}

func (s *ReviewServiceImpl) VoteHelpful(ctx context.Context, id primitive.ObjectID, helpful bool) (*domain.Review, error) {
	ctx, span := s.tracer.Start(ctx, "ReviewService.VoteHelpful")
	defer span.End()

	review, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if helpful {
		review.HelpfulCount++
	} else {
		review.NotHelpfulCount++
	}
	if err := s.reviews.Update(ctx, review); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return review, nil
}

// hasCompletedStay marks a review verified when the author actually stayed
// at the property.
func (s *ReviewServiceImpl) hasCompletedStay(ctx context.Context, userID primitive.ObjectID, propertyID primitive.ObjectID) bool {
	bookings, err := s.bookings.GetByStudent(ctx, userID)
	if err != nil {
		s.logger.WithError(err).Warn("could not check completed stays")
		return false
	}
	for _, booking := range bookings {
		if booking.PropertyID == propertyID && booking.Status == domain.BookingCompleted {
			return true
		}
	}
	return false
}

// refreshRatingStats recomputes the denormalized rating aggregate on the
// property from the approved reviews.
func (s *ReviewServiceImpl) refreshRatingStats(ctx context.Context, propertyID primitive.ObjectID) {
	reviews, err := s.reviews.GetByProperty(ctx, propertyID)
	if err != nil {
		s.logger.WithError(err).Warn("could not recompute rating stats")
		return
	}

	total := len(reviews)
	average := 0.0
	if total > 0 {
		sum := 0
		for _, review := range reviews {
			sum += review.Rating
		}
		average = float64(sum) / float64(total)
	}

	if err := s.properties.UpdateRatingStats(ctx, propertyID, average, total); err != nil {
		s.logger.WithError(err).Warn("could not persist rating stats")
	}
}
