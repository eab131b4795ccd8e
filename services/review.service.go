package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"housing-service/domain"
)

type ReviewService interface {
	CreateReview(ctx context.Context, review *domain.Review) (*domain.Review, error)
	GetReviewsByProperty(ctx context.Context, propertyID primitive.ObjectID) (domain.Reviews, error)
	DeleteReview(ctx context.Context, id primitive.ObjectID, userID primitive.ObjectID) error
	RespondToReview(ctx context.Context, id primitive.ObjectID, landlordID primitive.ObjectID, response string) (*domain.Review, error)
	VoteHelpful(ctx context.Context, id primitive.ObjectID, helpful bool) (*domain.Review, error)
}
