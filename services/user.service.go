package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"housing-service/domain"
)

type UserService interface {
	FindUserByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
}
