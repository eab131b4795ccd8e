package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"housing-service/domain"
	"housing-service/repository"
)

type UserServiceImpl struct {
	users repository.UserStore
}

func NewUserServiceImpl(users repository.UserStore) UserService {
	return &UserServiceImpl{users: users}
}

func (s *UserServiceImpl) FindUserByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *UserServiceImpl) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.users.GetByEmail(ctx, email)
}
