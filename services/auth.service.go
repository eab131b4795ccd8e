package services

import (
	"context"

	"housing-service/domain"
)

type AuthService interface {
	Signup(ctx context.Context, input *domain.SignupInput) (*domain.User, error)
	Login(ctx context.Context, input *domain.LoginInput) (string, *domain.User, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token string, newPassword string) error
}
