package services

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"housing-service/domain"
	"housing-service/repository"
	"housing-service/utils"
)

const resetTokenTTL = time.Hour

type AuthServiceImpl struct {
	users    repository.UserStore
	notifier NotificationService
	secret   string
	validate *validator.Validate
	logger   *logrus.Logger
}

func NewAuthServiceImpl(users repository.UserStore, notifier NotificationService, secret string, logger *logrus.Logger) AuthService {
	return &AuthServiceImpl{
		users:    users,
		notifier: notifier,
		secret:   secret,
		validate: validator.New(),
		logger:   logger,
	}
}

func (s *AuthServiceImpl) Signup(ctx context.Context, input *domain.SignupInput) (*domain.User, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, domain.NewValidationError("", err.Error())
	}
	if !input.UserRole.IsValid() {
		return nil, domain.NewValidationError("user_role", "role must be student or landlord")
	}

	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return nil, domain.NewValidationError("email", "email already registered")
	} else if err != mongo.ErrNoDocuments {
		return nil, err
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:     input.Name,
		Email:    input.Email,
		Mobile:   input.Mobile,
		Password: hashed,
		UserRole: input.UserRole,
	}
	return s.users.Insert(ctx, user)
}

func (s *AuthServiceImpl) Login(ctx context.Context, input *domain.LoginInput) (string, *domain.User, error) {
	if err := s.validate.Struct(input); err != nil {
		return "", nil, domain.NewValidationError("", err.Error())
	}

	user, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return "", nil, domain.NewValidationError("email", "invalid email or password")
		}
		return "", nil, err
	}
	if err := utils.VerifyPassword(user.Password, input.Password); err != nil {
		return "", nil, domain.NewValidationError("password", "invalid email or password")
	}

	accessToken, err := utils.CreateToken(user.ID.Hex(), string(user.UserRole), s.secret)
	if err != nil {
		return "", nil, err
	}
	return accessToken, user, nil
}

// ForgotPassword is deliberately quiet about unknown addresses so the
// endpoint cannot be used to probe for accounts.
func (s *AuthServiceImpl) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil
		}
		return err
	}

	expires := time.Now().Add(resetTokenTTL)
	user.ResetPasswordToken = uuid.New().String()
	user.ResetPasswordExpires = &expires

	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	s.notifier.PasswordReset(user, user.ResetPasswordToken)
	return nil
}

func (s *AuthServiceImpl) ResetPassword(ctx context.Context, token string, newPassword string) error {
	if len(newPassword) < 8 {
		return domain.NewValidationError("password", "password must be at least 8 characters")
	}

	user, err := s.users.GetByResetToken(ctx, token)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return domain.NewValidationError("token", "invalid or expired reset token")
		}
		return err
	}
	if user.ResetPasswordExpires == nil || time.Now().After(*user.ResetPasswordExpires) {
		return domain.NewValidationError("token", "invalid or expired reset token")
	}

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return errors.New("could not hash password")
	}

	user.Password = hashed
	user.ResetPasswordToken = ""
	user.ResetPasswordExpires = nil
	return s.users.Update(ctx, user)
}
