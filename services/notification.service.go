package services

import "housing-service/domain"

// NotificationService is fire and forget: implementations deliver in the
// background and log failures instead of propagating them.
type NotificationService interface {
	BookingRequested(booking *domain.Booking, property *domain.Property)
	BookingStatusChanged(booking *domain.Booking, property *domain.Property)
	PasswordReset(user *domain.User, resetToken string)
}
