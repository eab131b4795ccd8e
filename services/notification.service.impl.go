package services

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"housing-service/config"
	"housing-service/domain"
	"housing-service/utils"
)

type NotificationServiceImpl struct {
	config *config.Config
	logger *logrus.Logger
}

func NewNotificationServiceImpl(cfg *config.Config, logger *logrus.Logger) NotificationService {
	return &NotificationServiceImpl{
		config: cfg,
		logger: logger,
	}
}

func (s *NotificationServiceImpl) BookingRequested(booking *domain.Booking, property *domain.Property) {
	if property == nil {
		return
	}
	subject := "New booking request for " + property.Title
	text := fmt.Sprintf("Hi %s,\n\n%s requested %d bed(s) in a %s room at %s, checking in on %s.\n\nPlease confirm or reject the request.",
		property.LandlordName, booking.StudentName, booking.NumberOfOccupants,
		booking.RoomType, property.Title, booking.CheckInDate.Format("02 Jan 2006"))

	s.deliver(property.LandlordEmail, subject, text)
}

func (s *NotificationServiceImpl) BookingStatusChanged(booking *domain.Booking, property *domain.Property) {
	title := "your booking"
	if property != nil {
		title = property.Title
	}

	var subject, text string
	switch booking.Status {
	case domain.BookingConfirmed:
		subject = "Booking confirmed: " + title
		text = fmt.Sprintf("Hi %s,\n\nyour booking at %s has been confirmed. Check-in: %s.",
			booking.StudentName, title, booking.CheckInDate.Format("02 Jan 2006"))
	case domain.BookingRejected:
		subject = "Booking rejected: " + title
		text = fmt.Sprintf("Hi %s,\n\nyour booking at %s was rejected.\nReason: %s",
			booking.StudentName, title, booking.RejectionReason)
	case domain.BookingCancelled:
		subject = "Booking cancelled: " + title
		text = fmt.Sprintf("Hi %s,\n\nyour booking at %s was cancelled.\nReason: %s",
			booking.StudentName, title, booking.CancellationReason)
	default:
		return
	}

	s.deliver(booking.StudentEmail, subject, text)
}

func (s *NotificationServiceImpl) PasswordReset(user *domain.User, resetToken string) {
	subject := "Reset your password"
	text := fmt.Sprintf("Hi %s,\n\nyour password reset code is:\n%s\n\nThe code expires in one hour.",
		user.Name, resetToken)

	s.deliver(user.Email, subject, text)
}

func (s *NotificationServiceImpl) deliver(to string, subject string, text string) {
	go func() {
		emailData := utils.EmailData{
			Subject: subject,
			Text:    text,
			Email:   to,
		}
		if err := utils.SendEmail(&emailData, s.config); err != nil {
			s.logger.WithError(err).WithField("to", to).Warn("notification email failed")
		}
	}()
}
