package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"housing-service/domain"
)

type BookingService interface {
	CreateBooking(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	ConfirmBooking(ctx context.Context, id primitive.ObjectID) (*domain.Booking, error)
	RejectBooking(ctx context.Context, id primitive.ObjectID, reason string) (*domain.Booking, error)
	CancelBooking(ctx context.Context, id primitive.ObjectID, reason string) (*domain.Booking, error)
	CompleteBooking(ctx context.Context, id primitive.ObjectID) (*domain.Booking, error)
	UpdatePaymentStatus(ctx context.Context, id primitive.ObjectID, status domain.PaymentStatus, method string) (*domain.Booking, error)
	GetBookingByID(ctx context.Context, id primitive.ObjectID) (*domain.Booking, error)
	GetBookingsByStudent(ctx context.Context, studentID primitive.ObjectID) (domain.Bookings, error)
	GetBookingsByLandlord(ctx context.Context, landlordID primitive.ObjectID) (domain.Bookings, error)
	GetBookingsByProperty(ctx context.Context, propertyID primitive.ObjectID) (domain.Bookings, error)
}
