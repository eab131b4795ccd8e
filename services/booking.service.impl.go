package services

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"housing-service/config"
	"housing-service/domain"
	"housing-service/repository"
)

type BookingServiceImpl struct {
	bookings   repository.BookingStore
	properties repository.PropertyStore
	notifier   NotificationService
	policy     config.CompletionPolicy
	validate   *validator.Validate
	logger     *logrus.Logger
	tracer     trace.Tracer
}

func NewBookingServiceImpl(bookings repository.BookingStore, properties repository.PropertyStore,
	notifier NotificationService, policy config.CompletionPolicy, logger *logrus.Logger, tracer trace.Tracer) BookingService {
	return &BookingServiceImpl{
		bookings:   bookings,
		properties: properties,
		notifier:   notifier,
		policy:     policy,
		validate:   validator.New(),
		logger:     logger,
		tracer:     tracer,
	}
}

// CreateBooking records a pending booking request. No inventory is consumed
// until the landlord confirms.
func (s *BookingServiceImpl) CreateBooking(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	ctx, span := s.tracer.Start(ctx, "BookingService.CreateBooking")
	defer span.End()

	if booking.NumberOfOccupants == 0 {
		booking.NumberOfOccupants = 1
	}
	if err := s.validate.Struct(booking); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, domain.NewValidationError("", err.Error())
	}
	if !booking.RoomType.IsValid() {
		return nil, domain.NewValidationError("room_type", "unknown room type")
	}

	property, err := s.properties.GetByID(ctx, booking.PropertyID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	roomType, ok := property.RoomTypeByKind(booking.RoomType)
	if !ok {
		span.SetStatus(codes.Error, "room type not offered")
		return nil, domain.ErrRoomTypeNotFound()
	}

	booking.LandlordID = property.LandlordID
	if booking.MonthlyRent == 0 {
		booking.MonthlyRent = roomType.PricePerBed * float64(booking.NumberOfOccupants)
	}
	if booking.TotalAmount == 0 {
		booking.TotalAmount = booking.MonthlyRent*float64(booking.Duration) + booking.SecurityDeposit
	}
	booking.Status = domain.BookingPending
	booking.PaymentStatus = domain.PaymentPending
	booking.ConfirmedAt = nil
	booking.RejectedAt = nil
	booking.CancelledAt = nil
	booking.CompletedAt = nil

	created, err := s.bookings.Insert(ctx, booking)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if err := s.properties.IncrementBookings(ctx, property.ID); err != nil {
		s.logger.WithError(err).Warn("could not bump property booking counter")
	}

	s.notifier.BookingRequested(created, property)
	span.SetStatus(codes.Ok, "booking created")
	return created, nil
}

// ConfirmBooking reserves beds and moves the booking to Confirmed. The
// reservation happens first; if the status write then loses a race the
// reserved beds are handed back, so no partial state survives either way.
func (s *BookingServiceImpl) ConfirmBooking(ctx context.Context, id primitive.ObjectID) (*domain.Booking, error) {
	ctx, span := s.tracer.Start(ctx, "BookingService.ConfirmBooking")
	defer span.End()

	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if err := booking.Confirm(time.Now()); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if err := s.properties.ReserveBeds(ctx, booking.PropertyID, booking.RoomType, booking.NumberOfOccupants); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if err := s.bookings.UpdateStatus(ctx, booking, domain.BookingPending); err != nil {
		if relErr := s.properties.ReleaseBeds(ctx, booking.PropertyID, booking.RoomType, booking.NumberOfOccupants); relErr != nil {
			s.logger.WithError(relErr).Error("compensating release failed after lost confirm race")
		}
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	s.notifyStatusChange(ctx, booking)
	span.SetStatus(codes.Ok, "booking confirmed")
	return booking, nil
}

func (s *BookingServiceImpl) RejectBooking(ctx context.Context, id primitive.ObjectID, reason string) (*domain.Booking, error) {
	ctx, span := s.tracer.Start(ctx, "BookingService.RejectBooking")
	defer span.End()

	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if err := booking.Reject(reason, time.Now()); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if err := s.bookings.UpdateStatus(ctx, booking, domain.BookingPending); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	s.notifyStatusChange(ctx, booking)
	span.SetStatus(codes.Ok, "booking rejected")
	return booking, nil
}

// CancelBooking moves a confirmed booking to Cancelled and hands the beds
// back. The status write wins the race; a failed release afterwards means
// the books are out of sync and is logged as a consistency bug.
func (s *BookingServiceImpl) CancelBooking(ctx context.Context, id primitive.ObjectID, reason string) (*domain.Booking, error) {
	ctx, span := s.tracer.Start(ctx, "BookingService.CancelBooking")
	defer span.End()

	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if err := booking.Cancel(reason, time.Now()); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if err := s.bookings.UpdateStatus(ctx, booking, domain.BookingConfirmed); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if err := s.properties.ReleaseBeds(ctx, booking.PropertyID, booking.RoomType, booking.NumberOfOccupants); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"booking":  booking.ID.Hex(),
			"property": booking.PropertyID.Hex(),
		}).Error("bed release failed on cancel, occupancy is out of sync")
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	s.notifyStatusChange(ctx, booking)
	span.SetStatus(codes.Ok, "booking cancelled")
	return booking, nil
}

// CompleteBooking finishes a confirmed stay. Whether the beds free up
// immediately is governed by the configured completion policy.
func (s *BookingServiceImpl) CompleteBooking(ctx context.Context, id primitive.ObjectID) (*domain.Booking, error) {
	ctx, span := s.tracer.Start(ctx, "BookingService.CompleteBooking")
	defer span.End()

	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if err := booking.Complete(time.Now()); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if err := s.bookings.UpdateStatus(ctx, booking, domain.BookingConfirmed); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if s.policy == config.ReleaseOnComplete {
		if err := s.properties.ReleaseBeds(ctx, booking.PropertyID, booking.RoomType, booking.NumberOfOccupants); err != nil {
			s.logger.WithError(err).WithFields(logrus.Fields{
				"booking":  booking.ID.Hex(),
				"property": booking.PropertyID.Hex(),
			}).Error("bed release failed on completion, occupancy is out of sync")
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
	}

	span.SetStatus(codes.Ok, "booking completed")
	return booking, nil
}

func (s *BookingServiceImpl) UpdatePaymentStatus(ctx context.Context, id primitive.ObjectID, status domain.PaymentStatus, method string) (*domain.Booking, error) {
	ctx, span := s.tracer.Start(ctx, "BookingService.UpdatePaymentStatus")
	defer span.End()

	if !status.IsValid() {
		return nil, domain.NewValidationError("payment_status", "unknown payment status")
	}

	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if status == domain.PaymentRefunded &&
		booking.Status != domain.BookingCancelled && booking.Status != domain.BookingRejected {
		return nil, domain.NewValidationError("payment_status", "refund allowed only on cancelled or rejected bookings")
	}

	booking.PaymentStatus = status
	if method != "" {
		booking.PaymentMethod = method
	}
	booking.UpdatedAt = time.Now()

	if err := s.bookings.Update(ctx, booking); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetStatus(codes.Ok, "payment status updated")
	return booking, nil
}

func (s *BookingServiceImpl) GetBookingByID(ctx context.Context, id primitive.ObjectID) (*domain.Booking, error) {
	return s.bookings.GetByID(ctx, id)
}

func (s *BookingServiceImpl) GetBookingsByStudent(ctx context.Context, studentID primitive.ObjectID) (domain.Bookings, error) {
	return s.bookings.GetByStudent(ctx, studentID)
}

func (s *BookingServiceImpl) GetBookingsByLandlord(ctx context.Context, landlordID primitive.ObjectID) (domain.Bookings, error) {
	return s.bookings.GetByLandlord(ctx, landlordID)
}

func (s *BookingServiceImpl) GetBookingsByProperty(ctx context.Context, propertyID primitive.ObjectID) (domain.Bookings, error) {
	return s.bookings.GetByProperty(ctx, propertyID)
}

// notifyStatusChange runs post-commit. Delivery failures are the
// notifier's problem and never roll anything back.
func (s *BookingServiceImpl) notifyStatusChange(ctx context.Context, booking *domain.Booking) {
	property, err := s.properties.GetByID(ctx, booking.PropertyID)
	if err != nil {
		s.logger.WithError(err).Warn("could not load property for notification")
		property = nil
	}
	s.notifier.BookingStatusChanged(booking, property)
}
