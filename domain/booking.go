package domain

import (
	"encoding/json"
	"io"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "Pending"
	BookingConfirmed BookingStatus = "Confirmed"
	BookingRejected  BookingStatus = "Rejected"
	BookingCancelled BookingStatus = "Cancelled"
	BookingCompleted BookingStatus = "Completed"
)

// IsTerminal reports whether no further transition may leave this status.
func (s BookingStatus) IsTerminal() bool {
	switch s {
	case BookingRejected, BookingCancelled, BookingCompleted:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "Pending"
	PaymentPartial  PaymentStatus = "Partial"
	PaymentPaid     PaymentStatus = "Paid"
	PaymentRefunded PaymentStatus = "Refunded"
)

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentPending, PaymentPartial, PaymentPaid, PaymentRefunded:
		return true
	}
	return false
}

type Booking struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PropertyID primitive.ObjectID `bson:"property_id" json:"property_id"`
	StudentID  primitive.ObjectID `bson:"student_id" json:"student_id"`
	LandlordID primitive.ObjectID `bson:"landlord_id" json:"landlord_id"`

	RoomType     RoomTypeKind `bson:"room_type" json:"room_type" validate:"required"`
	CheckInDate  time.Time    `bson:"check_in_date" json:"check_in_date" validate:"required"`
	CheckOutDate *time.Time   `bson:"check_out_date,omitempty" json:"check_out_date,omitempty"`
	Duration     int          `bson:"duration" json:"duration" validate:"min=1"`

	MonthlyRent     float64 `bson:"monthly_rent" json:"monthly_rent" validate:"min=0"`
	SecurityDeposit float64 `bson:"security_deposit" json:"security_deposit" validate:"min=0"`
	TotalAmount     float64 `bson:"total_amount" json:"total_amount" validate:"min=0"`

	Status BookingStatus `bson:"status" json:"status"`

	StudentName  string `bson:"student_name" json:"student_name" validate:"required"`
	StudentEmail string `bson:"student_email" json:"student_email" validate:"required,email"`
	StudentPhone string `bson:"student_phone" json:"student_phone" validate:"required"`

	NumberOfOccupants int    `bson:"number_of_occupants" json:"number_of_occupants" validate:"min=1"`
	SpecialRequests   string `bson:"special_requests" json:"special_requests"`

	PaymentStatus PaymentStatus `bson:"payment_status" json:"payment_status"`
	PaymentMethod string        `bson:"payment_method" json:"payment_method"`

	ConfirmedAt *time.Time `bson:"confirmed_at,omitempty" json:"confirmed_at,omitempty"`
	RejectedAt  *time.Time `bson:"rejected_at,omitempty" json:"rejected_at,omitempty"`
	CancelledAt *time.Time `bson:"cancelled_at,omitempty" json:"cancelled_at,omitempty"`
	CompletedAt *time.Time `bson:"completed_at,omitempty" json:"completed_at,omitempty"`

	CancellationReason string `bson:"cancellation_reason" json:"cancellation_reason"`
	RejectionReason    string `bson:"rejection_reason" json:"rejection_reason"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

type Bookings []*Booking

// Confirm moves a pending booking to Confirmed and stamps confirmed_at.
// The caller reserves beds before persisting the new status.
func (b *Booking) Confirm(now time.Time) error {
	if b.Status != BookingPending {
		return ErrInvalidTransition()
	}
	b.Status = BookingConfirmed
	b.ConfirmedAt = &now
	b.UpdatedAt = now
	return nil
}

// Reject moves a pending booking to Rejected. A reason is mandatory.
func (b *Booking) Reject(reason string, now time.Time) error {
	if b.Status != BookingPending {
		return ErrInvalidTransition()
	}
	if reason == "" {
		return NewValidationError("rejection_reason", "a rejection reason is required")
	}
	b.Status = BookingRejected
	b.RejectionReason = reason
	b.RejectedAt = &now
	b.UpdatedAt = now
	return nil
}

// Cancel moves a confirmed booking to Cancelled. A reason is mandatory.
// The caller releases the reserved beds after persisting the new status.
func (b *Booking) Cancel(reason string, now time.Time) error {
	if b.Status != BookingConfirmed {
		return ErrInvalidTransition()
	}
	if reason == "" {
		return NewValidationError("cancellation_reason", "a cancellation reason is required")
	}
	b.Status = BookingCancelled
	b.CancellationReason = reason
	b.CancelledAt = &now
	b.UpdatedAt = now
	return nil
}

// Complete moves a confirmed booking to Completed. Whether the beds are
// released is a policy decision owned by the booking service.
func (b *Booking) Complete(now time.Time) error {
	if b.Status != BookingConfirmed {
		return ErrInvalidTransition()
	}
	b.Status = BookingCompleted
	b.CompletedAt = &now
	b.UpdatedAt = now
	return nil
}

func (o *Booking) ToJSON(w io.Writer) error {
	e := json.NewEncoder(w)
	return e.Encode(o)
}

func (o *Booking) FromJSON(r io.Reader) error {
	d := json.NewDecoder(r)
	return d.Decode(o)
}

func (o *Bookings) ToJSON(w io.Writer) error {
	e := json.NewEncoder(w)
	return e.Encode(o)
}
