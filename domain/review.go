package domain

import (
	"encoding/json"
	"io"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Review struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	PropertyID primitive.ObjectID  `bson:"property_id" json:"property_id"`
	UserID     primitive.ObjectID  `bson:"user_id" json:"user_id"`
	BookingID  *primitive.ObjectID `bson:"booking_id,omitempty" json:"booking_id,omitempty"`

	Rating  int    `bson:"rating" json:"rating" validate:"min=1,max=5"`
	Title   string `bson:"title" json:"title" validate:"required,max=100"`
	Comment string `bson:"comment" json:"comment" validate:"required,max=1000"`

	Cleanliness      int `bson:"cleanliness,omitempty" json:"cleanliness,omitempty" validate:"omitempty,min=1,max=5"`
	Location         int `bson:"location,omitempty" json:"location,omitempty" validate:"omitempty,min=1,max=5"`
	Amenities        int `bson:"amenities,omitempty" json:"amenities,omitempty" validate:"omitempty,min=1,max=5"`
	ValueForMoney    int `bson:"value_for_money,omitempty" json:"value_for_money,omitempty" validate:"omitempty,min=1,max=5"`
	LandlordBehavior int `bson:"landlord_behavior,omitempty" json:"landlord_behavior,omitempty" validate:"omitempty,min=1,max=5"`

	// IsVerified marks reviews left by students with a completed booking.
	IsVerified bool `bson:"is_verified" json:"is_verified"`
	IsApproved bool `bson:"is_approved" json:"is_approved"`

	HelpfulCount    int `bson:"helpful_count" json:"helpful_count"`
	NotHelpfulCount int `bson:"not_helpful_count" json:"not_helpful_count"`

	LandlordResponse     string     `bson:"landlord_response" json:"landlord_response"`
	LandlordResponseDate *time.Time `bson:"landlord_response_date,omitempty" json:"landlord_response_date,omitempty"`

	UserName string   `bson:"user_name" json:"user_name"`
	UserRole UserRole `bson:"user_role" json:"user_role"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

type Reviews []*Review

func (o *Review) ToJSON(w io.Writer) error {
	e := json.NewEncoder(w)
	return e.Encode(o)
}

func (o *Review) FromJSON(r io.Reader) error {
	d := json.NewDecoder(r)
	return d.Decode(o)
}

func (o *Reviews) ToJSON(w io.Writer) error {
	e := json.NewEncoder(w)
	return e.Encode(o)
}
