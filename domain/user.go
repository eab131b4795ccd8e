package domain

import (
	"encoding/json"
	"io"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRole string

const (
	Student  UserRole = "student"
	Landlord UserRole = "landlord"
)

func (r UserRole) IsValid() bool {
	return r == Student || r == Landlord
}

type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name     string             `bson:"name" json:"name" validate:"required,min=2"`
	Email    string             `bson:"email" json:"email" validate:"required,email"`
	Mobile   string             `bson:"mobile,omitempty" json:"mobile,omitempty"`
	Password string             `bson:"password" json:"-"`
	UserRole UserRole           `bson:"user_role" json:"user_role"`

	ResetPasswordToken   string     `bson:"reset_password_token,omitempty" json:"-"`
	ResetPasswordExpires *time.Time `bson:"reset_password_expires,omitempty" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

type SignupInput struct {
	Name     string   `json:"name" validate:"required,min=2"`
	Email    string   `json:"email" validate:"required,email"`
	Mobile   string   `json:"mobile"`
	Password string   `json:"password" validate:"required,min=8"`
	UserRole UserRole `json:"user_role" validate:"required"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (o *User) ToJSON(w io.Writer) error {
	e := json.NewEncoder(w)
	return e.Encode(o)
}

func (o *User) FromJSON(r io.Reader) error {
	d := json.NewDecoder(r)
	return d.Decode(o)
}
