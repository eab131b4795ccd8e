package domain

import (
	"encoding/json"
	"io"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RoomTypeKind string

const (
	RoomSingle    RoomTypeKind = "Single"
	RoomDouble    RoomTypeKind = "Double"
	RoomTriple    RoomTypeKind = "Triple"
	RoomDormitory RoomTypeKind = "Dormitory"
)

func (k RoomTypeKind) IsValid() bool {
	switch k {
	case RoomSingle, RoomDouble, RoomTriple, RoomDormitory:
		return true
	}
	return false
}

type PropertyKind string

const (
	SharedRoom PropertyKind = "Shared Room"
	SingleRoom PropertyKind = "Single Room"
	Apartment  PropertyKind = "Apartment"
	PayingGuest PropertyKind = "PG"
	Hostel     PropertyKind = "Hostel"
	Flat       PropertyKind = "Flat"
)

type GenderPreference string

const (
	GenderMale   GenderPreference = "Male"
	GenderFemale GenderPreference = "Female"
	GenderAny    GenderPreference = "Any"
)

type FoodKind string

const (
	Vegetarian    FoodKind = "Vegetarian"
	NonVegetarian FoodKind = "Non-Vegetarian"
	BothFood      FoodKind = "Both"
	NoFood        FoodKind = "Not Provided"
)

type FurnishingStatus string

const (
	FullyFurnished FurnishingStatus = "Fully Furnished"
	SemiFurnished  FurnishingStatus = "Semi Furnished"
	Unfurnished    FurnishingStatus = "Unfurnished"
)

// RoomType is embedded in a property. Occupied is mutated only through
// bed reservation and release, never by landlord edits after first publish.
type RoomType struct {
	Type        RoomTypeKind `bson:"type" json:"type" validate:"required"`
	Capacity    int          `bson:"capacity" json:"capacity" validate:"min=1,max=20"`
	Occupied    int          `bson:"occupied" json:"occupied" validate:"min=0"`
	PricePerBed float64      `bson:"price_per_bed" json:"price_per_bed" validate:"min=0"`
}

func (rt *RoomType) AvailableBeds() int {
	free := rt.Capacity - rt.Occupied
	if free < 0 {
		return 0
	}
	return free
}

type Image struct {
	URL        string    `bson:"url" json:"url" validate:"required,url"`
	Caption    string    `bson:"caption" json:"caption"`
	IsMain     bool      `bson:"is_main" json:"is_main"`
	UploadedAt time.Time `bson:"uploaded_at" json:"uploaded_at"`
}

type Coordinates struct {
	Latitude  float64 `bson:"latitude" json:"latitude" validate:"min=-90,max=90"`
	Longitude float64 `bson:"longitude" json:"longitude" validate:"min=-180,max=180"`
}

type Property struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title        string             `bson:"title" json:"title" validate:"required,min=10,max=100"`
	Description  string             `bson:"description" json:"description" validate:"required,min=50,max=2000"`
	PropertyType PropertyKind       `bson:"property_type" json:"property_type" validate:"required"`
	Price        float64            `bson:"price" json:"price" validate:"min=0"`
	Bedrooms     int                `bson:"bedrooms" json:"bedrooms" validate:"min=0"`
	Bathrooms    int                `bson:"bathrooms" json:"bathrooms" validate:"min=0"`
	Area         float64            `bson:"area,omitempty" json:"area,omitempty"`

	RoomTypes        []RoomType `bson:"room_types" json:"room_types" validate:"required,min=1,dive"`
	TotalCapacity    int        `bson:"total_capacity" json:"total_capacity"`
	CurrentOccupancy int        `bson:"current_occupancy" json:"current_occupancy"`

	Address             string       `bson:"address" json:"address" validate:"required,min=10"`
	City                string       `bson:"city" json:"city" validate:"required,min=2"`
	State               string       `bson:"state" json:"state" validate:"required,min=2"`
	Pincode             string       `bson:"pincode" json:"pincode" validate:"required,len=6,numeric"`
	NearbyCollege       string       `bson:"nearby_college,omitempty" json:"nearby_college,omitempty"`
	DistanceFromCollege float64      `bson:"distance_from_college,omitempty" json:"distance_from_college,omitempty"`
	Coordinates         *Coordinates `bson:"coordinates,omitempty" json:"coordinates,omitempty"`

	Amenities     []string `bson:"amenities" json:"amenities"`
	FoodIncluded  bool     `bson:"food_included" json:"food_included"`
	FoodType      FoodKind `bson:"food_type" json:"food_type"`
	MealsProvided []string `bson:"meals_provided" json:"meals_provided"`

	GenderPreference GenderPreference `bson:"gender_preference" json:"gender_preference"`
	HouseRules       []string         `bson:"house_rules" json:"house_rules"`

	AvailableFrom *time.Time `bson:"available_from,omitempty" json:"available_from,omitempty"`
	AvailableTo   *time.Time `bson:"available_to,omitempty" json:"available_to,omitempty"`
	MinimumStay   int        `bson:"minimum_stay" json:"minimum_stay"`

	Images    []Image `bson:"images" json:"images"`
	MainImage string  `bson:"main_image,omitempty" json:"main_image,omitempty"`

	LandlordID    primitive.ObjectID `bson:"landlord_id" json:"landlord_id"`
	LandlordName  string             `bson:"landlord_name" json:"landlord_name" validate:"required,min=2"`
	LandlordEmail string             `bson:"landlord_email" json:"landlord_email" validate:"required,email"`
	LandlordPhone string             `bson:"landlord_phone,omitempty" json:"landlord_phone,omitempty"`

	IsAvailable           bool     `bson:"is_available" json:"is_available"`
	IsVerified            bool     `bson:"is_verified" json:"is_verified"`
	VerificationDocuments []string `bson:"verification_documents" json:"verification_documents"`

	FurnishingStatus   FurnishingStatus `bson:"furnishing_status" json:"furnishing_status"`
	PreferredTenants   string           `bson:"preferred_tenants" json:"preferred_tenants"`
	SecurityDeposit    float64          `bson:"security_deposit" json:"security_deposit" validate:"min=0"`
	MaintenanceCharges float64          `bson:"maintenance_charges" json:"maintenance_charges" validate:"min=0"`

	Views     int `bson:"views" json:"views"`
	Inquiries int `bson:"inquiries" json:"inquiries"`
	Bookings  int `bson:"bookings" json:"bookings"`

	AverageRating float64 `bson:"average_rating" json:"average_rating"`
	TotalReviews  int     `bson:"total_reviews" json:"total_reviews"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

type Properties []*Property

// RoomTypeByKind returns the embedded room type entry with the given label.
func (p *Property) RoomTypeByKind(kind RoomTypeKind) (*RoomType, bool) {
	for i := range p.RoomTypes {
		if p.RoomTypes[i].Type == kind {
			return &p.RoomTypes[i], true
		}
	}
	return nil, false
}

// AvailableBeds answers how many beds of the given room type are free.
func (p *Property) AvailableBeds(kind RoomTypeKind) int {
	rt, ok := p.RoomTypeByKind(kind)
	if !ok {
		return 0
	}
	return rt.AvailableBeds()
}

// RecomputeAggregates rebuilds total_capacity and current_occupancy from the
// room type detail. The aggregates are derived, never authoritative.
func (p *Property) RecomputeAggregates() {
	total := 0
	occupied := 0
	for i := range p.RoomTypes {
		total += p.RoomTypes[i].Capacity
		occupied += p.RoomTypes[i].Occupied
	}
	p.TotalCapacity = total
	p.CurrentOccupancy = occupied
}

func (o *Property) ToJSON(w io.Writer) error {
	e := json.NewEncoder(w)
	return e.Encode(o)
}

func (o *Property) FromJSON(r io.Reader) error {
	d := json.NewDecoder(r)
	return d.Decode(o)
}

func (o *Properties) ToJSON(w io.Writer) error {
	e := json.NewEncoder(w)
	return e.Encode(o)
}
