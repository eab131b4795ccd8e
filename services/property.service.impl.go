package services

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"housing-service/domain"
	"housing-service/repository"
)

type PropertyServiceImpl struct {
	properties repository.PropertyStore
	geocoder   GeocodeService
	images     ImageCacheStore
	validate   *validator.Validate
	logger     *logrus.Logger
	tracer     trace.Tracer
}

func NewPropertyServiceImpl(properties repository.PropertyStore, geocoder GeocodeService,
	images ImageCacheStore, logger *logrus.Logger, tracer trace.Tracer) PropertyService {
	return &PropertyServiceImpl{
		properties: properties,
		geocoder:   geocoder,
		images:     images,
		validate:   validator.New(),
		logger:     logger,
		tracer:     tracer,
	}
}

func (s *PropertyServiceImpl) CreateProperty(ctx context.Context, property *domain.Property) (*domain.Property, error) {
	ctx, span := s.tracer.Start(ctx, "PropertyService.CreateProperty")
	defer span.End()

	applyPropertyDefaults(property)
	s.enrichLocation(ctx, property)
	if err := s.validate.Struct(property); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, domain.NewValidationError("", err.Error())
	}
	if err := checkRoomTypes(property.RoomTypes); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	// A brand new listing starts with every bed free.
	for i := range property.RoomTypes {
		property.RoomTypes[i].Occupied = 0
	}
	property.RecomputeAggregates()
	property.IsAvailable = true
	property.Views = 0
	property.Inquiries = 0
	property.Bookings = 0
	property.AverageRating = 0
	property.TotalReviews = 0
	pickMainImage(property)

	created, err := s.properties.Insert(ctx, property)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetStatus(codes.Ok, "property created")
	return created, nil
}

// UpdateProperty applies a landlord edit. Occupancy is owned by the booking
// lifecycle, so the stored occupied counts are carried over untouched and an
// edit can never shrink a room type below its current occupancy.
func (s *PropertyServiceImpl) UpdateProperty(ctx context.Context, property *domain.Property) (*domain.Property, error) {
	ctx, span := s.tracer.Start(ctx, "PropertyService.UpdateProperty")
	defer span.End()

	existing, err := s.properties.GetByID(ctx, property.ID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	applyPropertyDefaults(property)
	if err := s.validate.Struct(property); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, domain.NewValidationError("", err.Error())
	}
	if err := checkRoomTypes(property.RoomTypes); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	for i := range property.RoomTypes {
		stored, ok := existing.RoomTypeByKind(property.RoomTypes[i].Type)
		if !ok {
			property.RoomTypes[i].Occupied = 0
			continue
		}
		if property.RoomTypes[i].Capacity < stored.Occupied {
			span.SetStatus(codes.Error, "capacity below occupancy")
			return nil, domain.NewValidationError("room_types",
				"capacity cannot drop below the current occupancy")
		}
		property.RoomTypes[i].Occupied = stored.Occupied
	}
	for i := range existing.RoomTypes {
		if _, ok := roomTypeByKind(property.RoomTypes, existing.RoomTypes[i].Type); !ok && existing.RoomTypes[i].Occupied > 0 {
			span.SetStatus(codes.Error, "occupied room type removed")
			return nil, domain.NewValidationError("room_types",
				"cannot remove a room type that still has occupants")
		}
	}

	property.RecomputeAggregates()
	property.LandlordID = existing.LandlordID
	property.Views = existing.Views
	property.Inquiries = existing.Inquiries
	property.Bookings = existing.Bookings
	property.AverageRating = existing.AverageRating
	property.TotalReviews = existing.TotalReviews
	property.IsVerified = existing.IsVerified
	property.CreatedAt = existing.CreatedAt
	pickMainImage(property)

	if err := s.properties.Update(ctx, property); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if s.images != nil {
		s.images.Invalidate(property.ID.Hex(), ctx)
	}
	span.SetStatus(codes.Ok, "property updated")
	return property, nil
}

func (s *PropertyServiceImpl) DeleteProperty(ctx context.Context, id primitive.ObjectID) error {
	ctx, span := s.tracer.Start(ctx, "PropertyService.DeleteProperty")
	defer span.End()

	if err := s.properties.Delete(ctx, id); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if s.images != nil {
		s.images.Invalidate(id.Hex(), ctx)
	}
	span.SetStatus(codes.Ok, "property deleted")
	return nil
}

func (s *PropertyServiceImpl) GetPropertyByID(ctx context.Context, id primitive.ObjectID) (*domain.Property, error) {
	ctx, span := s.tracer.Start(ctx, "PropertyService.GetPropertyByID")
	defer span.End()

	property, err := s.properties.GetByID(ctx, id)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if err := s.properties.IncrementViews(ctx, id); err != nil {
		s.logger.WithError(err).Warn("could not bump property view counter")
	}
	return property, nil
}

func (s *PropertyServiceImpl) GetPropertiesByLandlord(ctx context.Context, landlordID primitive.ObjectID) (domain.Properties, error) {
	return s.properties.GetByLandlord(ctx, landlordID)
}

func (s *PropertyServiceImpl) GetPropertyImages(ctx context.Context, id primitive.ObjectID) ([]domain.Image, error) {
	ctx, span := s.tracer.Start(ctx, "PropertyService.GetPropertyImages")
	defer span.End()

	if s.images != nil {
		if images, err := s.images.GetImages(id.Hex(), ctx); err == nil {
			return images, nil
		}
	}

	property, err := s.properties.GetByID(ctx, id)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if s.images != nil {
		if err := s.images.PostImages(id.Hex(), property.Images, ctx); err != nil {
			s.logger.WithError(err).Warn("could not cache property images")
		}
	}
	return property.Images, nil
}

// enrichLocation fills missing location fields from the geocoder. Best
// effort only: a geocoder outage never blocks the listing write.
func (s *PropertyServiceImpl) enrichLocation(ctx context.Context, property *domain.Property) {
	if s.geocoder == nil || property.Coordinates == nil {
		return
	}
	if property.City != "" && property.State != "" && property.Pincode != "" {
		return
	}

	geocoded, err := s.geocoder.ReverseGeocode(ctx, property.Coordinates.Latitude, property.Coordinates.Longitude)
	if err != nil {
		s.logger.WithError(err).Warn("location enrichment skipped")
		return
	}
	if property.City == "" {
		property.City = geocoded.City
	}
	if property.State == "" {
		property.State = geocoded.State
	}
	if property.Pincode == "" {
		property.Pincode = geocoded.Pincode
	}
}

func applyPropertyDefaults(property *domain.Property) {
	if property.GenderPreference == "" {
		property.GenderPreference = domain.GenderAny
	}
	if property.FoodType == "" {
		property.FoodType = domain.NoFood
	}
	if property.FurnishingStatus == "" {
		property.FurnishingStatus = domain.Unfurnished
	}
	if property.PreferredTenants == "" {
		property.PreferredTenants = "Any"
	}
	if property.MinimumStay < 1 {
		property.MinimumStay = 1
	}
	for i := range property.Images {
		if property.Images[i].UploadedAt.IsZero() {
			property.Images[i].UploadedAt = time.Now()
		}
	}
}

func checkRoomTypes(roomTypes []domain.RoomType) error {
	seen := make(map[domain.RoomTypeKind]bool, len(roomTypes))
	for i := range roomTypes {
		kind := roomTypes[i].Type
		if !kind.IsValid() {
			return domain.NewValidationError("room_types", "unknown room type "+string(kind))
		}
		if seen[kind] {
			return domain.NewValidationError("room_types", "duplicate room type "+string(kind))
		}
		seen[kind] = true
	}
	return nil
}

func roomTypeByKind(roomTypes []domain.RoomType, kind domain.RoomTypeKind) (*domain.RoomType, bool) {
	for i := range roomTypes {
		if roomTypes[i].Type == kind {
			return &roomTypes[i], true
		}
	}
	return nil, false
}

func pickMainImage(property *domain.Property) {
	if property.MainImage != "" {
		return
	}
	for i := range property.Images {
		if property.Images[i].IsMain {
			property.MainImage = property.Images[i].URL
			return
		}
	}
	if len(property.Images) > 0 {
		property.MainImage = property.Images[0].URL
	}
}
