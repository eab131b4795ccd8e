package repository

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"housing-service/domain"
)

type BookingStore interface {
	Insert(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
	UpdateStatus(ctx context.Context, booking *domain.Booking, from domain.BookingStatus) error
	GetByStudent(ctx context.Context, studentID primitive.ObjectID) (domain.Bookings, error)
	GetByLandlord(ctx context.Context, landlordID primitive.ObjectID) (domain.Bookings, error)
	GetByProperty(ctx context.Context, propertyID primitive.ObjectID) (domain.Bookings, error)
}

type BookingRepo struct {
	collection *mongo.Collection
	logger     *log.Logger
}

func NewBookingRepo(collection *mongo.Collection, logger *log.Logger) *BookingRepo {
	return &BookingRepo{
		collection: collection,
		logger:     logger,
	}
}

func (br *BookingRepo) Insert(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	result, err := br.collection.InsertOne(ctx, booking)
	if err != nil {
		br.logger.Println(err)
		return nil, err
	}
	booking.ID = result.InsertedID.(primitive.ObjectID)
	return booking, nil
}

func (br *BookingRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Booking, error) {
	var booking domain.Booking
	err := br.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		return nil, domain.ErrBookingNotFound()
	}
	if err != nil {
		br.logger.Println(err)
		return nil, err
	}
	return &booking, nil
}

func (br *BookingRepo) Update(ctx context.Context, booking *domain.Booking) error {
	result, err := br.collection.ReplaceOne(ctx, bson.M{"_id": booking.ID}, booking)
	if err != nil {
		br.logger.Println(err)
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrBookingNotFound()
	}
	return nil
}

// UpdateStatus persists a status transition only when the stored document
// is still in the expected prior status. A lost race surfaces as
// ErrInvalidTransition instead of a silent double transition.
func (br *BookingRepo) UpdateStatus(ctx context.Context, booking *domain.Booking, from domain.BookingStatus) error {
	filter := bson.M{"_id": booking.ID, "status": from}
	result, err := br.collection.ReplaceOne(ctx, filter, booking)
	if err != nil {
		br.logger.Println(err)
		return err
	}
	if result.MatchedCount == 0 {
		exists, err := br.collection.CountDocuments(ctx, bson.M{"_id": booking.ID})
		if err != nil {
			br.logger.Println(err)
			return err
		}
		if exists == 0 {
			return domain.ErrBookingNotFound()
		}
		return domain.ErrInvalidTransition()
	}
	return nil
}

func (br *BookingRepo) GetByStudent(ctx context.Context, studentID primitive.ObjectID) (domain.Bookings, error) {
	return br.find(ctx, bson.M{"student_id": studentID})
}

func (br *BookingRepo) GetByLandlord(ctx context.Context, landlordID primitive.ObjectID) (domain.Bookings, error) {
	return br.find(ctx, bson.M{"landlord_id": landlordID})
}

func (br *BookingRepo) GetByProperty(ctx context.Context, propertyID primitive.ObjectID) (domain.Bookings, error) {
	return br.find(ctx, bson.M{"property_id": propertyID})
}

func (br *BookingRepo) find(ctx context.Context, filter bson.M) (domain.Bookings, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := br.collection.Find(ctx, filter, opts)
	if err != nil {
		br.logger.Println(err)
		return nil, err
	}
	defer cursor.Close(ctx)

	var bookings domain.Bookings
	if err := cursor.All(ctx, &bookings); err != nil {
		br.logger.Println(err)
		return nil, err
	}
	return bookings, nil
}
