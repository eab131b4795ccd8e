package repository

import (
	"context"
	"log"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"housing-service/domain"
)

// PropertyStore is the narrow contract the services consume. The mongo
// implementation guarantees single-document atomicity for the bed
// reservation and release updates.
type PropertyStore interface {
	Insert(ctx context.Context, property *domain.Property) (*domain.Property, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Property, error)
	Update(ctx context.Context, property *domain.Property) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Search(ctx context.Context, filter domain.ListingFilter) (domain.Properties, error)
	GetByLandlord(ctx context.Context, landlordID primitive.ObjectID) (domain.Properties, error)

	ReserveBeds(ctx context.Context, propertyID primitive.ObjectID, roomType domain.RoomTypeKind, count int) error
	ReleaseBeds(ctx context.Context, propertyID primitive.ObjectID, roomType domain.RoomTypeKind, count int) error

	IncrementViews(ctx context.Context, id primitive.ObjectID) error
	IncrementInquiries(ctx context.Context, id primitive.ObjectID) error
	IncrementBookings(ctx context.Context, id primitive.ObjectID) error
	UpdateRatingStats(ctx context.Context, id primitive.ObjectID, average float64, total int) error
}

type PropertyRepo struct {
	collection *mongo.Collection
	logger     *log.Logger
}

func NewPropertyRepo(collection *mongo.Collection, logger *log.Logger) *PropertyRepo {
	return &PropertyRepo{
		collection: collection,
		logger:     logger,
	}
}

func (pr *PropertyRepo) Insert(ctx context.Context, property *domain.Property) (*domain.Property, error) {
	now := time.Now()
	property.CreatedAt = now
	property.UpdatedAt = now

	result, err := pr.collection.InsertOne(ctx, property)
	if err != nil {
		pr.logger.Println(err)
		return nil, err
	}
	property.ID = result.InsertedID.(primitive.ObjectID)
	return property, nil
}

func (pr *PropertyRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Property, error) {
	var property domain.Property
	err := pr.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&property)
	if err == mongo.ErrNoDocuments {
		return nil, domain.ErrPropertyNotFound()
	}
	if err != nil {
		pr.logger.Println(err)
		return nil, err
	}
	return &property, nil
}

func (pr *PropertyRepo) Update(ctx context.Context, property *domain.Property) error {
	property.UpdatedAt = time.Now()

	result, err := pr.collection.ReplaceOne(ctx, bson.M{"_id": property.ID}, property)
	if err != nil {
		pr.logger.Println(err)
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrPropertyNotFound()
	}
	return nil
}

func (pr *PropertyRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := pr.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		pr.logger.Println(err)
		return err
	}
	if result.DeletedCount == 0 {
		return domain.ErrPropertyNotFound()
	}
	return nil
}

func (pr *PropertyRepo) Search(ctx context.Context, filter domain.ListingFilter) (domain.Properties, error) {
	filter.Normalize()

	query := bson.M{"is_available": true}
	if filter.City != "" {
		query["city"] = primitive.Regex{Pattern: regexp.QuoteMeta(filter.City), Options: "i"}
	}
	if filter.PropertyType != "" {
		query["property_type"] = filter.PropertyType
	}
	if filter.GenderPreference != "" {
		query["gender_preference"] = filter.GenderPreference
	}
	price := bson.M{}
	if filter.MinPrice != nil {
		price["$gte"] = *filter.MinPrice
	}
	if filter.MaxPrice != nil {
		price["$lte"] = *filter.MaxPrice
	}
	if len(price) > 0 {
		query["price"] = price
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(filter.Skip())).
		SetLimit(int64(filter.Limit))

	cursor, err := pr.collection.Find(ctx, query, opts)
	if err != nil {
		pr.logger.Println(err)
		return nil, err
	}
	defer cursor.Close(ctx)

	var properties domain.Properties
	if err := cursor.All(ctx, &properties); err != nil {
		pr.logger.Println(err)
		return nil, err
	}
	return properties, nil
}

func (pr *PropertyRepo) GetByLandlord(ctx context.Context, landlordID primitive.ObjectID) (domain.Properties, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := pr.collection.Find(ctx, bson.M{"landlord_id": landlordID}, opts)
	if err != nil {
		pr.logger.Println(err)
		return nil, err
	}
	defer cursor.Close(ctx)

	var properties domain.Properties
	if err := cursor.All(ctx, &properties); err != nil {
		pr.logger.Println(err)
		return nil, err
	}
	return properties, nil
}

// ReserveBeds increments occupied on one room type and the property
// aggregate in a single guarded update. The filter only matches when the
// requested count still fits the capacity, so two racing confirmations can
// never oversell the same room type.
func (pr *PropertyRepo) ReserveBeds(ctx context.Context, propertyID primitive.ObjectID, roomType domain.RoomTypeKind, count int) error {
	if count < 1 {
		return domain.NewValidationError("count", "must reserve at least one bed")
	}

	filter := bson.M{
		"_id": propertyID,
		"$expr": bson.M{"$anyElementTrue": bson.M{"$map": bson.M{
			"input": "$room_types",
			"as":    "rt",
			"in": bson.M{"$and": bson.A{
				bson.M{"$eq": bson.A{"$$rt.type", roomType}},
				bson.M{"$lte": bson.A{
					bson.M{"$add": bson.A{"$$rt.occupied", count}},
					"$$rt.capacity",
				}},
			}},
		}}},
	}
	update := bson.M{
		"$inc": bson.M{
			"room_types.$[rt].occupied": count,
			"current_occupancy":         count,
		},
		"$set": bson.M{"updated_at": time.Now()},
	}
	opts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{bson.M{"rt.type": roomType}},
	})

	result, err := pr.collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		pr.logger.Println(err)
		return err
	}
	if result.MatchedCount == 0 {
		return pr.diagnoseReserveFailure(ctx, propertyID, roomType)
	}
	return nil
}

// ReleaseBeds decrements occupied on one room type and the property
// aggregate. A release that would go negative is refused and reported as a
// consistency bug.
func (pr *PropertyRepo) ReleaseBeds(ctx context.Context, propertyID primitive.ObjectID, roomType domain.RoomTypeKind, count int) error {
	if count < 1 {
		return domain.NewValidationError("count", "must release at least one bed")
	}

	filter := bson.M{
		"_id": propertyID,
		"room_types": bson.M{"$elemMatch": bson.M{
			"type":     roomType,
			"occupied": bson.M{"$gte": count},
		}},
	}
	update := bson.M{
		"$inc": bson.M{
			"room_types.$[rt].occupied": -count,
			"current_occupancy":         -count,
		},
		"$set": bson.M{"updated_at": time.Now()},
	}
	opts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{bson.M{"rt.type": roomType}},
	})

	result, err := pr.collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		pr.logger.Println(err)
		return err
	}
	if result.MatchedCount == 0 {
		property, err := pr.GetByID(ctx, propertyID)
		if err != nil {
			return err
		}
		if _, ok := property.RoomTypeByKind(roomType); !ok {
			return domain.ErrRoomTypeNotFound()
		}
		pr.logger.Printf("release of %d beds on %s/%s would go negative", count, propertyID.Hex(), roomType)
		return domain.ErrInvalidRelease()
	}
	return nil
}

func (pr *PropertyRepo) diagnoseReserveFailure(ctx context.Context, propertyID primitive.ObjectID, roomType domain.RoomTypeKind) error {
	property, err := pr.GetByID(ctx, propertyID)
	if err != nil {
		return err
	}
	if _, ok := property.RoomTypeByKind(roomType); !ok {
		return domain.ErrRoomTypeNotFound()
	}
	return domain.ErrCapacityExceeded()
}

func (pr *PropertyRepo) IncrementViews(ctx context.Context, id primitive.ObjectID) error {
	return pr.incrementCounter(ctx, id, "views")
}

func (pr *PropertyRepo) IncrementInquiries(ctx context.Context, id primitive.ObjectID) error {
	return pr.incrementCounter(ctx, id, "inquiries")
}

func (pr *PropertyRepo) IncrementBookings(ctx context.Context, id primitive.ObjectID) error {
	return pr.incrementCounter(ctx, id, "bookings")
}

func (pr *PropertyRepo) incrementCounter(ctx context.Context, id primitive.ObjectID, field string) error {
	result, err := pr.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{field: 1}})
	if err != nil {
		pr.logger.Println(err)
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrPropertyNotFound()
	}
	return nil
}

func (pr *PropertyRepo) UpdateRatingStats(ctx context.Context, id primitive.ObjectID, average float64, total int) error {
	update := bson.M{"$set": bson.M{
		"average_rating": average,
		"total_reviews":  total,
	}}
	result, err := pr.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		pr.logger.Println(err)
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrPropertyNotFound()
	}
	return nil
}
