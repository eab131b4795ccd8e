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

type ReviewStore interface {
	Insert(ctx context.Context, review *domain.Review) (*domain.Review, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Review, error)
	GetByProperty(ctx context.Context, propertyID primitive.ObjectID) (domain.Reviews, error)
	Update(ctx context.Context, review *domain.Review) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type ReviewRepo struct {
	collection *mongo.Collection
	logger     *log.Logger
}

func NewReviewRepo(collection *mongo.Collection, logger *log.Logger) *ReviewRepo {
	return &ReviewRepo{
		collection: collection,
		logger:     logger,
	}
}

func (rr *ReviewRepo) Insert(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	now := time.Now()
	review.CreatedAt = now
	review.UpdatedAt = now

	result, err := rr.collection.InsertOne(ctx, review)
	if err != nil {
		rr.logger.Println(err)
		return nil, err
	}
	review.ID = result.InsertedID.(primitive.ObjectID)
	return review, nil
}

func (rr *ReviewRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Review, error) {
	var review domain.Review
	err := rr.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&review)
	if err != nil {
		if err != mongo.ErrNoDocuments {
			rr.logger.Println(err)
		}
		return nil, err
	}
	return &review, nil
}

func (rr *ReviewRepo) GetByProperty(ctx context.Context, propertyID primitive.ObjectID) (domain.Reviews, error) {
	filter := bson.M{"property_id": propertyID, "is_approved": true}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := rr.collection.Find(ctx, filter, opts)
	if err != nil {
		rr.logger.Println(err)
		return nil, err
	}
	defer cursor.Close(ctx)

	var reviews domain.Reviews
	if err := cursor.All(ctx, &reviews); err != nil {
		rr.logger.Println(err)
		return nil, err
	}
	return reviews, nil
}

func (rr *ReviewRepo) Update(ctx context.Context, review *domain.Review) error {
	review.UpdatedAt = time.Now()

	result, err := rr.collection.ReplaceOne(ctx, bson.M{"_id": review.ID}, review)
	if err != nil {
		rr.logger.Println(err)
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (rr *ReviewRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := rr.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		rr.logger.Println(err)
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
