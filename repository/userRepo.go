package repository

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"housing-service/domain"
)

type UserStore interface {
	Insert(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByResetToken(ctx context.Context, token string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type UserRepo struct {
	collection *mongo.Collection
	logger     *log.Logger
}

func NewUserRepo(collection *mongo.Collection, logger *log.Logger) *UserRepo {
	return &UserRepo{
		collection: collection,
		logger:     logger,
	}
}

func (ur *UserRepo) Insert(ctx context.Context, user *domain.User) (*domain.User, error) {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	result, err := ur.collection.InsertOne(ctx, user)
	if err != nil {
		ur.logger.Println(err)
		return nil, err
	}
	user.ID = result.InsertedID.(primitive.ObjectID)
	return user, nil
}

func (ur *UserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	return ur.findOne(ctx, bson.M{"_id": id})
}

func (ur *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return ur.findOne(ctx, bson.M{"email": email})
}

func (ur *UserRepo) GetByResetToken(ctx context.Context, token string) (*domain.User, error) {
	return ur.findOne(ctx, bson.M{"reset_password_token": token})
}

func (ur *UserRepo) Update(ctx context.Context, user *domain.User) error {
	user.UpdatedAt = time.Now()

	result, err := ur.collection.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if err != nil {
		ur.logger.Println(err)
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (ur *UserRepo) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var user domain.User
	err := ur.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if err != mongo.ErrNoDocuments {
			ur.logger.Println(err)
		}
		return nil, err
	}
	return &user, nil
}
