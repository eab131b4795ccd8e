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

type MessageStore interface {
	Insert(ctx context.Context, message *domain.Message) (*domain.Message, error)
	GetConversation(ctx context.Context, conversationID string) (domain.Messages, error)
	ListConversations(ctx context.Context, userID primitive.ObjectID) ([]string, error)
	MarkConversationRead(ctx context.Context, conversationID string, receiverID primitive.ObjectID) error
	CountUnread(ctx context.Context, receiverID primitive.ObjectID) (int64, error)
}

type MessageRepo struct {
	collection *mongo.Collection
	logger     *log.Logger
}

func NewMessageRepo(collection *mongo.Collection, logger *log.Logger) *MessageRepo {
	return &MessageRepo{
		collection: collection,
		logger:     logger,
	}
}

func (mr *MessageRepo) Insert(ctx context.Context, message *domain.Message) (*domain.Message, error) {
	message.CreatedAt = time.Now()

	result, err := mr.collection.InsertOne(ctx, message)
	if err != nil {
		mr.logger.Println(err)
		return nil, err
	}
	message.ID = result.InsertedID.(primitive.ObjectID)
	return message, nil
}

func (mr *MessageRepo) GetConversation(ctx context.Context, conversationID string) (domain.Messages, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := mr.collection.Find(ctx, bson.M{"conversation_id": conversationID}, opts)
	if err != nil {
		mr.logger.Println(err)
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages domain.Messages
	if err := cursor.All(ctx, &messages); err != nil {
		mr.logger.Println(err)
		return nil, err
	}
	return messages, nil
}

func (mr *MessageRepo) ListConversations(ctx context.Context, userID primitive.ObjectID) ([]string, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"sender_id": userID},
		bson.M{"receiver_id": userID},
	}}
	raw, err := mr.collection.Distinct(ctx, "conversation_id", filter)
	if err != nil {
		mr.logger.Println(err)
		return nil, err
	}

	conversations := make([]string, 0, len(raw))
	for _, v := range raw {
		if id, ok := v.(string); ok {
			conversations = append(conversations, id)
		}
	}
	return conversations, nil
}

func (mr *MessageRepo) MarkConversationRead(ctx context.Context, conversationID string, receiverID primitive.ObjectID) error {
	now := time.Now()
	filter := bson.M{
		"conversation_id": conversationID,
		"receiver_id":     receiverID,
		"is_read":         false,
	}
	update := bson.M{"$set": bson.M{"is_read": true, "read_at": now}}

	_, err := mr.collection.UpdateMany(ctx, filter, update)
	if err != nil {
		mr.logger.Println(err)
	}
	return err
}

func (mr *MessageRepo) CountUnread(ctx context.Context, receiverID primitive.ObjectID) (int64, error) {
	count, err := mr.collection.CountDocuments(ctx, bson.M{"receiver_id": receiverID, "is_read": false})
	if err != nil {
		mr.logger.Println(err)
		return 0, err
	}
	return count, nil
}
