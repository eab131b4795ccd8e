package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"housing-service/domain"
)

type MessageService interface {
	SendMessage(ctx context.Context, message *domain.Message) (*domain.Message, error)
	GetConversation(ctx context.Context, userA primitive.ObjectID, userB primitive.ObjectID) (domain.Messages, error)
	ListConversations(ctx context.Context, userID primitive.ObjectID) ([]string, error)
	MarkConversationRead(ctx context.Context, userA primitive.ObjectID, userB primitive.ObjectID, reader primitive.ObjectID) error
	CountUnread(ctx context.Context, userID primitive.ObjectID) (int64, error)
}
