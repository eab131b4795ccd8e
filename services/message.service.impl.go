package services

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"housing-service/domain"
	"housing-service/repository"
)

type MessageServiceImpl struct {
	messages repository.MessageStore
	validate *validator.Validate
	tracer   trace.Tracer
}

func NewMessageServiceImpl(messages repository.MessageStore, tracer trace.Tracer) MessageService {
	return &MessageServiceImpl{
		messages: messages,
		validate: validator.New(),
		tracer:   tracer,
	}
}

func (s *MessageServiceImpl) SendMessage(ctx context.Context, message *domain.Message) (*domain.Message, error) {
	ctx, span := s.tracer.Start(ctx, "MessageService.SendMessage")
	defer span.End()

	if message.SenderID == message.ReceiverID {
		return nil, domain.NewValidationError("receiver_id", "cannot message yourself")
	}
	if message.MessageType == "" {
		message.MessageType = domain.TextMessage
	}
	if err := s.validate.Struct(message); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, domain.NewValidationError("", err.Error())
	}

	message.ConversationID = domain.ConversationID(message.SenderID, message.ReceiverID)
	message.IsRead = false
	message.ReadAt = nil

	sent, err := s.messages.Insert(ctx, message)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetStatus(codes.Ok, "message sent")
	return sent, nil
}

func (s *MessageServiceImpl) GetConversation(ctx context.Context, userA primitive.ObjectID, userB primitive.ObjectID) (domain.Messages, error) {
	ctx, span := s.tracer.Start(ctx, "MessageService.GetConversation")
	defer span.End()

	return s.messages.GetConversation(ctx, domain.ConversationID(userA, userB))
}

func (s *MessageServiceImpl) ListConversations(ctx context.Context, userID primitive.ObjectID) ([]string, error) {
	return s.messages.ListConversations(ctx, userID)
}

func (s *MessageServiceImpl) MarkConversationRead(ctx context.Context, userA primitive.ObjectID, userB primitive.ObjectID, reader primitive.ObjectID) error {
	ctx, span := s.tracer.Start(ctx, "MessageService.MarkConversationRead")
	defer span.End()

	return s.messages.MarkConversationRead(ctx, domain.ConversationID(userA, userB), reader)
}

func (s *MessageServiceImpl) CountUnread(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return s.messages.CountUnread(ctx, userID)
}
