package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"housing-service/domain"
)

// ImageCacheStore is the cache-aside contract for per-property image
// metadata. The Redis cache in package cache implements it.
type ImageCacheStore interface {
	GetImages(propertyID string, ctx context.Context) ([]domain.Image, error)
	PostImages(propertyID string, images []domain.Image, ctx context.Context) error
	Invalidate(propertyID string, ctx context.Context)
}

type PropertyService interface {
	CreateProperty(ctx context.Context, property *domain.Property) (*domain.Property, error)
	UpdateProperty(ctx context.Context, property *domain.Property) (*domain.Property, error)
	DeleteProperty(ctx context.Context, id primitive.ObjectID) error
	GetPropertyByID(ctx context.Context, id primitive.ObjectID) (*domain.Property, error)
	GetPropertiesByLandlord(ctx context.Context, landlordID primitive.ObjectID) (domain.Properties, error)
	GetPropertyImages(ctx context.Context, id primitive.ObjectID) ([]domain.Image, error)
}
