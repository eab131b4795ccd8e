package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"housing-service/domain"
)

const (
	imageKeyFormat = "property_images:%s"
	imageTTL       = 300 * time.Second
)

// ImageCache keeps per-property image metadata in Redis. Only the
// {url, caption, is_main} tuples are cached, never image bytes.
type ImageCache struct {
	cli    *redis.Client
	logger *logrus.Logger
	Tracer trace.Tracer
}

func New(host string, port string, logger *logrus.Logger, tracer trace.Tracer) *ImageCache {
	redisAddress := fmt.Sprintf("%s:%s", host, port)

	client := redis.NewClient(&redis.Options{
		Addr: redisAddress,
	})

	return &ImageCache{
		cli:    client,
		logger: logger,
		Tracer: tracer,
	}
}

func (ic *ImageCache) Ping() error {
	return ic.cli.Ping().Err()
}

func (ic *ImageCache) PostImages(propertyID string, images []domain.Image, ctx context.Context) error {
	_, span := ic.Tracer.Start(ctx, "ImageCache.PostImages")
	defer span.End()

	payload, err := json.Marshal(images)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	err = ic.cli.Set(constructImageKey(propertyID), payload, imageTTL).Err()
	if err != nil {
		span.SetStatus(codes.Error, "Error setting images in Redis: "+err.Error())
		return err
	}
	return nil
}

func (ic *ImageCache) GetImages(propertyID string, ctx context.Context) ([]domain.Image, error) {
	_, span := ic.Tracer.Start(ctx, "ImageCache.GetImages")
	defer span.End()

	payload, err := ic.cli.Get(constructImageKey(propertyID)).Bytes()
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	var images []domain.Image
	if err := json.Unmarshal(payload, &images); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	ic.logger.Debug("image cache hit")
	return images, nil
}

func (ic *ImageCache) Invalidate(propertyID string, ctx context.Context) {
	_, span := ic.Tracer.Start(ctx, "ImageCache.Invalidate")
	defer span.End()

	if err := ic.cli.Del(constructImageKey(propertyID)).Err(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		ic.logger.WithError(err).Warn("could not invalidate image cache")
	}
}

func constructImageKey(propertyID string) string {
	return fmt.Sprintf(imageKeyFormat, propertyID)
}
