package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type GeocodeServiceImpl struct {
	baseURL        string
	client         *http.Client
	logger         *logrus.Logger
	Tracer         trace.Tracer
	CircuitBreaker *gobreaker.CircuitBreaker
}

func NewGeocodeServiceImpl(baseURL string, logger *logrus.Logger, tracer trace.Tracer) GeocodeService {
	circuitBreaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name: "GeocoderRequest",
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Infof("Circuit Breaker state changed from %s to %s", from, to)
		},
	})

	return &GeocodeServiceImpl{
		baseURL:        baseURL,
		client:         &http.Client{Timeout: 5 * time.Second},
		logger:         logger,
		Tracer:         tracer,
		CircuitBreaker: circuitBreaker,
	}
}

func (s *GeocodeServiceImpl) ReverseGeocode(ctx context.Context, latitude float64, longitude float64) (*GeocodeResult, error) {
	ctx, span := s.Tracer.Start(ctx, "GeocodeService.ReverseGeocode")
	defer span.End()

	if s.baseURL == "" {
		return nil, errors.New("geocoder not configured")
	}

	url := fmt.Sprintf("%s/reverse?lat=%f&lon=%f", s.baseURL, latitude, longitude)

	result, err := s.CircuitBreaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		resp, err := s.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("geocoder returned status %d", resp.StatusCode)
		}

		var geocoded GeocodeResult
		if err := json.NewDecoder(resp.Body).Decode(&geocoded); err != nil {
			return nil, err
		}
		return &geocoded, nil
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		s.logger.WithError(err).Warn("reverse geocoding failed")
		return nil, err
	}

	geocoded, ok := result.(*GeocodeResult)
	if !ok {
		return nil, errors.New("unexpected response type from Circuit Breaker")
	}
	span.SetStatus(codes.Ok, "reverse geocoding done")
	return geocoded, nil
}
