package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"housing-service/domain"
	"housing-service/services"
)

type ListingHandler struct {
	listingService services.ListingService
	Tracer         trace.Tracer
}

func NewListingHandler(listingService services.ListingService, tracer trace.Tracer) ListingHandler {
	return ListingHandler{listingService, tracer}
}

// SearchListings is the public browse endpoint. All filters are query
// parameters and all of them are optional.
func (h *ListingHandler) SearchListings(c *gin.Context) {
	spanCtx, span := h.Tracer.Start(c.Request.Context(), "ListingHandler.SearchListings")
	defer span.End()

	filter, err := filterFromQuery(c)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		abortWithError(c, err)
		return
	}

	properties, err := h.listingService.Search(spanCtx, filter)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		abortWithError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "listings fetched")
	c.JSON(http.StatusOK, gin.H{
		"page":    filter.Page,
		"limit":   filter.Limit,
		"results": properties,
	})
}

func filterFromQuery(c *gin.Context) (domain.ListingFilter, error) {
	var filter domain.ListingFilter

	filter.City = c.Query("city")
	filter.PropertyType = domain.PropertyKind(c.Query("property_type"))
	filter.GenderPreference = domain.GenderPreference(c.Query("gender_preference"))

	if raw := c.Query("min_price"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return filter, domain.NewValidationError("min_price", "must be a number")
		}
		filter.MinPrice = &value
	}
	if raw := c.Query("max_price"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return filter, domain.NewValidationError("max_price", "must be a number")
		}
		filter.MaxPrice = &value
	}

	if raw := c.Query("page"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			return filter, domain.NewValidationError("page", "must be an integer")
		}
		filter.Page = value
	}
	if raw := c.Query("limit"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			return filter, domain.NewValidationError("limit", "must be an integer")
		}
		filter.Limit = value
	}

	return filter, nil
}
