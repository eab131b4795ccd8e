package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"housing-service/domain"
	"housing-service/services"
)

type PropertyHandler struct {
	propertyService services.PropertyService
	Tracer          trace.Tracer
}

func NewPropertyHandler(propertyService services.PropertyService, tracer trace.Tracer) PropertyHandler {
	return PropertyHandler{propertyService, tracer}
}

func (h *PropertyHandler) CreateProperty(c *gin.Context) {
	spanCtx, span := h.Tracer.Start(c.Request.Context(), "PropertyHandler.CreateProperty")
	defer span.End()

	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
		return
	}

	var property domain.Property
	if err := c.ShouldBindJSON(&property); err != nil {
		span.SetStatus(codes.Error, "Invalid JSON request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON request"})
		return
	}

	property.LandlordID = user.ID
	if property.LandlordName == "" {
		property.LandlordName = user.Name
	}
	if property.LandlordPhone == "" {
		property.LandlordPhone = user.Mobile
	}

	created, err := h.propertyService.CreateProperty(spanCtx, &property)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		abortWithError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "property created")
	c.JSON(http.StatusCreated, created)
}

func (h *PropertyHandler) UpdateProperty(c *gin.Context) {
	spanCtx, span := h.Tracer.Start(c.Request.Context(), "PropertyHandler.UpdateProperty")
	defer span.End()

	propertyID, user, ok := h.propertyForLandlord(c, spanCtx)
	if !ok {
		span.SetStatus(codes.Error, "not property landlord")
		return
	}

	var property domain.Property
	if err := c.ShouldBindJSON(&property); err != nil {
		span.SetStatus(codes.Error, "Invalid JSON request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON request"})
		return
	}
	property.ID = propertyID
	property.LandlordID = user.ID

	updated, err := h.propertyService.UpdateProperty(spanCtx, &property)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		abortWithError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "property updated")
	c.JSON(http.StatusOK, updated)
}

func (h *PropertyHandler) DeleteProperty(c *gin.Context) {
	spanCtx, span := h.Tracer.Start(c.Request.Context(), "PropertyHandler.DeleteProperty")
	defer span.End()

	propertyID, _, ok := h.propertyForLandlord(c, spanCtx)
	if !ok {
		span.SetStatus(codes.Error, "not property landlord")
		return
	}

	if err := h.propertyService.DeleteProperty(spanCtx, propertyID); err != nil {
		span.SetStatus(codes.Error, err.Error())
		abortWithError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "property deleted")
	c.JSON(http.StatusOK, gin.H{"message": "property deleted"})
}

func (h *PropertyHandler) GetProperty(c *gin.Context) {
	spanCtx, span := h.Tracer.Start(c.Request.Context(), "PropertyHandler.GetProperty")
	defer span.End()

	propertyID, err := primitive.ObjectIDFromHex(c.Param("propertyId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid property id"})
		return
	}

	property, err := h.propertyService.GetPropertyByID(spanCtx, propertyID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, property)
}

func (h *PropertyHandler) GetMyProperties(c *gin.Context) {
	spanCtx, span := h.Tracer.Start(c.Request.Context(), "PropertyHandler.GetMyProperties")
	defer span.End()

	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
		return
	}

	properties, err := h.propertyService.GetPropertiesByLandlord(spanCtx, user.ID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, properties)
}

func (h *PropertyHandler) GetPropertyImages(c *gin.Context) {
	spanCtx, span := h.Tracer.Start(c.Request.Context(), "PropertyHandler.GetPropertyImages")
	defer span.End()

	propertyID, err := primitive.ObjectIDFromHex(c.Param("propertyId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid property id"})
		return
	}

	images, err := h.propertyService.GetPropertyImages(spanCtx, propertyID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, images)
}

// propertyForLandlord parses the property id and checks the current user
// owns that property. It writes the response itself on failure.
func (h *PropertyHandler) propertyForLandlord(c *gin.Context, spanCtx context.Context) (primitive.ObjectID, *domain.User, bool) {
	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
		return primitive.NilObjectID, nil, false
	}

	propertyID, err := primitive.ObjectIDFromHex(c.Param("propertyId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid property id"})
		return primitive.NilObjectID, nil, false
	}

	property, err := h.propertyService.GetPropertyByID(spanCtx, propertyID)
	if err != nil {
		abortWithError(c, err)
		return primitive.NilObjectID, nil, false
	}
	if property.LandlordID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "only the landlord can manage this property"})
		return primitive.NilObjectID, nil, false
	}
	return propertyID, user, true
}
