package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"housing-service/domain"
	"housing-service/services"
)

type ReviewHandler struct {
	reviewService services.ReviewService
	Tracer        trace.Tracer
}

func NewReviewHandler(reviewService services.ReviewService, tracer trace.Tracer) ReviewHandler {
	return ReviewHandler{reviewService, tracer}
}

func (h *ReviewHandler) CreateReview(c *gin.Context) {
	spanCtx, span := h.Tracer.Start(c.Request.Context(), "ReviewHandler.CreateReview")
	defer span.End()

	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
		return
	}

	var review domain.Review
	if err := c.ShouldBindJSON(&review); err != nil {
		span.SetStatus(codes.Error, "Invalid JSON request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON request"})
		return
	}

	review.UserID = user.ID
	review.UserName = user.Name
	review.UserRole = user.UserRole

	created, err := h.reviewService.CreateReview(spanCtx, &review)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		abortWithError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "review created")
	c.JSON(http.StatusCreated, created)
}

func (h *ReviewHandler) GetReviewsByProperty(c *gin.Context) {
	spanCtx, span := h.Tracer.Start(c.Request.Context(), "ReviewHandler.GetReviewsByProperty")
	defer span.End()

	propertyID, err := primitive.ObjectIDFromHex(c.Param("propertyId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid property id"})
		return
	}

	reviews, err := h.reviewService.GetReviewsByProperty(spanCtx, propertyID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, reviews)
}

func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	spanCtx, span := h.Tracer.Start(c.Request.Context(), "ReviewHandler.DeleteReview")
	defer span.End()

	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
		return
	}

	reviewID, err := primitive.ObjectIDFromHex(c.Param("reviewId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid review id"})
		return
	}

	if err := h.reviewService.DeleteReview(spanCtx, reviewID, user.ID); err != nil {
		span.SetStatus(codes.Error, err.Error())
		abortWithError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "review deleted")
	c.JSON(http.StatusOK, gin.H{"message": "review deleted"})
}

func (h *ReviewHandler) RespondToReview(c *gin.Context) {
	spanCtx, span := h.Tracer.Start(c.Request.Context(), "ReviewHandler.RespondToReview")
	defer span.End()

	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
		return
	}

	reviewID, err := primitive.ObjectIDFromHex(c.Param("reviewId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid review id"})
		return
	}

	var requestBody struct {
		Response string `json:"response"`
	}
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		span.SetStatus(codes.Error, "Invalid JSON request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON request"})
		return
	}

	review, err := h.reviewService.RespondToReview(spanCtx, reviewID, user.ID, requestBody.Response)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, review)
}

func (h *ReviewHandler) VoteHelpful(c *gin.Context) {
	spanCtx, span := h.Tracer.Start(c.Request.Context(), "ReviewHandler.VoteHelpful")
	defer span.End()

	reviewID, err := primitive.ObjectIDFromHex(c.Param("reviewId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid review id"})
		return
	}

	var requestBody struct {
		Helpful bool `json:"helpful"`
	}
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		span.SetStatus(codes.Error, "Invalid JSON request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON request"})
		return
	}

	review, err := h.reviewService.VoteHelpful(spanCtx, reviewID, requestBody.Helpful)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, review)
}
