package routes

import (
	"github.com/gin-gonic/gin"

	"housing-service/domain"
	"housing-service/handlers"
)

type ReviewRouteHandler struct {
	reviewHandler handlers.ReviewHandler
	requireUser   gin.HandlerFunc
}

func NewReviewRouteHandler(reviewHandler handlers.ReviewHandler, requireUser gin.HandlerFunc) ReviewRouteHandler {
	return ReviewRouteHandler{reviewHandler, requireUser}
}

func (rc *ReviewRouteHandler) ReviewRoute(rg *gin.RouterGroup) {
	router := rg.Group("/reviews")
	router.Use(handlers.ExtractTraceInfoMiddleware())

	router.GET("/property/:propertyId", rc.reviewHandler.GetReviewsByProperty)
	router.POST("/vote/:reviewId", rc.reviewHandler.VoteHelpful)

	authed := router.Group("")
	authed.Use(rc.requireUser)
	authed.POST("/create", handlers.RequireRole(domain.Student), rc.reviewHandler.CreateReview)
	authed.DELETE("/delete/:reviewId", rc.reviewHandler.DeleteReview)
	authed.POST("/respond/:reviewId", handlers.RequireRole(domain.Landlord), rc.reviewHandler.RespondToReview)
}
