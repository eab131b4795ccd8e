package routes

import (
	"github.com/gin-gonic/gin"

	"housing-service/handlers"
)

type ListingRouteHandler struct {
	listingHandler handlers.ListingHandler
}

func NewListingRouteHandler(listingHandler handlers.ListingHandler) ListingRouteHandler {
	return ListingRouteHandler{listingHandler}
}

func (rc *ListingRouteHandler) ListingRoute(rg *gin.RouterGroup) {
	router := rg.Group("/listings")
	router.Use(handlers.ExtractTraceInfoMiddleware())

	router.GET("/search", rc.listingHandler.SearchListings)
}
