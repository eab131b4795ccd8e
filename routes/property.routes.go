package routes

import (
	"github.com/gin-gonic/gin"

	"housing-service/domain"
	"housing-service/handlers"
)

type PropertyRouteHandler struct {
	propertyHandler handlers.PropertyHandler
	requireUser     gin.HandlerFunc
}

func NewPropertyRouteHandler(propertyHandler handlers.PropertyHandler, requireUser gin.HandlerFunc) PropertyRouteHandler {
	return PropertyRouteHandler{propertyHandler, requireUser}
}

func (rc *PropertyRouteHandler) PropertyRoute(rg *gin.RouterGroup) {
	router := rg.Group("/properties")
	router.Use(handlers.ExtractTraceInfoMiddleware())

	router.GET("/get/:propertyId", rc.propertyHandler.GetProperty)
	router.GET("/images/:propertyId", rc.propertyHandler.GetPropertyImages)

	landlord := router.Group("")
	landlord.Use(rc.requireUser, handlers.RequireRole(domain.Landlord))
	landlord.POST("/create", rc.propertyHandler.CreateProperty)
	landlord.PUT("/update/:propertyId", rc.propertyHandler.UpdateProperty)
	landlord.DELETE("/delete/:propertyId", rc.propertyHandler.DeleteProperty)
	landlord.GET("/mine", rc.propertyHandler.GetMyProperties)
}
