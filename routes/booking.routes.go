package routes

import (
	"github.com/gin-gonic/gin"

	"housing-service/domain"
	"housing-service/handlers"
)

type BookingRouteHandler struct {
	bookingHandler handlers.BookingHandler
	requireUser    gin.HandlerFunc
}

func NewBookingRouteHandler(bookingHandler handlers.BookingHandler, requireUser gin.HandlerFunc) BookingRouteHandler {
	return BookingRouteHandler{bookingHandler, requireUser}
}

func (rc *BookingRouteHandler) BookingRoute(rg *gin.RouterGroup) {
	router := rg.Group("/bookings")
	router.Use(handlers.ExtractTraceInfoMiddleware(), rc.requireUser)

	router.POST("/create", handlers.RequireRole(domain.Student), rc.bookingHandler.CreateBooking)
	router.GET("/get/:bookingId", rc.bookingHandler.GetBooking)
	router.GET("/mine", rc.bookingHandler.GetMyBookings)
	router.POST("/cancel/:bookingId", rc.bookingHandler.CancelBooking)

	landlord := router.Group("")
	landlord.Use(handlers.RequireRole(domain.Landlord))
	landlord.POST("/confirm/:bookingId", rc.bookingHandler.ConfirmBooking)
	landlord.POST("/reject/:bookingId", rc.bookingHandler.RejectBooking)
	landlord.POST("/complete/:bookingId", rc.bookingHandler.CompleteBooking)
	landlord.PATCH("/payment/:bookingId", rc.bookingHandler.UpdatePaymentStatus)
	landlord.GET("/property/:propertyId", rc.bookingHandler.GetBookingsByProperty)
}
