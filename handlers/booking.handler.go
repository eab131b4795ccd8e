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

type BookingHandler struct {
	bookingService services.BookingService
	Tracer         trace.Tracer
}

func NewBookingHandler(bookingService services.BookingService, tracer trace.Tracer) BookingHandler {
	return BookingHandler{bookingService, tracer}
}

func (h *BookingHandler) CreateBooking(c *gin.Context) {
	spanCtx, span := h.Tracer.Start(c.Request.Context(), "BookingHandler.CreateBooking")
	defer span.End()

	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
		return
	}

	var booking domain.Booking
	if err := c.ShouldBindJSON(&booking); err != nil {
		span.SetStatus(codes.Error, "Invalid JSON request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON request"})
		return
	}

	booking.StudentID = user.ID
	if booking.StudentName == "" {
		booking.StudentName = user.Name
	}
	if booking.StudentEmail == "" {
		booking.StudentEmail = user.Email
	}
	if booking.StudentPhone == "" {
		booking.StudentPhone = user.Mobile
	}

	created, err := h.bookingService.CreateBooking(spanCtx, &booking)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		abortWithError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "booking created")
	c.JSON(http.StatusCreated, created)
}

func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	spanCtx, span := h.Tracer.Start(c.Request.Context(), "BookingHandler.ConfirmBooking")
	defer span.End()

	bookingID, _, ok := h.bookingForLandlord(c, spanCtx)
	if !ok {
		span.SetStatus(codes.Error, "not booking landlord")
		return
	}

	booking, err := h.bookingService.ConfirmBooking(spanCtx, bookingID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		abortWithError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "booking confirmed")
	c.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) RejectBooking(c *gin.Context) {
	spanCtx, span := h.Tracer.Start(c.Request.Context(), "BookingHandler.RejectBooking")
	defer span.End()

	bookingID, _, ok := h.bookingForLandlord(c, spanCtx)
	if !ok {
		span.SetStatus(codes.Error, "not booking landlord")
		return
	}

	var requestBody struct {
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		span.SetStatus(codes.Error, "Invalid JSON request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON request"})
		return
	}

	booking, err := h.bookingService.RejectBooking(spanCtx, bookingID, requestBody.Reason)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		abortWithError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "booking rejected")
	c.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) CancelBooking(c *gin.Context) {
	spanCtx, span := h.Tracer.Start(c.Request.Context(), "BookingHandler.CancelBooking")
	defer span.End()

	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
		return
	}

	bookingID, err := primitive.ObjectIDFromHex(c.Param("bookingId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	existing, err := h.bookingService.GetBookingByID(spanCtx, bookingID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		abortWithError(c, err)
		return
	}
	if existing.StudentID != user.ID && existing.LandlordID != user.ID {
		span.SetStatus(codes.Error, "not a booking participant")
		c.JSON(http.StatusForbidden, gin.H{"error": "only a booking participant can cancel"})
		return
	}

	var requestBody struct {
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		span.SetStatus(codes.Error, "Invalid JSON request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON request"})
		return
	}

	booking, err := h.bookingService.CancelBooking(spanCtx, bookingID, requestBody.Reason)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		abortWithError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "booking cancelled")
	c.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) CompleteBooking(c *gin.Context) {
	spanCtx, span := h.Tracer.Start(c.Request.Context(), "BookingHandler.CompleteBooking")
	defer span.End()

	bookingID, _, ok := h.bookingForLandlord(c, spanCtx)
	if !ok {
		span.SetStatus(codes.Error, "not booking landlord")
		return
	}

	booking, err := h.bookingService.CompleteBooking(spanCtx, bookingID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		abortWithError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "booking completed")
	c.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) UpdatePaymentStatus(c *gin.Context) {
	spanCtx, span := h.Tracer.Start(c.Request.Context(), "BookingHandler.UpdatePaymentStatus")
	defer span.End()

	bookingID, _, ok := h.bookingForLandlord(c, spanCtx)
	if !ok {
		span.SetStatus(codes.Error, "not booking landlord")
		return
	}

	var requestBody struct {
		PaymentStatus domain.PaymentStatus `json:"payment_status"`
		PaymentMethod string               `json:"payment_method"`
	}
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		span.SetStatus(codes.Error, "Invalid JSON request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON request"})
		return
	}

	booking, err := h.bookingService.UpdatePaymentStatus(spanCtx, bookingID, requestBody.PaymentStatus, requestBody.PaymentMethod)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		abortWithError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "payment status updated")
	c.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	spanCtx, span := h.Tracer.Start(c.Request.Context(), "BookingHandler.GetBooking")
	defer span.End()

	bookingID, err := primitive.ObjectIDFromHex(c.Param("bookingId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	booking, err := h.bookingService.GetBookingByID(spanCtx, bookingID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		abortWithError(c, err)
		return
	}

	user, ok := CurrentUser(c)
	if !ok || (booking.StudentID != user.ID && booking.LandlordID != user.ID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not a booking participant"})
		return
	}

	c.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) GetMyBookings(c *gin.Context) {
	spanCtx, span := h.Tracer.Start(c.Request.Context(), "BookingHandler.GetMyBookings")
	defer span.End()

	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
		return
	}

	var bookings domain.Bookings
	var err error
	if user.UserRole == domain.Landlord {
		bookings, err = h.bookingService.GetBookingsByLandlord(spanCtx, user.ID)
	} else {
		bookings, err = h.bookingService.GetBookingsByStudent(spanCtx, user.ID)
	}
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) GetBookingsByProperty(c *gin.Context) {
	spanCtx, span := h.Tracer.Start(c.Request.Context(), "BookingHandler.GetBookingsByProperty")
	defer span.End()

	propertyID, err := primitive.ObjectIDFromHex(c.Param("propertyId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid property id"})
		return
	}

	bookings, err := h.bookingService.GetBookingsByProperty(spanCtx, propertyID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// bookingForLandlord parses the booking id and checks the current user is
// the landlord on that booking. It writes the response itself on failure.
func (h *BookingHandler) bookingForLandlord(c *gin.Context, spanCtx context.Context) (primitive.ObjectID, *domain.User, bool) {
	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
		return primitive.NilObjectID, nil, false
	}

	bookingID, err := primitive.ObjectIDFromHex(c.Param("bookingId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return primitive.NilObjectID, nil, false
	}

	booking, err := h.bookingService.GetBookingByID(spanCtx, bookingID)
	if err != nil {
		abortWithError(c, err)
		return primitive.NilObjectID, nil, false
	}
	if booking.LandlordID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "only the landlord can perform this action"})
		return primitive.NilObjectID, nil, false
	}
	return bookingID, user, true
}
