package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"urbancab/internal/domain"
	"urbancab/internal/service"
)

// BookingHandler handles HTTP requests for bookings.
type BookingHandler struct {
	bookingService    *service.BookingService
	assignmentService *service.AssignmentService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(bookingService *service.BookingService, assignmentService *service.AssignmentService) *BookingHandler {
	return &BookingHandler{
		bookingService:    bookingService,
		assignmentService: assignmentService,
	}
}

// CreateBookingRequest is the HTTP request body for creating a booking.
type CreateBookingRequest struct {
	TripID          string  `json:"trip_id"`
	PickupLocation  string  `json:"pickup_location"`
	DropoffLocation string  `json:"dropoff_location"`
	BookingDate     string  `json:"booking_date"` // RFC 3339
	EstimatedKm     float64 `json:"estimated_km"`
	TotalDays       int     `json:"total_days,omitempty"` // 0 derives from trip end
}

// UpdateBookingStatusRequest is the HTTP request body for a status change.
type UpdateBookingStatusRequest struct {
	Status string `json:"status"` // IN_PROGRESS, COMPLETED, CANCELLED
}

// AssignDriverRequest is the HTTP request body for a dealer assignment.
type AssignDriverRequest struct {
	DriverID string `json:"driver_id"`
}

// MarkPaymentRequest is the HTTP request body for flipping payment status.
type MarkPaymentRequest struct {
	PaymentStatus string `json:"payment_status"` // PAID, FAILED
}

// BookingResponse is the booking representation returned to clients.
type BookingResponse struct {
	ID              string  `json:"id"`
	TripID          string  `json:"trip_id"`
	CustomerID      string  `json:"customer_id"`
	DriverID        string  `json:"driver_id,omitempty"`
	DealerID        string  `json:"dealer_id,omitempty"`
	PickupLocation  string  `json:"pickup_location"`
	DropoffLocation string  `json:"dropoff_location"`
	BookingDate     string  `json:"booking_date"`
	EstimatedKm     float64 `json:"estimated_km"`
	TotalDays       int     `json:"total_days"`
	FinalPrice      int64   `json:"final_price"`
	Status          string  `json:"status"`
	PaymentStatus   string  `json:"payment_status"`
	CreatedAt       string  `json:"created_at"`
}

// CreateBooking handles POST /v1/bookings
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	bookingDate, err := time.Parse(time.RFC3339, req.BookingDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid booking_date"})
		return
	}

	booking, err := h.bookingService.CreateBooking(c.Request.Context(), caller, service.CreateBookingRequest{
		TripID:          req.TripID,
		PickupLocation:  req.PickupLocation,
		DropoffLocation: req.DropoffLocation,
		BookingDate:     bookingDate,
		EstimatedKm:     req.EstimatedKm,
		TotalDays:       req.TotalDays,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toBookingResponse(booking))
}

// GetBooking handles GET /v1/bookings/:id
func (h *BookingHandler) GetBooking(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	booking, err := h.bookingService.GetBooking(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toBookingResponse(booking))
}

// ListBookings handles GET /v1/bookings
func (h *BookingHandler) ListBookings(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	bookings, err := h.bookingService.ListBookings(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		response = append(response, toBookingResponse(b))
	}
	respondJSON(c, http.StatusOK, response)
}

// UpdateStatus handles PATCH /v1/bookings/:id/status
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	var req UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	booking, err := h.bookingService.UpdateStatus(c.Request.Context(), caller, c.Param("id"), domain.BookingStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toBookingResponse(booking))
}

// AcceptBooking handles POST /v1/bookings/:id/accept
func (h *BookingHandler) AcceptBooking(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	booking, err := h.assignmentService.AcceptBooking(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toBookingResponse(booking))
}

// AssignDriver handles POST /v1/bookings/:id/assign
func (h *BookingHandler) AssignDriver(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	var req AssignDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	booking, err := h.assignmentService.AssignDriver(c.Request.Context(), caller, c.Param("id"), req.DriverID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toBookingResponse(booking))
}

// MarkPayment handles PATCH /v1/bookings/:id/payment
func (h *BookingHandler) MarkPayment(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	var req MarkPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	booking, err := h.bookingService.MarkPayment(c.Request.Context(), caller, c.Param("id"), domain.PaymentStatus(req.PaymentStatus))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toBookingResponse(booking))
}

func toBookingResponse(b *domain.Booking) BookingResponse {
	return BookingResponse{
		ID:              b.ID,
		TripID:          b.TripID,
		CustomerID:      b.CustomerID,
		DriverID:        b.DriverID,
		DealerID:        b.DealerID,
		PickupLocation:  b.PickupLocation,
		DropoffLocation: b.DropoffLocation,
		BookingDate:     b.BookingDate.Format(time.RFC3339),
		EstimatedKm:     b.EstimatedKm,
		TotalDays:       b.TotalDays,
		FinalPrice:      b.FinalPrice,
		Status:          string(b.Status),
		PaymentStatus:   string(b.PaymentStatus),
		CreatedAt:       b.CreatedAt.Format(time.RFC3339),
	}
}
