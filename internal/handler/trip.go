package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"urbancab/internal/domain"
	"urbancab/internal/service"
)

// TripHandler handles HTTP requests for trips.
type TripHandler struct {
	tripService *service.TripService
}

// NewTripHandler creates a new TripHandler.
func NewTripHandler(tripService *service.TripService) *TripHandler {
	return &TripHandler{tripService: tripService}
}

// CreateTripRequest is the HTTP request body for creating a trip.
type CreateTripRequest struct {
	City         string `json:"city"`
	BaseLocation string `json:"base_location,omitempty"`
	StartDate    string `json:"start_date"` // RFC 3339
	EndDate      string `json:"end_date"`   // RFC 3339
	Purpose      string `json:"purpose,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// UpdateTripStatusRequest is the HTTP request body for updating trip status.
type UpdateTripStatusRequest struct {
	Status string `json:"status"` // ACTIVE, COMPLETED, CANCELLED
}

// TripResponse is the trip representation returned to clients.
type TripResponse struct {
	ID           string `json:"id"`
	CustomerID   string `json:"customer_id"`
	City         string `json:"city"`
	BaseLocation string `json:"base_location,omitempty"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	Purpose      string `json:"purpose,omitempty"`
	Notes        string `json:"notes,omitempty"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at"`
}

// CreateTrip handles POST /v1/trips
func (h *TripHandler) CreateTrip(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	var req CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	startDate, err := time.Parse(time.RFC3339, req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid start_date"})
		return
	}
	endDate, err := time.Parse(time.RFC3339, req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid end_date"})
		return
	}

	trip, err := h.tripService.CreateTrip(c.Request.Context(), caller, service.CreateTripRequest{
		City:         req.City,
		BaseLocation: req.BaseLocation,
		StartDate:    startDate,
		EndDate:      endDate,
		Purpose:      req.Purpose,
		Notes:        req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toTripResponse(trip))
}

// GetTrip handles GET /v1/trips/:id
func (h *TripHandler) GetTrip(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	trip, err := h.tripService.GetTrip(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toTripResponse(trip))
}

// ListTrips handles GET /v1/trips
func (h *TripHandler) ListTrips(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	trips, err := h.tripService.ListTrips(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]TripResponse, 0, len(trips))
	for _, t := range trips {
		response = append(response, toTripResponse(t))
	}
	respondJSON(c, http.StatusOK, response)
}

// UpdateTripStatus handles PATCH /v1/trips/:id/status
func (h *TripHandler) UpdateTripStatus(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	var req UpdateTripStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	trip, err := h.tripService.UpdateTripStatus(c.Request.Context(), caller, c.Param("id"), domain.TripStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toTripResponse(trip))
}

func toTripResponse(t *domain.Trip) TripResponse {
	return TripResponse{
		ID:           t.ID,
		CustomerID:   t.CustomerID,
		City:         t.City,
		BaseLocation: t.BaseLocation,
		StartDate:    t.StartDate.Format(time.RFC3339),
		EndDate:      t.EndDate.Format(time.RFC3339),
		Purpose:      t.Purpose,
		Notes:        t.Notes,
		Status:       string(t.Status),
		CreatedAt:    t.CreatedAt.Format(time.RFC3339),
	}
}
