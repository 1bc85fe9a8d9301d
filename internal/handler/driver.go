package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"urbancab/internal/domain"
	"urbancab/internal/service"
)

// DriverHandler handles HTTP requests for driver profiles.
type DriverHandler struct {
	driverService *service.DriverService
}

// NewDriverHandler creates a new DriverHandler.
func NewDriverHandler(driverService *service.DriverService) *DriverHandler {
	return &DriverHandler{driverService: driverService}
}

// CreateDriverProfileRequest is the HTTP request body for a driver profile.
type CreateDriverProfileRequest struct {
	DealerID      string `json:"dealer_id,omitempty"` // empty for independents
	LicenseNumber string `json:"license_number"`
	LicenseExpiry string `json:"license_expiry,omitempty"`
	VehicleNumber string `json:"vehicle_number"`
	VehicleType   string `json:"vehicle_type"` // SEDAN, SUV, HATCHBACK, LUXURY
}

// DriverResponse is the driver representation returned to clients.
type DriverResponse struct {
	ID            string `json:"id"`
	UserID        string `json:"user_id"`
	DealerID      string `json:"dealer_id,omitempty"`
	LicenseNumber string `json:"license_number"`
	VehicleNumber string `json:"vehicle_number"`
	VehicleType   string `json:"vehicle_type"`
	TotalEarnings int64  `json:"total_earnings"`
	TotalPayouts  int64  `json:"total_payouts"`
	IsActive      bool   `json:"is_active"`
}

// CreateProfile handles POST /v1/drivers
func (h *DriverHandler) CreateProfile(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	var req CreateDriverProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	driver, err := h.driverService.CreateProfile(c.Request.Context(), caller, service.CreateProfileRequest{
		DealerID:      req.DealerID,
		LicenseNumber: req.LicenseNumber,
		LicenseExpiry: req.LicenseExpiry,
		VehicleNumber: req.VehicleNumber,
		VehicleType:   domain.VehicleType(req.VehicleType),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toDriverResponse(driver))
}

// GetProfile handles GET /v1/drivers/me
func (h *DriverHandler) GetProfile(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	driver, err := h.driverService.GetProfile(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toDriverResponse(driver))
}

// ListAvailable handles GET /v1/drivers?vehicle_type=SEDAN
func (h *DriverHandler) ListAvailable(c *gin.Context) {
	if _, ok := callerOrAbort(c); !ok {
		return
	}

	vehicleType := domain.VehicleType(c.Query("vehicle_type"))

	drivers, err := h.driverService.ListAvailable(c.Request.Context(), vehicleType)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]DriverResponse, 0, len(drivers))
	for _, d := range drivers {
		response = append(response, toDriverResponse(d))
	}
	respondJSON(c, http.StatusOK, response)
}

// ListFleet handles GET /v1/dealers/me/drivers
func (h *DriverHandler) ListFleet(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	drivers, err := h.driverService.ListFleet(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]DriverResponse, 0, len(drivers))
	for _, d := range drivers {
		response = append(response, toDriverResponse(d))
	}
	respondJSON(c, http.StatusOK, response)
}

func toDriverResponse(d *domain.Driver) DriverResponse {
	return DriverResponse{
		ID:            d.ID,
		UserID:        d.UserID,
		DealerID:      d.DealerID,
		LicenseNumber: d.LicenseNumber,
		VehicleNumber: d.VehicleNumber,
		VehicleType:   string(d.VehicleType),
		TotalEarnings: d.TotalEarnings,
		TotalPayouts:  d.TotalPayouts,
		IsActive:      d.IsActive,
	}
}
