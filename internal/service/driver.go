package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"urbancab/internal/domain"
	"urbancab/internal/repository"
)

// DriverService manages the driver directory: profiles, activity flags, and
// fleet membership. The booking engine reads drivers through it but never
// writes them.
type DriverService struct {
	driverRepo repository.DriverRepository
	dealerRepo repository.DealerRepository
}

// NewDriverService creates a new DriverService.
func NewDriverService(driverRepo repository.DriverRepository, dealerRepo repository.DealerRepository) *DriverService {
	return &DriverService{
		driverRepo: driverRepo,
		dealerRepo: dealerRepo,
	}
}

// CreateProfileRequest contains the parameters for creating a driver profile.
type CreateProfileRequest struct {
	DealerID      string
	LicenseNumber string
	LicenseExpiry string
	VehicleNumber string
	VehicleType   domain.VehicleType
}

// CreateProfile creates the driver profile for the calling driver account.
func (s *DriverService) CreateProfile(ctx context.Context, caller Caller, req CreateProfileRequest) (*domain.Driver, error) {
	if caller.Role != domain.RoleDriver {
		return nil, ErrForbidden
	}
	if req.LicenseNumber == "" || req.VehicleNumber == "" {
		return nil, ErrInvalidDriverID
	}

	if req.DealerID != "" {
		if _, err := s.dealerRepo.GetByID(ctx, req.DealerID); err != nil {
			return nil, err
		}
	}

	driver := &domain.Driver{
		ID:            uuid.New().String(),
		UserID:        caller.ID,
		DealerID:      req.DealerID,
		LicenseNumber: req.LicenseNumber,
		LicenseExpiry: req.LicenseExpiry,
		VehicleNumber: req.VehicleNumber,
		VehicleType:   req.VehicleType,
		IsActive:      true,
		CreatedAt:     time.Now(),
	}

	if err := s.driverRepo.Create(ctx, driver); err != nil {
		return nil, err
	}
	return driver, nil
}

// GetProfile retrieves the driver profile owned by the calling account.
func (s *DriverService) GetProfile(ctx context.Context, caller Caller) (*domain.Driver, error) {
	if caller.Role != domain.RoleDriver {
		return nil, ErrForbidden
	}
	return s.driverRepo.GetByUserID(ctx, caller.ID)
}

// ListAvailable retrieves active drivers, optionally filtered by vehicle type.
func (s *DriverService) ListAvailable(ctx context.Context, vehicleType domain.VehicleType) ([]*domain.Driver, error) {
	return s.driverRepo.ListActive(ctx, vehicleType)
}

// ListFleet retrieves the drivers belonging to the calling dealer's fleet.
func (s *DriverService) ListFleet(ctx context.Context, caller Caller) ([]*domain.Driver, error) {
	if caller.Role != domain.RoleDealer || caller.ProfileID == "" {
		return nil, ErrForbidden
	}
	return s.driverRepo.ListByDealer(ctx, caller.ProfileID)
}
