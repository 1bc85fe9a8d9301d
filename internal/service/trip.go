package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"urbancab/internal/domain"
	"urbancab/internal/repository"
)

// TripService owns trip entities. Trips carry no money; they are the
// umbrella a customer books rides under.
type TripService struct {
	tripRepo repository.TripRepository
}

// NewTripService creates a new TripService.
func NewTripService(tripRepo repository.TripRepository) *TripService {
	return &TripService{tripRepo: tripRepo}
}

// CreateTripRequest contains the parameters for creating a trip.
type CreateTripRequest struct {
	City         string
	BaseLocation string
	StartDate    time.Time
	EndDate      time.Time
	Purpose      string
	Notes        string
}

// CreateTrip creates a trip in ACTIVE state owned by the calling customer.
func (s *TripService) CreateTrip(ctx context.Context, caller Caller, req CreateTripRequest) (*domain.Trip, error) {
	if !Allowed(caller, OpCreateTrip, Target{}) {
		return nil, ErrForbidden
	}
	if req.EndDate.Before(req.StartDate) {
		return nil, ErrEndBeforeStart
	}

	trip := &domain.Trip{
		ID:           uuid.New().String(),
		CustomerID:   caller.ID,
		City:         req.City,
		BaseLocation: req.BaseLocation,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Purpose:      req.Purpose,
		Notes:        req.Notes,
		Status:       domain.TripStatusActive,
		CreatedAt:    time.Now(),
	}

	if err := s.tripRepo.Create(ctx, trip); err != nil {
		return nil, err
	}
	return trip, nil
}

// GetTrip retrieves a trip visible to the caller.
func (s *TripService) GetTrip(ctx context.Context, caller Caller, tripID string) (*domain.Trip, error) {
	if tripID == "" {
		return nil, ErrInvalidTripID
	}

	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if !Allowed(caller, OpReadTrip, Target{OwnerID: trip.CustomerID}) {
		return nil, ErrForbidden
	}
	return trip, nil
}

// ListTrips retrieves the caller's own trips, newest first.
func (s *TripService) ListTrips(ctx context.Context, caller Caller) ([]*domain.Trip, error) {
	if caller.Role != domain.RoleCustomer {
		return nil, ErrForbidden
	}
	return s.tripRepo.ListByCustomer(ctx, caller.ID)
}

// UpdateTripStatus moves a trip between ACTIVE, COMPLETED, and CANCELLED.
// Trip status is informational; it is not transactionally tied to the
// booking lifecycle.
func (s *TripService) UpdateTripStatus(ctx context.Context, caller Caller, tripID string, status domain.TripStatus) (*domain.Trip, error) {
	if tripID == "" {
		return nil, ErrInvalidTripID
	}
	switch status {
	case domain.TripStatusActive, domain.TripStatusCompleted, domain.TripStatusCancelled:
	default:
		return nil, ErrInvalidTransition
	}

	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if !Allowed(caller, OpUpdateTrip, Target{OwnerID: trip.CustomerID}) {
		return nil, ErrForbidden
	}

	if err := s.tripRepo.UpdateStatus(ctx, tripID, status); err != nil {
		return nil, err
	}
	trip.Status = status
	return trip, nil
}
