package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"urbancab/internal/domain"
	"urbancab/internal/queue"
	"urbancab/internal/repository"
)

// BookingService owns the booking lifecycle. It is the only writer of
// booking status, payment status, and driver assignment; other components
// reach bookings through it, never through the repository directly.
type BookingService struct {
	bookingRepo   repository.BookingRepository
	tripRepo      repository.TripRepository
	payoutService *PayoutService
	publisher     queue.Publisher
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	bookingRepo repository.BookingRepository,
	tripRepo repository.TripRepository,
	payoutService *PayoutService,
	publisher queue.Publisher,
) *BookingService {
	return &BookingService{
		bookingRepo:   bookingRepo,
		tripRepo:      tripRepo,
		payoutService: payoutService,
		publisher:     publisher,
	}
}

// CreateBookingRequest contains the parameters for creating a booking.
type CreateBookingRequest struct {
	TripID          string
	PickupLocation  string
	DropoffLocation string
	BookingDate     time.Time
	EstimatedKm     float64
	TotalDays       int // 0 derives the span from booking date to trip end
}

// CreateBooking creates a booking in PENDING state under one of the caller's
// active trips. The final price is computed here, once, and never recomputed.
func (s *BookingService) CreateBooking(ctx context.Context, caller Caller, req CreateBookingRequest) (*domain.Booking, error) {
	if !Allowed(caller, OpCreateBooking, Target{}) {
		return nil, ErrForbidden
	}

	if req.TripID == "" {
		return nil, ErrInvalidTripID
	}
	if req.PickupLocation == "" || req.DropoffLocation == "" {
		return nil, ErrInvalidLocation
	}

	trip, err := s.tripRepo.GetByID(ctx, req.TripID)
	if err != nil {
		return nil, err
	}
	if trip.CustomerID != caller.ID {
		return nil, ErrForbidden
	}
	if trip.Status != domain.TripStatusActive {
		return nil, ErrTripNotActive
	}

	days := req.TotalDays
	if days == 0 {
		days = DeriveDays(req.BookingDate, trip.EndDate)
	}

	price, err := Quote(req.EstimatedKm, days)
	if err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		ID:              uuid.New().String(),
		TripID:          req.TripID,
		CustomerID:      caller.ID,
		PickupLocation:  req.PickupLocation,
		DropoffLocation: req.DropoffLocation,
		BookingDate:     req.BookingDate,
		EstimatedKm:     req.EstimatedKm,
		TotalDays:       days,
		FinalPrice:      price,
		Status:          domain.BookingStatusPending,
		PaymentStatus:   domain.PaymentStatusPending,
		CreatedAt:       time.Now(),
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}

	return booking, nil
}

// GetBooking retrieves a booking visible to the caller.
func (s *BookingService) GetBooking(ctx context.Context, caller Caller, bookingID string) (*domain.Booking, error) {
	if bookingID == "" {
		return nil, ErrInvalidBookingID
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !Allowed(caller, OpReadBooking, bookingTarget(booking)) {
		return nil, ErrForbidden
	}
	return booking, nil
}

// ListBookings retrieves the bookings visible to the caller: customers see
// their own, drivers their assigned ones plus open PENDING bookings, dealers
// their fleet's, admins everything.
func (s *BookingService) ListBookings(ctx context.Context, caller Caller) ([]*domain.Booking, error) {
	switch caller.Role {
	case domain.RoleAdmin, domain.RoleSystem:
		return s.bookingRepo.ListAll(ctx)
	case domain.RoleCustomer:
		return s.bookingRepo.ListByCustomer(ctx, caller.ID)
	case domain.RoleDriver:
		assigned, err := s.bookingRepo.ListByDriver(ctx, caller.ProfileID)
		if err != nil {
			return nil, err
		}
		open, err := s.bookingRepo.ListUnassigned(ctx)
		if err != nil {
			return nil, err
		}
		return append(assigned, open...), nil
	case domain.RoleDealer:
		return s.bookingRepo.ListByDealer(ctx, caller.ProfileID)
	default:
		return nil, ErrForbidden
	}
}

// UpdateStatus advances a booking along the lifecycle state machine:
//
//	ACCEPTED    -> IN_PROGRESS  by the assigned driver
//	IN_PROGRESS -> COMPLETED    by the assigned driver
//	PENDING     -> CANCELLED    by the owning customer, while unassigned
//
// Any other requested move fails with ErrInvalidTransition. The transition is
// applied as a compare-and-set so racing callers resolve to one winner.
func (s *BookingService) UpdateStatus(ctx context.Context, caller Caller, bookingID string, newStatus domain.BookingStatus) (*domain.Booking, error) {
	if bookingID == "" {
		return nil, ErrInvalidBookingID
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	var from domain.BookingStatus
	var op Operation

	switch newStatus {
	case domain.BookingStatusInProgress:
		from, op = domain.BookingStatusAccepted, OpProgressBooking
	case domain.BookingStatusCompleted:
		from, op = domain.BookingStatusInProgress, OpProgressBooking
	case domain.BookingStatusCancelled:
		from, op = domain.BookingStatusPending, OpCancelBooking
	default:
		// PENDING is only an initial state; ACCEPTED is only reached
		// through assignment.
		return nil, ErrInvalidTransition
	}

	if !Allowed(caller, op, bookingTarget(booking)) {
		return nil, ErrForbidden
	}

	if newStatus == domain.BookingStatusCancelled && booking.Assigned() {
		return nil, ErrInvalidTransition
	}
	if booking.Status != from {
		return nil, ErrInvalidTransition
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, from, newStatus); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrInvalidTransition
		}
		return nil, err
	}
	booking.Status = newStatus

	s.publishStatus(ctx, booking)

	// A booking settles into a payout once it is both completed and paid,
	// in either order.
	if newStatus == domain.BookingStatusCompleted && booking.PaymentStatus == domain.PaymentStatusPaid {
		if _, err := s.payoutService.Allocate(ctx, System, booking.ID); err != nil {
			return nil, err
		}
	}

	return booking, nil
}

// MarkPayment flips the settlement flag of a booking. Only admins and the
// system (after the payment ledger records a settlement) may call it.
func (s *BookingService) MarkPayment(ctx context.Context, caller Caller, bookingID string, status domain.PaymentStatus) (*domain.Booking, error) {
	if bookingID == "" {
		return nil, ErrInvalidBookingID
	}
	if status != domain.PaymentStatusPaid && status != domain.PaymentStatusFailed {
		return nil, ErrInvalidPaymentStatus
	}
	if !Allowed(caller, OpMarkPayment, Target{}) {
		return nil, ErrForbidden
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := s.bookingRepo.UpdatePaymentStatus(ctx, bookingID, status); err != nil {
		return nil, err
	}
	booking.PaymentStatus = status

	if status == domain.PaymentStatusPaid && booking.Status == domain.BookingStatusCompleted {
		if _, err := s.payoutService.Allocate(ctx, System, booking.ID); err != nil {
			return nil, err
		}
	}

	return booking, nil
}

// assign atomically sets driver and dealer on a PENDING, unassigned booking
// and advances it to ACCEPTED. Called by the assignment resolver only; the
// role and fleet checks happen there.
func (s *BookingService) assign(ctx context.Context, bookingID string, driver *domain.Driver) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.Assigned() {
		return nil, ErrAlreadyAssigned
	}
	if booking.Status != domain.BookingStatusPending {
		return nil, ErrInvalidTransition
	}

	if err := s.bookingRepo.Assign(ctx, bookingID, driver.ID, driver.DealerID); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			// Lost the race: someone claimed it between the read and the
			// compare-and-set, or the customer cancelled.
			current, gerr := s.bookingRepo.GetByID(ctx, bookingID)
			if gerr == nil && !current.Assigned() {
				return nil, ErrInvalidTransition
			}
			return nil, ErrAlreadyAssigned
		}
		return nil, err
	}

	booking.DriverID = driver.ID
	booking.DealerID = driver.DealerID
	booking.Status = domain.BookingStatusAccepted

	s.publishStatus(ctx, booking)

	return booking, nil
}

func (s *BookingService) publishStatus(ctx context.Context, booking *domain.Booking) {
	if s.publisher == nil {
		return
	}
	_ = s.publisher.PublishBookingStatus(ctx, queue.BookingStatusEvent{
		BookingID:     booking.ID,
		TripID:        booking.TripID,
		CustomerID:    booking.CustomerID,
		DriverID:      booking.DriverID,
		DealerID:      booking.DealerID,
		Status:        string(booking.Status),
		PaymentStatus: string(booking.PaymentStatus),
		FinalPrice:    booking.FinalPrice,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	})
}

func bookingTarget(b *domain.Booking) Target {
	return Target{
		OwnerID:  b.CustomerID,
		DriverID: b.DriverID,
		DealerID: b.DealerID,
	}
}
