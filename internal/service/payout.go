package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"

	"urbancab/internal/domain"
	"urbancab/internal/queue"
	"urbancab/internal/repository"
)

// Payout policy. The exact rates are a business input; the invariant that the
// driver absorbs the rounding remainder holds for any rates.
const (
	// CommissionRate is the platform's cut of the booking price.
	CommissionRate = 0.15

	// DealerShare is the dealer's share of the post-commission remainder
	// when the driver belongs to a fleet.
	DealerShare = 0.5
)

// SplitPrice splits a booking price among platform, dealer, and driver.
// The commission and dealer cut are rounded independently; the driver gets
// the exact remainder, so the three parts always sum to the price.
// Independent drivers (no dealer) keep the whole post-commission remainder.
func SplitPrice(price int64, hasDealer bool) (adminCommission, dealerAmount, driverAmount int64) {
	adminCommission = int64(math.Round(float64(price) * CommissionRate))
	remainder := price - adminCommission
	if hasDealer {
		dealerAmount = int64(math.Round(float64(remainder) * DealerShare))
	}
	driverAmount = remainder - dealerAmount
	return adminCommission, dealerAmount, driverAmount
}

// PayoutService derives payouts from completed, paid bookings and settles
// them on admin request. It is the only writer of payout rows.
type PayoutService struct {
	payoutRepo  repository.PayoutRepository
	bookingRepo repository.BookingRepository
	driverRepo  repository.DriverRepository
	dealerRepo  repository.DealerRepository
	publisher   queue.Publisher
}

// NewPayoutService creates a new PayoutService.
func NewPayoutService(
	payoutRepo repository.PayoutRepository,
	bookingRepo repository.BookingRepository,
	driverRepo repository.DriverRepository,
	dealerRepo repository.DealerRepository,
	publisher queue.Publisher,
) *PayoutService {
	return &PayoutService{
		payoutRepo:  payoutRepo,
		bookingRepo: bookingRepo,
		driverRepo:  driverRepo,
		dealerRepo:  dealerRepo,
		publisher:   publisher,
	}
}

// Allocate creates the payout for a completed, paid booking. It is
// idempotent: if a payout already exists for the booking it is returned
// unchanged, never duplicated.
func (s *PayoutService) Allocate(ctx context.Context, caller Caller, bookingID string) (*domain.Payout, error) {
	if caller.Role != domain.RoleSystem && caller.Role != domain.RoleAdmin {
		return nil, ErrForbidden
	}
	if bookingID == "" {
		return nil, ErrInvalidBookingID
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != domain.BookingStatusCompleted || booking.PaymentStatus != domain.PaymentStatusPaid {
		return nil, ErrPayoutNotEligible
	}

	existing, err := s.payoutRepo.GetByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	adminCommission, dealerAmount, driverAmount := SplitPrice(booking.FinalPrice, booking.DealerID != "")

	payout := &domain.Payout{
		ID:              uuid.New().String(),
		BookingID:       booking.ID,
		BookingPrice:    booking.FinalPrice,
		AdminCommission: adminCommission,
		DealerAmount:    dealerAmount,
		DriverAmount:    driverAmount,
		DealerID:        booking.DealerID,
		DriverID:        booking.DriverID,
		Status:          domain.PayoutStatusPending,
		CreatedAt:       time.Now(),
	}

	if err := s.payoutRepo.Create(ctx, payout); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// Lost the create race; the other caller's payout is ours too.
			return s.payoutRepo.GetByBookingID(ctx, bookingID)
		}
		return nil, err
	}

	// Earnings accrue when the payout is derived; payout totals move when
	// the admin processes it.
	if payout.DriverID != "" {
		_ = s.driverRepo.AddEarnings(ctx, payout.DriverID, payout.DriverAmount)
	}
	if payout.DealerID != "" {
		_ = s.dealerRepo.AddEarnings(ctx, payout.DealerID, payout.DealerAmount)
	}

	return payout, nil
}

// ProcessPayout settles a PENDING payout. Admin only.
func (s *PayoutService) ProcessPayout(ctx context.Context, caller Caller, payoutID string) (*domain.Payout, error) {
	if !Allowed(caller, OpProcessPayout, Target{}) {
		return nil, ErrForbidden
	}
	if payoutID == "" {
		return nil, ErrInvalidPayoutID
	}

	if err := s.payoutRepo.MarkProcessed(ctx, payoutID, caller.ID); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrInvalidTransition
		}
		return nil, err
	}

	payout, err := s.payoutRepo.GetByID(ctx, payoutID)
	if err != nil {
		return nil, err
	}

	if payout.DriverID != "" {
		_ = s.driverRepo.AddPayout(ctx, payout.DriverID, payout.DriverAmount)
	}
	if payout.DealerID != "" {
		_ = s.dealerRepo.AddPayout(ctx, payout.DealerID, payout.DealerAmount)
	}

	if s.publisher != nil {
		_ = s.publisher.PublishPayoutProcessed(ctx, queue.PayoutProcessedEvent{
			PayoutID:        payout.ID,
			BookingID:       payout.BookingID,
			DriverID:        payout.DriverID,
			DealerID:        payout.DealerID,
			BookingPrice:    payout.BookingPrice,
			AdminCommission: payout.AdminCommission,
			DealerAmount:    payout.DealerAmount,
			DriverAmount:    payout.DriverAmount,
			ProcessedAt:     payout.ProcessedAt.UTC().Format(time.RFC3339),
		})
	}

	return payout, nil
}

// GetPayout retrieves a payout visible to the caller.
func (s *PayoutService) GetPayout(ctx context.Context, caller Caller, payoutID string) (*domain.Payout, error) {
	if payoutID == "" {
		return nil, ErrInvalidPayoutID
	}

	payout, err := s.payoutRepo.GetByID(ctx, payoutID)
	if err != nil {
		return nil, err
	}
	if !Allowed(caller, OpReadPayouts, Target{DriverID: payout.DriverID, DealerID: payout.DealerID}) {
		return nil, ErrForbidden
	}
	return payout, nil
}

// ListPayouts retrieves the payouts visible to the caller: admins see all,
// dealers and drivers their own settlement records.
func (s *PayoutService) ListPayouts(ctx context.Context, caller Caller) ([]*domain.Payout, error) {
	switch caller.Role {
	case domain.RoleAdmin, domain.RoleSystem:
		return s.payoutRepo.ListAll(ctx)
	case domain.RoleDealer:
		return s.payoutRepo.ListByDealer(ctx, caller.ProfileID)
	case domain.RoleDriver:
		return s.payoutRepo.ListByDriver(ctx, caller.ProfileID)
	default:
		return nil, ErrForbidden
	}
}
