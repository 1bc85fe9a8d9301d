package service

import (
	"context"

	"urbancab/internal/domain"
	"urbancab/internal/repository"
)

// DashboardStats is the role-specific dashboard summary.
type DashboardStats struct {
	TotalBookings  int
	ActiveBookings int
	TotalEarnings  int64
	PendingBalance int64
}

// AdminStats is the platform-wide dashboard summary.
type AdminStats struct {
	TotalUsers     int
	TotalBookings  int
	ActiveBookings int
	TotalRevenue   int64
	AdminEarnings  int64
	PendingPayouts int
}

// StatsService computes dashboard figures from snapshots. Reads here run
// unsynchronized and tolerate staleness.
type StatsService struct {
	userRepo    repository.UserRepository
	tripRepo    repository.TripRepository
	bookingRepo repository.BookingRepository
	paymentRepo repository.PaymentRepository
	payoutRepo  repository.PayoutRepository
	driverRepo  repository.DriverRepository
	dealerRepo  repository.DealerRepository
}

// NewStatsService creates a new StatsService.
func NewStatsService(
	userRepo repository.UserRepository,
	tripRepo repository.TripRepository,
	bookingRepo repository.BookingRepository,
	paymentRepo repository.PaymentRepository,
	payoutRepo repository.PayoutRepository,
	driverRepo repository.DriverRepository,
	dealerRepo repository.DealerRepository,
) *StatsService {
	return &StatsService{
		userRepo:    userRepo,
		tripRepo:    tripRepo,
		bookingRepo: bookingRepo,
		paymentRepo: paymentRepo,
		payoutRepo:  payoutRepo,
		driverRepo:  driverRepo,
		dealerRepo:  dealerRepo,
	}
}

// CustomerStats summarizes a customer's trips, bookings, and spend.
func (s *StatsService) CustomerStats(ctx context.Context, caller Caller) (*DashboardStats, error) {
	if caller.Role != domain.RoleCustomer {
		return nil, ErrForbidden
	}

	trips, err := s.tripRepo.ListByCustomer(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	bookings, err := s.bookingRepo.ListByCustomer(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.ListByCustomer(ctx, caller.ID)
	if err != nil {
		return nil, err
	}

	active := 0
	for _, t := range trips {
		if t.Status == domain.TripStatusActive {
			active++
		}
	}
	var spent int64
	for _, p := range payments {
		spent += p.Amount
	}

	return &DashboardStats{
		TotalBookings:  len(bookings),
		ActiveBookings: active,
		PendingBalance: spent,
	}, nil
}

// DriverStats summarizes a driver's bookings and settlement balance.
func (s *StatsService) DriverStats(ctx context.Context, caller Caller) (*DashboardStats, error) {
	if caller.Role != domain.RoleDriver || caller.ProfileID == "" {
		return nil, ErrForbidden
	}

	driver, err := s.driverRepo.GetByID(ctx, caller.ProfileID)
	if err != nil {
		return nil, err
	}
	bookings, err := s.bookingRepo.ListByDriver(ctx, driver.ID)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		TotalBookings:  len(bookings),
		ActiveBookings: countActive(bookings),
		TotalEarnings:  driver.TotalEarnings,
		PendingBalance: driver.TotalEarnings - driver.TotalPayouts,
	}, nil
}

// DealerStats summarizes a dealer's fleet bookings and settlement balance.
func (s *StatsService) DealerStats(ctx context.Context, caller Caller) (*DashboardStats, error) {
	if caller.Role != domain.RoleDealer || caller.ProfileID == "" {
		return nil, ErrForbidden
	}

	dealer, err := s.dealerRepo.GetByID(ctx, caller.ProfileID)
	if err != nil {
		return nil, err
	}
	bookings, err := s.bookingRepo.ListByDealer(ctx, dealer.ID)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		TotalBookings:  len(bookings),
		ActiveBookings: countActive(bookings),
		TotalEarnings:  dealer.TotalEarnings,
		PendingBalance: dealer.TotalEarnings - dealer.TotalPayouts,
	}, nil
}

// PlatformStats summarizes the whole platform for admins.
func (s *StatsService) PlatformStats(ctx context.Context, caller Caller) (*AdminStats, error) {
	if !Allowed(caller, OpReadAllEntities, Target{}) {
		return nil, ErrForbidden
	}

	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	bookings, err := s.bookingRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	payouts, err := s.payoutRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	var revenue, commissions int64
	for _, b := range bookings {
		if b.PaymentStatus == domain.PaymentStatusPaid {
			revenue += b.FinalPrice
		}
	}
	pendingPayouts := 0
	for _, p := range payouts {
		commissions += p.AdminCommission
		if p.Status == domain.PayoutStatusPending {
			pendingPayouts++
		}
	}

	return &AdminStats{
		TotalUsers:     len(users),
		TotalBookings:  len(bookings),
		ActiveBookings: countActive(bookings),
		TotalRevenue:   revenue,
		AdminEarnings:  commissions,
		PendingPayouts: pendingPayouts,
	}, nil
}

func countActive(bookings []*domain.Booking) int {
	n := 0
	for _, b := range bookings {
		if b.Status == domain.BookingStatusAccepted || b.Status == domain.BookingStatusInProgress {
			n++
		}
	}
	return n
}
