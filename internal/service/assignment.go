package service

import (
	"context"
	"time"

	"urbancab/internal/domain"
	"urbancab/internal/redis"
	"urbancab/internal/repository"
)

const bookingLockTTL = 10 * time.Second

// AssignmentService mediates how a driver ends up on a booking: either the
// driver claims an open booking directly, or a dealer assigns one of its own
// drivers. Both paths converge on the engine's atomic assign step, so partial
// application (driver set without the status flip, or vice versa) is never
// observable.
type AssignmentService struct {
	bookingService *BookingService
	driverRepo     repository.DriverRepository
	lockStore      redis.LockStoreInterface
	cacheStore     *redis.CacheStore
}

// NewAssignmentService creates a new AssignmentService.
func NewAssignmentService(
	bookingService *BookingService,
	driverRepo repository.DriverRepository,
	lockStore redis.LockStoreInterface,
	cacheStore *redis.CacheStore,
) *AssignmentService {
	return &AssignmentService{
		bookingService: bookingService,
		driverRepo:     driverRepo,
		lockStore:      lockStore,
		cacheStore:     cacheStore,
	}
}

// AcceptBooking claims an unassigned PENDING booking for the calling driver.
// When two drivers race for the same booking exactly one wins; the loser
// receives ErrAlreadyAssigned.
func (s *AssignmentService) AcceptBooking(ctx context.Context, caller Caller, bookingID string) (*domain.Booking, error) {
	if caller.Role != domain.RoleDriver || caller.ProfileID == "" {
		return nil, ErrForbidden
	}
	if bookingID == "" {
		return nil, ErrInvalidBookingID
	}

	driver, err := s.driverRepo.GetByID(ctx, caller.ProfileID)
	if err != nil {
		return nil, err
	}
	if !driver.IsActive {
		return nil, ErrDriverInactive
	}

	return s.assignLocked(ctx, bookingID, driver)
}

// AssignDriver assigns one of the dealer's own active drivers to a PENDING
// booking. Admins may assign any active driver.
func (s *AssignmentService) AssignDriver(ctx context.Context, caller Caller, bookingID, driverID string) (*domain.Booking, error) {
	if !Allowed(caller, OpAssignDriver, Target{}) {
		return nil, ErrForbidden
	}
	if bookingID == "" {
		return nil, ErrInvalidBookingID
	}
	if driverID == "" {
		return nil, ErrInvalidDriverID
	}

	driver, err := s.driverRepo.GetByID(ctx, driverID)
	if err != nil {
		return nil, err
	}

	// Dealers may only direct their own fleet.
	if caller.Role == domain.RoleDealer && driver.DealerID != caller.ProfileID {
		return nil, ErrForbidden
	}
	if !driver.IsActive {
		return nil, ErrDriverInactive
	}

	return s.assignLocked(ctx, bookingID, driver)
}

// assignLocked serializes assignment attempts per booking behind a short
// Redis lock, then delegates to the engine's compare-and-set. The lock is an
// optimization; correctness rests on the CAS underneath.
func (s *AssignmentService) assignLocked(ctx context.Context, bookingID string, driver *domain.Driver) (*domain.Booking, error) {
	if s.lockStore != nil {
		locked, err := s.lockStore.AcquireBookingLock(ctx, bookingID, bookingLockTTL)
		if err != nil {
			return nil, err
		}
		if !locked {
			return nil, ErrAlreadyAssigned
		}
		defer func() { _ = s.lockStore.ReleaseBookingLock(ctx, bookingID) }()
	}

	booking, err := s.bookingService.assign(ctx, bookingID, driver)
	if err != nil {
		return nil, err
	}

	if s.cacheStore != nil {
		_ = s.cacheStore.InvalidateDriver(ctx, driver.ID)
	}

	return booking, nil
}
