package tests

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"urbancab/internal/domain"
	"urbancab/internal/service"
)

func TestAcceptBooking_ConcurrentDriversOneWinner(t *testing.T) {
	ctx := context.Background()
	e := newEngine()
	e.seedTrip("trip-1", "cust-1")

	const drivers = 8
	for i := 0; i < drivers; i++ {
		e.seedDriver(fmt.Sprintf("driver-%d", i), "")
	}

	booking, err := e.createBooking(ctx, "cust-1", "trip-1")
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	var wg sync.WaitGroup
	results := make([]error, drivers)
	start := make(chan struct{})

	for i := 0; i < drivers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, err := e.assignments.AcceptBooking(ctx, driverCaller(fmt.Sprintf("driver-%d", i)), booking.ID)
			results[i] = err
		}(i)
	}
	close(start)
	wg.Wait()

	winners, losers := 0, 0
	for i, err := range results {
		switch {
		case err == nil:
			winners++
		case errors.Is(err, service.ErrAlreadyAssigned):
			losers++
		default:
			t.Errorf("driver-%d: unexpected error %v", i, err)
		}
	}

	if winners != 1 {
		t.Fatalf("expected exactly 1 winner, got %d", winners)
	}
	if losers != drivers-1 {
		t.Fatalf("expected %d losers, got %d", drivers-1, losers)
	}

	// The stored booking carries the winner and is ACCEPTED.
	stored := e.bookingRepo.GetBooking(booking.ID)
	if stored.Status != domain.BookingStatusAccepted {
		t.Errorf("expected ACCEPTED, got %s", stored.Status)
	}
	if !stored.Assigned() {
		t.Error("expected a driver on the booking")
	}
}

func TestAcceptBooking_InactiveDriverRejected(t *testing.T) {
	ctx := context.Background()
	e := newEngine()
	e.seedTrip("trip-1", "cust-1")
	e.seedDriver("driver-1", "")
	e.driverRepo.GetDriver("driver-1").IsActive = false

	booking, err := e.createBooking(ctx, "cust-1", "trip-1")
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	if _, err := e.assignments.AcceptBooking(ctx, driverCaller("driver-1"), booking.ID); !errors.Is(err, service.ErrDriverInactive) {
		t.Fatalf("expected ErrDriverInactive, got %v", err)
	}
}

func TestAcceptBooking_NonDriverForbidden(t *testing.T) {
	ctx := context.Background()
	e := newEngine()
	e.seedTrip("trip-1", "cust-1")

	booking, err := e.createBooking(ctx, "cust-1", "trip-1")
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	if _, err := e.assignments.AcceptBooking(ctx, customer("cust-1"), booking.ID); !errors.Is(err, service.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestAssignDriver_DealerOwnFleetOnly(t *testing.T) {
	ctx := context.Background()
	e := newEngine()
	e.seedTrip("trip-1", "cust-1")
	e.seedDriver("driver-1", "dealer-1")
	e.seedDriver("driver-2", "dealer-2")

	booking, err := e.createBooking(ctx, "cust-1", "trip-1")
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	// dealer-1 cannot direct dealer-2's driver.
	if _, err := e.assignments.AssignDriver(ctx, dealerCaller("dealer-1"), booking.ID, "driver-2"); !errors.Is(err, service.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	// dealer-1 assigns its own driver.
	assigned, err := e.assignments.AssignDriver(ctx, dealerCaller("dealer-1"), booking.ID, "driver-1")
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if assigned.DriverID != "driver-1" || assigned.DealerID != "dealer-1" {
		t.Errorf("driver/dealer not set: %q %q", assigned.DriverID, assigned.DealerID)
	}
}

func TestAssignDriver_AdminAnyDriver(t *testing.T) {
	ctx := context.Background()
	e := newEngine()
	e.seedTrip("trip-1", "cust-1")
	e.seedDriver("driver-1", "dealer-1")

	booking, err := e.createBooking(ctx, "cust-1", "trip-1")
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	assigned, err := e.assignments.AssignDriver(ctx, admin(), booking.ID, "driver-1")
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if assigned.Status != domain.BookingStatusAccepted {
		t.Errorf("expected ACCEPTED, got %s", assigned.Status)
	}
}

func TestAssignDriver_SecondAssignmentLoses(t *testing.T) {
	ctx := context.Background()
	e := newEngine()
	e.seedTrip("trip-1", "cust-1")
	e.seedDriver("driver-1", "dealer-1")
	e.seedDriver("driver-2", "dealer-1")

	booking, err := e.createBooking(ctx, "cust-1", "trip-1")
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	if _, err := e.assignments.AssignDriver(ctx, dealerCaller("dealer-1"), booking.ID, "driver-1"); err != nil {
		t.Fatalf("first assign: %v", err)
	}
	if _, err := e.assignments.AssignDriver(ctx, dealerCaller("dealer-1"), booking.ID, "driver-2"); !errors.Is(err, service.ErrAlreadyAssigned) {
		t.Fatalf("expected ErrAlreadyAssigned, got %v", err)
	}
}

func TestAcceptBooking_LockContentionMapsToAlreadyAssigned(t *testing.T) {
	ctx := context.Background()
	e := newEngine()
	e.seedTrip("trip-1", "cust-1")
	e.seedDriver("driver-1", "")

	// Rebuild the assignment path with a lock store that is already held.
	lockStore := NewMockLockStore()
	assignments := service.NewAssignmentService(e.bookings, e.driverRepo, lockStore, nil)

	booking, err := e.createBooking(ctx, "cust-1", "trip-1")
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	if _, err := lockStore.AcquireBookingLock(ctx, booking.ID, 0); err != nil {
		t.Fatalf("pre-acquire lock: %v", err)
	}

	if _, err := assignments.AcceptBooking(ctx, driverCaller("driver-1"), booking.ID); !errors.Is(err, service.ErrAlreadyAssigned) {
		t.Fatalf("expected ErrAlreadyAssigned, got %v", err)
	}
}
