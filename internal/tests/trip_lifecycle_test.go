package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"urbancab/internal/domain"
	"urbancab/internal/service"
)

func TestCreateTrip_CustomerOnly(t *testing.T) {
	ctx := context.Background()
	e := newEngine()

	now := time.Now()
	req := service.CreateTripRequest{
		City:      "Udaipur",
		StartDate: now,
		EndDate:   now.Add(48 * time.Hour),
	}

	trip, err := e.trips.CreateTrip(ctx, customer("cust-1"), req)
	if err != nil {
		t.Fatalf("create trip: %v", err)
	}
	if trip.Status != domain.TripStatusActive {
		t.Errorf("expected ACTIVE, got %s", trip.Status)
	}
	if trip.CustomerID != "cust-1" {
		t.Errorf("expected owner cust-1, got %s", trip.CustomerID)
	}

	if _, err := e.trips.CreateTrip(ctx, driverCaller("driver-1"), req); !errors.Is(err, service.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestCreateTrip_RejectsInvertedDates(t *testing.T) {
	ctx := context.Background()
	e := newEngine()

	now := time.Now()
	_, err := e.trips.CreateTrip(ctx, customer("cust-1"), service.CreateTripRequest{
		City:      "Udaipur",
		StartDate: now,
		EndDate:   now.Add(-24 * time.Hour),
	})
	if !errors.Is(err, service.ErrEndBeforeStart) {
		t.Fatalf("expected ErrEndBeforeStart, got %v", err)
	}
}

func TestGetTrip_OwnershipEnforced(t *testing.T) {
	ctx := context.Background()
	e := newEngine()
	e.seedTrip("trip-1", "cust-1")

	if _, err := e.trips.GetTrip(ctx, customer("cust-1"), "trip-1"); err != nil {
		t.Fatalf("owner read: %v", err)
	}
	if _, err := e.trips.GetTrip(ctx, admin(), "trip-1"); err != nil {
		t.Fatalf("admin read: %v", err)
	}
	if _, err := e.trips.GetTrip(ctx, customer("cust-2"), "trip-1"); !errors.Is(err, service.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestUpdateTripStatus_DoesNotTouchBookings(t *testing.T) {
	ctx := context.Background()
	e := newEngine()
	e.seedTrip("trip-1", "cust-1")
	e.seedDriver("driver-1", "")

	booking, err := e.createBooking(ctx, "cust-1", "trip-1")
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	if _, err := e.assignments.AcceptBooking(ctx, driverCaller("driver-1"), booking.ID); err != nil {
		t.Fatalf("accept: %v", err)
	}

	// Completing the trip leaves the booking where it was.
	if _, err := e.trips.UpdateTripStatus(ctx, customer("cust-1"), "trip-1", domain.TripStatusCompleted); err != nil {
		t.Fatalf("update trip: %v", err)
	}
	stored := e.bookingRepo.GetBooking(booking.ID)
	if stored.Status != domain.BookingStatusAccepted {
		t.Errorf("booking moved with trip status: %s", stored.Status)
	}

	// But new bookings against the completed trip are refused.
	if _, err := e.createBooking(ctx, "cust-1", "trip-1"); !errors.Is(err, service.ErrTripNotActive) {
		t.Fatalf("expected ErrTripNotActive, got %v", err)
	}
}
