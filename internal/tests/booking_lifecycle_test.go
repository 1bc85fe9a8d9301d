package tests

import (
	"context"
	"errors"
	"testing"

	"urbancab/internal/domain"
	"urbancab/internal/service"
)

func TestBookingCreation_PricedOnceAtCreation(t *testing.T) {
	ctx := context.Background()
	e := newEngine()
	e.seedTrip("trip-1", "cust-1")

	booking, err := e.createBooking(ctx, "cust-1", "trip-1")
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	// 50 + 20km*5 + 3days*200
	if booking.FinalPrice != 750 {
		t.Errorf("expected price 750, got %d", booking.FinalPrice)
	}
	if booking.Status != domain.BookingStatusPending {
		t.Errorf("expected PENDING, got %s", booking.Status)
	}
	if booking.PaymentStatus != domain.PaymentStatusPending {
		t.Errorf("expected payment PENDING, got %s", booking.PaymentStatus)
	}
	if booking.Assigned() {
		t.Error("new booking must not carry a driver")
	}
}

func TestBookingCreation_RejectsInactiveTrip(t *testing.T) {
	ctx := context.Background()
	e := newEngine()
	e.seedTrip("trip-1", "cust-1")
	_ = e.tripRepo.UpdateStatus(ctx, "trip-1", domain.TripStatusCompleted)

	_, err := e.createBooking(ctx, "cust-1", "trip-1")
	if !errors.Is(err, service.ErrTripNotActive) {
		t.Fatalf("expected ErrTripNotActive, got %v", err)
	}
}

func TestBookingCreation_RejectsForeignTrip(t *testing.T) {
	ctx := context.Background()
	e := newEngine()
	e.seedTrip("trip-1", "cust-1")

	_, err := e.createBooking(ctx, "cust-2", "trip-1")
	if !errors.Is(err, service.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestBookingLifecycle_HappyPath(t *testing.T) {
	ctx := context.Background()
	e := newEngine()
	e.seedTrip("trip-1", "cust-1")
	e.seedDriver("driver-1", "dealer-1")

	booking, err := e.createBooking(ctx, "cust-1", "trip-1")
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	// Driver accepts: PENDING -> ACCEPTED with driver and dealer set together.
	accepted, err := e.assignments.AcceptBooking(ctx, driverCaller("driver-1"), booking.ID)
	if err != nil {
		t.Fatalf("accept booking: %v", err)
	}
	if accepted.Status != domain.BookingStatusAccepted {
		t.Errorf("expected ACCEPTED, got %s", accepted.Status)
	}
	if accepted.DriverID != "driver-1" || accepted.DealerID != "dealer-1" {
		t.Errorf("driver/dealer not set: %q %q", accepted.DriverID, accepted.DealerID)
	}

	// Assigned driver starts and completes the ride.
	if _, err := e.bookings.UpdateStatus(ctx, driverCaller("driver-1"), booking.ID, domain.BookingStatusInProgress); err != nil {
		t.Fatalf("start: %v", err)
	}
	completed, err := e.bookings.UpdateStatus(ctx, driverCaller("driver-1"), booking.ID, domain.BookingStatusCompleted)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if completed.Status != domain.BookingStatusCompleted {
		t.Errorf("expected COMPLETED, got %s", completed.Status)
	}

	// Status events were published for accept, start, complete.
	if got := e.publisher.StatusEventCount(); got != 3 {
		t.Errorf("expected 3 status events, got %d", got)
	}
}

func TestBookingLifecycle_RejectsSkippedStates(t *testing.T) {
	ctx := context.Background()
	e := newEngine()
	e.seedTrip("trip-1", "cust-1")
	e.seedDriver("driver-1", "")

	booking, err := e.createBooking(ctx, "cust-1", "trip-1")
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	// PENDING cannot jump straight to COMPLETED, even for the right role.
	if _, err := e.bookings.UpdateStatus(ctx, driverCaller("driver-1"), booking.ID, domain.BookingStatusCompleted); !errors.Is(err, service.ErrForbidden) {
		// The driver is not assigned yet, so the role gate fires first.
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	if _, err := e.assignments.AcceptBooking(ctx, driverCaller("driver-1"), booking.ID); err != nil {
		t.Fatalf("accept: %v", err)
	}

	// ACCEPTED cannot jump straight to COMPLETED.
	if _, err := e.bookings.UpdateStatus(ctx, driverCaller("driver-1"), booking.ID, domain.BookingStatusCompleted); !errors.Is(err, service.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestBookingCancel_OnlyWhileUnassigned(t *testing.T) {
	ctx := context.Background()
	e := newEngine()
	e.seedTrip("trip-1", "cust-1")
	e.seedDriver("driver-1", "")

	booking, err := e.createBooking(ctx, "cust-1", "trip-1")
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	// Another customer cannot cancel.
	if _, err := e.bookings.UpdateStatus(ctx, customer("cust-2"), booking.ID, domain.BookingStatusCancelled); !errors.Is(err, service.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	// Owner cancels while PENDING and unassigned.
	cancelled, err := e.bookings.UpdateStatus(ctx, customer("cust-1"), booking.ID, domain.BookingStatusCancelled)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != domain.BookingStatusCancelled {
		t.Errorf("expected CANCELLED, got %s", cancelled.Status)
	}

	// Cancelled bookings cannot be claimed.
	if _, err := e.assignments.AcceptBooking(ctx, driverCaller("driver-1"), booking.ID); !errors.Is(err, service.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestBookingCancel_BlockedOnceAssigned(t *testing.T) {
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

	if _, err := e.bookings.UpdateStatus(ctx, customer("cust-1"), booking.ID, domain.BookingStatusCancelled); !errors.Is(err, service.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestPaymentLedger_MarksBookingPaidOnce(t *testing.T) {
	ctx := context.Background()
	e := newEngine()
	e.seedTrip("trip-1", "cust-1")

	booking, err := e.createBooking(ctx, "cust-1", "trip-1")
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	payment, err := e.payments.RecordPayment(ctx, customer("cust-1"), service.RecordPaymentRequest{
		BookingID: booking.ID,
		Method:    domain.PaymentMethodUPI,
	})
	if err != nil {
		t.Fatalf("record payment: %v", err)
	}
	if payment.Amount != booking.FinalPrice {
		t.Errorf("ledger amount %d != booking price %d", payment.Amount, booking.FinalPrice)
	}

	stored := e.bookingRepo.GetBooking(booking.ID)
	if stored.PaymentStatus != domain.PaymentStatusPaid {
		t.Errorf("expected PAID, got %s", stored.PaymentStatus)
	}

	// Recording again returns the same ledger entry, no duplicate.
	again, err := e.payments.RecordPayment(ctx, customer("cust-1"), service.RecordPaymentRequest{
		BookingID: booking.ID,
		Method:    domain.PaymentMethodUPI,
	})
	if err != nil {
		t.Fatalf("record payment again: %v", err)
	}
	if again.ID != payment.ID {
		t.Errorf("expected same ledger entry, got %s and %s", payment.ID, again.ID)
	}
}
