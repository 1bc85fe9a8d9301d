package tests

import (
	"context"
	"errors"
	"testing"

	"urbancab/internal/domain"
	"urbancab/internal/service"
)

func TestSplitPrice_ExactReconciliation(t *testing.T) {
	// The three parts must sum to the price for any price, with or
	// without a dealer in the chain.
	for price := int64(1); price <= 5000; price++ {
		admin, dealer, driver := service.SplitPrice(price, true)
		if admin+dealer+driver != price {
			t.Fatalf("price %d with dealer: %d+%d+%d != %d", price, admin, dealer, driver, price)
		}
		admin, dealer, driver = service.SplitPrice(price, false)
		if dealer != 0 {
			t.Fatalf("price %d without dealer: dealer got %d", price, dealer)
		}
		if admin+driver != price {
			t.Fatalf("price %d without dealer: %d+%d != %d", price, admin, driver, price)
		}
	}
}

func TestSplitPrice_KnownBreakdown(t *testing.T) {
	admin, dealer, driver := service.SplitPrice(750, true)
	if admin != 113 || dealer != 319 || driver != 318 {
		t.Errorf("expected 113/319/318, got %d/%d/%d", admin, dealer, driver)
	}
}

// settle drives a booking through accept, start, complete, and payment so a
// payout becomes derivable.
func settle(t *testing.T, ctx context.Context, e *engine, customerID, tripID, driverID string) *domain.Booking {
	t.Helper()

	booking, err := e.createBooking(ctx, customerID, tripID)
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	if _, err := e.assignments.AcceptBooking(ctx, driverCaller(driverID), booking.ID); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if _, err := e.bookings.UpdateStatus(ctx, driverCaller(driverID), booking.ID, domain.BookingStatusInProgress); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := e.bookings.UpdateStatus(ctx, driverCaller(driverID), booking.ID, domain.BookingStatusCompleted); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if _, err := e.payments.RecordPayment(ctx, customer(customerID), service.RecordPaymentRequest{
		BookingID: booking.ID,
		Method:    domain.PaymentMethodCard,
	}); err != nil {
		t.Fatalf("pay: %v", err)
	}
	return e.bookingRepo.GetBooking(booking.ID)
}

func TestPayoutAllocation_EndToEnd(t *testing.T) {
	ctx := context.Background()
	e := newEngine()
	e.seedTrip("trip-1", "cust-1")
	e.seedDriver("driver-1", "dealer-1")

	booking := settle(t, ctx, e, "cust-1", "trip-1", "driver-1")

	// Completion preceded payment, so the payment path fired allocation.
	payout, err := e.payoutRepo.GetByBookingID(ctx, booking.ID)
	if err != nil {
		t.Fatalf("get payout: %v", err)
	}
	if payout == nil {
		t.Fatal("expected a payout after completion and payment")
	}

	if payout.BookingPrice != 750 {
		t.Errorf("expected booking price 750, got %d", payout.BookingPrice)
	}
	if payout.AdminCommission != 113 || payout.DealerAmount != 319 || payout.DriverAmount != 318 {
		t.Errorf("expected 113/319/318, got %d/%d/%d",
			payout.AdminCommission, payout.DealerAmount, payout.DriverAmount)
	}
	if payout.Status != domain.PayoutStatusPending {
		t.Errorf("expected PENDING payout, got %s", payout.Status)
	}

	// Earnings accrued on allocation.
	if got := e.driverRepo.GetDriver("driver-1").TotalEarnings; got != 318 {
		t.Errorf("expected driver earnings 318, got %d", got)
	}
	if got := e.dealerRepo.GetDealer("dealer-1").TotalEarnings; got != 319 {
		t.Errorf("expected dealer earnings 319, got %d", got)
	}
}

func TestPayoutAllocation_Idempotent(t *testing.T) {
	ctx := context.Background()
	e := newEngine()
	e.seedTrip("trip-1", "cust-1")
	e.seedDriver("driver-1", "dealer-1")

	booking := settle(t, ctx, e, "cust-1", "trip-1", "driver-1")

	first, err := e.payouts.Allocate(ctx, service.System, booking.ID)
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}

	// Repeat allocation returns the same payout, never a second one.
	for i := 0; i < 3; i++ {
		again, err := e.payouts.Allocate(ctx, service.System, booking.ID)
		if err != nil {
			t.Fatalf("re-allocate: %v", err)
		}
		if again.ID != first.ID {
			t.Fatalf("expected payout %s, got %s", first.ID, again.ID)
		}
	}

	all, _ := e.payoutRepo.ListAll(ctx)
	if len(all) != 1 {
		t.Fatalf("expected 1 payout, got %d", len(all))
	}

	// Earnings were credited once.
	if got := e.driverRepo.GetDriver("driver-1").TotalEarnings; got != 318 {
		t.Errorf("expected driver earnings 318, got %d", got)
	}
}

func TestPayoutAllocation_RequiresCompletedAndPaid(t *testing.T) {
	ctx := context.Background()
	e := newEngine()
	e.seedTrip("trip-1", "cust-1")
	e.seedDriver("driver-1", "")

	booking, err := e.createBooking(ctx, "cust-1", "trip-1")
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	// PENDING and unpaid.
	if _, err := e.payouts.Allocate(ctx, service.System, booking.ID); !errors.Is(err, service.ErrPayoutNotEligible) {
		t.Fatalf("expected ErrPayoutNotEligible, got %v", err)
	}

	// Paid but not completed.
	if _, err := e.payments.RecordPayment(ctx, customer("cust-1"), service.RecordPaymentRequest{
		BookingID: booking.ID,
		Method:    domain.PaymentMethodWallet,
	}); err != nil {
		t.Fatalf("pay: %v", err)
	}
	if _, err := e.payouts.Allocate(ctx, service.System, booking.ID); !errors.Is(err, service.ErrPayoutNotEligible) {
		t.Fatalf("expected ErrPayoutNotEligible, got %v", err)
	}
}

func TestPayoutAllocation_PaymentBeforeCompletion(t *testing.T) {
	ctx := context.Background()
	e := newEngine()
	e.seedTrip("trip-1", "cust-1")
	e.seedDriver("driver-1", "")

	booking, err := e.createBooking(ctx, "cust-1", "trip-1")
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	if _, err := e.payments.RecordPayment(ctx, customer("cust-1"), service.RecordPaymentRequest{
		BookingID: booking.ID,
		Method:    domain.PaymentMethodUPI,
	}); err != nil {
		t.Fatalf("pay: %v", err)
	}
	if _, err := e.assignments.AcceptBooking(ctx, driverCaller("driver-1"), booking.ID); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if _, err := e.bookings.UpdateStatus(ctx, driverCaller("driver-1"), booking.ID, domain.BookingStatusInProgress); err != nil {
		t.Fatalf("start: %v", err)
	}

	// Completing last triggers allocation from the status path.
	if _, err := e.bookings.UpdateStatus(ctx, driverCaller("driver-1"), booking.ID, domain.BookingStatusCompleted); err != nil {
		t.Fatalf("complete: %v", err)
	}

	payout, err := e.payoutRepo.GetByBookingID(ctx, booking.ID)
	if err != nil {
		t.Fatalf("get payout: %v", err)
	}
	if payout == nil {
		t.Fatal("expected a payout once completed and paid")
	}

	// Independent driver keeps the whole post-commission remainder.
	if payout.DealerAmount != 0 {
		t.Errorf("expected no dealer amount, got %d", payout.DealerAmount)
	}
	if payout.AdminCommission+payout.DriverAmount != payout.BookingPrice {
		t.Errorf("parts do not reconcile: %d+%d != %d",
			payout.AdminCommission, payout.DriverAmount, payout.BookingPrice)
	}
}

func TestProcessPayout_AdminOnlyAndOnce(t *testing.T) {
	ctx := context.Background()
	e := newEngine()
	e.seedTrip("trip-1", "cust-1")
	e.seedDriver("driver-1", "dealer-1")

	booking := settle(t, ctx, e, "cust-1", "trip-1", "driver-1")
	payout, err := e.payoutRepo.GetByBookingID(ctx, booking.ID)
	if err != nil || payout == nil {
		t.Fatalf("expected payout, got %v %v", payout, err)
	}

	// Only admins process payouts.
	if _, err := e.payouts.ProcessPayout(ctx, dealerCaller("dealer-1"), payout.ID); !errors.Is(err, service.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	processed, err := e.payouts.ProcessPayout(ctx, admin(), payout.ID)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if processed.Status != domain.PayoutStatusProcessed {
		t.Errorf("expected PROCESSED, got %s", processed.Status)
	}
	if processed.ProcessedBy != "admin-1" {
		t.Errorf("expected processed_by admin-1, got %s", processed.ProcessedBy)
	}
	if processed.ProcessedAt.IsZero() {
		t.Error("expected a processing timestamp")
	}

	// Payout totals moved on processing.
	if got := e.driverRepo.GetDriver("driver-1").TotalPayouts; got != processed.DriverAmount {
		t.Errorf("expected driver payouts %d, got %d", processed.DriverAmount, got)
	}
	if got := e.dealerRepo.GetDealer("dealer-1").TotalPayouts; got != processed.DealerAmount {
		t.Errorf("expected dealer payouts %d, got %d", processed.DealerAmount, got)
	}

	// Processing is not repeatable.
	if _, err := e.payouts.ProcessPayout(ctx, admin(), payout.ID); !errors.Is(err, service.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	// A settlement event went out.
	if len(e.publisher.PayoutEvents) != 1 {
		t.Errorf("expected 1 payout event, got %d", len(e.publisher.PayoutEvents))
	}
}
