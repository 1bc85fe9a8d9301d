package tests

import (
	"context"
	"time"

	"urbancab/internal/domain"
	"urbancab/internal/service"
)

// engine bundles the wired services and mocks a lifecycle test needs.
type engine struct {
	tripRepo    *MockTripRepository
	bookingRepo *MockBookingRepository
	driverRepo  *MockDriverRepository
	dealerRepo  *MockDealerRepository
	payoutRepo  *MockPayoutRepository
	paymentRepo *MockPaymentRepository
	publisher   *MockPublisher

	trips       *service.TripService
	bookings    *service.BookingService
	assignments *service.AssignmentService
	payouts     *service.PayoutService
	payments    *service.PaymentService
}

// newEngine wires the full service graph over in-memory mocks. The
// assignment path runs without a lock store so races hit the
// compare-and-set directly.
func newEngine() *engine {
	e := &engine{
		tripRepo:    NewMockTripRepository(),
		bookingRepo: NewMockBookingRepository(),
		driverRepo:  NewMockDriverRepository(),
		dealerRepo:  NewMockDealerRepository(),
		payoutRepo:  NewMockPayoutRepository(),
		paymentRepo: NewMockPaymentRepository(),
		publisher:   NewMockPublisher(),
	}

	e.trips = service.NewTripService(e.tripRepo)
	e.payouts = service.NewPayoutService(e.payoutRepo, e.bookingRepo, e.driverRepo, e.dealerRepo, e.publisher)
	e.bookings = service.NewBookingService(e.bookingRepo, e.tripRepo, e.payouts, e.publisher)
	e.assignments = service.NewAssignmentService(e.bookings, e.driverRepo, nil, nil)
	e.payments = service.NewPaymentService(e.paymentRepo, e.bookings)

	return e
}

// seedTrip adds an ACTIVE trip owned by the customer.
func (e *engine) seedTrip(tripID, customerID string) {
	now := time.Now()
	e.tripRepo.AddTrip(&domain.Trip{
		ID:         tripID,
		CustomerID: customerID,
		City:       "Jaipur",
		StartDate:  now,
		EndDate:    now.Add(72 * time.Hour),
		Status:     domain.TripStatusActive,
		CreatedAt:  now,
	})
}

// seedDriver adds an active driver, optionally in a dealer's fleet.
func (e *engine) seedDriver(driverID, dealerID string) {
	e.driverRepo.AddDriver(&domain.Driver{
		ID:          driverID,
		UserID:      "user-" + driverID,
		DealerID:    dealerID,
		VehicleType: domain.VehicleTypeSedan,
		IsActive:    true,
		CreatedAt:   time.Now(),
	})
	if dealerID != "" && e.dealerRepo.GetDealer(dealerID) == nil {
		e.dealerRepo.AddDealer(&domain.Dealer{
			ID:        dealerID,
			UserID:    "user-" + dealerID,
			CreatedAt: time.Now(),
		})
	}
}

// createBooking creates a PENDING booking through the service as the customer.
func (e *engine) createBooking(ctx context.Context, customerID, tripID string) (*domain.Booking, error) {
	return e.bookings.CreateBooking(ctx, customer(customerID), service.CreateBookingRequest{
		TripID:          tripID,
		PickupLocation:  "Airport",
		DropoffLocation: "City Palace",
		BookingDate:     time.Now(),
		EstimatedKm:     20,
		TotalDays:       3,
	})
}

func customer(id string) service.Caller {
	return service.Caller{ID: id, Role: domain.RoleCustomer}
}

func driverCaller(profileID string) service.Caller {
	return service.Caller{ID: "user-" + profileID, ProfileID: profileID, Role: domain.RoleDriver}
}

func dealerCaller(profileID string) service.Caller {
	return service.Caller{ID: "user-" + profileID, ProfileID: profileID, Role: domain.RoleDealer}
}

func admin() service.Caller {
	return service.Caller{ID: "admin-1", Role: domain.RoleAdmin}
}
