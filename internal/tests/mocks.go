package tests

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"urbancab/internal/domain"
	"urbancab/internal/queue"
	"urbancab/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK TRIP REPOSITORY
// ──────────────────────────────────────────────

// MockTripRepository is a mock implementation of TripRepository.
type MockTripRepository struct {
	mu    sync.RWMutex
	trips map[string]*domain.Trip

	// Error injection
	CreateError error
}

// NewMockTripRepository creates a new mock trip repository.
func NewMockTripRepository() *MockTripRepository {
	return &MockTripRepository{trips: make(map[string]*domain.Trip)}
}

// AddTrip adds a trip to the mock repository.
func (m *MockTripRepository) AddTrip(trip *domain.Trip) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trips[trip.ID] = trip
}

func (m *MockTripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trips[trip.ID] = trip
	return nil
}

func (m *MockTripRepository) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	trip, ok := m.trips[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *trip
	return &copy, nil
}

func (m *MockTripRepository) ListByCustomer(ctx context.Context, customerID string) ([]*domain.Trip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Trip
	for _, t := range m.trips {
		if t.CustomerID == customerID {
			copy := *t
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockTripRepository) UpdateStatus(ctx context.Context, id string, status domain.TripStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	trip, ok := m.trips[id]
	if !ok {
		return repository.ErrNotFound
	}
	trip.Status = status
	return nil
}

// ──────────────────────────────────────────────
// MOCK BOOKING REPOSITORY
// ──────────────────────────────────────────────

// MockBookingRepository is a mock implementation of BookingRepository. Its
// Assign and UpdateStatus apply the same compare-and-set semantics as the
// SQL implementation, under a single mutex, so races resolve to one winner.
type MockBookingRepository struct {
	mu       sync.Mutex
	bookings map[string]*domain.Booking

	// Counters for verification
	AssignCallCount       int32
	UpdateStatusCallCount int32

	// Error injection
	CreateError error
	AssignError error
}

// NewMockBookingRepository creates a new mock booking repository.
func NewMockBookingRepository() *MockBookingRepository {
	return &MockBookingRepository{bookings: make(map[string]*domain.Booking)}
}

// AddBooking adds a booking to the mock repository.
func (m *MockBookingRepository) AddBooking(booking *domain.Booking) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings[booking.ID] = booking
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *booking
	m.bookings[booking.ID] = &copy
	return nil
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	booking, ok := m.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *booking
	return &copy, nil
}

func (m *MockBookingRepository) ListByCustomer(ctx context.Context, customerID string) ([]*domain.Booking, error) {
	return m.filter(func(b *domain.Booking) bool { return b.CustomerID == customerID }), nil
}

func (m *MockBookingRepository) ListByDriver(ctx context.Context, driverID string) ([]*domain.Booking, error) {
	return m.filter(func(b *domain.Booking) bool { return b.DriverID == driverID }), nil
}

func (m *MockBookingRepository) ListByDealer(ctx context.Context, dealerID string) ([]*domain.Booking, error) {
	return m.filter(func(b *domain.Booking) bool { return b.DealerID == dealerID }), nil
}

func (m *MockBookingRepository) ListAll(ctx context.Context) ([]*domain.Booking, error) {
	return m.filter(func(b *domain.Booking) bool { return true }), nil
}

func (m *MockBookingRepository) ListUnassigned(ctx context.Context) ([]*domain.Booking, error) {
	return m.filter(func(b *domain.Booking) bool {
		return b.Status == domain.BookingStatusPending && b.DriverID == ""
	}), nil
}

func (m *MockBookingRepository) Assign(ctx context.Context, bookingID, driverID, dealerID string) error {
	atomic.AddInt32(&m.AssignCallCount, 1)
	if m.AssignError != nil {
		return m.AssignError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	booking, ok := m.bookings[bookingID]
	if !ok {
		return repository.ErrNotFound
	}
	if booking.Status != domain.BookingStatusPending || booking.DriverID != "" {
		return repository.ErrConflict
	}
	booking.DriverID = driverID
	booking.DealerID = dealerID
	booking.Status = domain.BookingStatusAccepted
	return nil
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus) error {
	atomic.AddInt32(&m.UpdateStatusCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	booking, ok := m.bookings[id]
	if !ok {
		return repository.ErrNotFound
	}
	if booking.Status != from {
		return repository.ErrConflict
	}
	booking.Status = to
	return nil
}

func (m *MockBookingRepository) UpdatePaymentStatus(ctx context.Context, id string, status domain.PaymentStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	booking, ok := m.bookings[id]
	if !ok {
		return repository.ErrNotFound
	}
	booking.PaymentStatus = status
	return nil
}

// GetBooking returns a booking for test assertions.
func (m *MockBookingRepository) GetBooking(id string) *domain.Booking {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bookings[id]
}

func (m *MockBookingRepository) filter(keep func(*domain.Booking) bool) []*domain.Booking {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*domain.Booking
	for _, b := range m.bookings {
		if keep(b) {
			copy := *b
			result = append(result, &copy)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// ──────────────────────────────────────────────
// MOCK DRIVER REPOSITORY
// ──────────────────────────────────────────────

// MockDriverRepository is a mock implementation of DriverRepository.
type MockDriverRepository struct {
	mu      sync.RWMutex
	drivers map[string]*domain.Driver
}

// NewMockDriverRepository creates a new mock driver repository.
func NewMockDriverRepository() *MockDriverRepository {
	return &MockDriverRepository{drivers: make(map[string]*domain.Driver)}
}

// AddDriver adds a driver to the mock repository.
func (m *MockDriverRepository) AddDriver(driver *domain.Driver) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drivers[driver.ID] = driver
}

func (m *MockDriverRepository) Create(ctx context.Context, driver *domain.Driver) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drivers[driver.ID] = driver
	return nil
}

func (m *MockDriverRepository) GetByID(ctx context.Context, id string) (*domain.Driver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	driver, ok := m.drivers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *driver
	return &copy, nil
}

func (m *MockDriverRepository) GetByUserID(ctx context.Context, userID string) (*domain.Driver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, d := range m.drivers {
		if d.UserID == userID {
			copy := *d
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockDriverRepository) ListActive(ctx context.Context, vehicleType domain.VehicleType) ([]*domain.Driver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Driver
	for _, d := range m.drivers {
		if !d.IsActive {
			continue
		}
		if vehicleType != "" && d.VehicleType != vehicleType {
			continue
		}
		copy := *d
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockDriverRepository) ListByDealer(ctx context.Context, dealerID string) ([]*domain.Driver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Driver
	for _, d := range m.drivers {
		if d.DealerID == dealerID {
			copy := *d
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockDriverRepository) AddPayout(ctx context.Context, id string, amount int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	driver, ok := m.drivers[id]
	if !ok {
		return repository.ErrNotFound
	}
	driver.TotalPayouts += amount
	return nil
}

func (m *MockDriverRepository) AddEarnings(ctx context.Context, id string, amount int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	driver, ok := m.drivers[id]
	if !ok {
		return repository.ErrNotFound
	}
	driver.TotalEarnings += amount
	return nil
}

// GetDriver returns a driver for test assertions.
func (m *MockDriverRepository) GetDriver(id string) *domain.Driver {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.drivers[id]
}

// ──────────────────────────────────────────────
// MOCK DEALER REPOSITORY
// ──────────────────────────────────────────────

// MockDealerRepository is a mock implementation of DealerRepository.
type MockDealerRepository struct {
	mu      sync.RWMutex
	dealers map[string]*domain.Dealer
}

// NewMockDealerRepository creates a new mock dealer repository.
func NewMockDealerRepository() *MockDealerRepository {
	return &MockDealerRepository{dealers: make(map[string]*domain.Dealer)}
}

// AddDealer adds a dealer to the mock repository.
func (m *MockDealerRepository) AddDealer(dealer *domain.Dealer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dealers[dealer.ID] = dealer
}

func (m *MockDealerRepository) Create(ctx context.Context, dealer *domain.Dealer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dealers[dealer.ID] = dealer
	return nil
}

func (m *MockDealerRepository) GetByID(ctx context.Context, id string) (*domain.Dealer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	dealer, ok := m.dealers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *dealer
	return &copy, nil
}

func (m *MockDealerRepository) GetByUserID(ctx context.Context, userID string) (*domain.Dealer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, d := range m.dealers {
		if d.UserID == userID {
			copy := *d
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockDealerRepository) AddPayout(ctx context.Context, id string, amount int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	dealer, ok := m.dealers[id]
	if !ok {
		return repository.ErrNotFound
	}
	dealer.TotalPayouts += amount
	return nil
}

func (m *MockDealerRepository) AddEarnings(ctx context.Context, id string, amount int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	dealer, ok := m.dealers[id]
	if !ok {
		return repository.ErrNotFound
	}
	dealer.TotalEarnings += amount
	return nil
}

// GetDealer returns a dealer for test assertions.
func (m *MockDealerRepository) GetDealer(id string) *domain.Dealer {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.dealers[id]
}

// ──────────────────────────────────────────────
// MOCK PAYOUT REPOSITORY
// ──────────────────────────────────────────────

// MockPayoutRepository is a mock implementation of PayoutRepository. It
// enforces the one-payout-per-booking rule the SQL schema carries as a
// unique constraint.
type MockPayoutRepository struct {
	mu      sync.Mutex
	payouts map[string]*domain.Payout

	// Counters for verification
	CreateCallCount int32
}

// NewMockPayoutRepository creates a new mock payout repository.
func NewMockPayoutRepository() *MockPayoutRepository {
	return &MockPayoutRepository{payouts: make(map[string]*domain.Payout)}
}

func (m *MockPayoutRepository) Create(ctx context.Context, payout *domain.Payout) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.payouts {
		if p.BookingID == payout.BookingID {
			return repository.ErrDuplicate
		}
	}
	copy := *payout
	m.payouts[payout.ID] = &copy
	return nil
}

func (m *MockPayoutRepository) GetByID(ctx context.Context, id string) (*domain.Payout, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	payout, ok := m.payouts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *payout
	return &copy, nil
}

func (m *MockPayoutRepository) GetByBookingID(ctx context.Context, bookingID string) (*domain.Payout, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.payouts {
		if p.BookingID == bookingID {
			copy := *p
			return &copy, nil
		}
	}
	return nil, nil
}

func (m *MockPayoutRepository) ListAll(ctx context.Context) ([]*domain.Payout, error) {
	return m.filter(func(p *domain.Payout) bool { return true }), nil
}

func (m *MockPayoutRepository) ListByDealer(ctx context.Context, dealerID string) ([]*domain.Payout, error) {
	return m.filter(func(p *domain.Payout) bool { return p.DealerID == dealerID }), nil
}

func (m *MockPayoutRepository) ListByDriver(ctx context.Context, driverID string) ([]*domain.Payout, error) {
	return m.filter(func(p *domain.Payout) bool { return p.DriverID == driverID }), nil
}

func (m *MockPayoutRepository) MarkProcessed(ctx context.Context, id, adminID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	payout, ok := m.payouts[id]
	if !ok {
		return repository.ErrNotFound
	}
	if payout.Status != domain.PayoutStatusPending {
		return repository.ErrConflict
	}
	payout.Status = domain.PayoutStatusProcessed
	payout.ProcessedBy = adminID
	payout.ProcessedAt = time.Now().UTC()
	return nil
}

func (m *MockPayoutRepository) filter(keep func(*domain.Payout) bool) []*domain.Payout {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*domain.Payout
	for _, p := range m.payouts {
		if keep(p) {
			copy := *p
			result = append(result, &copy)
		}
	}
	return result
}

// ──────────────────────────────────────────────
// MOCK PAYMENT REPOSITORY
// ──────────────────────────────────────────────

// MockPaymentRepository is a mock implementation of PaymentRepository.
type MockPaymentRepository struct {
	mu       sync.Mutex
	payments map[string]*domain.Payment
}

// NewMockPaymentRepository creates a new mock payment repository.
func NewMockPaymentRepository() *MockPaymentRepository {
	return &MockPaymentRepository{payments: make(map[string]*domain.Payment)}
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *payment
	m.payments[payment.ID] = &copy
	return nil
}

func (m *MockPaymentRepository) GetByBookingID(ctx context.Context, bookingID string) (*domain.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.payments {
		if p.BookingID == bookingID {
			copy := *p
			return &copy, nil
		}
	}
	return nil, nil
}

func (m *MockPaymentRepository) ListByCustomer(ctx context.Context, customerID string) ([]*domain.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*domain.Payment
	for _, p := range m.payments {
		if p.CustomerID == customerID {
			copy := *p
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockPaymentRepository) ListAll(ctx context.Context) ([]*domain.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*domain.Payment
	for _, p := range m.payments {
		copy := *p
		result = append(result, &copy)
	}
	return result, nil
}

// ──────────────────────────────────────────────
// MOCK USER REPOSITORY
// ──────────────────────────────────────────────

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User
}

// NewMockUserRepository creates a new mock user repository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{users: make(map[string]*domain.User)}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *user
	return &copy, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			copy := *u
			return &copy, nil
		}
	}
	return nil, nil
}

func (m *MockUserRepository) GetAll(ctx context.Context) ([]*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.User, 0, len(m.users))
	for _, u := range m.users {
		copy := *u
		result = append(result, &copy)
	}
	return result, nil
}

// ──────────────────────────────────────────────
// MOCK LOCK STORE
// ──────────────────────────────────────────────

// MockLockStore is an in-memory lock store.
type MockLockStore struct {
	mu    sync.Mutex
	locks map[string]bool

	// Error injection
	AcquireError error
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{locks: make(map[string]bool)}
}

func (m *MockLockStore) AcquireBookingLock(ctx context.Context, bookingID string, ttl time.Duration) (bool, error) {
	if m.AcquireError != nil {
		return false, m.AcquireError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locks[bookingID] {
		return false, nil
	}
	m.locks[bookingID] = true
	return true, nil
}

func (m *MockLockStore) ReleaseBookingLock(ctx context.Context, bookingID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, bookingID)
	return nil
}

// ──────────────────────────────────────────────
// MOCK PUBLISHER
// ──────────────────────────────────────────────

// MockPublisher records published events.
type MockPublisher struct {
	mu            sync.Mutex
	StatusEvents []queue.BookingStatusEvent
	PayoutEvents []queue.PayoutProcessedEvent
}

// NewMockPublisher creates a new mock publisher.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

func (m *MockPublisher) PublishBookingStatus(ctx context.Context, event queue.BookingStatusEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StatusEvents = append(m.StatusEvents, event)
	return nil
}

func (m *MockPublisher) PublishPayoutProcessed(ctx context.Context, event queue.PayoutProcessedEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PayoutEvents = append(m.PayoutEvents, event)
	return nil
}

// StatusEventCount returns the number of booking status events published.
func (m *MockPublisher) StatusEventCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.StatusEvents)
}
