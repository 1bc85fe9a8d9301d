package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"urbancab/internal/domain"
	"urbancab/internal/repository"
)

func newMock(t *testing.T) (*BookingRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	return NewBookingRepository(db), mock, func() { db.Close() }
}

func TestBookingAssignWinner(t *testing.T) {
	repo, mock, cleanup := newMock(t)
	defer cleanup()

	mock.ExpectExec("UPDATE bookings").
		WithArgs("driver-1", "dealer-1", string(domain.BookingStatusAccepted), "booking-1", string(domain.BookingStatusPending)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Assign(context.Background(), "booking-1", "driver-1", "dealer-1"); err != nil {
		t.Fatalf("assign error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingAssignLoserGetsConflict(t *testing.T) {
	repo, mock, cleanup := newMock(t)
	defer cleanup()

	// Guarded update hits zero rows; the booking still exists, so the
	// caller lost the race rather than aiming at a missing row.
	mock.ExpectExec("UPDATE bookings").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("booking-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	err := repo.Assign(context.Background(), "booking-1", "driver-2", "")
	if !errors.Is(err, repository.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestBookingAssignMissingBooking(t *testing.T) {
	repo, mock, cleanup := newMock(t)
	defer cleanup()

	mock.ExpectExec("UPDATE bookings").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("no-such-booking").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	err := repo.Assign(context.Background(), "no-such-booking", "driver-1", "")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestBookingUpdateStatusGuardsCurrentState(t *testing.T) {
	repo, mock, cleanup := newMock(t)
	defer cleanup()

	mock.ExpectExec("UPDATE bookings").
		WithArgs(string(domain.BookingStatusInProgress), "booking-1", string(domain.BookingStatusAccepted)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateStatus(context.Background(), "booking-1", domain.BookingStatusAccepted, domain.BookingStatusInProgress)
	if err != nil {
		t.Fatalf("update status error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingGetByIDMapsNullDriver(t *testing.T) {
	repo, mock, cleanup := newMock(t)
	defer cleanup()

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "trip_id", "customer_id", "driver_id", "dealer_id",
		"pickup_location", "dropoff_location", "booking_date",
		"estimated_km", "total_days", "final_price", "status", "payment_status", "created_at",
	}).AddRow(
		"booking-1", "trip-1", "customer-1", nil, nil,
		"Airport", "Hotel", now,
		20.0, 3, int64(750), string(domain.BookingStatusPending), string(domain.PaymentStatusPending), now,
	)

	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id").
		WithArgs("booking-1").
		WillReturnRows(rows)

	booking, err := repo.GetByID(context.Background(), "booking-1")
	if err != nil {
		t.Fatalf("get error: %v", err)
	}
	if booking.Assigned() {
		t.Fatalf("expected unassigned booking, got driver %q", booking.DriverID)
	}
	if booking.FinalPrice != 750 {
		t.Fatalf("expected price 750, got %d", booking.FinalPrice)
	}
}

func TestBookingGetByIDNotFound(t *testing.T) {
	repo, mock, cleanup := newMock(t)
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id").
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), "nope")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
