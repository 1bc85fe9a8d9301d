package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"urbancab/internal/domain"
	"urbancab/internal/repository"
)

// PaymentService records customer settlements in the payment ledger.
// The booking's own payment flag is flipped through the engine's guarded
// setter; this service never writes booking rows directly.
type PaymentService struct {
	paymentRepo    repository.PaymentRepository
	bookingService *BookingService
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(paymentRepo repository.PaymentRepository, bookingService *BookingService) *PaymentService {
	return &PaymentService{
		paymentRepo:    paymentRepo,
		bookingService: bookingService,
	}
}

// RecordPaymentRequest contains the parameters for recording a payment.
type RecordPaymentRequest struct {
	BookingID     string
	Method        domain.PaymentMethod
	TransactionID string
}

// RecordPayment records a customer paying for their own booking and marks
// the booking PAID. Recording the same booking twice returns the existing
// ledger entry.
func (s *PaymentService) RecordPayment(ctx context.Context, caller Caller, req RecordPaymentRequest) (*domain.Payment, error) {
	if !Allowed(caller, OpRecordPayment, Target{}) {
		return nil, ErrForbidden
	}
	if req.BookingID == "" {
		return nil, ErrInvalidBookingID
	}
	if !validPaymentMethod(req.Method) {
		return nil, ErrInvalidPaymentMethod
	}

	booking, err := s.bookingService.GetBooking(ctx, caller, req.BookingID)
	if err != nil {
		return nil, err
	}

	existing, err := s.paymentRepo.GetByBookingID(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	payment := &domain.Payment{
		ID:            uuid.New().String(),
		BookingID:     booking.ID,
		CustomerID:    caller.ID,
		Amount:        booking.FinalPrice,
		Method:        req.Method,
		TransactionID: req.TransactionID,
		CreatedAt:     time.Now(),
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	if _, err := s.bookingService.MarkPayment(ctx, System, booking.ID, domain.PaymentStatusPaid); err != nil {
		return nil, err
	}

	return payment, nil
}

// ListPayments retrieves the payments visible to the caller.
func (s *PaymentService) ListPayments(ctx context.Context, caller Caller) ([]*domain.Payment, error) {
	switch caller.Role {
	case domain.RoleAdmin, domain.RoleSystem:
		return s.paymentRepo.ListAll(ctx)
	case domain.RoleCustomer:
		return s.paymentRepo.ListByCustomer(ctx, caller.ID)
	default:
		return nil, ErrForbidden
	}
}

func validPaymentMethod(m domain.PaymentMethod) bool {
	switch m {
	case domain.PaymentMethodCard, domain.PaymentMethodUPI,
		domain.PaymentMethodWallet, domain.PaymentMethodBankTransfer:
		return true
	}
	return false
}
