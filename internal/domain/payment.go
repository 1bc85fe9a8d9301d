package domain

import "time"

// PaymentMethod represents how a customer settled a booking.
type PaymentMethod string

const (
	PaymentMethodCard         PaymentMethod = "CARD"
	PaymentMethodUPI          PaymentMethod = "UPI"
	PaymentMethodWallet       PaymentMethod = "WALLET"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
)

// Payment is a ledger record of a customer settling a booking.
// Settlement state lives on the booking itself; this record exists for audit.
type Payment struct {
	ID            string
	BookingID     string
	CustomerID    string
	Amount        int64
	Method        PaymentMethod
	TransactionID string
	CreatedAt     time.Time
}
