package domain

import "time"

// Dealer represents a fleet owner managing a set of drivers.
type Dealer struct {
	ID            string
	UserID        string
	CompanyName   string
	Registration  string
	TaxID         string
	BankAccount   string
	TotalEarnings int64
	TotalPayouts  int64
	CreatedAt     time.Time
}
