package domain

import "time"

// VehicleType represents the vehicle class a driver operates.
type VehicleType string

const (
	VehicleTypeSedan     VehicleType = "SEDAN"
	VehicleTypeSUV       VehicleType = "SUV"
	VehicleTypeHatchback VehicleType = "HATCHBACK"
	VehicleTypeLuxury    VehicleType = "LUXURY"
)

// Driver represents a driver profile. Drivers either belong to a dealer's
// fleet (DealerID set) or operate independently.
type Driver struct {
	ID            string
	UserID        string
	DealerID      string // empty for independent drivers
	LicenseNumber string
	LicenseExpiry string
	VehicleNumber string
	VehicleType   VehicleType
	TotalEarnings int64
	TotalPayouts  int64
	IsActive      bool
	CreatedAt     time.Time
}
