package service

import "urbancab/internal/domain"

// Caller is the authenticated identity an operation runs as. For drivers and
// dealers, ProfileID carries the driver/dealer profile ID resolved from the
// user account; ID is always the user ID.
type Caller struct {
	ID        string
	ProfileID string
	Role      domain.Role
}

// System is the identity used for internal, engine-initiated mutations.
var System = Caller{ID: "system", Role: domain.RoleSystem}

// Operation names a guarded mutation or read.
type Operation string

const (
	OpCreateTrip       Operation = "trip.create"
	OpReadTrip         Operation = "trip.read"
	OpUpdateTrip       Operation = "trip.update"
	OpCreateBooking    Operation = "booking.create"
	OpReadBooking      Operation = "booking.read"
	OpCancelBooking    Operation = "booking.cancel"
	OpProgressBooking  Operation = "booking.progress"
	OpAcceptBooking    Operation = "booking.accept"
	OpAssignDriver     Operation = "booking.assign"
	OpMarkPayment      Operation = "booking.mark_payment"
	OpProcessPayout    Operation = "payout.process"
	OpReadPayouts      Operation = "payout.read"
	OpReadAllEntities  Operation = "admin.read_all"
	OpRecordPayment    Operation = "payment.record"
)

// Target carries the ownership facts of the entity an operation acts on.
// Zero-value fields mean "no such relationship".
type Target struct {
	OwnerID  string // customer who owns the trip/booking
	DriverID string // driver assigned to the booking (profile ID)
	DealerID string // dealer serving the booking (profile ID)
}

// Allowed is the role gate consulted before every guarded operation. It is a
// pure predicate: no I/O, no state.
func Allowed(caller Caller, op Operation, target Target) bool {
	if caller.Role == domain.RoleSystem {
		return true
	}

	switch op {
	case OpCreateTrip, OpCreateBooking, OpRecordPayment:
		return caller.Role == domain.RoleCustomer

	case OpReadTrip, OpUpdateTrip:
		if caller.Role == domain.RoleAdmin {
			return true
		}
		return caller.Role == domain.RoleCustomer && caller.ID == target.OwnerID

	case OpReadBooking:
		switch caller.Role {
		case domain.RoleAdmin:
			return true
		case domain.RoleCustomer:
			return caller.ID == target.OwnerID
		case domain.RoleDriver:
			return caller.ProfileID != "" && caller.ProfileID == target.DriverID
		case domain.RoleDealer:
			return caller.ProfileID != "" && caller.ProfileID == target.DealerID
		}
		return false

	case OpCancelBooking:
		return caller.Role == domain.RoleCustomer && caller.ID == target.OwnerID

	case OpProgressBooking:
		return caller.Role == domain.RoleDriver &&
			caller.ProfileID != "" && caller.ProfileID == target.DriverID

	case OpAcceptBooking:
		// Any driver may claim an unassigned booking; the engine enforces
		// that the booking is PENDING and driverless.
		return caller.Role == domain.RoleDriver && target.DriverID == ""

	case OpAssignDriver:
		return caller.Role == domain.RoleDealer || caller.Role == domain.RoleAdmin

	case OpMarkPayment:
		return caller.Role == domain.RoleAdmin

	case OpProcessPayout:
		return caller.Role == domain.RoleAdmin

	case OpReadPayouts:
		switch caller.Role {
		case domain.RoleAdmin:
			return true
		case domain.RoleDealer:
			return caller.ProfileID != "" && caller.ProfileID == target.DealerID
		case domain.RoleDriver:
			return caller.ProfileID != "" && caller.ProfileID == target.DriverID
		}
		return false

	case OpReadAllEntities:
		return caller.Role == domain.RoleAdmin
	}

	return false
}
