package service

import "errors"

var (
	// ErrForbidden is returned when the caller's role or ownership does not
	// permit the requested operation.
	ErrForbidden = errors.New("operation not permitted for caller")

	// ErrInvalidTransition is returned when the state machine rejects the
	// requested move from the entity's current state. Callers must re-fetch
	// state before retrying; the operation is not a blind-retry no-op.
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrAlreadyAssigned is returned when a driver assignment loses the race
	// for a booking. Distinct from ErrInvalidTransition so callers can tell
	// "someone else took it" from a bad request.
	ErrAlreadyAssigned = errors.New("booking already assigned")

	// ErrInvalidDistance is returned when estimated distance is not positive.
	ErrInvalidDistance = errors.New("estimated distance must be positive")

	// ErrInvalidDays is returned when the day count is below one.
	ErrInvalidDays = errors.New("total days must be at least 1")

	// ErrEndBeforeStart is returned when a trip's end date precedes its start.
	ErrEndBeforeStart = errors.New("trip end date before start date")

	// ErrTripNotActive is returned when booking against a non-active trip.
	ErrTripNotActive = errors.New("trip is not active")

	// ErrDriverInactive is returned when assigning an inactive driver.
	ErrDriverInactive = errors.New("driver is not active")

	// ErrInvalidTripID is returned when a trip ID is empty.
	ErrInvalidTripID = errors.New("invalid trip id")

	// ErrInvalidBookingID is returned when a booking ID is empty.
	ErrInvalidBookingID = errors.New("invalid booking id")

	// ErrInvalidDriverID is returned when a driver ID is empty.
	ErrInvalidDriverID = errors.New("invalid driver id")

	// ErrInvalidPayoutID is returned when a payout ID is empty.
	ErrInvalidPayoutID = errors.New("invalid payout id")

	// ErrInvalidLocation is returned when pickup or dropoff is empty.
	ErrInvalidLocation = errors.New("pickup and dropoff locations are required")

	// ErrInvalidAmount is returned when a payment amount is not positive.
	ErrInvalidAmount = errors.New("invalid payment amount")

	// ErrInvalidPaymentMethod is returned when a payment method is unknown.
	ErrInvalidPaymentMethod = errors.New("invalid payment method")

	// ErrInvalidPaymentStatus is returned when a payment status is unknown.
	ErrInvalidPaymentStatus = errors.New("invalid payment status")

	// ErrPayoutNotEligible is returned when allocating a payout for a
	// booking that is not both COMPLETED and PAID.
	ErrPayoutNotEligible = errors.New("booking not eligible for payout")

	// ErrEmailTaken is returned when registering an already-used email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned when login fails.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidRole is returned when an unknown role is supplied.
	ErrInvalidRole = errors.New("invalid role")
)
