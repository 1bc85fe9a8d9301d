package tests

import (
	"testing"

	"urbancab/internal/domain"
	"urbancab/internal/service"
)

func TestAllowed_RoleGates(t *testing.T) {
	target := service.Target{OwnerID: "cust-1", DriverID: "driver-1", DealerID: "dealer-1"}

	cases := []struct {
		name   string
		caller service.Caller
		op     service.Operation
		target service.Target
		want   bool
	}{
		{"system bypasses every gate", service.System, service.OpProcessPayout, target, true},

		{"customer creates trips", customer("cust-1"), service.OpCreateTrip, service.Target{}, true},
		{"driver cannot create trips", driverCaller("driver-1"), service.OpCreateTrip, service.Target{}, false},

		{"owner reads own booking", customer("cust-1"), service.OpReadBooking, target, true},
		{"stranger cannot read booking", customer("cust-2"), service.OpReadBooking, target, false},
		{"assigned driver reads booking", driverCaller("driver-1"), service.OpReadBooking, target, true},
		{"other driver cannot read booking", driverCaller("driver-2"), service.OpReadBooking, target, false},
		{"serving dealer reads booking", dealerCaller("dealer-1"), service.OpReadBooking, target, true},
		{"admin reads any booking", admin(), service.OpReadBooking, target, true},

		{"owner cancels own booking", customer("cust-1"), service.OpCancelBooking, target, true},
		{"admin does not cancel for customers", admin(), service.OpCancelBooking, target, false},

		{"assigned driver progresses", driverCaller("driver-1"), service.OpProgressBooking, target, true},
		{"unassigned driver cannot progress", driverCaller("driver-2"), service.OpProgressBooking, target, false},
		{"customer cannot progress", customer("cust-1"), service.OpProgressBooking, target, false},

		{"driver claims open booking", driverCaller("driver-2"), service.OpAcceptBooking, service.Target{OwnerID: "cust-1"}, true},
		{"driver cannot claim taken booking", driverCaller("driver-2"), service.OpAcceptBooking, target, false},

		{"dealer assigns", dealerCaller("dealer-1"), service.OpAssignDriver, service.Target{}, true},
		{"admin assigns", admin(), service.OpAssignDriver, service.Target{}, true},
		{"driver does not use assign path", driverCaller("driver-1"), service.OpAssignDriver, service.Target{}, false},

		{"admin marks payment", admin(), service.OpMarkPayment, service.Target{}, true},
		{"customer does not mark payment directly", customer("cust-1"), service.OpMarkPayment, service.Target{}, false},

		{"admin processes payouts", admin(), service.OpProcessPayout, service.Target{}, true},
		{"dealer cannot process payouts", dealerCaller("dealer-1"), service.OpProcessPayout, service.Target{}, false},

		{"dealer reads own payouts", dealerCaller("dealer-1"), service.OpReadPayouts, target, true},
		{"driver reads own payouts", driverCaller("driver-1"), service.OpReadPayouts, target, true},
		{"foreign dealer cannot read payouts", dealerCaller("dealer-2"), service.OpReadPayouts, target, false},
		{"customer has no payout view", customer("cust-1"), service.OpReadPayouts, target, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := service.Allowed(tc.caller, tc.op, tc.target); got != tc.want {
				t.Errorf("Allowed(%s as %s) = %v, want %v", tc.op, tc.caller.Role, got, tc.want)
			}
		})
	}
}

func TestAllowed_EmptyProfileNeverMatches(t *testing.T) {
	// A driver token without a resolved profile must not match a booking
	// whose driver field is also empty.
	caller := service.Caller{ID: "user-x", Role: domain.RoleDriver}
	target := service.Target{OwnerID: "cust-1"}

	if service.Allowed(caller, service.OpProgressBooking, target) {
		t.Error("empty profile must not satisfy the assigned-driver gate")
	}
	if service.Allowed(caller, service.OpReadBooking, target) {
		t.Error("empty profile must not satisfy the read gate")
	}
}
