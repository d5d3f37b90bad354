package domain

import (
	"errors"
	"fmt"
)

var ErrIllegalTransition = errors.New("illegal transition")

type VendorAction string

const (
	VendorApprove    VendorAction = "approve"
	VendorReject     VendorAction = "reject"
	VendorSuspend    VendorAction = "suspend"
	VendorReactivate VendorAction = "reactivate"
)

// vendorTransitions maps action -> from -> to. Repeating an action on the state
// it produces is allowed and leaves the vendor unchanged.
var vendorTransitions = map[VendorAction]map[string]string{
	VendorApprove: {
		"pending":  "verified",
		"verified": "verified",
	},
	VendorReject: {
		"pending":  "rejected",
		"rejected": "rejected",
	},
	VendorSuspend: {
		"verified":  "suspended",
		"suspended": "suspended",
	},
	VendorReactivate: {
		"suspended": "verified",
		"verified":  "verified",
	},
}

func ParseVendorAction(s string) (VendorAction, bool) {
	a := VendorAction(s)
	_, ok := vendorTransitions[a]
	return a, ok
}

// NextVendorStatus returns the status reached by applying action to from.
func NextVendorStatus(from string, action VendorAction) (string, error) {
	to, ok := vendorTransitions[action][from]
	if !ok {
		return "", fmt.Errorf("%w: cannot %s a %s vendor", ErrIllegalTransition, action, from)
	}
	return to, nil
}

var orderTransitions = map[string][]string{
	"pending":   {"confirmed", "cancelled"},
	"confirmed": {"shipped", "cancelled"},
	"shipped":   {"delivered"},
	"delivered": nil,
	"cancelled": nil,
}

var paymentTransitions = map[string][]string{
	"pending":   {"completed", "failed"},
	"failed":    {"pending"},
	"completed": nil,
}

func CanMoveOrder(from, to string) error {
	return checkMove(orderTransitions, "order", from, to)
}

func CanMovePayment(from, to string) error {
	return checkMove(paymentTransitions, "payment", from, to)
}

func IsOrderStatus(s string) bool {
	_, ok := orderTransitions[s]
	return ok
}

func IsPaymentStatus(s string) bool {
	_, ok := paymentTransitions[s]
	return ok
}

func checkMove(table map[string][]string, kind, from, to string) error {
	for _, next := range table[from] {
		if next == to {
			return nil
		}
	}
	return fmt.Errorf("%w: %s cannot move from %s to %s", ErrIllegalTransition, kind, from, to)
}
