package booking

import (
	"slices"

	"tourbook/internal/pkg/errs"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

// transitions lists the states reachable from each state. States absent here are terminal.
var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled, StatusNoShow},
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", errs.Validation("Invalid booking status: %s", s)
	}
	return st, nil
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// HoldsCapacity reports whether a booking in this state counts against slot capacity.
func (s Status) HoldsCapacity() bool {
	return s == StatusPending || s == StatusConfirmed
}

func (s Status) CanTransitionTo(next Status) bool {
	return slices.Contains(transitions[s], next)
}

// ActiveStatuses are the states that hold capacity.
func ActiveStatuses() []Status {
	return []Status{StatusPending, StatusConfirmed}
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPartial  PaymentStatus = "partial"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
	PaymentFailed   PaymentStatus = "failed"
)

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	ps := PaymentStatus(s)
	switch ps {
	case PaymentPending, PaymentPartial, PaymentPaid, PaymentRefunded, PaymentFailed:
		return ps, nil
	default:
		return "", errs.Validation("Invalid payment status: %s", s)
	}
}

func (p PaymentStatus) String() string {
	return string(p)
}

// Settled means nothing is owed: paid in full or refunded.
func (p PaymentStatus) Settled() bool {
	return p == PaymentPaid || p == PaymentRefunded
}
