package admission

import "errors"

var (
	// ErrPaused indicates the item is paused for new commits.
	ErrPaused = errors.New("admission: item paused")

	// ErrInactive indicates the item is not open for issuance.
	ErrInactive = errors.New("admission: item inactive")

	// ErrCurrencyMismatch indicates payment in the wrong currency.
	ErrCurrencyMismatch = errors.New("admission: currency mismatch")

	// ErrSupplyExhausted indicates no supply slot remains to reserve.
	ErrSupplyExhausted = errors.New("admission: supply exhausted")

	// ErrTokenConsumed indicates reuse of an already-consumed reservation.
	ErrTokenConsumed = errors.New("admission: reservation already consumed")

	// ErrNoPendingSlot indicates counter state with no reservation to resolve.
	ErrNoPendingSlot = errors.New("admission: no pending reservation")

	// ErrInvalidCountersData indicates a malformed serialized counters record.
	ErrInvalidCountersData = errors.New("admission: invalid counters data")
)
