// Package admission enforces supply limits for a two-phase issuance flow. A
// reserved+minted counter pair admits no more in-flight commits than remaining
// supply while deferring edition-number assignment to the reveal step, so
// cancelled commits never leave gaps in the edition sequence.
package admission

import "fmt"

// Counters tracks issuance state for one issuable item.
type Counters struct {
	MintedCount  uint64
	PendingCount uint64
	MaxSupply    *uint64 // nil means unbounded
}

// Remaining returns the number of slots still reservable and whether the
// supply is bounded at all.
func (c *Counters) Remaining() (uint64, bool) {
	if c.MaxSupply == nil {
		return 0, false
	}
	used := c.MintedCount + c.PendingCount
	if used >= *c.MaxSupply {
		return 0, true
	}
	return *c.MaxSupply - used, true
}

// Reservation is a one-shot token for a reserved supply slot. It is consumed
// by exactly one of CommitToMint or Release.
type Reservation struct {
	counters *Counters
	consumed bool
}

// TryReserve checks admission and, on success, atomically reserves a supply
// slot by incrementing PendingCount. Callers must serialize access to the
// counters; the check-and-increment is a single step under that serialization,
// never a read-then-write visible to other commits.
func TryReserve(c *Counters, currency, wantCurrency string, active, paused bool) (*Reservation, error) {
	if paused {
		return nil, ErrPaused
	}
	if !active {
		return nil, ErrInactive
	}
	if currency != wantCurrency {
		return nil, fmt.Errorf("%w: have %q, want %q", ErrCurrencyMismatch, currency, wantCurrency)
	}
	if c.MaxSupply != nil && c.MintedCount+c.PendingCount >= *c.MaxSupply {
		return nil, fmt.Errorf("%w: %d of %d issued or pending", ErrSupplyExhausted,
			c.MintedCount+c.PendingCount, *c.MaxSupply)
	}
	c.PendingCount++
	return &Reservation{counters: c}, nil
}

// CommitToMint consumes the reservation and assigns the next edition number.
func (r *Reservation) CommitToMint() (uint64, error) {
	if r.consumed {
		return 0, ErrTokenConsumed
	}
	r.consumed = true
	edition, err := CommitReserved(r.counters)
	if err != nil {
		return 0, err
	}
	return edition, nil
}

// Release consumes the reservation and returns its slot to the supply.
func (r *Reservation) Release() error {
	if r.consumed {
		return ErrTokenConsumed
	}
	r.consumed = true
	return ReleaseReserved(r.counters)
}

// CommitReserved converts one reserved slot into a mint: PendingCount-1,
// MintedCount+1. The returned edition number is the new MintedCount, assigned
// here rather than at reservation time so the sequence 1..MintedCount stays
// gapless regardless of cancelled reservations. Used directly when the
// reservation spans separate transactions and no token object survives.
func CommitReserved(c *Counters) (uint64, error) {
	if c.PendingCount == 0 {
		return 0, ErrNoPendingSlot
	}
	c.PendingCount--
	c.MintedCount++
	return c.MintedCount, nil
}

// ReleaseReserved returns one reserved slot to the supply.
func ReleaseReserved(c *Counters) error {
	if c.PendingCount == 0 {
		return ErrNoPendingSlot
	}
	c.PendingCount--
	return nil
}
