// Package payment defines the payment-ledger boundary used for escrow and
// payouts. The core only needs an atomic transfer primitive over named
// accounts; escrowed funds are held under an account named after the pending
// request itself.
package payment

import (
	"fmt"
	"math"
	"sync"
)

// AccountID names a balance on the ledger.
type AccountID string

// Ledger is the transfer port consumed by the engine.
type Ledger interface {
	// Transfer moves amount from one account to another, atomically.
	// A zero amount is a no-op.
	Transfer(from, to AccountID, amount uint64) error

	// Balance returns the current balance of an account.
	Balance(id AccountID) uint64
}

// MemLedger is an in-memory Ledger for tests and embedded use.
type MemLedger struct {
	mu       sync.Mutex
	balances map[AccountID]uint64
}

// NewMemLedger returns an empty ledger.
func NewMemLedger() *MemLedger {
	return &MemLedger{balances: make(map[AccountID]uint64)}
}

// Mint credits an account out of thin air, for funding test actors.
func (l *MemLedger) Mint(to AccountID, amount uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[to] += amount
}

// Transfer moves amount between accounts.
func (l *MemLedger) Transfer(from, to AccountID, amount uint64) error {
	if amount == 0 {
		return nil
	}
	if from == "" || to == "" {
		return fmt.Errorf("%w: from %q, to %q", ErrBadAccount, from, to)
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.balances[from] < amount {
		return fmt.Errorf("%w: account %q has %d, needs %d", ErrInsufficientFunds, from, l.balances[from], amount)
	}
	if from == to {
		return nil
	}
	if l.balances[to] > math.MaxUint64-amount {
		return fmt.Errorf("%w: account %q", ErrBalanceOverflow, to)
	}
	l.balances[from] -= amount
	l.balances[to] += amount
	return nil
}

// Balance returns the account's balance.
func (l *MemLedger) Balance(id AccountID) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[id]
}

var _ Ledger = (*MemLedger)(nil)
