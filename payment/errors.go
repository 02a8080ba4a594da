package payment

import "errors"

var (
	// ErrInsufficientFunds indicates the source account cannot cover a transfer.
	ErrInsufficientFunds = errors.New("payment: insufficient funds")

	// ErrBalanceOverflow indicates a credit would overflow the target balance.
	ErrBalanceOverflow = errors.New("payment: balance overflow")

	// ErrBadAccount indicates an empty or malformed account identifier.
	ErrBadAccount = errors.New("payment: bad account")
)
