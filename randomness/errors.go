package randomness

import "errors"

var (
	// ErrNotReady indicates the handle's round has not been determined yet.
	ErrNotReady = errors.New("randomness: output not ready")

	// ErrStaleHandle indicates a handle inconsistent with its issued round.
	ErrStaleHandle = errors.New("randomness: stale handle")

	// ErrUnknownHandle indicates a handle this adapter never issued.
	ErrUnknownHandle = errors.New("randomness: unknown handle")

	// ErrBadProof indicates a VRF proof that does not verify.
	ErrBadProof = errors.New("randomness: invalid VRF proof")

	// ErrNoSuchRound indicates a round outside the resolved sequence.
	ErrNoSuchRound = errors.New("randomness: no such round")
)
