// Package randomness defines the external randomness boundary for the
// commit/reveal flow and provides a VRF-backed beacon implementation. A handle
// binds a commit to a specific round of an append-only randomness sequence;
// the freshness rule is that a handle is only acceptable while its round is
// still undetermined, so an already-consumed output can never be replayed into
// a new commit.
package randomness

// OutputSize is the byte length of a resolved random output.
const OutputSize = 32

// Output is a resolved random value.
type Output [OutputSize]byte

// Handle references one round of an adapter's randomness sequence.
type Handle struct {
	ID    [32]byte
	Round uint64
}

// Adapter is the port consumed by the commit/reveal engine.
type Adapter interface {
	// Request issues a handle bound to the next undetermined round.
	Request() (Handle, error)

	// NextRound returns the first round that has not yet been determined.
	// A commit must only accept handles whose round equals this value.
	NextRound() uint64

	// Resolve returns the output for the handle's round. It fails with
	// ErrNotReady while the round is undetermined, ErrUnknownHandle for a
	// handle the adapter never issued, and ErrStaleHandle when the handle's
	// claimed round disagrees with the round it was issued for.
	Resolve(h Handle) (Output, error)
}
