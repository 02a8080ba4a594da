package randomness

import (
	"encoding/binary"
	"sync"

	"golang.org/x/crypto/blake2b"
)

// Mock is a scripted adapter for tests. Rounds resolve only when the test
// calls Determine, and the output for each round is whatever the test set.
type Mock struct {
	mu       sync.Mutex
	next     uint64 // first undetermined round
	outputs  map[uint64]Output
	handles  map[[32]byte]uint64
	issued   uint64
	reqErr   error
}

// NewMock returns a mock whose first round is 1.
func NewMock() *Mock {
	return &Mock{
		next:    1,
		outputs: make(map[uint64]Output),
		handles: make(map[[32]byte]uint64),
	}
}

// SetRequestErr makes subsequent Request calls fail with err.
func (m *Mock) SetRequestErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reqErr = err
}

// Determine resolves the next round with the given output.
func (m *Mock) Determine(out Output) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outputs[m.next] = out
	m.next++
}

// DetermineRoll resolves the next round with an output whose derived rarity
// roll equals roll.
func (m *Mock) DetermineRoll(roll uint64) {
	var out Output
	binary.BigEndian.PutUint64(out[:8], roll)
	m.Determine(out)
}

// NextRound returns the first undetermined round.
func (m *Mock) NextRound() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.next
}

// Request issues a handle bound to the next undetermined round.
func (m *Mock) Request() (Handle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.reqErr != nil {
		return Handle{}, m.reqErr
	}
	m.issued++
	var seed [16]byte
	binary.BigEndian.PutUint64(seed[:8], m.next)
	binary.BigEndian.PutUint64(seed[8:], m.issued)
	id := blake2b.Sum256(seed[:])
	m.handles[id] = m.next
	return Handle{ID: id, Round: m.next}, nil
}

// Resolve returns the scripted output for the handle's round.
func (m *Mock) Resolve(h Handle) (Output, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	round, ok := m.handles[h.ID]
	if !ok {
		return Output{}, ErrUnknownHandle
	}
	if round != h.Round {
		return Output{}, ErrStaleHandle
	}
	out, ok := m.outputs[round]
	if !ok {
		return Output{}, ErrNotReady
	}
	return out, nil
}

var _ Adapter = (*Mock)(nil)
