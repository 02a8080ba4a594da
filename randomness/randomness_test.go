package randomness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBeacon(t *testing.T) *Beacon {
	t.Helper()
	b, err := NewBeacon([]byte("test genesis"))
	require.NoError(t, err)
	return b
}

func TestBeacon_RequestThenResolve(t *testing.T) {
	b := newTestBeacon(t)
	assert.Equal(t, uint64(1), b.NextRound())

	h, err := b.Request()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), h.Round)

	// Undetermined round: not ready.
	_, err = b.Resolve(h)
	assert.ErrorIs(t, err, ErrNotReady)

	out, err := b.Advance()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), b.NextRound())

	got, err := b.Resolve(h)
	require.NoError(t, err)
	assert.Equal(t, out, got)
}

func TestBeacon_UnknownAndStaleHandles(t *testing.T) {
	b := newTestBeacon(t)

	_, err := b.Resolve(Handle{Round: 1})
	assert.ErrorIs(t, err, ErrUnknownHandle)

	h, err := b.Request()
	require.NoError(t, err)

	// Substituted round on a genuine handle ID.
	forged := Handle{ID: h.ID, Round: h.Round + 5}
	_, err = b.Resolve(forged)
	assert.ErrorIs(t, err, ErrStaleHandle)
}

func TestBeacon_OutputsChainAndDiffer(t *testing.T) {
	b := newTestBeacon(t)
	out1, err := b.Advance()
	require.NoError(t, err)
	out2, err := b.Advance()
	require.NoError(t, err)
	assert.NotEqual(t, out1, out2)
}

func TestBeacon_ProofVerifies(t *testing.T) {
	b := newTestBeacon(t)
	out, err := b.Advance()
	require.NoError(t, err)

	alpha, proof, err := b.Proof(1)
	require.NoError(t, err)
	require.NoError(t, VerifyOutput(b.PublicKey(), alpha, proof, out))

	// Tampered output fails verification.
	var tampered Output
	copy(tampered[:], out[:])
	tampered[0] ^= 0xFF
	assert.ErrorIs(t, VerifyOutput(b.PublicKey(), alpha, proof, tampered), ErrBadProof)
}

func TestBeacon_ProofUnknownRound(t *testing.T) {
	b := newTestBeacon(t)
	_, _, err := b.Proof(1)
	assert.ErrorIs(t, err, ErrNoSuchRound)
}

func TestBeacon_HandleBindsToNextRound(t *testing.T) {
	b := newTestBeacon(t)
	_, err := b.Advance()
	require.NoError(t, err)
	_, err = b.Advance()
	require.NoError(t, err)

	h, err := b.Request()
	require.NoError(t, err)
	assert.Equal(t, uint64(3), h.Round)
	assert.Equal(t, b.NextRound(), h.Round)
}

func TestMock_ScriptedRounds(t *testing.T) {
	m := NewMock()
	h, err := m.Request()
	require.NoError(t, err)

	_, err = m.Resolve(h)
	assert.ErrorIs(t, err, ErrNotReady)

	m.DetermineRoll(9999)
	out, err := m.Resolve(h)
	require.NoError(t, err)
	assert.Equal(t, byte(0), out[0])
	assert.Equal(t, uint64(2), m.NextRound())

	// Handle issued after round 1 was determined binds to round 2.
	h2, err := m.Request()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), h2.Round)
}

func TestMock_UnknownHandle(t *testing.T) {
	m := NewMock()
	_, err := m.Resolve(Handle{Round: 1})
	assert.ErrorIs(t, err, ErrUnknownHandle)
}
