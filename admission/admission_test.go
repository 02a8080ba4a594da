package admission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bounded(max uint64) *Counters {
	return &Counters{MaxSupply: &max}
}

func TestTryReserve_Gates(t *testing.T) {
	tests := []struct {
		name     string
		currency string
		want     string
		active   bool
		paused   bool
		err      error
	}{
		{"paused", "credits", "credits", true, true, ErrPaused},
		{"inactive", "credits", "credits", false, false, ErrInactive},
		{"currency mismatch", "tokens", "credits", true, false, ErrCurrencyMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := bounded(10)
			_, err := TryReserve(c, tt.currency, tt.want, tt.active, tt.paused)
			assert.ErrorIs(t, err, tt.err)
			assert.Zero(t, c.PendingCount, "failed admission must not reserve")
		})
	}
}

func TestTryReserve_SupplyExhausted(t *testing.T) {
	c := bounded(2)

	r1, err := TryReserve(c, "credits", "credits", true, false)
	require.NoError(t, err)
	r2, err := TryReserve(c, "credits", "credits", true, false)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), c.PendingCount)

	// Third reservation fails while two are in flight.
	_, err = TryReserve(c, "credits", "credits", true, false)
	assert.ErrorIs(t, err, ErrSupplyExhausted)

	// Releasing one slot makes room again.
	require.NoError(t, r1.Release())
	r3, err := TryReserve(c, "credits", "credits", true, false)
	require.NoError(t, err)

	_, err = r2.CommitToMint()
	require.NoError(t, err)
	_, err = r3.CommitToMint()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), c.MintedCount)
	assert.Zero(t, c.PendingCount)

	// Fully minted: nothing left.
	_, err = TryReserve(c, "credits", "credits", true, false)
	assert.ErrorIs(t, err, ErrSupplyExhausted)
}

func TestTryReserve_Unbounded(t *testing.T) {
	c := &Counters{}
	for i := 0; i < 1000; i++ {
		_, err := TryReserve(c, "credits", "credits", true, false)
		require.NoError(t, err)
	}
	assert.Equal(t, uint64(1000), c.PendingCount)
}

func TestReservation_ConsumedOnce(t *testing.T) {
	c := bounded(5)
	r, err := TryReserve(c, "credits", "credits", true, false)
	require.NoError(t, err)

	edition, err := r.CommitToMint()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), edition)

	_, err = r.CommitToMint()
	assert.ErrorIs(t, err, ErrTokenConsumed)
	assert.ErrorIs(t, r.Release(), ErrTokenConsumed)
}

func TestEditions_Gapless(t *testing.T) {
	// Interleave commits and cancels; minted editions must form 1..MintedCount.
	c := bounded(100)
	var editions []uint64
	for i := 0; i < 30; i++ {
		r, err := TryReserve(c, "credits", "credits", true, false)
		require.NoError(t, err)
		if i%3 == 1 {
			require.NoError(t, r.Release())
			continue
		}
		e, err := r.CommitToMint()
		require.NoError(t, err)
		editions = append(editions, e)
	}
	for i, e := range editions {
		assert.Equal(t, uint64(i+1), e)
	}
	assert.Equal(t, uint64(len(editions)), c.MintedCount)
	assert.Zero(t, c.PendingCount)
}

func TestCommitReserved_NoPending(t *testing.T) {
	c := bounded(1)
	_, err := CommitReserved(c)
	assert.ErrorIs(t, err, ErrNoPendingSlot)
	assert.ErrorIs(t, ReleaseReserved(c), ErrNoPendingSlot)
}

func TestRemaining(t *testing.T) {
	c := bounded(3)
	left, boundedSupply := c.Remaining()
	assert.True(t, boundedSupply)
	assert.Equal(t, uint64(3), left)

	c.PendingCount = 2
	c.MintedCount = 1
	left, _ = c.Remaining()
	assert.Zero(t, left)

	_, boundedSupply = (&Counters{}).Remaining()
	assert.False(t, boundedSupply)
}

func TestCountersCodec_RoundTrip(t *testing.T) {
	max := uint64(42)
	tests := []struct {
		name string
		c    *Counters
	}{
		{"bounded", &Counters{MintedCount: 7, PendingCount: 3, MaxSupply: &max}},
		{"unbounded", &Counters{MintedCount: 1, PendingCount: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := SerializeCounters(tt.c)
			assert.Len(t, data, CountersDataSize())

			got, err := DeserializeCounters(data)
			require.NoError(t, err)
			assert.Equal(t, tt.c.MintedCount, got.MintedCount)
			assert.Equal(t, tt.c.PendingCount, got.PendingCount)
			if tt.c.MaxSupply == nil {
				assert.Nil(t, got.MaxSupply)
			} else {
				require.NotNil(t, got.MaxSupply)
				assert.Equal(t, *tt.c.MaxSupply, *got.MaxSupply)
			}
		})
	}
}

func TestCountersCodec_Invalid(t *testing.T) {
	_, err := DeserializeCounters([]byte{0x01})
	assert.ErrorIs(t, err, ErrInvalidCountersData)

	data := SerializeCounters(&Counters{})
	data[16] = 9
	_, err = DeserializeCounters(data)
	assert.ErrorIs(t, err, ErrInvalidCountersData)
}
