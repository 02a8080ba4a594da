package mint

import (
	"path/filepath"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mintforge/libmintforge-go/randomness"
	"github.com/mintforge/libmintforge-go/rarity"
	"github.com/mintforge/libmintforge-go/rewards"
)

func tempBoltStore(t *testing.T) *BoltStore {
	t.Helper()
	s, err := OpenBoltStore(filepath.Join(t.TempDir(), "mint.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})
	return s
}

func testItem() *Item {
	max := uint64(500)
	it := &Item{
		ID:         MakeItemID([]byte("stored item")),
		Creator:    "creator",
		Currency:   "credits",
		Name:       "Relic",
		URI:        "https://example.com/relic.json",
		Collection: "relics",
		Active:     true,
		Paused:     false,
		Locked:     true,
	}
	it.Counters.MintedCount = 7
	it.Counters.PendingCount = 2
	it.Counters.MaxSupply = &max
	return it
}

func testRequest() *PendingRequest {
	return &PendingRequest{
		ID:                makeRequestID("payer", MakeItemID([]byte("stored item")), 9),
		Payer:             "payer",
		Beneficiary:       "friend",
		Settlement:        "creator",
		Item:              MakeItemID([]byte("stored item")),
		AmountPaid:        1_000_000,
		CreatedAt:         1234567,
		HadExistingStakes: true,
		Handle:            randomness.Handle{ID: [32]byte{1, 2, 3}, Round: 9},
		CommitPoint:       9,
	}
}

func testStakeRecord() *StakeRecord {
	return &StakeRecord{
		ID:      makeStakeID(MakeItemID([]byte("stored item")), 7),
		Item:    MakeItemID([]byte("stored item")),
		Owner:   "friend",
		Edition: 7,
		Tier:    rarity.Epic,
		Reward: rewards.Stake{
			Weight:     60,
			RewardDebt: uint256.NewInt(123_456_789),
		},
	}
}

// storeUnderTest runs the same suite against both Store implementations.
func storeUnderTest(t *testing.T, run func(t *testing.T, s Store)) {
	t.Run("mem", func(t *testing.T) {
		run(t, NewMemStore())
	})
	t.Run("bolt", func(t *testing.T) {
		run(t, tempBoltStore(t))
	})
}

func TestStore_ItemRoundTrip(t *testing.T) {
	storeUnderTest(t, func(t *testing.T, s Store) {
		_, err := s.GetItem(MakeItemID([]byte("missing")))
		assert.ErrorIs(t, err, ErrItemNotFound)

		want := testItem()
		require.NoError(t, s.PutItem(want))

		got, err := s.GetItem(want.ID)
		require.NoError(t, err)
		assert.Equal(t, want, got)

		// Reads hand out copies: mutating one must not leak into the next.
		got.Name = "tampered"
		got.Counters.MintedCount = 999
		again, err := s.GetItem(want.ID)
		require.NoError(t, err)
		assert.Equal(t, want, again)
	})
}

func TestStore_PoolRoundTrip(t *testing.T) {
	storeUnderTest(t, func(t *testing.T, s Store) {
		item := MakeItemID([]byte("stored item"))
		_, err := s.GetPool(item)
		assert.ErrorIs(t, err, ErrPoolNotFound)

		want := rewards.NewPool()
		require.NoError(t, want.AddRewards(0)) // no-op on empty pool
		want.AddStake(1)
		require.NoError(t, want.AddRewards(120_000))
		want.AddStake(120)
		require.NoError(t, s.PutPool(item, want))

		got, err := s.GetPool(item)
		require.NoError(t, err)
		assert.Equal(t, want, got)

		got.TotalWeight = 0
		got.RewardPerShare.SetUint64(0)
		again, err := s.GetPool(item)
		require.NoError(t, err)
		assert.Equal(t, want, again)
	})
}

func TestStore_StakeLifecycle(t *testing.T) {
	storeUnderTest(t, func(t *testing.T, s Store) {
		want := testStakeRecord()
		_, err := s.GetStake(want.ID)
		assert.ErrorIs(t, err, ErrStakeNotFound)
		assert.ErrorIs(t, s.DeleteStake(want.ID), ErrStakeNotFound)

		require.NoError(t, s.PutStake(want))
		got, err := s.GetStake(want.ID)
		require.NoError(t, err)
		assert.Equal(t, want, got)

		require.NoError(t, s.DeleteStake(want.ID))
		_, err = s.GetStake(want.ID)
		assert.ErrorIs(t, err, ErrStakeNotFound)
	})
}

func TestStore_RequestLifecycle(t *testing.T) {
	storeUnderTest(t, func(t *testing.T, s Store) {
		want := testRequest()
		_, err := s.GetRequest(want.ID)
		assert.ErrorIs(t, err, ErrRequestNotFound)
		assert.ErrorIs(t, s.DeleteRequest(want.ID), ErrRequestNotFound)

		require.NoError(t, s.PutRequest(want))
		got, err := s.GetRequest(want.ID)
		require.NoError(t, err)
		assert.Equal(t, want, got)

		require.NoError(t, s.DeleteRequest(want.ID))
		_, err = s.GetRequest(want.ID)
		assert.ErrorIs(t, err, ErrRequestNotFound)
	})
}

func TestStore_ListRequests(t *testing.T) {
	storeUnderTest(t, func(t *testing.T, s Store) {
		list, err := s.ListRequests()
		require.NoError(t, err)
		assert.Empty(t, list)

		item := MakeItemID([]byte("stored item"))
		byID := make(map[RequestID]*PendingRequest)
		for round := uint64(1); round <= 3; round++ {
			req := testRequest()
			req.ID = makeRequestID(req.Payer, item, round)
			req.Handle.Round = round
			req.CommitPoint = round
			require.NoError(t, s.PutRequest(req))
			byID[req.ID] = req
		}

		list, err = s.ListRequests()
		require.NoError(t, err)
		require.Len(t, list, 3)
		for _, got := range list {
			want, ok := byID[got.ID]
			require.True(t, ok)
			assert.Equal(t, want, got)
		}
	})
}

func TestBoltStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mint.db")

	s, err := OpenBoltStore(path)
	require.NoError(t, err)
	it := testItem()
	require.NoError(t, s.PutItem(it))
	require.NoError(t, s.PutStake(testStakeRecord()))
	require.NoError(t, s.Close())

	s, err = OpenBoltStore(path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.GetItem(it.ID)
	require.NoError(t, err)
	assert.Equal(t, it, got)

	rec, err := s.GetStake(testStakeRecord().ID)
	require.NoError(t, err)
	assert.Equal(t, testStakeRecord(), rec)
}

// ---------------------------------------------------------------------------
// Codec edge cases
// ---------------------------------------------------------------------------

func TestDeserializeItem_Invalid(t *testing.T) {
	data, err := SerializeItem(testItem())
	require.NoError(t, err)

	_, err = DeserializeItem(data[:len(data)-1])
	assert.ErrorIs(t, err, ErrInvalidItemData)

	_, err = DeserializeItem(append(data, 0x00))
	assert.ErrorIs(t, err, ErrInvalidItemData)

	_, err = DeserializeItem(nil)
	assert.ErrorIs(t, err, ErrInvalidItemData)
}

func TestDeserializeRequest_Invalid(t *testing.T) {
	data, err := SerializeRequest(testRequest())
	require.NoError(t, err)

	_, err = DeserializeRequest(data[:40])
	assert.ErrorIs(t, err, ErrInvalidRequestData)

	_, err = DeserializeRequest(append(data, 0xFF))
	assert.ErrorIs(t, err, ErrInvalidRequestData)
}

func TestDeserializeStakeRecord_Invalid(t *testing.T) {
	data, err := SerializeStakeRecord(testStakeRecord())
	require.NoError(t, err)

	_, err = DeserializeStakeRecord(data[:len(data)-1])
	assert.ErrorIs(t, err, ErrInvalidStakeRecordData)

	_, err = DeserializeStakeRecord(append(data, 0x00))
	assert.ErrorIs(t, err, ErrInvalidStakeRecordData)
}

func TestItem_NilMaxSupplyRoundTrip(t *testing.T) {
	it := testItem()
	it.Counters.MaxSupply = nil

	data, err := SerializeItem(it)
	require.NoError(t, err)
	got, err := DeserializeItem(data)
	require.NoError(t, err)
	assert.Nil(t, got.Counters.MaxSupply)
	assert.Equal(t, it, got)
}
