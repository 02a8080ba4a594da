// Package mint implements the two-phase, randomness-gated issuance flow: a
// commit escrows payment and reserves a supply slot, a later reveal resolves
// external randomness into a rarity-weighted stake and distributes the
// escrow, and a cancel refunds commits whose randomness never arrived. All
// state transitions are atomic: a failed operation leaves ledger and store
// untouched.
package mint

import (
	"encoding/binary"
	"encoding/hex"

	"golang.org/x/crypto/blake2b"

	"github.com/mintforge/libmintforge-go/admission"
	"github.com/mintforge/libmintforge-go/payment"
	"github.com/mintforge/libmintforge-go/randomness"
	"github.com/mintforge/libmintforge-go/rarity"
	"github.com/mintforge/libmintforge-go/rewards"
)

// ItemID identifies an issuable item.
type ItemID [32]byte

// RequestID identifies a pending commit. It doubles as the name of the
// request's escrow account.
type RequestID [32]byte

// StakeID identifies an issued stake.
type StakeID [32]byte

func (id ItemID) String() string    { return hex.EncodeToString(id[:]) }
func (id RequestID) String() string { return hex.EncodeToString(id[:]) }
func (id StakeID) String() string   { return hex.EncodeToString(id[:]) }

// MakeItemID derives a stable item identifier from arbitrary seed bytes.
func MakeItemID(seed []byte) ItemID {
	return ItemID(blake2b.Sum256(seed))
}

// makeRequestID binds a request to (payer, item, commit point): at most one
// in-flight commit per payer, item and randomness round.
func makeRequestID(payer payment.AccountID, item ItemID, commitPoint uint64) RequestID {
	buf := make([]byte, 0, len(payer)+32+8)
	buf = append(buf, payer...)
	buf = append(buf, item[:]...)
	buf = binary.BigEndian.AppendUint64(buf, commitPoint)
	return RequestID(blake2b.Sum256(buf))
}

// makeStakeID derives the stake identifier from item and edition number.
func makeStakeID(item ItemID, edition uint64) StakeID {
	buf := make([]byte, 40)
	copy(buf[:32], item[:])
	binary.BigEndian.PutUint64(buf[32:], edition)
	return StakeID(blake2b.Sum256(buf))
}

// Item is an issuable item's record: identity, payout target, sale state and
// admission counters. Name, URI and Collection feed the asset minter; they
// freeze once the first reveal locks the item.
type Item struct {
	ID         ItemID
	Creator    payment.AccountID
	Currency   string
	Name       string
	URI        string
	Collection string
	Active     bool
	Paused     bool
	Locked     bool
	Counters   admission.Counters
}

// PendingRequest is the escrow record bridging commit and reveal. Exactly one
// of reveal or cancel resolves it; afterwards it no longer exists, so a second
// resolution attempt fails structurally rather than by advisory flagging.
type PendingRequest struct {
	ID          RequestID
	Payer       payment.AccountID
	Beneficiary payment.AccountID // receives the stake at reveal
	Settlement  payment.AccountID // receives creator proceeds, captured at commit
	Item        ItemID
	AmountPaid  uint64
	CreatedAt   int64
	// HadExistingStakes records whether the pool held any weight at commit
	// time. It decides at reveal whether the holder-reward cut is shared or
	// redirected to the creator.
	HadExistingStakes bool
	Handle            randomness.Handle
	CommitPoint       uint64
}

// StakeRecord is an issued stake: ownership, its edition number, the rarity
// outcome and the reward-accounting state.
type StakeRecord struct {
	ID      StakeID
	Item    ItemID
	Owner   payment.AccountID
	Edition uint64
	Tier    rarity.Tier
	Reward  rewards.Stake
}

// Receipt summarizes a successful reveal.
type Receipt struct {
	StakeID StakeID
	Edition uint64
	Tier    rarity.Tier
	Weight  uint16
	AssetID string
}

// EscrowAccount names the ledger account holding a request's escrowed funds.
func EscrowAccount(id RequestID) payment.AccountID {
	return payment.AccountID("escrow:" + id.String())
}

// RewardAccount names the ledger account holding an item pool's undistributed
// holder rewards.
func RewardAccount(item ItemID) payment.AccountID {
	return payment.AccountID("rewards:" + item.String())
}
