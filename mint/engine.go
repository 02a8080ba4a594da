package mint

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/mintforge/libmintforge-go/admission"
	"github.com/mintforge/libmintforge-go/config"
	"github.com/mintforge/libmintforge-go/fees"
	"github.com/mintforge/libmintforge-go/payment"
	"github.com/mintforge/libmintforge-go/randomness"
	"github.com/mintforge/libmintforge-go/rarity"
	"github.com/mintforge/libmintforge-go/rewards"
)

// Params collects the engine's collaborators. Store, Ledger, Randomness and
// Minter are required; Platform and Ecosystem fall back to Treasury when
// empty.
type Params struct {
	Config     config.Config
	Store      Store
	Ledger     payment.Ledger
	Randomness randomness.Adapter
	Minter     AssetMinter

	Admin     payment.AccountID
	Treasury  payment.AccountID
	Platform  payment.AccountID
	Ecosystem payment.AccountID

	Logger *logrus.Logger
}

// Engine drives the commit/reveal issuance flow against shared ledger state.
// A single mutex serializes every state transition, so each operation either
// fully applies or has no observable effect; loaded records are mutated as
// copies and persisted only after the whole transition has succeeded.
type Engine struct {
	mu sync.Mutex

	store  Store
	ledger payment.Ledger
	rand   randomness.Adapter
	minter AssetMinter

	currency       string
	minCancelDelay int64
	fees           fees.Schedule
	tiers          *rarity.Table

	admin     payment.AccountID
	treasury  payment.AccountID
	platform  payment.AccountID
	ecosystem payment.AccountID

	log *logrus.Logger
}

// NewEngine validates params and builds an engine.
func NewEngine(p Params) (*Engine, error) {
	if p.Store == nil || p.Ledger == nil || p.Randomness == nil || p.Minter == nil {
		return nil, fmt.Errorf("%w: store, ledger, randomness and minter are required", ErrBadParams)
	}
	if p.Admin == "" || p.Treasury == "" {
		return nil, fmt.Errorf("%w: admin and treasury accounts are required", ErrBadParams)
	}
	if err := config.ValidateConfig(p.Config); err != nil {
		return nil, err
	}
	tiers, err := p.Config.TierTable()
	if err != nil {
		return nil, err
	}

	log := p.Logger
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}

	return &Engine{
		store:          p.Store,
		ledger:         p.Ledger,
		rand:           p.Randomness,
		minter:         p.Minter,
		currency:       p.Config.Currency,
		minCancelDelay: p.Config.MinCancelDelay,
		fees:           p.Config.Fees,
		tiers:          tiers,
		admin:          p.Admin,
		treasury:       p.Treasury,
		platform:       p.Platform,
		ecosystem:      p.Ecosystem,
		log:            log,
	}, nil
}

// platformTarget resolves the platform payout account, falling back to the
// treasury when no platform account is configured.
func (e *Engine) platformTarget() payment.AccountID {
	if e.platform != "" {
		return e.platform
	}
	return e.treasury
}

func (e *Engine) ecosystemTarget() payment.AccountID {
	if e.ecosystem != "" {
		return e.ecosystem
	}
	return e.treasury
}

// ---------------------------------------------------------------------------
// Item administration
// ---------------------------------------------------------------------------

// RegisterItem creates a new issuable item. Counters start zeroed; only the
// supply bound is taken from the caller's record.
func (e *Engine) RegisterItem(it *Item) error {
	if it == nil || it.Creator == "" || it.Currency == "" {
		return fmt.Errorf("%w: item needs creator and currency", ErrBadParams)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.store.GetItem(it.ID); err == nil {
		return fmt.Errorf("%w: %s", ErrItemExists, it.ID)
	} else if !errors.Is(err, ErrItemNotFound) {
		return err
	}

	reg := *it
	reg.Locked = false
	reg.Counters = admission.Counters{MaxSupply: it.Counters.MaxSupply}
	if err := e.store.PutItem(&reg); err != nil {
		return err
	}

	e.log.WithFields(logrus.Fields{
		"item":     reg.ID.String(),
		"creator":  string(reg.Creator),
		"currency": reg.Currency,
	}).Info("item registered")
	return nil
}

// SetPaused toggles the item's pause flag. Admin only.
func (e *Engine) SetPaused(caller payment.AccountID, id ItemID, paused bool) error {
	return e.updateItem(caller, id, func(it *Item) error {
		it.Paused = paused
		return nil
	}, true)
}

// SetActive toggles the item's active flag. Admin only.
func (e *Engine) SetActive(caller payment.AccountID, id ItemID, active bool) error {
	return e.updateItem(caller, id, func(it *Item) error {
		it.Active = active
		return nil
	}, true)
}

// UpdateMetadata changes the item's asset metadata. Creator only; fails once
// the first reveal has locked the item.
func (e *Engine) UpdateMetadata(caller payment.AccountID, id ItemID, name, uri string) error {
	return e.updateItem(caller, id, func(it *Item) error {
		if it.Locked {
			return fmt.Errorf("%w: %s", ErrItemLocked, id)
		}
		if caller != it.Creator {
			return ErrUnauthorized
		}
		it.Name = name
		it.URI = uri
		return nil
	}, false)
}

func (e *Engine) updateItem(caller payment.AccountID, id ItemID, apply func(*Item) error, adminOnly bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if adminOnly && caller != e.admin {
		return ErrUnauthorized
	}
	it, err := e.store.GetItem(id)
	if err != nil {
		return err
	}
	if err := apply(it); err != nil {
		return err
	}
	return e.store.PutItem(it)
}

// ---------------------------------------------------------------------------
// Commit
// ---------------------------------------------------------------------------

// Commit reserves a supply slot and escrows the payment for a future reveal.
// The supplied handle must be bound to the randomness adapter's next
// undetermined round; handles over already-determined rounds are rejected so
// a payer can never commit against an outcome they have seen. beneficiary
// defaults to payer.
func (e *Engine) Commit(payer, beneficiary payment.AccountID, itemID ItemID, price uint64, h randomness.Handle, now int64) (*PendingRequest, error) {
	if payer == "" {
		return nil, fmt.Errorf("%w: empty payer", ErrBadParams)
	}
	if beneficiary == "" {
		beneficiary = payer
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	it, err := e.store.GetItem(itemID)
	if err != nil {
		return nil, err
	}

	// Admission first, fail closed. The check-and-increment happens on the
	// loaded copy under the engine mutex and is persisted only on success,
	// so concurrent commits can never jointly oversubscribe the supply.
	if _, err := admission.TryReserve(&it.Counters, it.Currency, e.currency, it.Active, it.Paused); err != nil {
		return nil, err
	}

	if next := e.rand.NextRound(); h.Round != next {
		return nil, fmt.Errorf("%w: handle round %d, next undetermined round %d", ErrStaleCommitPoint, h.Round, next)
	}

	id := makeRequestID(payer, itemID, h.Round)
	if _, err := e.store.GetRequest(id); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateRequest, id)
	} else if !errors.Is(err, ErrRequestNotFound) {
		return nil, err
	}

	// The pool's occupancy is captured now, not at reveal: it decides who
	// receives the holder-reward cut for this sale.
	hadStakes := false
	if pool, err := e.store.GetPool(itemID); err == nil {
		hadStakes = pool.TotalWeight > 0
	} else if !errors.Is(err, ErrPoolNotFound) {
		return nil, err
	}

	// Reservation is in place (on the copy); escrow comes second.
	esc := EscrowAccount(id)
	if price > 0 {
		if err := e.ledger.Transfer(payer, esc, price); err != nil {
			return nil, err
		}
	}

	req := &PendingRequest{
		ID:                id,
		Payer:             payer,
		Beneficiary:       beneficiary,
		Settlement:        it.Creator,
		Item:              itemID,
		AmountPaid:        price,
		CreatedAt:         now,
		HadExistingStakes: hadStakes,
		Handle:            h,
		CommitPoint:       h.Round,
	}

	if err := e.store.PutRequest(req); err != nil {
		e.refundEscrow(esc, payer, "commit rollback")
		return nil, err
	}
	if err := e.store.PutItem(it); err != nil {
		_ = e.store.DeleteRequest(id)
		e.refundEscrow(esc, payer, "commit rollback")
		return nil, err
	}

	e.log.WithFields(logrus.Fields{
		"request": id.String(),
		"item":    itemID.String(),
		"payer":   string(payer),
		"price":   price,
		"round":   h.Round,
	}).Info("commit accepted")
	return req, nil
}

// refundEscrow best-effort returns whatever the escrow account holds.
func (e *Engine) refundEscrow(esc, payer payment.AccountID, reason string) {
	if bal := e.ledger.Balance(esc); bal > 0 {
		if err := e.ledger.Transfer(esc, payer, bal); err != nil {
			e.log.WithError(err).WithField("escrow", string(esc)).Error(reason + ": refund failed")
		}
	}
}

// ---------------------------------------------------------------------------
// Reveal
// ---------------------------------------------------------------------------

// Reveal resolves a pending commit into an issued stake. The presented handle
// must be the one the commit was made with; the randomness adapter decides
// whether the round is ready. Reward deposits are applied to the pool before
// the new stake's weight so the new stake cannot retroactively claim a share
// of its own sale. The external asset mint is sequenced last: if it fails,
// nothing is persisted and no funds move.
func (e *Engine) Reveal(id RequestID, h randomness.Handle) (*Receipt, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	req, err := e.store.GetRequest(id)
	if err != nil {
		return nil, err
	}
	if req.Handle != h {
		return nil, fmt.Errorf("%w: request %s", ErrHandleMismatch, id)
	}

	out, err := e.rand.Resolve(h)
	if err != nil {
		return nil, err
	}

	it, err := e.store.GetItem(req.Item)
	if err != nil {
		return nil, err
	}

	esc := EscrowAccount(req.ID)
	if bal := e.ledger.Balance(esc); bal != req.AmountPaid {
		return nil, fmt.Errorf("%w: escrow holds %d, request records %d", ErrEscrowMismatch, bal, req.AmountPaid)
	}

	tier, weight, err := e.tiers.DeriveTier(out[:])
	if err != nil {
		return nil, err
	}

	// First reveal locks the item's metadata and starts accounting from a
	// clean pool, discarding any stale pre-initialization state.
	var pool *rewards.Pool
	if it.Counters.MintedCount == 0 {
		it.Locked = true
		pool = rewards.NewPool()
	} else {
		pool, err = e.store.GetPool(req.Item)
		if errors.Is(err, ErrPoolNotFound) {
			pool = rewards.NewPool()
		} else if err != nil {
			return nil, err
		}
	}

	split, err := e.fees.SplitPrimary(req.AmountPaid, req.HadExistingStakes)
	if err != nil {
		return nil, err
	}
	creatorAmount, holderAmount := split.Creator, split.HolderReward

	// Deposit before adding the new stake's weight. The commit-time occupancy
	// flag can be stale if every stake was burned during the pending window;
	// an undistributable deposit then falls through to the creator.
	if holderAmount > 0 {
		switch err := pool.AddRewards(holderAmount); {
		case errors.Is(err, rewards.ErrNoStakeholders):
			creatorAmount += holderAmount
			holderAmount = 0
		case err != nil:
			return nil, err
		}
	}

	stake := rewards.NewStake(pool, weight)
	pool.AddStake(weight)

	edition, err := admission.CommitReserved(&it.Counters)
	if err != nil {
		return nil, err
	}

	stakeID := makeStakeID(req.Item, edition)
	rec := &StakeRecord{
		ID:      stakeID,
		Item:    req.Item,
		Owner:   req.Beneficiary,
		Edition: edition,
		Tier:    tier,
		Reward:  *stake,
	}

	// External mint goes last; a failure here aborts the reveal before any
	// ledger movement or store write, rolling the accounting back with it.
	assetName := fmt.Sprintf("%s #%d", it.Name, edition)
	assetID, err := e.minter.CreateAsset(assetName, it.URI, it.Collection, req.Beneficiary)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAssetMintFailed, err)
	}

	if err := e.payoutEscrow(esc, req, it, creatorAmount, split, holderAmount); err != nil {
		return nil, err
	}

	if err := e.store.PutItem(it); err != nil {
		return nil, err
	}
	if err := e.store.PutPool(req.Item, pool); err != nil {
		return nil, err
	}
	if err := e.store.PutStake(rec); err != nil {
		return nil, err
	}
	if err := e.store.DeleteRequest(req.ID); err != nil {
		return nil, err
	}

	e.log.WithFields(logrus.Fields{
		"request": req.ID.String(),
		"item":    req.Item.String(),
		"edition": edition,
		"tier":    tier.String(),
		"weight":  weight,
		"asset":   assetID,
	}).Info("reveal minted")

	return &Receipt{
		StakeID: stakeID,
		Edition: edition,
		Tier:    tier,
		Weight:  weight,
		AssetID: assetID,
	}, nil
}

// payoutEscrow disburses the verified escrow: creator, platform, ecosystem,
// holder-reward vault, then any residual back to the payer.
func (e *Engine) payoutEscrow(esc payment.AccountID, req *PendingRequest, it *Item, creatorAmount uint64, split fees.PrimarySplit, holderAmount uint64) error {
	settlement := req.Settlement
	if settlement == "" {
		settlement = it.Creator
	}
	if err := e.ledger.Transfer(esc, settlement, creatorAmount); err != nil {
		return err
	}
	if err := e.ledger.Transfer(esc, e.platformTarget(), split.Platform); err != nil {
		return err
	}
	if err := e.ledger.Transfer(esc, e.ecosystemTarget(), split.Ecosystem); err != nil {
		return err
	}
	if err := e.ledger.Transfer(esc, RewardAccount(it.ID), holderAmount); err != nil {
		return err
	}
	if residual := e.ledger.Balance(esc); residual > 0 {
		return e.ledger.Transfer(esc, req.Payer, residual)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Cancel
// ---------------------------------------------------------------------------

// Cancel refunds a pending commit whose randomness never resolved, releasing
// its supply slot. It is permissionless: whoever calls it, the refund goes to
// the original payer. The grace period gives the randomness source time to
// resolve before a commit can be withdrawn from under it.
func (e *Engine) Cancel(id RequestID, now int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cancelLocked(id, now)
}

func (e *Engine) cancelLocked(id RequestID, now int64) error {
	req, err := e.store.GetRequest(id)
	if err != nil {
		return err
	}
	if age := now - req.CreatedAt; age < e.minCancelDelay {
		return fmt.Errorf("%w: age %d, need %d", ErrCancelTooEarly, age, e.minCancelDelay)
	}

	it, err := e.store.GetItem(req.Item)
	if err != nil {
		return err
	}
	if err := admission.ReleaseReserved(&it.Counters); err != nil {
		return err
	}

	esc := EscrowAccount(req.ID)
	if refund := e.ledger.Balance(esc); refund > 0 {
		if err := e.ledger.Transfer(esc, req.Payer, refund); err != nil {
			return err
		}
	}

	if err := e.store.PutItem(it); err != nil {
		return err
	}
	if err := e.store.DeleteRequest(id); err != nil {
		return err
	}

	e.log.WithFields(logrus.Fields{
		"request": id.String(),
		"item":    req.Item.String(),
		"payer":   string(req.Payer),
		"refund":  req.AmountPaid,
	}).Info("commit cancelled")
	return nil
}

// ---------------------------------------------------------------------------
// Claim / Burn
// ---------------------------------------------------------------------------

// Claim pays out the stake's pending reward to its owner and settles the
// stake's debt in full.
func (e *Engine) Claim(caller payment.AccountID, id StakeID) (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	rec, err := e.store.GetStake(id)
	if err != nil {
		return 0, err
	}
	if caller != rec.Owner {
		return 0, ErrUnauthorized
	}
	pool, err := e.store.GetPool(rec.Item)
	if err != nil {
		return 0, err
	}

	amount, err := rec.Reward.Claim(pool)
	if err != nil {
		return 0, err
	}
	if amount > 0 {
		if err := e.ledger.Transfer(RewardAccount(rec.Item), rec.Owner, amount); err != nil {
			return 0, err
		}
	}

	if err := e.store.PutPool(rec.Item, pool); err != nil {
		return 0, err
	}
	if err := e.store.PutStake(rec); err != nil {
		return 0, err
	}

	e.log.WithFields(logrus.Fields{
		"stake":  id.String(),
		"owner":  string(rec.Owner),
		"amount": amount,
	}).Info("reward claimed")
	return amount, nil
}

// Burn destroys a stake. Its pending reward is settled and paid out first,
// then the weight leaves the pool; reversing that order would strand the
// stake's already-accrued entitlement. A second burn of the same stake fails
// because the record no longer exists.
func (e *Engine) Burn(caller payment.AccountID, id StakeID) (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	rec, err := e.store.GetStake(id)
	if err != nil {
		return 0, err
	}
	if caller != rec.Owner {
		return 0, ErrUnauthorized
	}
	pool, err := e.store.GetPool(rec.Item)
	if err != nil {
		return 0, err
	}

	amount, err := rec.Reward.Claim(pool)
	if err != nil {
		return 0, err
	}
	if amount > 0 {
		if err := e.ledger.Transfer(RewardAccount(rec.Item), rec.Owner, amount); err != nil {
			return 0, err
		}
	}

	pool.RemoveStake(rec.Reward.Weight)

	if err := e.store.PutPool(rec.Item, pool); err != nil {
		return 0, err
	}
	if err := e.store.DeleteStake(id); err != nil {
		return 0, err
	}

	e.log.WithFields(logrus.Fields{
		"stake":   id.String(),
		"owner":   string(rec.Owner),
		"settled": amount,
	}).Info("stake burned")
	return amount, nil
}

// ---------------------------------------------------------------------------
// Views
// ---------------------------------------------------------------------------

// PendingReward returns the stake's currently claimable amount.
func (e *Engine) PendingReward(id StakeID) (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	rec, err := e.store.GetStake(id)
	if err != nil {
		return 0, err
	}
	pool, err := e.store.GetPool(rec.Item)
	if err != nil {
		return 0, err
	}
	return rec.Reward.Pending(pool), nil
}

// Item returns the item record.
func (e *Engine) Item(id ItemID) (*Item, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.GetItem(id)
}

// Pool returns the item's reward pool.
func (e *Engine) Pool(id ItemID) (*rewards.Pool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.GetPool(id)
}

// Stake returns the stake record.
func (e *Engine) Stake(id StakeID) (*StakeRecord, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.GetStake(id)
}

// Request returns the pending request.
func (e *Engine) Request(id RequestID) (*PendingRequest, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.GetRequest(id)
}

// expiredRequests lists pending requests old enough to cancel.
func (e *Engine) expiredRequests(now int64) ([]RequestID, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	reqs, err := e.store.ListRequests()
	if err != nil {
		return nil, err
	}
	var ids []RequestID
	for _, req := range reqs {
		if now-req.CreatedAt >= e.minCancelDelay {
			ids = append(ids, req.ID)
		}
	}
	return ids, nil
}
