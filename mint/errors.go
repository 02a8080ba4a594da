package mint

import "errors"

var (
	// ErrItemNotFound indicates the item does not exist.
	ErrItemNotFound = errors.New("mint: item not found")

	// ErrItemExists indicates an item registration over an existing ID.
	ErrItemExists = errors.New("mint: item already exists")

	// ErrItemLocked indicates a metadata update after the first reveal.
	ErrItemLocked = errors.New("mint: item locked")

	// ErrPoolNotFound indicates no reward pool exists for the item yet.
	ErrPoolNotFound = errors.New("mint: reward pool not found")

	// ErrRequestNotFound indicates the pending request does not exist or was
	// already resolved.
	ErrRequestNotFound = errors.New("mint: pending request not found")

	// ErrDuplicateRequest indicates an in-flight commit already exists for
	// the same payer, item and commit point.
	ErrDuplicateRequest = errors.New("mint: duplicate pending request")

	// ErrHandleMismatch indicates the handle presented at reveal is not the
	// one the commit was made with.
	ErrHandleMismatch = errors.New("mint: randomness handle mismatch")

	// ErrStaleCommitPoint indicates a commit whose handle is not bound to the
	// next undetermined randomness round.
	ErrStaleCommitPoint = errors.New("mint: stale commit point")

	// ErrCancelTooEarly indicates a cancel attempt inside the grace period.
	ErrCancelTooEarly = errors.New("mint: cancel too early")

	// ErrStakeNotFound indicates the stake does not exist or was burned.
	ErrStakeNotFound = errors.New("mint: stake not found")

	// ErrUnauthorized indicates the caller may not perform the operation.
	ErrUnauthorized = errors.New("mint: unauthorized")

	// ErrEscrowMismatch indicates escrow holdings inconsistent with the
	// request record.
	ErrEscrowMismatch = errors.New("mint: escrow mismatch")

	// ErrAssetMintFailed indicates the external asset minter rejected the
	// reveal; the whole transaction is rolled back.
	ErrAssetMintFailed = errors.New("mint: asset mint failed")

	// ErrBadParams indicates missing or invalid engine or operation inputs.
	ErrBadParams = errors.New("mint: bad parameters")

	// ErrInvalidItemData indicates a malformed serialized item record.
	ErrInvalidItemData = errors.New("mint: invalid item data")

	// ErrInvalidRequestData indicates a malformed serialized request record.
	ErrInvalidRequestData = errors.New("mint: invalid request data")

	// ErrInvalidStakeRecordData indicates a malformed serialized stake record.
	ErrInvalidStakeRecordData = errors.New("mint: invalid stake record data")
)
