package mint

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/mintforge/libmintforge-go/admission"
	"github.com/mintforge/libmintforge-go/payment"
	"github.com/mintforge/libmintforge-go/rarity"
	"github.com/mintforge/libmintforge-go/rewards"
)

// Item flag bits.
const (
	itemFlagActive = 1 << iota
	itemFlagPaused
	itemFlagLocked
)

// Request flag bits.
const (
	requestFlagHadStakes = 1 << iota
)

// putString writes a uint16 length-prefixed string.
func putString(buf *bytes.Buffer, s string) error {
	if len(s) > math.MaxUint16 {
		return fmt.Errorf("string too long: %d bytes", len(s))
	}
	var l [2]byte
	binary.BigEndian.PutUint16(l[:], uint16(len(s)))
	buf.Write(l[:])
	buf.WriteString(s)
	return nil
}

// getString reads a uint16 length-prefixed string.
func getString(r *bytes.Reader) (string, error) {
	var l [2]byte
	if _, err := io.ReadFull(r, l[:]); err != nil {
		return "", err
	}
	b := make([]byte, binary.BigEndian.Uint16(l[:]))
	if _, err := io.ReadFull(r, b); err != nil {
		return "", err
	}
	return string(b), nil
}

// SerializeItem encodes an Item to binary format.
func SerializeItem(it *Item) ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.Write(it.ID[:])

	var flags byte
	if it.Active {
		flags |= itemFlagActive
	}
	if it.Paused {
		flags |= itemFlagPaused
	}
	if it.Locked {
		flags |= itemFlagLocked
	}
	buf.WriteByte(flags)
	buf.Write(admission.SerializeCounters(&it.Counters))

	for _, s := range []string{string(it.Creator), it.Currency, it.Name, it.URI, it.Collection} {
		if err := putString(buf, s); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidItemData, err)
		}
	}
	return buf.Bytes(), nil
}

// DeserializeItem decodes binary data into an Item.
func DeserializeItem(data []byte) (*Item, error) {
	r := bytes.NewReader(data)
	it := &Item{}

	if _, err := io.ReadFull(r, it.ID[:]); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidItemData, err)
	}
	flags, err := r.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidItemData, err)
	}
	it.Active = flags&itemFlagActive != 0
	it.Paused = flags&itemFlagPaused != 0
	it.Locked = flags&itemFlagLocked != 0

	counterBuf := make([]byte, admission.CountersDataSize())
	if _, err := io.ReadFull(r, counterBuf); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidItemData, err)
	}
	counters, err := admission.DeserializeCounters(counterBuf)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidItemData, err)
	}
	it.Counters = *counters

	fields := make([]string, 5)
	for i := range fields {
		if fields[i], err = getString(r); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidItemData, err)
		}
	}
	it.Creator = payment.AccountID(fields[0])
	it.Currency = fields[1]
	it.Name = fields[2]
	it.URI = fields[3]
	it.Collection = fields[4]

	if r.Len() != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrInvalidItemData, r.Len())
	}
	return it, nil
}

// SerializeRequest encodes a PendingRequest to binary format.
func SerializeRequest(req *PendingRequest) ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.Write(req.ID[:])
	buf.Write(req.Item[:])

	var fixed [17]byte
	binary.BigEndian.PutUint64(fixed[0:8], req.AmountPaid)
	binary.BigEndian.PutUint64(fixed[8:16], uint64(req.CreatedAt))
	if req.HadExistingStakes {
		fixed[16] |= requestFlagHadStakes
	}
	buf.Write(fixed[:])

	buf.Write(req.Handle.ID[:])
	var rounds [16]byte
	binary.BigEndian.PutUint64(rounds[0:8], req.Handle.Round)
	binary.BigEndian.PutUint64(rounds[8:16], req.CommitPoint)
	buf.Write(rounds[:])

	for _, s := range []string{string(req.Payer), string(req.Beneficiary), string(req.Settlement)} {
		if err := putString(buf, s); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidRequestData, err)
		}
	}
	return buf.Bytes(), nil
}

// DeserializeRequest decodes binary data into a PendingRequest.
func DeserializeRequest(data []byte) (*PendingRequest, error) {
	r := bytes.NewReader(data)
	req := &PendingRequest{}

	if _, err := io.ReadFull(r, req.ID[:]); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequestData, err)
	}
	if _, err := io.ReadFull(r, req.Item[:]); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequestData, err)
	}

	var fixed [17]byte
	if _, err := io.ReadFull(r, fixed[:]); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequestData, err)
	}
	req.AmountPaid = binary.BigEndian.Uint64(fixed[0:8])
	req.CreatedAt = int64(binary.BigEndian.Uint64(fixed[8:16]))
	req.HadExistingStakes = fixed[16]&requestFlagHadStakes != 0

	if _, err := io.ReadFull(r, req.Handle.ID[:]); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequestData, err)
	}
	var rounds [16]byte
	if _, err := io.ReadFull(r, rounds[:]); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequestData, err)
	}
	req.Handle.Round = binary.BigEndian.Uint64(rounds[0:8])
	req.CommitPoint = binary.BigEndian.Uint64(rounds[8:16])

	fields := make([]string, 3)
	var err error
	for i := range fields {
		if fields[i], err = getString(r); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidRequestData, err)
		}
	}
	req.Payer = payment.AccountID(fields[0])
	req.Beneficiary = payment.AccountID(fields[1])
	req.Settlement = payment.AccountID(fields[2])

	if r.Len() != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrInvalidRequestData, r.Len())
	}
	return req, nil
}

// SerializeStakeRecord encodes a StakeRecord to binary format.
func SerializeStakeRecord(rec *StakeRecord) ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.Write(rec.ID[:])
	buf.Write(rec.Item[:])

	var edition [8]byte
	binary.BigEndian.PutUint64(edition[:], rec.Edition)
	buf.Write(edition[:])
	buf.WriteByte(byte(rec.Tier))

	stakeBuf, err := rewards.SerializeStake(&rec.Reward)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidStakeRecordData, err)
	}
	buf.Write(stakeBuf)

	if err := putString(buf, string(rec.Owner)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidStakeRecordData, err)
	}
	return buf.Bytes(), nil
}

// DeserializeStakeRecord decodes binary data into a StakeRecord.
func DeserializeStakeRecord(data []byte) (*StakeRecord, error) {
	r := bytes.NewReader(data)
	rec := &StakeRecord{}

	if _, err := io.ReadFull(r, rec.ID[:]); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidStakeRecordData, err)
	}
	if _, err := io.ReadFull(r, rec.Item[:]); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidStakeRecordData, err)
	}

	var edition [8]byte
	if _, err := io.ReadFull(r, edition[:]); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidStakeRecordData, err)
	}
	rec.Edition = binary.BigEndian.Uint64(edition[:])

	tier, err := r.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidStakeRecordData, err)
	}
	rec.Tier = rarity.Tier(tier)

	stakeBuf := make([]byte, 18)
	if _, err := io.ReadFull(r, stakeBuf); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidStakeRecordData, err)
	}
	stake, err := rewards.DeserializeStake(stakeBuf)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidStakeRecordData, err)
	}
	rec.Reward = *stake

	owner, err := getString(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidStakeRecordData, err)
	}
	rec.Owner = payment.AccountID(owner)

	if r.Len() != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrInvalidStakeRecordData, r.Len())
	}
	return rec, nil
}
