package admission

import (
	"encoding/binary"
	"fmt"
)

const countersDataSize = 25 // minted(8) + pending(8) + bounded(1) + max(8)

// SerializeCounters encodes Counters to a fixed-size binary record.
func SerializeCounters(c *Counters) []byte {
	buf := make([]byte, countersDataSize)
	binary.BigEndian.PutUint64(buf[0:8], c.MintedCount)
	binary.BigEndian.PutUint64(buf[8:16], c.PendingCount)
	if c.MaxSupply != nil {
		buf[16] = 1
		binary.BigEndian.PutUint64(buf[17:25], *c.MaxSupply)
	}
	return buf
}

// DeserializeCounters decodes a binary counters record.
func DeserializeCounters(data []byte) (*Counters, error) {
	if len(data) != countersDataSize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidCountersData, countersDataSize, len(data))
	}
	c := &Counters{
		MintedCount:  binary.BigEndian.Uint64(data[0:8]),
		PendingCount: binary.BigEndian.Uint64(data[8:16]),
	}
	switch data[16] {
	case 0:
	case 1:
		max := binary.BigEndian.Uint64(data[17:25])
		c.MaxSupply = &max
	default:
		return nil, fmt.Errorf("%w: bad bounded flag 0x%02x", ErrInvalidCountersData, data[16])
	}
	return c, nil
}

// CountersDataSize returns the serialized record size, for callers embedding
// counters inside larger records.
func CountersDataSize() int { return countersDataSize }
