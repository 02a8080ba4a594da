package rewards

import (
	"encoding/binary"
	"fmt"

	"github.com/holiman/uint256"

	"github.com/mintforge/libmintforge-go/fixedpoint"
)

const (
	scaledSize    = 16 // u128 big-endian
	poolDataSize  = 48 // rps(16) + weight(8) + count(8) + deposited(8) + claimed(8)
	stakeDataSize = 18 // weight(2) + debt(16)
)

// putScaled writes a 128-bit scaled value big-endian into dst[0:16].
func putScaled(dst []byte, x *uint256.Int) error {
	if err := fixedpoint.CheckScaled(x); err != nil {
		return err
	}
	b := x.Bytes32()
	copy(dst, b[16:32])
	return nil
}

// getScaled reads a 128-bit scaled value from src[0:16].
func getScaled(src []byte) *uint256.Int {
	return new(uint256.Int).SetBytes(src[:scaledSize])
}

// SerializePool encodes a Pool to its fixed-size binary record.
func SerializePool(p *Pool) ([]byte, error) {
	buf := make([]byte, poolDataSize)
	if err := putScaled(buf[0:16], p.RewardPerShare); err != nil {
		return nil, fmt.Errorf("%w: reward per share: %w", ErrInvalidPoolData, err)
	}
	binary.BigEndian.PutUint64(buf[16:24], p.TotalWeight)
	binary.BigEndian.PutUint64(buf[24:32], p.TotalStakeCount)
	binary.BigEndian.PutUint64(buf[32:40], p.TotalDeposited)
	binary.BigEndian.PutUint64(buf[40:48], p.TotalClaimed)
	return buf, nil
}

// DeserializePool decodes a binary pool record.
func DeserializePool(data []byte) (*Pool, error) {
	if len(data) != poolDataSize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidPoolData, poolDataSize, len(data))
	}
	return &Pool{
		RewardPerShare:  getScaled(data[0:16]),
		TotalWeight:     binary.BigEndian.Uint64(data[16:24]),
		TotalStakeCount: binary.BigEndian.Uint64(data[24:32]),
		TotalDeposited:  binary.BigEndian.Uint64(data[32:40]),
		TotalClaimed:    binary.BigEndian.Uint64(data[40:48]),
	}, nil
}

// SerializeStake encodes a Stake to its fixed-size binary record.
func SerializeStake(s *Stake) ([]byte, error) {
	buf := make([]byte, stakeDataSize)
	binary.BigEndian.PutUint16(buf[0:2], s.Weight)
	if err := putScaled(buf[2:18], s.RewardDebt); err != nil {
		return nil, fmt.Errorf("%w: reward debt: %w", ErrInvalidStakeData, err)
	}
	return buf, nil
}

// DeserializeStake decodes a binary stake record.
func DeserializeStake(data []byte) (*Stake, error) {
	if len(data) != stakeDataSize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidStakeData, stakeDataSize, len(data))
	}
	return &Stake{
		Weight:     binary.BigEndian.Uint16(data[0:2]),
		RewardDebt: getScaled(data[2:18]),
	}, nil
}
