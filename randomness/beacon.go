package randomness

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/vechain/go-ecvrf"
	"golang.org/x/crypto/blake2b"
)

// Beacon is a round-based VRF randomness source. Each round's input chains on
// the previous output, and each output carries a proof verifiable against the
// beacon's public key, so a resolved round cannot be reshuffled after the
// fact. Advance is driven externally (by whatever schedules the beacon).
type Beacon struct {
	mu        sync.Mutex
	key       *secp256k1.PrivateKey
	outputs   []Output // outputs[i] is round i+1
	proofs    [][]byte
	alphas    [][]byte
	lastChain [32]byte
	handles   map[[32]byte]uint64
	issued    uint64
}

// NewBeacon creates a beacon with a fresh secp256k1 keypair. genesis seeds the
// first round's input chain.
func NewBeacon(genesis []byte) (*Beacon, error) {
	key, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, fmt.Errorf("randomness: generate beacon key: %w", err)
	}
	return NewBeaconWithKey(key, genesis), nil
}

// NewBeaconWithKey creates a beacon from an existing key, for deterministic
// setups and key rotation.
func NewBeaconWithKey(key *secp256k1.PrivateKey, genesis []byte) *Beacon {
	b := &Beacon{
		key:     key,
		handles: make(map[[32]byte]uint64),
	}
	b.lastChain = blake2b.Sum256(genesis)
	return b
}

// PublicKey returns the beacon's compressed public key for proof verification.
func (b *Beacon) PublicKey() []byte {
	return b.key.PubKey().SerializeCompressed()
}

// NextRound returns the first undetermined round.
func (b *Beacon) NextRound() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return uint64(len(b.outputs)) + 1
}

// Request issues a handle bound to the next undetermined round.
func (b *Beacon) Request() (Handle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	round := uint64(len(b.outputs)) + 1
	b.issued++

	var seed [48]byte
	copy(seed[:32], b.lastChain[:])
	binary.BigEndian.PutUint64(seed[32:40], round)
	binary.BigEndian.PutUint64(seed[40:48], b.issued)
	id := blake2b.Sum256(seed[:])

	b.handles[id] = round
	return Handle{ID: id, Round: round}, nil
}

// Advance determines the next round: alpha chains on the previous output, and
// the round's output is the VRF beta for alpha under the beacon key.
func (b *Beacon) Advance() (Output, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	round := uint64(len(b.outputs)) + 1
	alpha := make([]byte, 40)
	copy(alpha[:32], b.lastChain[:])
	binary.BigEndian.PutUint64(alpha[32:40], round)

	beta, proof, err := ecvrf.Secp256k1Sha256Tai.Prove(b.key.ToECDSA(), alpha)
	if err != nil {
		return Output{}, fmt.Errorf("randomness: prove round %d: %w", round, err)
	}

	var out Output
	if len(beta) == OutputSize {
		copy(out[:], beta)
	} else {
		out = blake2b.Sum256(beta)
	}

	b.outputs = append(b.outputs, out)
	b.proofs = append(b.proofs, proof)
	b.alphas = append(b.alphas, alpha)
	b.lastChain = out
	return out, nil
}

// Resolve returns the output for the handle's round.
func (b *Beacon) Resolve(h Handle) (Output, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	round, ok := b.handles[h.ID]
	if !ok {
		return Output{}, ErrUnknownHandle
	}
	if round != h.Round {
		return Output{}, fmt.Errorf("%w: issued for round %d, presented for round %d", ErrStaleHandle, round, h.Round)
	}
	if round > uint64(len(b.outputs)) {
		return Output{}, fmt.Errorf("%w: round %d", ErrNotReady, round)
	}
	return b.outputs[round-1], nil
}

// Proof returns the round's VRF input and proof for external verification.
func (b *Beacon) Proof(round uint64) (alpha, proof []byte, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if round == 0 || round > uint64(len(b.outputs)) {
		return nil, nil, fmt.Errorf("%w: round %d", ErrNoSuchRound, round)
	}
	return b.alphas[round-1], b.proofs[round-1], nil
}

// VerifyOutput checks a round's output against a beacon public key. The
// output matches when the proof verifies and its beta reduces to want.
func VerifyOutput(compressedPub, alpha, proof []byte, want Output) error {
	pub, err := secp256k1.ParsePubKey(compressedPub)
	if err != nil {
		return fmt.Errorf("%w: parse public key: %w", ErrBadProof, err)
	}
	beta, err := ecvrf.Secp256k1Sha256Tai.Verify(pub.ToECDSA(), alpha, proof)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBadProof, err)
	}
	var got Output
	if len(beta) == OutputSize {
		copy(got[:], beta)
	} else {
		got = blake2b.Sum256(beta)
	}
	if got != want {
		return fmt.Errorf("%w: output mismatch", ErrBadProof)
	}
	return nil
}

var _ Adapter = (*Beacon)(nil)
