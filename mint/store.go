package mint

import (
	"sync"

	"github.com/mintforge/libmintforge-go/rewards"
)

// Store persists engine state: items, reward pools, stakes and pending
// requests. Implementations must return decoded copies so callers can mutate
// freely and persist only on success.
type Store interface {
	// PutItem stores or replaces an item record.
	PutItem(it *Item) error

	// GetItem retrieves an item by ID.
	GetItem(id ItemID) (*Item, error)

	// PutPool stores or replaces the reward pool for an item.
	PutPool(item ItemID, p *rewards.Pool) error

	// GetPool retrieves an item's reward pool.
	GetPool(item ItemID) (*rewards.Pool, error)

	// PutStake stores or replaces a stake record.
	PutStake(rec *StakeRecord) error

	// GetStake retrieves a stake by ID.
	GetStake(id StakeID) (*StakeRecord, error)

	// DeleteStake removes a stake record.
	DeleteStake(id StakeID) error

	// PutRequest stores a pending request.
	PutRequest(req *PendingRequest) error

	// GetRequest retrieves a pending request by ID.
	GetRequest(id RequestID) (*PendingRequest, error)

	// DeleteRequest removes a pending request.
	DeleteRequest(id RequestID) error

	// ListRequests returns all pending requests.
	ListRequests() ([]*PendingRequest, error)
}

// MemStore is an in-memory Store. Records are held serialized so reads hand
// out independent copies, matching the isolation the durable store provides.
type MemStore struct {
	mu       sync.RWMutex
	items    map[ItemID][]byte
	pools    map[ItemID][]byte
	stakes   map[StakeID][]byte
	requests map[RequestID][]byte
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		items:    make(map[ItemID][]byte),
		pools:    make(map[ItemID][]byte),
		stakes:   make(map[StakeID][]byte),
		requests: make(map[RequestID][]byte),
	}
}

// PutItem stores or replaces an item record.
func (s *MemStore) PutItem(it *Item) error {
	data, err := SerializeItem(it)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[it.ID] = data
	return nil
}

// GetItem retrieves an item by ID.
func (s *MemStore) GetItem(id ItemID) (*Item, error) {
	s.mu.RLock()
	data, ok := s.items[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrItemNotFound
	}
	return DeserializeItem(data)
}

// PutPool stores or replaces the reward pool for an item.
func (s *MemStore) PutPool(item ItemID, p *rewards.Pool) error {
	data, err := rewards.SerializePool(p)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pools[item] = data
	return nil
}

// GetPool retrieves an item's reward pool.
func (s *MemStore) GetPool(item ItemID) (*rewards.Pool, error) {
	s.mu.RLock()
	data, ok := s.pools[item]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrPoolNotFound
	}
	return rewards.DeserializePool(data)
}

// PutStake stores or replaces a stake record.
func (s *MemStore) PutStake(rec *StakeRecord) error {
	data, err := SerializeStakeRecord(rec)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stakes[rec.ID] = data
	return nil
}

// GetStake retrieves a stake by ID.
func (s *MemStore) GetStake(id StakeID) (*StakeRecord, error) {
	s.mu.RLock()
	data, ok := s.stakes[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrStakeNotFound
	}
	return DeserializeStakeRecord(data)
}

// DeleteStake removes a stake record.
func (s *MemStore) DeleteStake(id StakeID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.stakes[id]; !ok {
		return ErrStakeNotFound
	}
	delete(s.stakes, id)
	return nil
}

// PutRequest stores a pending request.
func (s *MemStore) PutRequest(req *PendingRequest) error {
	data, err := SerializeRequest(req)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests[req.ID] = data
	return nil
}

// GetRequest retrieves a pending request by ID.
func (s *MemStore) GetRequest(id RequestID) (*PendingRequest, error) {
	s.mu.RLock()
	data, ok := s.requests[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrRequestNotFound
	}
	return DeserializeRequest(data)
}

// DeleteRequest removes a pending request.
func (s *MemStore) DeleteRequest(id RequestID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.requests[id]; !ok {
		return ErrRequestNotFound
	}
	delete(s.requests, id)
	return nil
}

// ListRequests returns all pending requests.
func (s *MemStore) ListRequests() ([]*PendingRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reqs := make([]*PendingRequest, 0, len(s.requests))
	for _, data := range s.requests {
		req, err := DeserializeRequest(data)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

var _ Store = (*MemStore)(nil)
