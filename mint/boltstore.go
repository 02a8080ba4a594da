package mint

import (
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"

	"github.com/mintforge/libmintforge-go/rewards"
)

var (
	bucketItems    = []byte("items")
	bucketPools    = []byte("pools")
	bucketStakes   = []byte("stakes")
	bucketRequests = []byte("requests")
)

// BoltStore is a bbolt-backed Store. Records are keyed by their 32-byte IDs;
// pools share the item's key.
type BoltStore struct {
	db *bbolt.DB
}

// OpenBoltStore opens or creates the bbolt database at dbPath.
// The parent directory is created if it does not exist.
func OpenBoltStore(dbPath string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("mint: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("mint: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketItems, bucketPools, bucketStakes, bucketRequests} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("boltstore: create bucket %q: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("mint: create buckets: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Close closes the underlying database.
func (s *BoltStore) Close() error { return s.db.Close() }

func (s *BoltStore) put(bucket, key, data []byte) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucket).Put(key, data)
	})
}

func (s *BoltStore) get(bucket, key []byte) ([]byte, error) {
	var data []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		if v := tx.Bucket(bucket).Get(key); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	})
	return data, err
}

func (s *BoltStore) delete(bucket, key []byte, missing error) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucket)
		if b.Get(key) == nil {
			return missing
		}
		return b.Delete(key)
	})
}

// PutItem stores or replaces an item record.
func (s *BoltStore) PutItem(it *Item) error {
	data, err := SerializeItem(it)
	if err != nil {
		return err
	}
	return s.put(bucketItems, it.ID[:], data)
}

// GetItem retrieves an item by ID.
func (s *BoltStore) GetItem(id ItemID) (*Item, error) {
	data, err := s.get(bucketItems, id[:])
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, ErrItemNotFound
	}
	return DeserializeItem(data)
}

// PutPool stores or replaces the reward pool for an item.
func (s *BoltStore) PutPool(item ItemID, p *rewards.Pool) error {
	data, err := rewards.SerializePool(p)
	if err != nil {
		return err
	}
	return s.put(bucketPools, item[:], data)
}

// GetPool retrieves an item's reward pool.
func (s *BoltStore) GetPool(item ItemID) (*rewards.Pool, error) {
	data, err := s.get(bucketPools, item[:])
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, ErrPoolNotFound
	}
	return rewards.DeserializePool(data)
}

// PutStake stores or replaces a stake record.
func (s *BoltStore) PutStake(rec *StakeRecord) error {
	data, err := SerializeStakeRecord(rec)
	if err != nil {
		return err
	}
	return s.put(bucketStakes, rec.ID[:], data)
}

// GetStake retrieves a stake by ID.
func (s *BoltStore) GetStake(id StakeID) (*StakeRecord, error) {
	data, err := s.get(bucketStakes, id[:])
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, ErrStakeNotFound
	}
	return DeserializeStakeRecord(data)
}

// DeleteStake removes a stake record.
func (s *BoltStore) DeleteStake(id StakeID) error {
	return s.delete(bucketStakes, id[:], ErrStakeNotFound)
}

// PutRequest stores a pending request.
func (s *BoltStore) PutRequest(req *PendingRequest) error {
	data, err := SerializeRequest(req)
	if err != nil {
		return err
	}
	return s.put(bucketRequests, req.ID[:], data)
}

// GetRequest retrieves a pending request by ID.
func (s *BoltStore) GetRequest(id RequestID) (*PendingRequest, error) {
	data, err := s.get(bucketRequests, id[:])
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, ErrRequestNotFound
	}
	return DeserializeRequest(data)
}

// DeleteRequest removes a pending request.
func (s *BoltStore) DeleteRequest(id RequestID) error {
	return s.delete(bucketRequests, id[:], ErrRequestNotFound)
}

// ListRequests returns all pending requests.
func (s *BoltStore) ListRequests() ([]*PendingRequest, error) {
	var reqs []*PendingRequest
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketRequests).ForEach(func(_, v []byte) error {
			req, err := DeserializeRequest(v)
			if err != nil {
				return err
			}
			reqs = append(reqs, req)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return reqs, nil
}

var _ Store = (*BoltStore)(nil)
