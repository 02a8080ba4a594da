package mint

import (
	"fmt"
	"sync"

	"github.com/mintforge/libmintforge-go/payment"
)

// AssetMinter is the external minting boundary. It is invoked once per
// successful reveal, after accounting has been applied; a failure aborts the
// whole reveal, so accounting never records an asset that was not created.
type AssetMinter interface {
	// CreateAsset mints the external asset and returns its identifier.
	CreateAsset(name, uri, collection string, owner payment.AccountID) (string, error)
}

// MintedAsset records one MockMinter call.
type MintedAsset struct {
	AssetID    string
	Name       string
	URI        string
	Collection string
	Owner      payment.AccountID
}

// MockMinter is an in-memory AssetMinter for tests.
type MockMinter struct {
	mu      sync.Mutex
	next    int
	failErr error

	// Created lists every successfully minted asset in order.
	Created []MintedAsset
}

// NewMockMinter returns an empty mock.
func NewMockMinter() *MockMinter {
	return &MockMinter{}
}

// FailWith makes subsequent CreateAsset calls fail with err; nil restores
// normal operation.
func (m *MockMinter) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failErr = err
}

// CreateAsset mints a fake asset with a sequential identifier.
func (m *MockMinter) CreateAsset(name, uri, collection string, owner payment.AccountID) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failErr != nil {
		return "", m.failErr
	}
	m.next++
	asset := MintedAsset{
		AssetID:    fmt.Sprintf("asset-%d", m.next),
		Name:       name,
		URI:        uri,
		Collection: collection,
		Owner:      owner,
	}
	m.Created = append(m.Created, asset)
	return asset.AssetID, nil
}

var _ AssetMinter = (*MockMinter)(nil)
