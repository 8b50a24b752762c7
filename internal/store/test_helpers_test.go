package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/stockroom/internal/inventory"
)

// createTestStore creates a new store in a temp directory for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// testItems returns a small catalog ordered by SKU.
func testItems() []inventory.Item {
	return []inventory.Item{
		{SKU: "BOLT", Quantity: 120, UnitPrice: 0.05},
		{SKU: "GEAR", Quantity: 0, UnitPrice: 12},
		{SKU: "WIDGET", Quantity: 10, UnitPrice: 2.5},
	}
}
