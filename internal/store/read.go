package store

import (
	"context"
	"fmt"

	"github.com/roach88/stockroom/internal/inventory"
)

// Snapshot is the audit record written by each Save.
type Snapshot struct {
	ID            string `json:"id"`
	Seq           int64  `json:"seq"`
	ItemCount     int    `json:"item_count"`
	TotalQuantity int64  `json:"total_quantity"`
}

// Load returns every stored item ordered by SKU.
// Returns an empty slice (not nil) when the catalog is empty.
func (s *Store) Load(ctx context.Context) ([]inventory.Item, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT sku, quantity, unit_price
		FROM items
		ORDER BY sku COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	items := []inventory.Item{}
	for rows.Next() {
		var it inventory.Item
		if err := rows.Scan(&it.SKU, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}

// Snapshots returns the save history, oldest first.
func (s *Store) Snapshots(ctx context.Context) ([]Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, seq, item_count, total_quantity
		FROM snapshots
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	snaps := []Snapshot{}
	for rows.Next() {
		var snap Snapshot
		if err := rows.Scan(&snap.ID, &snap.Seq, &snap.ItemCount, &snap.TotalQuantity); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		snaps = append(snaps, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshots: %w", err)
	}
	return snaps, nil
}
