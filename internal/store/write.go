package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/roach88/stockroom/internal/inventory"
)

var _ inventory.Backend = (*Store)(nil)

// Save replaces the stored catalog with items and records a snapshot row.
// Everything happens in one transaction; on error nothing changes.
func (s *Store) Save(ctx context.Context, items []inventory.Item) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save catalog: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	if _, err := tx.ExecContext(ctx, `DELETE FROM items`); err != nil {
		return fmt.Errorf("save catalog: clear items: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO items (sku, quantity, unit_price)
		VALUES (?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("save catalog: prepare: %w", err)
	}
	defer stmt.Close()

	var total int64
	for _, it := range items {
		if _, err := stmt.ExecContext(ctx, it.SKU, it.Quantity, it.UnitPrice); err != nil {
			return fmt.Errorf("save catalog: insert %q: %w", it.SKU, err)
		}
		total += int64(it.Quantity)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("save catalog: snapshot id: %w", err)
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO snapshots (id, seq, item_count, total_quantity)
		SELECT ?, COALESCE(MAX(seq), 0) + 1, ?, ? FROM snapshots
	`, id.String(), len(items), total)
	if err != nil {
		return fmt.Errorf("save catalog: record snapshot: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save catalog: commit: %w", err)
	}
	return nil
}
