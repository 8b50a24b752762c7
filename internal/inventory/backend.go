package inventory

import (
	"context"
	"fmt"
)

// Backend is durable storage for a catalog. Load returns every stored item;
// Save replaces the stored catalog with items. Save must be atomic: after a
// failed Save the previously stored catalog is still readable.
type Backend interface {
	Load(ctx context.Context) ([]Item, error)
	Save(ctx context.Context, items []Item) error
}

func describe(b Backend) string {
	if s, ok := b.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", b)
}
