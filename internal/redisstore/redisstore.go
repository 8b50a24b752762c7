// Package redisstore keeps a catalog in a single Redis hash: one field per
// SKU, each value a small canonical JSON object.
package redisstore

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/roach88/stockroom/internal/canonical"
	"github.com/roach88/stockroom/internal/inventory"
)

// DefaultKey is the hash key used when none is configured.
const DefaultKey = "stockroom:catalog"

var _ inventory.Backend = (*Store)(nil)

// Store is a catalog backend on one Redis hash.
type Store struct {
	client redis.UniversalClient
	key    string
}

// New returns a Store on key, or DefaultKey when key is empty.
func New(client redis.UniversalClient, key string) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{client: client, key: key}
}

func (s *Store) String() string {
	return "redis:" + s.key
}

type record struct {
	Quantity  json.Number `json:"quantity"`
	UnitPrice string      `json:"unit_price"`
}

// Load reads every field of the hash. A missing key is an empty catalog.
func (s *Store) Load(ctx context.Context) ([]inventory.Item, error) {
	fields, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("hgetall %s: %w", s.key, err)
	}

	items := make([]inventory.Item, 0, len(fields))
	for sku, raw := range fields {
		var rec record
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return nil, fmt.Errorf("item %q: malformed value: %w", sku, err)
		}
		qty, err := inventory.ParseQuantity(rec.Quantity.String())
		if err != nil {
			return nil, fmt.Errorf("item %q: %w", sku, err)
		}
		price, err := inventory.ParsePrice(rec.UnitPrice)
		if err != nil {
			return nil, fmt.Errorf("item %q: %w", sku, err)
		}
		items = append(items, inventory.Item{SKU: sku, Quantity: qty, UnitPrice: price})
	}
	slices.SortFunc(items, func(a, b inventory.Item) int { return strings.Compare(a.SKU, b.SKU) })
	return items, nil
}

// Save replaces the hash inside MULTI/EXEC so readers never see a partial
// catalog.
func (s *Store) Save(ctx context.Context, items []inventory.Item) error {
	values := make([]any, 0, 2*len(items))
	for _, it := range items {
		data, err := canonical.Marshal(map[string]any{
			"quantity":   it.Quantity,
			"unit_price": inventory.FormatPrice(it.UnitPrice),
		})
		if err != nil {
			return fmt.Errorf("encode %q: %w", it.SKU, err)
		}
		values = append(values, it.SKU, string(data))
	}

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.key)
		if len(values) > 0 {
			pipe.HSet(ctx, s.key, values...)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("replace %s: %w", s.key, err)
	}
	return nil
}
