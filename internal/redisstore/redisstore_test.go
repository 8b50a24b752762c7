package redisstore

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/stockroom/internal/inventory"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return New(client, "test:catalog"), mr
}

func TestNewDefaultKey(t *testing.T) {
	assert.Equal(t, "redis:"+DefaultKey, New(nil, "").String())
	assert.Equal(t, "redis:inv:x", New(nil, "inv:x").String())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	items := []inventory.Item{
		{SKU: "BOLT", Quantity: 120, UnitPrice: 0.05},
		{SKU: "WIDGET", Quantity: 10, UnitPrice: 2.5},
	}
	require.NoError(t, s.Save(ctx, items))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, items, got)

	assert.Equal(t, `{"quantity":10,"unit_price":"2.5"}`, mr.HGet("test:catalog", "WIDGET"))
}

func TestSaveReplacesHash(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, []inventory.Item{{SKU: "OLD", Quantity: 1}}))
	require.NoError(t, s.Save(ctx, []inventory.Item{{SKU: "NEW", Quantity: 2}}))

	keys, err := mr.HKeys("test:catalog")
	require.NoError(t, err)
	assert.Equal(t, []string{"NEW"}, keys)

	require.NoError(t, s.Save(ctx, nil))
	assert.False(t, mr.Exists("test:catalog"))
}

func TestLoadMissingKeyIsEmpty(t *testing.T) {
	s, _ := newTestStore(t)
	got, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoadMalformedValue(t *testing.T) {
	s, mr := newTestStore(t)
	mr.HSet("test:catalog", "A", "not json")
	mr.HSet("test:catalog", "B", `{"quantity":-1,"unit_price":"0"}`)

	_, err := s.Load(context.Background())
	require.Error(t, err)
}

func TestLoadServerDown(t *testing.T) {
	s, mr := newTestStore(t)
	mr.Close()

	_, err := s.Load(context.Background())
	require.Error(t, err)
}

func TestAsInventoryBackend(t *testing.T) {
	s, mr := newTestStore(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	sys := inventory.New(inventory.WithLogger(logger), inventory.WithAutosave(s))
	_, err := sys.AddItem("WIDGET", 10, 2.5)
	require.NoError(t, err)
	_, err = sys.AdjustQuantity("WIDGET", -3)
	require.NoError(t, err)

	reopened, err := inventory.Open(context.Background(), s, inventory.WithLogger(logger))
	require.NoError(t, err)
	got, err := reopened.GetItem("WIDGET")
	require.NoError(t, err)
	assert.Equal(t, 7, got.Quantity)

	// A dead server turns autosave into a rolled-back PERSISTENCE error.
	mr.Close()
	_, err = sys.AdjustQuantity("WIDGET", -1)
	assert.True(t, inventory.IsPersistence(err))
	got, err = sys.GetItem("WIDGET")
	require.NoError(t, err)
	assert.Equal(t, 7, got.Quantity)
}
