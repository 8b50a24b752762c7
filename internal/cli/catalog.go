package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/redis/go-redis/v9"

	"github.com/roach88/stockroom/internal/config"
	"github.com/roach88/stockroom/internal/inventory"
	"github.com/roach88/stockroom/internal/redisstore"
	"github.com/roach88/stockroom/internal/store"
)

// ItemView is the JSON shape of an item in command output.
// Prices are decimal strings so no precision is lost in transit.
type ItemView struct {
	SKU       string `json:"sku"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	Value     string `json:"value"`
}

func newItemView(it inventory.Item) ItemView {
	return ItemView{
		SKU:       it.SKU,
		Quantity:  it.Quantity,
		UnitPrice: inventory.FormatPrice(it.UnitPrice),
		Value:     inventory.FormatPrice(it.Value()),
	}
}

func newItemViews(items []inventory.Item) []ItemView {
	views := make([]ItemView, len(items))
	for i, it := range items {
		views[i] = newItemView(it)
	}
	return views
}

// openBackend returns the backend selected by cfg and a function that
// releases its resources.
func openBackend(cfg config.Config) (inventory.Backend, func() error, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		st, err := store.Open(cfg.Database)
		if err != nil {
			return nil, nil, WrapExitError(ExitPersistence, "failed to open database", err)
		}
		return st, st.Close, nil
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		return redisstore.New(client, cfg.Redis.Key), client.Close, nil
	case config.BackendFile:
		return inventory.NewFileBackend(cfg.File), func() error { return nil }, nil
	}
	return nil, nil, NewExitError(ExitCommandError, fmt.Sprintf("unknown backend %q", cfg.Backend))
}

// catalog is an open System and the release func of its backend.
type catalog struct {
	sys     *inventory.System
	release func() error
	opts    *RootOptions
}

// openCatalog loads the configured catalog. With autosave set, every
// mutation is written back to the backend before it is acknowledged, and a
// catalog file that does not exist yet starts out empty.
func openCatalog(ctx context.Context, opts *RootOptions, autosave bool) (*catalog, error) {
	b, release, err := openBackend(opts.Config)
	if err != nil {
		return nil, err
	}

	sysOpts := []inventory.Option{inventory.WithLogger(opts.logger())}
	if autosave {
		sysOpts = append(sysOpts, inventory.WithAutosave(b))
	}
	sys := inventory.New(sysOpts...)

	if err := sys.LoadFrom(ctx, b); err != nil {
		if !autosave || !errors.Is(err, fs.ErrNotExist) {
			_ = release()
			return nil, err
		}
		opts.logger().Info("catalog file not found, starting empty", "file", opts.Config.File)
	}

	return &catalog{sys: sys, release: release, opts: opts}, nil
}

func (c *catalog) Close() {
	if err := c.release(); err != nil {
		c.opts.logger().Error("error closing backend", "error", err)
	}
}
