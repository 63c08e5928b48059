// Package app assembles the storefront state container. There is no ambient
// global state: the container is constructed once and passed by handle to
// whatever needs it.
package app

import (
	"context"

	"github.com/ellurunanda/Shopping-Cart/internal/cart"
	"github.com/ellurunanda/Shopping-Cart/internal/catalog"
	"github.com/ellurunanda/Shopping-Cart/internal/gateway"
	"github.com/ellurunanda/Shopping-Cart/internal/persist"
	"github.com/ellurunanda/Shopping-Cart/internal/session"
)

// Store wires the cart ledger, auth session, and catalog cache to one gateway
// and one persistence bridge.
type Store struct {
	Cart    *cart.Ledger
	Session *session.Store
	Catalog *catalog.Cache
}

// New builds the container and rehydrates the persisted slices. A missing or
// corrupt persisted state is never fatal; the stores start empty instead.
func New(ctx context.Context, gw *gateway.Client, storage persist.Storage) *Store {
	bridge := persist.NewBridge(storage)
	snap := bridge.Load(ctx)

	ledger := cart.New(bridge)
	ledger.Restore(snap.Cart.Items)

	sess := session.New(gw, bridge)
	sess.Restore(snap.Session)

	return &Store{
		Cart:    ledger,
		Session: sess,
		Catalog: catalog.New(gw),
	}
}
