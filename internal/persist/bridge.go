package persist

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ellurunanda/Shopping-Cart/internal/domain"
)

const (
	// stateKey holds the combined {session, cart} snapshot.
	stateKey = "shopcart_state"
	// cartKey is the legacy path holding just the bare line list. Both keys
	// are rewritten together so they never disagree.
	cartKey = "shopcart_cart"

	writeTimeout = time.Second
)

// CartState is the persisted cart slice.
type CartState struct {
	Items      []domain.CartLine `json:"items"`
	TotalItems int               `json:"totalItems"`
	TotalPrice decimal.Decimal   `json:"totalPrice"`
}

// Snapshot is everything the bridge mirrors.
type Snapshot struct {
	Session domain.Session `json:"session"`
	Cart    CartState      `json:"cart"`
}

// Bridge serializes store slices to storage on every change and rehydrates
// them at startup. Persistence is best-effort: write failures are logged and
// swallowed, a corrupt blob is ignored in favor of defaults. It is never a
// correctness dependency for the in-memory session.
type Bridge struct {
	mu      sync.Mutex
	storage Storage

	// Last-known copy of each slice, so a cart write can re-emit the
	// combined snapshot without asking the session store (and vice versa).
	snap Snapshot
}

func NewBridge(storage Storage) *Bridge {
	return &Bridge{storage: storage}
}

// Load reads the persisted snapshot. It never fails: a missing or malformed
// blob yields zero-value defaults. When the combined key is absent the legacy
// cart key is still honored.
func (b *Bridge) Load(ctx context.Context) Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	data, err := b.storage.Get(ctx, stateKey)
	if err == nil {
		var snap Snapshot
		if jsonErr := json.Unmarshal(data, &snap); jsonErr == nil {
			b.snap = snap
			return snap
		}
		log.Printf("persist: ignoring malformed state blob")
	}

	data, err = b.storage.Get(ctx, cartKey)
	if err == nil {
		var items []domain.CartLine
		if jsonErr := json.Unmarshal(data, &items); jsonErr == nil {
			count, sum := domain.Totals(items)
			b.snap.Cart = CartState{Items: items, TotalItems: count, TotalPrice: sum}
		}
	}
	return b.snap
}

// SaveCart mirrors a cart mutation to both keys.
func (b *Bridge) SaveCart(cart domain.Cart) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.snap.Cart = CartState{Items: cart.Items, TotalItems: cart.TotalItems, TotalPrice: cart.TotalPrice}
	b.writeState()
	b.write(cartKey, cart.Items)
}

// DeleteCart removes the persisted cart entirely; the combined snapshot is
// rewritten with an empty cart so the two keys stay consistent.
func (b *Bridge) DeleteCart() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.snap.Cart = CartState{TotalPrice: decimal.Zero}
	b.writeState()

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := b.storage.Delete(ctx, cartKey); err != nil {
		log.Printf("persist: delete cart failed: %v", err)
	}
}

// SaveSession mirrors a session change into the combined snapshot.
func (b *Bridge) SaveSession(s domain.Session) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.snap.Session = s
	b.writeState()
}

// ClearSession drops the persisted identity, leaving the cart slice alone.
func (b *Bridge) ClearSession() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.snap.Session = domain.Session{}
	b.writeState()
}

func (b *Bridge) writeState() {
	b.write(stateKey, b.snap)
}

func (b *Bridge) write(key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		log.Printf("persist: marshal %s failed: %v", key, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := b.storage.Set(ctx, key, data); err != nil {
		log.Printf("persist: write %s failed: %v", key, err)
	}
}
