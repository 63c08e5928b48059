// Package cart holds the authoritative cart line list and its derived totals.
package cart

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/ellurunanda/Shopping-Cart/internal/domain"
)

// Persister mirrors the ledger to durable storage. Implementations are
// best-effort; the ledger never checks for failure.
type Persister interface {
	SaveCart(cart domain.Cart)
	DeleteCart()
}

// Ledger is the in-memory cart. Every mutation recomputes both totals from
// the current lines and mirrors the result through the Persister.
type Ledger struct {
	mu         sync.Mutex
	items      []domain.CartLine
	totalItems int
	totalPrice decimal.Decimal

	persist Persister
}

func New(persist Persister) *Ledger {
	return &Ledger{persist: persist, totalPrice: decimal.Zero}
}

// Add puts one unit of the product in the cart. A product already present
// gets its quantity incremented instead of a duplicate line.
func (l *Ledger) Add(p domain.Product) {
	l.mu.Lock()
	defer l.mu.Unlock()

	found := false
	for i := range l.items {
		if l.items[i].ID == p.ID {
			l.items[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		l.items = append(l.items, domain.CartLine{Product: p, Quantity: 1})
	}
	l.commit()
}

// Remove deletes the matching line. An absent id is a no-op, not an error.
func (l *Ledger) Remove(productID int64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	kept := l.items[:0]
	for _, line := range l.items {
		if line.ID != productID {
			kept = append(kept, line)
		}
	}
	l.items = kept
	l.commit()
}

// SetQuantity replaces a line's quantity. Non-positive quantities are ignored
// so a line can never drop below one unit; absent ids are ignored.
func (l *Ledger) SetQuantity(productID int64, quantity int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if quantity > 0 {
		for i := range l.items {
			if l.items[i].ID == productID {
				l.items[i].Quantity = quantity
				break
			}
		}
	}
	l.commit()
}

// Clear empties the cart and removes the persisted copy entirely.
func (l *Ledger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.items = nil
	l.totalItems = 0
	l.totalPrice = decimal.Zero
	if l.persist != nil {
		l.persist.DeleteCart()
	}
}

// Restore rehydrates the lines from a persisted snapshot. Totals are
// recomputed rather than trusted, and nothing is written back.
func (l *Ledger) Restore(items []domain.CartLine) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.items = make([]domain.CartLine, len(items))
	copy(l.items, items)
	l.totalItems, l.totalPrice = domain.Totals(l.items)
}

// Snapshot returns a copy of the current cart state.
func (l *Ledger) Snapshot() domain.Cart {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshotLocked()
}

func (l *Ledger) TotalItems() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.totalItems
}

func (l *Ledger) TotalPrice() decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.totalPrice
}

func (l *Ledger) snapshotLocked() domain.Cart {
	items := make([]domain.CartLine, len(l.items))
	copy(items, l.items)
	return domain.Cart{Items: items, TotalItems: l.totalItems, TotalPrice: l.totalPrice}
}

// commit recomputes totals from scratch and mirrors the cart. Callers hold the lock.
func (l *Ledger) commit() {
	l.totalItems, l.totalPrice = domain.Totals(l.items)
	if l.persist != nil {
		l.persist.SaveCart(l.snapshotLocked())
	}
}
