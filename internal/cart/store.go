package cart

import (
	"context"
	"encoding/json"
	"math"
	"sync"

	"github.com/sirupsen/logrus"
	"storefront-service/internal/models"
)

// Store owns the cart lines and their persistence. Every mutation runs to
// completion under the mutex, including its write-through to the KV slot,
// before the next one is admitted. Lines keep insertion order.
type Store struct {
	mu      sync.Mutex
	lines   []models.CartLine
	kv      KV
	taxRate float64
	logger  *logrus.Entry
}

func NewStore(kv KV, taxRate float64, logger *logrus.Logger) *Store {
	return &Store{
		kv:      kv,
		taxRate: taxRate,
		logger:  logger.WithField("component", "cart"),
	}
}

// Load restores the cart from the persisted slot. A missing or corrupt
// value yields an empty cart; corruption is logged, never surfaced.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.kv.Get(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to read persisted cart, starting empty")
		s.lines = nil
		return
	}
	if len(data) == 0 {
		s.lines = nil
		return
	}

	var lines []models.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		s.logger.WithError(err).Warn("Persisted cart is corrupt, resetting to empty")
		s.lines = nil
		return
	}

	// Defend against hand-edited or stale payloads: drop lines that could
	// never have been stored by a well-behaved writer.
	valid := lines[:0]
	for _, line := range lines {
		if line.ProductID == "" || line.Quantity <= 0 {
			continue
		}
		valid = append(valid, line)
	}
	s.lines = valid
}

// Add creates a line with snapshots taken from the given product, or bumps
// the existing line's quantity by delta. The store does not validate the
// product against the catalog; resolving the id is the caller's job.
func (s *Store) Add(ctx context.Context, product models.Product, delta int) {
	if delta < 1 {
		delta = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID == product.ID {
			s.lines[i].Quantity += delta
			s.persistLocked(ctx)
			return
		}
	}

	s.lines = append(s.lines, models.CartLine{
		ProductID:     product.ID,
		TitleSnapshot: product.Title,
		PriceSnapshot: product.Price,
		Quantity:      delta,
		ImageSnapshot: product.Image,
	})
	s.persistLocked(ctx)
}

// Remove deletes the line unconditionally. Removing an absent id is a no-op.
func (s *Store) Remove(ctx context.Context, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			s.persistLocked(ctx)
			return
		}
	}
}

// SetQuantity sets the absolute quantity of an existing line. Zero or
// negative is equivalent to Remove. An absent line stays absent: without a
// product snapshot there is nothing to materialize.
func (s *Store) SetQuantity(ctx context.Context, productID string, qty int) {
	if qty <= 0 {
		s.Remove(ctx, productID)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines[i].Quantity = qty
			s.persistLocked(ctx)
			return
		}
	}
}

// Clear removes all lines.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	if err := s.kv.Delete(ctx); err != nil {
		s.logger.WithError(err).Warn("Failed to clear persisted cart")
	}
}

// Lines returns a copy of the cart lines in insertion order.
func (s *Store) Lines() []models.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// Count returns the sum of quantities over all lines (the badge number).
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return countLocked(s.lines)
}

// Totals recomputes subtotal, tax and grand total from scratch. Tax and
// grand are each rounded half-up to two decimals exactly once; nothing is
// carried over between calls, so repeated calls never re-round.
func (s *Store) Totals() models.CartTotals {
	s.mu.Lock()
	defer s.mu.Unlock()

	var subtotal float64
	for _, line := range s.lines {
		subtotal += line.PriceSnapshot * float64(line.Quantity)
	}
	tax := Round2(subtotal * s.taxRate)
	return models.CartTotals{
		Subtotal: subtotal,
		Tax:      tax,
		Grand:    Round2(subtotal + tax),
	}
}

// View returns lines, totals and count in one consistent snapshot.
func (s *Store) View() models.CartView {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make([]models.CartLine, len(s.lines))
	copy(lines, s.lines)

	var subtotal float64
	for _, line := range s.lines {
		subtotal += line.PriceSnapshot * float64(line.Quantity)
	}
	tax := Round2(subtotal * s.taxRate)

	return models.CartView{
		Lines: lines,
		Totals: models.CartTotals{
			Subtotal: subtotal,
			Tax:      tax,
			Grand:    Round2(subtotal + tax),
		},
		Count: countLocked(s.lines),
	}
}

// TaxRate returns the configured tax multiplier.
func (s *Store) TaxRate() float64 {
	return s.taxRate
}

func countLocked(lines []models.CartLine) int {
	total := 0
	for _, line := range lines {
		total += line.Quantity
	}
	return total
}

// persistLocked writes the full cart through to the KV slot. Callers hold
// the mutex. A write failure is logged but does not fail the mutation; the
// in-memory cart remains the source of truth for the session.
func (s *Store) persistLocked(ctx context.Context) {
	data, err := json.Marshal(s.lines)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to serialize cart")
		return
	}
	if err := s.kv.Set(ctx, data); err != nil {
		s.logger.WithError(err).Warn("Failed to persist cart")
	}
}

// Round2 rounds half-up to two decimal places.
func Round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}
