package preorder

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/princepradeep36/food-preorder-backend/internal/models"
)

type summaryKey struct {
	vendor string
	item   string
}

// MemoryStore is an in-memory Storage for tests and local development.
// One mutex covers orders and summary together, so every submission is
// a whole-summary critical section: the merge and the line-item append
// commit as one unit, mirroring the transactional guarantee of the
// PostgreSQL implementation.
type MemoryStore struct {
	mu      sync.Mutex
	nextID  int
	orders  []models.Order
	summary map[summaryKey]int64
}

// NewMemoryStore creates an empty in-memory storage
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		summary: make(map[summaryKey]int64),
	}
}

// SubmitOrder appends the order and merges its quantities atomically
func (s *MemoryStore) SubmitOrder(ctx context.Context, order *models.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, stored := range s.orders {
		if stored.OrderID == order.OrderID {
			return fmt.Errorf("%w: duplicate order id %s", ErrRecord, order.OrderID)
		}
	}

	s.nextID++
	order.ID = s.nextID

	// Store a copy so later caller mutations cannot leak in.
	stored := *order
	stored.Items = append([]models.LineItem(nil), order.Items...)
	s.orders = append(s.orders, stored)

	for _, delta := range order.QuantityDeltas() {
		s.summary[summaryKey{delta.Vendor, delta.Item}] += delta.TotalQuantity
	}

	return nil
}

// ListOrders returns all recorded orders, newest submission first
func (s *MemoryStore) ListOrders(ctx context.Context) ([]models.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]models.Order, 0, len(s.orders))
	for _, order := range s.orders {
		copied := order
		copied.Items = append([]models.LineItem(nil), order.Items...)
		result = append(result, copied)
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})

	return result, nil
}

// VendorSummary returns the cumulative totals per (vendor, item)
func (s *MemoryStore) VendorSummary(ctx context.Context) ([]models.VendorSummaryEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]models.VendorSummaryEntry, 0, len(s.summary))
	for key, total := range s.summary {
		entries = append(entries, models.VendorSummaryEntry{
			Vendor:        key.vendor,
			Item:          key.item,
			TotalQuantity: total,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Vendor != entries[j].Vendor {
			return entries[i].Vendor < entries[j].Vendor
		}
		return entries[i].Item < entries[j].Item
	})

	return entries, nil
}

// Ping always succeeds for the in-memory store
func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}
