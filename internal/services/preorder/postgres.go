package preorder

import (
	"context"
	"fmt"

	"github.com/princepradeep36/food-preorder-backend/internal/database"
	"github.com/princepradeep36/food-preorder-backend/internal/models"
)

// Repository is the PostgreSQL implementation of Storage
type Repository struct {
	db *database.DB
}

// NewRepository creates a PostgreSQL-backed storage
func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// SubmitOrder writes the order, its line items and the vendor summary
// merge in a single transaction. The summary merge is an upsert that
// adds the order's pre-summed per-key quantities, so concurrent
// submissions touching the same (vendor, item) never lose an update.
func (r *Repository) SubmitOrder(ctx context.Context, order *models.Order) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: begin transaction: %v", ErrStorageUnavailable, err)
	}
	defer tx.Rollback(ctx)

	var id int
	err = tx.QueryRow(ctx, database.InsertOrderSQL,
		order.OrderID, order.CustomerName, order.CustomerPhone, order.CreatedAt).Scan(&id)
	if err != nil {
		return fmt.Errorf("%w: insert order %s: %v", ErrRecord, order.OrderID, err)
	}
	order.ID = id

	for _, line := range order.Items {
		_, err = tx.Exec(ctx, database.InsertOrderItemSQL,
			id, line.Vendor, line.Item, line.Quantity, line.Price, line.Total)
		if err != nil {
			return fmt.Errorf("%w: insert line item %s/%s: %v", ErrRecord, line.Vendor, line.Item, err)
		}
	}

	for _, delta := range order.QuantityDeltas() {
		_, err = tx.Exec(ctx, database.MergeVendorSummarySQL,
			delta.Vendor, delta.Item, delta.TotalQuantity)
		if err != nil {
			return fmt.Errorf("%w: merge %s/%s: %v", ErrAggregation, delta.Vendor, delta.Item, err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit order %s: %w", order.OrderID, err)
	}

	return nil
}

// ListOrders returns all recorded orders, newest submission first
func (r *Repository) ListOrders(ctx context.Context) ([]models.Order, error) {
	rows, err := r.db.Query(ctx, database.ListOrdersSQL)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]models.Order, 0)
	index := make(map[string]int)
	for rows.Next() {
		var order models.Order
		err = rows.Scan(&order.ID, &order.OrderID, &order.CustomerName, &order.CustomerPhone, &order.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		order.Items = make([]models.LineItem, 0)
		index[order.OrderID] = len(orders)
		orders = append(orders, order)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}

	itemRows, err := r.db.Query(ctx, database.ListOrderItemsSQL)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var orderID string
		var line models.LineItem
		err = itemRows.Scan(&orderID, &line.Vendor, &line.Item, &line.Quantity, &line.Price, &line.Total)
		if err != nil {
			return nil, fmt.Errorf("scan line item row: %w", err)
		}
		if i, ok := index[orderID]; ok {
			orders[i].Items = append(orders[i].Items, line)
		}
	}
	if err = itemRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate line item rows: %w", err)
	}

	return orders, nil
}

// VendorSummary returns the cumulative totals per (vendor, item)
func (r *Repository) VendorSummary(ctx context.Context) ([]models.VendorSummaryEntry, error) {
	rows, err := r.db.Query(ctx, database.ListVendorSummarySQL)
	if err != nil {
		return nil, fmt.Errorf("list vendor summary: %w", err)
	}
	defer rows.Close()

	entries := make([]models.VendorSummaryEntry, 0)
	for rows.Next() {
		var entry models.VendorSummaryEntry
		err = rows.Scan(&entry.Vendor, &entry.Item, &entry.TotalQuantity)
		if err != nil {
			return nil, fmt.Errorf("scan vendor summary row: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// Ping reports whether the database is reachable
func (r *Repository) Ping(ctx context.Context) error {
	if err := r.db.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}
