package preorder

import (
	"context"
	"errors"

	"github.com/princepradeep36/food-preorder-backend/internal/models"
)

var (
	// ErrRecord indicates the durable write of order line items failed
	ErrRecord = errors.New("failed to record order line items")
	// ErrAggregation indicates the vendor summary merge failed
	ErrAggregation = errors.New("failed to merge vendor summary")
	// ErrStorageUnavailable indicates the backing store cannot be reached
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// Storage persists orders and the cumulative vendor summary.
// SubmitOrder must write the order, its line items and the summary
// merge as one atomic unit: either all of it commits or none of it.
type Storage interface {
	SubmitOrder(ctx context.Context, order *models.Order) error
	ListOrders(ctx context.Context) ([]models.Order, error)
	VendorSummary(ctx context.Context) ([]models.VendorSummaryEntry, error)
	Ping(ctx context.Context) error
}
