package preorder

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/princepradeep36/food-preorder-backend/internal/logger"
	"github.com/princepradeep36/food-preorder-backend/internal/models"
)

func newTestService(storage Storage, publisher Publisher) *Service {
	return NewService(storage, UUIDGenerator{}, publisher, logger.New("preorder-test"), 10)
}

func submitRequest(vendor, item string, quantity int, price float64) *models.SubmitOrderRequest {
	return &models.SubmitOrderRequest{
		Customer: models.Customer{Name: "Alice", Phone: "555-1"},
		Items: map[string]map[string]models.ItemDetail{
			vendor: {
				item: {Quantity: quantity, Price: price},
			},
		},
	}
}

// trackingStorage records whether any write reached storage
type trackingStorage struct {
	Storage
	submitCalls int
}

func (s *trackingStorage) SubmitOrder(ctx context.Context, order *models.Order) error {
	s.submitCalls++
	return s.Storage.SubmitOrder(ctx, order)
}

// failingStorage fails every submission with a fixed error
type failingStorage struct {
	MemoryStore
	err error
}

func (s *failingStorage) SubmitOrder(ctx context.Context, order *models.Order) error {
	return s.err
}

// capturingPublisher records published messages
type capturingPublisher struct {
	mu       sync.Mutex
	messages []*models.OrderSubmittedMessage
	err      error
}

func (p *capturingPublisher) PublishOrderSubmitted(ctx context.Context, msg *models.OrderSubmittedMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, msg)
	return p.err
}

func TestService_SubmitOrder(t *testing.T) {
	store := NewMemoryStore()
	svc := newTestService(store, nil)

	resp, err := svc.SubmitOrder(context.Background(), submitRequest("Pizza Place", "Margherita", 2, 9.5), "req-1")
	require.NoError(t, err)
	require.NotEmpty(t, resp.OrderID)
	require.Equal(t, "Order received successfully!", resp.Message)
	require.InDelta(t, 19.0, resp.TotalAmount, 1e-9)

	entries, err := svc.VendorSummary(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.EqualValues(t, 2, entries[0].TotalQuantity)

	// Submitting again with quantity 3 accumulates to 5.
	_, err = svc.SubmitOrder(context.Background(), submitRequest("Pizza Place", "Margherita", 3, 9.5), "req-2")
	require.NoError(t, err)

	entries, err = svc.VendorSummary(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.EqualValues(t, 5, entries[0].TotalQuantity)
}

func TestService_RejectsBeforeStorage(t *testing.T) {
	tracking := &trackingStorage{Storage: NewMemoryStore()}
	svc := newTestService(tracking, nil)

	req := &models.SubmitOrderRequest{
		Customer: models.Customer{Name: "Alice", Phone: "555-1"},
		Items:    map[string]map[string]models.ItemDetail{},
	}

	_, err := svc.SubmitOrder(context.Background(), req, "req-1")
	require.Error(t, err)

	var validationErr models.ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Zero(t, tracking.submitCalls, "validation failure must not reach storage")
}

func TestService_StorageFailurePropagates(t *testing.T) {
	failing := &failingStorage{err: ErrAggregation}
	publisher := &capturingPublisher{}
	svc := newTestService(failing, publisher)

	_, err := svc.SubmitOrder(context.Background(), submitRequest("Bakery", "Bagel", 1, 2.5), "req-1")
	require.ErrorIs(t, err, ErrAggregation)

	// A failed submission is never announced and never listed.
	require.Empty(t, publisher.messages)
	orders, err := svc.ListOrders(context.Background())
	require.NoError(t, err)
	require.Empty(t, orders)
}

func TestService_PublishFailureDoesNotFailSubmission(t *testing.T) {
	store := NewMemoryStore()
	publisher := &capturingPublisher{err: errors.New("broker gone")}
	svc := newTestService(store, publisher)

	resp, err := svc.SubmitOrder(context.Background(), submitRequest("Bakery", "Bagel", 1, 2.5), "req-1")
	require.NoError(t, err)
	require.NotEmpty(t, resp.OrderID)

	orders, err := svc.ListOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 1)
}

func TestService_PublishesNotification(t *testing.T) {
	store := NewMemoryStore()
	publisher := &capturingPublisher{}
	svc := newTestService(store, publisher)

	resp, err := svc.SubmitOrder(context.Background(), submitRequest("Pizza Place", "Margherita", 2, 9.5), "req-1")
	require.NoError(t, err)

	require.Len(t, publisher.messages, 1)
	msg := publisher.messages[0]
	require.Equal(t, resp.OrderID, msg.OrderID)
	require.Equal(t, "Alice", msg.CustomerName)
	require.Equal(t, []string{"Pizza Place"}, msg.Vendors)
}

func TestService_ConcurrentSubmissions(t *testing.T) {
	store := NewMemoryStore()
	svc := newTestService(store, nil)

	// Two concurrent submissions each adding quantity 1 to a fresh key
	// must both land: final total 2, never a lost update.
	var g errgroup.Group
	for i := 0; i < 2; i++ {
		g.Go(func() error {
			_, err := svc.SubmitOrder(context.Background(), submitRequest("Bakery", "Bagel", 1, 2.5), "req")
			return err
		})
	}
	require.NoError(t, g.Wait())

	entries, err := svc.VendorSummary(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.EqualValues(t, 2, entries[0].TotalQuantity)
}

func TestService_ConcurrentSubmissionsMatchSequentialSum(t *testing.T) {
	store := NewMemoryStore()
	svc := newTestService(store, nil)

	const n = 50
	var g errgroup.Group
	for i := 0; i < n; i++ {
		quantity := i%3 + 1
		g.Go(func() error {
			_, err := svc.SubmitOrder(context.Background(), submitRequest("Pizza Place", "Margherita", quantity, 9.5), "req")
			return err
		})
	}
	require.NoError(t, g.Wait())

	var want int64
	for i := 0; i < n; i++ {
		want += int64(i%3 + 1)
	}

	entries, err := svc.VendorSummary(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, want, entries[0].TotalQuantity)

	orders, err := svc.ListOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, n)

	// Every generated order id is distinct.
	ids := make(map[string]bool, n)
	for _, order := range orders {
		require.False(t, ids[order.OrderID], "duplicate order id %s", order.OrderID)
		ids[order.OrderID] = true
	}
}

func TestService_HealthCheck(t *testing.T) {
	svc := newTestService(NewMemoryStore(), nil)
	require.True(t, svc.HealthCheck(context.Background()))
}
