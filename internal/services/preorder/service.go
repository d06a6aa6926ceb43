package preorder

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/princepradeep36/food-preorder-backend/internal/logger"
	"github.com/princepradeep36/food-preorder-backend/internal/metrics"
	"github.com/princepradeep36/food-preorder-backend/internal/models"
)

// Publisher sends notifications for accepted orders
type Publisher interface {
	PublishOrderSubmitted(ctx context.Context, msg *models.OrderSubmittedMessage) error
}

// Service orchestrates the submission pipeline: validate the payload,
// generate an order id, persist order + line items + summary merge as
// one unit, then notify.
type Service struct {
	storage   Storage
	idgen     IDGenerator
	publisher Publisher
	logger    *logger.Logger
	sem       *semaphore.Weighted
}

// NewService creates the order submission service. publisher may be
// nil, in which case notifications are skipped. maxConcurrent caps
// in-flight submissions.
func NewService(storage Storage, idgen IDGenerator, publisher Publisher, log *logger.Logger, maxConcurrent int) *Service {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &Service{
		storage:   storage,
		idgen:     idgen,
		publisher: publisher,
		logger:    log,
		sem:       semaphore.NewWeighted(int64(maxConcurrent)),
	}
}

// SubmitOrder runs the full pipeline for one incoming order and
// returns the generated order identifier on success.
func (s *Service) SubmitOrder(ctx context.Context, req *models.SubmitOrderRequest, requestID string) (*models.SubmitOrderResponse, error) {
	if err := req.Validate(); err != nil {
		metrics.OrdersTotal.WithLabelValues("rejected").Inc()
		return nil, fmt.Errorf("validate order request: %w", err)
	}

	if err := s.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("acquire submission slot: %w", err)
	}
	defer s.sem.Release(1)

	order := &models.Order{
		OrderID:       s.idgen.NextID(),
		CustomerName:  req.Customer.Name,
		CustomerPhone: req.Customer.Phone,
		CreatedAt:     time.Now().UTC(),
		Items:         req.LineItems(),
	}

	if err := s.storage.SubmitOrder(ctx, order); err != nil {
		metrics.OrdersTotal.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("submit order: %w", err)
	}

	metrics.OrdersTotal.WithLabelValues("accepted").Inc()
	metrics.LineItemsRecorded.Add(float64(len(order.Items)))
	metrics.OrderAmount.Observe(order.TotalAmount())

	s.logger.Info("order_submitted", "Order committed to storage", requestID, map[string]interface{}{
		"order_id":     order.OrderID,
		"items_count":  len(order.Items),
		"total_amount": order.TotalAmount(),
	})

	s.notify(order, requestID)

	return &models.SubmitOrderResponse{
		Message:     "Order received successfully!",
		OrderID:     order.OrderID,
		TotalAmount: order.TotalAmount(),
	}, nil
}

// notify publishes the order-submitted event. The order is already
// committed, so a publish failure is logged and never unwinds the
// submission.
func (s *Service) notify(order *models.Order, requestID string) {
	if s.publisher == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	msg := models.CreateOrderSubmittedMessage(order)
	if err := s.publisher.PublishOrderSubmitted(ctx, msg); err != nil {
		s.logger.Error("notification_failed", "Failed to publish order notification", requestID, err, map[string]interface{}{
			"order_id": order.OrderID,
		})
	}
}

// ListOrders returns previously recorded orders, newest first
func (s *Service) ListOrders(ctx context.Context) ([]models.Order, error) {
	orders, err := s.storage.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// VendorSummary returns the cumulative per-(vendor, item) totals
func (s *Service) VendorSummary(ctx context.Context) ([]models.VendorSummaryEntry, error) {
	entries, err := s.storage.VendorSummary(ctx)
	if err != nil {
		return nil, fmt.Errorf("vendor summary: %w", err)
	}
	return entries, nil
}

// HealthCheck reports whether storage is reachable
func (s *Service) HealthCheck(ctx context.Context) bool {
	return s.storage.Ping(ctx) == nil
}
