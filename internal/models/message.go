package models

import "time"

// OrderSubmittedMessage represents a notification published after an
// order has been committed to storage.
type OrderSubmittedMessage struct {
	OrderID      string    `json:"order_id"`
	CustomerName string    `json:"customer_name"`
	TotalAmount  float64   `json:"total_amount"`
	ItemsCount   int       `json:"items_count"`
	Vendors      []string  `json:"vendors"`
	Timestamp    time.Time `json:"timestamp"`
}

// CreateOrderSubmittedMessage builds the notification payload for an
// accepted order.
func CreateOrderSubmittedMessage(order *Order) *OrderSubmittedMessage {
	seen := make(map[string]bool)
	vendors := make([]string, 0, len(order.Items))
	for _, line := range order.Items {
		if !seen[line.Vendor] {
			seen[line.Vendor] = true
			vendors = append(vendors, line.Vendor)
		}
	}

	return &OrderSubmittedMessage{
		OrderID:      order.OrderID,
		CustomerName: order.CustomerName,
		TotalAmount:  order.TotalAmount(),
		ItemsCount:   len(order.Items),
		Vendors:      vendors,
		Timestamp:    time.Now().UTC(),
	}
}
