package models

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// ItemDetail holds the quantity and unit price for one item in the
// submit payload.
type ItemDetail struct {
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// Customer identifies who placed the order
type Customer struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// SubmitOrderRequest is the body of POST /api/submit-order: a customer
// plus a nested vendor -> item -> {quantity, price} mapping.
type SubmitOrderRequest struct {
	Customer Customer                         `json:"customer"`
	Items    map[string]map[string]ItemDetail `json:"items"`
}

// LineItem is one (vendor, item, quantity, price) entry within an order
type LineItem struct {
	Vendor   string  `json:"vendor"`
	Item     string  `json:"item"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Total    float64 `json:"total"`
}

// Order is one accepted customer submission with its line items
type Order struct {
	ID            int        `json:"-"`
	OrderID       string     `json:"order_id"`
	CustomerName  string     `json:"customer_name"`
	CustomerPhone string     `json:"customer_phone"`
	CreatedAt     time.Time  `json:"created_at"`
	Items         []LineItem `json:"items"`
}

// VendorSummaryEntry is the cumulative quantity ordered for one
// (vendor, item) pair across all orders.
type VendorSummaryEntry struct {
	Vendor        string `json:"vendor"`
	Item          string `json:"item"`
	TotalQuantity int64  `json:"total_quantity"`
}

// SubmitOrderResponse is returned after an order is accepted
type SubmitOrderResponse struct {
	Message     string  `json:"message"`
	OrderID     string  `json:"order_id"`
	TotalAmount float64 `json:"total_amount"`
}

// ValidationError describes a rejected field in a submit payload
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the submit payload against the intake rules
func (req *SubmitOrderRequest) Validate() error {
	if err := validateCustomer(req.Customer); err != nil {
		return err
	}
	return validateItems(req.Items)
}

func validateCustomer(c Customer) error {
	if strings.TrimSpace(c.Name) == "" {
		return ValidationError{
			Field:   "customer.name",
			Message: "customer name is required",
		}
	}
	if len(c.Name) > 100 {
		return ValidationError{
			Field:   "customer.name",
			Message: "customer name must be less than 100 characters",
		}
	}
	if strings.TrimSpace(c.Phone) == "" {
		return ValidationError{
			Field:   "customer.phone",
			Message: "customer phone is required",
		}
	}
	if len(c.Phone) > 30 {
		return ValidationError{
			Field:   "customer.phone",
			Message: "customer phone must be less than 30 characters",
		}
	}
	return nil
}

func validateItems(items map[string]map[string]ItemDetail) error {
	if len(items) == 0 {
		return ValidationError{
			Field:   "items",
			Message: "items cannot be empty",
		}
	}

	for vendor, vendorItems := range items {
		if strings.TrimSpace(vendor) == "" {
			return ValidationError{
				Field:   "items",
				Message: "vendor name cannot be empty",
			}
		}
		if len(vendor) > 100 {
			return ValidationError{
				Field:   "items",
				Message: "vendor name must be less than 100 characters",
			}
		}
		if len(vendorItems) == 0 {
			return ValidationError{
				Field:   fmt.Sprintf("items[%s]", vendor),
				Message: "vendor must contain at least one item",
			}
		}
		for item, detail := range vendorItems {
			if err := validateItem(vendor, item, detail); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateItem(vendor, item string, detail ItemDetail) error {
	prefix := fmt.Sprintf("items[%s][%s]", vendor, item)

	if strings.TrimSpace(item) == "" {
		return ValidationError{
			Field:   fmt.Sprintf("items[%s]", vendor),
			Message: "item name cannot be empty",
		}
	}
	if len(item) > 100 {
		return ValidationError{
			Field:   prefix,
			Message: "item name must be less than 100 characters",
		}
	}
	if detail.Quantity <= 0 {
		return ValidationError{
			Field:   prefix + ".quantity",
			Message: "item quantity must be greater than 0",
		}
	}
	if detail.Price < 0 {
		return ValidationError{
			Field:   prefix + ".price",
			Message: "item price must be non-negative",
		}
	}
	return nil
}

// LineItems flattens the nested items mapping into line items with
// computed totals, sorted by vendor then item so output is stable.
func (req *SubmitOrderRequest) LineItems() []LineItem {
	lines := make([]LineItem, 0, len(req.Items))
	for vendor, vendorItems := range req.Items {
		for item, detail := range vendorItems {
			lines = append(lines, LineItem{
				Vendor:   vendor,
				Item:     item,
				Quantity: detail.Quantity,
				Price:    detail.Price,
				Total:    float64(detail.Quantity) * detail.Price,
			})
		}
	}
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].Vendor != lines[j].Vendor {
			return lines[i].Vendor < lines[j].Vendor
		}
		return lines[i].Item < lines[j].Item
	})
	return lines
}

// TotalAmount sums quantity x price across all line items
func (o *Order) TotalAmount() float64 {
	var total float64
	for _, line := range o.Items {
		total += float64(line.Quantity) * line.Price
	}
	return total
}

// QuantityDeltas pre-sums the order's quantities per (vendor, item) so
// each order contributes one net delta per key to the vendor summary.
// Keys are sorted so concurrent transactions touch summary rows in the
// same order.
func (o *Order) QuantityDeltas() []VendorSummaryEntry {
	totals := make(map[[2]string]int64)
	for _, line := range o.Items {
		key := [2]string{line.Vendor, line.Item}
		totals[key] += int64(line.Quantity)
	}

	deltas := make([]VendorSummaryEntry, 0, len(totals))
	for key, quantity := range totals {
		deltas = append(deltas, VendorSummaryEntry{
			Vendor:        key[0],
			Item:          key[1],
			TotalQuantity: quantity,
		})
	}
	sort.Slice(deltas, func(i, j int) bool {
		if deltas[i].Vendor != deltas[j].Vendor {
			return deltas[i].Vendor < deltas[j].Vendor
		}
		return deltas[i].Item < deltas[j].Item
	})
	return deltas
}
