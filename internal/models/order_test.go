package models

import (
	"testing"
)

func validRequest() *SubmitOrderRequest {
	return &SubmitOrderRequest{
		Customer: Customer{Name: "Alice", Phone: "555-1"},
		Items: map[string]map[string]ItemDetail{
			"Pizza Place": {
				"Margherita": {Quantity: 2, Price: 9.5},
			},
		},
	}
}

func TestSubmitOrderRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*SubmitOrderRequest)
		wantErr bool
	}{
		{
			name:    "valid request",
			mutate:  func(*SubmitOrderRequest) {},
			wantErr: false,
		},
		{
			name: "missing customer name",
			mutate: func(r *SubmitOrderRequest) {
				r.Customer.Name = ""
			},
			wantErr: true,
		},
		{
			name: "blank customer name",
			mutate: func(r *SubmitOrderRequest) {
				r.Customer.Name = "   "
			},
			wantErr: true,
		},
		{
			name: "missing customer phone",
			mutate: func(r *SubmitOrderRequest) {
				r.Customer.Phone = ""
			},
			wantErr: true,
		},
		{
			name: "empty items",
			mutate: func(r *SubmitOrderRequest) {
				r.Items = map[string]map[string]ItemDetail{}
			},
			wantErr: true,
		},
		{
			name: "nil items",
			mutate: func(r *SubmitOrderRequest) {
				r.Items = nil
			},
			wantErr: true,
		},
		{
			name: "vendor with no items",
			mutate: func(r *SubmitOrderRequest) {
				r.Items["Bakery"] = map[string]ItemDetail{}
			},
			wantErr: true,
		},
		{
			name: "empty vendor name",
			mutate: func(r *SubmitOrderRequest) {
				r.Items[""] = map[string]ItemDetail{
					"Bagel": {Quantity: 1, Price: 2},
				}
			},
			wantErr: true,
		},
		{
			name: "empty item name",
			mutate: func(r *SubmitOrderRequest) {
				r.Items["Pizza Place"][""] = ItemDetail{Quantity: 1, Price: 2}
			},
			wantErr: true,
		},
		{
			name: "zero quantity",
			mutate: func(r *SubmitOrderRequest) {
				r.Items["Pizza Place"]["Margherita"] = ItemDetail{Quantity: 0, Price: 9.5}
			},
			wantErr: true,
		},
		{
			name: "negative quantity",
			mutate: func(r *SubmitOrderRequest) {
				r.Items["Pizza Place"]["Margherita"] = ItemDetail{Quantity: -1, Price: 9.5}
			},
			wantErr: true,
		},
		{
			name: "negative price",
			mutate: func(r *SubmitOrderRequest) {
				r.Items["Pizza Place"]["Margherita"] = ItemDetail{Quantity: 1, Price: -0.5}
			},
			wantErr: true,
		},
		{
			name: "free item is allowed",
			mutate: func(r *SubmitOrderRequest) {
				r.Items["Pizza Place"]["Water"] = ItemDetail{Quantity: 1, Price: 0}
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			err := req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if _, ok := err.(ValidationError); !ok {
					t.Errorf("Validate() returned %T, want ValidationError", err)
				}
			}
		})
	}
}

func TestSubmitOrderRequest_LineItems(t *testing.T) {
	req := &SubmitOrderRequest{
		Customer: Customer{Name: "Bob", Phone: "555-2"},
		Items: map[string]map[string]ItemDetail{
			"Pizza Place": {
				"Margherita": {Quantity: 2, Price: 9.5},
				"Pepperoni":  {Quantity: 1, Price: 11},
			},
			"Bakery": {
				"Bagel": {Quantity: 3, Price: 2.5},
			},
		},
	}

	lines := req.LineItems()
	if len(lines) != 3 {
		t.Fatalf("expected 3 line items, got %d", len(lines))
	}

	// Sorted by vendor then item
	if lines[0].Vendor != "Bakery" || lines[0].Item != "Bagel" {
		t.Errorf("unexpected first line: %+v", lines[0])
	}
	if lines[1].Item != "Margherita" || lines[2].Item != "Pepperoni" {
		t.Errorf("unexpected ordering: %+v", lines)
	}

	if lines[0].Total != 7.5 {
		t.Errorf("expected Bagel total 7.5, got %v", lines[0].Total)
	}
	if lines[1].Total != 19 {
		t.Errorf("expected Margherita total 19, got %v", lines[1].Total)
	}
}

func TestOrder_QuantityDeltas(t *testing.T) {
	// The same (vendor, item) listed twice must contribute one
	// pre-summed delta, never two separate merges.
	order := &Order{
		Items: []LineItem{
			{Vendor: "Pizza Place", Item: "Margherita", Quantity: 2, Price: 9.5},
			{Vendor: "Pizza Place", Item: "Margherita", Quantity: 3, Price: 9.5},
			{Vendor: "Bakery", Item: "Bagel", Quantity: 1, Price: 2.5},
		},
	}

	deltas := order.QuantityDeltas()
	if len(deltas) != 2 {
		t.Fatalf("expected 2 deltas, got %d", len(deltas))
	}
	if deltas[0].Vendor != "Bakery" || deltas[0].TotalQuantity != 1 {
		t.Errorf("unexpected first delta: %+v", deltas[0])
	}
	if deltas[1].Vendor != "Pizza Place" || deltas[1].TotalQuantity != 5 {
		t.Errorf("expected Margherita delta 5, got %+v", deltas[1])
	}
}

func TestOrder_TotalAmount(t *testing.T) {
	order := &Order{
		Items: []LineItem{
			{Vendor: "Pizza Place", Item: "Margherita", Quantity: 2, Price: 9.5},
			{Vendor: "Bakery", Item: "Bagel", Quantity: 4, Price: 2.5},
		},
	}
	if got := order.TotalAmount(); got != 29 {
		t.Errorf("TotalAmount() = %v, want 29", got)
	}
}
