package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestParseOrderStatus(t *testing.T) {
	for _, status := range OrderStatuses() {
		parsed, err := ParseOrderStatus(string(status))
		if err != nil {
			t.Fatalf("ParseOrderStatus(%q) failed: %v", status, err)
		}
		if parsed != status {
			t.Fatalf("expected %s, got %s", status, parsed)
		}
	}

	for _, raw := range []string{"", "created", "SHIPPED", " PENDING"} {
		if _, err := ParseOrderStatus(raw); !errors.Is(err, ErrValidation) {
			t.Fatalf("ParseOrderStatus(%q): expected validation error, got %v", raw, err)
		}
	}
}

func TestOrderStatus_UnmarshalJSON(t *testing.T) {
	var payload struct {
		Status OrderStatus `json:"status"`
	}

	if err := json.Unmarshal([]byte(`{"status":"PENDING"}`), &payload); err != nil {
		t.Fatalf("unmarshal valid status: %v", err)
	}
	if payload.Status != OrderStatusPending {
		t.Fatalf("expected PENDING, got %s", payload.Status)
	}

	err := json.Unmarshal([]byte(`{"status":"SHIPPED"}`), &payload)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for unknown status, got %v", err)
	}

	err = json.Unmarshal([]byte(`{"status":42}`), &payload)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for non-string status, got %v", err)
	}
}

func TestOrderStatus_TransitionsUnconstrained(t *testing.T) {
	for _, from := range OrderStatuses() {
		for _, to := range OrderStatuses() {
			if !from.CanTransitionTo(to) {
				t.Errorf("expected %s -> %s to be allowed", from, to)
			}
		}
		if from.CanTransitionTo("SHIPPED") {
			t.Errorf("expected %s -> SHIPPED to be rejected", from)
		}
	}
}

func TestNewOrder_DefaultsAndValidation(t *testing.T) {
	now := time.Now().UTC()

	order, err := NewOrder("order-1", OrderInput{BuyerEmail: " a@b.com ", Products: []string{"p1"}}, now)
	if err != nil {
		t.Fatalf("NewOrder failed: %v", err)
	}
	if order.Status != OrderStatusCreated {
		t.Fatalf("expected default status CREATED, got %s", order.Status)
	}
	if order.BuyerEmail != "a@b.com" {
		t.Fatalf("expected trimmed email, got %q", order.BuyerEmail)
	}

	empty, err := NewOrder("order-2", OrderInput{BuyerEmail: "a@b.com"}, now)
	if err != nil {
		t.Fatalf("order without products must be valid: %v", err)
	}
	if empty.Products == nil || len(empty.Products) != 0 {
		t.Fatalf("expected empty non-nil products, got %#v", empty.Products)
	}

	tests := []struct {
		name string
		in   OrderInput
		want error
	}{
		{name: "missing email", in: OrderInput{BuyerEmail: "  "}, want: ErrBuyerEmailRequired},
		{name: "unknown status", in: OrderInput{BuyerEmail: "a@b.com", Status: "SHIPPED"}, want: ErrInvalidOrderStatus},
		{name: "bad product id", in: OrderInput{BuyerEmail: "a@b.com", Products: []string{"p1", ""}}, want: ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewOrder("order-3", tt.in, now); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestOrder_ApplyKeepsOriginalOnError(t *testing.T) {
	now := time.Now().UTC()
	order, err := NewOrder("order-1", OrderInput{BuyerEmail: "a@b.com", Products: []string{"p1"}}, now)
	if err != nil {
		t.Fatalf("NewOrder failed: %v", err)
	}

	bad := OrderStatus("SHIPPED")
	if _, err := order.Apply(OrderChanges{Status: &bad}, now); !errors.Is(err, ErrInvalidOrderStatus) {
		t.Fatalf("expected ErrInvalidOrderStatus, got %v", err)
	}
	if order.Status != OrderStatusCreated {
		t.Fatalf("original order mutated: %s", order.Status)
	}

	completed := OrderStatusCompleted
	products := []string{"p2", "p3"}
	later := now.Add(time.Minute)
	updated, err := order.Apply(OrderChanges{Status: &completed, Products: &products}, later)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if updated.Status != OrderStatusCompleted || len(updated.Products) != 2 || updated.BuyerEmail != "a@b.com" {
		t.Fatalf("unexpected updated order: %+v", updated)
	}
	if !updated.UpdatedAt.Equal(later) {
		t.Fatalf("expected UpdatedAt to move forward")
	}

	products[0] = "mutated"
	if updated.Products[0] != "p2" {
		t.Fatal("order must not alias caller slice")
	}
}

func TestOrderFilter_Matches(t *testing.T) {
	pending := OrderStatusPending
	order := Order{ID: "o1", BuyerEmail: "a@b.com", Products: []string{"p1", "p2"}, Status: OrderStatusPending}

	tests := []struct {
		name   string
		filter OrderFilter
		want   bool
	}{
		{name: "empty filter", filter: OrderFilter{}, want: true},
		{name: "product match", filter: OrderFilter{ProductID: "p2"}, want: true},
		{name: "product miss", filter: OrderFilter{ProductID: "p3"}, want: false},
		{name: "status match", filter: OrderFilter{Status: &pending}, want: true},
		{name: "both match", filter: OrderFilter{ProductID: "p1", Status: &pending}, want: true},
		{name: "status miss", filter: OrderFilter{Status: statusPtr(OrderStatusCompleted)}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(order); got != tt.want {
				t.Fatalf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func statusPtr(s OrderStatus) *OrderStatus { return &s }
