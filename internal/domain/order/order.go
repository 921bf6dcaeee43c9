// Package order composes priced orders from customers, restaurants, menu
// items, delivery fees, and promotions.
package order

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested order does not exist.
var ErrNotFound = errors.New("order not found")

// Status is the lifecycle state of an order. Orders are created pending;
// there is no update flow in this service.
type Status string

const (
	StatusPending        Status = "pending"
	StatusConfirmed      Status = "confirmed"
	StatusPreparing      Status = "preparing"
	StatusOutForDelivery Status = "out_for_delivery"
	StatusDelivered      Status = "delivered"
	StatusCancelled      Status = "cancelled"
)

// LineItem is an order line with the unit price captured at order time.
// Later menu price changes never affect an already-placed order.
type LineItem struct {
	ProductID string          `json:"productId"`
	Qty       int             `json:"qty"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// Breakdown is the audit record of every intermediate pricing factor.
type Breakdown struct {
	DistanceKm     float64         `json:"distanceKm"`
	ZoneBaseFee    decimal.Decimal `json:"zoneBaseFee"`
	PerKmRate      decimal.Decimal `json:"perKmRate"`
	PeakMultiplier decimal.Decimal `json:"peakMultiplier"`
	DeliveryFee    decimal.Decimal `json:"deliveryFee"`
	AppliedPromos  []string        `json:"appliedPromos"`
}

// Order is a priced, persisted order. Pricing fields are immutable once the
// order is created.
type Order struct {
	ID             string
	CustomerID     string
	RestaurantID   string
	CustomerName   string // resolved on read for display, empty otherwise
	RestaurantName string
	Items          []LineItem
	BasePrice      decimal.Decimal
	DeliveryFee    decimal.Decimal
	PromoDiscount  decimal.Decimal
	FinalTotal     decimal.Decimal
	Breakdown      Breakdown
	PlacedAt       time.Time
	Status         Status
	CreatedAt      time.Time
}

// Repository defines persistence operations for orders. GetByID resolves the
// customer and restaurant names for display.
type Repository interface {
	Insert(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
}
