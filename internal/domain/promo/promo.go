// Package promo evaluates active promotions against an order context.
package promo

import (
	"context"

	"github.com/shopspring/decimal"
)

// Kind enumerates the supported promotion types.
type Kind string

const (
	// KindFirstOrder applies a proportional discount to a customer's first order.
	KindFirstOrder Kind = "FIRST_ORDER"
	// KindRestaurant applies a proportional discount to orders from a specific restaurant.
	KindRestaurant Kind = "RESTAURANT"
	// KindZone applies a flat discount to orders delivered into a specific zone.
	KindZone Kind = "ZONE"
)

// Promotion is a single promotional rule. Discount is a 0-1 fraction of the
// base price for the proportional kinds; Flat is the amount for KindZone.
type Promotion struct {
	ID           string
	Name         string
	Kind         Kind
	RestaurantID string
	Zone         string
	Discount     decimal.Decimal
	Flat         decimal.Decimal
	Active       bool
}

// Repository provides the set of currently active promotions. The set is
// fetched fresh for every order so a toggled promotion takes effect
// immediately.
type Repository interface {
	ListActive(ctx context.Context) ([]Promotion, error)
}
