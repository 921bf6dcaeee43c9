// Package menu defines menu items and their read-only repository.
package menu

import (
	"context"

	"github.com/shopspring/decimal"
)

// Item is a purchasable menu item. Unit prices are never negative.
type Item struct {
	ID           string
	Name         string
	Price        decimal.Decimal
	RestaurantID string
}

// Repository defines read operations for the menu catalog.
type Repository interface {
	List(ctx context.Context) ([]Item, error)
	// GetByIDs returns only the items that exist; callers detect gaps by
	// comparing against the requested id set.
	GetByIDs(ctx context.Context, ids []string) ([]Item, error)
}
