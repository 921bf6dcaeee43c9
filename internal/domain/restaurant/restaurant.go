// Package restaurant defines the restaurant entity and its read-only repository.
package restaurant

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/dishpatch/order-api/internal/domain/geo"
)

// ErrNotFound is returned when a requested restaurant does not exist.
var ErrNotFound = errors.New("restaurant not found")

// Restaurant is a partner restaurant orders can be placed against.
type Restaurant struct {
	ID       string
	Name     string
	Location geo.Point
	Zone     string
	Cuisine  string // optional tag, may be empty
}

// Repository defines read operations for restaurants.
type Repository interface {
	GetByID(ctx context.Context, id string) (*Restaurant, error)
}
