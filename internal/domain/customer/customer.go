// Package customer defines the customer entity and its read-only repository.
package customer

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/dishpatch/order-api/internal/domain/geo"
)

// ErrNotFound is returned when a requested customer does not exist.
var ErrNotFound = errors.New("customer not found")

// Customer is a registered delivery customer. The pricing pipeline treats it
// as read-only.
type Customer struct {
	ID                  string
	Name                string
	Email               string
	Location            geo.Point
	Zone                string
	FirstOrderCompleted bool
}

// Repository defines read operations for customers.
type Repository interface {
	GetByID(ctx context.Context, id string) (*Customer, error)
}
