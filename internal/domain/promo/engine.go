package promo

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/dishpatch/order-api/internal/domain/customer"
	"github.com/dishpatch/order-api/internal/domain/restaurant"
)

// Result holds the total discount and the names of the promotions that
// contributed to it, in evaluation order.
type Result struct {
	Discount decimal.Decimal
	Applied  []string
}

// Engine evaluates the active promotion set against an order.
type Engine struct {
	promos Repository
}

// NewEngine creates an Engine backed by the given promotion repository.
func NewEngine(promos Repository) *Engine {
	return &Engine{promos: promos}
}

// Apply evaluates every active promotion against the order context and sums
// the matching contributions. Matching promotions stack additively; the total
// is not capped here — clamping the final total to zero is the order
// composer's responsibility.
func (e *Engine) Apply(ctx context.Context, basePrice decimal.Decimal, cust *customer.Customer, rest *restaurant.Restaurant) (Result, error) {
	promos, err := e.promos.ListActive(ctx)
	if err != nil {
		return Result{}, errors.Wrap(err, "list active promotions")
	}

	discount := decimal.Zero
	applied := []string{}

	for _, p := range promos {
		switch p.Kind {
		case KindFirstOrder:
			if !cust.FirstOrderCompleted {
				discount = discount.Add(basePrice.Mul(p.Discount))
				applied = append(applied, p.Name)
			}
		case KindRestaurant:
			if p.RestaurantID == rest.ID {
				discount = discount.Add(basePrice.Mul(p.Discount))
				applied = append(applied, p.Name)
			}
		case KindZone:
			if p.Zone == cust.Zone {
				discount = discount.Add(p.Flat)
				applied = append(applied, p.Name)
			}
		}
	}

	return Result{Discount: discount.Round(2), Applied: applied}, nil
}
