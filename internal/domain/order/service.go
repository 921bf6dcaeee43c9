package order

import (
	"context"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dishpatch/order-api/internal/domain/customer"
	"github.com/dishpatch/order-api/internal/domain/fault"
	"github.com/dishpatch/order-api/internal/domain/menu"
	"github.com/dishpatch/order-api/internal/domain/pricing"
	"github.com/dishpatch/order-api/internal/domain/promo"
	"github.com/dishpatch/order-api/internal/domain/restaurant"
)

// FeeCalculator computes the delivery fee breakdown for an order.
type FeeCalculator interface {
	Compute(ctx context.Context, cust *customer.Customer, rest *restaurant.Restaurant, placedAt time.Time) (pricing.Breakdown, error)
}

// PromotionEngine evaluates active promotions against an order.
type PromotionEngine interface {
	Apply(ctx context.Context, basePrice decimal.Decimal, cust *customer.Customer, rest *restaurant.Restaurant) (promo.Result, error)
}

// ItemRequest is a requested order line: a menu item reference and quantity.
type ItemRequest struct {
	ProductID string
	Qty       int
}

// CreateRequest holds the input for creating an order. Shape validation
// (id format, quantity bounds, timestamp parsing) is the boundary layer's
// job; the service enforces the business-level checks.
type CreateRequest struct {
	CustomerID   string
	RestaurantID string
	Items        []ItemRequest
	PlacedAt     time.Time
}

// Service orchestrates the order pricing pipeline. No step is retried and
// nothing is persisted unless every pricing step succeeds.
type Service struct {
	customers   customer.Repository
	restaurants restaurant.Repository
	menu        menu.Repository
	fees        FeeCalculator
	promos      PromotionEngine
	orders      Repository
}

// NewService creates an order Service with the required dependencies.
func NewService(
	customers customer.Repository,
	restaurants restaurant.Repository,
	menuRepo menu.Repository,
	fees FeeCalculator,
	promos PromotionEngine,
	orders Repository,
) *Service {
	return &Service{
		customers:   customers,
		restaurants: restaurants,
		menu:        menuRepo,
		fees:        fees,
		promos:      promos,
		orders:      orders,
	}
}

// Create prices and persists a new order: it resolves the customer,
// restaurant, and menu items concurrently, snapshots unit prices into
// enriched line items, computes the delivery fee and promotion discounts,
// derives the final total, and inserts the order with status pending.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Order, error) {
	ids := make([]string, len(req.Items))
	for i, item := range req.Items {
		ids[i] = item.ProductID
	}

	// The three lookups are independent; issue them together and fail fast
	// on the first missing entity.
	var (
		cust  *customer.Customer
		rest  *restaurant.Restaurant
		items []menu.Item
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := s.customers.GetByID(gctx, req.CustomerID)
		if err != nil {
			if errors.Is(err, customer.ErrNotFound) {
				return fault.NotFound("Customer")
			}
			return errors.Wrapf(err, "get customer %s", req.CustomerID)
		}
		cust = c
		return nil
	})
	g.Go(func() error {
		r, err := s.restaurants.GetByID(gctx, req.RestaurantID)
		if err != nil {
			if errors.Is(err, restaurant.ErrNotFound) {
				return fault.NotFound("Restaurant")
			}
			return errors.Wrapf(err, "get restaurant %s", req.RestaurantID)
		}
		rest = r
		return nil
	})
	g.Go(func() error {
		found, err := s.menu.GetByIDs(gctx, ids)
		if err != nil {
			return errors.Wrap(err, "get menu items")
		}
		items = found
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Every requested id must resolve; report all gaps, not just the first.
	itemsByID := make(map[string]menu.Item, len(items))
	for _, it := range items {
		itemsByID[it.ID] = it
	}
	var missing []string
	for _, id := range ids {
		if _, ok := itemsByID[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return nil, fault.Validation("Some items not found", fault.FieldError{
			Field:   "items",
			Message: "Items not found: " + strings.Join(missing, ", "),
		})
	}

	// Snapshot unit prices and compute the base price.
	enriched := make([]LineItem, len(req.Items))
	basePrice := decimal.Zero
	for i, item := range req.Items {
		unitPrice := itemsByID[item.ProductID].Price
		enriched[i] = LineItem{
			ProductID: item.ProductID,
			Qty:       item.Qty,
			UnitPrice: unitPrice,
		}
		basePrice = basePrice.Add(unitPrice.Mul(decimal.NewFromInt(int64(item.Qty))))
	}
	if !basePrice.IsPositive() {
		return nil, fault.Validation("Invalid order total", fault.FieldError{
			Field:   "items",
			Message: "Order total must be greater than 0",
		})
	}

	fee, err := s.fees.Compute(ctx, cust, rest, req.PlacedAt)
	if err != nil {
		return nil, err
	}

	promos, err := s.promos.Apply(ctx, basePrice, cust, rest)
	if err != nil {
		return nil, err
	}

	// Stacked discounts may exceed the order value; the total never goes
	// below zero.
	finalTotal := basePrice.Add(fee.DeliveryFee).Sub(promos.Discount)
	if finalTotal.IsNegative() {
		finalTotal = decimal.Zero
	}
	finalTotal = finalTotal.Round(2)

	o := &Order{
		ID:            uuid.New().String(),
		CustomerID:    req.CustomerID,
		RestaurantID:  req.RestaurantID,
		Items:         enriched,
		BasePrice:     basePrice.Round(2),
		DeliveryFee:   fee.DeliveryFee,
		PromoDiscount: promos.Discount,
		FinalTotal:    finalTotal,
		Breakdown: Breakdown{
			DistanceKm:     fee.DistanceKm,
			ZoneBaseFee:    fee.ZoneBaseFee,
			PerKmRate:      fee.PerKmRate,
			PeakMultiplier: fee.PeakMultiplier,
			DeliveryFee:    fee.DeliveryFee,
			AppliedPromos:  promos.Applied,
		},
		PlacedAt: req.PlacedAt,
		Status:   StatusPending,
	}

	zctx.From(ctx).Info("Order priced",
		zap.String("order_id", o.ID),
		zap.String("base_price", o.BasePrice.String()),
		zap.String("delivery_fee", o.DeliveryFee.String()),
		zap.String("promo_discount", o.PromoDiscount.String()),
		zap.String("final_total", o.FinalTotal.String()),
		zap.Strings("applied_promos", promos.Applied),
	)

	if err := s.orders.Insert(ctx, o); err != nil {
		return nil, errors.Wrap(err, "insert order")
	}

	return o, nil
}

// Get returns an order by id with customer and restaurant names resolved for
// display. Pricing is never recomputed on read.
func (s *Service) Get(ctx context.Context, id string) (*Order, error) {
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fault.NotFound("Order")
		}
		return nil, errors.Wrapf(err, "get order %s", id)
	}
	return o, nil
}
