package postgres

import (
	"context"
	"encoding/json"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dishpatch/order-api/internal/domain/order"
)

const (
	insertOrderSQL = `INSERT INTO orders
		(id, customer_id, restaurant_id, items, base_price, delivery_fee, promo_discount, final_total, breakdown, placed_at, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at`

	getOrderByIDSQL = `SELECT o.id, o.customer_id, o.restaurant_id, c.name, r.name,
		o.items, o.base_price, o.delivery_fee, o.promo_discount, o.final_total,
		o.breakdown, o.placed_at, o.status, o.created_at
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		JOIN restaurants r ON r.id = o.restaurant_id
		WHERE o.id = $1`
)

var _ order.Repository = (*OrderRepository)(nil)

// OrderRepository implements order.Repository backed by PostgreSQL.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns an OrderRepository that uses the given pool.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Insert persists a new order in a single statement. Line items and the
// pricing breakdown are serialized to JSONB columns.
func (r *OrderRepository) Insert(ctx context.Context, o *order.Order) error {
	itemsJSON, err := json.Marshal(o.Items)
	if err != nil {
		return errors.Wrap(err, "marshal order items")
	}
	breakdownJSON, err := json.Marshal(o.Breakdown)
	if err != nil {
		return errors.Wrap(err, "marshal order breakdown")
	}

	err = r.pool.QueryRow(ctx, insertOrderSQL,
		o.ID, o.CustomerID, o.RestaurantID,
		itemsJSON, o.BasePrice, o.DeliveryFee, o.PromoDiscount, o.FinalTotal,
		breakdownJSON, o.PlacedAt, string(o.Status),
	).Scan(&o.CreatedAt)
	if err != nil {
		return errors.Wrapf(err, "insert order %q", o.ID)
	}
	return nil
}

// GetByID returns an order with the customer and restaurant names resolved
// for display.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*order.Order, error) {
	var (
		o             order.Order
		itemsJSON     []byte
		breakdownJSON []byte
	)
	err := r.pool.QueryRow(ctx, getOrderByIDSQL, id).Scan(
		&o.ID, &o.CustomerID, &o.RestaurantID, &o.CustomerName, &o.RestaurantName,
		&itemsJSON, &o.BasePrice, &o.DeliveryFee, &o.PromoDiscount, &o.FinalTotal,
		&breakdownJSON, &o.PlacedAt, &o.Status, &o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrNotFound
		}
		return nil, errors.Wrapf(err, "get order %q", id)
	}

	if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
		return nil, errors.Wrapf(err, "unmarshal items of order %q", id)
	}
	if err := json.Unmarshal(breakdownJSON, &o.Breakdown); err != nil {
		return nil, errors.Wrapf(err, "unmarshal breakdown of order %q", id)
	}
	return &o, nil
}
