package postgres

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/dishpatch/order-api/internal/domain/menu"
)

const (
	listMenuItemsSQL = `SELECT id, name, price, restaurant_id
		FROM menu_items ORDER BY id`

	getMenuItemsByIDsSQL = `SELECT id, name, price, restaurant_id
		FROM menu_items WHERE id = ANY($1)`
)

var _ menu.Repository = (*MenuRepository)(nil)

// MenuRepository implements menu.Repository backed by PostgreSQL.
type MenuRepository struct {
	pool *pgxpool.Pool
}

// NewMenuRepository returns a MenuRepository that uses the given pool.
func NewMenuRepository(pool *pgxpool.Pool) *MenuRepository {
	return &MenuRepository{pool: pool}
}

// List returns all menu items ordered by ID.
func (r *MenuRepository) List(ctx context.Context) ([]menu.Item, error) {
	rows, err := r.pool.Query(ctx, listMenuItemsSQL)
	if err != nil {
		return nil, errors.Wrap(err, "list menu items")
	}
	return pgx.CollectRows(rows, scanMenuItem)
}

// GetByIDs returns the menu items matching any of the given IDs. Missing ids
// are simply absent from the result.
func (r *MenuRepository) GetByIDs(ctx context.Context, ids []string) ([]menu.Item, error) {
	rows, err := r.pool.Query(ctx, getMenuItemsByIDsSQL, ids)
	if err != nil {
		return nil, errors.Wrap(err, "get menu items by ids")
	}
	return pgx.CollectRows(rows, scanMenuItem)
}

func scanMenuItem(row pgx.CollectableRow) (menu.Item, error) {
	var (
		it    menu.Item
		price decimal.Decimal
	)
	err := row.Scan(&it.ID, &it.Name, &price, &it.RestaurantID)
	it.Price = price
	return it, err
}
