package postgres

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dishpatch/order-api/internal/domain/restaurant"
)

const getRestaurantByIDSQL = `SELECT id, name, lat, lng, zone, cuisine
	FROM restaurants WHERE id = $1`

var _ restaurant.Repository = (*RestaurantRepository)(nil)

// RestaurantRepository implements restaurant.Repository backed by PostgreSQL.
type RestaurantRepository struct {
	pool *pgxpool.Pool
}

// NewRestaurantRepository returns a RestaurantRepository that uses the given pool.
func NewRestaurantRepository(pool *pgxpool.Pool) *RestaurantRepository {
	return &RestaurantRepository{pool: pool}
}

// GetByID returns a single restaurant by its identifier.
func (r *RestaurantRepository) GetByID(ctx context.Context, id string) (*restaurant.Restaurant, error) {
	rows, err := r.pool.Query(ctx, getRestaurantByIDSQL, id)
	if err != nil {
		return nil, errors.Wrapf(err, "get restaurant %q", id)
	}

	rest, err := pgx.CollectExactlyOneRow(rows, scanRestaurant)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, restaurant.ErrNotFound
		}
		return nil, errors.Wrapf(err, "get restaurant %q", id)
	}
	return &rest, nil
}

func scanRestaurant(row pgx.CollectableRow) (restaurant.Restaurant, error) {
	var rest restaurant.Restaurant
	err := row.Scan(
		&rest.ID, &rest.Name,
		&rest.Location.Lat, &rest.Location.Lng,
		&rest.Zone, &rest.Cuisine,
	)
	return rest, err
}
