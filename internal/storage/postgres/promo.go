package postgres

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dishpatch/order-api/internal/domain/promo"
)

// Active promotions are re-read for every order so a toggled flag takes
// effect immediately; id ordering keeps evaluation order stable.
const listActivePromotionsSQL = `SELECT id, name, kind, restaurant_id, zone, discount, flat, active
	FROM promotions WHERE active ORDER BY id`

var _ promo.Repository = (*PromoRepository)(nil)

// PromoRepository implements promo.Repository backed by PostgreSQL.
type PromoRepository struct {
	pool *pgxpool.Pool
}

// NewPromoRepository returns a PromoRepository that uses the given pool.
func NewPromoRepository(pool *pgxpool.Pool) *PromoRepository {
	return &PromoRepository{pool: pool}
}

// ListActive returns every promotion whose active flag is set.
func (r *PromoRepository) ListActive(ctx context.Context) ([]promo.Promotion, error) {
	rows, err := r.pool.Query(ctx, listActivePromotionsSQL)
	if err != nil {
		return nil, errors.Wrap(err, "list active promotions")
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (promo.Promotion, error) {
		var p promo.Promotion
		err := row.Scan(&p.ID, &p.Name, &p.Kind, &p.RestaurantID, &p.Zone, &p.Discount, &p.Flat, &p.Active)
		return p, err
	})
}
