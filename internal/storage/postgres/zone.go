package postgres

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dishpatch/order-api/internal/domain/pricing"
)

const getZoneByNameSQL = `SELECT zone, base_fee, per_km_rate
	FROM delivery_zones WHERE zone = $1`

var _ pricing.ZoneRepository = (*ZoneRepository)(nil)

// ZoneRepository implements pricing.ZoneRepository backed by PostgreSQL.
type ZoneRepository struct {
	pool *pgxpool.Pool
}

// NewZoneRepository returns a ZoneRepository that uses the given pool.
func NewZoneRepository(pool *pgxpool.Pool) *ZoneRepository {
	return &ZoneRepository{pool: pool}
}

// GetByName returns the fee structure for the named delivery zone.
func (r *ZoneRepository) GetByName(ctx context.Context, name string) (*pricing.Zone, error) {
	rows, err := r.pool.Query(ctx, getZoneByNameSQL, name)
	if err != nil {
		return nil, errors.Wrapf(err, "get zone %q", name)
	}

	z, err := pgx.CollectExactlyOneRow(rows, func(row pgx.CollectableRow) (pricing.Zone, error) {
		var z pricing.Zone
		err := row.Scan(&z.Name, &z.BaseFee, &z.PerKmRate)
		return z, err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pricing.ErrZoneNotFound
		}
		return nil, errors.Wrapf(err, "get zone %q", name)
	}
	return &z, nil
}
