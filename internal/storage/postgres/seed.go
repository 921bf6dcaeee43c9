package postgres

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dishpatch/order-api/internal/domain/customer"
	"github.com/dishpatch/order-api/internal/domain/menu"
	"github.com/dishpatch/order-api/internal/domain/pricing"
	"github.com/dishpatch/order-api/internal/domain/promo"
	"github.com/dishpatch/order-api/internal/domain/restaurant"
)

// Seeder upserts reference data (zones, customers, restaurants, menu items,
// promotions). Used by the seed-db command and integration test setup.
type Seeder struct {
	pool *pgxpool.Pool
}

func NewSeeder(pool *pgxpool.Pool) *Seeder {
	return &Seeder{pool: pool}
}

func (s *Seeder) UpsertZone(ctx context.Context, z pricing.Zone) error {
	const q = `
		INSERT INTO delivery_zones (zone, base_fee, per_km_rate)
		VALUES ($1, $2, $3)
		ON CONFLICT (zone) DO UPDATE
		SET base_fee = EXCLUDED.base_fee, per_km_rate = EXCLUDED.per_km_rate`

	if _, err := s.pool.Exec(ctx, q, z.Name, z.BaseFee, z.PerKmRate); err != nil {
		return errors.Wrapf(err, "upsert zone %s", z.Name)
	}
	return nil
}

func (s *Seeder) UpsertCustomer(ctx context.Context, c customer.Customer) error {
	const q = `
		INSERT INTO customers (id, name, email, lat, lng, zone, first_order_completed)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, email = EXCLUDED.email,
		    lat = EXCLUDED.lat, lng = EXCLUDED.lng, zone = EXCLUDED.zone,
		    first_order_completed = EXCLUDED.first_order_completed`

	_, err := s.pool.Exec(ctx, q,
		c.ID, c.Name, c.Email, c.Location.Lat, c.Location.Lng, c.Zone, c.FirstOrderCompleted)
	if err != nil {
		return errors.Wrapf(err, "upsert customer %s", c.ID)
	}
	return nil
}

func (s *Seeder) UpsertRestaurant(ctx context.Context, r restaurant.Restaurant) error {
	const q = `
		INSERT INTO restaurants (id, name, lat, lng, zone, cuisine)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, lat = EXCLUDED.lat, lng = EXCLUDED.lng,
		    zone = EXCLUDED.zone, cuisine = EXCLUDED.cuisine`

	_, err := s.pool.Exec(ctx, q,
		r.ID, r.Name, r.Location.Lat, r.Location.Lng, r.Zone, r.Cuisine)
	if err != nil {
		return errors.Wrapf(err, "upsert restaurant %s", r.ID)
	}
	return nil
}

func (s *Seeder) UpsertMenuItem(ctx context.Context, item menu.Item) error {
	const q = `
		INSERT INTO menu_items (id, name, price, restaurant_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, price = EXCLUDED.price,
		    restaurant_id = EXCLUDED.restaurant_id`

	if _, err := s.pool.Exec(ctx, q, item.ID, item.Name, item.Price, item.RestaurantID); err != nil {
		return errors.Wrapf(err, "upsert menu item %s", item.ID)
	}
	return nil
}

func (s *Seeder) UpsertPromotion(ctx context.Context, p promo.Promotion) error {
	const q = `
		INSERT INTO promotions (id, name, kind, restaurant_id, zone, discount, flat, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, kind = EXCLUDED.kind,
		    restaurant_id = EXCLUDED.restaurant_id, zone = EXCLUDED.zone,
		    discount = EXCLUDED.discount, flat = EXCLUDED.flat,
		    active = EXCLUDED.active`

	_, err := s.pool.Exec(ctx, q,
		p.ID, p.Name, string(p.Kind), p.RestaurantID, p.Zone, p.Discount, p.Flat, p.Active)
	if err != nil {
		return errors.Wrapf(err, "upsert promotion %s", p.ID)
	}
	return nil
}
