// Command seed-db loads reference data (delivery zones, customers,
// restaurants, menu items, promotions) from a fixtures file into PostgreSQL.
// Fixtures may be plain JSON or gzip-compressed (.json.gz).
package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/go-faster/errors"
	"github.com/klauspost/pgzip"
	"github.com/shopspring/decimal"

	"github.com/dishpatch/order-api/internal/domain/customer"
	"github.com/dishpatch/order-api/internal/domain/geo"
	"github.com/dishpatch/order-api/internal/domain/menu"
	"github.com/dishpatch/order-api/internal/domain/pricing"
	"github.com/dishpatch/order-api/internal/domain/promo"
	"github.com/dishpatch/order-api/internal/domain/restaurant"
	"github.com/dishpatch/order-api/internal/storage/postgres"
)

type fixtures struct {
	Zones       []zoneJSON       `json:"zones"`
	Customers   []customerJSON   `json:"customers"`
	Restaurants []restaurantJSON `json:"restaurants"`
	MenuItems   []menuItemJSON   `json:"menuItems"`
	Promotions  []promotionJSON  `json:"promotions"`
}

type zoneJSON struct {
	Zone      string          `json:"zone"`
	BaseFee   decimal.Decimal `json:"baseFee"`
	PerKmRate decimal.Decimal `json:"perKmRate"`
}

type customerJSON struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Email               string    `json:"email"`
	Location            geo.Point `json:"location"`
	Zone                string    `json:"zone"`
	FirstOrderCompleted bool      `json:"firstOrderCompleted"`
}

type restaurantJSON struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Location geo.Point `json:"location"`
	Zone     string    `json:"zone"`
	Cuisine  string    `json:"cuisine"`
}

type menuItemJSON struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	RestaurantID string          `json:"restaurantId"`
}

type promotionJSON struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Kind         string          `json:"kind"`
	RestaurantID string          `json:"restaurantId"`
	Zone         string          `json:"zone"`
	Discount     decimal.Decimal `json:"discount"`
	Flat         decimal.Decimal `json:"flat"`
	Active       bool            `json:"active"`
}

func main() {
	var (
		databaseURL  string
		fixturesFile string
	)

	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.StringVar(&fixturesFile, "fixtures-file", "db/seed/fixtures.json", "path to fixtures JSON file (.json or .json.gz)")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, databaseURL, fixturesFile); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("seed completed successfully")
}

func run(ctx context.Context, databaseURL, fixturesFile string) error {
	fx, err := loadFixtures(fixturesFile)
	if err != nil {
		return errors.Wrap(err, "load fixtures")
	}

	slog.Info("connecting to database")

	pool, err := postgres.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	slog.Info("running migrations")

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	seeder := postgres.NewSeeder(pool)

	for _, z := range fx.Zones {
		err := seeder.UpsertZone(ctx, pricing.Zone{
			Name:      z.Zone,
			BaseFee:   z.BaseFee,
			PerKmRate: z.PerKmRate,
		})
		if err != nil {
			return err
		}
	}
	slog.Info("upserted zones", slog.Int("count", len(fx.Zones)))

	for _, c := range fx.Customers {
		err := seeder.UpsertCustomer(ctx, customer.Customer{
			ID:                  c.ID,
			Name:                c.Name,
			Email:               c.Email,
			Location:            c.Location,
			Zone:                c.Zone,
			FirstOrderCompleted: c.FirstOrderCompleted,
		})
		if err != nil {
			return err
		}
	}
	slog.Info("upserted customers", slog.Int("count", len(fx.Customers)))

	for _, r := range fx.Restaurants {
		err := seeder.UpsertRestaurant(ctx, restaurant.Restaurant{
			ID:       r.ID,
			Name:     r.Name,
			Location: r.Location,
			Zone:     r.Zone,
			Cuisine:  r.Cuisine,
		})
		if err != nil {
			return err
		}
	}
	slog.Info("upserted restaurants", slog.Int("count", len(fx.Restaurants)))

	for _, m := range fx.MenuItems {
		err := seeder.UpsertMenuItem(ctx, menu.Item{
			ID:           m.ID,
			Name:         m.Name,
			Price:        m.Price,
			RestaurantID: m.RestaurantID,
		})
		if err != nil {
			return err
		}
	}
	slog.Info("upserted menu items", slog.Int("count", len(fx.MenuItems)))

	for _, p := range fx.Promotions {
		err := seeder.UpsertPromotion(ctx, promo.Promotion{
			ID:           p.ID,
			Name:         p.Name,
			Kind:         promo.Kind(p.Kind),
			RestaurantID: p.RestaurantID,
			Zone:         p.Zone,
			Discount:     p.Discount,
			Flat:         p.Flat,
			Active:       p.Active,
		})
		if err != nil {
			return err
		}
	}
	slog.Info("upserted promotions", slog.Int("count", len(fx.Promotions)))

	return nil
}

func loadFixtures(path string) (*fixtures, error) {
	slog.Info("reading fixtures file", slog.String("path", path))

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open fixtures file")
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := pgzip.NewReader(f)
		if err != nil {
			return nil, errors.Wrap(err, "open gzip stream")
		}
		defer gz.Close()
		r = gz
	}

	var fx fixtures
	if err := json.NewDecoder(r).Decode(&fx); err != nil {
		return nil, errors.Wrap(err, "parse fixtures JSON")
	}
	return &fx, nil
}
