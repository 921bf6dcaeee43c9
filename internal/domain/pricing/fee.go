package pricing

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/dishpatch/order-api/internal/domain/customer"
	"github.com/dishpatch/order-api/internal/domain/fault"
	"github.com/dishpatch/order-api/internal/domain/geo"
	"github.com/dishpatch/order-api/internal/domain/restaurant"
)

// Breakdown preserves every input to the delivery fee computation so the
// persisted order carries a full audit record.
type Breakdown struct {
	DistanceKm     float64
	ZoneBaseFee    decimal.Decimal
	PerKmRate      decimal.Decimal
	PeakMultiplier decimal.Decimal
	DeliveryFee    decimal.Decimal
}

// Calculator composes distance, zone fees, and the peak schedule into a
// delivery fee. It is pure computation over already-fetched data; the only
// failure path is zone resolution.
type Calculator struct {
	zones    ZoneRepository
	schedule *Schedule
	distance func(a, b geo.Point) float64
}

// NewCalculator creates a Calculator using the haversine distance function.
func NewCalculator(zones ZoneRepository, schedule *Schedule) *Calculator {
	return &Calculator{
		zones:    zones,
		schedule: schedule,
		distance: geo.DistanceKm,
	}
}

// Compute returns the delivery fee breakdown for an order from the restaurant
// to the customer placed at the given time:
//
//	fee = (zone.BaseFee + distance * zone.PerKmRate) * peakMultiplier
//
// A customer zone with no fee structure yields a not-found fault.
func (c *Calculator) Compute(ctx context.Context, cust *customer.Customer, rest *restaurant.Restaurant, placedAt time.Time) (Breakdown, error) {
	dist := c.distance(cust.Location, rest.Location)

	zone, err := c.zones.GetByName(ctx, cust.Zone)
	if err != nil {
		if errors.Is(err, ErrZoneNotFound) {
			return Breakdown{}, fault.NotFound("Delivery zone")
		}
		return Breakdown{}, errors.Wrapf(err, "resolve zone %q", cust.Zone)
	}

	peak := c.schedule.Multiplier(placedAt)

	raw := zone.BaseFee.Add(decimal.NewFromFloat(dist).Mul(zone.PerKmRate))
	fee := raw.Mul(peak).Round(2)

	return Breakdown{
		DistanceKm:     dist,
		ZoneBaseFee:    zone.BaseFee,
		PerKmRate:      zone.PerKmRate,
		PeakMultiplier: peak,
		DeliveryFee:    fee,
	}, nil
}
