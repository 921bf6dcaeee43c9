// Package pricing computes delivery fees from distance, zone fee structures,
// and time-of-day surge multipliers.
package pricing

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrZoneNotFound is returned when a delivery zone has no fee structure.
// Pricing without one would silently undercharge, so this is fatal for the
// order rather than defaulted to zero.
var ErrZoneNotFound = errors.New("delivery zone not found")

// Zone is the fee structure of a delivery-pricing region.
type Zone struct {
	Name      string
	BaseFee   decimal.Decimal
	PerKmRate decimal.Decimal
}

// ZoneRepository resolves a zone name to its fee structure.
type ZoneRepository interface {
	GetByName(ctx context.Context, name string) (*Zone, error)
}
