package pricing

import (
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// PeakRule maps a half-open UTC hour interval [Start, End) to a delivery-fee
// surge multiplier.
type PeakRule struct {
	Start      int
	End        int
	Multiplier decimal.Decimal
}

// Schedule is a static table of peak rules, loaded once at startup and never
// mutated at request time.
type Schedule struct {
	rules []PeakRule
}

// NewSchedule validates the given rules and returns a Schedule. Hours must
// satisfy 0 <= Start < End <= 24 and multipliers must be positive.
func NewSchedule(rules []PeakRule) (*Schedule, error) {
	for _, r := range rules {
		if r.Start < 0 || r.End > 24 || r.Start >= r.End {
			return nil, errors.Errorf("invalid peak rule hours [%d, %d)", r.Start, r.End)
		}
		if !r.Multiplier.IsPositive() {
			return nil, errors.Errorf("invalid peak multiplier %s for [%d, %d)", r.Multiplier, r.Start, r.End)
		}
	}
	return &Schedule{rules: rules}, nil
}

// Multiplier returns the surge multiplier for the first rule whose interval
// contains the UTC hour of t, or 1 when no rule matches.
func (s *Schedule) Multiplier(t time.Time) decimal.Decimal {
	hour := t.UTC().Hour()
	for _, r := range s.rules {
		if hour >= r.Start && hour < r.End {
			return r.Multiplier
		}
	}
	return decimal.NewFromInt(1)
}
