package app

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeakSchedule_Defaults(t *testing.T) {
	cfg := &Config{PeakRules: []string{"11-14=1.2", "18-22=1.4"}}

	schedule, err := cfg.PeakSchedule()
	require.NoError(t, err)

	noon := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	assert.True(t, schedule.Multiplier(noon).Equal(decimal.RequireFromString("1.2")))

	evening := time.Date(2026, 3, 1, 19, 30, 0, 0, time.UTC)
	assert.True(t, schedule.Multiplier(evening).Equal(decimal.RequireFromString("1.4")))

	offPeak := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	assert.True(t, schedule.Multiplier(offPeak).Equal(decimal.NewFromInt(1)))
}

func TestPeakSchedule_MalformedRule(t *testing.T) {
	for _, raw := range []string{"11-14", "eleven-14=1.2", "11=1.2", "11-14=fast"} {
		cfg := &Config{PeakRules: []string{raw}}
		_, err := cfg.PeakSchedule()
		assert.Error(t, err, "rule %q should be rejected", raw)
	}
}

func TestPeakSchedule_InvalidWindow(t *testing.T) {
	// Parseable but semantically invalid windows are rejected by the schedule.
	cfg := &Config{PeakRules: []string{"14-11=1.2"}}
	_, err := cfg.PeakSchedule()
	assert.Error(t, err)
}
