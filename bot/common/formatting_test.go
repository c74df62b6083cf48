package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatPoints(t *testing.T) {
	assert.Equal(t, "0", FormatPoints(0))
	assert.Equal(t, "999", FormatPoints(999))
	assert.Equal(t, "1,000", FormatPoints(1000))
	assert.Equal(t, "1,234,567", FormatPoints(1234567))
}

func TestFormatBudget(t *testing.T) {
	assert.Equal(t, "100", FormatBudget(100))
	assert.Equal(t, "0", FormatBudget(0))
	assert.Equal(t, "37.50", FormatBudget(37.5))
}

func TestFormatOdds(t *testing.T) {
	assert.Equal(t, "2.10", FormatOdds(2.1))
	assert.Equal(t, "1.00", FormatOdds(1))
}

func TestFormatFixture(t *testing.T) {
	assert.Equal(t, "Lions vs Wolves", FormatFixture("Lions", "Wolves", nil, nil))

	one, three := 1, 3
	assert.Equal(t, "Lions 1 : 3 Wolves", FormatFixture("Lions", "Wolves", &one, &three))
}

func TestFormatMatchDay(t *testing.T) {
	assert.Equal(t, "Saturday, 14 June 2025", FormatMatchDay("2025-06-14"))
	assert.Equal(t, "not-a-date", FormatMatchDay("not-a-date"))
}

func TestFormatDiscordTimestamp(t *testing.T) {
	ts := time.Date(2025, 6, 14, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, "<t:1749931200:R>", FormatDiscordTimestamp(ts, "R"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "exact", Truncate("exact", 5))
	assert.Equal(t, "long…", Truncate("longer", 5))
}
