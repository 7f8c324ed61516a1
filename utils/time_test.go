package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayStartCrossesDateLine(t *testing.T) {
	kolkata, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	// 20:30 UTC is already the next day in Kolkata (+05:30).
	utc := time.Date(2026, 8, 29, 20, 30, 0, 0, time.UTC)

	start := DayStart(utc, kolkata)
	assert.Equal(t, 2026, start.Year())
	assert.Equal(t, time.August, start.Month())
	assert.Equal(t, 30, start.Day())
	assert.Equal(t, 0, start.Hour())

	assert.Equal(t, "2026-08-30", DateKey(utc, kolkata))
	assert.Equal(t, "2026-08-29", DateKey(utc, time.UTC))
}

func TestLoadLocationFallsBackToUTC(t *testing.T) {
	assert.Equal(t, time.UTC, LoadLocation(""))
	assert.Equal(t, time.UTC, LoadLocation("Not/AZone"))

	loc := LoadLocation("Asia/Kolkata")
	assert.Equal(t, "Asia/Kolkata", loc.String())
}
