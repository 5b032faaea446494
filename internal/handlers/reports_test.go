package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReportWindows(t *testing.T) {
	// Wednesday 2026-01-07 15:04:05 UTC
	now := time.Date(2026, 1, 7, 15, 4, 5, 0, time.UTC)
	dayStart, weekStart := reportWindows(now)

	assert.Equal(t, time.Date(2026, 1, 7, 0, 0, 0, 0, time.UTC), dayStart)
	// Week starts on the preceding Sunday.
	assert.Equal(t, time.Date(2026, 1, 4, 0, 0, 0, 0, time.UTC), weekStart)
}

func TestReportWindowsOnSunday(t *testing.T) {
	now := time.Date(2026, 1, 4, 9, 0, 0, 0, time.UTC)
	dayStart, weekStart := reportWindows(now)

	assert.Equal(t, dayStart, weekStart, "a Sunday is its own week start")
}
