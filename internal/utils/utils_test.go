package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMonthKeys(t *testing.T) {
	at := time.Date(2026, 9, 15, 12, 30, 0, 0, time.UTC)
	require.Equal(t, "2026-09", MonthKey(at))
	require.Equal(t, "2026-08", PreviousMonthKey(at))

	// Year boundary.
	jan := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	require.Equal(t, "2025-12", PreviousMonthKey(jan))
}

func TestDayKeyAndSameDay(t *testing.T) {
	morning := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 9, 1, 22, 0, 0, 0, time.UTC)
	nextDay := time.Date(2026, 9, 2, 0, 30, 0, 0, time.UTC)

	key := DayKey(morning)
	require.Equal(t, "2026-09-01", key)
	require.True(t, SameDay(key, evening))
	require.False(t, SameDay(key, nextDay))
	require.False(t, SameDay("", morning))
}
