package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestEffectiveStatus(t *testing.T) {
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		stored GiveawayStatus
		now    time.Time
		want   GiveawayStatus
	}{
		{"before window", GiveawayStatusActive, start.Add(-time.Hour), GiveawayStatusDraft},
		{"at start", GiveawayStatusActive, start, GiveawayStatusActive},
		{"inside window", GiveawayStatusActive, start.Add(24 * time.Hour), GiveawayStatusActive},
		{"at end", GiveawayStatusActive, end, GiveawayStatusActive},
		{"after window", GiveawayStatusActive, end.Add(time.Hour), GiveawayStatusEnded},
		{"drawn is sticky before window", GiveawayStatusDrawn, start.Add(-time.Hour), GiveawayStatusDrawn},
		{"drawn is sticky inside window", GiveawayStatusDrawn, start.Add(time.Hour), GiveawayStatusDrawn},
		{"cancelled is sticky", GiveawayStatusCancelled, start.Add(time.Hour), GiveawayStatusCancelled},
		{"cancelled after window", GiveawayStatusCancelled, end.Add(time.Hour), GiveawayStatusCancelled},
		{"stored ended inside window displays active", GiveawayStatusEnded, start.Add(time.Hour), GiveawayStatusActive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EffectiveStatus(tt.stored, tt.now, start, end)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestIsOpenForEntry(t *testing.T) {
	g := &Giveaway{
		StartAt: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		EndAt:   time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC),
		Status:  GiveawayStatusActive,
	}

	require.False(t, g.IsOpenForEntry(g.StartAt.Add(-time.Minute)))
	require.True(t, g.IsOpenForEntry(g.StartAt.Add(time.Minute)))
	require.False(t, g.IsOpenForEntry(g.EndAt.Add(time.Minute)))

	g.Status = GiveawayStatusCancelled
	require.False(t, g.IsOpenForEntry(g.StartAt.Add(time.Minute)))
}
