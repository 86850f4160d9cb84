package domain

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

func TestCycleSynthesizer_ThreeDayCycle(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, time.March, 14, 15, 9, 26, 0, time.UTC))
	s := NewCycleSynthesizer(3, clock)

	today := time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC)
	want := []time.Time{
		today,
		today.AddDate(0, 0, 1),
		today.AddDate(0, 0, 2),
		today,
		today.AddDate(0, 0, 1),
	}
	for position, expected := range want {
		assert.Equal(t, expected, s.DateFor(position), "position %d", position)
	}
}

func TestCycleSynthesizer_TruncatesToMidnightUTC(t *testing.T) {
	loc := time.FixedZone("CST", 8*60*60)
	clock := clockwork.NewFakeClockAt(time.Date(2026, time.March, 15, 2, 30, 0, 0, loc))
	s := NewCycleSynthesizer(3, clock)

	// 02:30 CST on the 15th is 18:30 UTC on the 14th.
	assert.Equal(t, time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC), s.Today())
}

func TestNewCycleSynthesizer_Defaults(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC))

	s := NewCycleSynthesizer(0, clock)
	assert.Equal(t, s.DateFor(0), s.DateFor(DefaultCycleDays))

	// Nil clock must not panic; it falls back to real time.
	wall := NewCycleSynthesizer(3, nil)
	assert.False(t, wall.DateFor(0).IsZero())
}
