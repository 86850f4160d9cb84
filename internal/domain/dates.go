package domain

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultCycleDays is the length of the synthetic date window. Positions
// repeat modulo this cycle, so five records span today, +1, +2, today, +1.
const DefaultCycleDays = 3

// DateSynthesizer assigns a display date to a record by its dense 0-based
// position in the enriched sequence. The upstream feed has no date
// dimension; implementations stand in until a real multi-day feed exists.
type DateSynthesizer interface {
	DateFor(position int) time.Time
}

// CycleSynthesizer produces today + (position mod cycle) days, with "today"
// truncated to midnight UTC. The clock is injectable so tests can freeze
// time with a clockwork fake.
type CycleSynthesizer struct {
	cycleDays int
	clock     clockwork.Clock
}

// NewCycleSynthesizer creates a synthesizer with the given cycle length.
// Non-positive cycleDays falls back to DefaultCycleDays; a nil clock falls
// back to real time.
func NewCycleSynthesizer(cycleDays int, clock clockwork.Clock) *CycleSynthesizer {
	if cycleDays <= 0 {
		cycleDays = DefaultCycleDays
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &CycleSynthesizer{cycleDays: cycleDays, clock: clock}
}

func (s *CycleSynthesizer) DateFor(position int) time.Time {
	return s.Today().AddDate(0, 0, position%s.cycleDays)
}

// Today returns the current date at midnight UTC.
func (s *CycleSynthesizer) Today() time.Time {
	now := s.clock.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
