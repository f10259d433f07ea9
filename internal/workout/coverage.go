package workout

import (
	"time"

	"github.com/myrjola/sixsplit/internal/split"
)

// Coverage tells which mandatory sub-groups the completed sessions of the current cycle contain.
type Coverage struct {
	Traps     bool
	RearDelts bool
}

// Covered reports whether sub has been trained this cycle. Non-mandatory sub-groups always count
// as covered.
func (c Coverage) Covered(sub split.SubGroup) bool {
	switch sub { //nolint:exhaustive // only the mandatory sub-groups are tracked.
	case split.Traps:
		return c.Traps
	case split.RearDelts:
		return c.RearDelts
	default:
		return true
	}
}

// Missing returns the mandatory sub-groups not yet covered, in split.MandatorySubGroups order.
func (c Coverage) Missing() []split.SubGroup {
	var out []split.SubGroup
	for _, sub := range split.MandatorySubGroups {
		if !c.Covered(sub) {
			out = append(out, sub)
		}
	}
	return out
}

// CheckWeeklyRequirement scans the completed sessions dated at or after cycleStart.
func CheckWeeklyRequirement(sessions []Session, cycleStart time.Time) Coverage {
	var c Coverage
	for _, s := range sessions {
		if !s.InCycle(cycleStart) {
			continue
		}
		for _, ex := range s.Exercises {
			switch ex.SubGroup { //nolint:exhaustive // only the mandatory sub-groups are tracked.
			case split.Traps:
				c.Traps = true
			case split.RearDelts:
				c.RearDelts = true
			}
		}
	}
	return c
}

// InCycle reports whether s is a completed session of the cycle that started at cycleStart.
// The boundary is inclusive.
func (s Session) InCycle(cycleStart time.Time) bool {
	return s.IsCompleted && !s.Date.Before(cycleStart)
}
