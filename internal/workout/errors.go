package workout

import "github.com/myrjola/sixsplit/internal/errors"

// Every engine error is recoverable. A blocked operation leaves its input unchanged.
var (
	ErrInvalidDay       = errors.NewSentinel("day index outside the plan")
	ErrLogNotFound      = errors.NewSentinel("exercise log not found")
	ErrWeightRequired   = errors.NewSentinel("a set needs a positive weight")
	ErrInvalidReps      = errors.NewSentinel("repetitions must be positive")
	ErrSetNotFound      = errors.NewSentinel("set not found")
	ErrNoAlternative    = errors.NewSentinel("no alternative exercise available")
	ErrMandatoryLocked  = errors.NewSentinel("mandatory exercise is locked on the last day of the cycle")
	ErrInvalidChoice    = errors.NewSentinel("no such exercise option")
	ErrNothingLogged    = errors.NewSentinel("log at least one set to complete the workout")
	ErrNoActiveWorkout  = errors.NewSentinel("no active workout")
	ErrActiveInProgress = errors.NewSentinel("another workout with logged sets is in progress")
)
