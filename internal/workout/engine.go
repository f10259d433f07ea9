package workout

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/myrjola/sixsplit/internal/split"
)

// Engine generates and mutates sessions. It holds only immutable reference data, a clock and an
// identifier source; all other state is passed in and returned.
type Engine struct {
	catalog *split.Catalog
	plan    split.Plan
	now     func() time.Time
	newID   func(prefix string) string
}

// NewEngine creates an engine over catalog and plan using the wall clock.
func NewEngine(catalog *split.Catalog, plan split.Plan) *Engine {
	e := newEngine(catalog, plan, time.Now, nil)
	e.newID = func(prefix string) string { return newID(prefix, e.now()) }
	return e
}

func newEngine(catalog *split.Catalog, plan split.Plan, now func() time.Time, id func(string) string) *Engine {
	return &Engine{
		catalog: catalog,
		plan:    plan,
		now:     now,
		newID:   id,
	}
}

// Plan returns the day templates the engine generates from.
func (e *Engine) Plan() split.Plan {
	return e.plan
}

// newID returns prefix-<unix millis of now>-<random>. The random part makes ids created in the
// same millisecond distinct.
func newID(prefix string, now time.Time) string {
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteByte('-')
	b.WriteString(strconv.FormatInt(now.UnixMilli(), 36))
	b.WriteByte('-')
	b.WriteString(uuid.NewString())
	return b.String()
}

// isLastDay reports whether dayIndex closes the cycle.
func (e *Engine) isLastDay(dayIndex int) bool {
	return dayIndex == e.plan.LastDayIndex()
}
