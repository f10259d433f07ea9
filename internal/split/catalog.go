package split

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DaysPerCycle is the number of day templates in a plan. One cycle is one traversal of them.
const DaysPerCycle = 6

var (
	//go:embed catalog.yaml
	defaultCatalog []byte

	//go:embed plan.yaml
	defaultPlan []byte
)

// ErrInvalidData is returned when reference data violates its invariants.
var ErrInvalidData = errors.New("invalid reference data")

// Exercise is an immutable catalog entry.
type Exercise struct {
	ID          string      `json:"id"          yaml:"id"`
	Name        string      `json:"name"        yaml:"name"`
	MuscleGroup MuscleGroup `json:"muscleGroup" yaml:"muscle_group"`
	SubGroup    SubGroup    `json:"subGroup"    yaml:"sub_group"`
}

// Catalog is the immutable set of exercises the engine selects from.
type Catalog struct {
	exercises []Exercise
	byID      map[string]int
}

// NewCatalog validates exercises and builds a catalog preserving their order.
func NewCatalog(exercises []Exercise) (*Catalog, error) {
	c := &Catalog{
		exercises: make([]Exercise, 0, len(exercises)),
		byID:      make(map[string]int, len(exercises)),
	}
	var errs []error
	for i, ex := range exercises {
		if err := validateExercise(ex); err != nil {
			errs = append(errs, fmt.Errorf("exercise %d: %w", i, err))
			continue
		}
		if _, ok := c.byID[ex.ID]; ok {
			errs = append(errs, fmt.Errorf("%w: duplicate exercise id %q", ErrInvalidData, ex.ID))
			continue
		}
		c.byID[ex.ID] = len(c.exercises)
		c.exercises = append(c.exercises, ex)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return c, nil
}

func validateExercise(ex Exercise) error {
	if ex.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidData)
	}
	if strings.TrimSpace(ex.Name) == "" {
		return fmt.Errorf("%w: exercise %q has no name", ErrInvalidData, ex.ID)
	}
	if !ex.MuscleGroup.Valid() {
		return fmt.Errorf("%w: exercise %q has unknown muscle group %q", ErrInvalidData, ex.ID, ex.MuscleGroup)
	}
	if ex.SubGroup.MuscleGroup() != ex.MuscleGroup {
		return fmt.Errorf("%w: exercise %q sub-group %q is not part of %s",
			ErrInvalidData, ex.ID, ex.SubGroup, ex.MuscleGroup)
	}
	return nil
}

// Exercises returns a copy of all exercises in catalog order.
func (c *Catalog) Exercises() []Exercise {
	out := make([]Exercise, len(c.exercises))
	copy(out, c.exercises)
	return out
}

// Len returns the number of exercises.
func (c *Catalog) Len() int {
	return len(c.exercises)
}

// Lookup returns the exercise with the given id.
func (c *Catalog) Lookup(id string) (Exercise, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Exercise{}, false
	}
	return c.exercises[i], true
}

// Filter returns the exercises of group, narrowed to sub unless it is SubGroupAny, in catalog order.
func (c *Catalog) Filter(group MuscleGroup, sub SubGroup) []Exercise {
	var out []Exercise
	for _, ex := range c.exercises {
		if ex.MuscleGroup != group {
			continue
		}
		if sub != SubGroupAny && ex.SubGroup != sub {
			continue
		}
		out = append(out, ex)
	}
	return out
}

// Requirement asks for Count slots of MuscleGroup. When SubGroups is set it holds one sub-group per slot.
type Requirement struct {
	MuscleGroup MuscleGroup `yaml:"muscle_group"`
	Count       int         `yaml:"count"`
	SubGroups   []SubGroup  `yaml:"sub_groups,omitempty"`
}

// Day is one template of the split.
type Day struct {
	Title        string        `yaml:"title"`
	Requirements []Requirement `yaml:"requirements"`
}

// Name returns the short name of the day, e.g. "Push" for "Day 1 – Push (Chest, Triceps, Shoulders)".
func (d Day) Name() string {
	rest := d.Title
	if _, after, ok := strings.Cut(rest, " – "); ok {
		rest = after
	}
	name, _, _ := strings.Cut(rest, " (")
	return name
}

// Focus returns the parenthesised muscle list of the title, e.g. "Chest, Triceps, Shoulders".
func (d Day) Focus() string {
	_, after, ok := strings.Cut(d.Title, " (")
	if !ok {
		return ""
	}
	return strings.TrimSuffix(after, ")")
}

// Slots returns the number of slots the day nominally specifies.
func (d Day) Slots() int {
	n := 0
	for _, req := range d.Requirements {
		n += req.Count
	}
	return n
}

// Plan is the ordered list of day templates.
type Plan struct {
	Days []Day `yaml:"days"`
}

// NewPlan validates days and returns the plan.
func NewPlan(days []Day) (Plan, error) {
	if len(days) != DaysPerCycle {
		return Plan{}, fmt.Errorf("%w: plan has %d days, want %d", ErrInvalidData, len(days), DaysPerCycle)
	}
	var errs []error
	for i, day := range days {
		if strings.TrimSpace(day.Title) == "" {
			errs = append(errs, fmt.Errorf("%w: day %d has no title", ErrInvalidData, i))
		}
		for j, req := range day.Requirements {
			if err := validateRequirement(req); err != nil {
				errs = append(errs, fmt.Errorf("day %d requirement %d: %w", i, j, err))
			}
		}
	}
	if len(errs) > 0 {
		return Plan{}, errors.Join(errs...)
	}
	return Plan{Days: days}, nil
}

func validateRequirement(req Requirement) error {
	if !req.MuscleGroup.Valid() {
		return fmt.Errorf("%w: unknown muscle group %q", ErrInvalidData, req.MuscleGroup)
	}
	if req.Count < 1 {
		return fmt.Errorf("%w: count %d must be positive", ErrInvalidData, req.Count)
	}
	if req.SubGroups == nil {
		return nil
	}
	if len(req.SubGroups) != req.Count {
		return fmt.Errorf("%w: %d sub-groups for count %d", ErrInvalidData, len(req.SubGroups), req.Count)
	}
	for _, sub := range req.SubGroups {
		if sub.MuscleGroup() != req.MuscleGroup {
			return fmt.Errorf("%w: sub-group %q is not part of %s", ErrInvalidData, sub, req.MuscleGroup)
		}
	}
	return nil
}

// LastDayIndex returns the index of the day that closes a cycle.
func (p Plan) LastDayIndex() int {
	return len(p.Days) - 1
}

// Day returns the template at index i.
func (p Plan) Day(i int) (Day, bool) {
	if i < 0 || i >= len(p.Days) {
		return Day{}, false
	}
	return p.Days[i], true
}

// LoadCatalog parses a YAML catalog document.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	var doc struct {
		Exercises []Exercise `yaml:"exercises"`
	}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	catalog, err := NewCatalog(doc.Exercises)
	if err != nil {
		return nil, fmt.Errorf("validate catalog: %w", err)
	}
	return catalog, nil
}

// LoadPlan parses a YAML plan document.
func LoadPlan(r io.Reader) (Plan, error) {
	var doc Plan
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return Plan{}, fmt.Errorf("decode plan: %w", err)
	}
	plan, err := NewPlan(doc.Days)
	if err != nil {
		return Plan{}, fmt.Errorf("validate plan: %w", err)
	}
	return plan, nil
}

// Default returns the embedded catalog and plan.
func Default() (*Catalog, Plan, error) {
	catalog, err := LoadCatalog(bytes.NewReader(defaultCatalog))
	if err != nil {
		return nil, Plan{}, fmt.Errorf("load embedded catalog: %w", err)
	}
	plan, err := LoadPlan(bytes.NewReader(defaultPlan))
	if err != nil {
		return nil, Plan{}, fmt.Errorf("load embedded plan: %w", err)
	}
	return catalog, plan, nil
}

// LoadFiles loads the catalog and plan from the given paths. An empty path selects the embedded data.
func LoadFiles(catalogPath, planPath string) (*Catalog, Plan, error) {
	catalogData, planData := defaultCatalog, defaultPlan
	var err error
	if catalogPath != "" {
		if catalogData, err = os.ReadFile(catalogPath); err != nil {
			return nil, Plan{}, fmt.Errorf("read catalog: %w", err)
		}
	}
	if planPath != "" {
		if planData, err = os.ReadFile(planPath); err != nil {
			return nil, Plan{}, fmt.Errorf("read plan: %w", err)
		}
	}
	catalog, err := LoadCatalog(bytes.NewReader(catalogData))
	if err != nil {
		return nil, Plan{}, err
	}
	plan, err := LoadPlan(bytes.NewReader(planData))
	if err != nil {
		return nil, Plan{}, err
	}
	return catalog, plan, nil
}
