// Package split holds the static reference data of the 6-day split: the exercise catalog, the day
// templates and the closed enumerations of muscle groups and sub-groups they are expressed in.
package split

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// MuscleGroup is the top-level body-region classification of an exercise.
type MuscleGroup string

// Muscle groups.
const (
	Chest      MuscleGroup = "Chest"
	Back       MuscleGroup = "Back"
	Biceps     MuscleGroup = "Biceps"
	Triceps    MuscleGroup = "Triceps"
	Shoulders  MuscleGroup = "Shoulders"
	Quads      MuscleGroup = "Quads"
	Hamstrings MuscleGroup = "Hamstrings"
	Glutes     MuscleGroup = "Glutes"
	Calves     MuscleGroup = "Calves"
	Abs        MuscleGroup = "Abs"
	Forearms   MuscleGroup = "Forearms"
)

// MuscleGroups lists every muscle group in catalog order.
func MuscleGroups() []MuscleGroup {
	return []MuscleGroup{Chest, Back, Biceps, Triceps, Shoulders, Quads, Hamstrings, Glutes, Calves, Abs, Forearms}
}

// SubGroup is the finer classification of an exercise within its muscle group.
type SubGroup string

// Sub-groups, grouped by the muscle group they are scoped under.
const (
	// SubGroupAny leaves the sub-group unconstrained in selections.
	SubGroupAny SubGroup = ""

	ChestUpper    SubGroup = "Upper"
	ChestMid      SubGroup = "Mid"
	ChestMidLower SubGroup = "Mid-Lower"
	ChestLower    SubGroup = "Lower"

	LatsUpper SubGroup = "Lats+Upper"
	LatsMid   SubGroup = "Lats+Mid"
	UpperBack SubGroup = "Upper Back"
	Lats      SubGroup = "Lats"
	Traps     SubGroup = "Traps"
	RearDelts SubGroup = "Rear Delts"

	BicepsLong  SubGroup = "Long"
	BicepsShort SubGroup = "Short"
	Brachialis  SubGroup = "Brachialis"

	LateralMedial         SubGroup = "Lateral+Medial"
	LongHead              SubGroup = "Long Head"
	AllHeads              SubGroup = "All Heads"
	LongHeadStretch       SubGroup = "Long Head (Stretch)"
	LongHeadConcentration SubGroup = "Long Head (Concentration)"

	SideDelt  SubGroup = "Side Delt"
	FrontDelt SubGroup = "Front Delt"

	QuadsMain            SubGroup = "Quads"
	HamstringsMain       SubGroup = "Hamstrings"
	GlutesMain           SubGroup = "Glutes"
	CalvesMain           SubGroup = "Calves"
	QuadsSupplement      SubGroup = "Quads (Supplement)"
	HamstringsSupplement SubGroup = "Hamstrings (Supplement)"

	UpperAbs   SubGroup = "Upper Abs"
	LowerAbs   SubGroup = "Lower Abs"
	Obliques   SubGroup = "Obliques"
	EntireCore SubGroup = "Entire Core"

	TopOfForearm    SubGroup = "Top of Forearm"
	InnerForearm    SubGroup = "Inner Forearm"
	Brachioradialis SubGroup = "Brachioradialis"
)

// MandatorySubGroups must each appear at least once per cycle. The generator injects the missing
// ones on the last day of the plan.
//
//nolint:gochecknoglobals // fixed rule of the split.
var MandatorySubGroups = []SubGroup{Traps, RearDelts}

// IsMandatory reports whether s is one of the MandatorySubGroups.
func (s SubGroup) IsMandatory() bool {
	switch s {
	case Traps, RearDelts:
		return true
	default:
		return false
	}
}

// SubGroups returns the sub-groups scoped under m, or nil for an unknown group.
func (m MuscleGroup) SubGroups() []SubGroup {
	switch m {
	case Chest:
		return []SubGroup{ChestUpper, ChestMid, ChestMidLower, ChestLower}
	case Back:
		return []SubGroup{LatsUpper, LatsMid, UpperBack, Lats, Traps, RearDelts}
	case Biceps:
		return []SubGroup{BicepsLong, BicepsShort, Brachialis}
	case Triceps:
		return []SubGroup{LateralMedial, LongHead, AllHeads, LongHeadStretch, LongHeadConcentration}
	case Shoulders:
		return []SubGroup{SideDelt, FrontDelt}
	case Quads:
		return []SubGroup{QuadsMain, QuadsSupplement}
	case Hamstrings:
		return []SubGroup{HamstringsMain, HamstringsSupplement}
	case Glutes:
		return []SubGroup{GlutesMain}
	case Calves:
		return []SubGroup{CalvesMain}
	case Abs:
		return []SubGroup{UpperAbs, LowerAbs, Obliques, EntireCore}
	case Forearms:
		return []SubGroup{TopOfForearm, InnerForearm, Brachioradialis}
	default:
		return nil
	}
}

// Valid reports whether m is one of the enumerated muscle groups.
func (m MuscleGroup) Valid() bool {
	return m.SubGroups() != nil
}

// MuscleGroup returns the muscle group s is scoped under, or "" for SubGroupAny and unknown values.
func (s SubGroup) MuscleGroup() MuscleGroup {
	switch s {
	case ChestUpper, ChestMid, ChestMidLower, ChestLower:
		return Chest
	case LatsUpper, LatsMid, UpperBack, Lats, Traps, RearDelts:
		return Back
	case BicepsLong, BicepsShort, Brachialis:
		return Biceps
	case LateralMedial, LongHead, AllHeads, LongHeadStretch, LongHeadConcentration:
		return Triceps
	case SideDelt, FrontDelt:
		return Shoulders
	case QuadsMain, QuadsSupplement:
		return Quads
	case HamstringsMain, HamstringsSupplement:
		return Hamstrings
	case GlutesMain:
		return Glutes
	case CalvesMain:
		return Calves
	case UpperAbs, LowerAbs, Obliques, EntireCore:
		return Abs
	case TopOfForearm, InnerForearm, Brachioradialis:
		return Forearms
	case SubGroupAny:
		return ""
	default:
		return ""
	}
}

// Valid reports whether s is one of the enumerated sub-groups. SubGroupAny is not valid.
func (s SubGroup) Valid() bool {
	return s.MuscleGroup() != ""
}

// ParseMuscleGroup returns the muscle group named v.
func ParseMuscleGroup(v string) (MuscleGroup, error) {
	m := MuscleGroup(v)
	if !m.Valid() {
		return "", fmt.Errorf("unknown muscle group %q", v)
	}
	return m, nil
}

// ParseSubGroup returns the sub-group named v. The empty string parses to SubGroupAny.
func ParseSubGroup(v string) (SubGroup, error) {
	s := SubGroup(v)
	if s == SubGroupAny {
		return SubGroupAny, nil
	}
	if !s.Valid() {
		return "", fmt.Errorf("unknown sub-group %q", v)
	}
	return s, nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (m *MuscleGroup) UnmarshalText(text []byte) error {
	v, err := ParseMuscleGroup(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// UnmarshalYAML implements [yaml.Unmarshaler].
func (m *MuscleGroup) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: muscle group must be a scalar", value.Line)
	}
	if err := m.UnmarshalText([]byte(value.Value)); err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	return nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (s *SubGroup) UnmarshalText(text []byte) error {
	v, err := ParseSubGroup(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// UnmarshalYAML implements [yaml.Unmarshaler].
func (s *SubGroup) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: sub-group must be a scalar", value.Line)
	}
	if err := s.UnmarshalText([]byte(value.Value)); err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	return nil
}
