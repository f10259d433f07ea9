package split

import "fmt"

// Block is a classification that can be toggled on or off as a whole within a session.
type Block string

// Toggleable blocks.
const (
	BlockAbs       Block = "abs"
	BlockForearms  Block = "forearms"
	BlockTraps     Block = "traps"
	BlockRearDelts Block = "rear-delts"
)

// Blocks lists every toggleable block.
func Blocks() []Block {
	return []Block{BlockAbs, BlockForearms, BlockTraps, BlockRearDelts}
}

// ParseBlock returns the block named v.
func ParseBlock(v string) (Block, error) {
	b := Block(v)
	if b.MuscleGroup() == "" {
		return "", fmt.Errorf("unknown block %q", v)
	}
	return b, nil
}

// MuscleGroup returns the muscle group the block draws its exercises from.
func (b Block) MuscleGroup() MuscleGroup {
	switch b {
	case BlockAbs:
		return Abs
	case BlockForearms:
		return Forearms
	case BlockTraps, BlockRearDelts:
		return Back
	default:
		return ""
	}
}

// SubGroups returns the sub-groups the block adds one exercise for each, in order.
func (b Block) SubGroups() []SubGroup {
	switch b {
	case BlockAbs:
		return []SubGroup{UpperAbs, LowerAbs, Obliques, EntireCore}
	case BlockForearms:
		return []SubGroup{TopOfForearm, InnerForearm, Brachioradialis}
	case BlockTraps:
		return []SubGroup{Traps}
	case BlockRearDelts:
		return []SubGroup{RearDelts}
	default:
		return nil
	}
}

// Matches reports whether an exercise classified as (group, sub) belongs to the block.
// Abs and Forearms match on the whole muscle group, Traps and Rear Delts on the sub-group.
func (b Block) Matches(group MuscleGroup, sub SubGroup) bool {
	switch b {
	case BlockAbs:
		return group == Abs
	case BlockForearms:
		return group == Forearms
	case BlockTraps:
		return sub == Traps
	case BlockRearDelts:
		return sub == RearDelts
	default:
		return false
	}
}

// Mandatory reports whether the block covers a mandatory sub-group.
func (b Block) Mandatory() bool {
	for _, sub := range b.SubGroups() {
		if sub.IsMandatory() {
			return true
		}
	}
	return false
}

// String returns a display label for the block.
func (b Block) String() string {
	switch b {
	case BlockAbs:
		return "Abs"
	case BlockForearms:
		return "Forearms"
	case BlockTraps:
		return "Traps"
	case BlockRearDelts:
		return "Rear Delts"
	default:
		return string(b)
	}
}
