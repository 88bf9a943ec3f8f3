package rawsource

import (
	"github.com/example/radio-source-codec/pkg/board"
)

// Limits are the board-independent capacities checked during decode.
type Limits struct {
	MaxInputs          int
	MaxScripts         int
	MaxScriptOutputs   int
	MaxLogicalSwitches int
	MaxChannels        int
	MaxGVars           int
	MaxSensors         int
}

// DefaultLimits returns the capacities of the current firmware generation.
func DefaultLimits() Limits {
	return Limits{
		MaxInputs:          32,
		MaxScripts:         9,
		MaxScriptOutputs:   10,
		MaxLogicalSwitches: 64,
		MaxChannels:        32,
		MaxGVars:           9,
		MaxSensors:         60,
	}
}

// Capabilities is the board query surface the codec needs. *board.Board
// implements it.
type Capabilities interface {
	Capability(c board.Capability) int

	InputIndex(val string, lvt board.LookupValueType) int
	InputName(index int) string
	IsInputStick(index int) bool
	InputYAMLName(index int) string
	InputYAMLIndex(s string) int

	SwitchYAMLName(index int) string
	SwitchYAMLIndex(s string) int

	TrimYAMLName(index int) string
	TrimYAMLIndex(s string) int

	LegacyAnalogTag(tag string) string
	LegacyTrimSourceIndex(s string) int

	SpecialTypeTag(index int) string
	SpecialTypeIndex(s string) int
	CyclicTag(index int) string
	CyclicIndex(s string) int
}

var _ Capabilities = (*board.Board)(nil)
