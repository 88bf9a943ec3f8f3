package board

import (
	"fmt"
	"strings"

	"github.com/example/radio-source-codec/pkg/lookup"
)

// AnalogInputType classifies an analog input.
type AnalogInputType int

const (
	InputNone AnalogInputType = iota
	InputStick
	InputFlex
	InputVBat
	InputRTCBat
	InputSwitch
)

var analogInputTypeNames = []string{"NONE", "STICK", "FLEX", "VBAT", "RTC_BAT", "SWITCH"}

func (t AnalogInputType) String() string {
	if int(t) < 0 || int(t) >= len(analogInputTypeNames) {
		return fmt.Sprintf("AnalogInputType(%d)", int(t))
	}
	return analogInputTypeNames[t]
}

// FlexType is the configured role of a flex (pot/slider) input.
type FlexType int

const (
	FlexNone FlexType = iota
	FlexPot
	FlexPotCenter
	FlexSlider
	FlexMultipos
	FlexAxisX
	FlexAxisY
	FlexSwitch
)

var flexTypeNames = []string{"NONE", "POT", "POT_CENTER", "SLIDER", "MULTIPOS", "AXIS_X", "AXIS_Y", "SWITCH"}

func (t FlexType) String() string {
	if int(t) < 0 || int(t) >= len(flexTypeNames) {
		return fmt.Sprintf("FlexType(%d)", int(t))
	}
	return flexTypeNames[t]
}

// SwitchType is the physical kind of a switch.
type SwitchType int

const (
	SwitchNotAvailable SwitchType = iota
	SwitchToggle
	Switch2Pos
	Switch3Pos
	SwitchFunc
)

var switchTypeNames = []string{"NONE", "TOGGLE", "2POS", "3POS", "FUNC"}

func (t SwitchType) String() string {
	if int(t) < 0 || int(t) >= len(switchTypeNames) {
		return fmt.Sprintf("SwitchType(%d)", int(t))
	}
	return switchTypeNames[t]
}

func parseEnum(kind, value string, names []string) (int, error) {
	v := strings.ToUpper(strings.TrimSpace(value))
	if v == "" {
		return 0, nil
	}
	for i, name := range names {
		if name == v {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown %s %q", kind, value)
}

// ParseAnalogInputType parses the definition spelling of an input type. Empty is NONE.
func ParseAnalogInputType(s string) (AnalogInputType, error) {
	i, err := parseEnum("input type", s, analogInputTypeNames)
	return AnalogInputType(i), err
}

// ParseFlexType parses the definition spelling of a flex type. Empty is NONE.
func ParseFlexType(s string) (FlexType, error) {
	i, err := parseEnum("flex type", s, flexTypeNames)
	return FlexType(i), err
}

// ParseSwitchType parses the definition spelling of a switch type. Empty is NONE.
func ParseSwitchType(s string) (SwitchType, error) {
	i, err := parseEnum("switch type", s, switchTypeNames)
	return SwitchType(i), err
}

// LookupValueType selects tag or name matching in board queries.
type LookupValueType = lookup.Kind

const (
	LVTTag  = lookup.ByTag
	LVTName = lookup.ByName
)

// Capability identifies a countable or boolean board feature.
type Capability int

const (
	FlexInputs Capability = iota
	FlexSwitches
	FunctionSwitches
	HasTrainerModuleCPPM
	HasTrainerModuleSBUS
	Inputs
	MultiposPots
	MultiposPotsPositions
	NumFunctionSwitchesPositions
	NumTrims
	NumTrimSwitches
	Pots
	Sliders
	StandardSwitches
	Sticks
	Switches
	SwitchesPositions
	TrainerInputs
	capabilityCount
)

var capabilityNames = [...]string{
	FlexInputs:                   "FlexInputs",
	FlexSwitches:                 "FlexSwitches",
	FunctionSwitches:             "FunctionSwitches",
	HasTrainerModuleCPPM:         "HasTrainerModuleCPPM",
	HasTrainerModuleSBUS:         "HasTrainerModuleSBUS",
	Inputs:                       "Inputs",
	MultiposPots:                 "MultiposPots",
	MultiposPotsPositions:        "MultiposPotsPositions",
	NumFunctionSwitchesPositions: "NumFunctionSwitchesPositions",
	NumTrims:                     "NumTrims",
	NumTrimSwitches:              "NumTrimSwitches",
	Pots:                         "Pots",
	Sliders:                      "Sliders",
	StandardSwitches:             "StandardSwitches",
	Sticks:                       "Sticks",
	Switches:                     "Switches",
	SwitchesPositions:            "SwitchesPositions",
	TrainerInputs:                "TrainerInputs",
}

func (c Capability) String() string {
	if c < 0 || c >= capabilityCount {
		return fmt.Sprintf("Capability(%d)", int(c))
	}
	return capabilityNames[c]
}

// Capabilities lists every known capability in declaration order.
func Capabilities() []Capability {
	out := make([]Capability, 0, capabilityCount)
	for c := Capability(0); c < capabilityCount; c++ {
		out = append(out, c)
	}
	return out
}

// MultiposPositions is the number of positions of a multi-position pot.
const MultiposPositions = 6

// InputInfo describes one analog input. The zero value (Type InputNone)
// signals an index that does not exist on the board.
type InputInfo struct {
	Type      AnalogInputType
	Tag       string
	Name      string
	ShortName string
	FlexType  FlexType
	Inverted  bool
}

// SwitchInfo describes one switch. The zero value signals an unavailable switch.
type SwitchInfo struct {
	Type     SwitchType
	Tag      string
	Name     string
	Inverted bool
}

// TrimAxis is the canonical trim ordering shared by all boards.
type TrimAxis int

const (
	TrimAxisLH TrimAxis = iota
	TrimAxisLV
	TrimAxisRV
	TrimAxisRH
	TrimAxisT5
	TrimAxisT6
	TrimAxisT7
	TrimAxisT8
	TrimAxisCount
)
