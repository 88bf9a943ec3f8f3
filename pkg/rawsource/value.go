// Package rawsource converts abstract signal-source references to and from
// the compact text tokens stored in model and radio configuration files.
//
// Both directions are total: Encode always yields a token and Decode always
// yields a Value, with {None, 0} standing for "unset or unrecognised".
package rawsource

import (
	"fmt"
	"strings"
)

// Kind is the category of a source. The zero value is None.
type Kind int

const (
	None Kind = iota
	VirtualInput
	LuaOutput
	Stick
	Trim
	Min
	Max
	Switch
	CustomSwitch
	Cyclic
	Ppm
	Channel
	Gvar
	Special
	Telemetry
	Spacemouse
)

var kindNames = [...]string{
	None:         "None",
	VirtualInput: "VirtualInput",
	LuaOutput:    "LuaOutput",
	Stick:        "Stick",
	Trim:         "Trim",
	Min:          "Min",
	Max:          "Max",
	Switch:       "Switch",
	CustomSwitch: "CustomSwitch",
	Cyclic:       "Cyclic",
	Ppm:          "Ppm",
	Channel:      "Channel",
	Gvar:         "Gvar",
	Special:      "Special",
	Telemetry:    "Telemetry",
	Spacemouse:   "Spacemouse",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind accepts a kind name case-insensitively.
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if strings.EqualFold(name, s) {
			return Kind(i), nil
		}
	}
	return None, fmt.Errorf("unknown source kind %q", s)
}

// Kinds returns every kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, len(kindNames))
	for i := range kindNames {
		out[i] = Kind(i)
	}
	return out
}

// Value is a source reference. Index is meaningful only for its Kind and
// only relative to a particular board.
type Value struct {
	Kind  Kind `json:"kind" yaml:"kind"`
	Index int  `json:"index" yaml:"index"`
}

// NoneValue is the unset/unrecognised sentinel.
var NoneValue = Value{Kind: None}

// IsNone reports whether v is the None sentinel (index is ignored).
func (v Value) IsNone() bool {
	return v.Kind == None
}

// String returns the Kind(index) debugging form.
func (v Value) String() string {
	return fmt.Sprintf("%s(%d)", v.Kind, v.Index)
}

// Telemetry sign codes packed into the low part of a telemetry index.
const (
	TelemetryValue = 0
	TelemetryMin   = 1
	TelemetryMax   = 2
)

// TelemetryIndex packs a sensor and sign code.
func TelemetryIndex(sensor, sign int) int {
	return sensor*3 + sign
}

// LuaIndex packs a script number and output number.
func LuaIndex(script, output int) int {
	return script*luaStride + output
}

const luaStride = 16

// MarshalText writes the kind name, so JSON and YAML carry "Channel" rather
// than an ordinal.
func (k Kind) MarshalText() ([]byte, error) {
	if k < 0 || int(k) >= len(kindNames) {
		return nil, fmt.Errorf("unknown source kind %d", int(k))
	}
	return []byte(kindNames[k]), nil
}

// UnmarshalText parses a kind name, ignoring case.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
