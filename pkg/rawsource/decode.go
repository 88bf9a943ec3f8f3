package rawsource

import (
	"strconv"
	"strings"

	"github.com/example/radio-source-codec/pkg/board"
	"github.com/example/radio-source-codec/pkg/formatver"
	"github.com/example/radio-source-codec/pkg/lookup"
)

var spacemouseAxes = lookup.MustNew(
	lookup.Entry{Index: 0, Tag: "SPACEMOUSE_A"},
	lookup.Entry{Index: 1, Tag: "SPACEMOUSE_B"},
	lookup.Entry{Index: 2, Tag: "SPACEMOUSE_C"},
	lookup.Entry{Index: 3, Tag: "SPACEMOUSE_D"},
	lookup.Entry{Index: 4, Tag: "SPACEMOUSE_E"},
	lookup.Entry{Index: 5, Tag: "SPACEMOUSE_F"},
)

// decoder holds the inputs of one decode call.
type decoder struct {
	caps   Capabilities
	limits Limits
	legacy bool
}

// rule is one step of the decode grammar. A rule that does not recognise
// the token, or recognises it but fails a range check, reports false and
// decoding moves on to the next rule.
type rule struct {
	name  string
	match func(d *decoder, s string) (Value, bool)
}

// decodeRules is evaluated top to bottom and the first match wins.
var decodeRules = []rule{
	{"virtual-input", (*decoder).virtualInput},
	{"switch", (*decoder).switchTag},
	{"lua", (*decoder).luaOutput},
	{"logical-switch", (*decoder).logicalSwitch},
	{"function-switch", (*decoder).functionSwitch},
	{"trainer", (*decoder).trainer},
	{"channel", (*decoder).channel},
	{"gvar", (*decoder).gvar},
	{"telemetry", (*decoder).telemetry},
	{"extreme", (*decoder).extreme},
	{"stick", (*decoder).stick},
	{"trim", (*decoder).trim},
	{"special", (*decoder).special},
	{"cyclic", (*decoder).cyclic},
	{"spacemouse", (*decoder).spacemouse},
}

// Rules returns the names of the decode rules in evaluation order.
func Rules() []string {
	names := make([]string, len(decodeRules))
	for i, r := range decodeRules {
		names[i] = r.name
	}
	return names
}

// Decode parses a persisted token for board b. version is the format
// version of the document the token was read from; tokens from documents
// older than formatver.ADCRefactor may use the old stick, trim and timer
// spellings. Unrecognised tokens decode to NoneValue.
func Decode(text string, b Capabilities, version formatver.Version) Value {
	d := decoder{caps: b, limits: DefaultLimits(), legacy: formatver.IsLegacy(version)}
	v, _ := d.decode(text)
	return v
}

// decode returns the value and the name of the matching rule, or "" when
// nothing matched.
func (d *decoder) decode(s string) (Value, string) {
	for _, r := range decodeRules {
		if v, ok := r.match(d, s); ok {
			return v, r.name
		}
	}
	return NoneValue, ""
}

func (d *decoder) virtualInput(s string) (Value, bool) {
	if len(s) < 2 || s[0] != 'I' || !isDigit(s[1]) {
		return NoneValue, false
	}
	n, ok := parseIndexAfter(s, "I")
	if !ok || n >= d.limits.MaxInputs {
		return NoneValue, false
	}
	return Value{Kind: VirtualInput, Index: n}, true
}

// switchTag accepts only S<letter>, FL<digit> and SW<digit>.
func (d *decoder) switchTag(s string) (Value, bool) {
	shaped := (len(s) == 2 && s[0] == 'S' && s[1] >= 'A' && s[1] <= 'Z') ||
		(len(s) == 3 && (strings.HasPrefix(s, "FL") || strings.HasPrefix(s, "SW")) && s[2] >= '1' && s[2] <= '9')
	if !shaped {
		return NoneValue, false
	}
	idx := d.caps.SwitchYAMLIndex(s)
	if idx < 0 {
		return NoneValue, false
	}
	return Value{Kind: Switch, Index: idx}, true
}

// luaOutput reads lua(<script>,<output>). Exactly one separator character
// is skipped between the two numbers.
func (d *decoder) luaOutput(s string) (Value, bool) {
	const prefix = "lua("
	if len(s) <= len(prefix) || !strings.HasPrefix(s, prefix) {
		return NoneValue, false
	}
	script, rest, ok := parseLeadingInt(s[len(prefix):])
	if !ok || script < 0 || rest == "" {
		return NoneValue, false
	}
	output, _, ok := parseLeadingInt(rest[1:])
	if !ok || output < 0 {
		return NoneValue, false
	}
	if script >= d.limits.MaxScripts || output >= d.limits.MaxScriptOutputs {
		return NoneValue, false
	}
	return Value{Kind: LuaOutput, Index: LuaIndex(script, output)}, true
}

func (d *decoder) logicalSwitch(s string) (Value, bool) {
	n, ok := parseIndexAfter(s, "ls(")
	if !ok || n < 1 || n > d.limits.MaxLogicalSwitches {
		return NoneValue, false
	}
	return Value{Kind: CustomSwitch, Index: n - 1}, true
}

// functionSwitch handles the old fs(<n>) spelling, which names SW<n>.
func (d *decoder) functionSwitch(s string) (Value, bool) {
	n, ok := parseIndexAfter(s, "fs(")
	if !ok || n < 1 {
		return NoneValue, false
	}
	idx := d.caps.SwitchYAMLIndex("SW" + strconv.Itoa(n))
	if idx < 0 {
		return NoneValue, false
	}
	return Value{Kind: Switch, Index: idx}, true
}

func (d *decoder) trainer(s string) (Value, bool) {
	return d.bounded(s, "tr(", Ppm, d.caps.Capability(board.TrainerInputs))
}

func (d *decoder) channel(s string) (Value, bool) {
	return d.bounded(s, "ch(", Channel, d.limits.MaxChannels)
}

func (d *decoder) gvar(s string) (Value, bool) {
	return d.bounded(s, "gv(", Gvar, d.limits.MaxGVars)
}

func (d *decoder) bounded(s, prefix string, kind Kind, limit int) (Value, bool) {
	n, ok := parseIndexAfter(s, prefix)
	if !ok || n >= limit {
		return NoneValue, false
	}
	return Value{Kind: kind, Index: n}, true
}

func (d *decoder) telemetry(s string) (Value, bool) {
	const prefix = "tele("
	if len(s) <= len(prefix) || !strings.HasPrefix(s, prefix) {
		return NoneValue, false
	}
	body := s[len(prefix):]

	sign := TelemetryValue
	switch body[0] {
	case '-':
		sign = TelemetryMin
		body = body[1:]
	case '+':
		sign = TelemetryMax
		body = body[1:]
	}

	sensor, _, ok := parseLeadingInt(body)
	if !ok || sensor < 0 || sensor >= d.limits.MaxSensors {
		return NoneValue, false
	}
	return Value{Kind: Telemetry, Index: TelemetryIndex(sensor, sign)}, true
}

// extreme matches the reserved words before any table lookup.
func (d *decoder) extreme(s string) (Value, bool) {
	switch s {
	case maxToken:
		return Value{Kind: Max}, true
	case minToken:
		return Value{Kind: Min}, true
	}
	return NoneValue, false
}

// stick resolves analog inputs. Before the refactor sticks were persisted by
// tag and other analogs under older tags; both are mapped to the current
// spelling first.
func (d *decoder) stick(s string) (Value, bool) {
	ref := s
	if d.legacy {
		ref = d.caps.LegacyAnalogTag(ref)
		if idx := d.caps.InputIndex(ref, board.LVTTag); idx >= 0 && d.caps.IsInputStick(idx) {
			ref = d.caps.InputName(idx)
		}
	}
	idx := d.caps.InputYAMLIndex(ref)
	if idx < 0 {
		return NoneValue, false
	}
	return Value{Kind: Stick, Index: idx}, true
}

func (d *decoder) trim(s string) (Value, bool) {
	ref := s
	if d.legacy {
		if axis := d.caps.LegacyTrimSourceIndex(s); axis >= 0 {
			ref = d.caps.TrimYAMLName(axis)
		}
	}
	idx := d.caps.TrimYAMLIndex(ref)
	if idx < 0 {
		return NoneValue, false
	}
	return Value{Kind: Trim, Index: idx}, true
}

func (d *decoder) special(s string) (Value, bool) {
	ref := s
	if d.legacy && len(ref) == 6 && strings.HasPrefix(ref, "TIMER") {
		ref = "Tmr" + ref[5:]
	}
	idx := d.caps.SpecialTypeIndex(ref)
	if idx < 0 {
		return NoneValue, false
	}
	return Value{Kind: Special, Index: idx}, true
}

func (d *decoder) cyclic(s string) (Value, bool) {
	idx := d.caps.CyclicIndex(s)
	if idx < 0 {
		return NoneValue, false
	}
	return Value{Kind: Cyclic, Index: idx}, true
}

func (d *decoder) spacemouse(s string) (Value, bool) {
	if len(s) != len(spacemousePrefix)+1 || !strings.HasPrefix(s, spacemousePrefix) {
		return NoneValue, false
	}
	idx, ok := spacemouseAxes.IndexOf(s, lookup.ByTag)
	if !ok {
		return NoneValue, false
	}
	return Value{Kind: Spacemouse, Index: idx}, true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
