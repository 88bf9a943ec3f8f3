package rawsource

import (
	"strconv"
)

const (
	noneToken        = "NONE"
	minToken         = "MIN"
	maxToken         = "MAX"
	spacemousePrefix = "SPACEMOUSE_"
)

// Encode renders v in the current persisted grammar for board b. It never
// fails: values that cannot be expressed on b, such as a negative index or
// a stick the board does not have, become "NONE". MIN and MAX carry no
// index.
func Encode(v Value, b Capabilities) string {
	switch v.Kind {
	case Min:
		return minToken
	case Max:
		return maxToken
	}
	if v.Index < 0 {
		return noneToken
	}

	switch v.Kind {
	case VirtualInput:
		return "I" + strconv.Itoa(v.Index)
	case LuaOutput:
		return "lua(" + strconv.Itoa(v.Index/luaStride) + "," + strconv.Itoa(v.Index%luaStride) + ")"
	case Stick:
		return orNone(b.InputYAMLName(v.Index))
	case Trim:
		return orNone(b.TrimYAMLName(v.Index))
	case Switch:
		return orNone(b.SwitchYAMLName(v.Index))
	case CustomSwitch:
		return "ls(" + strconv.Itoa(v.Index+1) + ")"
	case Cyclic:
		return orNone(b.CyclicTag(v.Index))
	case Ppm:
		return "tr(" + strconv.Itoa(v.Index) + ")"
	case Channel:
		return "ch(" + strconv.Itoa(v.Index) + ")"
	case Gvar:
		return "gv(" + strconv.Itoa(v.Index) + ")"
	case Special:
		return orNone(b.SpecialTypeTag(v.Index))
	case Telemetry:
		return encodeTelemetry(v.Index)
	case Spacemouse:
		if v.Index >= 26 {
			return noneToken
		}
		return spacemousePrefix + string(rune('A'+v.Index))
	default:
		return noneToken
	}
}

func encodeTelemetry(index int) string {
	var sign string
	switch index % 3 {
	case TelemetryMin:
		sign = "-"
	case TelemetryMax:
		sign = "+"
	}
	return "tele(" + sign + strconv.Itoa(index/3) + ")"
}

func orNone(s string) string {
	if s == "" {
		return noneToken
	}
	return s
}
