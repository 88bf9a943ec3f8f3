package rawsource

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncode(t *testing.T) {
	tx16s := testBoard(t, "tx16s")
	t20 := testBoard(t, "t20")

	tests := []struct {
		name  string
		value Value
		board Capabilities
		want  string
	}{
		{"virtual input", Value{VirtualInput, 7}, tx16s, "I7"},
		{"lua output", Value{LuaOutput, LuaIndex(2, 3)}, tx16s, "lua(2,3)"},
		{"stick persists by name", Value{Stick, 2}, tx16s, "Thr"},
		{"pot persists by tag", Value{Stick, 5}, tx16s, "P2"},
		{"stick out of range", Value{Stick, 9}, tx16s, "NONE"},
		{"trim", Value{Trim, 2}, tx16s, "TrmT"},
		{"trim beyond board", Value{Trim, 6}, tx16s, "NONE"},
		{"min ignores index", Value{Min, 7}, tx16s, "MIN"},
		{"max", Value{Max, 0}, tx16s, "MAX"},
		{"min with negative index", Value{Min, -1}, tx16s, "MIN"},
		{"max with negative index", Value{Max, -3}, tx16s, "MAX"},
		{"switch", Value{Switch, 3}, tx16s, "SD"},
		{"function switch", Value{Switch, 8}, t20, "SW1"},
		{"logical switch is one based", Value{CustomSwitch, 9}, tx16s, "ls(10)"},
		{"cyclic", Value{Cyclic, 1}, tx16s, "CYC2"},
		{"trainer", Value{Ppm, 4}, tx16s, "tr(4)"},
		{"channel", Value{Channel, 0}, tx16s, "ch(0)"},
		{"gvar", Value{Gvar, 8}, tx16s, "gv(8)"},
		{"special", Value{Special, 3}, tx16s, "Tmr1"},
		{"telemetry value", Value{Telemetry, TelemetryIndex(5, TelemetryValue)}, tx16s, "tele(5)"},
		{"telemetry min", Value{Telemetry, 3*5 + 1}, tx16s, "tele(-5)"},
		{"telemetry max", Value{Telemetry, TelemetryIndex(0, TelemetryMax)}, tx16s, "tele(+0)"},
		{"spacemouse", Value{Spacemouse, 2}, tx16s, "SPACEMOUSE_C"},
		{"none", NoneValue, tx16s, "NONE"},
		{"unknown kind", Value{Kind(99), 1}, tx16s, "NONE"},
		{"negative index", Value{Channel, -1}, tx16s, "NONE"},
		{"negative stick", Value{Stick, -1}, tx16s, "NONE"},
		{"negative spacemouse", Value{Spacemouse, -2}, tx16s, "NONE"},
		{"negative telemetry", Value{Telemetry, -3}, tx16s, "NONE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Encode(tt.value, tt.board))
		})
	}
}

func TestEncodeIsTotal(t *testing.T) {
	b := testBoard(t, "pocket")
	for _, k := range append(Kinds(), Kind(-1), Kind(1000)) {
		for _, idx := range []int{-100, -1, 0, 1, 15, 16, 63, 64, 1 << 20} {
			assert.NotPanics(t, func() {
				assert.NotEmpty(t, Encode(Value{k, idx}, b))
			})
		}
	}
}
