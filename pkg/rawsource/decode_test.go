package rawsource

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/radio-source-codec/pkg/board"
	"github.com/example/radio-source-codec/pkg/formatver"
)

var (
	current = formatver.CurrentVersion()
	legacy  = formatver.MustParse("2.9.0")
)

func TestRules(t *testing.T) {
	assert.Equal(t, []string{
		"virtual-input", "switch", "lua", "logical-switch", "function-switch",
		"trainer", "channel", "gvar", "telemetry", "extreme",
		"stick", "trim", "special", "cyclic", "spacemouse",
	}, Rules())
}

func TestDecode(t *testing.T) {
	tx16s := testBoard(t, "tx16s")

	tests := []struct {
		token string
		want  Value
	}{
		{"I0", Value{VirtualInput, 0}},
		{"I31", Value{VirtualInput, 31}},
		{"I32", NoneValue},
		{"I", NoneValue},
		{"Ix", NoneValue},
		{"SA", Value{Switch, 0}},
		{"SH", Value{Switch, 7}},
		{"SI", NoneValue},
		{"lua(2,3)", Value{LuaOutput, 35}},
		{"lua(8,9)", Value{LuaOutput, LuaIndex(8, 9)}},
		{"lua(9,0)", NoneValue},
		{"lua(0,10)", NoneValue},
		{"lua(2)", NoneValue},
		{"lua(2,)", NoneValue},
		{"ls(1)", Value{CustomSwitch, 0}},
		{"ls(10)", Value{CustomSwitch, 9}},
		{"ls(64)", Value{CustomSwitch, 63}},
		{"ls(65)", NoneValue},
		{"ls(0)", NoneValue},
		{"tr(0)", Value{Ppm, 0}},
		{"tr(15)", Value{Ppm, 15}},
		{"tr(16)", NoneValue},
		{"ch(0)", Value{Channel, 0}},
		{"ch(31)", Value{Channel, 31}},
		{"ch(32)", NoneValue},
		{"ch(-1)", NoneValue},
		{"ch()", NoneValue},
		{"gv(8)", Value{Gvar, 8}},
		{"gv(9)", NoneValue},
		{"tele(5)", Value{Telemetry, 15}},
		{"tele(-5)", Value{Telemetry, 16}},
		{"tele(+5)", Value{Telemetry, 17}},
		{"tele(59)", Value{Telemetry, 177}},
		{"tele(60)", NoneValue},
		{"tele(-)", NoneValue},
		{"MAX", Value{Max, 0}},
		{"MIN", Value{Min, 0}},
		{"max", NoneValue},
		{"Rud", Value{Stick, 0}},
		{"Ail", Value{Stick, 3}},
		{"P2", Value{Stick, 5}},
		{"SL2", Value{Stick, 8}},
		{"TrmE", Value{Trim, 1}},
		{"Trm6", Value{Trim, 5}},
		{"TxBatt", Value{Special, 0}},
		{"Tmr3", Value{Special, 5}},
		{"CYC3", Value{Cyclic, 2}},
		{"SPACEMOUSE_A", Value{Spacemouse, 0}},
		{"SPACEMOUSE_F", Value{Spacemouse, 5}},
		{"SPACEMOUSE_G", NoneValue},
		{"SPACEMOUSE_AB", NoneValue},
		{"NONE", NoneValue},
		{"", NoneValue},
		{"garbage_token", NoneValue},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.want, Decode(tt.token, tx16s, current))
		})
	}
}

func TestDecodeLenientNumbers(t *testing.T) {
	b := testBoard(t, "x9dp")

	tests := []struct {
		token string
		want  Value
	}{
		{"ch(3)junk", Value{Channel, 3}},
		{"ch(3", Value{Channel, 3}},
		{"ch( 3)", Value{Channel, 3}},
		{"ch(x)", NoneValue},
		{"I5abc", Value{VirtualInput, 5}},
		{"lua(2;3", Value{LuaOutput, 35}},
		{"ls(2)ls(3)", Value{CustomSwitch, 1}},
		{"tele(-7)))", Value{Telemetry, 22}},
		{"gv(99999999999999999999)", NoneValue},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.want, Decode(tt.token, b, current))
		})
	}
}

func TestDecodeTrainerFollowsBoard(t *testing.T) {
	pocket := testBoard(t, "pocket")
	assert.Equal(t, Value{Ppm, 7}, Decode("tr(7)", pocket, current))
	assert.Equal(t, NoneValue, Decode("tr(8)", pocket, current))
}

func TestDecodeFunctionSwitchAlias(t *testing.T) {
	t20 := testBoard(t, "t20")
	tx16s := testBoard(t, "tx16s")

	assert.Equal(t, Value{Switch, 10}, Decode("fs(3)", t20, current))
	assert.Equal(t, Decode("SW3", t20, current), Decode("fs(3)", t20, current))
	assert.Equal(t, NoneValue, Decode("fs(0)", t20, current))
	assert.Equal(t, NoneValue, Decode("fs(7)", t20, current))
	assert.Equal(t, NoneValue, Decode("fs(3)", tx16s, current))
	assert.Equal(t, Value{Switch, 15}, Decode("FL2", t20, current))
}

func TestDecodeLegacySpellings(t *testing.T) {
	tx16s := testBoard(t, "tx16s")

	tests := []struct {
		token  string
		legacy Value
		modern Value
	}{
		{"LH", Value{Stick, 0}, NoneValue},
		{"RV", Value{Stick, 2}, NoneValue},
		{"Thr", Value{Stick, 2}, Value{Stick, 2}},
		{"S1", Value{Stick, 4}, NoneValue},
		{"6POS", Value{Stick, 5}, NoneValue},
		{"RS", Value{Stick, 8}, NoneValue},
		{"TrimT", Value{Trim, 2}, NoneValue},
		{"Trim6", Value{Trim, 5}, NoneValue},
		{"Trim7", NoneValue, NoneValue},
		{"TIMER1", Value{Special, 3}, NoneValue},
		{"TIMER3", Value{Special, 5}, NoneValue},
		{"TIMER10", NoneValue, NoneValue},
		{"Tmr2", Value{Special, 4}, Value{Special, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.legacy, Decode(tt.token, tx16s, legacy), "legacy")
			assert.Equal(t, tt.modern, Decode(tt.token, tx16s, current), "current")
		})
	}
}

func TestDecodeLegacyStickMatchesModern(t *testing.T) {
	for _, name := range []string{"tx16s", "x9dp", "t20", "pocket"} {
		t.Run(name, func(t *testing.T) {
			b := testBoard(t, name)
			for i := 0; i < b.Capability(board.Sticks); i++ {
				assert.Equal(t,
					Decode(b.InputYAMLName(i), b, current),
					Decode(b.InputTag(i), b, legacy),
					"stick %d", i)
			}
		})
	}
}

func TestDecodeUnknownVersionIsLegacy(t *testing.T) {
	b := testBoard(t, "tx16s")
	assert.Equal(t, Value{Stick, 0}, Decode("LH", b, formatver.Version{}))
}

// extraInput persists one more input spelling than the board it wraps.
// Board definitions reject spellings shaped like other sources, so other
// Capabilities implementations are the only way to reach such tokens.
type extraInput struct {
	*board.Board
	ref   string
	index int
}

func (e extraInput) InputYAMLIndex(s string) int {
	if s == e.ref {
		return e.index
	}
	return e.Board.InputYAMLIndex(s)
}

// A range failure in an early rule must not hide a later rule that accepts
// the same token.
func TestDecodeFallsThroughOnRangeFailure(t *testing.T) {
	b := extraInput{Board: testBoard(t, "tx16s"), ref: "I40", index: 5}

	assert.Equal(t, Value{Stick, 5}, Decode("I40", b, current))
	assert.Equal(t, Value{VirtualInput, 4}, Decode("I4", b, current))
}

func TestDecodeIsTotal(t *testing.T) {
	b := testBoard(t, "t20")
	tokens := []string{
		"", " ", "(", ")", "lua(", "lua(,", "tele(", "tele(+", "ls(", "fs(", "I",
		"S", "SW", "SW0", "FL0", "SPACEMOUSE_", "\x00\xff", "ch(9223372036854775807)",
		"ch(-9223372036854775808)", "lua(-1,-1)", "tele(--1)",
	}
	for i := 0; i < 300; i++ {
		tokens = append(tokens, fmt.Sprintf("x%d(", i))
	}
	for _, tok := range tokens {
		assert.NotPanics(t, func() {
			Decode(tok, b, current)
			Decode(tok, b, legacy)
		}, "token %q", tok)
	}
}

func TestRoundTrip(t *testing.T) {
	for _, name := range []string{"tx16s", "x9dp", "t20", "pocket"} {
		t.Run(name, func(t *testing.T) {
			b := testBoard(t, name)
			for _, v := range validValues(b, DefaultLimits()) {
				token := Encode(v, b)
				require.NotEqual(t, "NONE", token, "%s encodes", v)
				assert.Equal(t, v, Decode(token, b, current), "token %q", token)
			}
		})
	}
}
