package rawsource

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gopkg.in/yaml.v3"

	"github.com/example/radio-source-codec/pkg/formatver"
)

func TestCodec_DecodeLogsMatchedRule(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	c := NewCodec(testBoard(t, "tx16s"), current, WithLogger(zap.New(core)))

	assert.Equal(t, Value{Channel, 4}, c.Decode("ch(4)"))
	assert.Equal(t, NoneValue, c.Decode("bogus"))

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)
	assert.Equal(t, "channel", entries[0].ContextMap()["rule"])
	assert.Equal(t, "no decode rule matched", entries[1].Message)
	assert.Equal(t, "bogus", entries[1].ContextMap()["token"])
}

func TestCodec_Limits(t *testing.T) {
	limits := DefaultLimits()
	limits.MaxChannels = 16
	c := NewCodec(testBoard(t, "x9dp"), current, WithLimits(limits))

	assert.Equal(t, 16, c.Limits().MaxChannels)
	assert.Equal(t, Value{Channel, 15}, c.Decode("ch(15)"))
	assert.Equal(t, NoneValue, c.Decode("ch(16)"))
}

func TestCodec_Gate(t *testing.T) {
	b := testBoard(t, "tx16s")

	c := NewCodec(b, formatver.MustParse("2.10.5"))
	assert.False(t, c.Legacy())
	assert.Equal(t, NoneValue, c.Decode("LH"))

	c = NewCodec(b, formatver.MustParse("2.10.5"), WithGate(formatver.NewGate(formatver.MustParse("2.11.0"))))
	assert.True(t, c.Legacy())
	assert.Equal(t, Value{Stick, 0}, c.Decode("LH"))

	modern := c.WithVersion(current)
	assert.False(t, modern.Legacy())
	assert.Equal(t, current, modern.Version())
	assert.True(t, c.Legacy(), "WithVersion leaves the receiver alone")
}

func TestCodec_Nodes(t *testing.T) {
	c := NewCodec(testBoard(t, "tx16s"), current)

	n := c.EncodeNode(Value{CustomSwitch, 2})
	assert.Equal(t, yaml.ScalarNode, n.Kind)
	assert.Equal(t, "ls(3)", n.Value)

	var doc yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte("a: &src gv(2)\nb: *src\nc: [ch(1)]\n"), &doc))
	m := doc.Content[0]

	assert.Equal(t, Value{Gvar, 2}, c.DecodeNode(m.Content[1]))
	assert.Equal(t, Value{Gvar, 2}, c.DecodeNode(m.Content[3]), "aliases resolve")
	assert.Equal(t, NoneValue, c.DecodeNode(m.Content[5]), "sequences are not sources")
	assert.Equal(t, NoneValue, c.DecodeNode(nil))
}

func TestValue_JSON(t *testing.T) {
	data, err := json.Marshal(Value{Telemetry, 16})
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"Telemetry","index":16}`, string(data))

	var v Value
	require.NoError(t, json.Unmarshal([]byte(`{"kind":"channel","index":3}`), &v))
	assert.Equal(t, Value{Channel, 3}, v)

	assert.Error(t, json.Unmarshal([]byte(`{"kind":"Knob","index":3}`), &v))
}

func TestKind(t *testing.T) {
	assert.Equal(t, "CustomSwitch", CustomSwitch.String())
	assert.Equal(t, "Kind(42)", Kind(42).String())
	assert.Equal(t, "Telemetry(16)", Value{Telemetry, 16}.String())
	assert.True(t, Value{None, 5}.IsNone())
	assert.False(t, Value{Min, 0}.IsNone())

	k, err := ParseKind("spacemouse")
	require.NoError(t, err)
	assert.Equal(t, Spacemouse, k)
	_, err = ParseKind("Wheel")
	assert.Error(t, err)

	assert.Len(t, Kinds(), 16)
	assert.Equal(t, None, Kinds()[0])
}
