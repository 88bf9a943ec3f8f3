package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/radio-source-codec/internal/config"
	"github.com/example/radio-source-codec/pkg/formatver"
	"github.com/example/radio-source-codec/pkg/rawsource"
)

// TestAllExampleFiles converts every document in the examples folder
func TestAllExampleFiles(t *testing.T) {
	exampleFiles, err := filepath.Glob("examples/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, exampleFiles, "no example files found in examples/")

	t.Logf("📁 Found %d example files to test", len(exampleFiles))
	registry := testRegistry(t)

	for _, filePath := range exampleFiles {
		fileName := filepath.Base(filePath)
		t.Run(fileName, func(t *testing.T) {
			doc, err := LoadDocument(filePath)
			require.NoError(t, err)
			require.NoError(t, doc.Validate())
			t.Logf("🔧 %s", doc)

			b, err := pickBoard(registry, doc.Board, config.Default().Board)
			require.NoError(t, err)
			m := &Migrator{
				Codec:   rawsource.NewCodec(b, doc.Version),
				Fields:  defaultFields,
				Workers: 2,
			}

			report, err := m.Migrate(context.Background(), doc)
			require.NoError(t, err)
			assert.NotZero(t, report.Total(), "example has no source fields")
			t.Logf("✅ %s", strings.Split(report.String(), "\n")[0])

			// a converted document converts to itself
			data, err := doc.Bytes()
			require.NoError(t, err)
			again, err := ParseDocument(data)
			require.NoError(t, err)
			assert.Equal(t, formatver.CurrentVersion(), again.Version)

			second, err := m.Migrate(context.Background(), again)
			require.NoError(t, err)
			assert.Empty(t, second.Converted)
			assert.Len(t, second.Unknown, len(report.Unknown))
		})
	}
}

// runCLI executes the root command with a configuration that does not
// exist, so only defaults and the given flags apply.
func runCLI(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	for _, key := range []string{config.EnvBoard, config.EnvDefinitionsDir, config.EnvWorkers, config.EnvHTTPAddr, config.EnvLogLevel} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.yaml")}, args...))
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestCLI_Boards(t *testing.T) {
	out, _, err := runCLI(t, "boards")
	require.NoError(t, err)
	assert.Equal(t, []string{"pocket", "t20", "tx16s", "x9dp"}, firstColumn(out))

	out, _, err = runCLI(t, "boards", "show", "t20")
	require.NoError(t, err)
	assert.Contains(t, out, "FunctionSwitches")
	assert.Contains(t, out, "SW1")
	assert.Contains(t, out, "Trm8")

	_, _, err = runCLI(t, "boards", "show", "nope")
	assert.Error(t, err)
}

func TestCLI_Encode(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"encode", "Telemetry", "16"}, "tele(-5)"},
		{[]string{"encode", "customswitch", "9"}, "ls(10)"},
		{[]string{"--board", "t20", "encode", "Switch", "8"}, "SW1"},
		{[]string{"--board", "pocket", "encode", "Stick", "1"}, "Ele"},
		{[]string{"encode", "Stick", "99"}, "NONE"},
		{[]string{"encode", "--", "Channel", "-1"}, "NONE"},
		{[]string{"encode", "--", "Min", "-1"}, "MIN"},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			out, _, err := runCLI(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want+"\n", out)
		})
	}

	_, _, err := runCLI(t, "encode", "Wheel", "1")
	assert.Error(t, err)
	_, _, err = runCLI(t, "encode", "Channel", "one")
	assert.Error(t, err)
}

func TestCLI_Decode(t *testing.T) {
	out, _, err := runCLI(t, "decode", "ch(3)", "LH", "garbage_token")
	require.NoError(t, err)
	assert.Equal(t, "ch(3)\tChannel(3)\nLH\tNone(0)\ngarbage_token\tNone(0)\n", out)

	out, _, err = runCLI(t, "decode", "--semver", "2.9.0", "LH", "TIMER1")
	require.NoError(t, err)
	assert.Equal(t, "LH\tStick(0)\nTIMER1\tSpecial(3)\n", out)

	_, _, err = runCLI(t, "decode", "--semver", "latest", "LH")
	assert.ErrorIs(t, err, formatver.ErrInvalidVersion)

	_, _, err = runCLI(t, "--board", "nope", "decode", "LH")
	assert.Error(t, err)
}

func TestCLI_Convert(t *testing.T) {
	src, err := filepath.Abs("examples/model-legacy-tx16s.yaml")
	require.NoError(t, err)
	dst := filepath.Join(t.TempDir(), "converted.yaml")

	out, report, err := runCLI(t, "convert", src, "-o", dst)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, report, "6 converted")
	assert.Contains(t, report, "mixData[0].srcRaw: LH -> Rud")

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Contains(t, string(data), "semver: 2.11.0")

	out, _, err = runCLI(t, "convert", "examples/model-t20.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "srcRaw: SW2")
}

func TestCLI_ConvertBoardFlagOverridesDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("semver: 2.11.0\nboard: tx16s\nsrc: SW1\n"), 0o644))

	_, report, err := runCLI(t, "convert", path)
	require.NoError(t, err)
	assert.Contains(t, report, "1 unrecognised")

	_, report, err = runCLI(t, "--board", "t20", "convert", path)
	require.NoError(t, err)
	assert.Contains(t, report, "1 unchanged")
}

func TestCLI_Version(t *testing.T) {
	out, _, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "srcconv dev\n", out)
}

func firstColumn(s string) []string {
	var out []string
	for _, line := range strings.Split(strings.TrimSpace(s), "\n") {
		if fields := strings.Fields(line); len(fields) > 0 {
			out = append(out, fields[0])
		}
	}
	return out
}
