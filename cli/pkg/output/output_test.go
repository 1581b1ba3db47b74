package output

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func captureStdout(f func()) string {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	f()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

func captureStderr(f func()) string {
	old := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w

	f()

	w.Close()
	os.Stderr = old

	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

func TestMessages(t *testing.T) {
	out := captureStdout(func() {
		Success("Generated %d files", 4)
		Info("Profile '%s' saved", "default")
		Warn("Server is %s", "degraded")
	})
	assert.Contains(t, out, "✓ Generated 4 files")
	assert.Contains(t, out, "Profile 'default' saved")
	assert.Contains(t, out, "⚠ Server is degraded")

	errOut := captureStderr(func() {
		Error("Unknown topic '%s'", "nope")
	})
	assert.Contains(t, errOut, "✗ Unknown topic 'nope'")
}

func TestValidFormat(t *testing.T) {
	assert.True(t, ValidFormat(FormatTable))
	assert.True(t, ValidFormat(FormatJSON))
	assert.True(t, ValidFormat(FormatYAML))
	assert.False(t, ValidFormat("xml"))
}

func TestWriteJSON_Indented(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, map[string]any{"event_class": map[string]any{"uid": 3002}}))

	assert.Contains(t, buf.String(), "  \"event_class\":")
	assert.Contains(t, buf.String(), "    \"uid\": 3002")
}

func TestWriteYAML_UsesJSONTags(t *testing.T) {
	type version struct {
		Version  string `json:"version"`
		IsStable bool   `json:"is_stable"`
	}

	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, version{Version: "1.6.0", IsStable: true}))
	assert.Contains(t, buf.String(), "is_stable: true")

	var parsed map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &parsed))
	assert.Equal(t, "1.6.0", parsed["version"])
}

func TestStructured(t *testing.T) {
	out := captureStdout(func() {
		handled, err := Structured(FormatJSON, []string{"1.6.0"})
		assert.True(t, handled)
		assert.NoError(t, err)
	})
	var parsed []string
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	assert.Equal(t, []string{"1.6.0"}, parsed)

	out = captureStdout(func() {
		handled, err := Structured(FormatYAML, map[string]int{"count": 8})
		assert.True(t, handled)
		assert.NoError(t, err)
	})
	assert.Equal(t, "count: 8\n", out)

	handled, err := Structured(FormatTable, nil)
	assert.False(t, handled)
	assert.NoError(t, err)
}

func TestNewTable(t *testing.T) {
	headers := []string{"NAME", "UID", "CATEGORY"}
	table := NewTable(headers)

	assert.Equal(t, headers, table.headers)
	assert.Empty(t, table.rows)
}

func TestTable_Render_Empty(t *testing.T) {
	table := NewTable([]string{"Name", "Status"})

	output := captureStdout(func() {
		table.Render()
	})

	assert.Contains(t, output, "Name")
	assert.Contains(t, output, "Status")
	assert.Contains(t, output, "----")
}

func TestTable_RenderTo_ColumnAlignment(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	table := NewTable([]string{"NAME", "UID"})
	table.AddRow([]string{"authentication", "3002"})
	table.AddRow([]string{"dns_activity", "4003"})

	var buf bytes.Buffer
	table.RenderTo(&buf)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "NAME            UID   ", lines[0])
	assert.Equal(t, "--------------  ----  ", lines[1])
	assert.Equal(t, "authentication  3002  ", lines[2])
	assert.Equal(t, "dns_activity    4003  ", lines[3])
}

func TestTable_RenderTo_RaggedRows(t *testing.T) {
	table := NewTable([]string{"A", "B"})
	table.AddRow([]string{"1"})
	table.AddRow([]string{"1", "2", "extra"})

	var buf bytes.Buffer
	assert.NotPanics(t, func() { table.RenderTo(&buf) })
	assert.NotContains(t, buf.String(), "extra")
}
