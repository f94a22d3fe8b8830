package view

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		wantErr bool
	}{
		{"empty (default)", "", false},
		{"table", "table", false},
		{"json", "json", false},
		{"plain", "plain", false},
		{"invalid", "invalid", true},
		{"xml", "xml", true},
		{"TABLE uppercase", "TABLE", true}, // case-sensitive
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFormat(tt.format)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "invalid output format")
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidFormats(t *testing.T) {
	formats := ValidFormats()
	assert.Contains(t, formats, "table")
	assert.Contains(t, formats, "json")
	assert.Contains(t, formats, "plain")
	assert.Len(t, formats, 3)
}

func TestVisible(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", `""`},
		{"space", " ", " "},
		{"tab", "\t", `\t`},
		{"mixed", "a\tb\nc\r", `a\tb\nc\r`},
		{"plain", "@", "@"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Visible(tt.input))
		})
	}
}

var testSettings = []Setting{
	{Key: "delimiter", Value: `\t`, Source: "default"},
	{Key: "attribute_mode", Value: "lines", Source: "env"},
}

func TestRenderer_RenderSettings_Table(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(FormatTable, true)
	r.SetWriter(&buf)

	require.NoError(t, r.RenderSettings(testSettings))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "KEY             VALUE  SOURCE", lines[0])
	assert.Equal(t, `delimiter       \t     default`, lines[1])
	assert.Equal(t, "attribute_mode  lines  env", lines[2])
}

func TestRenderer_RenderSettings_JSON(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(FormatJSON, true)
	r.SetWriter(&buf)

	require.NoError(t, r.RenderSettings(testSettings))

	var result []Setting
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	assert.Equal(t, testSettings, result)
}

func TestRenderer_RenderSettings_EmptyJSON(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(FormatJSON, true)
	r.SetWriter(&buf)

	require.NoError(t, r.RenderSettings(nil))
	assert.Equal(t, "[]", strings.TrimSpace(buf.String()))
}

func TestRenderer_RenderSettings_Plain(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(FormatPlain, true)
	r.SetWriter(&buf)

	require.NoError(t, r.RenderSettings(testSettings))
	assert.Equal(t, "delimiter\t\\t\tdefault\nattribute_mode\tlines\tenv\n", buf.String())
}

func TestRenderer_DefaultFormat(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer("", true)
	r.SetWriter(&buf)

	require.NoError(t, r.RenderSettings(nil))
	assert.Contains(t, buf.String(), "KEY")
}

func TestRenderer_RenderJSON(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(FormatJSON, true)
	r.SetWriter(&buf)

	err := r.RenderJSON(map[string]int{"lines": 3})
	require.NoError(t, err)

	var result map[string]int
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	assert.Equal(t, 3, result["lines"])
}

func TestRenderer_RenderText(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(FormatTable, true)
	r.SetWriter(&buf)

	r.RenderText("/home/user/.config/flattag/config.yml")

	assert.Equal(t, "/home/user/.config/flattag/config.yml\n", buf.String())
}

func TestRenderer_Messages(t *testing.T) {
	tests := []struct {
		name   string
		render func(r *Renderer)
		want   string
	}{
		{"success", func(r *Renderer) { r.Success("Configuration saved") }, "✓ Configuration saved\n"},
		{"warning", func(r *Renderer) { r.Warning("No config file found") }, "! No config file found\n"},
		{"error", func(r *Renderer) { r.Error("Something went wrong") }, "✗ Something went wrong\n"},
		{"diagnostic", func(r *Renderer) { r.Diagnostic("line 2: invalid tag") }, "line 2: invalid tag\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			r := NewRenderer(FormatTable, true)
			r.SetWriter(&buf)

			tt.render(r)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestRenderer_RenderKeyValue(t *testing.T) {
	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		r := NewRenderer(FormatTable, true)
		r.SetWriter(&buf)

		r.RenderKeyValue("Path", "/tmp/config.yml")
		assert.Equal(t, "Path: /tmp/config.yml\n", buf.String())
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		r := NewRenderer(FormatJSON, true)
		r.SetWriter(&buf)

		r.RenderKeyValue("path", `C:\flattag`)
		assert.Equal(t, `{"path":"C:\\flattag"}`, strings.TrimSpace(buf.String()))
	})
}
