// Package view renders flattag's own messages: configuration listings,
// status lines and diagnostics. Conversion output never goes through here.
package view

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Format represents an output format.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatPlain Format = "plain"
)

// ValidFormats returns the accepted --format values.
func ValidFormats() []string {
	return []string{string(FormatTable), string(FormatJSON), string(FormatPlain)}
}

// ValidateFormat checks a --format value. Empty selects the table format.
func ValidateFormat(format string) error {
	if format == "" {
		return nil
	}
	for _, f := range ValidFormats() {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("invalid output format %q (valid: %s)", format, strings.Join(ValidFormats(), ", "))
}

// Setting is one effective configuration value and where it came from.
type Setting struct {
	Key    string `json:"key"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// Renderer renders data in a specific format.
type Renderer struct {
	format  Format
	writer  io.Writer
	noColor bool
}

// NewRenderer creates a new renderer with the specified format.
func NewRenderer(format Format, noColor bool) *Renderer {
	if noColor {
		color.NoColor = true
	}
	if format == "" {
		format = FormatTable
	}
	return &Renderer{
		format:  format,
		writer:  os.Stdout,
		noColor: noColor,
	}
}

// SetWriter sets the output writer.
func (r *Renderer) SetWriter(w io.Writer) {
	r.writer = w
}

// RenderSettings lists configuration values. The table format aligns the
// columns and bolds the keys; plain is tab-separated without a header.
func (r *Renderer) RenderSettings(settings []Setting) error {
	switch r.format {
	case FormatJSON:
		if settings == nil {
			settings = []Setting{}
		}
		return r.RenderJSON(settings)
	case FormatPlain:
		for _, s := range settings {
			fmt.Fprintf(r.writer, "%s\t%s\t%s\n", s.Key, s.Value, s.Source)
		}
		return nil
	}

	keyWidth, valueWidth := len("KEY"), len("VALUE")
	for _, s := range settings {
		keyWidth = max(keyWidth, len(s.Key))
		valueWidth = max(valueWidth, len(s.Value))
	}

	fmt.Fprintf(r.writer, "%-*s  %-*s  %s\n", keyWidth, "KEY", valueWidth, "VALUE", "SOURCE")
	bold := color.New(color.Bold)
	for _, s := range settings {
		bold.Fprintf(r.writer, "%-*s", keyWidth, s.Key)
		fmt.Fprintf(r.writer, "  %-*s  %s\n", valueWidth, s.Value, s.Source)
	}
	return nil
}

// RenderJSON renders an object as JSON.
func (r *Renderer) RenderJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(r.writer, string(data))
	return nil
}

// RenderText renders plain text.
func (r *Renderer) RenderText(text string) {
	fmt.Fprintln(r.writer, text)
}

// RenderKeyValue renders a key-value pair.
func (r *Renderer) RenderKeyValue(key, value string) {
	if r.format == FormatJSON {
		data, _ := json.Marshal(map[string]string{key: value})
		fmt.Fprintln(r.writer, string(data))
		return
	}
	bold := color.New(color.Bold)
	bold.Fprintf(r.writer, "%s: ", key)
	fmt.Fprintln(r.writer, value)
}

// Success prints a success message.
func (r *Renderer) Success(msg string) {
	green := color.New(color.FgGreen)
	green.Fprintln(r.writer, "✓ "+msg)
}

// Warning prints a warning message.
func (r *Renderer) Warning(msg string) {
	yellow := color.New(color.FgYellow)
	yellow.Fprintln(r.writer, "! "+msg)
}

// Error prints an error message.
func (r *Renderer) Error(msg string) {
	red := color.New(color.FgRed)
	red.Fprintln(r.writer, "✗ "+msg)
}

// Diagnostic prints msg in red with no decoration, for conversion errors
// such as "line 3: invalid tag".
func (r *Renderer) Diagnostic(msg string) {
	red := color.New(color.FgRed)
	red.Fprintln(r.writer, msg)
}

// Visible makes whitespace in a configured value readable: tab, newline and
// carriage return are escaped and an empty value is shown as "".
func Visible(s string) string {
	if s == "" {
		return `""`
	}
	return strings.NewReplacer("\t", `\t`, "\n", `\n`, "\r", `\r`).Replace(s)
}
