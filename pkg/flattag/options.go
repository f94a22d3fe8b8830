// options.go defines the configuration of a flattag run.
package flattag

import (
	"errors"
	"fmt"
	"strings"
)

// Default option values.
const (
	DefaultDelimiter  = '\t'
	DefaultAttrPrefix = '@'
	DefaultAttrInfix  = '='
	DefaultNewline    = " "
	DefaultTab        = " "
)

// AttrMode selects how tag attributes appear in the output.
type AttrMode int

const (
	AttrInline AttrMode = iota // attributes folded into the tag label
	AttrLines                  // one output line per attribute
	AttrIgnore                 // attributes dropped
)

var attrModeNames = map[AttrMode]string{
	AttrInline: "inline",
	AttrLines:  "lines",
	AttrIgnore: "ignore",
}

// String returns the configuration name of the mode.
func (m AttrMode) String() string {
	if name, ok := attrModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("AttrMode(%d)", int(m))
}

// ParseAttrMode converts a configuration name into an AttrMode.
// The empty string selects the default inline mode.
func ParseAttrMode(s string) (AttrMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "inline":
		return AttrInline, nil
	case "lines", "line":
		return AttrLines, nil
	case "ignore":
		return AttrIgnore, nil
	}
	return AttrInline, fmt.Errorf("invalid attribute mode %q (valid: %s)", s, strings.Join(ValidAttrModes(), ", "))
}

// ValidAttrModes returns the accepted attribute mode names.
func ValidAttrModes() []string {
	return []string{"inline", "lines", "ignore"}
}

// Options configures a Parser. It is fixed for the duration of a run.
type Options struct {
	// Delimiter separates labels from each other and from the payload.
	Delimiter rune
	// AttrPrefix precedes every attribute key.
	AttrPrefix rune
	// AttrInfix separates key and value in inline mode.
	AttrInfix rune
	// Newline replaces every literal newline in text and attribute values.
	Newline string
	// Tab replaces every literal tab in text and attribute values.
	Tab string

	AttrMode AttrMode

	// AutoClose lists tags that close an open tag of the same name
	// instead of nesting inside it, e.g. "tr" and "td".
	AutoClose []string
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Delimiter:  DefaultDelimiter,
		AttrPrefix: DefaultAttrPrefix,
		AttrInfix:  DefaultAttrInfix,
		Newline:    DefaultNewline,
		Tab:        DefaultTab,
		AttrMode:   AttrInline,
	}
}

// Validate checks that the options can drive a parse.
func (o Options) Validate() error {
	if o.Delimiter == 0 {
		return errors.New("delimiter is required")
	}
	if o.AttrPrefix == 0 {
		return errors.New("attribute prefix is required")
	}
	if o.AttrInfix == 0 {
		return errors.New("attribute infix is required")
	}
	if _, ok := attrModeNames[o.AttrMode]; !ok {
		return fmt.Errorf("invalid attribute mode: %d", int(o.AttrMode))
	}
	for _, name := range o.AutoClose {
		if name == "" {
			return errors.New("auto-close tag names must not be empty")
		}
	}
	return nil
}

// autoCloseSet returns the auto-close names as a lookup set.
func (o Options) autoCloseSet() map[string]struct{} {
	set := make(map[string]struct{}, len(o.AutoClose))
	for _, name := range o.AutoClose {
		set[name] = struct{}{}
	}
	return set
}

// SplitTagList splits a comma-separated list of tag names, dropping
// surrounding blanks and empty items.
func SplitTagList(s string) []string {
	var names []string
	for _, name := range strings.Split(s, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// CharOption interprets a single-character option value. The two-character
// sequence `\t` stands for a tab; an empty value yields def; otherwise the
// first character is used.
func CharOption(s string, def rune) rune {
	if s == `\t` {
		return '\t'
	}
	for _, r := range s {
		return r
	}
	return def
}
