// state.go enumerates the tokenizer states.
package flattag

import "unicode"

// State is a tokenizer state. Every state except InnerText is only
// reachable through a '<'.
type State int

const (
	InnerText          State = iota // plain text outside any tag
	TagOpenInit                     // just saw '<'
	TagOpen                         // accumulating a tag name
	TagAttr                         // between attributes
	TagAttrKey                      // accumulating an attribute key
	TagAttrValueInit                // right after '='
	TagAttrValueDouble              // inside "..."
	TagAttrValueSingle              // inside '...'
	TagAttrValueNoQuote             // unquoted value
	TagEmpty                        // after the self-close '/'
	TagCloseInit                    // after "</"
	TagClose                        // accumulating a close tag name
	TagSkipDefinition               // inside <? ... >
	TagSkipBang                     // after "<!"
	TagSkipBang2                    // after "<!-"
	TagSkipDoctype                  // inside a declaration, counting brackets
	TagSkipComment                  // inside <!-- ... -->
	TagSkipComment2                 // comment, saw '-'
	TagSkipComment3                 // comment, saw "--"
)

var stateNames = [...]string{
	InnerText:           "INNER_TEXT",
	TagOpenInit:         "TAG_OPEN_INIT",
	TagOpen:             "TAG_OPEN",
	TagAttr:             "TAG_ATTR",
	TagAttrKey:          "TAG_ATTR_KEY",
	TagAttrValueInit:    "TAG_ATTR_VALUE_INIT",
	TagAttrValueDouble:  "TAG_ATTR_VALUE_DOUBLE",
	TagAttrValueSingle:  "TAG_ATTR_VALUE_SINGLE",
	TagAttrValueNoQuote: "TAG_ATTR_VALUE_NOQUOTE",
	TagEmpty:            "TAG_EMPTY",
	TagCloseInit:        "TAG_CLOSE_INIT",
	TagClose:            "TAG_CLOSE",
	TagSkipDefinition:   "TAG_SKIP_DEFINITION",
	TagSkipBang:         "TAG_SKIP_BANG",
	TagSkipBang2:        "TAG_SKIP_BANG2",
	TagSkipDoctype:      "TAG_SKIP_DOCTYPE",
	TagSkipComment:      "TAG_SKIP_COMMENT",
	TagSkipComment2:     "TAG_SKIP_COMMENT2",
	TagSkipComment3:     "TAG_SKIP_COMMENT3",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "UNKNOWN"
}

// isWhitespace reports whether r separates tokens inside a tag. No-break
// spaces are not separators; the ASCII information separators are.
func isWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r', 0x1c, 0x1d, 0x1e, 0x1f:
		return true
	case 0x85, 0xa0, 0x2007, 0x202f:
		return false
	}
	return r > 0x7f && unicode.IsSpace(r)
}
