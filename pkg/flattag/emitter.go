// emitter.go writes the flattened output lines.
package flattag

import (
	"io"
	"strings"
)

// emitter writes delimited lines to the output sink. The first write
// error is kept and every later write is skipped.
type emitter struct {
	w          io.Writer
	delimiter  string
	attrPrefix string
	attrInfix  string
	mode       AttrMode

	buf     strings.Builder
	lines   int
	written int64
	err     error
}

func newEmitter(w io.Writer, opts Options) *emitter {
	return &emitter{
		w:          w,
		delimiter:  string(opts.Delimiter),
		attrPrefix: string(opts.AttrPrefix),
		attrInfix:  string(opts.AttrInfix),
		mode:       opts.AttrMode,
	}
}

// text writes one line: every label followed by the delimiter, then the
// payload.
func (e *emitter) text(stack *tagStack, payload string) {
	e.buf.Reset()
	e.writePrefix(stack)
	e.buf.WriteString(payload)
	e.buf.WriteByte('\n')
	e.flush()
}

// attributes writes one line per attribute in attribute-lines mode.
func (e *emitter) attributes(stack *tagStack, attrs []Attribute) {
	for _, a := range attrs {
		e.buf.Reset()
		e.writePrefix(stack)
		e.buf.WriteString(e.attrPrefix)
		e.buf.WriteString(a.Key)
		e.buf.WriteString(e.delimiter)
		e.buf.WriteString(a.Value)
		e.buf.WriteByte('\n')
		e.flush()
	}
}

// label builds the stack label for a tag under the configured mode.
func (e *emitter) label(name string, attrs []Attribute) string {
	if e.mode != AttrInline || len(attrs) == 0 {
		return name
	}
	var sb strings.Builder
	sb.WriteString(name)
	for _, a := range attrs {
		sb.WriteString(e.attrPrefix)
		sb.WriteString(a.Key)
		sb.WriteString(e.attrInfix)
		sb.WriteString(a.Value)
	}
	return sb.String()
}

func (e *emitter) writePrefix(stack *tagStack) {
	for _, entry := range stack.entries {
		e.buf.WriteString(entry.label)
		e.buf.WriteString(e.delimiter)
	}
}

func (e *emitter) flush() {
	if e.err != nil {
		return
	}
	n, err := io.WriteString(e.w, e.buf.String())
	e.written += int64(n)
	if err != nil {
		e.err = err
		return
	}
	e.lines++
}
