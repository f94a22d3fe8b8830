package flattag

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmitter_Label(t *testing.T) {
	attrs := []Attribute{{Key: "id", Value: "1"}, {Key: "hidden"}}

	tests := []struct {
		mode AttrMode
		want string
	}{
		{AttrInline, "div@id=1@hidden="},
		{AttrLines, "div"},
		{AttrIgnore, "div"},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			opts := DefaultOptions()
			opts.AttrMode = tt.mode
			e := newEmitter(&bytes.Buffer{}, opts)
			assert.Equal(t, tt.want, e.label("div", attrs))
		})
	}
}

func TestEmitter_Lines(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Delimiter = ','
	e := newEmitter(&buf, opts)

	s := newTagStack(nil)
	e.text(s, "root")
	s.push("a", "a")
	s.push("b", "b")
	e.text(s, "x")
	e.attributes(s, []Attribute{{Key: "k", Value: "v"}})

	assert.Equal(t, "root\na,b,x\na,b,@k,v\n", buf.String())
	assert.Equal(t, 3, e.lines)
	assert.Equal(t, int64(buf.Len()), e.written)
}

func TestEmitter_StickyError(t *testing.T) {
	writeErr := errors.New("closed")
	e := newEmitter(failingWriter{writeErr}, DefaultOptions())

	s := newTagStack(nil)
	e.text(s, "a")
	e.text(s, "b")

	assert.ErrorIs(t, e.err, writeErr)
	assert.Zero(t, e.lines)
}
