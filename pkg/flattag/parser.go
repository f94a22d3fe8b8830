// Package flattag flattens tag-delimited markup into delimiter-separated
// lines, each prefixed by the labels of the tags enclosing it.
package flattag

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
)

// Attribute is one key/value pair of a tag. Value is empty for a key
// written without '='.
type Attribute struct {
	Key   string
	Value string
}

// Stats describes the most recent run of a Parser.
type Stats struct {
	Lines        int   // output lines written
	Tags         int   // tags pushed, self-closing ones included
	Runes        int64 // input characters read
	BytesWritten int64
	LastLine     int // input line number at the end of the run
}

// Parser is the flattening state machine. A Parser is not safe for
// concurrent use; it may be reused for several sequential runs.
type Parser struct {
	opts      Options
	autoClose map[string]struct{}
	log       *zap.SugaredLogger

	state   State
	line    int
	buf     strings.Builder
	tagName string
	key     string
	attrs   []Attribute
	depth   int // bracket depth inside a declaration

	stack *tagStack
	out   *emitter
	stats Stats
}

// New creates a parser for opts.
func New(opts Options) *Parser {
	autoClose := opts.autoCloseSet()
	return &Parser{
		opts:      opts,
		autoClose: autoClose,
		log:       zap.NewNop().Sugar(),
		stack:     newTagStack(autoClose),
	}
}

// SetLogger sets the logger used for diagnostics. A nil logger disables
// logging.
func (p *Parser) SetLogger(logger *zap.SugaredLogger) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	p.log = logger
}

// Options returns the options the parser was created with.
func (p *Parser) Options() Options {
	return p.opts
}

// Stats returns the counters of the last run.
func (p *Parser) Stats() Stats {
	return p.stats
}

// Parse reads markup from r until end of input and writes the flattened
// lines to w. A syntax error is returned as a *ParseError; read and write
// failures are wrapped.
func (p *Parser) Parse(r io.Reader, w io.Writer) error {
	if err := p.opts.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	p.reset(w)

	rr, ok := r.(io.RuneReader)
	if !ok {
		rr = bufio.NewReader(r)
	}

	for {
		ch, _, err := rr.ReadRune()
		if errors.Is(err, io.EOF) {
			return p.finish()
		}
		if err != nil {
			return fmt.Errorf("failed to read input at line %d: %w", p.line, err)
		}

		p.stats.Runes++
		if ch == '\n' {
			p.line++
		}

		if err := p.step(ch); err != nil {
			p.log.Debugw("parse failed", "line", p.line, "state", p.state, "error", err)
			return err
		}
		if p.out.err != nil {
			p.recordStats()
			return fmt.Errorf("failed to write output: %w", p.out.err)
		}
	}
}

func (p *Parser) reset(w io.Writer) {
	p.state = InnerText
	p.line = 1
	p.buf.Reset()
	p.tagName = ""
	p.key = ""
	p.attrs = p.attrs[:0]
	p.depth = 0
	p.stack.reset()
	p.out = newEmitter(w, p.opts)
	p.stats = Stats{}
}

// finish handles end of input.
func (p *Parser) finish() error {
	if p.state != InnerText {
		p.log.Debugw("input ended inside markup", "line", p.line, "state", p.state)
		return p.fail(UnexpectedEOF)
	}

	if p.buf.Len() > 0 {
		p.out.text(p.stack, p.buf.String())
		p.buf.Reset()
	}
	p.recordStats()
	if p.out.err != nil {
		return fmt.Errorf("failed to write output: %w", p.out.err)
	}

	if p.stack.len() > 0 {
		p.log.Debugw("discarding unclosed tags", "tags", p.stack.names())
	}

	p.log.Debugw("parse finished",
		"lines", p.stats.Lines,
		"tags", p.stats.Tags,
		"runes", p.stats.Runes,
		"input_lines", p.stats.LastLine,
	)
	return nil
}

func (p *Parser) fail(kind ErrorKind) error {
	p.recordStats()
	return &ParseError{Kind: kind, Line: p.line}
}

// recordStats copies the emitter counters and current line into p.stats.
func (p *Parser) recordStats() {
	p.stats.Lines = p.out.lines
	p.stats.BytesWritten = p.out.written
	p.stats.LastLine = p.line
}

// step feeds one character to the state machine.
func (p *Parser) step(ch rune) error {
	switch p.state {
	case InnerText:
		p.innerText(ch)
		return nil
	case TagOpenInit:
		return p.tagOpenInit(ch)
	case TagOpen:
		return p.tagOpen(ch)
	case TagAttr:
		return p.tagAttr(ch)
	case TagAttrKey:
		return p.tagAttrKey(ch)
	case TagAttrValueInit:
		return p.tagAttrValueInit(ch)
	case TagAttrValueDouble:
		p.tagAttrValueQuoted(ch, '"')
		return nil
	case TagAttrValueSingle:
		p.tagAttrValueQuoted(ch, '\'')
		return nil
	case TagAttrValueNoQuote:
		return p.tagAttrValueNoQuote(ch)
	case TagEmpty:
		return p.tagEmpty(ch)
	case TagCloseInit:
		return p.tagCloseInit(ch)
	case TagClose:
		return p.tagClose(ch)
	case TagSkipDefinition:
		if ch == '>' {
			p.state = InnerText
		}
		return nil
	case TagSkipBang, TagSkipBang2:
		p.tagSkipBang(ch)
		return nil
	case TagSkipDoctype:
		p.tagSkipDoctype(ch)
		return nil
	case TagSkipComment, TagSkipComment2, TagSkipComment3:
		p.tagSkipComment(ch)
		return nil
	}
	return fmt.Errorf("flattag: unknown state %d", int(p.state))
}

func (p *Parser) innerText(ch rune) {
	if ch == '<' {
		p.state = TagOpenInit
		return
	}
	p.append(ch)
}

func (p *Parser) tagOpenInit(ch rune) error {
	switch {
	case ch == '>' || ch == '<' || ch == '"' || ch == '\'':
		return p.fail(InvalidTag)
	case ch == '/':
		// While a tag is open the pending text is flushed even when empty,
		// so the closed tag's ancestry gets a line of its own.
		if p.buf.Len() > 0 || p.stack.len() > 0 {
			p.flushText()
		}
		p.attrs = p.attrs[:0]
		p.state = TagCloseInit
	case ch == '?':
		p.state = TagSkipDefinition
	case ch == '!':
		p.state = TagSkipBang
	case isWhitespace(ch):
	default:
		if p.buf.Len() > 0 {
			p.flushText()
		}
		p.buf.Reset()
		p.attrs = p.attrs[:0]
		p.append(ch)
		p.state = TagOpen
	}
	return nil
}

func (p *Parser) tagOpen(ch rune) error {
	switch {
	case ch == '>':
		p.tagName = p.buf.String()
		p.pushTag()
		p.enterText()
	case ch == '<' || ch == '"' || ch == '\'':
		return p.fail(InvalidTag)
	case ch == '/':
		p.tagName = p.buf.String()
		p.state = TagEmpty
	case isWhitespace(ch):
		p.tagName = p.buf.String()
		p.state = TagAttr
	default:
		p.append(ch)
	}
	return nil
}

func (p *Parser) tagAttr(ch rune) error {
	switch {
	case ch == '>':
		p.pushTag()
		p.enterText()
	case ch == '/':
		p.state = TagEmpty
	case ch == '<' || ch == '"' || ch == '\'':
		return p.fail(InvalidAttribute)
	case isWhitespace(ch):
	default:
		p.buf.Reset()
		p.append(ch)
		p.state = TagAttrKey
	}
	return nil
}

func (p *Parser) tagAttrKey(ch rune) error {
	switch {
	case ch == '=':
		p.key = p.buf.String()
		p.buf.Reset()
		p.state = TagAttrValueInit
	case ch == '>':
		p.addAttr(p.buf.String(), "")
		p.pushTag()
		p.enterText()
	case ch == '<' || ch == '"' || ch == '\'':
		return p.fail(InvalidAttribute)
	case isWhitespace(ch):
		p.addAttr(p.buf.String(), "")
		p.state = TagAttr
	default:
		p.append(ch)
	}
	return nil
}

func (p *Parser) tagAttrValueInit(ch rune) error {
	switch {
	case ch == '"':
		p.state = TagAttrValueDouble
	case ch == '\'':
		p.state = TagAttrValueSingle
	case ch == '<':
		return p.fail(InvalidAttribute)
	case isWhitespace(ch):
		p.addAttr(p.key, "")
		p.state = TagAttr
	default:
		p.append(ch)
		p.state = TagAttrValueNoQuote
	}
	return nil
}

// tagAttrValueQuoted accumulates a quoted value up to the matching quote.
// There is no escaping; the other quote character and '<' are literal.
func (p *Parser) tagAttrValueQuoted(ch, quote rune) {
	if ch == quote {
		p.addAttr(p.key, p.buf.String())
		p.state = TagAttr
		return
	}
	p.append(ch)
}

func (p *Parser) tagAttrValueNoQuote(ch rune) error {
	switch {
	case isWhitespace(ch):
		p.addAttr(p.key, p.buf.String())
		p.state = TagAttr
	case ch == '<' || ch == '"' || ch == '\'':
		return p.fail(InvalidAttribute)
	case ch == '>':
		p.addAttr(p.key, p.buf.String())
		p.pushTag()
		p.enterText()
	default:
		p.append(ch)
	}
	return nil
}

func (p *Parser) tagEmpty(ch rune) error {
	switch {
	case ch == '>':
		p.pushTag()
		p.out.text(p.stack, "")
		p.stack.popUntilMatch(p.tagName)
		p.enterText()
	case isWhitespace(ch):
	default:
		return p.fail(InvalidEmptyTag)
	}
	return nil
}

func (p *Parser) tagCloseInit(ch rune) error {
	switch {
	case ch == '>' || ch == '<' || ch == '"' || ch == '\'':
		return p.fail(InvalidCloseTag)
	case isWhitespace(ch):
	default:
		p.buf.Reset()
		p.append(ch)
		p.state = TagClose
	}
	return nil
}

func (p *Parser) tagClose(ch rune) error {
	switch {
	case ch == '>':
		name := p.buf.String()
		if removed, found := p.stack.popUntilMatch(name); !found {
			p.log.Debugw("close tag without matching open tag", "tag", name, "line", p.line, "discarded", removed)
		}
		p.enterText()
	case ch == '<' || ch == '"' || ch == '\'':
		return p.fail(InvalidCloseTag)
	case isWhitespace(ch):
	default:
		p.append(ch)
	}
	return nil
}

// tagSkipBang tells a comment from a declaration after "<!" and "<!-".
func (p *Parser) tagSkipBang(ch rune) {
	switch {
	case ch == '-' && p.state == TagSkipBang:
		p.state = TagSkipBang2
	case ch == '-':
		p.state = TagSkipComment
	case ch == '>':
		p.state = InnerText
	default:
		p.depth = 1
		p.state = TagSkipDoctype
	}
}

// tagSkipDoctype skips a declaration, including nested <...> groups of an
// internal subset.
func (p *Parser) tagSkipDoctype(ch rune) {
	switch ch {
	case '<':
		p.depth++
	case '>':
		p.depth--
		if p.depth == 0 {
			p.state = InnerText
		}
	}
}

// tagSkipComment scans for "--" followed by '>'. Extra dashes before the
// '>' are absorbed.
func (p *Parser) tagSkipComment(ch rune) {
	switch p.state {
	case TagSkipComment:
		if ch == '-' {
			p.state = TagSkipComment2
		}
	case TagSkipComment2:
		if ch == '-' {
			p.state = TagSkipComment3
		} else {
			p.state = TagSkipComment
		}
	case TagSkipComment3:
		switch ch {
		case '>':
			p.state = InnerText
		case '-':
		default:
			p.state = TagSkipComment
		}
	}
}

// append adds ch to the pending buffer, substituting newlines and tabs.
func (p *Parser) append(ch rune) {
	switch ch {
	case '\n':
		p.buf.WriteString(p.opts.Newline)
	case '\t':
		p.buf.WriteString(p.opts.Tab)
	default:
		p.buf.WriteRune(ch)
	}
}

func (p *Parser) addAttr(key, value string) {
	p.attrs = append(p.attrs, Attribute{Key: key, Value: value})
	p.buf.Reset()
}

// flushText writes the pending buffer as a text line and clears it.
func (p *Parser) flushText() {
	p.out.text(p.stack, p.buf.String())
	p.buf.Reset()
}

// pushTag opens p.tagName with the collected attributes.
func (p *Parser) pushTag() {
	label := p.out.label(p.tagName, p.attrs)
	if evicted := p.stack.push(p.tagName, label); evicted > 0 {
		p.log.Debugw("auto-closed tag", "tag", p.tagName, "line", p.line, "closed", evicted)
	}
	p.stats.Tags++
	if p.opts.AttrMode == AttrLines {
		p.out.attributes(p.stack, p.attrs)
	}
	p.attrs = p.attrs[:0]
}

// enterText returns to plain text with an empty buffer.
func (p *Parser) enterText() {
	p.buf.Reset()
	p.state = InnerText
}

// Convert flattens r into w with opts.
func Convert(r io.Reader, w io.Writer, opts Options) error {
	return New(opts).Parse(r, w)
}

// ConvertString flattens s and returns the output. On a syntax error the
// output produced before the error is returned along with it.
func ConvertString(s string, opts Options) (string, error) {
	var sb strings.Builder
	err := Convert(strings.NewReader(s), &sb, opts)
	return sb.String(), err
}
