// errors.go defines the syntax errors raised by the parser.
package flattag

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a syntax error.
type ErrorKind int

const (
	InvalidTag       ErrorKind = iota + 1 // stray '<', '>' or quote right after '<'
	InvalidAttribute                      // malformed attribute list
	InvalidEmptyTag                       // junk after the self-close '/'
	InvalidCloseTag                       // malformed </...>
	UnexpectedEOF                         // input ended inside markup
)

// Sentinel errors, one per kind, for use with errors.Is.
var (
	ErrInvalidTag       = errors.New("invalid tag")
	ErrInvalidAttribute = errors.New("invalid attribute")
	ErrInvalidEmptyTag  = errors.New("invalid empty tag")
	ErrInvalidCloseTag  = errors.New("invalid close tag")
	ErrUnexpectedEOF    = errors.New("unexpected EOF")
)

var kindErrors = map[ErrorKind]error{
	InvalidTag:       ErrInvalidTag,
	InvalidAttribute: ErrInvalidAttribute,
	InvalidEmptyTag:  ErrInvalidEmptyTag,
	InvalidCloseTag:  ErrInvalidCloseTag,
	UnexpectedEOF:    ErrUnexpectedEOF,
}

func (k ErrorKind) String() string {
	if err, ok := kindErrors[k]; ok {
		return err.Error()
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// ParseError is a fatal syntax error with the 1-based line where it was detected.
type ParseError struct {
	Kind ErrorKind
	Line int
}

// Error formats the error as "line N: message".
func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Kind)
}

// Message returns the error text without the line number.
func (e *ParseError) Message() string {
	return e.Kind.String()
}

// Unwrap exposes the sentinel error for the kind.
func (e *ParseError) Unwrap() error {
	return kindErrors[e.Kind]
}
