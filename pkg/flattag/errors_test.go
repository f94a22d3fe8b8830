package flattag

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseError_Format(t *testing.T) {
	tests := []struct {
		kind    ErrorKind
		message string
	}{
		{InvalidTag, "invalid tag"},
		{InvalidAttribute, "invalid attribute"},
		{InvalidEmptyTag, "invalid empty tag"},
		{InvalidCloseTag, "invalid close tag"},
		{UnexpectedEOF, "unexpected EOF"},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			err := &ParseError{Kind: tt.kind, Line: 7}
			assert.Equal(t, "line 7: "+tt.message, err.Error())
			assert.Equal(t, tt.message, err.Message())
		})
	}
}

func TestParseError_Is(t *testing.T) {
	err := fmt.Errorf("failed to convert: %w", &ParseError{Kind: InvalidCloseTag, Line: 3})

	assert.True(t, errors.Is(err, ErrInvalidCloseTag))
	assert.False(t, errors.Is(err, ErrInvalidTag))

	var perr *ParseError
	assert.True(t, errors.As(err, &perr))
	assert.Equal(t, 3, perr.Line)
}

func TestErrorKind_Unknown(t *testing.T) {
	assert.Equal(t, "ErrorKind(0)", ErrorKind(0).String())
}
