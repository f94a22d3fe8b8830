// Package stream opens the input and output sides of a conversion run.
package stream

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/afero"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// Stdio is the file name that selects standard input or output.
const Stdio = "-"

// LookupEncoding resolves a WHATWG encoding label. An empty label and any
// UTF-8 alias return a nil encoding, meaning the input is read as-is.
func LookupEncoding(label string) (encoding.Encoding, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, nil
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q", label)
	}
	if name, _ := htmlindex.Name(enc); name == "utf-8" {
		return nil, nil
	}
	return enc, nil
}

// CommonEncodings lists labels offered by shell completion for --encoding.
// Any WHATWG label is accepted.
func CommonEncodings() []string {
	return []string{
		"utf-8", "shift_jis", "euc-jp", "iso-2022-jp", "euc-kr", "gbk", "gb18030",
		"big5", "windows-1252", "iso-8859-1", "iso-8859-15", "koi8-r", "utf-16le", "utf-16be",
	}
}

// EncodingName returns the canonical name of the encoding selected by label.
func EncodingName(label string) string {
	enc, err := LookupEncoding(label)
	if err != nil || enc == nil {
		return "utf-8"
	}
	name, err := htmlindex.Name(enc)
	if err != nil {
		return label
	}
	return name
}

// Input is an opened, decoded input source.
type Input struct {
	Name string

	r      io.Reader
	closer io.Closer
	count  *countingReader
}

// OpenInput opens path on fs, or wraps stdin when path is empty or "-".
// A non-nil enc decodes the raw bytes to UTF-8.
func OpenInput(fs afero.Fs, path string, stdin io.Reader, enc encoding.Encoding) (*Input, error) {
	in := &Input{Name: "stdin"}

	var raw io.Reader
	if path == "" || path == Stdio {
		raw = stdin
	} else {
		f, err := fs.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open input: %w", err)
		}
		info, err := f.Stat()
		if err == nil && info.IsDir() {
			_ = f.Close()
			return nil, fmt.Errorf("failed to open input: %s is a directory", path)
		}
		in.Name = path
		in.closer = f
		raw = f
	}

	in.count = &countingReader{r: raw}
	in.r = in.count
	if enc != nil {
		in.r = transform.NewReader(in.count, enc.NewDecoder())
	}
	in.r = bufio.NewReader(in.r)
	return in, nil
}

func (in *Input) Read(p []byte) (int, error) {
	return in.r.Read(p)
}

// ReadRune lets the parser read runes without another buffering layer.
func (in *Input) ReadRune() (rune, int, error) {
	return in.r.(io.RuneReader).ReadRune()
}

// BytesRead returns the number of raw (undecoded) bytes consumed so far.
func (in *Input) BytesRead() int64 {
	return in.count.n
}

// Close closes the underlying file. Standard input is left open.
func (in *Input) Close() error {
	if in.closer == nil {
		return nil
	}
	return in.closer.Close()
}

// Output is a buffered output sink.
type Output struct {
	Name string

	w      *bufio.Writer
	closer io.Closer
}

// CreateOutput creates path on fs, or wraps stdout when path is empty or "-".
func CreateOutput(fs afero.Fs, path string, stdout io.Writer) (*Output, error) {
	if path == "" || path == Stdio {
		return &Output{Name: "stdout", w: bufio.NewWriter(stdout)}, nil
	}
	f, err := fs.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output: %w", err)
	}
	return &Output{Name: path, w: bufio.NewWriter(f), closer: f}, nil
}

func (o *Output) Write(p []byte) (int, error) {
	return o.w.Write(p)
}

// WriteString avoids a copy for the parser's per-line writes.
func (o *Output) WriteString(s string) (int, error) {
	return o.w.WriteString(s)
}

// Close flushes buffered output and closes the file. The flush error wins
// when both fail.
func (o *Output) Close() error {
	flushErr := o.w.Flush()
	var closeErr error
	if o.closer != nil {
		closeErr = o.closer.Close()
	}
	if flushErr != nil {
		return fmt.Errorf("failed to flush output: %w", flushErr)
	}
	if closeErr != nil {
		return fmt.Errorf("failed to close output: %w", closeErr)
	}
	return nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
