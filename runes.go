// runes.go - character stream interfaces and adapters
//
// (c) 2025 Sudhi Herle <sudhi@herle.net>
//
// Licensing Terms: GPLv2
//
// If you need a commercial license for this work, please contact
// the author.
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package xfer

import (
	"bufio"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// RuneReader is a source of decoded characters. ReadRunes
// follows the io.Reader contract: it returns the number of
// runes stored in 'p' and io.EOF at the end of the stream.
type RuneReader interface {
	ReadRunes(p []rune) (int, error)
}

// RuneWriter is a sink of characters.
type RuneWriter interface {
	WriteRunes(p []rune) (int, error)
}

// Flusher is implemented by sinks that buffer data; the copy
// functions flush such sinks once the source is exhausted.
type Flusher interface {
	Flush() error
}

// Decoder turns a byte stream in a given encoding into runes.
type Decoder struct {
	r  io.Reader
	br *bufio.Reader
}

var _ RuneReader = &Decoder{}
var _ io.Closer = &Decoder{}

// NewDecoder returns a RuneReader that decodes 'r' using the
// encoding 'enc'; an empty 'enc' means UTF-8. Malformed input
// decodes to utf8.RuneError.
func NewDecoder(r io.Reader, enc string) (*Decoder, error) {
	e, err := Encoding(enc)
	if err != nil {
		return nil, err
	}

	d := &Decoder{
		r:  r,
		br: bufio.NewReaderSize(transform.NewReader(r, e.NewDecoder()), _bufSize),
	}
	return d, nil
}

// ReadRunes reads upto len(p) runes. It only blocks for more input
// when it has nothing to return.
func (d *Decoder) ReadRunes(p []rune) (int, error) {
	var n int
	for n < len(p) {
		if n > 0 {
			b, _ := d.br.Peek(d.br.Buffered())
			if !utf8.FullRune(b) {
				break
			}
		}

		c, _, err := d.br.ReadRune()
		if err != nil {
			return n, err
		}
		p[n] = c
		n++
	}
	return n, nil
}

// Close closes the underlying byte stream if it is closable.
func (d *Decoder) Close() error {
	if c, ok := d.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Encoder turns runes into bytes of a given encoding and writes
// them to an io.Writer.
type Encoder struct {
	w   io.Writer
	enc encoding.Encoding
	tw  *transform.Writer
	buf []byte
}

var _ RuneWriter = &Encoder{}
var _ Flusher = &Encoder{}

// NewEncoder returns a RuneWriter that encodes runes with 'enc'
// and writes them to 'w'; an empty 'enc' means UTF-8. Callers must
// call Flush when done.
func NewEncoder(w io.Writer, enc string) (*Encoder, error) {
	e, err := Encoding(enc)
	if err != nil {
		return nil, err
	}

	ew := &Encoder{
		w:   w,
		enc: e,
		tw:  transform.NewWriter(w, e.NewEncoder()),
		buf: make([]byte, 0, 256),
	}
	return ew, nil
}

// WriteRunes encodes and writes all of 'p'. Runes the encoding
// can't represent are an error.
func (e *Encoder) WriteRunes(p []rune) (int, error) {
	b := e.buf[:0]
	for _, c := range p {
		b = utf8.AppendRune(b, c)
	}
	e.buf = b

	if _, err := e.tw.Write(b); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Flush finishes the current encoding run and flushes the
// underlying writer if it buffers data.
func (e *Encoder) Flush() error {
	err := e.tw.Close()
	e.tw = transform.NewWriter(e.w, e.enc.NewEncoder())
	if err != nil {
		return err
	}
	return flush(e.w)
}

// StringReader is a RuneReader over an in-memory string.
type StringReader struct {
	s string
}

var _ RuneReader = &StringReader{}

// NewStringReader returns a RuneReader that yields the runes of 's'.
func NewStringReader(s string) *StringReader {
	return &StringReader{s: s}
}

func (r *StringReader) ReadRunes(p []rune) (int, error) {
	if len(r.s) == 0 {
		return 0, io.EOF
	}

	var n int
	for n < len(p) && len(r.s) > 0 {
		c, sz := utf8.DecodeRuneInString(r.s)
		r.s = r.s[sz:]
		p[n] = c
		n++
	}
	return n, nil
}

// RuneBuilder is a growable in-memory sink of runes.
type RuneBuilder struct {
	b strings.Builder
}

var _ RuneWriter = &RuneBuilder{}

func (rb *RuneBuilder) WriteRunes(p []rune) (int, error) {
	for _, c := range p {
		rb.b.WriteRune(c)
	}
	return len(p), nil
}

// String returns the accumulated text.
func (rb *RuneBuilder) String() string {
	return rb.b.String()
}

// Len returns the number of bytes accumulated so far.
func (rb *RuneBuilder) Len() int {
	return rb.b.Len()
}

// flush 'w' if it buffers data
func flush(w any) error {
	if f, ok := w.(Flusher); ok {
		return f.Flush()
	}
	return nil
}
