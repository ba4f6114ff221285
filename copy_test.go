// copy_test.go - stream copy tests
//
// (c) 2021 Sudhi Herle <sudhi@herle.net>
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
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestCopyRoundTrip(t *testing.T) {
	assert := newAsserter(t)

	sizes := []int{0, 1, 4095, _bufSize - 1, _bufSize, _bufSize + 1, 3*_bufSize + 17}
	for _, sz := range sizes {
		src := randbuf(make([]byte, sz))
		in := &closeTracker{Reader: bytes.NewReader(src)}

		var dst bytes.Buffer
		n, err := Copy(&dst, in)
		assert(err == nil, "%d: copy: %s", sz, err)
		assert(n == int64(sz), "%d: copy: saw %d bytes", sz, n)
		assert(byteEq(src, dst.Bytes()), "%d: content mismatch", sz)
		assert(in.closed == 1, "%d: src closed %d times", sz, in.closed)
	}
}

func TestCopyTrickle(t *testing.T) {
	assert := newAsserter(t)

	src := randbuf(make([]byte, 10000))
	r := &trickleReader{b: src, chunk: 7}

	var dst bytes.Buffer
	n, err := CopyToBuffer(&dst, r)
	assert(err == nil, "copy: %s", err)
	assert(n == int64(len(src)), "copy: exp %d, saw %d", len(src), n)
	assert(byteEq(src, dst.Bytes()), "content mismatch")
}

func TestCopyNoProgress(t *testing.T) {
	assert := newAsserter(t)

	r := &trickleReader{b: []byte("x"), chunk: 0}
	_, err := Copy(io.Discard, r)
	assert(errors.Is(err, io.ErrNoProgress), "exp ErrNoProgress, saw %v", err)
}

func TestCopyFlushNotClose(t *testing.T) {
	assert := newAsserter(t)

	var s sinkTracker
	_, err := Copy(&s, strings.NewReader("hello"))
	assert(err == nil, "copy: %s", err)
	assert(string(s.buf) == "hello", "content: saw %q", s.buf)
	assert(s.flushes == 1, "flushes: exp 1, saw %d", s.flushes)
	assert(s.closes == 0, "sink closed")
}

func TestCopyErrorsCloseSource(t *testing.T) {
	assert := newAsserter(t)

	in := &closeTracker{Reader: &failReader{b: []byte("abc"), err: errTest}}
	_, err := Copy(io.Discard, in)
	assert(errors.Is(err, errTest), "read error: saw %v", err)
	assert(in.closed == 1, "src not closed on read error")

	var ce *CopyError
	assert(errors.As(err, &ce), "exp CopyError, saw %T", err)

	in = &closeTracker{Reader: strings.NewReader("abc")}
	_, err = Copy(&failWriter{errTest}, in)
	assert(errors.Is(err, errTest), "write error: saw %v", err)
	assert(in.closed == 1, "src not closed on write error")
}

func TestCopyCloseError(t *testing.T) {
	assert := newAsserter(t)

	in := &closeTracker{Reader: strings.NewReader("abc"), err: errTest}
	n, err := Copy(io.Discard, in)
	assert(n == 3, "exp 3 bytes, saw %d", n)
	assert(errors.Is(err, errTest), "close error not reported: %v", err)
}

func TestDrain(t *testing.T) {
	assert := newAsserter(t)

	for _, sz := range []int{0, 1, 100, 3*_bufSize + 5} {
		in := &closeTracker{Reader: bytes.NewReader(make([]byte, sz))}
		n, err := Drain(in)
		assert(err == nil, "%d: drain: %s", sz, err)
		assert(n == int64(sz), "%d: drain: saw %d", sz, n)
		assert(in.closed == 1, "%d: src not closed", sz)
	}

	in := &closeTracker{Reader: &failReader{b: []byte("abc"), err: errTest}}
	n, err := Drain(in)
	assert(errors.Is(err, errTest), "drain: exp error, saw %v", err)
	assert(n == 3, "drain: exp 3, saw %d", n)
	assert(in.closed == 1, "src not closed on error")
}

func TestCopyRunes(t *testing.T) {
	assert := newAsserter(t)

	texts := []string{
		"",
		"hello, world",
		"héllo wörld – ünïcödé ✓ 日本語 🙂",
		strings.Repeat("abcdé日🙂", _runeBufSize/3),
	}

	for i, s := range texts {
		var rb RuneBuilder
		n, err := CopyRunes(&rb, NewStringReader(s))
		assert(err == nil, "%d: copy-runes: %s", i, err)
		assert(rb.String() == s, "%d: text mismatch", i)
		assert(rb.Len() == len(s), "%d: exp %d bytes, saw %d", i, len(s), rb.Len())
		assert(n == int64(len([]rune(s))), "%d: exp %d runes, saw %d", i, len([]rune(s)), n)
	}
}

func TestCopyToFromRunes(t *testing.T) {
	assert := newAsserter(t)

	tests := []struct {
		enc  string
		text string
	}{
		{"", "plain ascii"},
		{"UTF-8", "ünïcödé ✓ 日本語 🙂"},
		{"ISO-8859-1", "café crème brûlée"},
		{"windows-1252", "naïve façade"},
		{"UTF-16LE", "wide 日本語 🙂"},
		{"Shift_JIS", "日本語のテキスト"},
	}

	for _, tx := range tests {
		t.Run(encName(tx.enc), func(t *testing.T) {
			assert := newAsserter(t)

			var enc bytes.Buffer
			n, err := CopyFromRunes(&enc, NewStringReader(tx.text), tx.enc)
			assert(err == nil, "from-runes: %s", err)
			assert(n == int64(len([]rune(tx.text))), "from-runes: saw %d runes", n)

			var rb RuneBuilder
			in := &closeTracker{Reader: &enc}
			_, err = CopyToRunes(&rb, in, tx.enc)
			assert(err == nil, "to-runes: %s", err)
			assert(rb.String() == tx.text, "round trip: exp %q, saw %q", tx.text, rb.String())
			assert(in.closed == 1, "src not closed")
		})
	}

	_, err := CopyToRunes(&RuneBuilder{}, strings.NewReader("x"), "no-such-charset")
	assert(errors.Is(err, ErrUnsupportedEncoding), "exp unsupported encoding, saw %v", err)
}

func TestCopyFromRunesFlushes(t *testing.T) {
	assert := newAsserter(t)

	var out bytes.Buffer
	w := bufio.NewWriter(&out)

	_, err := CopyFromRunes(w, NewStringReader("buffered"), "")
	assert(err == nil, "from-runes: %s", err)
	assert(out.String() == "buffered", "bufio writer not flushed: %q", out.String())
}

func TestDecoderNoBlock(t *testing.T) {
	assert := newAsserter(t)

	// a pipe that only ever holds one write; a second read attempt
	// after the first chunk would block forever.
	pr, pw := io.Pipe()
	go pw.Write([]byte("héllo"))

	d, err := NewDecoder(pr, "")
	assert(err == nil, "decoder: %s", err)

	buf := make([]rune, 64)
	n, err := d.ReadRunes(buf)
	assert(err == nil, "read: %s", err)
	assert(string(buf[:n]) == "héllo", "read: saw %q", string(buf[:n]))

	pw.Close()
	n, err = d.ReadRunes(buf)
	assert(n == 0 && err == io.EOF, "exp EOF, saw %d, %v", n, err)
}
