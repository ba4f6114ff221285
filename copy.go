// copy.go - byte and character copy loops
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
	"bytes"
	"io"
)

const (
	// size of the intermediate buffer for byte copies
	_bufSize int = 64 * 1024

	// size of the intermediate buffer for rune copies
	_runeBufSize int = 8000

	// consecutive empty reads we tolerate before giving up
	_maxEmptyReads int = 100
)

// Copy copies all of 'src' to 'dst' and returns the number of bytes
// copied. 'src' is closed when it is an io.Closer - on success and
// on failure; 'dst' is flushed if it implements Flusher but is never
// closed.
func Copy(dst io.Writer, src io.Reader) (n int64, err error) {
	defer closeSrc(src, &err)

	if n, err = copyBytes(dst, src); err != nil {
		return n, &CopyError{"copy", "", "", err}
	}
	if err = flush(dst); err != nil {
		return n, &CopyError{"flush", "", "", err}
	}
	return n, nil
}

// CopyToBuffer copies all of 'src' into the growable buffer 'dst'.
// 'src' is closed when it is an io.Closer.
func CopyToBuffer(dst *bytes.Buffer, src io.Reader) (int64, error) {
	return Copy(dst, src)
}

// CopyToRunes decodes 'src' using the encoding 'enc' and copies the
// resulting characters to 'dst'. An empty 'enc' means UTF-8.
// 'src' is closed when done; 'dst' is flushed, not closed.
func CopyToRunes(dst RuneWriter, src io.Reader, enc string) (n int64, err error) {
	defer closeSrc(src, &err)

	d, err := NewDecoder(src, enc)
	if err != nil {
		return 0, &CopyError{"decoder", "", "", err}
	}

	if n, err = copyRunes(dst, d); err != nil {
		return n, &CopyError{"copy-runes", "", "", err}
	}
	if err = flush(dst); err != nil {
		return n, &CopyError{"flush", "", "", err}
	}
	return n, nil
}

// CopyFromRunes encodes the characters of 'src' using 'enc' and
// writes the bytes to 'dst'. An empty 'enc' means UTF-8.
// 'src' is closed when it is an io.Closer; 'dst' is flushed, not
// closed.
func CopyFromRunes(dst io.Writer, src RuneReader, enc string) (n int64, err error) {
	defer closeSrc(src, &err)

	e, err := NewEncoder(dst, enc)
	if err != nil {
		return 0, &CopyError{"encoder", "", "", err}
	}

	if n, err = copyRunes(e, src); err != nil {
		return n, &CopyError{"copy-runes", "", "", err}
	}

	// this also flushes 'dst'
	if err = e.Flush(); err != nil {
		return n, &CopyError{"flush", "", "", err}
	}
	return n, nil
}

// CopyRunes copies all the characters of 'src' to 'dst' and returns
// the number of runes copied. 'src' is closed when it is an io.Closer;
// 'dst' is flushed, not closed.
func CopyRunes(dst RuneWriter, src RuneReader) (n int64, err error) {
	defer closeSrc(src, &err)

	if n, err = copyRunes(dst, src); err != nil {
		return n, &CopyError{"copy-runes", "", "", err}
	}
	if err = flush(dst); err != nil {
		return n, &CopyError{"flush", "", "", err}
	}
	return n, nil
}

// Drain reads and discards all of 'src' and returns the number of
// bytes consumed. 'src' is closed when it is an io.Closer.
func Drain(src io.Reader) (n int64, err error) {
	defer closeSrc(src, &err)

	if n, err = copyBytes(io.Discard, src); err != nil {
		return n, &CopyError{"drain", "", "", err}
	}
	return n, nil
}

// copyBytes is the byte copy loop: it reads until src returns
// io.EOF and writes everything it reads before looking at the
// read error.
func copyBytes(dst io.Writer, src io.Reader) (int64, error) {
	var z int64

	buf := make([]byte, _bufSize)
	for empty := 0; ; {
		n, rerr := src.Read(buf)
		if n > 0 {
			empty = 0
			m, err := dst.Write(buf[:n])
			z += int64(m)
			if err != nil {
				return z, err
			}
			if m != n {
				return z, io.ErrShortWrite
			}
		}

		switch {
		case rerr == io.EOF:
			return z, nil
		case rerr != nil:
			return z, rerr
		case n == 0:
			if empty++; empty >= _maxEmptyReads {
				return z, io.ErrNoProgress
			}
		}
	}
}

// copyRunes is the character copy loop; same structure as copyBytes.
func copyRunes(dst RuneWriter, src RuneReader) (int64, error) {
	var z int64

	buf := make([]rune, _runeBufSize)
	for empty := 0; ; {
		n, rerr := src.ReadRunes(buf)
		if n > 0 {
			empty = 0
			m, err := dst.WriteRunes(buf[:n])
			z += int64(m)
			if err != nil {
				return z, err
			}
			if m != n {
				return z, io.ErrShortWrite
			}
		}

		switch {
		case rerr == io.EOF:
			return z, nil
		case rerr != nil:
			return z, rerr
		case n == 0:
			if empty++; empty >= _maxEmptyReads {
				return z, io.ErrNoProgress
			}
		}
	}
}

// close 's' if it's closable; a close failure is reported
// only when there isn't an earlier error.
func closeSrc(s any, errp *error) {
	c, ok := s.(io.Closer)
	if !ok {
		return
	}

	if err := c.Close(); err != nil && *errp == nil {
		*errp = &CopyError{"close-src", "", "", err}
	}
}
