// copy_mmap.go - copy using mmap(2)
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
	"io"
	"os"

	"github.com/opencoff/go-mmap"
)

// copyViaMmap maps 'src' in chunks and writes each chunk to 'dst'.
func copyViaMmap(dst io.Writer, src *os.File) (int64, error) {
	var z int64
	_, err := mmap.Reader(src, func(b []byte) error {
		for len(b) > 0 {
			n, err := dst.Write(b)
			z += int64(n)
			if err != nil {
				return err
			}
			if n == 0 {
				return io.ErrShortWrite
			}
			b = b[n:]
		}
		return nil
	})
	return z, err
}
