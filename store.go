// store.go - write the textual form of values to sinks
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
	"fmt"
	"io"
)

// Store writes the textual form of 'v' - the empty string for nil,
// fmt.Sprint(v) otherwise - to 'dst' using the encoding 'enc' (UTF-8
// if empty). Text the encoding can't represent is an error. 'dst' is
// closed afterwards if it is an io.Closer; even on failure.
func Store(dst io.Writer, v any, enc string) (err error) {
	defer func() {
		if c, ok := dst.(io.Closer); ok {
			if cerr := c.Close(); cerr != nil && err == nil {
				err = &CopyError{"close-dst", "", "", cerr}
			}
		}
	}()

	b, err := encodeString(text(v), enc)
	if err != nil {
		return &CopyError{"store", "", "", err}
	}

	if _, err = dst.Write(b); err != nil {
		return &CopyError{"store", "", "", err}
	}
	return nil
}

// StoreFile writes the textual form of 'v' to a newly created file
// 'nm'; see Store.
func StoreFile(nm string, v any, enc string, opts ...Option) error {
	o := makeOptions(opts)

	// Store closes - and thus commits - the file even when encoding
	// fails. Weed out such text before creating the file.
	if _, err := encodeString(text(v), enc); err != nil {
		return &CopyError{"store", "", nm, err}
	}

	d, err := NewSafeFile(nm, 0666)
	if err != nil {
		return &CopyError{"create", "", nm, err}
	}

	defer d.Abort()

	// Store closes (and thus commits) d
	if err = Store(d, v, enc); err != nil {
		return &CopyError{"store", "", nm, err}
	}

	o.debug("store %s", nm)
	return nil
}

// StoreLines writes the textual form of each item in 'items' on a
// line of its own and flushes 'dst'. 'dst' is not closed.
func StoreLines[T any](dst io.Writer, items []T) error {
	w := bufio.NewWriter(dst)
	for i := range items {
		if _, err := fmt.Fprintln(w, text(items[i])); err != nil {
			return &CopyError{"store-lines", "", "", err}
		}
	}

	if err := w.Flush(); err != nil {
		return &CopyError{"flush", "", "", err}
	}
	if err := flush(dst); err != nil {
		return &CopyError{"flush", "", "", err}
	}
	return nil
}

func text(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
