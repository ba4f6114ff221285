// collect.go - read an entire source into a string
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
	"context"
	"io"
	"net/url"
)

// Collect reads all of 'src' and decodes it using the encoding 'enc'
// (UTF-8 if empty). 'src' is closed when it is an io.Closer. On error,
// nothing but the error is returned.
func Collect(src io.Reader, enc string) (string, error) {
	var buf bytes.Buffer

	if _, err := Copy(&buf, src); err != nil {
		return "", err
	}
	return decode(buf.Bytes(), enc)
}

// CollectFile returns the contents of file 'nm' decoded using 'enc'.
func CollectFile(nm string, enc string) (string, error) {
	var buf bytes.Buffer

	if _, err := CopyFromFile(&buf, nm); err != nil {
		return "", err
	}
	return decode(buf.Bytes(), enc)
}

// CollectPath returns the UTF-8 contents of the file at path 'p'.
func CollectPath(p string) (string, error) {
	return CollectFile(p, "")
}

// CollectURL fetches 'u' and returns its contents decoded using 'enc'.
func CollectURL(ctx context.Context, u *url.URL, enc string) (string, error) {
	r, err := OpenURL(ctx, u)
	if err != nil {
		return "", err
	}
	return Collect(r, enc)
}

// CollectRunes accumulates all the characters of 'src' into a string.
// 'src' is closed when it is an io.Closer.
func CollectRunes(src RuneReader) (string, error) {
	var rb RuneBuilder

	if _, err := CopyRunes(&rb, src); err != nil {
		return "", err
	}
	return rb.String(), nil
}

func decode(b []byte, enc string) (string, error) {
	s, err := decodeBytes(b, enc)
	if err != nil {
		return "", &CopyError{"decode", "", "", err}
	}
	return s, nil
}
