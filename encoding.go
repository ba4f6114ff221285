// encoding.go - character encoding lookup
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
	"fmt"
	"strings"

	"github.com/puzpuzpuz/xsync/v3"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// DefaultEncoding is used whenever an encoding name is empty.
const DefaultEncoding = "UTF-8"

// resolved encodings keyed by their lower cased name
var encCache = xsync.NewMapOf[string, encoding.Encoding]()

// Encoding returns the character encoding named 'name'. The name is
// an IANA charset name or alias (eg "ISO-8859-1", "UTF-16BE") or a
// WHATWG label ("latin1", "sjis"); case doesn't matter. An empty name
// denotes UTF-8.
func Encoding(name string) (encoding.Encoding, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	switch key {
	case "", "utf-8", "utf8":
		return unicode.UTF8, nil
	}

	if e, ok := encCache.Load(key); ok {
		return e, nil
	}

	// ianaindex knows a few names it can't provide an encoding for;
	// those come back as (nil, nil).
	e, err := ianaindex.IANA.Encoding(key)
	if err != nil || e == nil {
		e, err = htmlindex.Get(key)
		if err != nil || e == nil {
			return nil, fmt.Errorf("%w: '%s'", ErrUnsupportedEncoding, name)
		}
	}

	e, _ = encCache.LoadOrStore(key, e)
	return e, nil
}

// encode text 's' strictly; runes 'e' can't represent are an error.
func encodeString(s string, enc string) ([]byte, error) {
	e, err := Encoding(enc)
	if err != nil {
		return nil, err
	}

	b, err := e.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", encName(enc), err)
	}
	return b, nil
}

func decodeBytes(b []byte, enc string) (string, error) {
	e, err := Encoding(enc)
	if err != nil {
		return "", err
	}

	s, err := e.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", encName(enc), err)
	}
	return string(s), nil
}

func encName(enc string) string {
	if len(enc) == 0 {
		return DefaultEncoding
	}
	return enc
}
