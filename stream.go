// stream.go - open strings, files and locators as byte sources
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
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/puzpuzpuz/xsync/v3"
)

// Opener opens the resource named by a URL for reading.
type Opener func(ctx context.Context, u *url.URL) (io.ReadCloser, error)

// openers keyed by lower case URL scheme
var schemes = xsync.NewMapOf[string, Opener]()

func init() {
	RegisterScheme("file", openFileURL)
	RegisterScheme("http", openHTTP)
	RegisterScheme("https", openHTTP)
}

// RegisterScheme makes OpenURL use 'op' for URLs with the scheme
// 'scheme'; it replaces any earlier opener for the same scheme.
func RegisterScheme(scheme string, op Opener) {
	schemes.Store(strings.ToLower(scheme), op)
}

// Stream returns a byte source with the text 's' encoded using
// 'enc' (UTF-8 if empty). Unknown encodings and text the encoding
// can't represent are errors.
func Stream(s string, enc string) (io.ReadCloser, error) {
	b, err := encodeString(s, enc)
	if err != nil {
		return nil, &CopyError{"stream", "", "", err}
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

// StreamFile opens the file 'nm' for reading.
func StreamFile(nm string) (io.ReadCloser, error) {
	fd, err := os.Open(nm)
	if err != nil {
		return nil, &PathError{"open", nm, notFound(err)}
	}
	return fd, nil
}

// IsURL returns true if 's' looks like a URL rather than a file
// path: a scheme of 1 to 9 characters followed by a ':'.
func IsURL(s string) bool {
	n := strings.IndexByte(s, ':')
	return n > 0 && n < 10
}

// ToURL returns 's' as a URL. If 's' isn't a URL (see IsURL), it is
// a path resolved relative to 'base' and returned as a file URL.
func ToURL(s string, base string) (*url.URL, error) {
	if IsURL(s) {
		u, err := url.Parse(s)
		if err != nil {
			return nil, &PathError{"url", s, fmt.Errorf("%w: %w", ErrInvalidArg, err)}
		}
		return u, nil
	}

	p, err := Resolve(base, s)
	if err != nil {
		return nil, err
	}

	u := &url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(p),
	}
	return u, nil
}

// Open opens the location 's' for reading: URLs are handed to
// OpenURL and everything else is a file path resolved relative
// to 'base'.
func Open(ctx context.Context, s string, base string) (io.ReadCloser, error) {
	if IsURL(s) {
		u, err := ToURL(s, base)
		if err != nil {
			return nil, err
		}
		return OpenURL(ctx, u)
	}

	p, err := Resolve(base, s)
	if err != nil {
		return nil, err
	}
	return StreamFile(p)
}

// OpenURL opens 'u' with the opener registered for its scheme.
// "file", "http" and "https" are always available.
func OpenURL(ctx context.Context, u *url.URL) (io.ReadCloser, error) {
	op, ok := schemes.Load(strings.ToLower(u.Scheme))
	if !ok {
		err := fmt.Errorf("%w: no opener for scheme '%s'", ErrInvalidArg, u.Scheme)
		return nil, &PathError{"open-url", u.String(), err}
	}

	r, err := op(ctx, u)
	if err != nil {
		return nil, &PathError{"open-url", u.String(), err}
	}
	return r, nil
}

func openFileURL(_ context.Context, u *url.URL) (io.ReadCloser, error) {
	if len(u.Host) > 0 && u.Host != "localhost" {
		return nil, fmt.Errorf("%w: remote file host '%s'", ErrInvalidArg, u.Host)
	}

	fd, err := os.Open(filepath.FromSlash(u.Path))
	if err != nil {
		return nil, notFound(err)
	}
	return fd, nil
}

func openHTTP(ctx context.Context, u *url.URL) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}

	switch c := resp.StatusCode; {
	case c >= 200 && c < 300:
		return resp.Body, nil

	case c == http.StatusNotFound || c == http.StatusGone:
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %s", ErrNotFound, resp.Status)

	default:
		resp.Body.Close()
		return nil, fmt.Errorf("http get: %s", resp.Status)
	}
}
