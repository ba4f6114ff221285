// path.go - resolve paths relative to a base directory
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
	"path/filepath"
	"strings"
)

// Resolve returns the absolute path of 'p' relative to the directory
// 'base'. An absolute 'p' is returned unchanged. Otherwise 'p' is
// walked one '/' separated segment at a time starting from the
// absolute form of 'base': ".." moves to the parent of the current
// location, "." and empty segments stay put and every other segment
// descends into a child of that name. Moving above the root of the
// file system fails with ErrNoParent.
//
// Unlike filepath.Join, ".." is applied to the location built so far;
// eg. Resolve("/a/b", "c/../d") is "/a/b/d" and Resolve("/a/b", "..")
// is "/a".
func Resolve(base, p string) (string, error) {
	if filepath.IsAbs(p) {
		return p, nil
	}

	cur, err := filepath.Abs(base)
	if err != nil {
		return "", &PathError{"resolve", base, err}
	}

	for {
		seg, rest, more := strings.Cut(p, "/")
		switch seg {
		case "..":
			par, ok := parent(cur)
			if !ok {
				return "", &PathError{"resolve", p, ErrNoParent}
			}
			cur = par
		case ".", "":
		default:
			cur = filepath.Join(cur, seg)
		}

		if !more {
			return cur, nil
		}
		p = rest
	}
}

// parent returns the parent dir of the absolute path 'nm' and false if
// 'nm' is a root.
func parent(nm string) (string, bool) {
	dn := filepath.Dir(nm)
	if dn == nm {
		return "", false
	}
	return dn, true
}
