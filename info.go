// info.go - fs.FileInfo with path and xattr
//
// (c) 2024- Sudhi Herle <sudhi@herle.net>
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
	"io/fs"
	"os"
)

// Info describes a file system entry: its stat(2) info, the
// path used to reach it and its extended attributes.
type Info struct {
	fs.FileInfo

	Path  string
	Xattr Xattr
}

// Stat is like os.Stat() but also returns xattr
func Stat(nm string) (*Info, error) {
	return makeInfo(nm, os.Stat, GetXattr)
}

// Lstat is like os.Lstat() but also returns xattr
func Lstat(nm string) (*Info, error) {
	return makeInfo(nm, os.Lstat, LgetXattr)
}

func makeInfo(nm string, stat func(string) (fs.FileInfo, error),
	getx func(string) (Xattr, error)) (*Info, error) {
	fi, err := stat(nm)
	if err != nil {
		return nil, err
	}

	x, err := getx(nm)
	if err != nil {
		return nil, &PathError{"xattr", nm, err}
	}

	ii := &Info{
		FileInfo: fi,
		Path:     nm,
		Xattr:    x,
	}
	return ii, nil
}

// IsRegular returns true if this is a regular file
func (ii *Info) IsRegular() bool {
	return ii.Mode().IsRegular()
}

func (ii *Info) String() string {
	return fmt.Sprintf("%s: %d; %s", ii.Path, ii.Size(), ii.Mode().String())
}
