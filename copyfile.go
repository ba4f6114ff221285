// copyfile.go - copy files, directory trees and streams to/from files
//
// (c) 2024 Sudhi Herle <sudhi@herle.net>
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
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/opencoff/go-utils"
)

// CopyFile copies 'src' to 'dst'. A regular file is copied to a
// freshly created 'dst' (an existing regular file is replaced); the
// kernel's copy offload (reflink or copy_file_range(2)) is used when
// available. A directory is copied recursively: 'dst' and any missing
// parents are created and every entry of 'src' is copied into a like
// named child of 'dst'. If 'dst' exists and is not a directory,
// CopyFile fails with ErrInvalidArg. A 'src' that is neither a file nor
// a directory fails with ErrNotFound.
func CopyFile(dst, src string, opts ...Option) error {
	o := makeOptions(opts)

	as, err := filepath.Abs(src)
	if err != nil {
		return &CopyError{"abs", src, dst, err}
	}
	ad, err := filepath.Abs(dst)
	if err != nil {
		return &CopyError{"abs", src, dst, err}
	}

	// a dir copied into itself never finishes
	if ad == as || strings.HasPrefix(ad, as+string(filepath.Separator)) {
		err = fmt.Errorf("%w: destination is inside the source", ErrInvalidArg)
		return &CopyError{"copyfile", src, dst, err}
	}

	return o.copyEntry(dst, src)
}

// CopyToFile copies all of 'src' into a newly created file 'dst';
// an existing regular file 'dst' is replaced only if the copy
// succeeds. 'src' is closed when it is an io.Closer; 'dst' is
// always closed.
func CopyToFile(dst string, src io.Reader, opts ...Option) (n int64, err error) {
	defer closeSrc(src, &err)

	o := makeOptions(opts)
	d, err := NewSafeFile(dst, 0666)
	if err != nil {
		return 0, &CopyError{"create", "", dst, err}
	}

	defer d.Abort()

	if n, err = copyBytes(d, src); err != nil {
		return n, &CopyError{"copy", "", dst, err}
	}
	if err = d.Close(); err != nil {
		return n, &CopyError{"close", "", dst, err}
	}

	o.debug("copy stream -> %s: %s", dst, utils.HumanizeSize(uint64(n)))
	return n, nil
}

// CopyFromFile copies the contents of file 'src' to 'dst' and
// returns the number of bytes copied. The size reported by stat is
// read via mmap(2); the rest, if any, through the byte loop until EOF.
// A 'src' that isn't a regular file fails with ErrNotFound.
// 'dst' is flushed if it implements Flusher, but not closed.
func CopyFromFile(dst io.Writer, src string) (int64, error) {
	s, err := os.Open(src)
	if err != nil {
		return 0, &CopyError{"open-src", src, "", notFound(err)}
	}

	defer s.Close()

	st, err := s.Stat()
	if err != nil {
		return 0, &CopyError{"stat-src", src, "", err}
	}

	if !st.Mode().IsRegular() {
		err = fmt.Errorf("%w: %s is not a file", ErrNotFound, src)
		return 0, &CopyError{"file-type", src, "", err}
	}

	n, err := copyFromFd(dst, s, st.Size())
	if err != nil {
		return n, &CopyError{"copy", src, "", err}
	}
	if err = flush(dst); err != nil {
		return n, &CopyError{"flush", src, "", err}
	}
	return n, nil
}

// copyFromFd maps the first 'sz' bytes of 's' and hands the remainder
// to copyBytes; mmap never moves the file offset.
func copyFromFd(dst io.Writer, s *os.File, sz int64) (int64, error) {
	var n int64
	if sz > 0 {
		var err error
		if n, err = copyViaMmap(dst, s); err != nil {
			return n, err
		}
		if _, err = s.Seek(n, io.SeekStart); err != nil {
			return n, err
		}
	}

	m, err := copyBytes(dst, s)
	return n + m, err
}

func (o *options) copyEntry(dst, src string) error {
	fi, err := os.Stat(src)
	if err != nil {
		return &CopyError{"stat-src", src, dst, notFound(err)}
	}

	// only look at xattrs when asked to
	var x Xattr
	if o.xattr {
		if x, err = getXattr(src); err != nil {
			return &CopyError{"get-xattr", src, dst, err}
		}
		if len(x) > 0 {
			o.debug("xattr %s:\n%s", src, x)
		}
	}

	m := fi.Mode()
	switch {
	case m.IsRegular():
		err = o.copyRegular(dst, src, m.Perm())

	case m.IsDir():
		err = o.copyDir(dst, src, m.Perm())

	default:
		err = fmt.Errorf("%w: %s is neither a file nor a directory", ErrNotFound, src)
		return &CopyError{"file-type", src, dst, err}
	}

	if err == nil && len(x) > 0 {
		if err = SetXattr(dst, x); err != nil {
			return &CopyError{"set-xattr", src, dst, err}
		}
	}
	return err
}

// copyRegular copies one file; the kernel offload in sysCopyFd and the
// byte loop fallback both read 'src' to EOF.
func (o *options) copyRegular(dst, src string, perm fs.FileMode) error {
	s, err := os.Open(src)
	if err != nil {
		return &CopyError{"open-src", src, dst, err}
	}

	defer s.Close()

	d, err := NewSafeFile(dst, perm)
	if err != nil {
		return &CopyError{"create", src, dst, err}
	}

	defer d.Abort()

	n, err := sysCopyFd(d.File, s)
	if errors.Is(err, errNoFastPath) {
		n, err = copyBytes(d, s)
	}

	if err != nil {
		return &CopyError{"copy", src, dst, err}
	}
	if err = d.Close(); err != nil {
		return &CopyError{"close", src, dst, err}
	}

	o.debug("copy %s -> %s: %s", src, dst, utils.HumanizeSize(uint64(n)))
	return nil
}

func (o *options) copyDir(dst, src string, perm fs.FileMode) error {
	// MkdirAll fails if dst exists as a non-dir; we want to tell
	// that case apart from any other mkdir failure.
	merr := os.MkdirAll(dst, perm|0700)
	if di, err := os.Stat(dst); err == nil && !di.IsDir() {
		err = fmt.Errorf("%w: destination must be a directory", ErrInvalidArg)
		return &CopyError{"mkdir", src, dst, err}
	}
	if merr != nil {
		return &CopyError{"mkdir", src, dst, merr}
	}

	names, err := readDir(src)
	if err != nil {
		return &CopyError{"readdir", src, dst, err}
	}

	for _, nm := range names {
		if err := o.copyEntry(filepath.Join(dst, nm), filepath.Join(src, nm)); err != nil {
			return err
		}
	}

	o.debug("mkdir %s -> %s: %d entries", src, dst, len(names))
	return nil
}

// xattr lookup used by copyEntry; tests swap it out
var getXattr = GetXattr

// read a dir and return the names
func readDir(nm string) ([]string, error) {
	fd, err := os.Open(nm)
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	return fd.Readdirnames(-1)
}

// annotate "doesn't exist" errors with ErrNotFound; errors.Is()
// will match both.
func notFound(err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return err
}
