// copy_linux.go - Linux specific file copy
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

//go:build linux

package xfer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

// Do copies in chunks of 1GB
const _ioChunkSize int = 1024 * 1048576

// sysCopyFd tries to reflink 'src' into 'dst' and falls back to
// copy_file_range(2). Both only cover the size reported by stat; the
// rest of 'src' (if it grew, or if stat lied as procfs does) goes
// through copyBytes so that 'src' is always read to EOF.
// It returns errNoFastPath if the kernel or the file system can't
// offload the copy; the caller must then copy by hand.
func sysCopyFd(dst, src *os.File) (int64, error) {
	st, err := src.Stat()
	if err != nil {
		return 0, err
	}

	sz := st.Size()
	if sz == 0 {
		return 0, errNoFastPath
	}

	n, err := offload(dst, src, sz)
	if err != nil {
		return n, err
	}

	// the offload doesn't move the file offsets
	if _, err = src.Seek(n, io.SeekStart); err != nil {
		return n, fmt.Errorf("seek src: %w", err)
	}
	if _, err = dst.Seek(n, io.SeekStart); err != nil {
		return n, fmt.Errorf("seek dst: %w", err)
	}

	m, err := copyBytes(dst, src)
	return n + m, err
}

// offload copies the first 'sz' bytes of 'src' in the kernel
func offload(dst, src *os.File, sz int64) (int64, error) {
	d := int(dst.Fd())
	s := int(src.Fd())

	if err := unix.IoctlFileClone(d, s); err == nil {
		return sz, nil
	}

	var roff, woff int64
	for sz > 0 {
		n := min(_ioChunkSize, int(sz))
		m, err := unix.CopyFileRange(s, &roff, d, &woff, n, 0)
		if err != nil {
			if woff == 0 && noFastPath(err) {
				return 0, errNoFastPath
			}
			return woff, fmt.Errorf("copy_file_range: %w", err)
		}

		// src shrank; copyBytes will see EOF
		if m == 0 {
			break
		}
		sz -= int64(m)
	}
	return woff, nil
}

func noFastPath(err error) bool {
	for _, e := range []error{syscall.ENOSYS, syscall.EXDEV, syscall.EINVAL,
		syscall.EOPNOTSUPP, syscall.EPERM} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
