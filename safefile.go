// safefile.go - safe file creation and unwinding on error
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
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sync/atomic"
)

// SafeFile is the sink for every operation whose destination is a
// path. Writes go to a temporary file in the same directory which is
// atomically renamed to the real name by Close() - iff there were no
// errors. The usage pattern is:
//
//	sf, err := NewSafeFile(...)
//	... error handling
//
//	defer sf.Abort()
//
//	... write to sf ..
//	err = sf.Close()
//
// The first call to Close() or Abort() seals the outcome; calling
// either one afterwards is harmless.
type SafeFile struct {
	*os.File

	// first write error; sticky
	err  error
	name string

	//  < 0 => aborted
	//  > 0 => committed
	//  = 0 => open
	state atomic.Int64
}

var _ io.WriteCloser = &SafeFile{}

// NewSafeFile creates a temporary file that will either be removed by
// Abort() or renamed to 'nm' by Close(). An existing regular file 'nm'
// is replaced only when Close() succeeds; any other kind of existing
// entry is an error.
func NewSafeFile(nm string, perm fs.FileMode) (*SafeFile, error) {
	if st, err := os.Lstat(nm); err == nil && !st.Mode().IsRegular() {
		return nil, &PathError{"safefile", nm, fmt.Errorf("%w: not a regular file", ErrInvalidArg)}
	}

	tmp := fmt.Sprintf("%s.tmp.%d.%x", nm, os.Getpid(), randU32())
	fd, err := os.OpenFile(tmp, os.O_CREATE|os.O_EXCL|os.O_RDWR|os.O_TRUNC, perm)
	if err != nil {
		return nil, &PathError{"safefile", nm, err}
	}

	sf := &SafeFile{
		File: fd,
		name: nm,
	}
	return sf, nil
}

// Write writes all of 'b'; a previous write error or a sealed file
// fails the write.
func (sf *SafeFile) Write(b []byte) (int, error) {
	if sf.err != nil {
		return 0, sf.err
	}

	if sf.state.Load() != 0 {
		return 0, fmt.Errorf("safefile: %s is not open", sf.name)
	}

	var z int
	for len(b) > 0 {
		n, err := sf.File.Write(b)
		z += n
		if err != nil {
			sf.err = fmt.Errorf("safefile: %w", err)
			return z, sf.err
		}
		b = b[n:]
	}
	return z, nil
}

// Abort discards the temporary file; the destination is left
// untouched.
func (sf *SafeFile) Abort() {
	if !sf.state.CompareAndSwap(0, -1) {
		return
	}

	sf.File.Close()
	os.Remove(sf.File.Name())
}

// Close syncs and closes the temporary file and renames it to the
// destination - only if there were no intervening errors. Otherwise
// the file is aborted and the error returned.
func (sf *SafeFile) Close() error {
	if sf.err != nil {
		sf.Abort()
		return sf.err
	}

	switch n := sf.state.Load(); {
	case n < 0:
		return errSafeFileAborted
	case n > 0:
		return nil
	}

	if err := sf.commit(); err != nil {
		sf.err = err
		sf.Abort()
		return err
	}

	sf.state.Store(1)
	return nil
}

func (sf *SafeFile) commit() error {
	if err := sf.Sync(); err != nil {
		return fmt.Errorf("safefile: sync %s: %w", sf.name, err)
	}
	if err := sf.File.Close(); err != nil {
		return fmt.Errorf("safefile: close %s: %w", sf.name, err)
	}
	if err := os.Rename(sf.File.Name(), sf.name); err != nil {
		return fmt.Errorf("safefile: rename %s: %w", sf.name, err)
	}
	return nil
}

func randU32() uint32 {
	var b [4]byte

	_, err := io.ReadFull(rand.Reader, b[:])
	if err != nil {
		panic(fmt.Sprintf("can't read 4 rand bytes: %s", err))
	}

	return binary.LittleEndian.Uint32(b[:])
}
