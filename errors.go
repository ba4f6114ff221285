// errors.go - descriptive errors for xfer
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
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a source doesn't exist or is not
	// of a kind that can be copied.
	ErrNotFound = errors.New("not found")

	// ErrInvalidArg is returned when a destination or a path argument
	// violates a constraint of the operation.
	ErrInvalidArg = errors.New("invalid argument")

	// ErrNoParent is returned when path resolution pops above the
	// root of the file system.
	ErrNoParent = fmt.Errorf("%w: no parent directory", ErrInvalidArg)

	// ErrUnsupportedEncoding is returned for unknown character encodings
	ErrUnsupportedEncoding = fmt.Errorf("%w: unsupported encoding", ErrInvalidArg)

	errSafeFileAborted = errors.New("safefile: aborted; file not committed")
	errNoFastPath      = errors.New("no kernel copy offload")
)

// CopyError represents the errors returned by the copy, collect
// and store functions.
type CopyError struct {
	Op  string
	Src string
	Dst string
	Err error
}

// Error returns a string representation of CopyError
func (e *CopyError) Error() string {
	return fmt.Sprintf("xfer: %s '%s' '%s': %s",
		e.Op, e.Src, e.Dst, e.Err.Error())
}

// Unwrap returns the underlying wrapped error
func (e *CopyError) Unwrap() error {
	return e.Err
}

// PathError represents errors from operations on a single
// file system entry: resolve, delete and open.
type PathError struct {
	Op   string
	Path string
	Err  error
}

// Error returns a string representation of PathError
func (e *PathError) Error() string {
	return fmt.Sprintf("xfer: %s '%s': %s", e.Op, e.Path, e.Err.Error())
}

// Unwrap returns the underlying wrapped error
func (e *PathError) Unwrap() error {
	return e.Err
}

var _ error = &CopyError{}
var _ error = &PathError{}
