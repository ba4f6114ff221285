// copy_other.go - non-Linux file copy
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

//go:build !linux

package xfer

import (
	"os"
)

// clonefile(2) on macOS needs a destination that doesn't exist; we
// always write into a SafeFile. So, everyone else copies by hand.
func sysCopyFd(_, _ *os.File) (int64, error) {
	return 0, errNoFastPath
}
