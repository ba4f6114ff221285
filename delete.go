// delete.go - recursive delete with a root guard
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
	"io/fs"
	"os"
	"path/filepath"
)

// Delete removes 'nm' and - if it is a directory - everything in it.
// Delete refuses to remove a file system root: such a path fails with
// ErrInvalidArg and nothing is removed. Symlinks are removed, never
// followed. A failure to remove one entry doesn't stop the removal of
// its siblings; all such failures are logged (see WithLogger) and
// returned together once the traversal is done. A 'nm' that doesn't
// exist is not an error.
func Delete(nm string, opts ...Option) error {
	o := makeOptions(opts)

	abs, err := filepath.Abs(nm)
	if err != nil {
		return &PathError{"delete", nm, err}
	}

	if _, ok := parent(abs); !ok {
		err = fmt.Errorf("%w: won't recursively delete a root", ErrInvalidArg)
		return &PathError{"delete", abs, err}
	}

	var errs []error
	o.remove(abs, &errs)
	return errors.Join(errs...)
}

func (o *options) remove(nm string, errs *[]error) {
	fi, err := os.Lstat(nm)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			o.fail(nm, "lstat", err, errs)
		}
		return
	}

	if fi.IsDir() {
		names, err := readDir(nm)
		if err != nil {
			o.fail(nm, "readdir", err, errs)
		}

		for _, sub := range names {
			o.remove(filepath.Join(nm, sub), errs)
		}
	}

	if err := os.Remove(nm); err != nil && !errors.Is(err, fs.ErrNotExist) {
		o.fail(nm, "remove", err, errs)
	}
}

func (o *options) fail(nm, op string, err error, errs *[]error) {
	o.info("delete: %s %s: %s", op, nm, err)
	*errs = append(*errs, &PathError{op, nm, err})
}
