// close.go - best effort close helpers
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
	"io"
)

// Close closes 'c' and returns the failure, if any, instead of
// propagating it. A panic in Close is converted to an error. A nil
// 'c' is a no-op.
func Close(c io.Closer) (err error) {
	if c == nil {
		return nil
	}

	defer func() {
		if e := recover(); e != nil {
			err = fmt.Errorf("close: panic: %v", e)
		}
	}()

	return c.Close()
}

// CloseAll closes every closer in 'cs' - even if some of them fail -
// and returns all the failures joined together.
func CloseAll(cs ...io.Closer) error {
	var errs []error
	for _, c := range cs {
		if err := Close(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
