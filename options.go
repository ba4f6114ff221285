// options.go - functional options for file copy, store and delete
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
	"github.com/opencoff/go-logger"
)

type options struct {
	// optional logger; nil means "don't log"
	log logger.Logger

	// copy extended attributes of each copied entry
	xattr bool
}

// Option captures the optional behavior of the file based
// operations: CopyFile, CopyToFile, StoreFile and Delete.
type Option func(o *options)

// WithLogger logs progress and per-entry failures to 'l'.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		o.log = l
	}
}

// WithXattr makes CopyFile replicate the extended attributes of
// every entry it copies.
func WithXattr() Option {
	return func(o *options) {
		o.xattr = true
	}
}

func makeOptions(opts []Option) *options {
	o := &options{}
	for _, fp := range opts {
		fp(o)
	}
	return o
}

func (o *options) debug(s string, args ...any) {
	if o.log != nil {
		o.log.Debug(s, args...)
	}
}

func (o *options) info(s string, args ...any) {
	if o.log != nil {
		o.log.Info(s, args...)
	}
}
