// doc.go - package documentation
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

// Package xfer moves bytes and characters between sources and sinks:
// byte streams (io.Reader/io.Writer), character streams (RuneReader,
// RuneWriter), in-memory buffers, files, directory trees and URLs.
//
// Every copy drains its source to the end and closes it; stream sinks
// are flushed and left open, while sinks named by a path are created by
// xfer (atomically, via SafeFile) and always closed. All byte copies run
// through a single read/write loop and all character copies through a
// second one; conversions between bytes and characters use an explicit
// encoding name and default to UTF-8.
//
// The package also provides Collect (read a whole source into a string),
// Drain, Store (write a value's textual form), Resolve (walk a relative
// path against a base directory, applying ".." to the real directory
// chain) and Delete (recursive removal that refuses to touch a file
// system root).
package xfer
