// s3.go - open s3://bucket/key locators via minio-go
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

// Package s3 teaches xfer.OpenURL (and everything built on it, eg.
// xfer.Open and xfer.CollectURL) to read objects from S3 compatible
// object stores named as s3://bucket/key.
package s3

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/opencoff/go-xfer"
)

// Scheme is the URL scheme handled by this package
const Scheme = "s3"

// Config describes how to reach the object store.
type Config struct {
	// Endpoint is the host:port of the object store (eg "localhost:9000")
	Endpoint string

	// Credentials; both empty means anonymous access
	AccessKey string
	SecretKey string

	// Region is optional
	Region string

	// Insecure uses plain HTTP instead of HTTPS
	Insecure bool

	// Client is an optional pre-configured client; if set, the
	// fields above are ignored.
	Client *minio.Client
}

// ConfigFromEnv builds a Config from XFER_S3_ENDPOINT, XFER_S3_ACCESS_KEY,
// XFER_S3_SECRET_KEY, XFER_S3_REGION and XFER_S3_INSECURE.
func ConfigFromEnv() Config {
	insecure, _ := strconv.ParseBool(os.Getenv("XFER_S3_INSECURE"))
	return Config{
		Endpoint:  os.Getenv("XFER_S3_ENDPOINT"),
		AccessKey: os.Getenv("XFER_S3_ACCESS_KEY"),
		SecretKey: os.Getenv("XFER_S3_SECRET_KEY"),
		Region:    os.Getenv("XFER_S3_REGION"),
		Insecure:  insecure,
	}
}

func (c *Config) validate() error {
	if c.Client != nil {
		return nil
	}
	if len(c.Endpoint) == 0 {
		return fmt.Errorf("s3: %w: endpoint is required", xfer.ErrInvalidArg)
	}
	if (len(c.AccessKey) == 0) != (len(c.SecretKey) == 0) {
		return fmt.Errorf("s3: %w: access and secret key go together", xfer.ErrInvalidArg)
	}
	return nil
}

// NewOpener returns an xfer.Opener that reads s3://bucket/key URLs
// from the object store described by 'cfg'.
func NewOpener(cfg Config) (xfer.Opener, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	client := cfg.Client
	if client == nil {
		var err error

		client, err = minio.New(cfg.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
			Secure: !cfg.Insecure,
			Region: cfg.Region,
		})
		if err != nil {
			return nil, fmt.Errorf("s3: client: %w", err)
		}
	}

	op := func(ctx context.Context, u *url.URL) (io.ReadCloser, error) {
		bucket, key, err := Split(u)
		if err != nil {
			return nil, err
		}

		obj, err := client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
		if err != nil {
			return nil, translate(err)
		}

		// GetObject is lazy; make a missing object fail here and
		// not on the first read.
		if _, err = obj.Stat(); err != nil {
			obj.Close()
			return nil, translate(err)
		}
		return obj, nil
	}
	return op, nil
}

// Register installs an opener for 'cfg' as the handler of s3:// URLs.
func Register(cfg Config) error {
	op, err := NewOpener(cfg)
	if err != nil {
		return err
	}

	xfer.RegisterScheme(Scheme, op)
	return nil
}

// Split returns the bucket and object key named by an s3:// URL.
func Split(u *url.URL) (bucket, key string, err error) {
	if !strings.EqualFold(u.Scheme, Scheme) {
		return "", "", fmt.Errorf("s3: %w: scheme '%s'", xfer.ErrInvalidArg, u.Scheme)
	}

	bucket = u.Host
	key = strings.TrimPrefix(u.Path, "/")
	if len(bucket) == 0 || len(key) == 0 {
		return "", "", fmt.Errorf("s3: %w: %s: need s3://bucket/key", xfer.ErrInvalidArg, u)
	}
	return bucket, key, nil
}

// map object store errors to xfer errors
func translate(err error) error {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket":
		return fmt.Errorf("s3: %w: %w", xfer.ErrNotFound, err)
	}
	return fmt.Errorf("s3: %w", err)
}
