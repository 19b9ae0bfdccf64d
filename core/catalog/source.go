package catalog

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"shop-transformer/core/storage"

	"github.com/minio/minio-go/v7"
)

// Source provides read access to the files of one catalog drop.
type Source interface {
	// Open returns a reader for the named catalog file. Missing files must
	// surface an error that IsNotExist recognizes.
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// IsNotExist reports whether err means the catalog file is absent, as
// opposed to present but unreadable. Object reads fail lazily on first
// Read, so the error usually arrives wrapped by the row reader.
func IsNotExist(err error) bool {
	if errors.Is(err, os.ErrNotExist) {
		return true
	}
	var resp minio.ErrorResponse
	if errors.As(err, &resp) {
		return resp.Code == "NoSuchKey" || resp.StatusCode == http.StatusNotFound
	}
	return false
}

// DirSource reads catalog files from a local directory.
type DirSource struct {
	Dir string
}

func (s DirSource) Open(_ context.Context, name string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(s.Dir, name))
}

// ObjectSource reads catalog files from a prefix in object storage. This is
// how catalog drops are normally distributed.
type ObjectSource struct {
	Client storage.Client
	Bucket string
	Prefix string
}

func (s ObjectSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	objectName := name
	if s.Prefix != "" {
		objectName = s.Prefix + "/" + name
	}

	obj, err := s.Client.GetObject(ctx, s.Bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}

	return obj, nil
}
