package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// ErrUnsafeKey reports an object key that would be written outside the download directory.
var ErrUnsafeKey = errors.New("object key escapes download directory")

// ObjectInfo represents metadata for a remote file/object.
type ObjectInfo struct {
	Key  string
	Size int64
}

// ObjectStorage captures the S3-compatible operations the snapshot loader needs.
type ObjectStorage interface {
	ListObjects(ctx context.Context, prefix string) ([]ObjectInfo, error)
	DownloadObject(ctx context.Context, key string, destPath string) error
}

// ResolveObjectKey joins an explicit object name onto prefix unless it is
// already a full key under that prefix.
func ResolveObjectKey(prefix, name string) string {
	name = strings.TrimLeft(strings.TrimSpace(name), "/")
	prefix = strings.Trim(strings.TrimSpace(prefix), "/")
	if prefix == "" || strings.HasPrefix(name, prefix+"/") {
		return name
	}
	return path.Join(prefix, name)
}

// CSVKeys keeps the .csv objects, in listing order.
func CSVKeys(objects []ObjectInfo) []string {
	keys := make([]string, 0, len(objects))
	for _, obj := range objects {
		if strings.HasSuffix(strings.ToLower(obj.Key), ".csv") {
			keys = append(keys, obj.Key)
		}
	}
	return keys
}

// LocalPath maps key, made relative to prefix, onto a file under destDir.
// Absolute keys and keys climbing out with ".." are rejected.
func LocalPath(destDir, prefix, key string) (string, error) {
	rel := key
	if p := strings.Trim(strings.TrimSpace(prefix), "/"); p != "" {
		rel = strings.TrimPrefix(key, p+"/")
	}
	if rel == "" {
		rel = path.Base(key)
	}
	rel = filepath.FromSlash(rel)
	if !filepath.IsLocal(rel) {
		return "", fmt.Errorf("%w: %q", ErrUnsafeKey, key)
	}
	return filepath.Join(destDir, rel), nil
}
