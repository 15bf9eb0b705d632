package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/andresuchdata/aurora-inventory/backend-go/internal/config"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveObjectKey(t *testing.T) {
	tests := []struct {
		prefix, name, want string
	}{
		{"exports", "stock_health.csv", "exports/stock_health.csv"},
		{"exports/", "/stock_health.csv", "exports/stock_health.csv"},
		{"exports", "exports/stock_health.csv", "exports/stock_health.csv"},
		{"", "daily_stock.csv", "daily_stock.csv"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ResolveObjectKey(tt.prefix, tt.name))
	}
}

func TestCSVKeys(t *testing.T) {
	keys := CSVKeys([]ObjectInfo{
		{Key: "exports/b.CSV"},
		{Key: "exports/readme.txt"},
		{Key: "exports/a.csv"},
	})
	assert.Equal(t, []string{"exports/b.CSV", "exports/a.csv"}, keys)
}

func TestSplitEndpoint(t *testing.T) {
	host, secure := splitEndpoint("https://s3.example.com/", false)
	assert.Equal(t, "s3.example.com", host)
	assert.True(t, secure)

	host, secure = splitEndpoint("http://localhost:9000", true)
	assert.Equal(t, "localhost:9000", host)
	assert.False(t, secure)

	host, secure = splitEndpoint("minio:9000", true)
	assert.Equal(t, "minio:9000", host)
	assert.True(t, secure)
}

func TestNewMinioClientValidation(t *testing.T) {
	valid := config.StorageConfig{
		Endpoint:  "localhost:9000",
		AccessKey: "key",
		SecretKey: "secret",
		Bucket:    "exports",
	}

	client, err := NewMinioClient(valid)
	require.NoError(t, err)
	assert.Equal(t, "exports", client.bucket)

	for name, mutate := range map[string]func(*config.StorageConfig){
		"endpoint":    func(c *config.StorageConfig) { c.Endpoint = " " },
		"credentials": func(c *config.StorageConfig) { c.SecretKey = "" },
		"bucket":      func(c *config.StorageConfig) { c.Bucket = "" },
	} {
		cfg := valid
		mutate(&cfg)
		_, err := NewMinioClient(cfg)
		assert.Error(t, err, name)
	}
}

func TestLocalPath(t *testing.T) {
	dest := filepath.Join("data", "exports")

	tests := []struct {
		prefix, key, want string
	}{
		{"exports", "exports/stock_health.csv", filepath.Join(dest, "stock_health.csv")},
		{"exports/", "exports/2024/daily_stock.csv", filepath.Join(dest, "2024", "daily_stock.csv")},
		{"", "alerts.csv", filepath.Join(dest, "alerts.csv")},
		{"exports", "exports/", filepath.Join(dest, "exports")},
		{"exports", "exports/a/../b.csv", filepath.Join(dest, "b.csv")},
	}
	for _, tt := range tests {
		got, err := LocalPath(dest, tt.prefix, tt.key)
		require.NoError(t, err, tt.key)
		assert.Equal(t, tt.want, got, tt.key)
	}
}

func TestLocalPathRejectsEscapingKeys(t *testing.T) {
	for _, key := range []string{
		"exports/../../etc/cron.d/job.csv",
		"../outside.csv",
		"/etc/passwd",
		"exports/..",
	} {
		_, err := LocalPath("data", "exports", key)
		assert.ErrorIs(t, err, ErrUnsafeKey, key)
	}
}

func TestListObjectsPassesPrefix(t *testing.T) {
	var gotOpts minio.ListObjectsOptions
	client := &MinioClient{
		bucket: "exports",
		list: func(_ context.Context, bucket string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo {
			assert.Equal(t, "exports", bucket)
			gotOpts = opts
			ch := make(chan minio.ObjectInfo, 2)
			ch <- minio.ObjectInfo{Key: "daily/a.csv", Size: 10}
			ch <- minio.ObjectInfo{Key: "daily/b.csv", Size: 20}
			close(ch)
			return ch
		},
	}

	objects, err := client.ListObjects(context.Background(), "daily")
	require.NoError(t, err)
	assert.Equal(t, []ObjectInfo{{Key: "daily/a.csv", Size: 10}, {Key: "daily/b.csv", Size: 20}}, objects)
	assert.Equal(t, "daily", gotOpts.Prefix)
	assert.True(t, gotOpts.Recursive)
}

func TestListObjectsStopsListingOnError(t *testing.T) {
	stopped := make(chan struct{})
	client := &MinioClient{
		bucket: "exports",
		list: func(ctx context.Context, _ string, _ minio.ListObjectsOptions) <-chan minio.ObjectInfo {
			ch := make(chan minio.ObjectInfo)
			go func() {
				defer close(stopped)
				defer close(ch)
				ch <- minio.ObjectInfo{Key: "daily/a.csv"}
				ch <- minio.ObjectInfo{Err: errors.New("access denied")}
				for {
					select {
					case ch <- minio.ObjectInfo{Key: "daily/more.csv"}:
					case <-ctx.Done():
						return
					}
				}
			}()
			return ch
		},
	}

	objects, err := client.ListObjects(context.Background(), "daily")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
	assert.Nil(t, objects)

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("listing goroutine still running after ListObjects returned")
	}
}
