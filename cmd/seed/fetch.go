package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/andresuchdata/aurora-inventory/backend-go/internal/config"
	"github.com/andresuchdata/aurora-inventory/backend-go/internal/storage"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

type snapshotDownloader struct {
	client  storage.ObjectStorage
	destDir string
}

func fetchFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "prefix",
			Usage:   "Object prefix holding the CSV exports",
			Value:   "exports",
			EnvVars: []string{"STORAGE_PREFIX"},
		},
		&cli.StringSliceFlag{
			Name:  "object",
			Usage: "Download only these object names (relative to --prefix)",
		},
		&cli.StringFlag{
			Name:    "download-dir",
			Usage:   "Local directory where exports are downloaded",
			Value:   "./data/tmp/exports",
			EnvVars: []string{"STORAGE_DOWNLOAD_DIR"},
		},
	}
}

func newSnapshotDownloader(cfg config.StorageConfig, destDir string) (*snapshotDownloader, error) {
	client, err := storage.NewMinioClient(cfg)
	if err != nil {
		return nil, err
	}

	if destDir == "" {
		destDir = "./data/tmp/exports"
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to ensure download dir %s: %w", destDir, err)
	}

	return &snapshotDownloader{client: client, destDir: destDir}, nil
}

func (d *snapshotDownloader) download(ctx context.Context, prefix string, names []string) ([]string, error) {
	var keys []string

	if len(names) > 0 {
		for _, name := range names {
			keys = append(keys, storage.ResolveObjectKey(prefix, name))
		}
	} else {
		listPrefix := strings.TrimSpace(prefix)
		objects, err := d.client.ListObjects(ctx, listPrefix)
		if err != nil {
			return nil, fmt.Errorf("failed to list objects for prefix %s: %w", listPrefix, err)
		}
		keys = storage.CSVKeys(objects)
	}

	if len(keys) == 0 {
		return nil, fmt.Errorf("no CSV files found for prefix %s", prefix)
	}

	localPaths := make([]string, 0, len(keys))
	for _, key := range keys {
		localPath, err := storage.LocalPath(d.destDir, prefix, key)
		if err != nil {
			return nil, err
		}
		if err := d.client.DownloadObject(ctx, key, localPath); err != nil {
			return nil, err
		}
		log.Info().Str("key", key).Str("path", localPath).Msg("export downloaded")
		localPaths = append(localPaths, localPath)
	}

	sort.Strings(localPaths)
	return localPaths, nil
}

func runFetch(c *cli.Context) error {
	cfg := config.Load()

	downloader, err := newSnapshotDownloader(cfg.Storage, c.String("download-dir"))
	if err != nil {
		return err
	}

	paths, err := downloader.download(c.Context, c.String("prefix"), c.StringSlice("object"))
	if err != nil {
		return err
	}

	if !c.Bool("import") {
		return nil
	}
	return importFiles(c, paths)
}
