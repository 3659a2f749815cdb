package storage

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"onboarding-service/monitoring"
)

// Archiver assembles ZIP archives from stored blobs.
type Archiver struct {
	store ObjectStore
}

func NewArchiver(store ObjectStore) *Archiver {
	return &Archiver{store: store}
}

// BuildZip streams each key into one archive entry named by the key's
// filename segment, preserving input order. Duplicate filenames become
// duplicate entries. Any failed read aborts the whole build: callers never
// see a partial archive.
func (a *Archiver) BuildZip(ctx context.Context, keys []string) ([]byte, error) {
	start := time.Now()
	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)

	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			zw.Close()
			monitoring.ArchivesBuiltTotal.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("%w: %v", ErrDownloadFailed, err)
		}
		if err := a.writeEntry(ctx, zw, key); err != nil {
			zw.Close()
			monitoring.ArchivesBuiltTotal.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("%w: %s: %v", ErrDownloadFailed, key, err)
		}
	}

	if err := zw.Close(); err != nil {
		monitoring.ArchivesBuiltTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}
	monitoring.ArchivesBuiltTotal.WithLabelValues("success").Inc()
	monitoring.ArchiveBuildDuration.Observe(time.Since(start).Seconds())
	return buf.Bytes(), nil
}

// writeEntry copies one blob into the archive. The source stream is closed on
// every exit path, including cancellation mid-copy.
func (a *Archiver) writeEntry(ctx context.Context, zw *zip.Writer, key string) error {
	body, err := a.store.Get(ctx, key)
	if err != nil {
		return err
	}
	defer body.Close()

	entry, err := zw.Create(filenameFromKey(key))
	if err != nil {
		return err
	}
	_, err = io.Copy(entry, body)
	return err
}

func filenameFromKey(key string) string {
	parts := strings.Split(key, "/")
	return parts[len(parts)-1]
}
