package storage

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
)

func readZip(t *testing.T, data []byte) *zip.Reader {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("Archive is not a valid ZIP: %v", err)
	}
	return zr
}

func TestBuildZipRoundTrip(t *testing.T) {
	store := newFakeStore(0)
	store.add("media-assets/a@b.com/one.png", []byte("first image"))
	store.add("media-assets/a@b.com/two.png", []byte("second image"))
	archiver := NewArchiver(store)

	data, err := archiver.BuildZip(context.Background(), []string{
		"media-assets/a@b.com/one.png",
		"media-assets/a@b.com/two.png",
	})
	if err != nil {
		t.Fatalf("BuildZip returned error: %v", err)
	}

	zr := readZip(t, data)
	if len(zr.File) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(zr.File))
	}

	want := map[string]string{
		"one.png": "first image",
		"two.png": "second image",
	}
	names := []string{"one.png", "two.png"}
	for i, f := range zr.File {
		if f.Name != names[i] {
			t.Errorf("Entry %d: expected name %q, got %q", i, names[i], f.Name)
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("Failed to open entry %q: %v", f.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("Failed to read entry %q: %v", f.Name, err)
		}
		if string(content) != want[f.Name] {
			t.Errorf("Entry %q: expected content %q, got %q", f.Name, want[f.Name], content)
		}
	}
}

func TestBuildZipEmptyKeyList(t *testing.T) {
	archiver := NewArchiver(newFakeStore(0))

	data, err := archiver.BuildZip(context.Background(), nil)
	if err != nil {
		t.Fatalf("BuildZip returned error: %v", err)
	}
	if zr := readZip(t, data); len(zr.File) != 0 {
		t.Errorf("Expected empty archive, got %d entries", len(zr.File))
	}
}

func TestBuildZipKeepsDuplicateFilenames(t *testing.T) {
	store := newFakeStore(0)
	store.add("paid-advertising-reports/a@b.com/1/shot.png", []byte("from report 1"))
	store.add("paid-advertising-reports/a@b.com/2/shot.png", []byte("from report 2"))
	archiver := NewArchiver(store)

	data, err := archiver.BuildZip(context.Background(), []string{
		"paid-advertising-reports/a@b.com/1/shot.png",
		"paid-advertising-reports/a@b.com/2/shot.png",
	})
	if err != nil {
		t.Fatalf("BuildZip returned error: %v", err)
	}

	zr := readZip(t, data)
	if len(zr.File) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(zr.File))
	}
	for _, f := range zr.File {
		if f.Name != "shot.png" {
			t.Errorf("Expected entry name %q, got %q", "shot.png", f.Name)
		}
	}
}

func TestBuildZipAbortsOnFailedRead(t *testing.T) {
	store := newFakeStore(0)
	store.add("media-assets/a@b.com/one.png", []byte("first image"))
	archiver := NewArchiver(store)

	_, err := archiver.BuildZip(context.Background(), []string{
		"media-assets/a@b.com/one.png",
		"media-assets/a@b.com/missing.png",
	})
	if !errors.Is(err, ErrDownloadFailed) {
		t.Errorf("Expected ErrDownloadFailed, got %v", err)
	}
}

func TestBuildZipAbortsOnCancelledContext(t *testing.T) {
	store := newFakeStore(0)
	store.add("media-assets/a@b.com/one.png", []byte("first image"))
	archiver := NewArchiver(store)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := archiver.BuildZip(ctx, []string{"media-assets/a@b.com/one.png"})
	if !errors.Is(err, ErrDownloadFailed) {
		t.Errorf("Expected ErrDownloadFailed, got %v", err)
	}
}

func TestFilenameFromKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"media-assets/a@b.com/photo.png", "photo.png"},
		{"photo.png", "photo.png"},
		{"paid-advertising-reports/a@b.com/7/shot.png", "shot.png"},
	}

	for _, tt := range tests {
		if got := filenameFromKey(tt.key); got != tt.want {
			t.Errorf("filenameFromKey(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}
