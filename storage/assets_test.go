package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"testing"
)

// fakeStore pages its objects out pageSize at a time so tests can exercise
// the truncation handling without a real bucket.
type fakeStore struct {
	objects  []Object
	blobs    map[string][]byte
	pageSize int
	puts     []string
	acls     []string
	listErr  error
	getErr   error
}

func newFakeStore(pageSize int) *fakeStore {
	return &fakeStore{blobs: map[string][]byte{}, pageSize: pageSize}
}

func (f *fakeStore) add(key string, data []byte) {
	f.objects = append(f.objects, Object{Key: key, Size: int64(len(data))})
	f.blobs[key] = data
}

func (f *fakeStore) Put(ctx context.Context, key string, data []byte, contentType, cacheControl string) error {
	f.puts = append(f.puts, key)
	f.add(key, data)
	return nil
}

func (f *fakeStore) SetPublicRead(ctx context.Context, key string) error {
	f.acls = append(f.acls, key)
	return nil
}

func (f *fakeStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	data, ok := f.blobs[key]
	if !ok {
		return nil, fmt.Errorf("%w: get %s", ErrStorageUnavailable, key)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeStore) ListPage(ctx context.Context, prefix, continuationToken string) (Page, error) {
	if f.listErr != nil {
		return Page{}, f.listErr
	}

	matched := []Object{}
	for _, obj := range f.objects {
		if len(obj.Key) >= len(prefix) && obj.Key[:len(prefix)] == prefix {
			matched = append(matched, obj)
		}
	}

	start := 0
	if continuationToken != "" {
		var err error
		start, err = strconv.Atoi(continuationToken)
		if err != nil {
			return Page{}, err
		}
	}

	end := start + f.pageSize
	if f.pageSize <= 0 || end > len(matched) {
		end = len(matched)
	}

	page := Page{Objects: matched[start:end]}
	if end < len(matched) {
		page.Truncated = true
		page.NextToken = strconv.Itoa(end)
	}
	return page, nil
}

func TestBuildPrefix(t *testing.T) {
	tests := []struct {
		segments []string
		want     string
	}{
		{[]string{"media-assets", "a@b.com"}, "media-assets/a@b.com"},
		{[]string{"paid-advertising-reports", "a@b.com", "7"}, "paid-advertising-reports/a@b.com/7"},
		{[]string{"media-assets", "", "x"}, "media-assets/x"},
		{[]string{}, ""},
	}

	for _, tt := range tests {
		if got := BuildPrefix(tt.segments...); got != tt.want {
			t.Errorf("BuildPrefix(%v) = %q, want %q", tt.segments, got, tt.want)
		}
	}
}

func TestListAllMergesPages(t *testing.T) {
	store := newFakeStore(2)
	keys := []string{
		"media-assets/a@b.com/one.png",
		"media-assets/a@b.com/two.png",
		"media-assets/a@b.com/three.png",
		"media-assets/a@b.com/four.png",
		"media-assets/a@b.com/five.png",
	}
	for _, key := range keys {
		store.add(key, []byte("data"))
	}
	store.add("media-assets/other@b.com/six.png", []byte("data"))

	dir := NewAssetDirectory(store, "https://cdn.example.com/")

	objects, err := dir.ListAll(context.Background(), "media-assets/a@b.com")
	if err != nil {
		t.Fatalf("ListAll returned error: %v", err)
	}
	if len(objects) != len(keys) {
		t.Fatalf("Expected %d objects, got %d", len(keys), len(objects))
	}
	for i, obj := range objects {
		if obj.Key != keys[i] {
			t.Errorf("Object %d: expected key %q, got %q", i, keys[i], obj.Key)
		}
	}
}

func TestListAllEmptyPrefix(t *testing.T) {
	dir := NewAssetDirectory(newFakeStore(2), "https://cdn.example.com/")

	objects, err := dir.ListAll(context.Background(), "media-assets/nobody@b.com")
	if err != nil {
		t.Fatalf("ListAll returned error: %v", err)
	}
	if len(objects) != 0 {
		t.Errorf("Expected empty listing, got %d objects", len(objects))
	}
}

func TestListAllPropagatesStoreError(t *testing.T) {
	store := newFakeStore(2)
	store.listErr = ErrStorageUnavailable
	dir := NewAssetDirectory(store, "https://cdn.example.com/")

	if _, err := dir.ListAll(context.Background(), "media-assets/a@b.com"); !errors.Is(err, ErrStorageUnavailable) {
		t.Errorf("Expected ErrStorageUnavailable, got %v", err)
	}
}

func TestPublicURLEscapesSegments(t *testing.T) {
	dir := NewAssetDirectory(newFakeStore(0), "https://cdn.example.com/")

	tests := []struct {
		key  string
		want string
	}{
		{"media-assets/a@b.com/photo.png", "https://cdn.example.com/media-assets/a@b.com/photo.png"},
		{"media-assets/a@b.com/my photo.png", "https://cdn.example.com/media-assets/a@b.com/my%20photo.png"},
		{"media-assets/a@b.com/фото.png", "https://cdn.example.com/media-assets/a@b.com/%D1%84%D0%BE%D1%82%D0%BE.png"},
	}

	for _, tt := range tests {
		if got := dir.PublicURL(tt.key); got != tt.want {
			t.Errorf("PublicURL(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestTotalSize(t *testing.T) {
	store := newFakeStore(1)
	store.add("media-assets/a@b.com/one.png", make([]byte, 1500))
	store.add("media-assets/a@b.com/two.png", make([]byte, 500))
	dir := NewAssetDirectory(store, "https://cdn.example.com/")

	total, err := dir.TotalSize(context.Background(), "media-assets/a@b.com")
	if err != nil {
		t.Fatalf("TotalSize returned error: %v", err)
	}
	if total != 2000 {
		t.Errorf("Expected total 2000 bytes, got %d", total)
	}
}

func TestUploadStoresAndPublishesEachFile(t *testing.T) {
	store := newFakeStore(0)
	dir := NewAssetDirectory(store, "https://cdn.example.com/")

	files := []UploadFile{
		{Name: "one.png", Data: []byte("first")},
		{Name: "two.png", Data: []byte("second")},
	}
	if err := dir.Upload(context.Background(), "media-assets/a@b.com", files); err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}

	wantKeys := []string{"media-assets/a@b.com/one.png", "media-assets/a@b.com/two.png"}
	if len(store.puts) != len(wantKeys) {
		t.Fatalf("Expected %d puts, got %d", len(wantKeys), len(store.puts))
	}
	for i, key := range wantKeys {
		if store.puts[i] != key {
			t.Errorf("Put %d: expected key %q, got %q", i, key, store.puts[i])
		}
		if store.acls[i] != key {
			t.Errorf("ACL %d: expected key %q, got %q", i, key, store.acls[i])
		}
	}
}
