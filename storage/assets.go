package storage

import (
	"context"
	"log"
	"net/url"
	"strings"

	"onboarding-service/monitoring"
)

const (
	CategoryMediaAssets            = "media-assets"
	CategoryPaidAdvertisingReports = "paid-advertising-reports"
)

// Uploads always carry the generic image content type and a year-long public
// cache header. Blobs are world-readable by design: access control happens in
// the authorization gate, not at the blob layer.
const (
	uploadContentType  = "jpg/jpeg/png"
	uploadCacheControl = "public, max-age=31536000"
)

type UploadFile struct {
	Name string
	Data []byte
}

// BuildPrefix joins non-empty key segments with "/". No trailing separator.
func BuildPrefix(segments ...string) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "/")
}

// AssetDirectory maps (category, owner, report) triples onto storage keys and
// enumerates complete listings over the store's paginated API.
type AssetDirectory struct {
	store   ObjectStore
	baseURL string
}

func NewAssetDirectory(store ObjectStore, baseURL string) *AssetDirectory {
	return &AssetDirectory{store: store, baseURL: baseURL}
}

// ListAll merges every page the store returns for the prefix, in store order.
// An empty prefix listing is an empty result, not an error.
func (d *AssetDirectory) ListAll(ctx context.Context, prefix string) ([]Object, error) {
	objects := []Object{}
	token := ""
	for {
		page, err := d.store.ListPage(ctx, prefix, token)
		if err != nil {
			return nil, err
		}
		objects = append(objects, page.Objects...)
		if !page.Truncated {
			return objects, nil
		}
		token = page.NextToken
	}
}

// PublicURL builds the externally served URL for a key. Each path segment is
// percent-encoded so filenames with spaces or unicode stay valid.
func (d *AssetDirectory) PublicURL(key string) string {
	segments := strings.Split(key, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return d.baseURL + strings.Join(segments, "/")
}

func (d *AssetDirectory) ListURLs(ctx context.Context, prefix string) ([]string, error) {
	objects, err := d.ListAll(ctx, prefix)
	if err != nil {
		return nil, err
	}
	urls := make([]string, len(objects))
	for i, obj := range objects {
		urls[i] = d.PublicURL(obj.Key)
	}
	return urls, nil
}

func (d *AssetDirectory) TotalSize(ctx context.Context, prefix string) (int64, error) {
	objects, err := d.ListAll(ctx, prefix)
	if err != nil {
		return 0, err
	}
	var total int64
	for _, obj := range objects {
		total += obj.Size
	}
	return total, nil
}

// Upload stores each file under prefix/<filename> and marks it public-read.
func (d *AssetDirectory) Upload(ctx context.Context, prefix string, files []UploadFile) error {
	for _, file := range files {
		key := prefix + "/" + file.Name
		log.Printf("saving_image: %s", key)
		if err := d.store.Put(ctx, key, file.Data, uploadContentType, uploadCacheControl); err != nil {
			return err
		}
		if err := d.store.SetPublicRead(ctx, key); err != nil {
			return err
		}
		monitoring.ObjectUploadsTotal.Inc()
		monitoring.ObjectUploadedBytes.Add(float64(len(file.Data)))
	}
	return nil
}
