package services

import (
	"context"

	"onboarding-service/storage"
)

// MediaService handles client media assets and bulk-download archives.
type MediaService struct {
	assets   *storage.AssetDirectory
	archiver *storage.Archiver
}

func NewMediaService(assets *storage.AssetDirectory, archiver *storage.Archiver) *MediaService {
	return &MediaService{assets: assets, archiver: archiver}
}

func mediaPrefix(email string) string {
	return storage.BuildPrefix(storage.CategoryMediaAssets, email)
}

func (s *MediaService) UploadMediaAssets(ctx context.Context, email string, files []storage.UploadFile) error {
	return s.assets.Upload(ctx, mediaPrefix(email), files)
}

func (s *MediaService) ListMediaAssets(ctx context.Context, email string) ([]string, error) {
	return s.assets.ListURLs(ctx, mediaPrefix(email))
}

// MediaAssetsZip bundles every media asset of the client into one ZIP.
func (s *MediaService) MediaAssetsZip(ctx context.Context, email string) ([]byte, error) {
	return s.zipPrefix(ctx, mediaPrefix(email))
}

// ReportZip bundles the media of one advertising report into one ZIP.
func (s *MediaService) ReportZip(ctx context.Context, email string, reportID uint) ([]byte, error) {
	return s.zipPrefix(ctx, reportPrefix(email, reportID))
}

func (s *MediaService) zipPrefix(ctx context.Context, prefix string) ([]byte, error) {
	objects, err := s.assets.ListAll(ctx, prefix)
	if err != nil {
		return nil, err
	}
	keys := make([]string, len(objects))
	for i, obj := range objects {
		keys[i] = obj.Key
	}
	return s.archiver.BuildZip(ctx, keys)
}
