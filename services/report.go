package services

import (
	"context"
	"sort"
	"strconv"
	"time"

	"onboarding-service/models"
	"onboarding-service/storage"
)

const bytesPerKilobyte = 1000

type ReportWithImages struct {
	Report    models.Report `json:"report"`
	ImageURLs []string      `json:"image_urls"`
	SizeKB    int64         `json:"size_kb"`
}

type ReportService struct {
	repo   models.Repository
	assets *storage.AssetDirectory
}

func NewReportService(repo models.Repository, assets *storage.AssetDirectory) *ReportService {
	return &ReportService{repo: repo, assets: assets}
}

func reportPrefix(email string, reportID uint) string {
	return storage.BuildPrefix(
		storage.CategoryPaidAdvertisingReports,
		email,
		strconv.FormatUint(uint64(reportID), 10),
	)
}

func (s *ReportService) listReports(email string) ([]models.Report, error) {
	reports, err := s.repo.FindReportsByRecipient(email)
	if err != nil {
		return nil, err
	}
	live := make([]models.Report, 0, len(reports))
	for _, report := range reports {
		if !report.Removed() {
			live = append(live, report)
		}
	}
	sort.SliceStable(live, func(i, j int) bool {
		return live[i].Date.After(live[j].Date)
	})
	return live, nil
}

// ListReportsWithImages returns the client's live reports, newest first, each
// enriched with public image URLs and the total media size. A storage failure
// aborts the whole listing.
func (s *ReportService) ListReportsWithImages(ctx context.Context, email string) ([]ReportWithImages, error) {
	reports, err := s.listReports(email)
	if err != nil {
		return nil, err
	}
	result := make([]ReportWithImages, 0, len(reports))
	for _, report := range reports {
		enriched, err := s.withImages(ctx, email, report)
		if err != nil {
			return nil, err
		}
		result = append(result, enriched)
	}
	return result, nil
}

func (s *ReportService) FindReportByID(ctx context.Context, email string, id uint) (*ReportWithImages, error) {
	report, err := s.repo.FindReportByRecipientAndID(email, id)
	if err != nil {
		return nil, err
	}
	enriched, err := s.withImages(ctx, email, *report)
	if err != nil {
		return nil, err
	}
	return &enriched, nil
}

func (s *ReportService) withImages(ctx context.Context, email string, report models.Report) (ReportWithImages, error) {
	prefix := reportPrefix(email, report.ID)
	objects, err := s.assets.ListAll(ctx, prefix)
	if err != nil {
		return ReportWithImages{}, err
	}
	urls := make([]string, len(objects))
	var size int64
	for i, obj := range objects {
		urls[i] = s.assets.PublicURL(obj.Key)
		size += obj.Size
	}
	return ReportWithImages{
		Report:    report,
		ImageURLs: urls,
		SizeKB:    size / bytesPerKilobyte,
	}, nil
}

// Save creates the report row, then uploads its media under the key scoped by
// the new report id.
func (s *ReportService) Save(ctx context.Context, clientEmail, name string, files []storage.UploadFile) error {
	client, err := s.repo.GetClientByEmail(clientEmail)
	if err != nil {
		return err
	}
	report := &models.Report{
		Name:        name,
		Date:        time.Now(),
		RecipientID: client.ID,
	}
	if err := s.repo.SaveReport(report); err != nil {
		return err
	}
	return s.assets.Upload(ctx, reportPrefix(clientEmail, report.ID), files)
}

// DeleteReport tombstones the report and returns the recipient's remaining
// reports.
func (s *ReportService) DeleteReport(id uint) ([]models.Report, error) {
	report, err := s.repo.GetReportByID(id)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	report.RemovedAt = &now
	if err := s.repo.SaveReport(report); err != nil {
		return nil, err
	}
	return s.listReports(report.Recipient.Email)
}
