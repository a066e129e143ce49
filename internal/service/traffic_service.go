package service

import (
	"database/sql"
	"errors"
	"log"

	"github.com/SafwanAmin-BracU/dhaka-drive/internal/db"
	"github.com/SafwanAmin-BracU/dhaka-drive/internal/entities"
	apperrors "github.com/SafwanAmin-BracU/dhaka-drive/internal/errors"
	"github.com/SafwanAmin-BracU/dhaka-drive/internal/repository"
)

const recentAlertLimit = 5

var trafficStatuses = map[string]bool{
	db.TrafficHeavy:    true,
	db.TrafficModerate: true,
	db.TrafficClear:    true,
}

type TrafficStore interface {
	CreateReport(report *db.TrafficReport) error
	ListReports(verifiedOnly bool) ([]entities.TrafficReportResponse, error)
	VerifyReport(id int) error
	DeleteReport(id int) error
	StatusCounts() ([]entities.StatusCount, error)
	RecentHeavyAlerts(limit int) ([]entities.TrafficAlert, error)
	WeeklyActivity() ([]entities.ActivityBucket, error)
	CreateNews(news *db.TrafficNews) error
	ListNews() ([]entities.TrafficNewsItem, error)
}

type TrafficService struct {
	store TrafficStore
}

func NewTrafficService(store TrafficStore) *TrafficService {
	return &TrafficService{store: store}
}

// SubmitReport files a new unverified report pinned at the given location.
func (s *TrafficService) SubmitReport(userID, status, description, imageURL string, location db.Point) (*db.TrafficReport, error) {
	if !trafficStatuses[status] {
		return nil, apperrors.ErrValidation("invalid traffic status")
	}
	report := &db.TrafficReport{
		UserID:     sql.NullString{String: userID, Valid: userID != ""},
		Status:     status,
		IsVerified: false,
		Location:   location,
	}
	if description != "" {
		report.Description = sql.NullString{String: description, Valid: true}
	}
	if imageURL != "" {
		report.ImageURL = sql.NullString{String: imageURL, Valid: true}
	}
	if err := s.store.CreateReport(report); err != nil {
		log.Printf("Error creating traffic report: %v", err)
		return nil, err
	}
	return report, nil
}

func (s *TrafficService) VerifiedReports() ([]entities.TrafficReportResponse, error) {
	return s.store.ListReports(true)
}

// PendingReports lists unverified reports for the moderation queue.
func (s *TrafficService) PendingReports() ([]entities.TrafficReportResponse, error) {
	return s.store.ListReports(false)
}

func (s *TrafficService) Verify(id int) error {
	err := s.store.VerifyReport(id)
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.ErrNotFound("traffic report not found")
	}
	return err
}

// Reject deletes the report; rejected reports are treated as spam.
func (s *TrafficService) Reject(id int) error {
	err := s.store.DeleteReport(id)
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.ErrNotFound("traffic report not found")
	}
	return err
}

func (s *TrafficService) Summary() (*entities.TrafficSummary, error) {
	counts, err := s.store.StatusCounts()
	if err != nil {
		log.Printf("Error loading traffic status counts: %v", err)
		return nil, err
	}
	summary := &entities.TrafficSummary{}
	for _, c := range counts {
		switch c.Status {
		case db.TrafficHeavy:
			summary.Heavy = c.Count
		case db.TrafficModerate:
			summary.Moderate = c.Count
		case db.TrafficClear:
			summary.Clear = c.Count
		}
	}
	alerts, err := s.store.RecentHeavyAlerts(recentAlertLimit)
	if err != nil {
		log.Printf("Error loading recent alerts: %v", err)
		return nil, err
	}
	summary.RecentAlerts = alerts
	return summary, nil
}

func (s *TrafficService) Analytics() (*entities.TrafficAnalytics, error) {
	counts, err := s.store.StatusCounts()
	if err != nil {
		return nil, err
	}
	activity, err := s.store.WeeklyActivity()
	if err != nil {
		return nil, err
	}
	return &entities.TrafficAnalytics{
		StatusDistribution: counts,
		WeeklyActivity:     activity,
	}, nil
}

func (s *TrafficService) News() ([]entities.TrafficNewsItem, error) {
	return s.store.ListNews()
}

// AddNews publishes a news article; source is optional.
func (s *TrafficService) AddNews(title, content, source string) (*db.TrafficNews, error) {
	if title == "" || content == "" {
		return nil, apperrors.ErrValidation("title and content are required")
	}
	news := &db.TrafficNews{Title: title, Content: content}
	if source != "" {
		news.Source = sql.NullString{String: source, Valid: true}
	}
	if err := s.store.CreateNews(news); err != nil {
		log.Printf("Error creating news article: %v", err)
		return nil, err
	}
	return news, nil
}
