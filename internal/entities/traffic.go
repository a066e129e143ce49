package entities

import (
	"time"

	"github.com/SafwanAmin-BracU/dhaka-drive/internal/db"
)

type TrafficReportResponse struct {
	ID          int       `json:"id"`
	Status      string    `json:"status"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	IsVerified  bool      `json:"is_verified"`
	Location    db.Point  `json:"location"`
	CreatedAt   time.Time `json:"created_at"`
}

type TrafficAlert struct {
	ID          int       `json:"id"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// TrafficSummary carries per-status report counts plus the most recent
// heavy-traffic alerts.
type TrafficSummary struct {
	Heavy        int            `json:"heavy"`
	Moderate     int            `json:"moderate"`
	Clear        int            `json:"clear"`
	RecentAlerts []TrafficAlert `json:"recent_alerts"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type ActivityBucket struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type TrafficAnalytics struct {
	StatusDistribution []StatusCount    `json:"status_distribution"`
	WeeklyActivity     []ActivityBucket `json:"weekly_activity"`
}

type TrafficNewsItem struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Source      string    `json:"source,omitempty"`
	PublishedAt time.Time `json:"published_at"`
}
