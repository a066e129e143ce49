package repository

import (
	"database/sql"
	"fmt"

	"github.com/SafwanAmin-BracU/dhaka-drive/internal/db"
	"github.com/SafwanAmin-BracU/dhaka-drive/internal/entities"
)

type TrafficRepository struct {
	DB *sql.DB
}

func NewTrafficRepository(database *sql.DB) *TrafficRepository {
	return &TrafficRepository{DB: database}
}

func (r *TrafficRepository) CreateReport(report *db.TrafficReport) error {
	query := `
		INSERT INTO traffic_reports (user_id, status, description, image_url, is_verified, location)
		VALUES ($1, $2, $3, $4, $5, ST_SetSRID(ST_MakePoint($6, $7), 4326))
		RETURNING id, created_at`
	err := r.DB.QueryRow(query,
		report.UserID, report.Status, report.Description, report.ImageURL,
		report.IsVerified, report.Location.Lon, report.Location.Lat,
	).Scan(&report.ID, &report.CreatedAt)
	if err != nil {
		return fmt.Errorf("error inserting traffic report: %w", err)
	}
	return nil
}

func (r *TrafficRepository) ListReports(verifiedOnly bool) ([]entities.TrafficReportResponse, error) {
	query := `
		SELECT id, status, COALESCE(description, ''), COALESCE(image_url, ''), is_verified,
		       ST_X(location::geometry), ST_Y(location::geometry), created_at
		FROM traffic_reports`
	if verifiedOnly {
		query += ` WHERE is_verified = true`
	} else {
		query += ` WHERE is_verified = false`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error querying traffic reports: %w", err)
	}
	defer rows.Close()

	var reports []entities.TrafficReportResponse
	for rows.Next() {
		var rep entities.TrafficReportResponse
		if err := rows.Scan(&rep.ID, &rep.Status, &rep.Description, &rep.ImageURL,
			&rep.IsVerified, &rep.Location.Lon, &rep.Location.Lat, &rep.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning traffic report: %w", err)
		}
		reports = append(reports, rep)
	}
	return reports, rows.Err()
}

func (r *TrafficRepository) VerifyReport(id int) error {
	result, err := r.DB.Exec(
		`UPDATE traffic_reports SET is_verified = true WHERE id = $1`, id,
	)
	if err != nil {
		return fmt.Errorf("error verifying report %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading verify result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteReport removes a rejected report outright to keep spam out of the
// moderation queue.
func (r *TrafficRepository) DeleteReport(id int) error {
	result, err := r.DB.Exec(`DELETE FROM traffic_reports WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting report %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading delete result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *TrafficRepository) StatusCounts() ([]entities.StatusCount, error) {
	rows, err := r.DB.Query(`
		SELECT status, COUNT(id) FROM traffic_reports GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("error querying status counts: %w", err)
	}
	defer rows.Close()

	var counts []entities.StatusCount
	for rows.Next() {
		var sc entities.StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, fmt.Errorf("error scanning status count: %w", err)
		}
		counts = append(counts, sc)
	}
	return counts, rows.Err()
}

func (r *TrafficRepository) RecentHeavyAlerts(limit int) ([]entities.TrafficAlert, error) {
	rows, err := r.DB.Query(`
		SELECT id, COALESCE(description, ''), status, created_at
		FROM traffic_reports
		WHERE status = $1
		ORDER BY created_at DESC
		LIMIT $2`, db.TrafficHeavy, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying heavy alerts: %w", err)
	}
	defer rows.Close()

	var alerts []entities.TrafficAlert
	for rows.Next() {
		var a entities.TrafficAlert
		if err := rows.Scan(&a.ID, &a.Description, &a.Status, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning alert: %w", err)
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

// WeeklyActivity buckets report counts per calendar day over the last seven
// days, newest day first. Grouping happens on the truncated timestamp so days
// from different years never share a bucket.
func (r *TrafficRepository) WeeklyActivity() ([]entities.ActivityBucket, error) {
	rows, err := r.DB.Query(`
		SELECT to_char(date_trunc('day', created_at), 'Mon DD'), COUNT(id)
		FROM traffic_reports
		WHERE created_at >= NOW() - INTERVAL '7 days'
		GROUP BY date_trunc('day', created_at)
		ORDER BY date_trunc('day', created_at) DESC`)
	if err != nil {
		return nil, fmt.Errorf("error querying weekly activity: %w", err)
	}
	defer rows.Close()

	var buckets []entities.ActivityBucket
	for rows.Next() {
		var b entities.ActivityBucket
		if err := rows.Scan(&b.Date, &b.Count); err != nil {
			return nil, fmt.Errorf("error scanning activity bucket: %w", err)
		}
		buckets = append(buckets, b)
	}
	return buckets, rows.Err()
}

func (r *TrafficRepository) CreateNews(news *db.TrafficNews) error {
	err := r.DB.QueryRow(`
		INSERT INTO traffic_news (title, content, source)
		VALUES ($1, $2, $3)
		RETURNING id, published_at`,
		news.Title, news.Content, news.Source,
	).Scan(&news.ID, &news.PublishedAt)
	if err != nil {
		return fmt.Errorf("error inserting news article: %w", err)
	}
	return nil
}

func (r *TrafficRepository) ListNews() ([]entities.TrafficNewsItem, error) {
	rows, err := r.DB.Query(`
		SELECT id, title, content, COALESCE(source, ''), published_at
		FROM traffic_news
		ORDER BY published_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("error querying traffic news: %w", err)
	}
	defer rows.Close()

	var news []entities.TrafficNewsItem
	for rows.Next() {
		var n entities.TrafficNewsItem
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.Source, &n.PublishedAt); err != nil {
			return nil, fmt.Errorf("error scanning news item: %w", err)
		}
		news = append(news, n)
	}
	return news, rows.Err()
}
