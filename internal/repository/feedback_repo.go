package repository

import (
	"database/sql"
	"fmt"

	"github.com/SafwanAmin-BracU/dhaka-drive/internal/db"
)

type FeedbackRepository struct {
	DB *sql.DB
}

func NewFeedbackRepository(database *sql.DB) *FeedbackRepository {
	return &FeedbackRepository{DB: database}
}

func (r *FeedbackRepository) Create(fb *db.UserFeedback) error {
	query := `
		INSERT INTO user_feedback (user_id, name, email, subject, message)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`
	err := r.DB.QueryRow(query,
		fb.UserID, fb.Name, fb.Email, fb.Subject, fb.Message,
	).Scan(&fb.ID, &fb.CreatedAt)
	if err != nil {
		return fmt.Errorf("error inserting feedback: %w", err)
	}
	return nil
}

func (r *FeedbackRepository) List() ([]db.UserFeedback, error) {
	rows, err := r.DB.Query(`
		SELECT id, user_id, name, email, subject, message, is_read, created_at
		FROM user_feedback
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("error querying feedback: %w", err)
	}
	defer rows.Close()

	var items []db.UserFeedback
	for rows.Next() {
		var fb db.UserFeedback
		if err := rows.Scan(&fb.ID, &fb.UserID, &fb.Name, &fb.Email,
			&fb.Subject, &fb.Message, &fb.IsRead, &fb.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning feedback row: %w", err)
		}
		items = append(items, fb)
	}
	return items, rows.Err()
}

func (r *FeedbackRepository) MarkRead(id int) error {
	result, err := r.DB.Exec(
		`UPDATE user_feedback SET is_read = true WHERE id = $1`, id,
	)
	if err != nil {
		return fmt.Errorf("error marking feedback %d read: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading mark-read result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
