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

type FeedbackStore interface {
	Create(fb *db.UserFeedback) error
	List() ([]db.UserFeedback, error)
	MarkRead(id int) error
}

type FeedbackService struct {
	store FeedbackStore
}

func NewFeedbackService(store FeedbackStore) *FeedbackService {
	return &FeedbackService{store: store}
}

// Submit records feedback; userID may be empty for guests.
func (s *FeedbackService) Submit(userID, name, email, subject, message string) (*db.UserFeedback, error) {
	if name == "" || email == "" || subject == "" || message == "" {
		return nil, apperrors.ErrValidation("name, email, subject and message are required")
	}
	fb := &db.UserFeedback{
		UserID:  sql.NullString{String: userID, Valid: userID != ""},
		Name:    name,
		Email:   email,
		Subject: subject,
		Message: message,
	}
	if err := s.store.Create(fb); err != nil {
		log.Printf("Error creating feedback: %v", err)
		return nil, err
	}
	return fb, nil
}

func (s *FeedbackService) List() ([]entities.FeedbackItem, error) {
	rows, err := s.store.List()
	if err != nil {
		return nil, err
	}
	items := make([]entities.FeedbackItem, 0, len(rows))
	for _, fb := range rows {
		items = append(items, entities.FeedbackItem{
			ID:        fb.ID,
			Name:      fb.Name,
			Email:     fb.Email,
			Subject:   fb.Subject,
			Message:   fb.Message,
			IsRead:    fb.IsRead,
			CreatedAt: fb.CreatedAt,
		})
	}
	return items, nil
}

func (s *FeedbackService) MarkRead(id int) error {
	err := s.store.MarkRead(id)
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.ErrNotFound("feedback not found")
	}
	return err
}
