package service

import (
	"errors"
	"log"
	"time"

	"github.com/SafwanAmin-BracU/dhaka-drive/internal/db"
	"github.com/SafwanAmin-BracU/dhaka-drive/internal/entities"
	apperrors "github.com/SafwanAmin-BracU/dhaka-drive/internal/errors"
	"github.com/SafwanAmin-BracU/dhaka-drive/internal/repository"
)

type AppointmentStore interface {
	Create(appt *db.ServiceAppointment) error
	ListByUser(userID string) ([]entities.AppointmentHistoryItem, error)
	Cancel(appointmentID int, userID string) error
}

type AppointmentService struct {
	store     AppointmentStore
	providers ProviderStore
	now       func() time.Time
}

func NewAppointmentService(store AppointmentStore, providers ProviderStore) *AppointmentService {
	return &AppointmentService{store: store, providers: providers, now: time.Now}
}

// Book schedules a confirmed appointment with a provider at a future time.
func (s *AppointmentService) Book(userID string, providerID int, at time.Time, serviceType, notes string) (*db.ServiceAppointment, error) {
	if serviceType == "" {
		return nil, apperrors.ErrValidation("service type is required")
	}
	if at.Before(s.now()) {
		return nil, apperrors.ErrValidation("cannot schedule appointments in the past")
	}
	if _, err := s.providers.GetProvider(providerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrNotFound("provider not found")
		}
		return nil, err
	}

	appt := &db.ServiceAppointment{
		UserID:          userID,
		ProviderID:      providerID,
		AppointmentTime: at,
		ServiceType:     serviceType,
		Notes:           notes,
		Status:          db.BookingConfirmed,
	}
	if err := s.store.Create(appt); err != nil {
		log.Printf("Error creating appointment with provider %d: %v", providerID, err)
		return nil, err
	}
	return appt, nil
}

func (s *AppointmentService) History(userID string) ([]entities.AppointmentHistoryItem, error) {
	return s.store.ListByUser(userID)
}

func (s *AppointmentService) Cancel(appointmentID int, userID string) error {
	err := s.store.Cancel(appointmentID, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.ErrNotFound("no confirmed appointment to cancel")
	}
	return err
}
