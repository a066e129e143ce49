package service

import (
	"fmt"
	"log"

	"github.com/SafwanAmin-BracU/dhaka-drive/internal/db"
	"github.com/SafwanAmin-BracU/dhaka-drive/internal/repository"
)

type JobService struct {
	Repo *repository.JobRepository
}

func NewJobService(repo *repository.JobRepository) *JobService {
	return &JobService{Repo: repo}
}

// CompleteExpiredBookings marks confirmed bookings past their end time as
// completed.
func (s *JobService) CompleteExpiredBookings() error {
	ids, err := s.Repo.GetConfirmedBookingIDsPastEndTime()
	if err != nil {
		return fmt.Errorf("cron job: failed to list expired bookings: %w", err)
	}
	if len(ids) == 0 {
		return nil
	}
	if err := s.Repo.UpdateBookingStatuses(ids, db.BookingCompleted); err != nil {
		return fmt.Errorf("cron job: failed to complete bookings: %w", err)
	}
	log.Printf("Cron Job: marked %d bookings as completed", len(ids))
	return nil
}

// CompleteExpiredAppointments marks confirmed appointments whose time has
// passed as completed.
func (s *JobService) CompleteExpiredAppointments() error {
	ids, err := s.Repo.GetConfirmedAppointmentIDsPast()
	if err != nil {
		return fmt.Errorf("cron job: failed to list expired appointments: %w", err)
	}
	if len(ids) == 0 {
		return nil
	}
	if err := s.Repo.UpdateAppointmentStatuses(ids, db.BookingCompleted); err != nil {
		return fmt.Errorf("cron job: failed to complete appointments: %w", err)
	}
	log.Printf("Cron Job: marked %d appointments as completed", len(ids))
	return nil
}
