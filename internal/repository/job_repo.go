package repository

import (
	"database/sql"
	"fmt"

	"github.com/SafwanAmin-BracU/dhaka-drive/internal/db"
	"github.com/lib/pq"
)

type JobRepository struct {
	DB *sql.DB
}

func NewJobRepository(database *sql.DB) *JobRepository {
	return &JobRepository{DB: database}
}

// GetConfirmedBookingIDsPastEndTime returns confirmed bookings whose end time
// has already passed.
func (r *JobRepository) GetConfirmedBookingIDsPastEndTime() ([]int, error) {
	return r.collectIDs(
		`SELECT id FROM bookings WHERE status = $1 AND end_time < NOW()`,
		db.BookingConfirmed,
	)
}

// GetConfirmedAppointmentIDsPast returns confirmed appointments whose time
// has already passed.
func (r *JobRepository) GetConfirmedAppointmentIDsPast() ([]int, error) {
	return r.collectIDs(
		`SELECT id FROM service_appointments WHERE status = $1 AND appointment_time < NOW()`,
		db.BookingConfirmed,
	)
}

func (r *JobRepository) UpdateBookingStatuses(ids []int, newStatus string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.DB.Exec(
		`UPDATE bookings SET status = $1 WHERE id = ANY($2)`,
		newStatus, pq.Array(ids),
	)
	if err != nil {
		return fmt.Errorf("error updating booking statuses: %w", err)
	}
	return nil
}

func (r *JobRepository) UpdateAppointmentStatuses(ids []int, newStatus string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.DB.Exec(
		`UPDATE service_appointments SET status = $1 WHERE id = ANY($2)`,
		newStatus, pq.Array(ids),
	)
	if err != nil {
		return fmt.Errorf("error updating appointment statuses: %w", err)
	}
	return nil
}

func (r *JobRepository) collectIDs(query string, args ...interface{}) ([]int, error) {
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying expired rows: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
