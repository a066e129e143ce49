package repository

import (
	"database/sql"
	"fmt"

	"github.com/SafwanAmin-BracU/dhaka-drive/internal/db"
	"github.com/SafwanAmin-BracU/dhaka-drive/internal/entities"
)

type AppointmentRepository struct {
	DB *sql.DB
}

func NewAppointmentRepository(database *sql.DB) *AppointmentRepository {
	return &AppointmentRepository{DB: database}
}

func (r *AppointmentRepository) Create(appt *db.ServiceAppointment) error {
	query := `
		INSERT INTO service_appointments (user_id, provider_id, appointment_time, service_type, notes, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`
	err := r.DB.QueryRow(query,
		appt.UserID, appt.ProviderID, appt.AppointmentTime, appt.ServiceType, appt.Notes, appt.Status,
	).Scan(&appt.ID, &appt.CreatedAt)
	if err != nil {
		return fmt.Errorf("error inserting appointment: %w", err)
	}
	return nil
}

func (r *AppointmentRepository) ListByUser(userID string) ([]entities.AppointmentHistoryItem, error) {
	query := `
		SELECT a.id, a.appointment_time, a.service_type, a.status, COALESCE(a.notes, ''),
		       p.name, COALESCE(p.address, ''), p.type, p.contact_info
		FROM service_appointments a
		JOIN service_providers p ON a.provider_id = p.id
		WHERE a.user_id = $1
		ORDER BY a.appointment_time DESC`
	rows, err := r.DB.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying appointment history: %w", err)
	}
	defer rows.Close()

	var items []entities.AppointmentHistoryItem
	for rows.Next() {
		var item entities.AppointmentHistoryItem
		if err := rows.Scan(&item.ID, &item.AppointmentTime, &item.ServiceType, &item.Status,
			&item.Notes, &item.ProviderName, &item.ProviderAddress, &item.ProviderType,
			&item.ContactInfo); err != nil {
			return nil, fmt.Errorf("error scanning appointment row: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Cancel flips a confirmed appointment owned by userID to cancelled.
func (r *AppointmentRepository) Cancel(appointmentID int, userID string) error {
	result, err := r.DB.Exec(`
		UPDATE service_appointments SET status = $1
		WHERE id = $2 AND user_id = $3 AND status = $4`,
		db.BookingCancelled, appointmentID, userID, db.BookingConfirmed,
	)
	if err != nil {
		return fmt.Errorf("error cancelling appointment %d: %w", appointmentID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading cancel result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
