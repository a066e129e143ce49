package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/SafwanAmin-BracU/dhaka-drive/internal/db"
	"github.com/SafwanAmin-BracU/dhaka-drive/internal/entities"
	"github.com/lib/pq"
)

type ParkingRepository struct {
	DB *sql.DB
}

func NewParkingRepository(database *sql.DB) *ParkingRepository {
	return &ParkingRepository{DB: database}
}

func (r *ParkingRepository) ListSpots(availableOnly bool) ([]entities.ParkingSpotResponse, error) {
	query := `
		SELECT id, name, COALESCE(address, ''), total_slots, is_available,
		       COALESCE(price_per_hour, 0),
		       ST_X(location::geometry), ST_Y(location::geometry)
		FROM parking_spots`
	if availableOnly {
		query += ` WHERE is_available = true`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error querying parking spots: %w", err)
	}
	defer rows.Close()

	var spots []entities.ParkingSpotResponse
	for rows.Next() {
		var s entities.ParkingSpotResponse
		if err := rows.Scan(&s.ID, &s.Name, &s.Address, &s.TotalSlots, &s.IsAvailable,
			&s.PricePerHour, &s.Location.Lon, &s.Location.Lat); err != nil {
			return nil, fmt.Errorf("error scanning parking spot: %w", err)
		}
		spots = append(spots, s)
	}
	return spots, rows.Err()
}

func (r *ParkingRepository) GetSpot(id int) (*db.ParkingSpot, error) {
	var s db.ParkingSpot
	query := `
		SELECT id, owner_id, name, COALESCE(address, ''), total_slots, is_available,
		       COALESCE(price_per_hour, 0),
		       ST_X(location::geometry), ST_Y(location::geometry), created_at
		FROM parking_spots WHERE id = $1`
	err := r.DB.QueryRow(query, id).Scan(
		&s.ID, &s.OwnerID, &s.Name, &s.Address, &s.TotalSlots, &s.IsAvailable,
		&s.PricePerHour, &s.Location.Lon, &s.Location.Lat, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error querying parking spot %d: %w", id, err)
	}
	return &s, nil
}

func (r *ParkingRepository) CreateSpot(spot *db.ParkingSpot) error {
	query := `
		INSERT INTO parking_spots (owner_id, name, address, total_slots, is_available, price_per_hour, location)
		VALUES ($1, $2, $3, $4, $5, $6, ST_SetSRID(ST_MakePoint($7, $8), 4326))
		RETURNING id, created_at`
	err := r.DB.QueryRow(query,
		spot.OwnerID, spot.Name, spot.Address, spot.TotalSlots, spot.IsAvailable,
		spot.PricePerHour, spot.Location.Lon, spot.Location.Lat,
	).Scan(&spot.ID, &spot.CreatedAt)
	if err != nil {
		return fmt.Errorf("error inserting parking spot: %w", err)
	}
	return nil
}

// ListAllSpots returns every spot, newest first, for the admin management
// view. Unlike ListSpots it includes unavailable spots and ownership data.
func (r *ParkingRepository) ListAllSpots() ([]db.ParkingSpot, error) {
	query := `
		SELECT id, owner_id, name, COALESCE(address, ''), total_slots, is_available,
		       COALESCE(price_per_hour, 0),
		       ST_X(location::geometry), ST_Y(location::geometry), created_at
		FROM parking_spots
		ORDER BY created_at DESC`
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error querying all parking spots: %w", err)
	}
	defer rows.Close()

	var spots []db.ParkingSpot
	for rows.Next() {
		var s db.ParkingSpot
		if err := rows.Scan(&s.ID, &s.OwnerID, &s.Name, &s.Address, &s.TotalSlots,
			&s.IsAvailable, &s.PricePerHour, &s.Location.Lon, &s.Location.Lat,
			&s.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning parking spot: %w", err)
		}
		spots = append(spots, s)
	}
	return spots, rows.Err()
}

func (r *ParkingRepository) UpdateSpot(id int, name, address string, totalSlots, pricePerHour int, isAvailable bool) error {
	result, err := r.DB.Exec(`
		UPDATE parking_spots
		SET name = $1, address = $2, total_slots = $3, price_per_hour = $4, is_available = $5
		WHERE id = $6`,
		name, address, totalSlots, pricePerHour, isAvailable, id,
	)
	if err != nil {
		return fmt.Errorf("error updating parking spot %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading spot update result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteSpot removes a spot. Spots with bookings attached are protected by
// the foreign key and report ErrSpotInUse.
func (r *ParkingRepository) DeleteSpot(id int) error {
	result, err := r.DB.Exec(`DELETE FROM parking_spots WHERE id = $1`, id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
			return ErrSpotInUse
		}
		return fmt.Errorf("error deleting parking spot %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading spot delete result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateBooking runs the capacity check and the insert inside a single
// serializable transaction so two concurrent bookings cannot both pass the
// overlap count. Overlap uses the half-open test: an existing booking
// conflicts iff existing.start < end AND existing.end > start, so a booking
// ending exactly when another starts never conflicts.
func (r *ParkingRepository) CreateBooking(ctx context.Context, userID string, spotID int, start, end time.Time) (*db.Booking, error) {
	tx, err := r.DB.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, fmt.Errorf("error starting booking transaction: %w", err)
	}
	defer tx.Rollback()

	var totalSlots int
	err = tx.QueryRowContext(ctx,
		`SELECT total_slots FROM parking_spots WHERE id = $1`, spotID,
	).Scan(&totalSlots)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error loading spot %d: %w", spotID, err)
	}

	var overlapping int
	err = tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM bookings
		WHERE parking_spot_id = $1
		  AND status = $2
		  AND start_time < $3
		  AND end_time > $4`,
		spotID, db.BookingConfirmed, end, start,
	).Scan(&overlapping)
	if err != nil {
		return nil, fmt.Errorf("error counting overlapping bookings: %w", err)
	}
	if overlapping >= totalSlots {
		return nil, ErrCapacityFull
	}

	booking := &db.Booking{
		UserID:        userID,
		ParkingSpotID: spotID,
		StartTime:     start,
		EndTime:       end,
		Status:        db.BookingConfirmed,
	}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO bookings (user_id, parking_spot_id, start_time, end_time, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		booking.UserID, booking.ParkingSpotID, booking.StartTime, booking.EndTime, booking.Status,
	).Scan(&booking.ID, &booking.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("error inserting booking: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("error committing booking: %w", err)
	}
	return booking, nil
}

func (r *ParkingRepository) ListBookingsByUser(userID string) ([]entities.BookingHistoryItem, error) {
	query := `
		SELECT b.id, b.start_time, b.end_time, b.status,
		       p.name, COALESCE(p.address, ''), COALESCE(p.price_per_hour, 0)
		FROM bookings b
		JOIN parking_spots p ON b.parking_spot_id = p.id
		WHERE b.user_id = $1
		ORDER BY b.start_time DESC`
	rows, err := r.DB.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying booking history: %w", err)
	}
	defer rows.Close()

	var history []entities.BookingHistoryItem
	for rows.Next() {
		var item entities.BookingHistoryItem
		if err := rows.Scan(&item.ID, &item.StartTime, &item.EndTime, &item.Status,
			&item.SpotName, &item.Address, &item.PricePerHour); err != nil {
			return nil, fmt.Errorf("error scanning booking history row: %w", err)
		}
		history = append(history, item)
	}
	return history, rows.Err()
}

// CancelBooking flips a confirmed booking owned by userID to cancelled.
func (r *ParkingRepository) CancelBooking(bookingID int, userID string) error {
	result, err := r.DB.Exec(`
		UPDATE bookings SET status = $1
		WHERE id = $2 AND user_id = $3 AND status = $4`,
		db.BookingCancelled, bookingID, userID, db.BookingConfirmed,
	)
	if err != nil {
		return fmt.Errorf("error cancelling booking %d: %w", bookingID, err)
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
