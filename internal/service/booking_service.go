package service

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/SafwanAmin-BracU/dhaka-drive/internal/db"
	"github.com/SafwanAmin-BracU/dhaka-drive/internal/entities"
	apperrors "github.com/SafwanAmin-BracU/dhaka-drive/internal/errors"
	"github.com/SafwanAmin-BracU/dhaka-drive/internal/repository"
)

// BookingStore is the persistence surface the booking workflow needs.
type BookingStore interface {
	ListSpots(availableOnly bool) ([]entities.ParkingSpotResponse, error)
	GetSpot(id int) (*db.ParkingSpot, error)
	CreateSpot(spot *db.ParkingSpot) error
	ListAllSpots() ([]db.ParkingSpot, error)
	UpdateSpot(id int, name, address string, totalSlots, pricePerHour int, isAvailable bool) error
	DeleteSpot(id int) error
	CreateBooking(ctx context.Context, userID string, spotID int, start, end time.Time) (*db.Booking, error)
	ListBookingsByUser(userID string) ([]entities.BookingHistoryItem, error)
	CancelBooking(bookingID int, userID string) error
}

type BookingService struct {
	store BookingStore
	now   func() time.Time
}

func NewBookingService(store BookingStore) *BookingService {
	return &BookingService{store: store, now: time.Now}
}

func (s *BookingService) ListSpots(availableOnly bool) ([]entities.ParkingSpotResponse, error) {
	return s.store.ListSpots(availableOnly)
}

func (s *BookingService) AddSpot(ownerID, name, address string, totalSlots, pricePerHour int, location db.Point) (*db.ParkingSpot, error) {
	if name == "" || address == "" {
		return nil, apperrors.ErrValidation("name and address are required")
	}
	if totalSlots < 1 {
		return nil, apperrors.ErrValidation("total slots must be at least 1")
	}
	spot := &db.ParkingSpot{
		OwnerID:      sql.NullString{String: ownerID, Valid: true},
		Name:         name,
		Address:      address,
		TotalSlots:   totalSlots,
		PricePerHour: pricePerHour,
		IsAvailable:  true,
		Location:     location,
	}
	if err := s.store.CreateSpot(spot); err != nil {
		log.Printf("Error creating parking spot: %v", err)
		return nil, err
	}
	return spot, nil
}

// AllSpots lists every spot for the admin management view, newest first.
func (s *BookingService) AllSpots() ([]entities.AdminSpotItem, error) {
	spots, err := s.store.ListAllSpots()
	if err != nil {
		return nil, err
	}
	items := make([]entities.AdminSpotItem, 0, len(spots))
	for _, spot := range spots {
		items = append(items, entities.AdminSpotItem{
			ID:           spot.ID,
			OwnerID:      spot.OwnerID.String,
			Name:         spot.Name,
			Address:      spot.Address,
			TotalSlots:   spot.TotalSlots,
			IsAvailable:  spot.IsAvailable,
			PricePerHour: spot.PricePerHour,
			Location:     spot.Location,
			CreatedAt:    spot.CreatedAt,
		})
	}
	return items, nil
}

func (s *BookingService) UpdateSpot(id int, name, address string, totalSlots, pricePerHour int, isAvailable bool) error {
	if name == "" || address == "" {
		return apperrors.ErrValidation("name and address are required")
	}
	if totalSlots < 1 {
		return apperrors.ErrValidation("total slots must be at least 1")
	}
	err := s.store.UpdateSpot(id, name, address, totalSlots, pricePerHour, isAvailable)
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.ErrNotFound("parking spot not found")
	}
	return err
}

func (s *BookingService) DeleteSpot(id int) error {
	err := s.store.DeleteSpot(id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.ErrNotFound("parking spot not found")
	case errors.Is(err, repository.ErrSpotInUse):
		return apperrors.ErrConflict("spot has bookings and cannot be deleted")
	}
	return err
}

// Book validates the requested window and creates a confirmed booking if the
// spot still has capacity. Validation failures never touch the store; the
// capacity check and insert run in one transaction inside the store.
func (s *BookingService) Book(ctx context.Context, userID string, spotID int, start, end time.Time) (*entities.BookingResponse, error) {
	if !end.After(start) {
		return nil, apperrors.ErrValidation("end time must be after start time")
	}
	if start.Before(s.now()) {
		return nil, apperrors.ErrValidation("cannot book in the past")
	}

	booking, err := s.store.CreateBooking(ctx, userID, spotID, start, end)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, apperrors.ErrNotFound("parking spot not found")
		case errors.Is(err, repository.ErrCapacityFull):
			return nil, apperrors.ErrConflict("spot is fully booked for this time range")
		default:
			log.Printf("Error creating booking for spot %d: %v", spotID, err)
			return nil, err
		}
	}

	return &entities.BookingResponse{
		BookingID: booking.ID,
		SpotID:    booking.ParkingSpotID,
		StartTime: booking.StartTime,
		EndTime:   booking.EndTime,
		Status:    booking.Status,
	}, nil
}

func (s *BookingService) History(userID string) ([]entities.BookingHistoryItem, error) {
	return s.store.ListBookingsByUser(userID)
}

func (s *BookingService) Cancel(bookingID int, userID string) error {
	err := s.store.CancelBooking(bookingID, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.ErrNotFound("no confirmed booking to cancel")
	}
	return err
}
