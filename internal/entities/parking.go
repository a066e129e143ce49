package entities

import (
	"time"

	"github.com/SafwanAmin-BracU/dhaka-drive/internal/db"
)

type ParkingSpotResponse struct {
	ID           int      `json:"id"`
	Name         string   `json:"name"`
	Address      string   `json:"address"`
	TotalSlots   int      `json:"total_slots"`
	IsAvailable  bool     `json:"is_available"`
	PricePerHour int      `json:"price_per_hour"`
	Location     db.Point `json:"location"`
}

type BookingResponse struct {
	BookingID int       `json:"booking_id"`
	SpotID    int       `json:"spot_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    string    `json:"status"`
}

// AdminSpotItem is the management view of a spot, ownership and creation
// time included.
type AdminSpotItem struct {
	ID           int       `json:"id"`
	OwnerID      string    `json:"owner_id,omitempty"`
	Name         string    `json:"name"`
	Address      string    `json:"address"`
	TotalSlots   int       `json:"total_slots"`
	IsAvailable  bool      `json:"is_available"`
	PricePerHour int       `json:"price_per_hour"`
	Location     db.Point  `json:"location"`
	CreatedAt    time.Time `json:"created_at"`
}

// BookingHistoryItem joins a booking to its parking spot for the user's
// history view.
type BookingHistoryItem struct {
	ID           int       `json:"id"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	Status       string    `json:"status"`
	SpotName     string    `json:"spot_name"`
	Address      string    `json:"address"`
	PricePerHour int       `json:"price_per_hour"`
}
