package entities

import (
	"time"

	"github.com/SafwanAmin-BracU/dhaka-drive/internal/db"
)

type ProviderResponse struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	ContactInfo string   `json:"contact_info"`
	Address     string   `json:"address,omitempty"`
	Rating      int      `json:"rating"`
	Location    db.Point `json:"location"`
}

type AppointmentHistoryItem struct {
	ID              int       `json:"id"`
	AppointmentTime time.Time `json:"appointment_time"`
	ServiceType     string    `json:"service_type"`
	Status          string    `json:"status"`
	Notes           string    `json:"notes,omitempty"`
	ProviderName    string    `json:"provider_name"`
	ProviderAddress string    `json:"provider_address,omitempty"`
	ProviderType    string    `json:"provider_type"`
	ContactInfo     string    `json:"contact_info"`
}

// SavedProviderItem is a bookmark joined to the provider it points at.
type SavedProviderItem struct {
	SavedID  int              `json:"saved_id"`
	SavedAt  time.Time        `json:"saved_at"`
	Provider ProviderResponse `json:"provider"`
}
