package api

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Auth
type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

// Parking
type AddSpotRequest struct {
	Name         string  `json:"name" validate:"required"`
	Address      string  `json:"address" validate:"required"`
	TotalSlots   int     `json:"total_slots" validate:"required,min=1"`
	PricePerHour int     `json:"price_per_hour" validate:"min=0"`
	Lat          float64 `json:"lat" validate:"required"`
	Lng          float64 `json:"lng" validate:"required"`
}

// Services
type CreateRequestRequest struct {
	ProviderID       *int    `json:"provider_id"`
	IssueDescription string  `json:"issue_description" validate:"required"`
	UserLat          float64 `json:"user_lat" validate:"required"`
	UserLng          float64 `json:"user_lng" validate:"required"`
	RequestedAt      string  `json:"requested_at"`
	Notes            string  `json:"notes"`
}

type BookAppointmentRequest struct {
	AppointmentTime string `json:"appointment_time" validate:"required"`
	ServiceType     string `json:"service_type" validate:"required"`
	Notes           string `json:"notes"`
}

// SaveProviderRequest toggles a bookmark; action discriminates save/unsave.
type SaveProviderRequest struct {
	ProviderID int    `json:"providerId" validate:"required,min=1"`
	Action     string `json:"action" validate:"required,oneof=save unsave"`
}

// Traffic
type TrafficReportRequest struct {
	Status      string  `json:"status" validate:"required,oneof=Heavy Moderate Clear"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url"`
	Lat         float64 `json:"lat" validate:"required"`
	Lng         float64 `json:"lng" validate:"required"`
}

// Feedback
type FeedbackRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// Admin parking management
type UpdateSpotRequest struct {
	Name         string `json:"name" validate:"required"`
	Address      string `json:"address" validate:"required"`
	TotalSlots   int    `json:"total_slots" validate:"required,min=1"`
	PricePerHour int    `json:"price_per_hour" validate:"min=0"`
	IsAvailable  bool   `json:"is_available"`
}

// Admin news publishing
type NewsRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
	Source  string `json:"source"`
}

// Admin request actions
type RejectRequestBody struct {
	RejectionReason string `json:"rejectionReason" validate:"required"`
	CustomReason    string `json:"customReason"`
}

type ApproveRequestBody struct {
	Notes string `json:"notes"`
}

type UpdateNotesBody struct {
	Notes string `json:"notes"`
}

// Error codes for the save-toggle envelope.
const (
	CodeUnauthorized = "UNAUTHORIZED"
	CodeInvalidInput = "INVALID_INPUT"
	CodeNotFound     = "NOT_FOUND"
	CodeServerError  = "SERVER_ERROR"
)

type EnvelopeError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Envelope is the discriminated success/error response used by the
// save-toggle endpoint.
type Envelope struct {
	Success bool           `json:"success"`
	Data    interface{}    `json:"data,omitempty"`
	Error   *EnvelopeError `json:"error,omitempty"`
}

// parseTimestamp accepts RFC3339 or the HTML datetime-local format.
func parseTimestamp(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04", value)
}
