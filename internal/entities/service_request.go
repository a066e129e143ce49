package entities

import (
	"time"

	"github.com/SafwanAmin-BracU/dhaka-drive/internal/db"
)

// PendingQuery holds the normalized listing parameters for the admin
// pending-request view. SortBy is whitelisted before it reaches SQL.
type PendingQuery struct {
	SortBy string
	Order  string
	Limit  int
	Offset int
}

type ServiceRequestListItem struct {
	ID                int        `json:"id"`
	UserID            string     `json:"user_id"`
	UserName          string     `json:"user_name"`
	UserEmail         string     `json:"user_email"`
	ServiceType       string     `json:"service_type"`
	RequestedDateTime *time.Time `json:"requested_date_time,omitempty"`
	SubmittedAt       time.Time  `json:"submitted_at"`
	ProviderName      string     `json:"provider_name"`
	ProviderType      string     `json:"provider_type"`
	Notes             string     `json:"notes,omitempty"`
	Status            string     `json:"status"`
}

type ServiceRequestDetail struct {
	ID               int       `json:"id"`
	UserID           string    `json:"user_id"`
	UserName         string    `json:"user_name"`
	UserEmail        string    `json:"user_email"`
	UserLocation     db.Point  `json:"user_location"`
	ServiceType      string    `json:"service_type"`
	IssueDescription string    `json:"issue_description"`

	ProviderID      *int   `json:"provider_id,omitempty"`
	ProviderName    string `json:"provider_name,omitempty"`
	ProviderType    string `json:"provider_type,omitempty"`
	ProviderContact string `json:"provider_contact,omitempty"`
	ProviderAddress string `json:"provider_address,omitempty"`
	ProviderRating  int    `json:"provider_rating"`

	// Availability conflict detection against the provider's appointment
	// calendar is not implemented; the flag is always false.
	ProviderAvailabilityConflict bool `json:"provider_availability_conflict"`

	RequestedDateTime *time.Time `json:"requested_date_time,omitempty"`
	Notes             string     `json:"notes,omitempty"`

	Status          string     `json:"status"`
	SubmittedAt     time.Time  `json:"submitted_at"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	RejectedAt      *time.Time `json:"rejected_at,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
	ApprovedByAdmin string     `json:"approved_by_admin,omitempty"`
}

// NotificationsSent reports the best-effort delivery outcome of the approval
// or rejection notifications. Informational only, never affects the
// transition itself.
type NotificationsSent struct {
	User     bool `json:"user"`
	Provider bool `json:"provider"`
}

type ApprovalResult struct {
	RequestID         int               `json:"request_id"`
	NewStatus         string            `json:"new_status"`
	ApprovedAt        time.Time         `json:"approved_at"`
	NotificationsSent NotificationsSent `json:"notifications_sent"`
}

type RejectionResult struct {
	RequestID         int               `json:"request_id"`
	NewStatus         string            `json:"new_status"`
	RejectedAt        time.Time         `json:"rejected_at"`
	RejectionReason   string            `json:"rejection_reason"`
	NotificationsSent NotificationsSent `json:"notifications_sent"`
}

// PendingPage is the paginated admin listing of pending requests.
type PendingPage struct {
	Requests   []ServiceRequestListItem `json:"requests"`
	Total      int                      `json:"total"`
	Page       int                      `json:"page"`
	PageSize   int                      `json:"page_size"`
	TotalPages int                      `json:"total_pages"`
	SortBy     string                   `json:"sort_by"`
	Order      string                   `json:"order"`
}

// RequestHistoryItem is a user's own service request joined to the provider.
type RequestHistoryItem struct {
	ID               int        `json:"id"`
	IssueDescription string     `json:"issue_description"`
	Status           string     `json:"status"`
	ProviderName     string     `json:"provider_name,omitempty"`
	ProviderType     string     `json:"provider_type,omitempty"`
	SubmittedAt      time.Time  `json:"submitted_at"`
	RejectionReason  string     `json:"rejection_reason,omitempty"`
	RejectedAt       *time.Time `json:"rejected_at,omitempty"`
	ApprovedAt       *time.Time `json:"approved_at,omitempty"`
}
