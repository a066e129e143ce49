package db

import (
	"database/sql"
	"time"
)

// Point is a 2D coordinate stored in Postgres as geometry(Point,4326).
// Repositories write it with ST_SetSRID(ST_MakePoint(lon,lat),4326) and read
// it back through ST_X/ST_Y, so it never crosses the wire as raw geometry.
type Point struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

type User struct {
	ID            string
	Name          string
	Email         string
	PasswordHash  string
	EmailVerified bool
	IsAdmin       bool
	CreatedAt     time.Time
}

type ParkingSpot struct {
	ID           int
	OwnerID      sql.NullString
	Name         string
	Address      string
	TotalSlots   int
	IsAvailable  bool
	PricePerHour int
	Location     Point
	CreatedAt    time.Time
}

type Booking struct {
	ID            int
	UserID        string
	ParkingSpotID int
	StartTime     time.Time
	EndTime       time.Time
	Status        string
	CreatedAt     time.Time
}

type ServiceProvider struct {
	ID          int
	Name        string
	Type        string
	ContactInfo string
	Address     string
	Rating      int
	Location    Point
}

type ServiceRequest struct {
	ID                int
	UserID            string
	ProviderID        sql.NullInt64
	IssueDescription  string
	Status            string
	UserLocation      Point
	CreatedAt         time.Time
	ApprovedAt        sql.NullTime
	RejectedAt        sql.NullTime
	RejectionReason   sql.NullString
	ApprovedByAdminID sql.NullString
	RequestedDateTime sql.NullTime
	Notes             sql.NullString
}

type ServiceAppointment struct {
	ID              int
	UserID          string
	ProviderID      int
	AppointmentTime time.Time
	ServiceType     string
	Notes           string
	Status          string
	CreatedAt       time.Time
}

type SavedProvider struct {
	ID         int
	UserID     string
	ProviderID int
	CreatedAt  time.Time
}

type TrafficReport struct {
	ID          int
	UserID      sql.NullString
	Status      string
	Description sql.NullString
	ImageURL    sql.NullString
	IsVerified  bool
	Location    Point
	CreatedAt   time.Time
}

type TrafficNews struct {
	ID          int
	Title       string
	Content     string
	Source      sql.NullString
	PublishedAt time.Time
}

type UserFeedback struct {
	ID        int
	UserID    sql.NullString
	Name      string
	Email     string
	Subject   string
	Message   string
	IsRead    bool
	CreatedAt time.Time
}
