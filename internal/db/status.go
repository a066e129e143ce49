package db

// Booking and appointment statuses.
const (
	BookingConfirmed = "confirmed"
	BookingCompleted = "completed"
	BookingCancelled = "cancelled"
)

// Service request statuses.
const (
	RequestPending   = "Pending"
	RequestAccepted  = "Accepted"
	RequestCompleted = "Completed"
	RequestCancelled = "Cancelled"
	RequestRejected  = "Rejected"
)

// Service provider types.
const (
	ProviderMechanic  = "Mechanic"
	ProviderTowing    = "Towing"
	ProviderCarWash   = "CarWash"
	ProviderEmergency = "Emergency"
	ProviderFuel      = "Fuel"
)

// Traffic report statuses.
const (
	TrafficHeavy    = "Heavy"
	TrafficModerate = "Moderate"
	TrafficClear    = "Clear"
)

// Rejection reason categories for service requests. "Other" carries a
// free-text reason supplied by the admin.
const (
	ReasonProviderUnavailable = "ProviderUnavailable"
	ReasonIncompleteInfo      = "IncompleteInfo"
	ReasonUserUnresponsive    = "UserUnresponsive"
	ReasonOther               = "Other"
)
