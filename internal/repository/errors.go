package repository

import "errors"

// Sentinel errors that services translate into the HTTP error taxonomy.
var (
	ErrNotFound     = errors.New("record not found")
	ErrEmailTaken   = errors.New("email already registered")
	ErrCapacityFull = errors.New("spot is fully booked for this time range")
	ErrNotPending   = errors.New("request is not pending")
	ErrSpotInUse    = errors.New("spot has bookings attached")
)
