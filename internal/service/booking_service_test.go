package service

import (
	"context"
	"database/sql"
	"net/http"
	"testing"
	"time"

	"github.com/SafwanAmin-BracU/dhaka-drive/internal/db"
	"github.com/SafwanAmin-BracU/dhaka-drive/internal/entities"
	apperrors "github.com/SafwanAmin-BracU/dhaka-drive/internal/errors"
	"github.com/SafwanAmin-BracU/dhaka-drive/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBookingStore struct {
	createSpotFunc    func(spot *db.ParkingSpot) error
	listAllFunc       func() ([]db.ParkingSpot, error)
	updateSpotFunc    func(id int, name, address string, totalSlots, pricePerHour int, isAvailable bool) error
	deleteSpotFunc    func(id int) error
	createBookingFunc func(ctx context.Context, userID string, spotID int, start, end time.Time) (*db.Booking, error)
	cancelFunc        func(bookingID int, userID string) error
}

func (f *fakeBookingStore) ListSpots(availableOnly bool) ([]entities.ParkingSpotResponse, error) {
	return nil, nil
}

func (f *fakeBookingStore) GetSpot(id int) (*db.ParkingSpot, error) { return nil, nil }

func (f *fakeBookingStore) CreateSpot(spot *db.ParkingSpot) error {
	if f.createSpotFunc != nil {
		return f.createSpotFunc(spot)
	}
	return nil
}

func (f *fakeBookingStore) ListAllSpots() ([]db.ParkingSpot, error) {
	if f.listAllFunc != nil {
		return f.listAllFunc()
	}
	return nil, nil
}

func (f *fakeBookingStore) UpdateSpot(id int, name, address string, totalSlots, pricePerHour int, isAvailable bool) error {
	if f.updateSpotFunc != nil {
		return f.updateSpotFunc(id, name, address, totalSlots, pricePerHour, isAvailable)
	}
	return nil
}

func (f *fakeBookingStore) DeleteSpot(id int) error {
	if f.deleteSpotFunc != nil {
		return f.deleteSpotFunc(id)
	}
	return nil
}

func (f *fakeBookingStore) CreateBooking(ctx context.Context, userID string, spotID int, start, end time.Time) (*db.Booking, error) {
	if f.createBookingFunc != nil {
		return f.createBookingFunc(ctx, userID, spotID, start, end)
	}
	return &db.Booking{ID: 1, UserID: userID, ParkingSpotID: spotID, StartTime: start, EndTime: end, Status: db.BookingConfirmed}, nil
}

func (f *fakeBookingStore) ListBookingsByUser(userID string) ([]entities.BookingHistoryItem, error) {
	return nil, nil
}

func (f *fakeBookingStore) CancelBooking(bookingID int, userID string) error {
	if f.cancelFunc != nil {
		return f.cancelFunc(bookingID, userID)
	}
	return nil
}

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestBookingService(store *fakeBookingStore) *BookingService {
	svc := NewBookingService(store)
	svc.now = func() time.Time { return testNow }
	return svc
}

func TestBookValidation(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
	}{
		{"end before start", testNow.Add(2 * time.Hour), testNow.Add(1 * time.Hour)},
		{"end equals start", testNow.Add(1 * time.Hour), testNow.Add(1 * time.Hour)},
		{"start in the past", testNow.Add(-1 * time.Hour), testNow.Add(1 * time.Hour)},
	}

	called := false
	store := &fakeBookingStore{
		createBookingFunc: func(ctx context.Context, userID string, spotID int, start, end time.Time) (*db.Booking, error) {
			called = true
			return nil, nil
		},
	}
	svc := newTestBookingService(store)

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Book(context.Background(), "user-1", 1, tc.start, tc.end)
			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, apperrors.StatusOf(err))
			assert.False(t, called, "validation failures must not reach the store")
		})
	}
}

func TestBookSuccess(t *testing.T) {
	start := testNow.Add(1 * time.Hour)
	end := testNow.Add(3 * time.Hour)
	store := &fakeBookingStore{
		createBookingFunc: func(ctx context.Context, userID string, spotID int, s, e time.Time) (*db.Booking, error) {
			return &db.Booking{ID: 42, UserID: userID, ParkingSpotID: spotID, StartTime: s, EndTime: e, Status: db.BookingConfirmed}, nil
		},
	}
	svc := newTestBookingService(store)

	resp, err := svc.Book(context.Background(), "user-1", 7, start, end)
	require.NoError(t, err)
	assert.Equal(t, 42, resp.BookingID)
	assert.Equal(t, 7, resp.SpotID)
	assert.Equal(t, db.BookingConfirmed, resp.Status)
}

func TestBookBackToBackWindowsAllowed(t *testing.T) {
	// A booking ending exactly when another starts does not overlap, so the
	// store accepts it. The service must pass both windows through untouched.
	var gotStart, gotEnd time.Time
	store := &fakeBookingStore{
		createBookingFunc: func(ctx context.Context, userID string, spotID int, s, e time.Time) (*db.Booking, error) {
			gotStart, gotEnd = s, e
			return &db.Booking{ID: 2, ParkingSpotID: spotID, StartTime: s, EndTime: e, Status: db.BookingConfirmed}, nil
		},
	}
	svc := newTestBookingService(store)

	start := testNow.Add(2 * time.Hour)
	end := testNow.Add(4 * time.Hour)
	_, err := svc.Book(context.Background(), "user-2", 7, start, end)
	require.NoError(t, err)
	assert.True(t, gotStart.Equal(start))
	assert.True(t, gotEnd.Equal(end))
}

func TestBookCapacityFull(t *testing.T) {
	store := &fakeBookingStore{
		createBookingFunc: func(ctx context.Context, userID string, spotID int, s, e time.Time) (*db.Booking, error) {
			return nil, repository.ErrCapacityFull
		},
	}
	svc := newTestBookingService(store)

	_, err := svc.Book(context.Background(), "user-1", 7, testNow.Add(time.Hour), testNow.Add(2*time.Hour))
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperrors.StatusOf(err))
}

func TestBookSpotNotFound(t *testing.T) {
	store := &fakeBookingStore{
		createBookingFunc: func(ctx context.Context, userID string, spotID int, s, e time.Time) (*db.Booking, error) {
			return nil, repository.ErrNotFound
		},
	}
	svc := newTestBookingService(store)

	_, err := svc.Book(context.Background(), "user-1", 999, testNow.Add(time.Hour), testNow.Add(2*time.Hour))
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperrors.StatusOf(err))
}

func TestAddSpotValidation(t *testing.T) {
	svc := newTestBookingService(&fakeBookingStore{})

	_, err := svc.AddSpot("owner-1", "", "12 Road", 5, 50, db.Point{})
	assert.Equal(t, http.StatusBadRequest, apperrors.StatusOf(err))

	_, err = svc.AddSpot("owner-1", "Lot A", "12 Road", 0, 50, db.Point{})
	assert.Equal(t, http.StatusBadRequest, apperrors.StatusOf(err))
}

func TestAddSpotDefaultsAvailable(t *testing.T) {
	var created *db.ParkingSpot
	store := &fakeBookingStore{
		createSpotFunc: func(spot *db.ParkingSpot) error {
			created = spot
			return nil
		},
	}
	svc := newTestBookingService(store)

	_, err := svc.AddSpot("owner-1", "Lot A", "12 Road", 5, 50, db.Point{Lon: 90.4, Lat: 23.8})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.True(t, created.IsAvailable)
	assert.Equal(t, "owner-1", created.OwnerID.String)
}

func TestAllSpotsIncludesUnavailable(t *testing.T) {
	store := &fakeBookingStore{
		listAllFunc: func() ([]db.ParkingSpot, error) {
			return []db.ParkingSpot{
				{ID: 2, Name: "Lot B", IsAvailable: false, OwnerID: sql.NullString{String: "owner-2", Valid: true}},
				{ID: 1, Name: "Lot A", IsAvailable: true},
			}, nil
		},
	}
	svc := newTestBookingService(store)

	spots, err := svc.AllSpots()
	require.NoError(t, err)
	require.Len(t, spots, 2)
	assert.False(t, spots[0].IsAvailable)
	assert.Equal(t, "owner-2", spots[0].OwnerID)
	assert.Empty(t, spots[1].OwnerID)
}

func TestUpdateSpotValidation(t *testing.T) {
	storeCalled := false
	store := &fakeBookingStore{
		updateSpotFunc: func(id int, name, address string, totalSlots, pricePerHour int, isAvailable bool) error {
			storeCalled = true
			return nil
		},
	}
	svc := newTestBookingService(store)

	err := svc.UpdateSpot(1, "", "12 Road", 5, 50, true)
	assert.Equal(t, http.StatusBadRequest, apperrors.StatusOf(err))

	err = svc.UpdateSpot(1, "Lot A", "12 Road", 0, 50, true)
	assert.Equal(t, http.StatusBadRequest, apperrors.StatusOf(err))
	assert.False(t, storeCalled)
}

func TestUpdateSpotNotFound(t *testing.T) {
	store := &fakeBookingStore{
		updateSpotFunc: func(id int, name, address string, totalSlots, pricePerHour int, isAvailable bool) error {
			return repository.ErrNotFound
		},
	}
	svc := newTestBookingService(store)

	err := svc.UpdateSpot(999, "Lot A", "12 Road", 5, 50, true)
	assert.Equal(t, http.StatusNotFound, apperrors.StatusOf(err))
}

func TestDeleteSpotWithBookingsConflicts(t *testing.T) {
	store := &fakeBookingStore{
		deleteSpotFunc: func(id int) error { return repository.ErrSpotInUse },
	}
	svc := newTestBookingService(store)

	err := svc.DeleteSpot(1)
	assert.Equal(t, http.StatusConflict, apperrors.StatusOf(err))
}

func TestDeleteSpotNotFound(t *testing.T) {
	store := &fakeBookingStore{
		deleteSpotFunc: func(id int) error { return repository.ErrNotFound },
	}
	svc := newTestBookingService(store)

	err := svc.DeleteSpot(999)
	assert.Equal(t, http.StatusNotFound, apperrors.StatusOf(err))
}

func TestCancelBookingNotFound(t *testing.T) {
	store := &fakeBookingStore{
		cancelFunc: func(bookingID int, userID string) error { return repository.ErrNotFound },
	}
	svc := newTestBookingService(store)

	err := svc.Cancel(5, "user-1")
	assert.Equal(t, http.StatusNotFound, apperrors.StatusOf(err))
}
