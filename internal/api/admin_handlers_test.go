package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SafwanAmin-BracU/dhaka-drive/internal/auth"
	"github.com/SafwanAmin-BracU/dhaka-drive/internal/db"
	"github.com/SafwanAmin-BracU/dhaka-drive/internal/entities"
	"github.com/SafwanAmin-BracU/dhaka-drive/internal/repository"
	"github.com/SafwanAmin-BracU/dhaka-drive/internal/service"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRequestStore struct {
	approveCalled bool
}

func (s *stubRequestStore) Create(req *db.ServiceRequest) error { return nil }

func (s *stubRequestStore) ListPending(q entities.PendingQuery) ([]entities.ServiceRequestListItem, error) {
	return nil, nil
}

func (s *stubRequestStore) CountPending() (int, error) { return 0, nil }

func (s *stubRequestStore) GetDetail(id int) (*entities.ServiceRequestDetail, error) {
	return &entities.ServiceRequestDetail{ID: id, UserEmail: "user@example.com", UserName: "Rahim"}, nil
}

func (s *stubRequestStore) Approve(requestID int, adminID string) (time.Time, error) {
	s.approveCalled = true
	return time.Now(), nil
}

func (s *stubRequestStore) Reject(requestID int, reason, adminID string) (time.Time, error) {
	return time.Now(), nil
}

func (s *stubRequestStore) UpdateNotes(requestID int, notes string) error { return nil }

func (s *stubRequestStore) ListByUser(userID string) ([]entities.RequestHistoryItem, error) {
	return nil, nil
}

type okNotifier struct{}

func (okNotifier) NotifyRequestApproved(email, name string, requestID int) bool { return true }

func (okNotifier) NotifyRequestRejected(email, name string, requestID int, reason string) bool {
	return true
}

func (okNotifier) NotifyProviderAssigned(contact, providerName string, requestID int) bool {
	return true
}

type stubBookingStore struct {
	updateErr error
	deleteErr error
}

func (s *stubBookingStore) ListSpots(availableOnly bool) ([]entities.ParkingSpotResponse, error) {
	return nil, nil
}

func (s *stubBookingStore) GetSpot(id int) (*db.ParkingSpot, error) { return nil, nil }

func (s *stubBookingStore) CreateSpot(spot *db.ParkingSpot) error { return nil }

func (s *stubBookingStore) ListAllSpots() ([]db.ParkingSpot, error) {
	return []db.ParkingSpot{{ID: 1, Name: "Lot A"}}, nil
}

func (s *stubBookingStore) UpdateSpot(id int, name, address string, totalSlots, pricePerHour int, isAvailable bool) error {
	return s.updateErr
}

func (s *stubBookingStore) DeleteSpot(id int) error { return s.deleteErr }

func (s *stubBookingStore) CreateBooking(ctx context.Context, userID string, spotID int, start, end time.Time) (*db.Booking, error) {
	return nil, nil
}

func (s *stubBookingStore) ListBookingsByUser(userID string) ([]entities.BookingHistoryItem, error) {
	return nil, nil
}

func (s *stubBookingStore) CancelBooking(bookingID int, userID string) error { return nil }

func newAdminTestHandler(requests *stubRequestStore, bookings *stubBookingStore) *AdminHandler {
	if requests == nil {
		requests = &stubRequestStore{}
	}
	if bookings == nil {
		bookings = &stubBookingStore{}
	}
	return &AdminHandler{
		Requests: service.NewRequestService(requests, okNotifier{}),
		Parking:  service.NewBookingService(bookings),
	}
}

func adminClaimsContext(ctx context.Context) context.Context {
	return auth.NewContext(ctx, &auth.Claims{UserID: "admin-1", IsAdmin: true})
}

func adminRequest(method, target, body string, vars map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req = req.WithContext(adminClaimsContext(req.Context()))
	if vars != nil {
		req = mux.SetURLVars(req, vars)
	}
	return req
}

func TestApproveRequestMalformedBody(t *testing.T) {
	store := &stubRequestStore{}
	h := newAdminTestHandler(store, nil)

	req := adminRequest(http.MethodPost, "/admin/requests/5/approve", `{"notes":`, map[string]string{"id": "5"})
	rr := httptest.NewRecorder()
	h.ApproveRequest(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.False(t, store.approveCalled, "a malformed body must not approve")
}

func TestApproveRequestEmptyBodyAllowed(t *testing.T) {
	store := &stubRequestStore{}
	h := newAdminTestHandler(store, nil)

	req := adminRequest(http.MethodPost, "/admin/requests/5/approve", "", map[string]string{"id": "5"})
	rr := httptest.NewRecorder()
	h.ApproveRequest(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, store.approveCalled)
}

func TestListParkingSpots(t *testing.T) {
	h := newAdminTestHandler(nil, &stubBookingStore{})

	req := adminRequest(http.MethodGet, "/admin/parking", "", nil)
	rr := httptest.NewRecorder()
	h.ListParkingSpots(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Lot A")
}

func TestUpdateParkingSpotRejectsMissingFields(t *testing.T) {
	h := newAdminTestHandler(nil, &stubBookingStore{})

	req := adminRequest(http.MethodPut, "/admin/parking/1",
		`{"address":"12 Road","total_slots":5}`, map[string]string{"id": "1"})
	rr := httptest.NewRecorder()
	h.UpdateParkingSpot(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUpdateParkingSpot(t *testing.T) {
	h := newAdminTestHandler(nil, &stubBookingStore{})

	req := adminRequest(http.MethodPut, "/admin/parking/1",
		`{"name":"Lot A","address":"12 Road","total_slots":5,"price_per_hour":50,"is_available":false}`,
		map[string]string{"id": "1"})
	rr := httptest.NewRecorder()
	h.UpdateParkingSpot(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestDeleteParkingSpotWithBookings(t *testing.T) {
	h := newAdminTestHandler(nil, &stubBookingStore{deleteErr: repository.ErrSpotInUse})

	req := adminRequest(http.MethodDelete, "/admin/parking/1", "", map[string]string{"id": "1"})
	rr := httptest.NewRecorder()
	h.DeleteParkingSpot(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestCreateNewsValidation(t *testing.T) {
	h := &AdminHandler{Traffic: service.NewTrafficService(newsOnlyStore{})}

	req := adminRequest(http.MethodPost, "/admin/news", `{"title":"Road closure"}`, nil)
	rr := httptest.NewRecorder()
	h.CreateNews(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCreateNews(t *testing.T) {
	h := &AdminHandler{Traffic: service.NewTrafficService(newsOnlyStore{})}

	req := adminRequest(http.MethodPost, "/admin/news",
		`{"title":"Road closure","content":"Flyover closed this weekend"}`, nil)
	rr := httptest.NewRecorder()
	h.CreateNews(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Contains(t, rr.Body.String(), "news_id")
}

// newsOnlyStore satisfies TrafficStore for the news endpoints.
type newsOnlyStore struct{}

func (newsOnlyStore) CreateReport(report *db.TrafficReport) error { return nil }

func (newsOnlyStore) ListReports(verifiedOnly bool) ([]entities.TrafficReportResponse, error) {
	return nil, nil
}

func (newsOnlyStore) VerifyReport(id int) error { return nil }

func (newsOnlyStore) DeleteReport(id int) error { return nil }

func (newsOnlyStore) StatusCounts() ([]entities.StatusCount, error) { return nil, nil }

func (newsOnlyStore) RecentHeavyAlerts(limit int) ([]entities.TrafficAlert, error) {
	return nil, nil
}

func (newsOnlyStore) WeeklyActivity() ([]entities.ActivityBucket, error) { return nil, nil }

func (newsOnlyStore) CreateNews(news *db.TrafficNews) error {
	news.ID = 1
	news.PublishedAt = time.Now()
	return nil
}

func (newsOnlyStore) ListNews() ([]entities.TrafficNewsItem, error) { return nil, nil }
