package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/SafwanAmin-BracU/dhaka-drive/internal/auth"
	"github.com/SafwanAmin-BracU/dhaka-drive/internal/db"
	"github.com/SafwanAmin-BracU/dhaka-drive/internal/entities"
	"github.com/SafwanAmin-BracU/dhaka-drive/internal/repository"
	"github.com/SafwanAmin-BracU/dhaka-drive/internal/service"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProviderStore struct {
	providerExists bool
	saveID         int
	saveExisted    bool
	saveErr        error
	unsaveRemoved  bool
}

func (s *stubProviderStore) ListProviders(providerType string) ([]entities.ProviderResponse, error) {
	return nil, nil
}

func (s *stubProviderStore) GetProvider(id int) (*db.ServiceProvider, error) {
	if !s.providerExists {
		return nil, repository.ErrNotFound
	}
	return &db.ServiceProvider{ID: id}, nil
}

func (s *stubProviderStore) SaveProvider(userID string, providerID int) (int, bool, error) {
	if s.saveErr != nil {
		return 0, false, s.saveErr
	}
	return s.saveID, s.saveExisted, nil
}

func (s *stubProviderStore) UnsaveProvider(userID string, providerID int) (bool, error) {
	return s.unsaveRemoved, nil
}

func (s *stubProviderStore) GetSaveStatus(userID string, providerID int) (*entities.SaveStatus, error) {
	return &entities.SaveStatus{}, nil
}

func (s *stubProviderStore) ListSavedByUser(userID string) ([]entities.SavedProviderItem, error) {
	return nil, nil
}

func newSaveToggleHandler(store *stubProviderStore) *ServicesHandler {
	return &ServicesHandler{Providers: service.NewProviderService(store)}
}

func doSaveToggle(h *ServicesHandler, body string, claims *auth.Claims) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/services/save", strings.NewReader(body))
	if claims != nil {
		req = req.WithContext(auth.NewContext(req.Context(), claims))
	}
	rr := httptest.NewRecorder()
	h.SaveToggle(rr, req)
	return rr
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&env))
	return env
}

func TestSaveToggleRequiresSession(t *testing.T) {
	h := newSaveToggleHandler(&stubProviderStore{providerExists: true})

	rr := doSaveToggle(h, `{"providerId":3,"action":"save"}`, nil)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	env := decodeEnvelope(t, rr)
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, CodeUnauthorized, env.Error.Code)
}

func TestSaveToggleInvalidInput(t *testing.T) {
	h := newSaveToggleHandler(&stubProviderStore{providerExists: true})
	claims := &auth.Claims{UserID: "user-1"}

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"providerId":`},
		{"missing provider", `{"action":"save"}`},
		{"unknown action", `{"providerId":3,"action":"toggle"}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := doSaveToggle(h, tc.body, claims)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			env := decodeEnvelope(t, rr)
			assert.False(t, env.Success)
			require.NotNil(t, env.Error)
			assert.Equal(t, CodeInvalidInput, env.Error.Code)
		})
	}
}

func TestSaveStatusRequiresSession(t *testing.T) {
	h := newSaveToggleHandler(&stubProviderStore{providerExists: true})

	req := httptest.NewRequest(http.MethodGet, "/api/services/save/3", nil)
	req = mux.SetURLVars(req, map[string]string{"providerId": "3"})
	rr := httptest.NewRecorder()
	h.SaveStatus(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	env := decodeEnvelope(t, rr)
	require.NotNil(t, env.Error)
	assert.Equal(t, CodeUnauthorized, env.Error.Code)
}

func TestListSavedRequiresSession(t *testing.T) {
	h := newSaveToggleHandler(&stubProviderStore{providerExists: true})

	req := httptest.NewRequest(http.MethodGet, "/api/services/saved", nil)
	rr := httptest.NewRecorder()
	h.ListSaved(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	env := decodeEnvelope(t, rr)
	require.NotNil(t, env.Error)
	assert.Equal(t, CodeUnauthorized, env.Error.Code)
}

func TestSaveToggleUnknownProvider(t *testing.T) {
	h := newSaveToggleHandler(&stubProviderStore{providerExists: false})

	rr := doSaveToggle(h, `{"providerId":999,"action":"save"}`, &auth.Claims{UserID: "user-1"})

	assert.Equal(t, http.StatusNotFound, rr.Code)
	env := decodeEnvelope(t, rr)
	require.NotNil(t, env.Error)
	assert.Equal(t, CodeNotFound, env.Error.Code)
}

func TestSaveToggleSave(t *testing.T) {
	h := newSaveToggleHandler(&stubProviderStore{providerExists: true, saveID: 11})

	rr := doSaveToggle(h, `{"providerId":3,"action":"save"}`, &auth.Claims{UserID: "user-1"})

	assert.Equal(t, http.StatusOK, rr.Code)
	env := decodeEnvelope(t, rr)
	assert.True(t, env.Success)
	assert.Nil(t, env.Error)
}

func TestSaveToggleUnsaveNeverSaved(t *testing.T) {
	h := newSaveToggleHandler(&stubProviderStore{providerExists: true, unsaveRemoved: false})

	rr := doSaveToggle(h, `{"providerId":3,"action":"unsave"}`, &auth.Claims{UserID: "user-1"})

	assert.Equal(t, http.StatusOK, rr.Code)
	env := decodeEnvelope(t, rr)
	assert.True(t, env.Success)
}

func TestSaveToggleStoreFailure(t *testing.T) {
	h := newSaveToggleHandler(&stubProviderStore{providerExists: true, saveErr: errors.New("connection reset")})

	rr := doSaveToggle(h, `{"providerId":3,"action":"save"}`, &auth.Claims{UserID: "user-1"})

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	env := decodeEnvelope(t, rr)
	require.NotNil(t, env.Error)
	assert.Equal(t, CodeServerError, env.Error.Code)
	assert.NotContains(t, env.Error.Message, "connection reset")
}
