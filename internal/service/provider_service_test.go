package service

import (
	"net/http"
	"testing"

	"github.com/SafwanAmin-BracU/dhaka-drive/internal/db"
	"github.com/SafwanAmin-BracU/dhaka-drive/internal/entities"
	apperrors "github.com/SafwanAmin-BracU/dhaka-drive/internal/errors"
	"github.com/SafwanAmin-BracU/dhaka-drive/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProviderStore struct {
	getProviderFunc func(id int) (*db.ServiceProvider, error)
	saveFunc        func(userID string, providerID int) (int, bool, error)
	unsaveFunc      func(userID string, providerID int) (bool, error)
	listFunc        func(providerType string) ([]entities.ProviderResponse, error)
}

func (f *fakeProviderStore) ListProviders(providerType string) ([]entities.ProviderResponse, error) {
	if f.listFunc != nil {
		return f.listFunc(providerType)
	}
	return nil, nil
}

func (f *fakeProviderStore) GetProvider(id int) (*db.ServiceProvider, error) {
	if f.getProviderFunc != nil {
		return f.getProviderFunc(id)
	}
	return &db.ServiceProvider{ID: id, Name: "Gulshan Towing"}, nil
}

func (f *fakeProviderStore) SaveProvider(userID string, providerID int) (int, bool, error) {
	if f.saveFunc != nil {
		return f.saveFunc(userID, providerID)
	}
	return 1, false, nil
}

func (f *fakeProviderStore) UnsaveProvider(userID string, providerID int) (bool, error) {
	if f.unsaveFunc != nil {
		return f.unsaveFunc(userID, providerID)
	}
	return true, nil
}

func (f *fakeProviderStore) GetSaveStatus(userID string, providerID int) (*entities.SaveStatus, error) {
	return &entities.SaveStatus{}, nil
}

func (f *fakeProviderStore) ListSavedByUser(userID string) ([]entities.SavedProviderItem, error) {
	return nil, nil
}

func TestSaveProvider(t *testing.T) {
	store := &fakeProviderStore{
		saveFunc: func(userID string, providerID int) (int, bool, error) {
			return 11, false, nil
		},
	}
	svc := NewProviderService(store)

	result, err := svc.Save("user-1", 3)
	require.NoError(t, err)
	assert.Equal(t, 11, result.SavedID)
	assert.False(t, result.AlreadyExisted)
}

func TestSaveProviderIdempotent(t *testing.T) {
	// A second save of the same provider reports the existing bookmark
	// instead of failing or duplicating.
	store := &fakeProviderStore{
		saveFunc: func(userID string, providerID int) (int, bool, error) {
			return 11, true, nil
		},
	}
	svc := NewProviderService(store)

	result, err := svc.Save("user-1", 3)
	require.NoError(t, err)
	assert.Equal(t, 11, result.SavedID)
	assert.True(t, result.AlreadyExisted)
}

func TestSaveUnknownProvider(t *testing.T) {
	saveCalled := false
	store := &fakeProviderStore{
		getProviderFunc: func(id int) (*db.ServiceProvider, error) {
			return nil, repository.ErrNotFound
		},
		saveFunc: func(userID string, providerID int) (int, bool, error) {
			saveCalled = true
			return 0, false, nil
		},
	}
	svc := NewProviderService(store)

	_, err := svc.Save("user-1", 999)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperrors.StatusOf(err))
	assert.False(t, saveCalled)
}

func TestUnsaveNeverSavedIsSuccess(t *testing.T) {
	store := &fakeProviderStore{
		unsaveFunc: func(userID string, providerID int) (bool, error) {
			return false, nil
		},
	}
	svc := NewProviderService(store)

	result, err := svc.Unsave("user-1", 3)
	require.NoError(t, err)
	assert.False(t, result.Removed)
}

func TestUnsaveRemovesBookmark(t *testing.T) {
	store := &fakeProviderStore{
		unsaveFunc: func(userID string, providerID int) (bool, error) {
			return true, nil
		},
	}
	svc := NewProviderService(store)

	result, err := svc.Unsave("user-1", 3)
	require.NoError(t, err)
	assert.True(t, result.Removed)
}

func TestEmergencyContactsFilterByType(t *testing.T) {
	var gotType string
	store := &fakeProviderStore{
		listFunc: func(providerType string) ([]entities.ProviderResponse, error) {
			gotType = providerType
			return nil, nil
		},
	}
	svc := NewProviderService(store)

	_, err := svc.EmergencyContacts()
	require.NoError(t, err)
	assert.Equal(t, db.ProviderEmergency, gotType)
}
