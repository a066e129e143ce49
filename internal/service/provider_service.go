package service

import (
	"errors"
	"log"

	"github.com/SafwanAmin-BracU/dhaka-drive/internal/db"
	"github.com/SafwanAmin-BracU/dhaka-drive/internal/entities"
	apperrors "github.com/SafwanAmin-BracU/dhaka-drive/internal/errors"
	"github.com/SafwanAmin-BracU/dhaka-drive/internal/repository"
)

// ProviderStore is the persistence surface for the provider directory and
// the saved-provider bookmarks.
type ProviderStore interface {
	ListProviders(providerType string) ([]entities.ProviderResponse, error)
	GetProvider(id int) (*db.ServiceProvider, error)
	SaveProvider(userID string, providerID int) (int, bool, error)
	UnsaveProvider(userID string, providerID int) (bool, error)
	GetSaveStatus(userID string, providerID int) (*entities.SaveStatus, error)
	ListSavedByUser(userID string) ([]entities.SavedProviderItem, error)
}

type ProviderService struct {
	store ProviderStore
}

func NewProviderService(store ProviderStore) *ProviderService {
	return &ProviderService{store: store}
}

func (s *ProviderService) List(providerType string) ([]entities.ProviderResponse, error) {
	return s.store.ListProviders(providerType)
}

// EmergencyContacts lists emergency providers, highest rated first.
func (s *ProviderService) EmergencyContacts() ([]entities.ProviderResponse, error) {
	return s.store.ListProviders(db.ProviderEmergency)
}

// Save bookmarks a provider for the user. Saving an already-saved provider
// is a no-op that reports the existing bookmark.
func (s *ProviderService) Save(userID string, providerID int) (*entities.SaveResult, error) {
	if _, err := s.store.GetProvider(providerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrNotFound("provider not found")
		}
		return nil, err
	}
	savedID, existed, err := s.store.SaveProvider(userID, providerID)
	if err != nil {
		log.Printf("Error saving provider %d for user %s: %v", providerID, userID, err)
		return nil, err
	}
	return &entities.SaveResult{SavedID: savedID, AlreadyExisted: existed}, nil
}

// Unsave removes a bookmark. Removing one that never existed reports
// Removed=false and is still a success.
func (s *ProviderService) Unsave(userID string, providerID int) (*entities.SaveResult, error) {
	removed, err := s.store.UnsaveProvider(userID, providerID)
	if err != nil {
		log.Printf("Error removing bookmark for provider %d: %v", providerID, err)
		return nil, err
	}
	return &entities.SaveResult{Removed: removed}, nil
}

func (s *ProviderService) CheckStatus(userID string, providerID int) (*entities.SaveStatus, error) {
	return s.store.GetSaveStatus(userID, providerID)
}

func (s *ProviderService) ListSaved(userID string) ([]entities.SavedProviderItem, error) {
	return s.store.ListSavedByUser(userID)
}
