package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/SafwanAmin-BracU/dhaka-drive/internal/db"
	"github.com/SafwanAmin-BracU/dhaka-drive/internal/entities"
)

type ProviderRepository struct {
	DB *sql.DB
}

func NewProviderRepository(database *sql.DB) *ProviderRepository {
	return &ProviderRepository{DB: database}
}

func (r *ProviderRepository) ListProviders(providerType string) ([]entities.ProviderResponse, error) {
	query := `
		SELECT id, name, type, contact_info, COALESCE(address, ''), COALESCE(rating, 0),
		       ST_X(location::geometry), ST_Y(location::geometry)
		FROM service_providers`
	args := []interface{}{}
	if providerType != "" {
		query += ` WHERE type = $1`
		args = append(args, providerType)
	}
	query += ` ORDER BY rating DESC, name`

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying providers: %w", err)
	}
	defer rows.Close()

	var providers []entities.ProviderResponse
	for rows.Next() {
		var p entities.ProviderResponse
		if err := rows.Scan(&p.ID, &p.Name, &p.Type, &p.ContactInfo, &p.Address,
			&p.Rating, &p.Location.Lon, &p.Location.Lat); err != nil {
			return nil, fmt.Errorf("error scanning provider: %w", err)
		}
		providers = append(providers, p)
	}
	return providers, rows.Err()
}

func (r *ProviderRepository) GetProvider(id int) (*db.ServiceProvider, error) {
	var p db.ServiceProvider
	query := `
		SELECT id, name, type, contact_info, COALESCE(address, ''), COALESCE(rating, 0),
		       ST_X(location::geometry), ST_Y(location::geometry)
		FROM service_providers WHERE id = $1`
	err := r.DB.QueryRow(query, id).Scan(
		&p.ID, &p.Name, &p.Type, &p.ContactInfo, &p.Address, &p.Rating,
		&p.Location.Lon, &p.Location.Lat,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error querying provider %d: %w", id, err)
	}
	return &p, nil
}

// SaveProvider inserts a bookmark idempotently. When the pair already exists
// the insert is a no-op and the existing bookmark is returned instead.
func (r *ProviderRepository) SaveProvider(userID string, providerID int) (int, bool, error) {
	var savedID int
	err := r.DB.QueryRow(`
		INSERT INTO saved_providers (user_id, provider_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, provider_id) DO NOTHING
		RETURNING id`,
		userID, providerID,
	).Scan(&savedID)
	if err == nil {
		return savedID, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, false, fmt.Errorf("error saving provider %d: %w", providerID, err)
	}

	// Conflict path: the bookmark already existed.
	err = r.DB.QueryRow(
		`SELECT id FROM saved_providers WHERE user_id = $1 AND provider_id = $2`,
		userID, providerID,
	).Scan(&savedID)
	if err != nil {
		return 0, false, fmt.Errorf("error loading existing bookmark: %w", err)
	}
	return savedID, true, nil
}

// UnsaveProvider deletes a bookmark idempotently; removing a pair that was
// never saved reports removed=false, not an error.
func (r *ProviderRepository) UnsaveProvider(userID string, providerID int) (bool, error) {
	result, err := r.DB.Exec(
		`DELETE FROM saved_providers WHERE user_id = $1 AND provider_id = $2`,
		userID, providerID,
	)
	if err != nil {
		return false, fmt.Errorf("error removing bookmark: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error reading unsave result: %w", err)
	}
	return affected > 0, nil
}

func (r *ProviderRepository) GetSaveStatus(userID string, providerID int) (*entities.SaveStatus, error) {
	var savedID int
	err := r.DB.QueryRow(
		`SELECT id FROM saved_providers WHERE user_id = $1 AND provider_id = $2`,
		userID, providerID,
	).Scan(&savedID)
	if errors.Is(err, sql.ErrNoRows) {
		return &entities.SaveStatus{IsSaved: false}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error checking save status: %w", err)
	}
	return &entities.SaveStatus{IsSaved: true, SavedID: savedID}, nil
}

func (r *ProviderRepository) ListSavedByUser(userID string) ([]entities.SavedProviderItem, error) {
	query := `
		SELECT s.id, s.created_at,
		       p.id, p.name, p.type, p.contact_info, COALESCE(p.address, ''), COALESCE(p.rating, 0),
		       ST_X(p.location::geometry), ST_Y(p.location::geometry)
		FROM saved_providers s
		JOIN service_providers p ON s.provider_id = p.id
		WHERE s.user_id = $1
		ORDER BY s.created_at DESC`
	rows, err := r.DB.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying saved providers: %w", err)
	}
	defer rows.Close()

	var items []entities.SavedProviderItem
	for rows.Next() {
		var item entities.SavedProviderItem
		if err := rows.Scan(&item.SavedID, &item.SavedAt,
			&item.Provider.ID, &item.Provider.Name, &item.Provider.Type,
			&item.Provider.ContactInfo, &item.Provider.Address, &item.Provider.Rating,
			&item.Provider.Location.Lon, &item.Provider.Location.Lat); err != nil {
			return nil, fmt.Errorf("error scanning saved provider: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
