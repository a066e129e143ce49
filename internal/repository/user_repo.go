package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/SafwanAmin-BracU/dhaka-drive/internal/db"
	"github.com/lib/pq"
)

type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(database *sql.DB) *UserRepository {
	return &UserRepository{DB: database}
}

func (r *UserRepository) CreateUser(user *db.User) error {
	query := `
		INSERT INTO users (id, name, email, password_hash, email_verified, is_admin)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`
	err := r.DB.QueryRow(query,
		user.ID, user.Name, user.Email, user.PasswordHash, user.EmailVerified, user.IsAdmin,
	).Scan(&user.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return ErrEmailTaken
		}
		return fmt.Errorf("error inserting user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByEmail(email string) (*db.User, error) {
	var u db.User
	query := `
		SELECT id, name, email, password_hash, email_verified, is_admin, created_at
		FROM users WHERE email = $1`
	err := r.DB.QueryRow(query, email).Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.EmailVerified, &u.IsAdmin, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error querying user by email: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) GetByID(id string) (*db.User, error) {
	var u db.User
	query := `
		SELECT id, name, email, password_hash, email_verified, is_admin, created_at
		FROM users WHERE id = $1`
	err := r.DB.QueryRow(query, id).Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.EmailVerified, &u.IsAdmin, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error querying user by id: %w", err)
	}
	return &u, nil
}
