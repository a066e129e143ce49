package service

import (
	"errors"
	"log"

	"github.com/SafwanAmin-BracU/dhaka-drive/internal/auth"
	"github.com/SafwanAmin-BracU/dhaka-drive/internal/db"
	apperrors "github.com/SafwanAmin-BracU/dhaka-drive/internal/errors"
	"github.com/SafwanAmin-BracU/dhaka-drive/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type UserStore interface {
	CreateUser(user *db.User) error
	GetByEmail(email string) (*db.User, error)
	GetByID(id string) (*db.User, error)
}

type AuthService struct {
	store UserStore
}

func NewAuthService(store UserStore) *AuthService {
	return &AuthService{store: store}
}

// Signup registers a new user and returns a session token.
func (s *AuthService) Signup(name, email, password string) (string, error) {
	if name == "" || email == "" || password == "" {
		return "", apperrors.ErrValidation("name, email and password are required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	user := &db.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.store.CreateUser(user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return "", apperrors.ErrConflict("email already registered")
		}
		log.Printf("Error creating user: %v", err)
		return "", err
	}
	return auth.NewToken(user.ID, user.Email, user.IsAdmin)
}

// Login verifies the credentials and returns a session token.
func (s *AuthService) Login(email, password string) (string, error) {
	user, err := s.store.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", apperrors.ErrUnauthorized("invalid credentials")
		}
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", apperrors.ErrUnauthorized("invalid credentials")
	}
	return auth.NewToken(user.ID, user.Email, user.IsAdmin)
}
