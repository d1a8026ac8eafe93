// Package store provides database access methods for all inkwell
// entities. Each store struct wraps a *sql.DB and exposes typed query
// methods; conflicting writes rely on the database's per-row atomicity.
package store

import (
	"database/sql"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"inkwell/internal/models"
)

// UserStore handles the users relation consulted by the session
// authority's credential check.
type UserStore struct {
	db *sql.DB
}

// NewUserStore creates a new UserStore with the given database connection.
func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

// FindByUsername retrieves a user by username. Returns nil if not found.
func (s *UserStore) FindByUsername(username string) (*models.User, error) {
	u := &models.User{}
	err := s.db.QueryRow(`
		SELECT id, username, password_hash, created_at
		FROM users WHERE username = $1
	`, username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by username: %w", err)
	}
	return u, nil
}

// Create inserts a new user with a bcrypt-hashed password.
func (s *UserStore) Create(username, password string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &models.User{}
	err = s.db.QueryRow(`
		INSERT INTO users (username, password_hash)
		VALUES ($1, $2)
		RETURNING id, username, password_hash, created_at
	`, username, string(hash)).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if isUniqueViolation(err) {
		return nil, fmt.Errorf("create user %q: %w", username, ErrConflict)
	}
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// Check verifies a username/credential pair against the stored bcrypt
// hash. It satisfies the session authority's CredentialChecker contract;
// an unknown username is a plain false, not an error.
func (s *UserStore) Check(username, credential string) (bool, error) {
	u, err := s.FindByUsername(username)
	if err != nil {
		return false, err
	}
	if u == nil {
		return false, nil
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(credential)) == nil, nil
}
