package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"inkwell/internal/slug"
)

// defaultCategories are created on first boot so the editor has something
// to file posts under. Accented names also exercise the slug alphabet.
var defaultCategories = []string{
	"Diario de aprendizaje",
	"Pronunciación",
	"Gramática básica",
	"Cultura china",
	"Recursos y herramientas",
}

// Seed populates the database with initial data: a default admin user and
// the default categories. It is idempotent — existing rows are left alone.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("seed bcrypt: %w", err)
		}

		_, err = db.Exec(`
			INSERT INTO users (username, password_hash)
			VALUES ($1, $2)
		`, "admin", string(hash))
		if err != nil {
			return fmt.Errorf("seed insert admin: %w", err)
		}

		slog.Info("database seeded with default admin user", "username", "admin")
	}

	for _, name := range defaultCategories {
		_, err := db.Exec(`
			INSERT INTO categories (name, slug)
			VALUES ($1, $2)
			ON CONFLICT (name) DO NOTHING
		`, name, slug.Generate(name))
		if err != nil {
			return fmt.Errorf("seed category %q: %w", name, err)
		}
	}

	return nil
}
