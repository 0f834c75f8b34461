package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/wamuzi-news/internal/database"
)

// themeKey identifies the single theme settings row
const themeKey = "theme"

// settingsRepo is the concrete implementation of SettingsRepository
type settingsRepo struct {
	db *database.DB
}

// NewSettingsRepo creates a new settings repository
func NewSettingsRepo(db *database.DB) SettingsRepository {
	return &settingsRepo{db: db}
}

// Load returns the stored settings JSON, or nil when nothing was saved
func (r *settingsRepo) Load(ctx context.Context) ([]byte, error) {
	var data []byte
	err := r.db.QueryRowContext(ctx, "SELECT data FROM theme_settings WHERE key = $1", themeKey).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return data, err
}

// Save replaces the stored settings record
func (r *settingsRepo) Save(ctx context.Context, data []byte) error {
	query := `
		INSERT INTO theme_settings (key, data, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET
			data = EXCLUDED.data,
			updated_at = EXCLUDED.updated_at
	`
	_, err := r.db.ExecContext(ctx, query, themeKey, data)
	return err
}

// Reset deletes the stored record so the defaults apply again
func (r *settingsRepo) Reset(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM theme_settings WHERE key = $1", themeKey)
	return err
}
