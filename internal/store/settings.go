package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"go.uber.org/zap"

	"github.com/abhisek/edupath/internal/settings"
)

// SettingsKey is the row that holds the serialized preferences.
const SettingsKey = "edupath_settings"

// SettingsRepo persists settings.Settings as a JSON document in the
// settings table.
type SettingsRepo struct {
	db     *sql.DB
	logger *zap.Logger
}

var _ settings.Repo = (*SettingsRepo)(nil)

// Load returns the saved settings merged over the defaults. A missing,
// unreadable or invalid document yields the defaults.
func (r *SettingsRepo) Load(ctx context.Context) (settings.Settings, error) {
	b := builder()
	query, args := b.Select("value").
		From(b.Table(SettingsTable.Name)).
		Where(entsql.EQ("key", SettingsKey)).
		Query()

	var raw string
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return settings.Defaults(), nil
	}
	if err != nil {
		return settings.Settings{}, fmt.Errorf("load settings: %w", err)
	}

	s := settings.Defaults()
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		r.logger.Warn("discarding unreadable settings", zap.Error(err))
		return settings.Defaults(), nil
	}
	if err := s.Validate(); err != nil {
		r.logger.Warn("discarding invalid settings", zap.Error(err))
		return settings.Defaults(), nil
	}
	return s, nil
}

// Save validates and writes s, replacing any previous document.
func (r *SettingsRepo) Save(ctx context.Context, s settings.Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	query, args := builder().Insert(SettingsTable.Name).
		Columns("key", "value", "updated_at").
		Values(SettingsKey, string(data), time.Now().UTC()).
		OnConflict(
			entsql.ConflictColumns("key"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// Reset deletes the saved document so Load returns the defaults.
func (r *SettingsRepo) Reset(ctx context.Context) error {
	query, args := builder().Delete(SettingsTable.Name).
		Where(entsql.EQ("key", SettingsKey)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("reset settings: %w", err)
	}
	return nil
}
