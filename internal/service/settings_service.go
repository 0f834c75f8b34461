package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/wamuzi-news/internal/models"
	"github.com/wamuzi-news/internal/repository"
	"github.com/wamuzi-news/internal/validation"
)

// settingsService is the concrete implementation of SettingsService.
// The record is read once and kept in memory; every change is written
// through to the repository in full.
type settingsService struct {
	repo      repository.SettingsRepository
	validator *validation.Validator
	log       zerolog.Logger

	mu      sync.RWMutex
	current *models.ThemeSettings
}

func newSettingsService(repo repository.SettingsRepository, validator *validation.Validator, log zerolog.Logger) *settingsService {
	return &settingsService{
		repo:      repo,
		validator: validator,
		log:       log.With().Str("service", "settings").Logger(),
	}
}

// Get returns the current settings
func (s *settingsService) Get(ctx context.Context) (models.ThemeSettings, error) {
	s.mu.RLock()
	if s.current != nil {
		out := s.current.Clone()
		s.mu.RUnlock()
		return out, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		loaded, err := s.load(ctx)
		if err != nil {
			return models.ThemeSettings{}, err
		}
		s.current = &loaded
	}
	return s.current.Clone(), nil
}

// load reads the stored record and backfills any field it lacks from the
// defaults. Unreadable records fall back to the defaults.
func (s *settingsService) load(ctx context.Context) (models.ThemeSettings, error) {
	defaults := models.DefaultThemeSettings()

	data, err := s.repo.Load(ctx)
	if err != nil {
		return models.ThemeSettings{}, fmt.Errorf("load settings: %w", err)
	}
	if len(data) == 0 {
		return defaults, nil
	}

	var stored models.ThemeSettingsPatch
	if err := json.Unmarshal(data, &stored); err != nil {
		s.log.Error().Err(err).Msg("Stored settings are unreadable, using defaults")
		return defaults, nil
	}
	return defaults.Apply(stored), nil
}

// Update merges patch into the current settings and persists the result
func (s *settingsService) Update(ctx context.Context, patch models.ThemeSettingsPatch) (models.ThemeSettings, error) {
	if errs := s.validator.ValidateSettings(&patch); len(errs) > 0 {
		return models.ThemeSettings{}, errs
	}

	current, err := s.Get(ctx)
	if err != nil {
		return models.ThemeSettings{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// re-read under the write lock so concurrent updates do not drop each other
	if s.current != nil {
		current = s.current.Clone()
	}
	updated := current.Apply(patch)

	data, err := json.Marshal(updated)
	if err != nil {
		return models.ThemeSettings{}, fmt.Errorf("encode settings: %w", err)
	}
	if err := s.repo.Save(ctx, data); err != nil {
		return models.ThemeSettings{}, fmt.Errorf("save settings: %w", err)
	}

	s.current = &updated
	s.log.Info().Msg("Theme settings updated")
	return updated.Clone(), nil
}

// Reset discards all customisation
func (s *settingsService) Reset(ctx context.Context) (models.ThemeSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Reset(ctx); err != nil {
		return models.ThemeSettings{}, fmt.Errorf("reset settings: %w", err)
	}

	defaults := models.DefaultThemeSettings()
	s.current = &defaults
	s.log.Info().Msg("Theme settings reset to defaults")
	return defaults.Clone(), nil
}
