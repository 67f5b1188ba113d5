package io

import (
	"context"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/taskbridge/taskstore/internal/model"
)

// SettingsYAMLRepository loads store settings from YAML files.
type SettingsYAMLRepository struct {
	fs fs.FS
}

// NewSettingsYAMLRepository creates a new YAML settings repository.
func NewSettingsYAMLRepository(filesystem fs.FS) *SettingsYAMLRepository {
	return &SettingsYAMLRepository{fs: filesystem}
}

// GetStoreSettings loads store settings from a YAML file.
func (r *SettingsYAMLRepository) GetStoreSettings(ctx context.Context, path string) (model.StoreSettings, error) {
	data, err := fs.ReadFile(r.fs, path)
	if err != nil {
		return model.StoreSettings{}, fmt.Errorf("reading settings file: %w", err)
	}

	if ctx.Err() != nil {
		return model.StoreSettings{}, ctx.Err()
	}

	var settings StoreSettings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return model.StoreSettings{}, fmt.Errorf("parsing YAML: %w", err)
	}

	if err := settings.validate(); err != nil {
		return model.StoreSettings{}, fmt.Errorf("invalid settings: %w", err)
	}

	return settings.toModel(), nil
}

// StoreSettings represents the YAML structure for store settings.
type StoreSettings struct {
	Kind          string `yaml:"kind"`
	DefaultUserID string `yaml:"default_user_id"`
}

func (s StoreSettings) validate() error {
	// Kind may be empty (the selector falls back to the default kind), but a
	// whitespace-only value is a broken file, not a default request.
	if s.Kind != "" && strings.TrimSpace(s.Kind) == "" {
		return fmt.Errorf("kind must not be blank")
	}
	return nil
}

func (s StoreSettings) toModel() model.StoreSettings {
	return model.StoreSettings{
		Kind:          strings.TrimSpace(s.Kind),
		DefaultUserID: s.DefaultUserID,
	}
}
