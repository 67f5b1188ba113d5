package io

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskbridge/taskstore/internal/model"
)

func TestSettingsYAMLRepository_GetStoreSettings(t *testing.T) {
	tests := map[string]struct {
		fs          fstest.MapFS
		path        string
		expSettings model.StoreSettings
		expErr      bool
		errMsg      string
	}{
		"Valid settings should load successfully": {
			fs: fstest.MapFS{
				"store.yaml": &fstest.MapFile{
					Data: []byte(`kind: memory
default_user_id: tenant-42
`),
				},
			},
			path: "store.yaml",
			expSettings: model.StoreSettings{
				Kind:          "memory",
				DefaultUserID: "tenant-42",
			},
		},
		"Settings without a kind should load with an empty kind": {
			fs: fstest.MapFS{
				"store.yaml": &fstest.MapFile{
					Data: []byte(`default_user_id: tenant-42
`),
				},
			},
			path: "store.yaml",
			expSettings: model.StoreSettings{
				DefaultUserID: "tenant-42",
			},
		},
		"Empty settings should load successfully": {
			fs: fstest.MapFS{
				"empty.yaml": &fstest.MapFile{
					Data: []byte(`---
`),
				},
			},
			path:        "empty.yaml",
			expSettings: model.StoreSettings{},
		},
		"A kind with surrounding whitespace should be trimmed": {
			fs: fstest.MapFS{
				"store.yaml": &fstest.MapFile{
					Data: []byte("kind: \" memory \"\n"),
				},
			},
			path: "store.yaml",
			expSettings: model.StoreSettings{
				Kind: "memory",
			},
		},
		"Missing file should return error": {
			fs:     fstest.MapFS{},
			path:   "nonexistent.yaml",
			expErr: true,
			errMsg: "reading settings file",
		},
		"Invalid YAML should return error": {
			fs: fstest.MapFS{
				"invalid.yaml": &fstest.MapFile{
					Data: []byte(`kind: [broken`),
				},
			},
			path:   "invalid.yaml",
			expErr: true,
			errMsg: "parsing YAML",
		},
		"Blank kind should return error": {
			fs: fstest.MapFS{
				"store.yaml": &fstest.MapFile{
					Data: []byte("kind: \"   \"\n"),
				},
			},
			path:   "store.yaml",
			expErr: true,
			errMsg: "invalid settings",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			repo := NewSettingsYAMLRepository(test.fs)
			settings, err := repo.GetStoreSettings(context.Background(), test.path)

			if test.expErr {
				require.Error(t, err)
				if test.errMsg != "" {
					assert.Contains(t, err.Error(), test.errMsg)
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, test.expSettings, settings)
		})
	}
}
