// Copyright © 2025 Texelnav contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/config.go
// Summary: Configuration store for texelnav.

// Package config loads and persists texelnav settings as a single JSON
// file under the user config directory. Values live in named sections
// and are read through typed accessors with fallbacks, so callers never
// handle missing keys or JSON number quirks directly.
package config

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"
)

const configName = "texelnav.json"

// Config stores configuration sections as JSON-compatible data.
type Config map[string]interface{}

// Section stores key/value pairs for a configuration section.
type Section map[string]interface{}

var (
	mu       sync.RWMutex
	once     sync.Once
	store    Config
	loadErr  error
	override string
)

// UseFile points the store at an explicit config file instead of the
// default location. Call it before the first access; once the store is
// loaded the override has no effect until Reload.
func UseFile(path string) {
	mu.Lock()
	defer mu.Unlock()
	override = path
}

// Err returns the most recent config load error.
func Err() error {
	once.Do(initStore)
	mu.RLock()
	defer mu.RUnlock()
	return loadErr
}

// System returns the loaded configuration.
func System() Config {
	once.Do(initStore)
	mu.RLock()
	defer mu.RUnlock()
	return store
}

// Reload refreshes the configuration from disk.
func Reload() error {
	once.Do(initStore)
	mu.Lock()
	defer mu.Unlock()
	loadErr = loadLocked()
	return loadErr
}

// Save persists the current configuration to disk.
func Save() error {
	once.Do(initStore)
	mu.Lock()
	defer mu.Unlock()
	path, err := configPath()
	if err != nil {
		return err
	}
	return writeConfig(path, store)
}

// Set replaces the in-memory configuration with the provided config.
func Set(cfg Config) {
	once.Do(initStore)
	mu.Lock()
	defer mu.Unlock()
	if cfg == nil {
		cfg = make(Config)
	}
	store = cfg.Clone()
}

func initStore() {
	mu.Lock()
	defer mu.Unlock()
	store = make(Config)
	loadErr = loadLocked()
}

func loadLocked() error {
	path, err := configPath()
	if err != nil {
		log.Printf("Config: Failed to resolve config path: %v", err)
		store = make(Config)
		applyDefaults(store)
		return err
	}

	cfg, exists, readErr := readConfig(path)
	if readErr != nil {
		log.Printf("Config: Failed to read config %s: %v", path, readErr)
		cfg = make(Config)
	}

	if !exists {
		cfg = embeddedDefaults()
		if err := writeConfig(path, cfg); err != nil {
			log.Printf("Config: Failed to write default config: %v", err)
			if readErr == nil {
				readErr = err
			}
		}
	}

	applyDefaults(cfg)
	store = cfg
	if readErr == nil && exists {
		log.Printf("Config: Loaded config from %s", path)
	}
	return readErr
}

func readConfig(path string) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, true, err
	}
	return cfg, true, nil
}

func writeConfig(path string, cfg Config) error {
	if cfg == nil {
		cfg = make(Config)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
