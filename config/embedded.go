// Copyright © 2025 Texelnav contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/embedded.go
// Summary: Parses and caches the embedded default config JSON.

package config

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/framegrace/texelnav/defaults"
)

var (
	embeddedOnce sync.Once
	embedded     Config
)

// embeddedDefaults returns a copy of the parsed embedded defaults,
// used to seed the on-disk file on first run. A parse failure falls
// back to an empty config; applyDefaults still fills every setting.
func embeddedDefaults() Config {
	embeddedOnce.Do(func() {
		data, err := defaults.ConfigJSON()
		if err != nil {
			log.Printf("Config: Failed to load embedded defaults: %v", err)
			return
		}
		var cfg Config
		if err := json.Unmarshal(data, &cfg); err != nil {
			log.Printf("Config: Failed to parse embedded defaults: %v", err)
			return
		}
		embedded = cfg
	})
	if embedded == nil {
		return make(Config)
	}
	return embedded.Clone()
}
