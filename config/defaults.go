// Copyright © 2025 Texelnav contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/defaults.go
// Summary: Built-in defaults applied over loaded configs.

package config

// applyDefaults fills in missing settings. The embedded JSON in
// defaults/ carries the same values; this keeps hand-edited configs
// with dropped keys usable.
func applyDefaults(cfg Config) {
	if cfg == nil {
		return
	}
	cfg.RegisterDefaults("scroll", Section{
		"duration_ms": 450,
		"easing":      "ease-in-out-cubic",
		"lead_lines":  2,
	})
	cfg.RegisterDefaults("nav", Section{
		"rail_width": 22,
		"vocabulary": []string{
			"hero", "about", "experience", "skills", "projects", "contact",
		},
	})
	cfg.RegisterDefaults("theme", Section{
		"name":       "texelnav-dark",
		"code_style": "catppuccin-mocha",
	})
	cfg.RegisterDefaults("session", Section{
		"enabled": true,
		"path":    "",
	})
}
