// Copyright © 2025 Texelnav contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: defaults/embedded.go
// Summary: Embedded default config and demo document.

package defaults

import "embed"

//go:embed texelnav.json portfolio.md
var fs embed.FS

// ConfigJSON returns the embedded default config.
func ConfigJSON() ([]byte, error) {
	return fs.ReadFile("texelnav.json")
}

// Portfolio returns the embedded demo document, shown when texelnav
// starts without a file argument.
func Portfolio() ([]byte, error) {
	return fs.ReadFile("portfolio.md")
}
