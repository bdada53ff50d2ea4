// Haski - Skin & Hair Condition Analysis and Care Recommendations
// Copyright 2026 Priyansh (Priyansh0418)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Priyansh0418/Haski-sub003

// Package config loads and validates engine configuration.
//
// Configuration is layered: built-in defaults, then an optional YAML file,
// then HASKI_* environment variables, with later layers overriding earlier
// ones. The loaded Config is validated before use; a config that fails
// validation is never returned.
package config
