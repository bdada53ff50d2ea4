// Haski - Skin & Hair Condition Analysis and Care Recommendations
// Copyright 2026 Priyansh (Priyansh0418)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Priyansh0418/Haski-sub003

package rules

import "fmt"

// ConfigError reports a malformed rule or rule set detected at load time.
// It is returned by Source.Load and Repository.Reload, never raised during
// evaluation.
type ConfigError struct {
	// RuleID identifies the offending rule, when known.
	RuleID string

	// Field names the offending field, when known.
	Field string

	// Reason describes what is wrong.
	Reason string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	msg := "invalid rule configuration"
	if e.RuleID != "" {
		msg += fmt.Sprintf(" (rule %q)", e.RuleID)
	}
	if e.Field != "" {
		msg += fmt.Sprintf(" field %q", e.Field)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

func configErrorf(ruleID, field, format string, args ...interface{}) *ConfigError {
	return &ConfigError{
		RuleID: ruleID,
		Field:  field,
		Reason: fmt.Sprintf(format, args...),
	}
}
