// errors.go: structured error handling for windsim
//
// This file provides structured error types using the go-errors library,
// enabling rich error context, categorization, and standardized error codes
// for configuration validation, trace ingestion, and invariant checking.
//
// Copyright (c) 2026 evictlab
// SPDX-License-Identifier: MPL-2.0
package windsim

import (
	goerrors "errors"

	"github.com/agilira/go-errors"
)

// Error codes for windsim operations
const (
	// Configuration errors (1xxx)
	ErrCodeInvalidConfig  errors.ErrorCode = "WINDSIM_INVALID_CONFIG"
	ErrCodeInvalidMaxSize errors.ErrorCode = "WINDSIM_INVALID_MAX_SIZE"
	ErrCodeInvalidPercent errors.ErrorCode = "WINDSIM_INVALID_PERCENT"
	ErrCodeInvalidLevels  errors.ErrorCode = "WINDSIM_INVALID_LEVELS"
	ErrCodeInvalidDecay   errors.ErrorCode = "WINDSIM_INVALID_DECAY"

	// Invariant errors (2xxx)
	ErrCodeInvariantViolation errors.ErrorCode = "WINDSIM_INVARIANT_VIOLATION"

	// Trace errors (3xxx)
	ErrCodeTraceOpenFailed  errors.ErrorCode = "WINDSIM_TRACE_OPEN_FAILED"
	ErrCodeTraceParseFailed errors.ErrorCode = "WINDSIM_TRACE_PARSE_FAILED"

	// Policy selection errors (4xxx)
	ErrCodeUnknownPolicy errors.ErrorCode = "WINDSIM_UNKNOWN_POLICY"
)

// Common error messages
const (
	msgInvalidMaxSize     = "invalid maximum size: must be greater than 0"
	msgInvalidPercent     = "invalid percentage: must be a fraction in [0,1]"
	msgInvalidLevels      = "invalid levels: must be at least 1"
	msgInvalidDecay       = "invalid decay rate: must be in (0,1]"
	msgInvariantViolation = "policy invariant violated"
	msgTraceOpenFailed    = "failed to open trace"
	msgTraceParseFailed   = "failed to parse trace"
	msgUnknownPolicy      = "unknown policy name"
)

// NewErrInvalidMaxSize creates an error for a non-positive maximum size.
func NewErrInvalidMaxSize(size int) error {
	return errors.NewWithContext(ErrCodeInvalidMaxSize, msgInvalidMaxSize, map[string]interface{}{
		"provided_size":    size,
		"minimum_required": 1,
	})
}

// NewErrInvalidPercent creates an error for a fraction outside [0,1].
func NewErrInvalidPercent(setting string, value float64) error {
	return errors.NewWithContext(ErrCodeInvalidPercent, msgInvalidPercent, map[string]interface{}{
		"setting":        setting,
		"provided_value": value,
		"valid_range":    "0.0 <= value <= 1.0",
	})
}

// NewErrInvalidLevels creates an error for a non-positive level count.
func NewErrInvalidLevels(levels int) error {
	return errors.NewWithContext(ErrCodeInvalidLevels, msgInvalidLevels, map[string]interface{}{
		"provided_levels":  levels,
		"minimum_required": 1,
	})
}

// NewErrInvalidDecay creates an error for a decay rate outside (0,1].
func NewErrInvalidDecay(setting string, value float64) error {
	return errors.NewWithContext(ErrCodeInvalidDecay, msgInvalidDecay, map[string]interface{}{
		"setting":        setting,
		"provided_value": value,
		"valid_range":    "0.0 < value <= 1.0",
	})
}

// NewErrInvariant creates a fatal error for corrupted policy bookkeeping.
// Replays must abort on it: an inconsistent region counter or tag means
// every statistic gathered so far is suspect.
func NewErrInvariant(policy, detail string, context map[string]interface{}) error {
	ctx := map[string]interface{}{
		"policy": policy,
		"detail": detail,
	}
	for k, v := range context {
		ctx[k] = v
	}
	return errors.NewWithContext(ErrCodeInvariantViolation, msgInvariantViolation, ctx).
		WithSeverity("critical")
}

// NewErrTraceOpen creates an error when a trace file cannot be opened.
func NewErrTraceOpen(path string, cause error) error {
	return errors.Wrap(cause, ErrCodeTraceOpenFailed, msgTraceOpenFailed).
		WithContext("path", path)
}

// NewErrTraceParse creates an error for a malformed trace line.
func NewErrTraceParse(path string, line int, cause error) error {
	return errors.Wrap(cause, ErrCodeTraceParseFailed, msgTraceParseFailed).
		WithContext("path", path).
		WithContext("line", line)
}

// NewErrUnknownPolicy creates an error for an unrecognized policy name.
func NewErrUnknownPolicy(name string) error {
	return errors.NewWithField(ErrCodeUnknownPolicy, msgUnknownPolicy, "name", name)
}

// IsConfigError checks if the error is a configuration error.
func IsConfigError(err error) bool {
	return errors.HasCode(err, ErrCodeInvalidConfig) ||
		errors.HasCode(err, ErrCodeInvalidMaxSize) ||
		errors.HasCode(err, ErrCodeInvalidPercent) ||
		errors.HasCode(err, ErrCodeInvalidLevels) ||
		errors.HasCode(err, ErrCodeInvalidDecay)
}

// IsInvariantViolation checks if the error reports corrupted bookkeeping.
func IsInvariantViolation(err error) bool {
	return errors.HasCode(err, ErrCodeInvariantViolation)
}

// IsTraceError checks if the error came from trace ingestion.
func IsTraceError(err error) bool {
	return errors.HasCode(err, ErrCodeTraceOpenFailed) ||
		errors.HasCode(err, ErrCodeTraceParseFailed)
}

// GetErrorCode extracts the error code from an error.
func GetErrorCode(err error) errors.ErrorCode {
	if err == nil {
		return ""
	}
	var coder errors.ErrorCoder
	if goerrors.As(err, &coder) {
		return coder.ErrorCode()
	}
	return ""
}

// GetErrorContext extracts context from an error.
func GetErrorContext(err error) map[string]interface{} {
	if err == nil {
		return nil
	}
	var werr *errors.Error
	if goerrors.As(err, &werr) {
		return werr.Context
	}
	return nil
}
