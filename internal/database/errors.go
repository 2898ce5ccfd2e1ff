// SteamPulse - Game Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steampulse

package database

import (
	"errors"
	"io"
	"log/slog"

	"github.com/tomtom215/steampulse/internal/logging"
)

var (
	// ErrUnsupportedBackend is returned by Open for an unknown warehouse backend.
	ErrUnsupportedBackend = errors.New("unsupported warehouse backend")

	// ErrDecode wraps rows whose values do not fit the expected model.
	ErrDecode = errors.New("decode warehouse row")

	// ErrCircuitOpen is returned while the warehouse circuit breaker rejects calls.
	ErrCircuitOpen = errors.New("warehouse circuit open")
)

// closeWithLog closes a resource and logs any error
// Use this for cleanup operations where errors should be acknowledged but not fail the operation
func closeWithLog(closer io.Closer, logger *slog.Logger, resourceType string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		if logger != nil {
			logger.Error("failed to close resource",
				"type", resourceType,
				"error", err)
		} else {
			logging.Warn().Str("type", resourceType).Err(err).Msg("Failed to close resource")
		}
	}
}

// closeQuietly closes a resource and explicitly ignores any error
// Use this for cleanup operations in error paths where Close() errors are not actionable
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close()
	}
}
