// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"errors"
)

var (
	// ErrInvalidURL indicates the source could not be used as an absolute http(s) URL with a file name
	ErrInvalidURL = errors.New("invalid url")
	// ErrTransport indicates the download failed or produced no local file
	ErrTransport = errors.New("transport error")
	// ErrExtraction indicates the archive could not be staged or extracted
	ErrExtraction = errors.New("extraction failed")
	// ErrPathResolution indicates the persistent storage root could not be located
	ErrPathResolution = errors.New("could not resolve storage path")
	// ErrMove indicates the extracted archive could not be placed in persistent storage
	ErrMove = errors.New("could not move archive into place")
	// ErrMetadata indicates backup exclusion failed, the archive is in place regardless
	ErrMetadata = errors.New("could not set backup exclusion")

	ErrExtractorNotFound      = errors.New("extractor not found")
	ErrExtractorNotManageable = errors.New("extractor is not manageable")
	ErrNoSuitableExtractor    = errors.New("no suitable extractor found")
	ErrDuplicateExtractor     = errors.New("extractor already exists")
)

// ErrorKind returns a short label for the pipeline error kind wrapped in err, used in metrics and logs
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidURL):
		return "invalid_url"
	case errors.Is(err, ErrTransport):
		return "transport"
	case errors.Is(err, ErrExtraction):
		return "extraction"
	case errors.Is(err, ErrPathResolution):
		return "path_resolution"
	case errors.Is(err, ErrMove):
		return "move"
	case errors.Is(err, ErrMetadata):
		return "metadata"
	default:
		return "unknown"
	}
}

// IsCaveat is true when err reports a condition where the archive was stored but a
// non fatal step failed, callers should treat this as success with a warning
func IsCaveat(err error) bool {
	return errors.Is(err, ErrMetadata)
}
