// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"context"
	"time"
)

// ProgressFunc receives the fraction of the download completed, between 0.0 and 1.0
type ProgressFunc func(fraction float64)

// ResultFunc receives the terminal outcome of a download, path is set on success and
// also alongside ErrMetadata since the archive is in place in that case
type ResultFunc func(path string, err error)

// Delivery runs caller supplied callbacks on a single consistent execution context
type Delivery interface {
	// Post schedules f, it returns false when f will never be run
	Post(f func()) bool
}

// ArchiveProcessor takes a downloaded archive and places its extracted contents in persistent storage
type ArchiveProcessor interface {
	Process(ctx context.Context, localArchive string, fileName string) (string, error)
}

// EventType is the kind of Event
type EventType string

const (
	ProgressEventType EventType = "progress"
	CompleteEventType EventType = "complete"
	ErrorEventType    EventType = "error"
)

// Event is one entry in the stream produced for a download, any number of progress
// events followed by exactly one complete or error event
type Event struct {
	Type     EventType `json:"-"`
	Progress float64   `json:"progress,omitempty"`
	Path     string    `json:"url,omitempty"`
	Error    string    `json:"error,omitempty"`
	Err      error     `json:"-"`
}

// IsTerminal is true for complete and error events
func (e Event) IsTerminal() bool {
	return e.Type == CompleteEventType || e.Type == ErrorEventType
}

// StoredArchive is an extracted archive in persistent storage, keyed by the archive file name
type StoredArchive struct {
	Name    string    `json:"name" yaml:"name"`
	Path    string    `json:"path" yaml:"path"`
	Size    int64     `json:"size" yaml:"size"`
	ModTime time.Time `json:"mtime" yaml:"mtime"`
}
