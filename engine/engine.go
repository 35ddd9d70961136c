// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/segmentio/ksuid"

	iu "github.com/choria-io/updater/internal/util"
	"github.com/choria-io/updater/metrics"
	"github.com/choria-io/updater/model"
)

// StorageDirectoryName is the directory below the documents directory holding stored archives
const StorageDirectoryName = "updater"

var _ model.ArchiveProcessor = (*Engine)(nil)

// Engine extracts downloaded archives in a scratch area and places the result in the storage root
type Engine struct {
	extractor    model.Extractor
	excluder     model.BackupExcluder
	scratchDir   string
	documentsDir string
	storageRoot  string
	locks        iu.KeyedMutex
	log          model.Logger
}

// DefaultScratchDirectory is the scratch area used when none is configured
func DefaultScratchDirectory() string {
	return filepath.Join(os.TempDir(), "updater")
}

// New creates an Engine, an extractor must be supplied using WithExtractor
func New(log model.Logger, opts ...Option) (*Engine, error) {
	e := &Engine{
		scratchDir:   DefaultScratchDirectory(),
		documentsDir: xdg.UserDirs.Documents,
		log:          log,
	}

	for _, opt := range opts {
		err := opt(e)
		if err != nil {
			return nil, err
		}
	}

	if e.extractor == nil {
		return nil, fmt.Errorf("extractor is required")
	}

	if e.excluder == nil {
		x, err := NewBackupExcluder(DefaultBackupExclusion)
		if err != nil {
			return nil, err
		}
		e.excluder = x
	}

	return e, nil
}

// StorageRoot is the absolute directory holding stored archives
func (e *Engine) StorageRoot() (string, error) {
	root := e.storageRoot
	if root == "" {
		if e.documentsDir == "" {
			return "", fmt.Errorf("%w: documents directory is not known", model.ErrPathResolution)
		}

		root = filepath.Join(e.documentsDir, StorageDirectoryName)
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("%w: %w", model.ErrPathResolution, err)
	}

	return abs, nil
}

// Process extracts localArchive and stores the result as fileName in the storage root, replacing
// any earlier archive by that name. The local archive is consumed.
//
// When the stored archive could not be excluded from backups the path is returned along with an
// error wrapping model.ErrMetadata.
func (e *Engine) Process(ctx context.Context, localArchive string, fileName string) (string, error) {
	log := e.log.With("archive", fileName)

	if !iu.IsValidFileName(fileName) {
		return "", fmt.Errorf("%w: invalid archive name %q", model.ErrPathResolution, fileName)
	}

	timer := prometheus.NewTimer(metrics.ProcessTime.WithLabelValues(e.extractor.Name()))
	defer timer.ObserveDuration()

	id := ksuid.New().String()
	extractDir := filepath.Join(e.scratchDir, id)
	scratchArchive := filepath.Join(e.scratchDir, fmt.Sprintf("%s-%s", id, fileName))

	// after a successful move the extraction directory is already gone
	defer e.removeScratch(log, extractDir, scratchArchive)

	err := e.extract(ctx, log, localArchive, scratchArchive, extractDir)
	if err != nil {
		log.Error("Could not extract archive", "error", err)
		return "", fmt.Errorf("%w: %w", model.ErrExtraction, err)
	}

	root, err := e.StorageRoot()
	if err != nil {
		log.Error("Could not resolve storage location", "error", err)
		return "", err
	}

	dest := filepath.Join(root, fileName)
	log = log.With("path", dest)

	unlock := e.locks.Lock(dest)
	defer unlock()

	// a failure to remove the previous archive surfaces as a move failure
	if iu.FileExists(dest) {
		log.Debug("Removing previously stored archive")
		if !iu.RemoveAllBestEffort(dest) {
			log.Warn("Could not remove previously stored archive")
		}
	}

	err = os.MkdirAll(root, 0755)
	if err != nil {
		log.Error("Could not create storage directory", "root", root, "error", err)
		return "", fmt.Errorf("%w: %w", model.ErrMove, err)
	}

	err = iu.MoveDirectory(extractDir, dest)
	if err != nil {
		log.Error("Could not move extracted archive into place", "error", err)
		return "", fmt.Errorf("%w: %w", model.ErrMove, err)
	}

	err = e.excluder.Exclude(dest)
	if err != nil {
		log.Warn("Could not exclude archive from backups", "excluder", e.excluder.Name(), "error", err)
		return dest, fmt.Errorf("%w: %w", model.ErrMetadata, err)
	}

	log.Info("Stored archive")

	return dest, nil
}

func (e *Engine) extract(ctx context.Context, log model.Logger, localArchive string, scratchArchive string, extractDir string) error {
	err := os.MkdirAll(e.scratchDir, 0700)
	if err != nil {
		return fmt.Errorf("could not create scratch directory: %w", err)
	}

	err = os.Mkdir(extractDir, 0755)
	if err != nil {
		return fmt.Errorf("could not create extraction directory: %w", err)
	}

	err = iu.MoveFile(localArchive, scratchArchive)
	if err != nil {
		return fmt.Errorf("could not stage archive: %w", err)
	}

	log.Debug("Extracting archive", "extractor", e.extractor.Name(), "scratch", extractDir)

	return e.extractor.Extract(ctx, scratchArchive, extractDir)
}

func (e *Engine) removeScratch(log model.Logger, paths ...string) {
	for _, p := range paths {
		if !iu.RemoveAllBestEffort(p) {
			log.Warn("Could not remove scratch artifact", "scratch", p)
			metrics.ScratchCleanupFailures.WithLabelValues().Inc()
		}
	}
}
