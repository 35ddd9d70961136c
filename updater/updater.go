// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package updater

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/choria-io/updater/dispatch"
	"github.com/choria-io/updater/engine"
	"github.com/choria-io/updater/extract"
	"github.com/choria-io/updater/fetcher"
	"github.com/choria-io/updater/internal/cmdrunner"
	"github.com/choria-io/updater/internal/registry"
	"github.com/choria-io/updater/metrics"
	"github.com/choria-io/updater/model"
)

const (
	// DefaultCleanupConcurrency is how many paths are removed at the same time by default
	DefaultCleanupConcurrency = 4

	eventBufferSize = 64
)

// Updater downloads archives into persistent storage and removes them again, all callbacks
// are run serially on a single delivery goroutine
type Updater struct {
	documentsDir       string
	storageRoot        string
	scratchDir         string
	extractor          string
	extractorOpts      model.ExtractorOptions
	backupExclusion    string
	client             *http.Client
	userAgent          string
	timeout            time.Duration
	cleanupConcurrency int

	engine     *engine.Engine
	dispatcher *dispatch.Dispatcher
	log        model.Logger
}

// New creates an Updater, Close should be called when it is no longer needed
func New(log model.Logger, opts ...Option) (*Updater, error) {
	u := &Updater{
		scratchDir:         engine.DefaultScratchDirectory(),
		cleanupConcurrency: DefaultCleanupConcurrency,
		log:                log,
	}

	for _, opt := range opts {
		err := opt(u)
		if err != nil {
			return nil, err
		}
	}

	extract.RegisterAll()

	runner, err := cmdrunner.NewCommandRunner(u.log.With("component", "runner"))
	if err != nil {
		return nil, err
	}

	ext, err := registry.FindSuitableExtractor(u.extractor, u.log.With("component", "extractor"), runner, u.extractorOpts)
	if err != nil {
		return nil, err
	}

	excluder, err := engine.NewBackupExcluder(u.backupExclusion)
	if err != nil {
		return nil, err
	}

	eopts := []engine.Option{
		engine.WithExtractor(ext),
		engine.WithBackupExcluder(excluder),
		engine.WithScratchDirectory(u.scratchDir),
	}
	if u.documentsDir != "" {
		eopts = append(eopts, engine.WithDocumentsDirectory(u.documentsDir))
	}
	if u.storageRoot != "" {
		eopts = append(eopts, engine.WithStorageRoot(u.storageRoot))
	}

	u.engine, err = engine.New(u.log.With("component", "engine"), eopts...)
	if err != nil {
		return nil, err
	}

	u.dispatcher = dispatch.New(u.log.With("component", "dispatch"), 0)

	u.log.Debug("Created updater", "extractor", ext.Name(), "backup_exclusion", excluder.Name(), "scratch", u.scratchDir)

	return u, nil
}

// Download fetches url in the background and stores the extracted archive, named after the last
// url path segment, in the storage root. onProgress and onResult are run on the delivery goroutine
// except for invalid urls which are reported to onResult before Download returns the error.
func (u *Updater) Download(ctx context.Context, url string, onProgress model.ProgressFunc, onResult model.ResultFunc) (*fetcher.Fetcher, error) {
	return fetcher.New(ctx, url, u.engine, onProgress, onResult,
		fetcher.WithLogger(u.log.With("component", "fetcher")),
		fetcher.WithDelivery(u.dispatcher),
		fetcher.WithHTTPClient(u.client),
		fetcher.WithScratchDirectory(u.scratchDir),
		fetcher.WithUserAgent(u.userAgent),
		fetcher.WithTimeout(u.timeout),
	)
}

// DownloadArchive is Download with the outcome published as events, the channel is closed after
// the complete or error event. Progress events are dropped when the reader falls behind.
func (u *Updater) DownloadArchive(ctx context.Context, url string) (<-chan model.Event, error) {
	events := make(chan model.Event, eventBufferSize)

	// after Close callbacks are no longer serialized by the dispatcher
	var mu sync.Mutex
	var finished bool

	onProgress := func(p float64) {
		mu.Lock()
		defer mu.Unlock()

		// keeps a slot free for the terminal event so delivery never blocks
		if !finished && len(events) < cap(events)-1 {
			events <- model.Event{Type: model.ProgressEventType, Progress: p}
		}
	}

	onResult := func(path string, err error) {
		mu.Lock()
		defer mu.Unlock()

		event := model.Event{Type: model.CompleteEventType, Path: path}
		if err != nil {
			event.Type = model.ErrorEventType
			event.Err = err
			event.Error = err.Error()
		}

		events <- event
		close(events)
		finished = true
	}

	_, err := u.Download(ctx, url, onProgress, onResult)
	if err != nil {
		return nil, err
	}

	return events, nil
}

// Clean removes paths in the background and then runs onComplete on the delivery goroutine.
// Paths that cannot be removed are logged and otherwise ignored.
func (u *Updater) Clean(paths []string, onComplete func()) {
	go func() {
		u.removePaths(paths)

		if onComplete == nil {
			return
		}

		if !u.dispatcher.Post(onComplete) {
			onComplete()
		}
	}()
}

// RemoveArchives is Clean with completion signaled by closing the returned channel
func (u *Updater) RemoveArchives(paths []string) <-chan struct{} {
	done := make(chan struct{})
	u.Clean(paths, func() { close(done) })

	return done
}

func (u *Updater) removePaths(paths []string) {
	grp := new(errgroup.Group)
	grp.SetLimit(u.cleanupConcurrency)

	for _, p := range paths {
		grp.Go(func() error {
			u.removePath(p)
			return nil
		})
	}

	// failures were logged per path
	_ = grp.Wait()

	u.log.Info("Removed archives", "paths", len(paths))
}

func (u *Updater) removePath(p string) {
	log := u.log.With("path", p)

	if p == "" || filepath.Dir(filepath.Clean(p)) == filepath.Clean(p) {
		log.Warn("Refusing to remove path")
		metrics.CleanupPaths.WithLabelValues("refused").Inc()
		return
	}

	_, err := os.Lstat(p)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug("Path does not exist")
		metrics.CleanupPaths.WithLabelValues("missing").Inc()
		return
	}

	err = os.RemoveAll(p)
	if err != nil {
		log.Warn("Could not remove path", "error", err)
		metrics.CleanupPaths.WithLabelValues("failure").Inc()
		return
	}

	log.Debug("Removed path")
	metrics.CleanupPaths.WithLabelValues("success").Inc()
}

// List is the archives currently in the storage root, sorted by name
func (u *Updater) List() ([]model.StoredArchive, error) {
	root, err := u.engine.StorageRoot()
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(root)
	if errors.Is(err, fs.ErrNotExist) {
		return []model.StoredArchive{}, nil
	}
	if err != nil {
		return nil, err
	}

	res := []model.StoredArchive{}
	for _, entry := range entries {
		// hidden entries are staging directories of moves in progress
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		path := filepath.Join(root, entry.Name())

		info, err := entry.Info()
		if err != nil {
			return nil, err
		}

		size, err := directorySize(path)
		if err != nil {
			return nil, fmt.Errorf("could not determine size of %s: %w", path, err)
		}

		res = append(res, model.StoredArchive{
			Name:    entry.Name(),
			Path:    path,
			Size:    size,
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(res, func(i, j int) bool { return res[i].Name < res[j].Name })

	return res, nil
}

func directorySize(dir string) (int64, error) {
	var size int64

	err := filepath.WalkDir(dir, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.Type().IsRegular() {
			info, err := d.Info()
			if err != nil {
				return err
			}
			size += info.Size()
		}

		return nil
	})

	return size, err
}

// StorageRoot is the directory holding stored archives
func (u *Updater) StorageRoot() (string, error) {
	return u.engine.StorageRoot()
}

// Close stops the delivery goroutine after running all queued callbacks, callbacks of work still
// in progress are then run on the goroutine doing that work
func (u *Updater) Close() {
	u.dispatcher.Close()
}
