// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"fmt"
	"maps"
	"slices"
	"sort"
	"sync"

	"github.com/choria-io/updater/model"
)

var (
	extractors = make(map[string]model.ExtractorFactory)
	mu         sync.Mutex
)

// Clear removes all registered extractors
func Clear() {
	mu.Lock()
	defer mu.Unlock()

	extractors = make(map[string]model.ExtractorFactory)
}

// Register registers an extractor factory, names must be unique
func Register(f model.ExtractorFactory) error {
	mu.Lock()
	defer mu.Unlock()

	_, ok := extractors[f.Name()]
	if ok {
		return fmt.Errorf("%w: %s", model.ErrDuplicateExtractor, f.Name())
	}

	extractors[f.Name()] = f

	return nil
}

// MustRegister registers an extractor factory and panics if registration fails
func MustRegister(f model.ExtractorFactory) {
	err := Register(f)
	if err != nil {
		panic(err)
	}
}

// Names returns the sorted names of all registered extractors
func Names() []string {
	mu.Lock()
	defer mu.Unlock()

	return slices.Sorted(maps.Keys(extractors))
}

// selectFactories returns the manageable factories ordered by priority
func selectFactories(opts model.ExtractorOptions, log model.Logger) []model.ExtractorFactory {
	mu.Lock()
	defer mu.Unlock()

	type matched struct {
		prio    int
		factory model.ExtractorFactory
	}

	var found []*matched

	for _, f := range extractors {
		ok, priority, err := f.IsManageable(opts)
		if err != nil {
			log.Warn("Could not check if extractor is manageable", "extractor", f.Name(), "err", err)
			continue
		}

		if ok {
			found = append(found, &matched{priority, f})
		}
	}

	sort.Slice(found, func(i, j int) bool {
		if found[i].prio == found[j].prio {
			return found[i].factory.Name() < found[j].factory.Name()
		}
		return found[i].prio < found[j].prio
	})

	var result []model.ExtractorFactory
	for _, m := range found {
		result = append(result, m.factory)
	}

	return result
}

// selectFactory finds the named factory and checks it is manageable
func selectFactory(name string, opts model.ExtractorOptions, log model.Logger) (model.ExtractorFactory, error) {
	mu.Lock()
	defer mu.Unlock()

	f, ok := extractors[name]
	if !ok {
		log.Debug("No extractor found", "extractor", name)
		return nil, fmt.Errorf("%w: %s", model.ErrExtractorNotFound, name)
	}

	ok, _, err := f.IsManageable(opts)
	if err != nil {
		log.Debug("Extractor detection failed", "extractor", name, "err", err)
		return nil, fmt.Errorf("%w: %w", model.ErrExtractorNotManageable, err)
	}

	if !ok {
		log.Debug("Extractor cannot be used", "extractor", name)
		return nil, fmt.Errorf("%w: %s", model.ErrExtractorNotManageable, name)
	}

	return f, nil
}

// FindSuitableExtractor creates the named extractor, or the most preferred manageable one when name is empty
func FindSuitableExtractor(name string, log model.Logger, runner model.CommandRunner, opts model.ExtractorOptions) (model.Extractor, error) {
	var selected model.ExtractorFactory

	if name == "" {
		found := selectFactories(opts, log)
		if len(found) == 0 {
			return nil, model.ErrNoSuitableExtractor
		}

		selected = found[0]
	} else {
		f, err := selectFactory(name, opts, log)
		if err != nil {
			return nil, err
		}

		selected = f
	}

	log.Debug("Selected extractor", "extractor", selected.Name())

	return selected.New(log, runner, opts)
}
