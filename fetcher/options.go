// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package fetcher

import (
	"fmt"
	"net/http"
	"time"

	"github.com/choria-io/updater/model"
)

// Option configures a Fetcher
type Option func(*Fetcher) error

// WithLogger sets the logger
func WithLogger(log model.Logger) Option {
	return func(f *Fetcher) error {
		f.log = log
		return nil
	}
}

// WithHTTPClient sets the client used for the download, http.DefaultClient otherwise
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) error {
		f.client = c
		return nil
	}
}

// WithDelivery sets where progress and result callbacks are run, without it the
// fetcher delivers through its own dispatcher
func WithDelivery(d model.Delivery) Option {
	return func(f *Fetcher) error {
		f.delivery = d
		return nil
	}
}

// WithScratchDirectory sets the directory the archive is downloaded into
func WithScratchDirectory(dir string) Option {
	return func(f *Fetcher) error {
		if dir == "" {
			return fmt.Errorf("scratch directory is required")
		}

		f.scratchDir = dir
		return nil
	}
}

// WithUserAgent sets the User-Agent header of the request
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) error {
		f.userAgent = ua
		return nil
	}
}

// WithTimeout bounds the entire transfer, 0 leaves timeouts to the client
func WithTimeout(t time.Duration) Option {
	return func(f *Fetcher) error {
		if t < 0 {
			return fmt.Errorf("timeout cannot be negative")
		}

		f.timeout = t
		return nil
	}
}
