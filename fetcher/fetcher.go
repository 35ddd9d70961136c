// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/choria-io/updater/dispatch"
	iu "github.com/choria-io/updater/internal/util"
	"github.com/choria-io/updater/metrics"
	"github.com/choria-io/updater/model"
)

type state int

const (
	running state = iota
	resolved
	cancelled
)

// Fetcher downloads a single archive and hands it to an archive processor, progress and the
// final result are reported through the delivery
type Fetcher struct {
	url        *url.URL
	fileName   string
	processor  model.ArchiveProcessor
	onProgress model.ProgressFunc
	onResult   model.ResultFunc

	delivery   model.Delivery
	dispatcher *dispatch.Dispatcher
	client     *http.Client
	scratchDir string
	userAgent  string
	timeout    time.Duration
	log        model.Logger

	sub    *subscription
	cancel context.CancelFunc
	state  state
	done   chan struct{}
	mu     sync.Mutex
}

// ParseURL validates rawURL as an archive source and returns it with the file name the archive is stored as
func ParseURL(rawURL string) (*url.URL, string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", model.ErrInvalidURL, err)
	}

	if !u.IsAbs() || u.Host == "" {
		return nil, "", fmt.Errorf("%w: %s is not an absolute url", model.ErrInvalidURL, iu.RedactUrlCredentials(u))
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, "", fmt.Errorf("%w: unsupported scheme %q", model.ErrInvalidURL, u.Scheme)
	}

	name := path.Base(u.Path)
	if !iu.IsValidFileName(name) {
		return nil, "", fmt.Errorf("%w: %s does not name a file", model.ErrInvalidURL, iu.RedactUrlCredentials(u))
	}

	return u, name, nil
}

// New validates rawURL and starts downloading it in the background. The downloaded file is passed
// to processor and its outcome reported to onResult.
//
// An invalid url is reported to onResult before New returns the same error, no download is attempted.
func New(ctx context.Context, rawURL string, processor model.ArchiveProcessor, onProgress model.ProgressFunc, onResult model.ResultFunc, opts ...Option) (*Fetcher, error) {
	fail := func(err error) (*Fetcher, error) {
		if onResult != nil {
			onResult("", err)
		}
		return nil, err
	}

	u, name, err := ParseURL(rawURL)
	if err != nil {
		return fail(err)
	}

	if processor == nil {
		return fail(fmt.Errorf("archive processor is required"))
	}

	f := &Fetcher{
		url:        u,
		fileName:   name,
		processor:  processor,
		onProgress: onProgress,
		onResult:   onResult,
		scratchDir: filepath.Join(os.TempDir(), "updater"),
		done:       make(chan struct{}),
	}

	for _, opt := range opts {
		err = opt(f)
		if err != nil {
			return fail(err)
		}
	}

	if f.log == nil {
		return fail(fmt.Errorf("logger is required"))
	}
	f.log = f.log.With("url", iu.RedactUrlCredentials(u))

	if f.delivery == nil {
		f.dispatcher = dispatch.New(f.log, 0)
		f.delivery = f.dispatcher
	}

	f.sub = newSubscription(f.progress)

	ctx, f.cancel = context.WithCancel(ctx)
	go f.run(ctx)

	return f, nil
}

// URL is the location being downloaded, with credentials redacted
func (f *Fetcher) URL() string { return iu.RedactUrlCredentials(f.url) }

// FileName is the name the archive is stored as
func (f *Fetcher) FileName() string { return f.fileName }

// Done is closed once the download finished and its callbacks were delivered or discarded
func (f *Fetcher) Done() <-chan struct{} { return f.done }

// Cancel aborts the download, no further progress is delivered and the result is not reported.
// Cancelling a resolved download has no effect.
func (f *Fetcher) Cancel() {
	f.mu.Lock()
	if f.state != running {
		f.mu.Unlock()
		return
	}
	f.state = cancelled
	f.mu.Unlock()

	f.log.Info("Cancelling download")
	f.sub.release()
	f.cancel()
}

func (f *Fetcher) isCancelled() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.state == cancelled
}

func (f *Fetcher) run(ctx context.Context) {
	defer close(f.done)
	if f.dispatcher != nil {
		defer f.dispatcher.Close()
	}
	defer f.cancel()

	archive, err := f.download(ctx)
	f.sub.release()
	if err != nil {
		f.resolve("", fmt.Errorf("%w: %w", model.ErrTransport, err))
		return
	}

	if f.isCancelled() {
		f.removeDownload(archive)
		return
	}

	res, err := f.processor.Process(ctx, archive, f.fileName)
	// processors consume the archive, anything still here is scratch
	f.removeDownload(archive)

	f.resolve(res, err)
}

func (f *Fetcher) removeDownload(archive string) {
	if !iu.RemoveBestEffort(archive) {
		f.log.Warn("Could not remove downloaded archive", "file", archive)
		metrics.ScratchCleanupFailures.WithLabelValues().Inc()
	}
}

func (f *Fetcher) resolve(res string, err error) {
	f.mu.Lock()
	if f.state != running {
		f.mu.Unlock()
		f.log.Debug("Discarding result of cancelled download", "error", err)
		return
	}
	f.state = resolved
	f.mu.Unlock()

	metrics.RecordResult(err)

	switch {
	case err == nil:
		f.log.Info("Archive downloaded", "path", res)
	case model.IsCaveat(err):
		f.log.Warn("Archive downloaded with errors", "path", res, "error", err)
	default:
		f.log.Error("Archive download failed", "error", err)
	}

	if f.onResult == nil {
		return
	}

	f.deliver(func() { f.onResult(res, err) })
}

func (f *Fetcher) progress(fraction float64) {
	metrics.ProgressEvents.WithLabelValues().Inc()

	if f.onProgress == nil {
		return
	}

	f.deliver(func() {
		if f.isCancelled() {
			return
		}
		f.onProgress(fraction)
	})
}

// deliver runs cb through the delivery, if the delivery is closed it runs immediately so callers
// still see their result
func (f *Fetcher) deliver(cb func()) {
	if !f.delivery.Post(cb) {
		cb()
	}
}

func (f *Fetcher) download(ctx context.Context) (string, error) {
	timer := prometheus.NewTimer(metrics.DownloadTime.WithLabelValues())
	defer timer.ObserveDuration()

	hdr := http.Header{}
	if f.userAgent != "" {
		hdr.Set("User-Agent", f.userAgent)
	}

	f.log.Info("Downloading archive")

	resp, cancel, err := iu.HttpGetResponse(ctx, f.client, f.url.String(), f.timeout, hdr)
	if err != nil {
		return "", err
	}
	defer cancel()
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP request failed with status %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	err = os.MkdirAll(f.scratchDir, 0700)
	if err != nil {
		return "", fmt.Errorf("could not create scratch directory: %w", err)
	}

	out, err := os.CreateTemp(f.scratchDir, fmt.Sprintf("%s-*.download", f.fileName))
	if err != nil {
		return "", fmt.Errorf("could not create download file: %w", err)
	}

	f.log.Debug("Receiving archive", "file", out.Name(), "size", resp.ContentLength)

	_, err = io.Copy(out, f.sub.reader(resp.Body, resp.ContentLength))
	received := f.sub.bytes()
	metrics.DownloadBytes.WithLabelValues().Add(float64(received))
	if err != nil {
		out.Close()
		f.removeDownload(out.Name())
		return "", fmt.Errorf("could not receive archive: %w", err)
	}

	err = out.Close()
	if err != nil {
		f.removeDownload(out.Name())
		return "", fmt.Errorf("could not write archive: %w", err)
	}

	if resp.ContentLength > 0 && received != resp.ContentLength {
		f.removeDownload(out.Name())
		return "", fmt.Errorf("received %d bytes but expected %d", received, resp.ContentLength)
	}

	f.log.Debug("Received archive", "file", out.Name(), "bytes", received)

	return out.Name(), nil
}
