// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/choria-io/updater/model"
)

var (
	NameSpace = "choria"
	Subsystem = "updater"

	// DownloadCount counts completed downloads by outcome
	DownloadCount = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(NameSpace, Subsystem, "download_count"),
		Help: "How many archive downloads completed, by result",
	}, []string{"result"})

	// DownloadBytes counts bytes received from the network
	DownloadBytes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(NameSpace, Subsystem, "download_bytes"),
		Help: "How many bytes were downloaded",
	}, []string{})

	// DownloadTime is a summary of the time taken to transfer archives
	DownloadTime = prometheus.NewSummaryVec(prometheus.SummaryOpts{
		Name: prometheus.BuildFQName(NameSpace, Subsystem, "download_duration_seconds"),
		Help: "Time taken to download an archive",
	}, []string{})

	// ProcessTime is a summary of the time taken to extract and place an archive
	ProcessTime = prometheus.NewSummaryVec(prometheus.SummaryOpts{
		Name: prometheus.BuildFQName(NameSpace, Subsystem, "process_duration_seconds"),
		Help: "Time taken to extract and place an archive",
	}, []string{"extractor"})

	// ErrorCount counts pipeline errors by kind
	ErrorCount = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(NameSpace, Subsystem, "error_count"),
		Help: "How many pipeline errors were encountered, by kind",
	}, []string{"kind"})

	// ProgressEvents counts progress events emitted
	ProgressEvents = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(NameSpace, Subsystem, "progress_event_count"),
		Help: "How many progress events were emitted",
	}, []string{})

	// ScratchCleanupFailures counts scratch artifacts that could not be removed
	ScratchCleanupFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(NameSpace, Subsystem, "scratch_cleanup_error_count"),
		Help: "How many scratch artifacts could not be removed",
	}, []string{})

	// CleanupPaths counts paths handled by cleanup requests, by result
	CleanupPaths = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(NameSpace, Subsystem, "cleanup_path_count"),
		Help: "How many paths were processed by cleanup, by result",
	}, []string{"result"})
)

func RegisterMetrics() {
	prometheus.MustRegister(DownloadCount)
	prometheus.MustRegister(DownloadBytes)
	prometheus.MustRegister(DownloadTime)
	prometheus.MustRegister(ProcessTime)
	prometheus.MustRegister(ErrorCount)
	prometheus.MustRegister(ProgressEvents)
	prometheus.MustRegister(ScratchCleanupFailures)
	prometheus.MustRegister(CleanupPaths)
}

// RecordResult updates the download outcome metrics for err
func RecordResult(err error) {
	switch {
	case err == nil:
		DownloadCount.WithLabelValues("success").Inc()
	case model.IsCaveat(err):
		DownloadCount.WithLabelValues("caveat").Inc()
		ErrorCount.WithLabelValues(model.ErrorKind(err)).Inc()
	default:
		DownloadCount.WithLabelValues("failure").Inc()
		ErrorCount.WithLabelValues(model.ErrorKind(err)).Inc()
	}
}

func ListenAndServe(port int, log model.Logger) {
	if port <= 0 {
		return
	}

	go func() {
		log.Info("Starting monitoring server", "port", port)
		http.Handle("/metrics", promhttp.Handler())
		err := http.ListenAndServe(fmt.Sprintf(":%d", port), nil)
		if err != nil {
			log.Error("HTTP Listener failed", "error", err)
		}
	}()
}
