// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package updater

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"
)

var _ = Describe("Loggers", func() {
	var buf *bytes.Buffer

	decode := func() map[string]any {
		res := map[string]any{}
		Expect(json.Unmarshal(buf.Bytes(), &res)).To(Succeed())
		return res
	}

	BeforeEach(func() {
		buf = bytes.NewBuffer(nil)
	})

	Describe("SlogLogger", func() {
		It("Should log with attributes", func() {
			log := NewSlogLogger(slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
			log.With("component", "engine").Warn("Could not remove", "path", "/tmp/x")

			entry := decode()
			Expect(entry).To(HaveKeyWithValue("msg", "Could not remove"))
			Expect(entry).To(HaveKeyWithValue("level", "WARN"))
			Expect(entry).To(HaveKeyWithValue("component", "engine"))
			Expect(entry).To(HaveKeyWithValue("path", "/tmp/x"))
		})
	})

	Describe("LogrusLogger", func() {
		var log *LogrusLogger

		BeforeEach(func() {
			l := logrus.New()
			l.SetOutput(buf)
			l.SetFormatter(&logrus.JSONFormatter{})
			l.SetLevel(logrus.DebugLevel)
			log = NewLogrusLogger(logrus.NewEntry(l))
		})

		It("Should log with fields", func() {
			log.With("component", "fetcher").Error("Download failed", "error", errors.New("boom"), "status", 404)

			entry := decode()
			Expect(entry).To(HaveKeyWithValue("msg", "Download failed"))
			Expect(entry).To(HaveKeyWithValue("level", "error"))
			Expect(entry).To(HaveKeyWithValue("component", "fetcher"))
			Expect(entry).To(HaveKeyWithValue("error", "boom"))
			Expect(entry).To(HaveKeyWithValue("status", BeNumerically("==", 404)))
		})

		It("Should handle malformed arguments", func() {
			log.Info("Odd", 1, "one", "dangling")

			entry := decode()
			Expect(entry).To(HaveKeyWithValue("1", "one"))
			Expect(entry).To(HaveKeyWithValue("!BADKEY", "dangling"))
		})

		It("Should respect the level", func() {
			log.log.Logger.SetLevel(logrus.WarnLevel)
			log.Debug("hidden")
			Expect(buf.Len()).To(BeZero())
		})
	})
})
