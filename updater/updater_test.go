// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package updater

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/klauspost/compress/zip"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	iu "github.com/choria-io/updater/internal/util"
	"github.com/choria-io/updater/model"
	"github.com/choria-io/updater/model/modelmocks"
)

func TestUpdater(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Updater")
}

func zipBytes(files map[string]string) []byte {
	buf := bytes.NewBuffer(nil)
	zw := zip.NewWriter(buf)
	for name, body := range files {
		w, err := zw.Create(name)
		Expect(err).ToNot(HaveOccurred())
		_, err = w.Write([]byte(body))
		Expect(err).ToNot(HaveOccurred())
	}
	Expect(zw.Close()).To(Succeed())

	return buf.Bytes()
}

type result struct {
	path string
	err  error
}

var _ = Describe("Updater", func() {
	var (
		mockctl  *gomock.Controller
		logger   *modelmocks.MockLogger
		tempDir  string
		docs     string
		scratch  string
		archives *sync.Map
		srv      *httptest.Server
		upd      *Updater
	)

	serve := func(name string, body []byte) string {
		archives.Store(name, body)
		return fmt.Sprintf("%s/archives/%s", srv.URL, name)
	}

	download := func(url string) (string, []float64, error) {
		var progress []float64
		results := make(chan result, 1)

		_, err := upd.Download(context.Background(), url, func(p float64) {
			progress = append(progress, p)
		}, func(path string, err error) {
			results <- result{path, err}
		})
		Expect(err).ToNot(HaveOccurred())

		var res result
		Eventually(results).Should(Receive(&res))

		return res.path, progress, res.err
	}

	expectScratchEmpty := func() {
		entries, err := os.ReadDir(scratch)
		if os.IsNotExist(err) {
			return
		}
		Expect(err).ToNot(HaveOccurred())
		Expect(entries).To(BeEmpty())
	}

	BeforeEach(func() {
		mockctl = gomock.NewController(GinkgoT())
		logger = modelmocks.NewLogger(mockctl)
		tempDir = GinkgoT().TempDir()
		docs = filepath.Join(tempDir, "Documents")
		scratch = filepath.Join(tempDir, "scratch")
		archives = &sync.Map{}

		srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, ok := archives.Load(filepath.Base(r.URL.Path))
			if !ok {
				http.NotFound(w, r)
				return
			}
			w.Header().Set("Content-Length", fmt.Sprintf("%d", len(body.([]byte))))
			w.Write(body.([]byte))
		}))
		DeferCleanup(srv.Close)

		var err error
		upd, err = New(logger,
			WithDocumentsDirectory(docs),
			WithScratchDirectory(scratch),
			WithExtractor("zip"),
			WithBackupExclusion("none"),
			WithUserAgent("updater-test"),
		)
		Expect(err).ToNot(HaveOccurred())
		DeferCleanup(upd.Close)
	})

	Describe("New", func() {
		It("Should fail for unknown extractors", func() {
			_, err := New(logger, WithExtractor("rar"))
			Expect(err).To(MatchError(model.ErrExtractorNotFound))
		})

		It("Should fail for unknown backup exclusions", func() {
			_, err := New(logger, WithBackupExclusion("bogus"))
			Expect(err).To(MatchError(ContainSubstring("unknown backup exclusion")))
		})

		It("Should validate options", func() {
			_, err := New(logger, WithCleanupConcurrency(0))
			Expect(err).To(MatchError("cleanup concurrency must be at least 1"))

			_, err = New(logger, WithTimeout(-1))
			Expect(err).To(MatchError("timeout cannot be negative"))
		})
	})

	Describe("Download", func() {
		It("Should store the archive below the documents directory", func() {
			url := serve("pack.zip", zipBytes(map[string]string{"file.txt": "v1"}))

			path, progress, err := download(url)
			Expect(err).ToNot(HaveOccurred())
			Expect(path).To(Equal(filepath.Join(docs, "updater", "pack.zip")))

			b, err := os.ReadFile(filepath.Join(docs, "updater", "pack.zip", "file.txt"))
			Expect(err).ToNot(HaveOccurred())
			Expect(string(b)).To(Equal("v1"))

			Expect(progress).ToNot(BeEmpty())
			for i, p := range progress {
				Expect(p).To(BeNumerically(">=", 0))
				Expect(p).To(BeNumerically("<=", 1))
				if i > 0 {
					Expect(p).To(BeNumerically(">=", progress[i-1]))
				}
			}

			expectScratchEmpty()
		})

		It("Should replace the archive when downloaded again", func() {
			url := serve("pack.zip", zipBytes(map[string]string{"file.txt": "v1", "old.txt": "old"}))
			_, _, err := download(url)
			Expect(err).ToNot(HaveOccurred())

			serve("pack.zip", zipBytes(map[string]string{"file.txt": "v2"}))
			path, _, err := download(url)
			Expect(err).ToNot(HaveOccurred())

			b, err := os.ReadFile(filepath.Join(path, "file.txt"))
			Expect(err).ToNot(HaveOccurred())
			Expect(string(b)).To(Equal("v2"))
			Expect(iu.FileExists(filepath.Join(path, "old.txt"))).To(BeFalse())

			entries, err := os.ReadDir(filepath.Join(docs, "updater"))
			Expect(err).ToNot(HaveOccurred())
			Expect(entries).To(HaveLen(1))
		})

		It("Should leave the destination untouched for corrupt archives", func() {
			url := serve("pack.zip", zipBytes(map[string]string{"file.txt": "v1"}))
			path, _, err := download(url)
			Expect(err).ToNot(HaveOccurred())

			serve("pack.zip", []byte("this is not a zip archive"))
			res, _, err := download(url)
			Expect(err).To(MatchError(model.ErrExtraction))
			Expect(res).To(BeEmpty())

			b, err := os.ReadFile(filepath.Join(path, "file.txt"))
			Expect(err).ToNot(HaveOccurred())
			Expect(string(b)).To(Equal("v1"))

			expectScratchEmpty()
		})

		It("Should report missing archives as transport errors", func() {
			_, progress, err := download(srv.URL + "/archives/missing.zip")
			Expect(err).To(MatchError(model.ErrTransport))
			Expect(progress).To(BeEmpty())
		})

		It("Should report invalid urls immediately", func() {
			var called int
			var progress int

			_, err := upd.Download(context.Background(), "not a url", func(float64) { progress++ }, func(path string, err error) {
				called++
				Expect(path).To(BeEmpty())
				Expect(err).To(MatchError(model.ErrInvalidURL))
			})
			Expect(err).To(MatchError(model.ErrInvalidURL))
			Expect(called).To(Equal(1))
			Expect(progress).To(BeZero())
		})
	})

	Describe("DownloadArchive", func() {
		It("Should publish progress followed by completion", func() {
			url := serve("pack.zip", zipBytes(map[string]string{"file.txt": "v1"}))

			events, err := upd.DownloadArchive(context.Background(), url)
			Expect(err).ToNot(HaveOccurred())

			var received []model.Event
			Eventually(func() bool {
				for {
					select {
					case e, ok := <-events:
						if !ok {
							return true
						}
						received = append(received, e)
					default:
						return false
					}
				}
			}).Should(BeTrue())

			Expect(len(received)).To(BeNumerically(">=", 2))
			last := received[len(received)-1]
			Expect(last.Type).To(Equal(model.CompleteEventType))
			Expect(last.Path).To(Equal(filepath.Join(docs, "updater", "pack.zip")))

			for _, e := range received[:len(received)-1] {
				Expect(e.Type).To(Equal(model.ProgressEventType))
				Expect(e.IsTerminal()).To(BeFalse())
			}
		})

		It("Should publish failures as error events", func() {
			events, err := upd.DownloadArchive(context.Background(), srv.URL+"/archives/missing.zip")
			Expect(err).ToNot(HaveOccurred())

			var last model.Event
			Eventually(events).Should(Receive(&last))
			Expect(last.Type).To(Equal(model.ErrorEventType))
			Expect(last.Err).To(MatchError(model.ErrTransport))
			Expect(last.Error).To(ContainSubstring("status 404"))
			Eventually(events).Should(BeClosed())
		})

		It("Should fail immediately for invalid urls", func() {
			events, err := upd.DownloadArchive(context.Background(), "ftp://example.net/pack.zip")
			Expect(err).To(MatchError(model.ErrInvalidURL))
			Expect(events).To(BeNil())
		})
	})

	Describe("Cleanup", func() {
		It("Should remove archives and complete once", func() {
			a := filepath.Join(tempDir, "a")
			b := filepath.Join(tempDir, "b")
			Expect(os.MkdirAll(filepath.Join(a, "nested"), 0755)).To(Succeed())
			Expect(os.WriteFile(filepath.Join(a, "nested", "file.txt"), nil, 0600)).To(Succeed())
			Expect(os.WriteFile(b, nil, 0600)).To(Succeed())

			done := upd.RemoveArchives([]string{a, b, filepath.Join(tempDir, "nonexistent")})
			Eventually(done).Should(BeClosed())

			Expect(iu.FileExists(a)).To(BeFalse())
			Expect(iu.FileExists(b)).To(BeFalse())
		})

		It("Should call the completion handler exactly once", func() {
			var calls atomic.Int32
			upd.Clean([]string{filepath.Join(tempDir, "x"), filepath.Join(tempDir, "y")}, func() { calls.Add(1) })

			Eventually(calls.Load).Should(Equal(int32(1)))
			Consistently(calls.Load, 100*time.Millisecond).Should(Equal(int32(1)))
		})

		It("Should complete for empty requests", func() {
			Eventually(upd.RemoveArchives(nil)).Should(BeClosed())
		})

		It("Should complete after the updater is closed", func() {
			upd.Close()
			Eventually(upd.RemoveArchives([]string{filepath.Join(tempDir, "a")})).Should(BeClosed())
		})

		It("Should remove downloaded archives", func() {
			url := serve("pack.zip", zipBytes(map[string]string{"file.txt": "v1"}))
			path, _, err := download(url)
			Expect(err).ToNot(HaveOccurred())

			Eventually(upd.RemoveArchives([]string{path})).Should(BeClosed())
			Expect(iu.FileExists(path)).To(BeFalse())

			list, err := upd.List()
			Expect(err).ToNot(HaveOccurred())
			Expect(list).To(BeEmpty())
		})
	})

	Describe("List", func() {
		It("Should be empty before anything was downloaded", func() {
			list, err := upd.List()
			Expect(err).ToNot(HaveOccurred())
			Expect(list).To(BeEmpty())
		})

		It("Should list stored archives", func() {
			_, _, err := download(serve("b.zip", zipBytes(map[string]string{"file.txt": "hello"})))
			Expect(err).ToNot(HaveOccurred())
			_, _, err = download(serve("a.zip", zipBytes(map[string]string{"one.txt": "1", "dir/two.txt": "22"})))
			Expect(err).ToNot(HaveOccurred())

			list, err := upd.List()
			Expect(err).ToNot(HaveOccurred())
			Expect(list).To(HaveLen(2))

			Expect(list[0].Name).To(Equal("a.zip"))
			Expect(list[0].Path).To(Equal(filepath.Join(docs, "updater", "a.zip")))
			Expect(list[0].Size).To(Equal(int64(3)))
			Expect(list[1].Name).To(Equal("b.zip"))
			Expect(list[1].Size).To(Equal(int64(5)))
			Expect(list[1].ModTime).ToNot(BeZero())
		})
	})

	It("Should expose the storage root", func() {
		root, err := upd.StorageRoot()
		Expect(err).ToNot(HaveOccurred())
		Expect(root).To(Equal(filepath.Join(docs, "updater")))
	})
})
