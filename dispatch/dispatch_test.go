// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package dispatch

import (
	"sync"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/choria-io/updater/model/modelmocks"
)

func TestDispatch(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Dispatch")
}

var _ = Describe("Dispatcher", func() {
	var (
		mockctl *gomock.Controller
		logger  *modelmocks.MockLogger
	)

	BeforeEach(func() {
		mockctl = gomock.NewController(GinkgoT())
		logger = modelmocks.NewMockLogger(mockctl)
	})

	It("Should run functions in posting order", func() {
		d := New(logger, 0)

		var (
			seen []int
			mu   sync.Mutex
		)

		for i := range 100 {
			Expect(d.Post(func() {
				mu.Lock()
				seen = append(seen, i)
				mu.Unlock()
			})).To(BeTrue())
		}

		d.Close()

		Expect(seen).To(HaveLen(100))
		for i, v := range seen {
			Expect(v).To(Equal(i))
		}
	})

	It("Should run functions on a single goroutine", func() {
		d := New(logger, 2)

		active := 0
		maxActive := 0
		var mu sync.Mutex

		wg := sync.WaitGroup{}
		for range 10 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				d.Post(func() {
					mu.Lock()
					active++
					if active > maxActive {
						maxActive = active
					}
					mu.Unlock()

					mu.Lock()
					active--
					mu.Unlock()
				})
			}()
		}

		wg.Wait()
		d.Close()
		Expect(maxActive).To(Equal(1))
	})

	It("Should recover from panics and keep running", func() {
		logger.EXPECT().Error("Callback panicked", "error", "boom").Times(1)

		d := New(logger, 0)
		ran := false

		d.Post(func() { panic("boom") })
		d.Post(func() { ran = true })
		d.Close()

		Expect(ran).To(BeTrue())
	})

	It("Should refuse work after closing", func() {
		d := New(logger, 0)
		d.Close()
		d.Close()

		Expect(d.Post(func() {})).To(BeFalse())
		Expect(d.Post(nil)).To(BeFalse())
		Eventually(d.Done()).Should(BeClosed())
	})
})
