// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"errors"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/choria-io/updater/model"
	"github.com/choria-io/updater/model/modelmocks"
)

func TestRegistry(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Internal/Registry")
}

var _ = Describe("Registry", func() {
	var (
		mockctl *gomock.Controller
		native  *modelmocks.MockExtractorFactory
		command *modelmocks.MockExtractorFactory
		logger  *modelmocks.MockLogger
		runner  *modelmocks.MockCommandRunner
		opts    model.ExtractorOptions
	)

	BeforeEach(func() {
		mockctl = gomock.NewController(GinkgoT())
		Clear()
		logger = modelmocks.NewLogger(mockctl)
		runner = modelmocks.NewMockCommandRunner(mockctl)
		opts = model.ExtractorOptions{Command: "unzip -q"}

		native = modelmocks.NewMockExtractorFactory(mockctl)
		native.EXPECT().Name().Return("zip").AnyTimes()

		command = modelmocks.NewMockExtractorFactory(mockctl)
		command.EXPECT().Name().Return("unzip").AnyTimes()
	})

	AfterEach(func() {
		Clear()
	})

	Describe("Register", func() {
		It("Should register factories", func() {
			Expect(Register(native)).To(Succeed())
			Expect(Register(command)).To(Succeed())
			Expect(Names()).To(Equal([]string{"unzip", "zip"}))
		})

		It("Should reject duplicates", func() {
			Expect(Register(native)).To(Succeed())
			Expect(Register(native)).To(MatchError(model.ErrDuplicateExtractor))
			Expect(func() { MustRegister(native) }).To(Panic())
		})
	})

	Describe("FindSuitableExtractor", func() {
		BeforeEach(func() {
			MustRegister(native)
			MustRegister(command)
		})

		It("Should pick the lowest priority manageable extractor", func() {
			ext := modelmocks.NewMockExtractor(mockctl)

			native.EXPECT().IsManageable(opts).Return(true, 2, nil)
			command.EXPECT().IsManageable(opts).Return(true, 1, nil)
			command.EXPECT().New(logger, runner, opts).Return(ext, nil)

			found, err := FindSuitableExtractor("", logger, runner, opts)
			Expect(err).ToNot(HaveOccurred())
			Expect(found).To(Equal(ext))
		})

		It("Should skip unmanageable and failing extractors", func() {
			ext := modelmocks.NewMockExtractor(mockctl)

			native.EXPECT().IsManageable(opts).Return(true, 1, nil)
			command.EXPECT().IsManageable(opts).Return(false, 0, errors.New("boom"))
			native.EXPECT().New(logger, runner, opts).Return(ext, nil)

			found, err := FindSuitableExtractor("", logger, runner, opts)
			Expect(err).ToNot(HaveOccurred())
			Expect(found).To(Equal(ext))
		})

		It("Should fail when nothing is manageable", func() {
			native.EXPECT().IsManageable(opts).Return(false, 0, nil)
			command.EXPECT().IsManageable(opts).Return(false, 0, nil)

			_, err := FindSuitableExtractor("", logger, runner, opts)
			Expect(err).To(MatchError(model.ErrNoSuitableExtractor))
		})

		It("Should create named extractors", func() {
			ext := modelmocks.NewMockExtractor(mockctl)

			command.EXPECT().IsManageable(opts).Return(true, 2, nil)
			command.EXPECT().New(logger, runner, opts).Return(ext, nil)

			found, err := FindSuitableExtractor("unzip", logger, runner, opts)
			Expect(err).ToNot(HaveOccurred())
			Expect(found).To(Equal(ext))
		})

		It("Should fail for unknown or unmanageable names", func() {
			_, err := FindSuitableExtractor("rar", logger, runner, opts)
			Expect(err).To(MatchError(model.ErrExtractorNotFound))

			command.EXPECT().IsManageable(opts).Return(false, 0, nil)
			_, err = FindSuitableExtractor("unzip", logger, runner, opts)
			Expect(err).To(MatchError(model.ErrExtractorNotManageable))
		})
	})
})
