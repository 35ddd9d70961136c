// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package cmdrunner

import (
	"context"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/choria-io/updater/model"
	"github.com/choria-io/updater/model/modelmocks"
)

func TestCommandRunner(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Internal/CommandRunner")
}

var _ = Describe("CommandRunner", func() {
	var (
		mockctl *gomock.Controller
		runner  *CommandRunner
	)

	BeforeEach(func() {
		mockctl = gomock.NewController(GinkgoT())

		var err error
		runner, err = NewCommandRunner(modelmocks.NewLogger(mockctl))
		Expect(err).ToNot(HaveOccurred())
	})

	It("Should require a command", func() {
		_, _, _, err := runner.ExecuteWithOptions(context.Background(), model.ExtendedExecOptions{})
		Expect(err).To(MatchError("command not specified"))
	})

	It("Should capture output", func() {
		stdout, stderr, code, err := runner.Execute(context.Background(), "sh", "-c", "echo out; echo err >&2")
		Expect(err).ToNot(HaveOccurred())
		Expect(code).To(Equal(0))
		Expect(string(stdout)).To(Equal("out\n"))
		Expect(string(stderr)).To(Equal("err\n"))
	})

	It("Should return exit codes without an error", func() {
		_, _, code, err := runner.Execute(context.Background(), "sh", "-c", "exit 3")
		Expect(err).ToNot(HaveOccurred())
		Expect(code).To(Equal(3))
	})

	It("Should honor timeouts", func() {
		start := time.Now()
		_, _, _, err := runner.ExecuteWithOptions(context.Background(), model.ExtendedExecOptions{
			Command: "sh",
			Args:    []string{"-c", "sleep 10"},
			Timeout: 50 * time.Millisecond,
		})
		Expect(err).To(HaveOccurred())
		Expect(time.Since(start)).To(BeNumerically("<", 5*time.Second))
	})
})
