// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

//go:build linux || darwin

package engine

import (
	"context"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
	"golang.org/x/sys/unix"

	"github.com/choria-io/updater/extract/native"
	"github.com/choria-io/updater/model"
	"github.com/choria-io/updater/model/modelmocks"
)

var _ = Describe("xattrExcluder", func() {
	unsupported := func(string, string, []byte, int) error { return unix.ENOTSUP }

	It("Should suggest another exclusion when the filesystem lacks extended attributes", func() {
		x := &xattrExcluder{attr: backupXattrName, value: backupXattrValue, setxattr: unsupported}

		err := x.Exclude("/srv/updater/pack.zip")
		Expect(err).To(MatchError(unix.ENOTSUP))
		Expect(err).To(MatchError(ContainSubstring("use the cachedir or none backup exclusion")))
	})

	It("Should report other failures unchanged", func() {
		x, err := newXattrExcluder()
		Expect(err).ToNot(HaveOccurred())

		err = x.Exclude(filepath.Join(GinkgoT().TempDir(), "missing"))
		Expect(err).To(MatchError(unix.ENOENT))
		Expect(err).ToNot(MatchError(ContainSubstring("backup exclusion")))
	})

	It("Should surface unsupported filesystems as metadata caveats", func() {
		logger := modelmocks.NewLogger(gomock.NewController(GinkgoT()))
		extractor, err := native.NewNativeProvider(logger)
		Expect(err).ToNot(HaveOccurred())

		tempDir := GinkgoT().TempDir()
		download := filepath.Join(tempDir, "pack.zip-123.download")
		writeZip(download, map[string]string{"file.txt": "v1"})

		eng, err := New(logger,
			WithExtractor(extractor),
			WithBackupExcluder(&xattrExcluder{attr: backupXattrName, value: backupXattrValue, setxattr: unsupported}),
			WithScratchDirectory(filepath.Join(tempDir, "scratch")),
			WithDocumentsDirectory(filepath.Join(tempDir, "Documents")),
		)
		Expect(err).ToNot(HaveOccurred())

		path, err := eng.Process(context.Background(), download, "pack.zip")
		Expect(err).To(MatchError(model.ErrMetadata))
		Expect(err).To(MatchError(ContainSubstring("cachedir or none")))
		Expect(readFile(filepath.Join(path, "file.txt"))).To(Equal("v1"))
	})
})
