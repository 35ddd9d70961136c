// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package native

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"

	"github.com/choria-io/updater/model"
)

const ProviderName = "zip"

var _ model.Extractor = (*Provider)(nil)

// Provider extracts zip archives in process
type Provider struct {
	log model.Logger
}

func NewNativeProvider(log model.Logger) (*Provider, error) {
	return &Provider{log: log}, nil
}

func (p *Provider) Name() string {
	return ProviderName
}

// Extract unpacks archive into dest, entries resolving outside of dest are rejected.
//
// All writes go through an os.Root opened on dest. Symlinks are created only
// once every file and directory is in place so no entry is written through a
// link from the same archive.
func (p *Provider) Extract(ctx context.Context, archive string, dest string) error {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return fmt.Errorf("could not open archive: %w", err)
	}
	defer r.Close()

	err = os.MkdirAll(dest, 0755)
	if err != nil {
		return err
	}

	root, err := os.OpenRoot(dest)
	if err != nil {
		return err
	}
	defer root.Close()

	var (
		total int64
		links []*zip.File
	)

	for _, f := range r.File {
		err = ctx.Err()
		if err != nil {
			return err
		}

		if f.Mode()&fs.ModeSymlink != 0 {
			links = append(links, f)
			continue
		}

		n, err := p.extractEntry(root, f)
		if err != nil {
			return fmt.Errorf("could not extract %q: %w", f.Name, err)
		}
		total += n
	}

	for _, f := range links {
		err = ctx.Err()
		if err != nil {
			return err
		}

		err = p.extractSymlink(root, f)
		if err != nil {
			return fmt.Errorf("could not extract %q: %w", f.Name, err)
		}
	}

	p.log.Debug("Archive extracted", "archive", archive, "entries", len(r.File), "links", len(links), "bytes", total)

	return nil
}

func entryName(f *zip.File) (string, error) {
	name := filepath.FromSlash(f.Name)
	if !filepath.IsLocal(name) {
		return "", fmt.Errorf("path is outside of the archive root")
	}

	return name, nil
}

func (p *Provider) extractEntry(root *os.Root, f *zip.File) (int64, error) {
	name, err := entryName(f)
	if err != nil {
		return 0, err
	}

	mode := f.Mode()
	if mode.IsDir() {
		return 0, root.MkdirAll(name, 0755)
	}

	return p.extractFile(root, f, name, mode.Perm())
}

func (p *Provider) extractSymlink(root *os.Root, f *zip.File) error {
	name, err := entryName(f)
	if err != nil {
		return err
	}

	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	link, err := io.ReadAll(io.LimitReader(rc, 4096))
	if err != nil {
		return err
	}

	err = mkdirParent(root, name)
	if err != nil {
		return err
	}

	linkTarget := filepath.FromSlash(string(link))
	if filepath.IsAbs(linkTarget) || !linkStaysInside(root, name, linkTarget) {
		return fmt.Errorf("symlink target %q is outside of the archive root", link)
	}

	return root.Symlink(linkTarget, name)
}

// linkStaysInside resolves the parent of name followed by link one element at
// a time against what is on disk. A .. that follows a symlink or a missing
// element cannot be resolved without knowing where that element will point,
// so it is refused.
func linkStaysInside(root *os.Root, name string, link string) bool {
	sep := string(filepath.Separator)
	parts := append(strings.Split(filepath.Dir(name), sep), strings.Split(link, sep)...)

	var (
		cur        []string
		unresolved bool
	)

	for _, part := range parts {
		switch part {
		case "", ".":
		case "..":
			if unresolved || len(cur) == 0 {
				return false
			}
			cur = cur[:len(cur)-1]

		default:
			cur = append(cur, part)
			if unresolved {
				continue
			}

			stat, err := root.Lstat(filepath.Join(cur...))
			if err != nil || !stat.IsDir() {
				unresolved = true
			}
		}
	}

	return true
}

func mkdirParent(root *os.Root, name string) error {
	dir := filepath.Dir(name)
	if dir == "." {
		return nil
	}

	return root.MkdirAll(dir, 0755)
}

func (p *Provider) extractFile(root *os.Root, f *zip.File, name string, perm fs.FileMode) (int64, error) {
	if perm == 0 {
		perm = 0644
	}

	err := mkdirParent(root, name)
	if err != nil {
		return 0, err
	}

	rc, err := f.Open()
	if err != nil {
		return 0, err
	}
	defer rc.Close()

	out, err := root.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm|0600)
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(out, rc)
	if err != nil {
		out.Close()
		return n, err
	}

	return n, out.Close()
}
