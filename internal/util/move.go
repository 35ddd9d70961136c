// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package util

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"syscall"
)

// MoveDirectory renames src to dst. When they are on different volumes src is copied
// into a staging directory next to dst which is then renamed, so dst only ever appears complete.
func MoveDirectory(src string, dst string) error {
	err := os.Rename(src, dst)
	if err == nil || !errors.Is(err, syscall.EXDEV) {
		return err
	}

	staging, err := os.MkdirTemp(filepath.Dir(dst), fmt.Sprintf(".%s-*", filepath.Base(dst)))
	if err != nil {
		return err
	}

	err = os.CopyFS(staging, os.DirFS(src))
	if err != nil {
		os.RemoveAll(staging)
		return fmt.Errorf("could not copy %s: %w", src, err)
	}

	err = os.Rename(staging, dst)
	if err != nil {
		os.RemoveAll(staging)
		return err
	}

	// the copy is in place, a left over source is scratch
	RemoveAllBestEffort(src)

	return nil
}

// MoveFile renames src to dst, copying the content when a rename is not possible
func MoveFile(src string, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}

	err = CopyFile(src, dst)
	if err != nil {
		return err
	}

	// the copy is in place, a left over source is scratch
	RemoveBestEffort(src)

	return nil
}

// CopyFile copies the content of src into a new file dst
func CopyFile(src string, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}

	_, err = io.Copy(out, in)
	if err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}

	return out.Close()
}
