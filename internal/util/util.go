// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package util

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"golang.org/x/term"
)

// ExecutableInPath finds command name in path
func ExecutableInPath(file string) (string, bool, error) {
	f, err := exec.LookPath(file)

	return f, err == nil, err
}

func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func IsDirectory(path string) bool {
	stat, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return false
	}
	if stat == nil {
		return false
	}

	return stat.IsDir()
}

// IsTerminal determines if stdout is a terminal
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// RemoveBestEffort removes a single file or empty directory, it returns true when
// path no longer exists afterward. Callers use it where failure is intentionally
// ignored and should say so at the call site.
func RemoveBestEffort(path string) bool {
	if path == "" {
		return true
	}

	err := os.Remove(path)
	return err == nil || errors.Is(err, os.ErrNotExist)
}

// RemoveAllBestEffort removes path and everything below it, it returns true when
// path no longer exists afterward. Callers use it where failure is intentionally
// ignored and should say so at the call site.
func RemoveAllBestEffort(path string) bool {
	if path == "" {
		return true
	}

	return os.RemoveAll(path) == nil
}

// IsValidFileName is true when name can be used as a single path element below a directory
func IsValidFileName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}

	if strings.ContainsAny(name, `/\`) {
		return false
	}

	return filepath.IsLocal(name)
}
