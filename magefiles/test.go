// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const coverProfile = "coverage.out"

// Test groups test targets.
type Test mg.Namespace

// All runs every test with the race detector.
func (Test) All() error {
	return sh.RunV(binGo, "test", "-race", "./...")
}

// Short runs the library packages only, skipping the CLI and the
// transcript store.
func (Test) Short() error {
	pkgs, err := sh.Output(binGo, "list", "./pkg/...")
	if err != nil {
		return err
	}
	var libPkgs []string
	for pkg := range strings.SplitSeq(pkgs, "\n") {
		if pkg != "" {
			libPkgs = append(libPkgs, pkg)
		}
	}
	if len(libPkgs) == 0 {
		fmt.Println("No library packages found.")
		return nil
	}
	args := append([]string{"test"}, libPkgs...)
	return sh.RunV(binGo, args...)
}

// Cover runs every test and prints per-function coverage.
func (Test) Cover() error {
	if err := sh.RunV(binGo, "test", "-coverprofile="+coverProfile, "./..."); err != nil {
		return err
	}
	return sh.RunV(binGo, "tool", "cover", "-func="+coverProfile)
}
