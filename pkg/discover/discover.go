// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package discover finds the HTML files of a static export.
//
// Discover never logs and never aborts on an unreadable entry: every access
// failure is returned next to the paths so the caller decides how to report
// it.
package discover

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

// HTMLExtensions are the file extensions selected by Discover, lowercase with
// leading dot.
var HTMLExtensions = map[string]bool{
	".html": true,
	".htm":  true,
}

// 🚫 AccessError records an entry that could not be read during the walk
type AccessError struct {
	Path string
	Err  error
}

func (e AccessError) Error() string {
	return e.Path + ": " + e.Err.Error()
}

func (e AccessError) Unwrap() error {
	return e.Err
}

// 📦 Result is the outcome of a walk
type Result struct {
	// Files in depth-first, lexical directory-listing order
	Files []string
	// Errors for entries that were skipped because they could not be read
	Errors []AccessError
}

// 🔧 Options tune a walk
type Options struct {
	// Exclude holds doublestar patterns matched against the slash separated
	// path relative to the root. A matching directory is not descended into.
	Exclude []string
	// SkipDirs are directories pruned from the walk, e.g. a backup root
	// that lives inside the scanned tree.
	SkipDirs []string
}

// Validate checks that every exclude pattern is well formed
func (o Options) Validate() error {
	for _, pattern := range o.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("invalid exclude pattern %q", pattern)
		}
	}
	return nil
}

// 🔍 Discover walks root and returns every HTML file beneath it.
func Discover(root string, opts Options) Result {
	var res Result

	skip := make(map[string]bool, len(opts.SkipDirs))
	for _, dir := range opts.SkipDirs {
		if abs, err := filepath.Abs(dir); err == nil {
			skip[abs] = true
		}
	}

	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			res.Errors = append(res.Errors, AccessError{Path: path, Err: err})
			// an unreadable directory is reported once and its contents skipped
			if d != nil && d.IsDir() && path != root {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path == root {
				return nil
			}
			if abs, err := filepath.Abs(path); err == nil && skip[abs] {
				return filepath.SkipDir
			}
			if excluded(root, path, opts.Exclude) {
				return filepath.SkipDir
			}
			return nil
		}

		if !IsHTML(path) || excluded(root, path, opts.Exclude) {
			return nil
		}
		res.Files = append(res.Files, path)
		return nil
	})

	return res
}

// IsHTML reports whether path has an HTML extension, ignoring case
func IsHTML(path string) bool {
	return HTMLExtensions[strings.ToLower(filepath.Ext(path))]
}

func excluded(root, path string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}
