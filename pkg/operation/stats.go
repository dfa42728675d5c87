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

package operation

import (
	"github.com/walteh/unsize/pkg/log"
	"github.com/walteh/unsize/pkg/text"
)

// 📄 FileResult is the outcome of processing a single file
type FileResult struct {
	Path    string
	Status  log.FileStatus
	Matches []text.Match
	Backup  string // Backup location, set once the copy succeeded
	Step    string // Failing step: read, backup or write
	Err     error
}

// Operation converts the result for the console logger
func (r FileResult) Operation() log.FileOperation {
	return log.FileOperation{
		Path:    r.Path,
		Status:  r.Status,
		Matches: r.Matches,
		Backup:  r.Backup,
		Step:    r.Step,
		Err:     r.Err,
	}
}

// 📊 Stats tracks aggregate counters across a run. In dry-run mode the
// modified and replacement counters hold would-be values.
type Stats struct {
	FilesScanned   int
	FilesModified  int
	Replacements   int
	BackupsCreated int
	Errors         int
}

// Add returns s with the outcome of one file added
func (s Stats) Add(r FileResult) Stats {
	s.FilesScanned++
	if r.Backup != "" {
		s.BackupsCreated++
	}
	switch r.Status {
	case log.StatusModified, log.StatusDryRun:
		s.FilesModified++
		s.Replacements += len(r.Matches)
	case log.StatusError:
		s.Errors++
	}
	return s
}

// AddAccessErrors returns s with n discovery failures added
func (s Stats) AddAccessErrors(n int) Stats {
	s.Errors += n
	return s
}

// Summary converts the stats for the console logger
func (s Stats) Summary(dryRun, backupEnabled bool) log.Summary {
	return log.Summary{
		FilesScanned:   s.FilesScanned,
		FilesModified:  s.FilesModified,
		Replacements:   s.Replacements,
		BackupsCreated: s.BackupsCreated,
		Errors:         s.Errors,
		DryRun:         dryRun,
		BackupEnabled:  backupEnabled,
	}
}
