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

package log

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
)

// 📊 Summary is the final tally of a run
type Summary struct {
	FilesScanned   int
	FilesModified  int
	Replacements   int
	BackupsCreated int
	Errors         int

	DryRun        bool // Modified counts are would-be counts
	BackupEnabled bool // Show the backup row
}

// rows returns the label/value pairs shown in the summary table
func (s Summary) rows() pterm.TableData {
	modified, replaced := "Files modified", "Total replacements"
	if s.DryRun {
		modified, replaced = "Files that would be modified", "Replacements that would be made"
	}

	rows := pterm.TableData{
		{"Files scanned", strconv.Itoa(s.FilesScanned)},
		{modified, strconv.Itoa(s.FilesModified)},
		{replaced, strconv.Itoa(s.Replacements)},
	}
	if s.BackupEnabled {
		rows = append(rows, []string{"Backups created", strconv.Itoa(s.BackupsCreated)})
	}
	rows = append(rows, []string{"Errors", strconv.Itoa(s.Errors)})
	return rows
}

// 📝 Summary prints the summary block
func (l *Logger) Summary(s Summary) {
	l.mu.Lock()
	defer l.mu.Unlock()

	title := "Summary"
	if s.DryRun {
		title = "Summary (dry run, no files were changed)"
	}
	fmt.Fprintf(l.console, "\n%s\n", color.New(color.Bold).Sprint(title))

	rows := s.rows()
	table, err := pterm.DefaultTable.WithData(rows).Srender()
	if err != nil {
		for _, row := range rows {
			fmt.Fprintf(l.console, "  %s: %s\n", row[0], row[1])
		}
	} else {
		fmt.Fprintln(l.console, table)
	}

	l.zlog.Info().
		Int("files_scanned", s.FilesScanned).
		Int("files_modified", s.FilesModified).
		Int("replacements", s.Replacements).
		Int("backups_created", s.BackupsCreated).
		Int("errors", s.Errors).
		Bool("dry_run", s.DryRun).
		Msg("run complete")
}
