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
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// formatDiff returns the changed lines between before and after, removed
// lines prefixed with "-" and added lines with "+". Unchanged lines are
// omitted.
func formatDiff(before, after string) []string {
	dmp := diffmatchpatch.New()
	a, b, lineArray := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var lines []string
	for _, d := range diffs {
		var prefix string
		var c *color.Color
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix, c = "-", color.New(color.FgRed)
		case diffmatchpatch.DiffInsert:
			prefix, c = "+", color.New(color.FgGreen)
		default:
			continue
		}
		for _, line := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			lines = append(lines, c.Sprint(prefix+line))
		}
	}
	return lines
}

// 📝 Diff prints a line diff of a would-be rewrite
func (l *Logger) Diff(path string, before, after []byte) {
	lines := formatDiff(string(before), string(after))

	l.mu.Lock()
	defer l.mu.Unlock()

	indent := strings.Repeat(" ", previewIndent)
	fmt.Fprintf(l.console, "%s%s\n", indent, color.New(color.Faint).Sprint("--- "+path))
	fmt.Fprintf(l.console, "%s%s\n", indent, color.New(color.Faint).Sprint("+++ "+path))
	for _, line := range lines {
		fmt.Fprintf(l.console, "%s%s\n", indent, line)
	}
	l.zlog.Debug().Str("file", path).Int("diff_lines", len(lines)).Msg("printed diff")
}
