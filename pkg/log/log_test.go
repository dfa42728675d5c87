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
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/unsize/pkg/text"
	"gitlab.com/tozd/go/errors"
)

func disableColor(t *testing.T) {
	color.NoColor = true
	pterm.DisableColor()
	t.Cleanup(func() {
		color.NoColor = false
		pterm.EnableColor()
	})
}

func outputLines(buf *bytes.Buffer) []string {
	output := strings.TrimSpace(buf.String())
	lines := strings.Split(output, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	return lines
}

func matches(n int) []text.Match {
	out := make([]text.Match, n)
	for i := range out {
		out[i] = text.Match{Text: "-10x10.png", Replacement: ".png", Offset: i * 20}
	}
	return out
}

func TestLogger(t *testing.T) {
	disableColor(t)

	tests := []struct {
		name     string
		op       func(t *testing.T, logger *Logger)
		wantLogs []string
	}{
		{
			name: "log_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Info("info message")
				logger.Warning("warning message")
				logger.Error("error message")
				logger.Success("success message")
			},
			wantLogs: []string{
				"ℹ️  info message",
				"⚠️  warning message",
				"❌ error message",
				"✅ success message",
			},
		},
		{
			name: "log_formatted_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Infof("info %s", "test")
				logger.Warningf("warning %s", "test")
				logger.Successf("success %s", "test")
			},
			wantLogs: []string{
				"ℹ️  info test",
				"⚠️  warning test",
				"✅ success test",
			},
		},
		{
			name: "log_header",
			op: func(t *testing.T, logger *Logger) {
				logger.Header("scanning public")
			},
			wantLogs: []string{
				"unsize • scanning public",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := New(buf, zerolog.Nop())

			tt.op(t, logger)

			lines := outputLines(buf)
			require.Equal(t, len(tt.wantLogs), len(lines), "number of log lines should match")
			for i, want := range tt.wantLogs {
				assert.Equal(t, want, lines[i], "log line %d should match", i)
			}
		})
	}
}

func TestLoggerContext(t *testing.T) {
	logger := New(io.Discard, zerolog.Nop())

	ctx := NewContext(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx), "logger from context should be the same instance")

	assert.Panics(t, func() {
		FromContext(context.Background())
	}, "FromContext should panic when logger is missing")
}

func TestFileOperationFormatting(t *testing.T) {
	disableColor(t)

	tests := []struct {
		name string
		op   FileOperation
		want []string
	}{
		{
			name: "unchanged",
			op:   FileOperation{Path: "index.html", Status: StatusUnchanged},
			want: []string{
				"• index.html                          0 replacements   no changes",
			},
		},
		{
			name: "modified_with_backup",
			op: FileOperation{
				Path:    "index.html",
				Status:  StatusModified,
				Matches: []text.Match{{Text: "-1024x768.jpg", Replacement: ".jpg", Offset: 15}},
				Backup:  "/bk/index.html",
			},
			want: []string{
				"⟳ index.html                          1 replacement    modified",
				"-1024x768.jpg → .jpg @15",
				"backup: /bk/index.html",
			},
		},
		{
			name: "dry_run",
			op: FileOperation{
				Path:    "about.html",
				Status:  StatusDryRun,
				Matches: matches(2),
			},
			want: []string{
				"~ about.html                          2 replacements   would modify",
				"-10x10.png → .png @0",
				"-10x10.png → .png @20",
			},
		},
		{
			name: "error",
			op: FileOperation{
				Path:   "broken.html",
				Status: StatusError,
				Step:   "read",
				Err:    errors.New("permission denied"),
			},
			want: []string{
				"✗ broken.html                                          error: read",
				"permission denied",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := New(buf, zerolog.Nop())

			logger.LogFileOperation(context.Background(), tt.op)

			assert.Equal(t, tt.want, outputLines(buf))
		})
	}
}

func TestPreviewTruncation(t *testing.T) {
	disableColor(t)

	buf := &bytes.Buffer{}
	logger := New(buf, zerolog.Nop())
	logger.LogFileOperation(context.Background(), FileOperation{
		Path:    "gallery.html",
		Status:  StatusModified,
		Matches: matches(PreviewLimit + 3),
	})

	lines := outputLines(buf)
	require.Len(t, lines, 1+PreviewLimit+1, "header, previews and truncation line")
	assert.Contains(t, lines[0], "8 replacements")
	assert.Equal(t, "... and 3 more", lines[len(lines)-1])
}

func TestPreviewExactlyAtLimit(t *testing.T) {
	assert.Len(t, formatPreview(matches(PreviewLimit)), PreviewLimit, "no truncation line at the limit")
	assert.Empty(t, formatPreview(nil))
}

func TestSummary(t *testing.T) {
	disableColor(t)

	tests := []struct {
		name    string
		summary Summary
		want    map[string]string
		absent  []string
	}{
		{
			name: "with_backups",
			summary: Summary{
				FilesScanned:   3,
				FilesModified:  2,
				Replacements:   7,
				BackupsCreated: 2,
				Errors:         1,
				BackupEnabled:  true,
			},
			want: map[string]string{
				"Files scanned":      "3",
				"Files modified":     "2",
				"Total replacements": "7",
				"Backups created":    "2",
				"Errors":             "1",
			},
		},
		{
			name:    "without_backups",
			summary: Summary{FilesScanned: 1},
			want: map[string]string{
				"Files scanned": "1",
				"Errors":        "0",
			},
			absent: []string{"Backups created"},
		},
		{
			name:    "dry_run",
			summary: Summary{FilesScanned: 1, FilesModified: 1, Replacements: 2, DryRun: true},
			want: map[string]string{
				"Files that would be modified":    "1",
				"Replacements that would be made": "2",
			},
			absent: []string{"Total replacements"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := New(buf, zerolog.Nop())

			logger.Summary(tt.summary)

			lines := outputLines(buf)
			for label, value := range tt.want {
				found := false
				for _, line := range lines {
					if strings.HasPrefix(line, label) && strings.HasSuffix(line, " "+value) {
						found = true
						break
					}
				}
				assert.True(t, found, "summary should have %q = %s:\n%s", label, value, buf.String())
			}
			for _, label := range tt.absent {
				assert.NotContains(t, buf.String(), label)
			}
		})
	}
}

func TestDiff(t *testing.T) {
	disableColor(t)

	before := "<html>\n<img src=\"p-1x1.jpg\">\n<p>same</p>\n<img src=\"q-2x2.png\">\n</html>\n"
	after := "<html>\n<img src=\"p.jpg\">\n<p>same</p>\n<img src=\"q.png\">\n</html>\n"

	assert.Equal(t, []string{
		`-<img src="p-1x1.jpg">`,
		`+<img src="p.jpg">`,
		`-<img src="q-2x2.png">`,
		`+<img src="q.png">`,
	}, formatDiff(before, after))

	buf := &bytes.Buffer{}
	New(buf, zerolog.Nop()).Diff("index.html", []byte(before), []byte(after))
	lines := outputLines(buf)
	require.Len(t, lines, 6)
	assert.Equal(t, "--- index.html", lines[0])
	assert.Equal(t, "+++ index.html", lines[1])
}

func TestFileStatusString(t *testing.T) {
	assert.Equal(t, "no changes", StatusUnchanged.String())
	assert.Equal(t, "modified", StatusModified.String())
	assert.Equal(t, "would modify", StatusDryRun.String())
	assert.Equal(t, "error", StatusError.String())
	assert.Equal(t, "unknown", FileStatus(42).String())
}
