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
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/walteh/unsize/pkg/text"
)

// 🎨 Display configuration
const (
	fileIndent    = 4  // spaces to indent file entries
	previewIndent = 8  // spaces to indent match previews
	nameWidth     = 35 // Base width for filename
	countWidth    = 16 // Width for the replacement count
	statusWidth   = 15 // Width for status text

	// PreviewLimit is how many matches are shown per file
	PreviewLimit = 5
)

// 📊 FileStatus is the outcome of processing one file
type FileStatus int

const (
	StatusUnchanged FileStatus = iota // No size suffix found
	StatusModified                    // Rewritten on disk
	StatusDryRun                      // Would be rewritten
	StatusError                       // Processing failed
)

// String returns a string representation of FileStatus
func (s FileStatus) String() string {
	switch s {
	case StatusUnchanged:
		return "no changes"
	case StatusModified:
		return "modified"
	case StatusDryRun:
		return "would modify"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// 🎯 FileOperation represents the outcome of one file for logging
type FileOperation struct {
	Path    string       // File path
	Status  FileStatus   // Outcome
	Matches []text.Match // Rewritten occurrences, in source order
	Backup  string       // Backup location, if one was written
	Step    string       // Failing step, for StatusError
	Err     error        // Failure, for StatusError
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
}

// 🏭 New creates a new logger. Console lines go to console, structured
// records to zlog.
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

func pluralize(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// 📝 formatFileOperation formats a file operation for display
func (l *Logger) formatFileOperation(op FileOperation) string {
	var symbol rune
	var symbolColor color.Attribute
	switch op.Status {
	case StatusModified:
		symbol = '⟳'
		symbolColor = color.FgBlue
	case StatusDryRun:
		symbol = '~'
		symbolColor = color.FgYellow
	case StatusError:
		symbol = '✗'
		symbolColor = color.FgRed
	default:
		symbol = '•'
		symbolColor = color.FgCyan
	}

	count := ""
	if op.Status != StatusError {
		count = pluralize(len(op.Matches), "replacement")
	}

	statusText := op.Status.String()
	if op.Status == StatusError && op.Step != "" {
		statusText = "error: " + op.Step
	}

	return fmt.Sprintf("%s%s %s %s %s",
		strings.Repeat(" ", fileIndent),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, op.Path),
		color.New(color.Faint).Sprint(fmt.Sprintf("%-*s", countWidth, count)),
		color.New(symbolColor).Sprint(fmt.Sprintf("%-*s", statusWidth, statusText)))
}

// formatPreview lists the first PreviewLimit matches of op
func formatPreview(matches []text.Match) []string {
	lines := make([]string, 0, PreviewLimit+1)
	for i, m := range matches {
		if i == PreviewLimit {
			lines = append(lines, fmt.Sprintf("%s... and %d more",
				strings.Repeat(" ", previewIndent), len(matches)-PreviewLimit))
			break
		}
		lines = append(lines, fmt.Sprintf("%s%s %s %s %s",
			strings.Repeat(" ", previewIndent),
			color.RedString("%s", m.Text),
			color.New(color.Faint).Sprint("→"),
			color.GreenString("%s", m.Replacement),
			color.New(color.Faint).Sprintf("@%d", m.Offset)))
	}
	return lines
}

// 📝 LogFileOperation logs the outcome of one file
func (l *Logger) LogFileOperation(ctx context.Context, op FileOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintln(l.console, l.formatFileOperation(op))
	for _, line := range formatPreview(op.Matches) {
		fmt.Fprintln(l.console, line)
	}
	if op.Backup != "" {
		fmt.Fprintf(l.console, "%s%s %s\n",
			strings.Repeat(" ", previewIndent),
			color.New(color.Faint).Sprint("backup:"),
			op.Backup)
	}
	if op.Err != nil {
		fmt.Fprintf(l.console, "%s%s\n", strings.Repeat(" ", previewIndent), color.RedString("%v", op.Err))
	}

	var ev *zerolog.Event
	if op.Err != nil {
		ev = l.zlog.Error().Err(op.Err).Str("step", op.Step)
	} else {
		ev = l.zlog.Info()
	}
	ev.Str("file", op.Path).
		Str("status", op.Status.String()).
		Int("replacements", len(op.Matches)).
		Str("backup", op.Backup).
		Msg("file processed")
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("unsize")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
