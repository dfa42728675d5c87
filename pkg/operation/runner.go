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
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/unsize/pkg/config"
	"github.com/walteh/unsize/pkg/discover"
	"github.com/walteh/unsize/pkg/log"
	"github.com/walteh/unsize/pkg/status"
	"github.com/walteh/unsize/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 🔧 Options contains the collaborators of a run
type Options struct {
	// Config is the validated run configuration
	Config *config.Config
	// Files performs every read, backup and write
	Files status.FileManager
	// Logger prints per-file lines and the summary
	Logger *log.Logger
	// Rewriter defaults to text.NewSuffixReplacer()
	Rewriter text.TextReplacer
}

// 🏃 Runner executes a single pass over the configured directory
type Runner struct {
	config   *config.Config
	files    status.FileManager
	logger   *log.Logger
	rewriter text.TextReplacer
}

// 🏭 New creates a runner with the given options
func New(opts Options) (*Runner, error) {
	if opts.Config == nil {
		return nil, errors.Errorf("config is required")
	}
	if opts.Files == nil {
		return nil, errors.Errorf("file manager is required")
	}
	if opts.Logger == nil {
		return nil, errors.Errorf("logger is required")
	}
	if opts.Rewriter == nil {
		opts.Rewriter = text.NewSuffixReplacer()
	}
	return &Runner{
		config:   opts.Config,
		files:    opts.Files,
		logger:   opts.Logger,
		rewriter: opts.Rewriter,
	}, nil
}

// 🏃 Run discovers, rewrites and reports every HTML file under the root.
// Per-file failures are counted in the returned stats, never returned.
func (r *Runner) Run(ctx context.Context) Stats {
	var stats Stats

	if r.config.DryRun {
		r.logger.Header("dry run: " + r.config.Root)
	} else {
		r.logger.Header("scanning " + r.config.Root)
	}

	found := discover.Discover(r.config.Root, r.config.DiscoverOptions())
	for _, aerr := range found.Errors {
		r.logger.Warningf("skipping %s: %v", aerr.Path, aerr.Err)
	}
	stats = stats.AddAccessErrors(len(found.Errors))

	zerolog.Ctx(ctx).Debug().
		Int("files", len(found.Files)).
		Int("access_errors", len(found.Errors)).
		Msg("discovery complete")

	if len(found.Files) == 0 {
		r.logger.Infof("no HTML files found under %s", r.config.Root)
	}

	for _, path := range found.Files {
		if ctx.Err() != nil {
			r.logger.Warning("interrupted, remaining files were not processed")
			break
		}

		res := r.processFile(ctx, path)
		r.logger.LogFileOperation(ctx, res.Operation())
		stats = stats.Add(res)
	}

	r.logger.Summary(stats.Summary(r.config.DryRun, r.config.Backup != ""))
	if stats.Errors == 0 && ctx.Err() == nil {
		r.logger.Successf("processed %d files without errors", stats.FilesScanned)
	}
	return stats
}

// processFile handles one file: read → match → dry-run report, or backup → write
func (r *Runner) processFile(ctx context.Context, path string) FileResult {
	res := FileResult{Path: path}

	content, err := r.files.ReadFile(ctx, path)
	if err != nil {
		return res.fail("read", err)
	}

	result := r.rewriter.Rewrite(content)
	res.Matches = result.Matches

	// every occurrence in the input must be accounted for by a match
	occurrences := text.CountOccurrences(content)
	level := zerolog.DebugLevel
	if occurrences != result.ReplacementCount() {
		level = zerolog.WarnLevel
	}
	zerolog.Ctx(ctx).WithLevel(level).
		Str("file", path).
		Int("occurrences", occurrences).
		Int("matches", result.ReplacementCount()).
		Msg("match check")

	if !result.WasModified() {
		res.Status = log.StatusUnchanged
		return res
	}

	if r.config.DryRun {
		if r.config.Diff {
			r.logger.Diff(path, result.OriginalContent, result.ModifiedContent)
		}
		res.Status = log.StatusDryRun
		return res
	}

	if r.files.HasBackup() {
		backup, err := r.files.BackupFile(ctx, path)
		if err != nil {
			return res.fail("backup", err)
		}
		res.Backup = backup
	}

	if err := r.files.WriteFileAtomic(ctx, path, result.ModifiedContent); err != nil {
		return res.fail("write", err)
	}

	res.Status = log.StatusModified
	return res
}

func (r FileResult) fail(step string, err error) FileResult {
	r.Status = log.StatusError
	r.Step = step
	r.Err = err
	return r
}
