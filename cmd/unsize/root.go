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

package main

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/unsize/pkg/config"
	"github.com/walteh/unsize/pkg/log"
	"github.com/walteh/unsize/pkg/operation"
	"github.com/walteh/unsize/pkg/status"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/natefinch/lumberjack.v2"
)

// rootOpts holds the parsed command line
type rootOpts struct {
	configFile string
	backup     string
	dryRun     bool
	diff       bool
	debug      bool
	logFile    string
	exclude    []string
}

// run executes the command and maps the outcome to a process exit code.
// Per-file failures are part of a successful run; only startup errors exit 1.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stderr)
	// a nil slice would make cobra fall back to os.Args
	cmd.SetArgs(append([]string{}, args...))
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	// help wins over everything else on the line, including unknown flags
	if wantsHelp(args) {
		if err := cmd.Help(); err != nil {
			log.New(stderr, zerolog.Nop()).Error(err.Error())
			return 1
		}
		return 0
	}

	if err := cmd.ExecuteContext(ctx); err != nil {
		log.New(stderr, zerolog.Nop()).Error(err.Error())
		return 1
	}
	return 0
}

// wantsHelp reports whether -h or --help appears before any "--" terminator
func wantsHelp(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "--":
			return false
		case "-h", "--help":
			return true
		}
	}
	return false
}

func newRootCmd(stderr io.Writer) *cobra.Command {
	opts := &rootOpts{}

	cmd := &cobra.Command{
		Use:   "unsize <directory_path>",
		Short: "Strip WordPress image size suffixes from a static HTML export",
		Long: `unsize rewrites every HTML file under a directory so that image
references like photo-1024x768.jpg point at the original photo.jpg.

Files are rewritten in place. Use --backup to keep a copy of every file
before it is changed, or --dry-run to only report what would change.`,
		Example: `  unsize ./public
  unsize ./public --backup ./backup
  unsize ./public --dry-run --diff --exclude "wp-admin/**"`,
		Version:       versionString(),
		Args:          rootArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, closeLog := setupLogging(cmd.Context(), stderr, opts.debug, opts.logFile)
			defer closeLog()

			cfg, err := opts.config(ctx, cmd, args[0])
			if err != nil {
				return err
			}
			ctx = log.NewContext(ctx, log.New(cmd.OutOrStdout(), *zerolog.Ctx(ctx)))
			return execute(ctx, cfg)
		},
	}

	addRootFlags(cmd, opts)
	return cmd
}

// addRootFlags adds the command line flags
func addRootFlags(cmd *cobra.Command, opts *rootOpts) {
	cmd.Flags().StringVarP(&opts.configFile, "config", "c", "", "config file path (.yaml, .yml or .hcl)")
	cmd.Flags().StringVar(&opts.backup, "backup", "", "copy every file to this directory before modifying it")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "report what would change without writing anything")
	cmd.Flags().BoolVar(&opts.diff, "diff", false, "print a diff for each file that would change (with --dry-run)")
	cmd.Flags().BoolVarP(&opts.debug, "debug", "d", false, "enable debug logging")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "also write structured logs as JSON to this file (rotated)")
	cmd.Flags().StringArrayVar(&opts.exclude, "exclude", nil, "glob of paths to skip, relative to the directory (repeatable)")
}

func rootArgs(cmd *cobra.Command, args []string) error {
	switch {
	case len(args) == 0:
		return errors.Errorf("missing directory argument: %w", config.ErrRootRequired)
	case len(args) > 1:
		return errors.Errorf("expected one directory argument, got %d", len(args))
	}
	return nil
}

// setupLogging puts a zerolog logger writing to stderr on the context. With
// a log file, every record at the chosen level is also kept there as JSON.
func setupLogging(ctx context.Context, stderr io.Writer, debug bool, logFile string) (context.Context, func()) {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}

	var out io.Writer = zerolog.ConsoleWriter{Out: stderr, NoColor: true}
	closeLog := func() {}
	if logFile != "" {
		file := &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // MB
			MaxBackups: 2,
			MaxAge:     28, // days
		}
		out = zerolog.MultiLevelWriter(out, file)
		closeLog = func() { _ = file.Close() }
	}

	logger := zerolog.New(out).
		Level(level).
		With().Timestamp().Logger()
	return logger.WithContext(ctx), closeLog
}

// config builds the run configuration. Values from the config file are
// defaults; flags given on the command line take precedence.
func (o *rootOpts) config(ctx context.Context, cmd *cobra.Command, root string) (*config.Config, error) {
	cfg := &config.Config{}
	if o.configFile != "" {
		loaded, err := config.Load(ctx, o.configFile)
		if err != nil {
			return nil, errors.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	cfg.Root = root
	flags := cmd.Flags()
	if flags.Changed("backup") {
		cfg.Backup = o.backup
	}
	if flags.Changed("dry-run") {
		cfg.DryRun = o.dryRun
	}
	if flags.Changed("diff") {
		cfg.Diff = o.diff
	}
	cfg.Exclude = append(cfg.Exclude, o.exclude...)

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("invalid configuration: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("config", cfg.String()).Strs("exclude", cfg.Exclude).Msg("configuration loaded")
	return cfg, nil
}

// execute prepares the backup root and runs one pass
func execute(ctx context.Context, cfg *config.Config) error {
	mgr, err := status.NewManager(cfg.Backup)
	if err != nil {
		return errors.Errorf("creating file manager: %w", err)
	}

	if !cfg.DryRun {
		if err := mgr.EnsureBackupRoot(ctx); err != nil {
			return errors.Errorf("preparing backup root: %w", err)
		}
	}

	runner, err := operation.New(operation.Options{
		Config: cfg,
		Files:  mgr,
		Logger: log.FromContext(ctx),
	})
	if err != nil {
		return errors.Errorf("creating runner: %w", err)
	}

	runner.Run(ctx)
	return nil
}
