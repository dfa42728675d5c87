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

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/unsize/pkg/discover"
	"gitlab.com/tozd/go/errors"
)

var (
	// ErrRootRequired is returned when no directory to scan was given
	ErrRootRequired = errors.Base("directory path is required")
	// ErrNotDirectory is returned when a path that must be a directory is not
	ErrNotDirectory = errors.Base("not a directory")
)

// 🔌 Parser is the interface for config file parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📚 Config describes a single run
type Config struct {
	Root    string   `yaml:"-"`                 // Directory to scan
	Backup  string   `yaml:"backup,omitempty"`  // Optional backup root
	DryRun  bool     `yaml:"dry_run,omitempty"` // Report only, touch nothing
	Diff    bool     `yaml:"diff,omitempty"`    // Print a diff for dry-run changes
	Exclude []string `yaml:"exclude,omitempty"` // Doublestar globs relative to Root
}

// 🎯 Load loads defaults from a config file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// 🔍 Validate checks the configuration against the filesystem. The root must
// be an existing directory; the backup root, when set and already present,
// must be a directory too.
func (cfg *Config) Validate() error {
	if cfg.Root == "" {
		return ErrRootRequired
	}
	cfg.Root = filepath.Clean(cfg.Root)

	info, err := os.Stat(cfg.Root)
	if err != nil {
		return errors.Errorf("checking directory %s: %w", cfg.Root, err)
	}
	if !info.IsDir() {
		return errors.Errorf("directory %s: %w", cfg.Root, ErrNotDirectory)
	}

	if cfg.Backup != "" {
		cfg.Backup = filepath.Clean(cfg.Backup)

		info, err := os.Stat(cfg.Backup)
		switch {
		case err == nil && !info.IsDir():
			return errors.Errorf("backup path %s: %w", cfg.Backup, ErrNotDirectory)
		case err != nil && !os.IsNotExist(err):
			return errors.Errorf("checking backup path %s: %w", cfg.Backup, err)
		}
	}

	if err := cfg.DiscoverOptions().Validate(); err != nil {
		return errors.Errorf("validating exclude patterns: %w", err)
	}

	return nil
}

// DiscoverOptions returns the walk options for this run. The backup root is
// always pruned so backups inside the scanned tree are never rewritten.
func (cfg *Config) DiscoverOptions() discover.Options {
	opts := discover.Options{Exclude: cfg.Exclude}
	if cfg.Backup != "" {
		opts.SkipDirs = []string{cfg.Backup}
	}
	return opts
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	s := cfg.Root
	if cfg.Backup != "" {
		s += fmt.Sprintf(" (backup: %s)", cfg.Backup)
	}
	if cfg.DryRun {
		s += " [dry run]"
	}
	return s
}
