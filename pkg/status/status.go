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

package status

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 💾 FileManager handles all file system operations of a run
type FileManager interface {
	// ReadFile returns the current content of path
	ReadFile(ctx context.Context, path string) ([]byte, error)

	// WriteFileAtomic replaces path with content, keeping its mode
	WriteFileAtomic(ctx context.Context, path string, content []byte) error

	// BackupFile copies path to its mirrored location and returns it
	BackupFile(ctx context.Context, path string) (string, error)

	// HasBackup reports whether a backup root is configured
	HasBackup() bool
}

// 🔧 Manager implements FileManager on the local filesystem
type Manager struct {
	backupRoot string // Empty when backups are disabled
	workDir    string // Base for mirrored backup paths
}

var _ FileManager = (*Manager)(nil)

// 🏭 NewManager creates a manager that mirrors backups relative to the
// current working directory. An empty backupRoot disables backups.
func NewManager(backupRoot string) (*Manager, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.Errorf("getting working directory: %w", err)
	}
	return NewManagerAt(backupRoot, wd), nil
}

// 🏭 NewManagerAt creates a manager that mirrors backups relative to workDir
func NewManagerAt(backupRoot, workDir string) *Manager {
	return &Manager{
		backupRoot: backupRoot,
		workDir:    workDir,
	}
}

func (m *Manager) HasBackup() bool {
	return m.backupRoot != ""
}

// EnsureBackupRoot creates the backup root if it does not exist yet
func (m *Manager) EnsureBackupRoot(ctx context.Context) error {
	if !m.HasBackup() {
		return nil
	}
	if err := os.MkdirAll(m.backupRoot, 0755); err != nil {
		return errors.Errorf("creating backup directory %s: %w", m.backupRoot, err)
	}
	zerolog.Ctx(ctx).Debug().Str("backup_root", m.backupRoot).Msg("backup directory ready")
	return nil
}

// 🔒 BackupPath returns where path is mirrored under the backup root
func (m *Manager) BackupPath(path string) string {
	abs := path
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(m.workDir, abs)
	}
	abs = filepath.Clean(abs)

	rel, err := filepath.Rel(m.workDir, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		rel = strings.TrimPrefix(abs, filepath.VolumeName(abs))
		rel = strings.TrimLeft(rel, string(filepath.Separator))
	}

	return filepath.Join(m.backupRoot, rel)
}

func (m *Manager) ReadFile(ctx context.Context, path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading file: %w", err)
	}
	return content, nil
}

func (m *Manager) BackupFile(ctx context.Context, path string) (string, error) {
	if !m.HasBackup() {
		return "", errors.Errorf("no backup directory configured")
	}

	dst := m.BackupPath(path)
	if err := CopyFile(path, dst); err != nil {
		return "", errors.Errorf("creating backup: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("file", path).Str("backup", dst).Msg("backed up file")
	return dst, nil
}

// WriteFileAtomic replaces the content of path via a temp file and rename in
// the same directory. A symlink is followed so the link stays in place and
// its target receives the new content.
func (m *Manager) WriteFileAtomic(ctx context.Context, path string, content []byte) error {
	if target, err := filepath.EvalSymlinks(path); err == nil && target != path {
		zerolog.Ctx(ctx).Debug().Str("file", path).Str("target", target).Msg("writing through symlink")
		path = target
	}

	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Errorf("creating temp file: %w", err)
	}
	tempPath := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tempPath)
		return errors.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		os.Remove(tempPath)
		return errors.Errorf("setting file mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("closing temp file: %w", err)
	}

	// Rename temp file to target (atomic operation)
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("renaming temp file: %w", err)
	}

	return nil
}

// CopyFile copies a file from src to dst, creating parent directories if
// needed and keeping the source file mode
func CopyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return errors.Errorf("opening source file: %w", err)
	}
	defer srcFile.Close()

	info, err := srcFile.Stat()
	if err != nil {
		return errors.Errorf("reading source file info: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return errors.Errorf("creating parent directories: %w", err)
	}

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return errors.Errorf("creating destination file: %w", err)
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		dstFile.Close()
		return errors.Errorf("copying file content: %w", err)
	}

	if err := dstFile.Close(); err != nil {
		return errors.Errorf("closing destination file: %w", err)
	}

	return nil
}
