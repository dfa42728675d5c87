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

package discover

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// 🧪 writeTree creates files (and their parent directories) under root
func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755), "creating parent of %s", f)
		require.NoError(t, os.WriteFile(path, []byte("<html></html>"), 0644), "writing %s", f)
	}
}

func rel(t *testing.T, root string, paths []string) []string {
	t.Helper()
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		r, err := filepath.Rel(root, p)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(r))
	}
	return out
}

func TestDiscover(t *testing.T) {
	tests := []struct {
		name  string
		files []string
		opts  func(root string) Options
		want  []string
	}{
		{
			name:  "flat",
			files: []string{"index.html", "about.html", "style.css", "app.js"},
			want:  []string{"about.html", "index.html"},
		},
		{
			name:  "nested_depth_first",
			files: []string{"z.html", "a/b/c.html", "a/a.html", "b/index.htm"},
			want:  []string{"a/a.html", "a/b/c.html", "b/index.htm", "z.html"},
		},
		{
			name:  "case_insensitive_extension",
			files: []string{"UPPER.HTML", "Mixed.Html", "page.HTM", "image.png"},
			want:  []string{"Mixed.Html", "UPPER.HTML", "page.HTM"},
		},
		{
			name:  "exclude_directory",
			files: []string{"index.html", "drafts/one.html", "drafts/deep/two.html", "posts/three.html"},
			opts: func(string) Options {
				return Options{Exclude: []string{"drafts"}}
			},
			want: []string{"index.html", "posts/three.html"},
		},
		{
			name:  "exclude_file_glob",
			files: []string{"index.html", "amp/index.html", "feed/index.html"},
			opts: func(string) Options {
				return Options{Exclude: []string{"**/amp/*.html"}}
			},
			want: []string{"feed/index.html", "index.html"},
		},
		{
			name:  "skip_dirs",
			files: []string{"index.html", ".backup/index.html"},
			opts: func(root string) Options {
				return Options{SkipDirs: []string{filepath.Join(root, ".backup")}}
			},
			want: []string{"index.html"},
		},
		{
			name:  "no_html",
			files: []string{"a.txt", "b/c.css"},
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeTree(t, root, tt.files...)

			var opts Options
			if tt.opts != nil {
				opts = tt.opts(root)
			}

			res := Discover(root, opts)
			assert.Empty(t, res.Errors, "no access errors expected")
			if tt.want == nil {
				assert.Empty(t, res.Files)
				return
			}
			assert.Equal(t, tt.want, rel(t, root, res.Files))
		})
	}
}

func TestDiscover_DanglingSymlinkIsListed(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a.html", "c.html")
	require.NoError(t, os.Symlink(filepath.Join(root, "missing.html"), filepath.Join(root, "b.html")))

	res := Discover(root, Options{})
	assert.Empty(t, res.Errors)
	assert.Equal(t, []string{"a.html", "b.html", "c.html"}, rel(t, root, res.Files))
}

func TestDiscover_MissingRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nope")

	res := Discover(root, Options{})
	assert.Empty(t, res.Files)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, root, res.Errors[0].Path)
	assert.ErrorIs(t, res.Errors[0], fs.ErrNotExist)
	assert.Contains(t, res.Errors[0].Error(), root)
}

func TestOptions_Validate(t *testing.T) {
	assert.NoError(t, Options{Exclude: []string{"**/*.html", "drafts"}}.Validate())

	err := Options{Exclude: []string{"[unclosed"}}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid exclude pattern")
}

func TestIsHTML(t *testing.T) {
	assert.True(t, IsHTML("a/b/index.html"))
	assert.True(t, IsHTML("INDEX.HTM"))
	assert.False(t, IsHTML("index.html.bak"))
	assert.False(t, IsHTML("html"))
}
