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

package text

import (
	"bytes"
	"regexp"
)

// ImageExtensions are the extensions a size suffix must be followed by.
// Matching is case-insensitive.
var ImageExtensions = []string{"jpg", "jpeg", "png", "gif", "webp", "svg", "bmp", "tiff"}

// sizeSuffix matches one or more chained "-<w>x<h>" tokens directly in front
// of an image extension. Group 1 is the extension including its dot.
//
// Chained tokens are consumed as one occurrence so the output never contains
// a suffix that only became adjacent to the extension after rewriting.
var sizeSuffix = regexp.MustCompile(`(?:-[0-9]+x[0-9]+)+(\.(?i:jpeg|jpg|png|gif|webp|svg|bmp|tiff))`)

// SuffixReplacer strips size suffixes from image references
type SuffixReplacer struct{}

var _ TextReplacer = (*SuffixReplacer)(nil)

// 🏭 NewSuffixReplacer creates a new SuffixReplacer
func NewSuffixReplacer() *SuffixReplacer {
	return &SuffixReplacer{}
}

// Rewrite strips every size suffix from content in a single left-to-right
// scan. The returned matches are taken from the same scan that builds the
// modified content.
func (r *SuffixReplacer) Rewrite(content []byte) *ReplacementResult {
	result := &ReplacementResult{
		OriginalContent: content,
		ModifiedContent: content,
	}

	locs := sizeSuffix.FindAllSubmatchIndex(content, -1)
	if len(locs) == 0 {
		return result
	}

	var buf bytes.Buffer
	buf.Grow(len(content))

	last := 0
	result.Matches = make([]Match, 0, len(locs))
	for _, loc := range locs {
		start, end := loc[0], loc[1]
		ext := content[loc[2]:loc[3]]

		buf.Write(content[last:start])
		buf.Write(ext)
		last = end

		result.Matches = append(result.Matches, Match{
			Text:        string(content[start:end]),
			Replacement: string(ext),
			Offset:      start,
		})
	}
	buf.Write(content[last:])

	result.ModifiedContent = buf.Bytes()
	return result
}

// 🔍 CountOccurrences returns how many size suffix occurrences content holds
func CountOccurrences(content []byte) int {
	return len(sizeSuffix.FindAllIndex(content, -1))
}
