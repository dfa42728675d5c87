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

// Package text finds and strips image size suffixes from raw text.
package text

// Match is a single size suffix occurrence found in the source content
type Match struct {
	// Text is the matched fragment, e.g. "-1024x768.jpg"
	Text string

	// Replacement is what Text was replaced with, e.g. ".jpg"
	Replacement string

	// Offset is the byte offset of Text in the original content
	Offset int
}

// ReplacementResult contains the results of a rewrite
type ReplacementResult struct {
	// OriginalContent is the content before rewriting
	OriginalContent []byte

	// ModifiedContent is the content after rewriting; identical to
	// OriginalContent when there are no matches
	ModifiedContent []byte

	// Matches lists every rewritten occurrence, in source order
	Matches []Match
}

// WasModified reports whether any occurrence was rewritten
func (r *ReplacementResult) WasModified() bool {
	return len(r.Matches) > 0
}

// ReplacementCount is the number of rewritten occurrences
func (r *ReplacementResult) ReplacementCount() int {
	return len(r.Matches)
}

// TextReplacer rewrites content and reports what it changed
type TextReplacer interface {
	// Rewrite returns the rewritten content together with the matches it
	// rewrote. Content without matches comes back unchanged.
	Rewrite(content []byte) *ReplacementResult
}
