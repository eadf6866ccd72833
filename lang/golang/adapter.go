// Copyright 2018 The CUE Authors
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

// Package golang is the reference language adapter: it segments and
// classifies Go source text per the segmented-file model of skim.dev/go/segment,
// using Go's own rules for visibility (exported identifiers), comment
// syntax, and local-import detection.
package golang

import (
	"strings"

	"skim.dev/go/langsyntax"
)

// Adapter implements langsyntax.Adapter for Go source.
type Adapter struct {
	// ModulePrefixes holds the import path prefixes treated as local; no
	// other path is local. A caller building the adapter for a specific
	// module typically sets this to that module's own import path.
	ModulePrefixes []string
}

func New(modulePrefixes ...string) *Adapter {
	return &Adapter{ModulePrefixes: modulePrefixes}
}

func (a *Adapter) Name() string { return "go" }

func (a *Adapter) Comments() langsyntax.CommentSyntax {
	return langsyntax.CommentSyntax{
		Line:       "//",
		BlockOpen:  "/*",
		BlockClose: "*/",
		DocPrefix: func(line string) bool {
			return strings.HasPrefix(strings.TrimSpace(line), "//")
		},
	}
}

// IsLocalImport reports whether path should be considered part of the same
// project rather than an external dependency: it matches one of the
// adapter's configured module prefixes (the prefix itself, or a path under
// it). A path whose first component contains no dot, such as a
// standard-library import, is not local by this test.
func (a *Adapter) IsLocalImport(path string) bool {
	for _, p := range a.ModulePrefixes {
		if p != "" && (path == p || strings.HasPrefix(path, p+"/")) {
			return true
		}
	}
	return false
}

// isExported reports whether name follows Go's visibility rule: it starts
// with an uppercase Unicode letter.
func isExported(name string) bool {
	if name == "" {
		return false
	}
	r := []rune(name)[0]
	return r >= 'A' && r <= 'Z'
}
