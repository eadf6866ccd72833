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

package optimize

import (
	"skim.dev/go/langsyntax"
	"skim.dev/go/policy"
	"skim.dev/go/segment"
)

// ImportOptimizer implements §4.4. Each contiguous import group is
// optimized independently so a group's "N imports omitted" marker — when
// summarize is requested — lies in the same position as the original
// block; a group whose label survives stays even when every one of its
// imports is elided.
type ImportOptimizer struct{}

func (ImportOptimizer) Name() string { return "import-optimizer" }

func (ImportOptimizer) Run(file *segment.SourceFile, p policy.Policy, _ langsyntax.Adapter) Outcome {
	if p.Imports == policy.ImportsKeepAll {
		return Ok(file)
	}
	out := &segment.SourceFile{Name: file.Name}
	for _, s := range file.Segments {
		im, ok := s.(*segment.Import)
		if !ok {
			out.Segments = append(out.Segments, s)
			continue
		}
		kept, droppedCount, droppedLines := filterImportItems(im, p.Imports)
		if droppedCount == 0 {
			out.Segments = append(out.Segments, im)
			continue
		}
		if len(kept) > 0 || im.GroupLabel != "" {
			out.Segments = append(out.Segments, segment.NewImport(im.GroupLabel, kept, im.Lines()-droppedLines))
		}
		if p.ImportsSummarize {
			out.Segments = append(out.Segments, segment.NewElision(importsElisionText(droppedCount, droppedLines), droppedLines))
		}
		// Without summarize, a group with nothing kept and no label
		// simply disappears: §4.4 only promises a marker when summarize
		// is requested.
	}
	return Ok(out)
}

// filterImportItems drops items per ip and reports how many, and how many
// source lines they accounted for. Each item is assumed to occupy one
// physical line — true of gofmt's own per-import-path layout, which is
// what the segmenter expects as input (path-grouped multi-name imports,
// §4.4's "count as one import... but contribute their full line count",
// aren't produced by gofmt and so aren't modeled here).
func filterImportItems(im *segment.Import, ip policy.ImportPolicy) (kept []segment.ImportItem, droppedCount, droppedLines int) {
	for _, it := range im.Items {
		drop := ip == policy.ImportsStripAll || (ip == policy.ImportsStripExternal && it.IsExternal)
		if drop {
			droppedCount++
			droppedLines++
			continue
		}
		kept = append(kept, it)
	}
	return kept, droppedCount, droppedLines
}
