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

// PublicAPIFilter implements §4.2: when enabled, every private Decl is
// elided, adjacent private siblings of the same kind collapse into one
// marker, and a public container keeps its public children while its
// private children collapse the same way. It runs first in the fixed
// order (§4.7 step 1) so every later pass measures only the surviving
// skeleton.
type PublicAPIFilter struct{}

func (PublicAPIFilter) Name() string { return "public-api-filter" }

func (PublicAPIFilter) Run(file *segment.SourceFile, p policy.Policy, _ langsyntax.Adapter) Outcome {
	if !p.PublicAPIOnly {
		return Ok(file)
	}
	out := &segment.SourceFile{Name: file.Name}
	segs := file.Segments

	i := 0
	for i < len(segs) {
		d, isDecl := segs[i].(*segment.Decl)
		if !isDecl || d.Kind == segment.KindModule {
			out.Segments = append(out.Segments, segs[i])
			i++
			continue
		}
		if d.Visibility == segment.Public {
			out.Segments = append(out.Segments, filterContainer(d))
			i++
			continue
		}

		j := i
		total := 0
		for j < len(segs) {
			dd, ok := segs[j].(*segment.Decl)
			if !ok || dd.Visibility != segment.Private || dd.Kind != d.Kind {
				break
			}
			total += dd.Lines()
			j++
		}
		count := j - i
		var text string
		if count == 1 {
			text = declElisionText(d.Kind, d.Lines(), d.HasBody)
		} else {
			text = collapsedDeclElisionText(d.Kind, count, total, d.HasBody)
		}
		out.Segments = append(out.Segments, segment.NewElision(text, total))
		i = j
	}
	return Ok(out)
}

// filterContainer elides d's private InnerItems (struct fields, interface
// methods), leaving d itself and its public children untouched (§4.2:
// "A public container retains its public children").
func filterContainer(d *segment.Decl) *segment.Decl {
	if len(d.InnerItems) == 0 {
		return d
	}
	nd := *d
	nd.InnerItems = elideInnerItems(d.InnerItems)
	return &nd
}

func elideInnerItems(items []*segment.Decl) []*segment.Decl {
	var out []*segment.Decl
	i := 0
	for i < len(items) {
		it := items[i]
		if it.Visibility == segment.Public {
			out = append(out, it)
			i++
			continue
		}
		j := i
		total := 0
		for j < len(items) && items[j].Visibility == segment.Private && items[j].Kind == it.Kind {
			total += items[j].Lines()
			j++
		}
		count := j - i
		var text string
		if count == 1 {
			text = declElisionText(it.Kind, it.Lines(), it.HasBody)
		} else {
			text = collapsedDeclElisionText(it.Kind, count, total, it.HasBody)
		}
		out = append(out, &segment.Decl{Kind: it.Kind, ElisionText: text})
		i = j
	}
	return out
}
