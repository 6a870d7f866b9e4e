// Copyright 2026 valicast Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package split

import (
	"iter"

	"github.com/samber/lo"
	"go.uber.org/atomic"
)

// Split is a pair of ascending, disjoint index sets.
type Split struct {
	Train []int `json:"train"`
	Test  []int `json:"test"`
}

// Sequence lazily produces splits. A sequence can be ranged over once; later iterations yield
// nothing, like an exhausted generator.
type Sequence = iter.Seq[Split]

// Collect consumes a sequence and returns all its splits.
func Collect(seq Sequence) []Split {
	var splits []Split
	for s := range seq {
		splits = append(splits, s)
	}
	return splits
}

func newSequence(gen func(yield func(Split) bool)) Sequence {
	var consumed atomic.Bool
	return func(yield func(Split) bool) {
		if consumed.Swap(true) {
			return
		}
		gen(yield)
	}
}

// indexRange returns [begin, end).
func indexRange(begin, end int) []int {
	if end <= begin {
		return []int{}
	}
	return lo.RangeFrom(begin, end-begin)
}

// indicesWhere returns the positions of labels accepted by pred.
func indicesWhere(labels []int, pred func(label int) bool) []int {
	indices := make([]int, 0, len(labels))
	for i, label := range labels {
		if pred(label) {
			indices = append(indices, i)
		}
	}
	return indices
}
