// Copyright 2026 valicast Project Authors
// Copyright 2026 gorse Project Authors
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

package base

import "math/rand"

// RandomGenerator is the random source of randomized validation schemes. It is always created
// from an explicit seed so that two generators with the same seed draw the same values.
type RandomGenerator struct {
	*rand.Rand
}

// NewRandomGenerator creates a RandomGenerator.
func NewRandomGenerator(seed int64) RandomGenerator {
	return RandomGenerator{rand.New(rand.NewSource(seed))}
}

// IsZero returns true if the generator has no underlying source.
func (rng RandomGenerator) IsZero() bool {
	return rng.Rand == nil
}

// Choice draws one element from values uniformly. It panics if values is empty.
func (rng RandomGenerator) Choice(values []int) int {
	return values[rng.Intn(len(values))]
}

// Permute returns a copy of values in random order.
func (rng RandomGenerator) Permute(values []int) []int {
	perm := rng.Perm(len(values))
	ret := make([]int, len(values))
	for i, j := range perm {
		ret[i] = values[j]
	}
	return ret
}
