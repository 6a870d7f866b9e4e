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
	"github.com/bits-and-blooms/bitset"
	"github.com/juju/errors"
	"github.com/valicast/valicast/base"
	"github.com/valicast/valicast/base/log"
	"go.uber.org/zap"
)

// CVOption changes how randomized cross-validation assigns folds.
type CVOption func(*cvOptions)

type cvOptions struct {
	shuffleIndices bool
}

// WithShuffledIndices permutes the fold label of every index instead of permuting whole folds.
// Test folds are then scattered over the series rather than contiguous blocks.
func WithShuffledIndices(shuffle bool) CVOption {
	return func(o *cvOptions) {
		o.shuffleIndices = shuffle
	}
}

// CV is k-fold cross-validation over adjacent folds whose labels are randomly permuted, so
// that blocks are tested in random order.
func CV(n, nFolds int, rng base.RandomGenerator, opts ...CVOption) (Sequence, error) {
	labels, err := foldLabels(MethodCV, n, &shuffledFoldParams{NFolds: nFolds})
	if err != nil {
		return nil, errors.Trace(err)
	}
	if err = checkRandomGenerator(MethodCV, rng); err != nil {
		return nil, err
	}
	options := newCVOptions(opts)
	log.Logger().Debug("cross-validation", zap.Int("n", n), zap.Int("n_folds", nFolds),
		zap.Bool("shuffle_indices", options.shuffleIndices))
	return newSequence(func(yield func(Split) bool) {
		crossValidate(permuteFolds(labels, nFolds, rng, options), nFolds, yield)
	}), nil
}

// CVBlocked is k-fold cross-validation over adjacent folds in temporal order.
func CVBlocked(n, nFolds int) (Sequence, error) {
	labels, err := foldLabels(MethodCVBlocked, n, &foldParams{NFolds: nFolds})
	if err != nil {
		return nil, errors.Trace(err)
	}
	log.Logger().Debug("blocked cross-validation", zap.Int("n", n), zap.Int("n_folds", nFolds))
	return newSequence(func(yield func(Split) bool) {
		crossValidate(labels, nFolds, yield)
	}), nil
}

// CVModified is CV where an index is dropped from training if the test fold appears within
// gapBefore indices before it or gapAfter indices after it.
func CVModified(n, nFolds, gapBefore, gapAfter int, rng base.RandomGenerator, opts ...CVOption) (Sequence, error) {
	labels, err := foldLabels(MethodCVModified, n, &gapFoldParams{NFolds: nFolds, GapBefore: gapBefore, GapAfter: gapAfter})
	if err != nil {
		return nil, errors.Trace(err)
	}
	if err = checkRandomGenerator(MethodCVModified, rng); err != nil {
		return nil, err
	}
	options := newCVOptions(opts)
	log.Logger().Debug("modified cross-validation", zap.Int("n", n), zap.Int("n_folds", nFolds),
		zap.Int("gap_before", gapBefore), zap.Int("gap_after", gapAfter),
		zap.Bool("shuffle_indices", options.shuffleIndices))
	return newSequence(func(yield func(Split) bool) {
		crossValidateWithGap(permuteFolds(labels, nFolds, rng, options), nFolds, gapBefore, gapAfter, yield)
	}), nil
}

// CVHVBlocked is CVBlocked with the gap exclusion of CVModified.
func CVHVBlocked(n, nFolds, gapBefore, gapAfter int) (Sequence, error) {
	labels, err := foldLabels(MethodCVHVBlocked, n, &gapFoldParams{NFolds: nFolds, GapBefore: gapBefore, GapAfter: gapAfter})
	if err != nil {
		return nil, errors.Trace(err)
	}
	log.Logger().Debug("hv-blocked cross-validation", zap.Int("n", n), zap.Int("n_folds", nFolds),
		zap.Int("gap_before", gapBefore), zap.Int("gap_after", gapAfter))
	return newSequence(func(yield func(Split) bool) {
		crossValidateWithGap(labels, nFolds, gapBefore, gapAfter, yield)
	}), nil
}

func newCVOptions(opts []CVOption) cvOptions {
	var options cvOptions
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

// foldLabels validates params and builds the adjacent fold assignment.
func foldLabels(method Method, n int, params any) ([]int, error) {
	if err := checkLength(method, n); err != nil {
		return nil, err
	}
	if err := validateParams(method, params); err != nil {
		return nil, errors.Trace(err)
	}
	var nFolds int
	switch p := params.(type) {
	case *foldParams:
		nFolds = p.NFolds
	case *shuffledFoldParams:
		nFolds = p.NFolds
	case *gapFoldParams:
		nFolds = p.NFolds
	}
	return adjacentFolds(method, n, nFolds)
}

// permuteFolds relabels folds by a random permutation, or shuffles labels across indices.
func permuteFolds(labels []int, nFolds int, rng base.RandomGenerator, options cvOptions) []int {
	if options.shuffleIndices {
		return rng.Permute(labels)
	}
	perm := rng.Perm(nFolds)
	permuted := make([]int, len(labels))
	for i, label := range labels {
		permuted[i] = perm[label]
	}
	return permuted
}

func crossValidate(labels []int, nFolds int, yield func(Split) bool) {
	for fold := 0; fold < nFolds; fold++ {
		if !yield(Split{
			Train: indicesWhere(labels, func(label int) bool { return label != fold }),
			Test:  indicesWhere(labels, func(label int) bool { return label == fold }),
		}) {
			return
		}
	}
}

func crossValidateWithGap(labels []int, nFolds, gapBefore, gapAfter int, yield func(Split) bool) {
	n := len(labels)
	for fold := 0; fold < nFolds; fold++ {
		// index i is excluded if the test fold appears in labels[i-gapBefore : i+gapAfter],
		// i.e. if some test index j satisfies j-gapAfter <= i <= j+gapBefore
		excluded := bitset.New(uint(n))
		test := indicesWhere(labels, func(label int) bool { return label == fold })
		for _, j := range test {
			for i := max(j-gapAfter, 0); i <= min(j+gapBefore, n-1); i++ {
				excluded.Set(uint(i))
			}
		}
		train := make([]int, 0, n-int(excluded.Count()))
		for i := 0; i < n; i++ {
			if !excluded.Test(uint(i)) {
				train = append(train, i)
			}
		}
		if !yield(Split{Train: train, Test: test}) {
			return
		}
	}
}
