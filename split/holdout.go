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
	"math"

	"github.com/juju/errors"
	"github.com/valicast/valicast/base"
	"github.com/valicast/valicast/base/log"
	"go.uber.org/zap"
)

// countOf converts a fraction of n into a count, rounding half to even.
func countOf(n int, fraction float64) int {
	return int(math.RoundToEven(float64(n) * fraction))
}

// Holdout trains on the first round(n*trainSize) indices and tests on the rest.
func Holdout(n int, trainSize float64) (Sequence, error) {
	if err := checkLength(MethodHoldout, n); err != nil {
		return nil, err
	}
	if err := validateParams(MethodHoldout, &holdoutParams{TrainSize: trainSize}); err != nil {
		return nil, errors.Trace(err)
	}
	cut := countOf(n, trainSize)
	log.Logger().Debug("holdout", zap.Int("n", n), zap.Int("cut_point", cut))
	return newSequence(func(yield func(Split) bool) {
		yield(Split{Train: indexRange(0, cut), Test: indexRange(cut, n)})
	}), nil
}

// InvHoldout tests on the first round(n*(1-trainSize)) indices and trains on the rest.
func InvHoldout(n int, trainSize float64) (Sequence, error) {
	if err := checkLength(MethodInvHoldout, n); err != nil {
		return nil, err
	}
	if err := validateParams(MethodInvHoldout, &holdoutParams{TrainSize: trainSize}); err != nil {
		return nil, errors.Trace(err)
	}
	cut := countOf(n, 1-trainSize)
	log.Logger().Debug("inverse holdout", zap.Int("n", n), zap.Int("cut_point", cut))
	return newSequence(func(yield func(Split) bool) {
		yield(Split{Train: indexRange(cut, n), Test: indexRange(0, cut)})
	}), nil
}

// RepHoldout draws nReps cut points uniformly, with replacement, from
// [round(n*trainSize), n-round(n*testSize)]. Each split trains on the round(n*trainSize)
// indices before the cut point and tests on the round(n*testSize) indices from it.
func RepHoldout(n, nReps int, trainSize, testSize float64, rng base.RandomGenerator) (Sequence, error) {
	if err := checkLength(MethodRepHoldout, n); err != nil {
		return nil, err
	}
	params := &repHoldoutParams{NReps: nReps, TrainSize: trainSize, TestSize: testSize}
	if err := validateParams(MethodRepHoldout, params); err != nil {
		return nil, errors.Trace(err)
	}
	if err := checkRandomGenerator(MethodRepHoldout, rng); err != nil {
		return nil, err
	}
	trainLength, testLength := countOf(n, trainSize), countOf(n, testSize)
	if trainLength+testLength > n {
		return nil, newConfigurationError(MethodRepHoldout, TestSize,
			"leaves no valid cut point: train length %d plus test length %d exceeds %d", trainLength, testLength, n)
	}
	validCutPoints := indexRange(trainLength, n-testLength+1)
	log.Logger().Debug("repeated holdout", zap.Int("n", n), zap.Int("n_reps", nReps),
		zap.Int("train_length", trainLength), zap.Int("test_length", testLength),
		zap.Int("valid_cut_points", len(validCutPoints)))
	return newSequence(func(yield func(Split) bool) {
		for rep := 0; rep < nReps; rep++ {
			cut := rng.Choice(validCutPoints)
			if !yield(Split{
				Train: indexRange(cut-trainLength, cut),
				Test:  indexRange(cut, cut+testLength),
			}) {
				return
			}
		}
	}), nil
}

func checkRandomGenerator(method Method, rng base.RandomGenerator) error {
	if rng.IsZero() {
		return newConfigurationError(method, "rng", "requires a seeded random generator")
	}
	return nil
}
