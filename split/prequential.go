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
	"github.com/juju/errors"
	"github.com/valicast/valicast/base/log"
	"go.uber.org/zap"
)

// PreqBlocks tests on fold f and trains on all folds before f, for f = 1 .. nFolds-1.
func PreqBlocks(n, nFolds int) (Sequence, error) {
	return prequentialBlocks(MethodPreqBlocks, n, nFolds, 1, func(label, fold int) bool {
		return label < fold
	})
}

// PreqSlidingBlocks tests on fold f and trains on fold f-1 only, for f = 1 .. nFolds-1.
func PreqSlidingBlocks(n, nFolds int) (Sequence, error) {
	return prequentialBlocks(MethodPreqSlidingBlocks, n, nFolds, 1, func(label, fold int) bool {
		return label == fold-1
	})
}

// PreqBlocksGap tests on fold f and trains on all folds before f-1, for f = 2 .. nFolds-1.
// Fold f-1 separates training from testing.
func PreqBlocksGap(n, nFolds int) (Sequence, error) {
	return prequentialBlocks(MethodPreqBlocksGap, n, nFolds, 2, func(label, fold int) bool {
		return label < fold-1
	})
}

func prequentialBlocks(method Method, n, nFolds, firstFold int, inTrain func(label, fold int) bool) (Sequence, error) {
	labels, err := foldLabels(method, n, &foldParams{NFolds: nFolds})
	if err != nil {
		return nil, errors.Trace(err)
	}
	log.Logger().Debug("prequential blocks", zap.String("method", string(method)),
		zap.Int("n", n), zap.Int("n_folds", nFolds))
	return newSequence(func(yield func(Split) bool) {
		for fold := firstFold; fold < nFolds; fold++ {
			if !yield(Split{
				Train: indicesWhere(labels, func(label int) bool { return inTrain(label, fold) }),
				Test:  indicesWhere(labels, func(label int) bool { return label == fold }),
			}) {
				return
			}
		}
	}), nil
}

// PreqSliding trains on a window of round(n*trainSize) indices before each cut point and tests
// on everything after it. At most nReps cut points are used.
func PreqSliding(n int, trainSize float64, nReps int) (Sequence, error) {
	return prequentialWindows(MethodPreqSliding, n, trainSize, nReps, func(cut, trainLength int) int {
		return cut - trainLength
	})
}

// PreqGrowing trains on every index before each cut point and tests on everything after it.
// Cut points are those of PreqSliding.
func PreqGrowing(n int, trainSize float64, nReps int) (Sequence, error) {
	return prequentialWindows(MethodPreqGrowing, n, trainSize, nReps, func(int, int) int {
		return 0
	})
}

func prequentialWindows(method Method, n int, trainSize float64, nReps int, trainBegin func(cut, trainLength int) int) (Sequence, error) {
	if err := checkLength(method, n); err != nil {
		return nil, err
	}
	if err := validateParams(method, &windowParams{TrainSize: trainSize, NReps: nReps}); err != nil {
		return nil, errors.Trace(err)
	}
	trainLength := countOf(n, trainSize)
	cutPoints := CutPoints(trainLength, n, nReps)
	log.Logger().Debug("prequential windows", zap.String("method", string(method)),
		zap.Int("n", n), zap.Int("train_length", trainLength), zap.Ints("cut_points", cutPoints))
	return newSequence(func(yield func(Split) bool) {
		for _, cut := range cutPoints {
			if !yield(Split{
				Train: indexRange(trainBegin(cut, trainLength), cut),
				Test:  indexRange(cut, n),
			}) {
				return
			}
		}
	}), nil
}

// CutPoints returns r = min(nReps, n-trainLength) strictly increasing cut points: the first r of
// r+1 evenly spaced points from trainLength to n, truncated to integers.
func CutPoints(trainLength, n, nReps int) []int {
	reps := min(nReps, n-trainLength)
	if reps <= 0 {
		return []int{}
	}
	step := float64(n-trainLength) / float64(reps)
	cutPoints := make([]int, reps)
	for i := range cutPoints {
		cutPoints[i] = int(float64(i)*step + float64(trainLength))
	}
	return cutPoints
}
