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

// AdjacentFolds labels each index of [0, n) with a fold id in [0, nFolds). Folds are contiguous
// and appear in increasing order. The first n%nFolds folds hold one extra index, e.g.
//
//	AdjacentFolds(10, 4) = [0 0 0 1 1 1 2 2 3 3]
func AdjacentFolds(n, nFolds int) ([]int, error) {
	return adjacentFolds("", n, nFolds)
}

func adjacentFolds(method Method, n, nFolds int) ([]int, error) {
	if err := checkLength(method, n); err != nil {
		return nil, err
	}
	if nFolds <= 0 || nFolds > n {
		return nil, newConfigurationError(method, NFolds, "must be in [1, %d], got %d", n, nFolds)
	}
	minFoldSize, maxFoldNum := n/nFolds, n%nFolds
	labels := make([]int, n)
	for fold, i := 0, 0; fold < nFolds; fold++ {
		foldSize := minFoldSize
		if fold < maxFoldNum {
			foldSize++
		}
		for end := i + foldSize; i < end; i++ {
			labels[i] = fold
		}
	}
	return labels, nil
}

func checkLength(method Method, n int) error {
	if n <= 0 {
		return newConfigurationError(method, TimeSeriesLength, "must be positive, got %d", n)
	}
	return nil
}
