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
	"testing"

	"github.com/juju/errors"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdjacentFolds(t *testing.T) {
	labels, err := AdjacentFolds(10, 4)
	assert.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0, 1, 1, 1, 2, 2, 3, 3}, labels)

	labels, err = AdjacentFolds(5, 5)
	assert.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, labels)

	labels, err = AdjacentFolds(3, 1)
	assert.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0}, labels)
}

func TestAdjacentFolds_Balanced(t *testing.T) {
	for n := 1; n <= 30; n++ {
		for nFolds := 1; nFolds <= n; nFolds++ {
			labels, err := AdjacentFolds(n, nFolds)
			require.NoError(t, err)
			require.Len(t, labels, n)
			counts := lo.CountValues(labels)
			assert.Len(t, counts, nFolds)
			sizes := lo.Values(counts)
			assert.LessOrEqual(t, lo.Max(sizes)-lo.Min(sizes), 1)
			for i := 1; i < n; i++ {
				assert.LessOrEqual(t, labels[i-1], labels[i])
			}
			assert.Equal(t, 0, labels[0])
			assert.Equal(t, nFolds-1, labels[n-1])
		}
	}
}

func TestAdjacentFolds_Invalid(t *testing.T) {
	for _, c := range []struct {
		n, nFolds int
		param     ParamName
	}{
		{10, 0, NFolds},
		{10, -1, NFolds},
		{10, 11, NFolds},
		{0, 1, TimeSeriesLength},
	} {
		_, err := AdjacentFolds(c.n, c.nFolds)
		var configErr *ConfigurationError
		if assert.True(t, errors.As(err, &configErr), "n=%d n_folds=%d", c.n, c.nFolds) {
			assert.Equal(t, c.param, configErr.Param)
		}
		assert.True(t, errors.Is(err, errors.NotValid))
	}
}
