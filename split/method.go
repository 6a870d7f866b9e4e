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
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/juju/errors"
	"github.com/samber/lo"
	"github.com/valicast/valicast/base"
	"github.com/valicast/valicast/base/log"
	"go.uber.org/zap"
)

// Method identifies a validation scheme.
type Method string

const (
	MethodHoldout           Method = "holdout"
	MethodInvHoldout        Method = "inv_holdout"
	MethodRepHoldout        Method = "rep_holdout"
	MethodCV                Method = "cv"
	MethodCVBlocked         Method = "cv_bl"
	MethodCVModified        Method = "cv_mod"
	MethodCVHVBlocked       Method = "cv_hvbl"
	MethodPreqBlocks        Method = "preq_bls"
	MethodPreqSlidingBlocks Method = "preq_sld_bls"
	MethodPreqBlocksGap     Method = "preq_bls_gap"
	MethodPreqSliding       Method = "preq_slide"
	MethodPreqGrowing       Method = "preq_grow"
)

// MethodInfo describes the parameters accepted by a method.
type MethodInfo struct {
	Method      Method
	Description string
	Required    []ParamName
	Optional    []ParamName
	Random      bool
}

type builder func(n int, params Params, rng base.RandomGenerator) (Sequence, error)

type scheme struct {
	MethodInfo
	build builder
}

var schemes = []scheme{
	{
		MethodInfo: MethodInfo{
			Method:      MethodHoldout,
			Description: "Holdout",
			Required:    []ParamName{TrainSize},
		},
		build: func(n int, params Params, _ base.RandomGenerator) (Sequence, error) {
			var p holdoutParams
			if err := decodeParams(MethodHoldout, params, &p); err != nil {
				return nil, err
			}
			return Holdout(n, p.TrainSize)
		},
	},
	{
		MethodInfo: MethodInfo{
			Method:      MethodInvHoldout,
			Description: "Inverse Holdout",
			Required:    []ParamName{TrainSize},
		},
		build: func(n int, params Params, _ base.RandomGenerator) (Sequence, error) {
			var p holdoutParams
			if err := decodeParams(MethodInvHoldout, params, &p); err != nil {
				return nil, err
			}
			return InvHoldout(n, p.TrainSize)
		},
	},
	{
		MethodInfo: MethodInfo{
			Method:      MethodRepHoldout,
			Description: "Repeated Holdout",
			Required:    []ParamName{NReps, TrainSize, TestSize},
			Random:      true,
		},
		build: func(n int, params Params, rng base.RandomGenerator) (Sequence, error) {
			var p repHoldoutParams
			if err := decodeParams(MethodRepHoldout, params, &p); err != nil {
				return nil, err
			}
			return RepHoldout(n, p.NReps, p.TrainSize, p.TestSize, rng)
		},
	},
	{
		MethodInfo: MethodInfo{
			Method:      MethodCV,
			Description: "Cross-Validation",
			Required:    []ParamName{NFolds},
			Optional:    []ParamName{ShuffleIndices},
			Random:      true,
		},
		build: func(n int, params Params, rng base.RandomGenerator) (Sequence, error) {
			var p shuffledFoldParams
			if err := decodeParams(MethodCV, params, &p); err != nil {
				return nil, err
			}
			return CV(n, p.NFolds, rng, WithShuffledIndices(p.ShuffleIndices))
		},
	},
	{
		MethodInfo: MethodInfo{
			Method:      MethodCVBlocked,
			Description: "Blocked Cross-Validation",
			Required:    []ParamName{NFolds},
		},
		build: func(n int, params Params, _ base.RandomGenerator) (Sequence, error) {
			var p foldParams
			if err := decodeParams(MethodCVBlocked, params, &p); err != nil {
				return nil, err
			}
			return CVBlocked(n, p.NFolds)
		},
	},
	{
		MethodInfo: MethodInfo{
			Method:      MethodCVModified,
			Description: "Modified Cross-Validation",
			Required:    []ParamName{NFolds, GapBefore, GapAfter},
			Optional:    []ParamName{ShuffleIndices},
			Random:      true,
		},
		build: func(n int, params Params, rng base.RandomGenerator) (Sequence, error) {
			var p gapFoldParams
			if err := decodeParams(MethodCVModified, params, &p); err != nil {
				return nil, err
			}
			return CVModified(n, p.NFolds, p.GapBefore, p.GapAfter, rng, WithShuffledIndices(p.ShuffleIndices))
		},
	},
	{
		MethodInfo: MethodInfo{
			Method:      MethodCVHVBlocked,
			Description: "hv-Blocked Cross-Validation",
			Required:    []ParamName{NFolds, GapBefore, GapAfter},
		},
		build: func(n int, params Params, _ base.RandomGenerator) (Sequence, error) {
			var p gapFoldParams
			if err := decodeParams(MethodCVHVBlocked, params, &p); err != nil {
				return nil, err
			}
			return CVHVBlocked(n, p.NFolds, p.GapBefore, p.GapAfter)
		},
	},
	{
		MethodInfo: MethodInfo{
			Method:      MethodPreqBlocks,
			Description: "Prequential Blocks",
			Required:    []ParamName{NFolds},
		},
		build: func(n int, params Params, _ base.RandomGenerator) (Sequence, error) {
			var p foldParams
			if err := decodeParams(MethodPreqBlocks, params, &p); err != nil {
				return nil, err
			}
			return PreqBlocks(n, p.NFolds)
		},
	},
	{
		MethodInfo: MethodInfo{
			Method:      MethodPreqSlidingBlocks,
			Description: "Prequential Sliding Blocks",
			Required:    []ParamName{NFolds},
		},
		build: func(n int, params Params, _ base.RandomGenerator) (Sequence, error) {
			var p foldParams
			if err := decodeParams(MethodPreqSlidingBlocks, params, &p); err != nil {
				return nil, err
			}
			return PreqSlidingBlocks(n, p.NFolds)
		},
	},
	{
		MethodInfo: MethodInfo{
			Method:      MethodPreqBlocksGap,
			Description: "Prequential Blocks with Gap",
			Required:    []ParamName{NFolds},
		},
		build: func(n int, params Params, _ base.RandomGenerator) (Sequence, error) {
			var p foldParams
			if err := decodeParams(MethodPreqBlocksGap, params, &p); err != nil {
				return nil, err
			}
			return PreqBlocksGap(n, p.NFolds)
		},
	},
	{
		MethodInfo: MethodInfo{
			Method:      MethodPreqSliding,
			Description: "Prequential Sliding Window",
			Required:    []ParamName{TrainSize, NReps},
		},
		build: func(n int, params Params, _ base.RandomGenerator) (Sequence, error) {
			var p windowParams
			if err := decodeParams(MethodPreqSliding, params, &p); err != nil {
				return nil, err
			}
			return PreqSliding(n, p.TrainSize, p.NReps)
		},
	},
	{
		MethodInfo: MethodInfo{
			Method:      MethodPreqGrowing,
			Description: "Prequential Growing Window",
			Required:    []ParamName{TrainSize, NReps},
		},
		build: func(n int, params Params, _ base.RandomGenerator) (Sequence, error) {
			var p windowParams
			if err := decodeParams(MethodPreqGrowing, params, &p); err != nil {
				return nil, err
			}
			return PreqGrowing(n, p.TrainSize, p.NReps)
		},
	},
}

var schemeIndex = lo.SliceToMap(schemes, func(s scheme) (Method, scheme) {
	return s.Method, s
})

// Methods lists all methods in declaration order.
func Methods() []MethodInfo {
	return lo.Map(schemes, func(s scheme, _ int) MethodInfo {
		return s.MethodInfo
	})
}

// ParseMethod returns the method with the given name.
func ParseMethod(name string) (Method, error) {
	if _, ok := schemeIndex[Method(name)]; !ok {
		return "", errors.Trace(&UnknownMethodError{Method: name})
	}
	return Method(name), nil
}

// GetIndices returns the splits of a time series of length n for the named method. params must
// hold exactly the required parameters of the method, plus any of its optional ones. rng is
// only used by randomized methods and must be non-zero for them.
func GetIndices(method string, n int, params Params, rng base.RandomGenerator) (Sequence, error) {
	m, err := ParseMethod(method)
	if err != nil {
		return nil, err
	}
	return Dispatch(m, n, params, rng)
}

// Dispatch is GetIndices for a parsed method.
func Dispatch(method Method, n int, params Params, rng base.RandomGenerator) (Sequence, error) {
	s, ok := schemeIndex[method]
	if !ok {
		return nil, errors.Trace(&UnknownMethodError{Method: string(method)})
	}
	if err := checkKeys(s.MethodInfo, params); err != nil {
		return nil, err
	}
	log.Logger().Debug("dispatch", zap.String("method", string(method)),
		zap.Int("n", n), zap.Any("params", params))
	seq, err := s.build(n, params, rng)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return seq, nil
}

// checkKeys rejects missing required keys and keys the method does not accept.
func checkKeys(info MethodInfo, params Params) error {
	given := mapset.NewSetFromMapKeys(map[string]any(params))
	required := mapset.NewSet(lo.Map(info.Required, func(p ParamName, _ int) string { return string(p) })...)
	accepted := required.Union(mapset.NewSet(lo.Map(info.Optional, func(p ParamName, _ int) string { return string(p) })...))
	if missing := required.Difference(given); missing.Cardinality() > 0 {
		return newConfigurationError(info.Method, ParamName(first(missing)), "is required")
	}
	if unknown := given.Difference(accepted); unknown.Cardinality() > 0 {
		return newConfigurationError(info.Method, ParamName(first(unknown)), "is not accepted")
	}
	return nil
}

// first returns the smallest element so that error messages are stable.
func first(set mapset.Set[string]) string {
	values := set.ToSlice()
	sort.Strings(values)
	return values[0]
}
