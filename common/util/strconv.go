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

package util

import (
	"strconv"
	"strings"

	"github.com/juju/errors"
	"golang.org/x/exp/constraints"
)

func ParseFloat[T constraints.Float](s string) (T, error) {
	v, err := strconv.ParseFloat(s, 64)
	return T(v), err
}

func ParseInt[T constraints.Signed](s string) (T, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	return T(v), err
}

// ParseParam parses a "name=value" pair. The value becomes an int if it parses as one, then a
// float64, then a bool, and is kept as a string otherwise.
func ParseParam(s string) (string, any, error) {
	name, raw, found := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	raw = strings.TrimSpace(raw)
	if !found || name == "" {
		return "", nil, errors.NotValidf("parameter %q (expected name=value)", s)
	}
	if v, err := ParseInt[int](raw); err == nil {
		return name, v, nil
	}
	if v, err := ParseFloat[float64](raw); err == nil {
		return name, v, nil
	}
	if v, err := strconv.ParseBool(raw); err == nil {
		return name, v, nil
	}
	return name, raw, nil
}

// ParseParams parses a list of "name=value" pairs into a map. Later pairs override earlier ones.
func ParseParams(pairs []string) (map[string]any, error) {
	params := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		name, value, err := ParseParam(pair)
		if err != nil {
			return nil, errors.Trace(err)
		}
		params[name] = value
	}
	return params, nil
}
