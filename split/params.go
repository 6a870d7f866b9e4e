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
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/juju/errors"
)

// ParamName is the name of a scheme parameter.
type ParamName string

const (
	TrainSize      ParamName = "train_size"
	TestSize       ParamName = "test_size"
	NReps          ParamName = "n_reps"
	NFolds         ParamName = "n_folds"
	GapBefore      ParamName = "gap_before"
	GapAfter       ParamName = "gap_after"
	ShuffleIndices ParamName = "shuffle_indices"

	// TimeSeriesLength names the length argument in errors. It is not a keyword parameter.
	TimeSeriesLength ParamName = "time_series_length"
)

// Params for a scheme. Given by:
//
//	Params{
//	   "<parameter name 1>": <parameter value 1>,
//	   ...
//	   "<parameter name n>": <parameter value n>,
//	}
type Params map[string]any

// Copy parameters.
func (params Params) Copy() Params {
	newParams := make(Params, len(params))
	for k, v := range params {
		newParams[k] = v
	}
	return newParams
}

type holdoutParams struct {
	TrainSize float64 `mapstructure:"train_size" validate:"fraction"`
}

type repHoldoutParams struct {
	NReps     int     `mapstructure:"n_reps" validate:"gt=0"`
	TrainSize float64 `mapstructure:"train_size" validate:"fraction"`
	TestSize  float64 `mapstructure:"test_size" validate:"fraction"`
}

type foldParams struct {
	NFolds int `mapstructure:"n_folds" validate:"gt=0"`
}

type shuffledFoldParams struct {
	NFolds         int  `mapstructure:"n_folds" validate:"gt=0"`
	ShuffleIndices bool `mapstructure:"shuffle_indices"`
}

type gapFoldParams struct {
	NFolds         int  `mapstructure:"n_folds" validate:"gt=0"`
	GapBefore      int  `mapstructure:"gap_before" validate:"gte=0"`
	GapAfter       int  `mapstructure:"gap_after" validate:"gte=0"`
	ShuffleIndices bool `mapstructure:"shuffle_indices"`
}

type windowParams struct {
	TrainSize float64 `mapstructure:"train_size" validate:"fraction"`
	NReps     int     `mapstructure:"n_reps" validate:"gt=0"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("mapstructure"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("fraction", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return f > 0 && f < 1
	}); err != nil {
		panic(err)
	}
	return v
}

// validateParams checks the ranges declared in the struct tags of params.
func validateParams(method Method, params any) error {
	err := validate.Struct(params)
	if err == nil {
		return nil
	}
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return errors.Trace(err)
	}
	fe := fieldErrors[0]
	return newConfigurationError(method, ParamName(fe.Field()), "%s, got %v", describeTag(fe.Tag(), fe.Param()), fe.Value())
}

func describeTag(tag, param string) string {
	switch tag {
	case "fraction":
		return "must be in (0, 1)"
	case "gt":
		return "must be greater than " + param
	case "gte":
		return "must be at least " + param
	default:
		return fmt.Sprintf("must satisfy %s=%s", tag, param)
	}
}

// decodeParams copies keyword parameters into the typed parameter struct pointed by result.
// Missing and unknown keys are detected by the dispatcher before decoding.
func decodeParams(method Method, params Params, result any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           result,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.DecodeHookFuncType(rejectInexactNumbers),
	})
	if err != nil {
		return errors.Trace(err)
	}
	if err = decoder.Decode(map[string]any(params)); err != nil {
		return newConfigurationError(method, "", "cannot decode parameters: %v", err)
	}
	return nil
}

// rejectInexactNumbers refuses booleans for numeric fields and fractional values for integer
// fields, which weak decoding would otherwise coerce or truncate.
func rejectInexactNumbers(from, to reflect.Type, data any) (any, error) {
	if !isNumber(to.Kind()) {
		return data, nil
	}
	switch from.Kind() {
	case reflect.Bool:
		return nil, errors.NotValidf("boolean %v as a number", data)
	case reflect.Float32, reflect.Float64:
		if f := reflect.ValueOf(data).Float(); isInteger(to.Kind()) && f != math.Trunc(f) {
			return nil, errors.NotValidf("fractional %v as an integer", data)
		}
	}
	return data, nil
}

func isInteger(kind reflect.Kind) bool {
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

func isNumber(kind reflect.Kind) bool {
	return isInteger(kind) || kind == reflect.Float32 || kind == reflect.Float64
}
