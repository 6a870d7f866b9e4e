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

	"github.com/juju/errors"
)

// UnknownMethodError is returned when a method name is not one of the known schemes.
type UnknownMethodError struct {
	Method string
}

func (e *UnknownMethodError) Error() string {
	return fmt.Sprintf("unknown method %q", e.Method)
}

// Is makes UnknownMethodError match errors.NotSupported.
func (e *UnknownMethodError) Is(target error) bool {
	return target == errors.NotSupported
}

// ConfigurationError is returned when a parameter is missing or invalid for the chosen method.
type ConfigurationError struct {
	Method Method
	Param  ParamName
	Reason string
}

func (e *ConfigurationError) Error() string {
	msg := "invalid configuration"
	if e.Method != "" {
		msg += fmt.Sprintf(" for %s", e.Method)
	}
	if e.Param != "" {
		msg += fmt.Sprintf(": %s", e.Param)
	}
	return msg + " " + e.Reason
}

// Is makes ConfigurationError match errors.NotValid.
func (e *ConfigurationError) Is(target error) bool {
	return target == errors.NotValid
}

func newConfigurationError(method Method, param ParamName, format string, args ...any) error {
	return errors.Trace(&ConfigurationError{
		Method: method,
		Param:  param,
		Reason: fmt.Sprintf(format, args...),
	})
}
