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

package config

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
	"github.com/juju/errors"
)

// Schema returns the JSON schema of configuration files.
func Schema() ([]byte, error) {
	reflector := &jsonschema.Reflector{
		FieldNameTag:   "mapstructure",
		ExpandedStruct: true,
	}
	schema := reflector.Reflect(&Config{})
	schema.Title = "valicast configuration"
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, errors.Trace(err)
	}
	return data, nil
}
