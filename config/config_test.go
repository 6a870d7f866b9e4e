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
	"os"
	"path/filepath"
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	config, err := LoadConfig("config.toml")
	require.NoError(t, err)
	assert.Equal(t, "cv_hvbl", config.Method)
	assert.Equal(t, 120, config.Length)
	assert.Equal(t, int64(42), config.Seed)
	assert.EqualValues(t, 5, config.Params["n_folds"])
	assert.EqualValues(t, 3, config.Params["gap_before"])
	assert.EqualValues(t, 3, config.Params["gap_after"])
	assert.Equal(t, "", config.Input.CSV)
	assert.True(t, config.Input.Header)
	assert.Equal(t, ",", config.Input.Delimiter)
	assert.Equal(t, "table", config.Output.Format)
	assert.False(t, config.Output.Progress)
	assert.NoError(t, config.Validate())
}

func TestLoadConfig_Default(t *testing.T) {
	config, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, GetDefaultConfig(), config)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("VALICAST_OUTPUT_FORMAT", "json")
	t.Setenv("VALICAST_SEED", "7")
	config, err := LoadConfig("config.toml")
	require.NoError(t, err)
	assert.Equal(t, "json", config.Output.Format)
	assert.Equal(t, int64(7), config.Seed)
}

func TestLoadConfig_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "valicast.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
method: preq_slide
input:
  csv: series.csv
params:
  train_size: 0.6
  n_reps: 4
`), 0644))
	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "preq_slide", config.Method)
	assert.Zero(t, config.Length)
	assert.Equal(t, "series.csv", config.Input.CSV)
	assert.Equal(t, 0.6, config.SplitParams()["train_size"])
	assert.NoError(t, config.Validate())
}

func TestSplitParams(t *testing.T) {
	config := GetDefaultConfig()
	config.Params["n_folds"] = 5
	params := config.SplitParams()
	params["n_folds"] = 3
	params["gap_before"] = 1
	assert.Equal(t, map[string]any{"n_folds": 5}, config.Params)
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	config := GetDefaultConfig()
	config.Method = "cv_bl"
	config.Length = 10
	assert.NoError(t, config.Validate())

	config.Method = "cv_blocked"
	assert.Error(t, config.Validate())
	config.Method = "cv_bl"

	config.Output.Format = "xml"
	assert.Error(t, config.Validate())
	config.Output.Format = "csv"

	config.Input.Delimiter = ""
	assert.Error(t, config.Validate())
	config.Input.Delimiter = ";"

	config.Length = -1
	assert.Error(t, config.Validate())

	config.Length = 0
	assert.True(t, errors.Is(config.Validate(), errors.NotValid))
	config.Input.CSV = "series.csv"
	assert.NoError(t, config.Validate())
}

func TestSchema(t *testing.T) {
	data, err := Schema()
	require.NoError(t, err)
	var schema map[string]any
	require.NoError(t, json.Unmarshal(data, &schema))
	properties, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, properties, "method")
	assert.Contains(t, properties, "params")
	assert.Contains(t, properties, "output")
}
