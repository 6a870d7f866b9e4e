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
	"strings"

	"github.com/juju/errors"
	"github.com/spf13/viper"
	"github.com/valicast/valicast/split"
)

// Config is the configuration for the valicast command line.
type Config struct {
	Method string         `mapstructure:"method" validate:"method" jsonschema:"description=validation scheme"`
	Length int            `mapstructure:"length" validate:"gte=0" jsonschema:"description=length of the time series (0 to count input.csv)"`
	Seed   int64          `mapstructure:"seed" jsonschema:"description=seed of randomized schemes"`
	Params map[string]any `mapstructure:"params" jsonschema:"description=keyword parameters of the scheme"`
	Input  InputConfig    `mapstructure:"input"`
	Output OutputConfig   `mapstructure:"output"`
}

// InputConfig locates a time series whose length is used when Length is zero.
type InputConfig struct {
	CSV       string `mapstructure:"csv"`
	Header    bool   `mapstructure:"header"`
	Delimiter string `mapstructure:"delimiter" validate:"len=1"`
}

// OutputConfig controls how splits are written.
type OutputConfig struct {
	Format   string `mapstructure:"format" validate:"oneof=table json csv" jsonschema:"enum=table,enum=json,enum=csv"`
	Path     string `mapstructure:"path"`
	Progress bool   `mapstructure:"progress"`
}

func GetDefaultConfig() *Config {
	return &Config{
		Params: map[string]any{},
		Input: InputConfig{
			Header:    true,
			Delimiter: ",",
		},
		Output: OutputConfig{
			Format: "table",
		},
	}
}

func (config *Config) Validate() error {
	if err := validate.Struct(config); err != nil {
		return errors.Trace(err)
	}
	if config.Length == 0 && config.Input.CSV == "" {
		return errors.NotValidf("length %d without input.csv", config.Length)
	}
	return nil
}

// SplitParams returns the scheme parameters.
func (config *Config) SplitParams() split.Params {
	return split.Params(config.Params).Copy()
}

func setDefault() {
	defaultConfig := GetDefaultConfig()
	viper.SetDefault("method", defaultConfig.Method)
	viper.SetDefault("length", defaultConfig.Length)
	viper.SetDefault("seed", defaultConfig.Seed)
	viper.SetDefault("input.csv", defaultConfig.Input.CSV)
	viper.SetDefault("input.header", defaultConfig.Input.Header)
	viper.SetDefault("input.delimiter", defaultConfig.Input.Delimiter)
	viper.SetDefault("output.format", defaultConfig.Output.Format)
	viper.SetDefault("output.path", defaultConfig.Output.Path)
	viper.SetDefault("output.progress", defaultConfig.Output.Progress)
}

// LoadConfig loads configuration from a file. Each key can be overridden by an environment
// variable, e.g. VALICAST_OUTPUT_FORMAT overrides output.format. An empty path loads defaults and
// environment variables only.
func LoadConfig(path string) (*Config, error) {
	viper.Reset()
	setDefault()
	viper.SetEnvPrefix("VALICAST")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if path != "" {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			return nil, errors.Trace(err)
		}
	}
	var conf Config
	if err := viper.Unmarshal(&conf); err != nil {
		return nil, errors.Trace(err)
	}
	if conf.Params == nil {
		conf.Params = map[string]any{}
	}
	return &conf, nil
}
