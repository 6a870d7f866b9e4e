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

package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/juju/errors"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valicast/valicast/base/log"
	"github.com/valicast/valicast/config"
	"github.com/valicast/valicast/split"
	"go.uber.org/zap"
)

func newConfig(method string, length int, params map[string]any) *config.Config {
	conf := config.GetDefaultConfig()
	conf.Method = method
	conf.Length = length
	conf.Params = params
	return conf
}

func decodeJSONLines(t *testing.T, data []byte) []jsonSplit {
	var splits []jsonSplit
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		var s jsonSplit
		require.NoError(t, json.Unmarshal(sc.Bytes(), &s))
		splits = append(splits, s)
	}
	return splits
}

func TestFormatRanges(t *testing.T) {
	assert.Equal(t, "0-2,5,7-8", formatRanges([]int{0, 1, 2, 5, 7, 8}))
	assert.Equal(t, "4", formatRanges([]int{4}))
	assert.Equal(t, "0-5,8-9", formatRanges([]int{0, 1, 2, 3, 4, 5, 8, 9}))
	assert.Equal(t, "-", formatRanges(nil))
}

func TestRunSplit_Table(t *testing.T) {
	var buf bytes.Buffer
	err := runSplit(newConfig("cv_bl", 10, map[string]any{"n_folds": 4}), &buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "0-5,8-9")
	assert.Contains(t, buf.String(), "6-7")
}

func TestRunSplit_JSON(t *testing.T) {
	var buf bytes.Buffer
	conf := newConfig("holdout", 10, map[string]any{"train_size": 0.7})
	conf.Output.Format = "json"
	require.NoError(t, runSplit(conf, &buf))
	assert.Equal(t, []jsonSplit{{Index: 0, Train: []int{0, 1, 2, 3, 4, 5, 6}, Test: []int{7, 8, 9}}},
		decodeJSONLines(t, buf.Bytes()))
}

func TestRunSplit_CSV(t *testing.T) {
	var buf bytes.Buffer
	conf := newConfig("preq_bls", 10, map[string]any{"n_folds": 4})
	conf.Output.Format = "csv"
	require.NoError(t, runSplit(conf, &buf))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	// header + (3+3) + (6+2) + (8+2)
	assert.Len(t, lines, 25)
	assert.Equal(t, "split,set,index", lines[0])
	assert.Equal(t, "0,train,0", lines[1])
	assert.Equal(t, "2,test,9", lines[24])
}

func TestRunSplit_InputCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "series.csv")
	var builder strings.Builder
	builder.WriteString("ds;y\n")
	for i := 0; i < 10; i++ {
		builder.WriteString("2024-01-0" + string(rune('0'+i)) + ";1.0\n")
	}
	require.NoError(t, os.WriteFile(path, []byte(builder.String()), 0644))

	var buf bytes.Buffer
	conf := newConfig("holdout", 0, map[string]any{"train_size": 0.7})
	conf.Input.CSV = path
	conf.Input.Delimiter = ";"
	conf.Output.Format = "json"
	require.NoError(t, runSplit(conf, &buf))
	splits := decodeJSONLines(t, buf.Bytes())
	require.Len(t, splits, 1)
	assert.Equal(t, []int{7, 8, 9}, splits[0].Test)

	conf.Input.CSV = filepath.Join(dir, "missing.csv")
	assert.Error(t, runSplit(conf, &buf))
}

func TestRunSplit_OutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "splits.json")
	conf := newConfig("rep_holdout", 50, map[string]any{"n_reps": 5, "train_size": 0.5, "test_size": 0.1})
	conf.Seed = 3
	conf.Output.Format = "json"
	conf.Output.Path = path
	conf.Output.Progress = true
	var buf bytes.Buffer
	require.NoError(t, runSplit(conf, &buf))
	assert.Zero(t, buf.Len())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	splits := decodeJSONLines(t, data)
	assert.Len(t, splits, 5)

	// same seed, same splits
	var again bytes.Buffer
	conf.Output.Path = ""
	require.NoError(t, runSplit(conf, &again))
	assert.Equal(t, splits, decodeJSONLines(t, again.Bytes()))
}

func TestRunSplit_Invalid(t *testing.T) {
	var buf bytes.Buffer
	err := runSplit(newConfig("cv_mod", 10, map[string]any{"n_folds": 4}), &buf)
	var configErr *split.ConfigurationError
	require.True(t, errors.As(err, &configErr))
	assert.Equal(t, split.GapAfter, configErr.Param)

	conf := newConfig("cv_bl", 10, map[string]any{"n_folds": 4})
	conf.Output.Format = "xml"
	assert.True(t, errors.Is(runSplit(conf, &buf), errors.NotSupported))
}

func TestLoadSplitConfig(t *testing.T) {
	flags := pflag.NewFlagSet("split", pflag.ContinueOnError)
	addSplitFlags(flags)
	require.NoError(t, flags.Parse([]string{
		"--length", "120", "-p", "n_folds=5", "-p", "gap_before=2", "--param", "gap_after=1",
		"--seed", "9", "--format", "csv",
	}))
	conf, err := loadSplitConfig(flags, []string{"cv_mod"})
	require.NoError(t, err)
	assert.Equal(t, "cv_mod", conf.Method)
	assert.Equal(t, 120, conf.Length)
	assert.Equal(t, int64(9), conf.Seed)
	assert.Equal(t, "csv", conf.Output.Format)
	assert.Equal(t, map[string]any{"n_folds": 5, "gap_before": 2, "gap_after": 1}, conf.Params)
}

func TestLoadSplitConfig_File(t *testing.T) {
	flags := pflag.NewFlagSet("split", pflag.ContinueOnError)
	addSplitFlags(flags)
	require.NoError(t, flags.Parse([]string{"-c", "../../config/config.toml", "-p", "n_folds=6"}))
	conf, err := loadSplitConfig(flags, nil)
	require.NoError(t, err)
	assert.Equal(t, "cv_hvbl", conf.Method)
	assert.Equal(t, 120, conf.Length)
	assert.EqualValues(t, 6, conf.Params["n_folds"])
	assert.EqualValues(t, 3, conf.Params["gap_before"])
}

func TestLoadSplitConfig_Invalid(t *testing.T) {
	flags := pflag.NewFlagSet("split", pflag.ContinueOnError)
	addSplitFlags(flags)
	require.NoError(t, flags.Parse([]string{"--length", "10"}))
	_, err := loadSplitConfig(flags, []string{"kfold"})
	assert.Error(t, err)

	flags = pflag.NewFlagSet("split", pflag.ContinueOnError)
	addSplitFlags(flags)
	require.NoError(t, flags.Parse([]string{"--length", "10", "-p", "n_folds"}))
	_, err = loadSplitConfig(flags, []string{"cv_bl"})
	assert.True(t, errors.Is(err, errors.NotValid))
}

func TestCommands(t *testing.T) {
	var buf bytes.Buffer
	rootCommand.SetOut(&buf)
	rootCommand.SetArgs([]string{"methods"})
	require.NoError(t, rootCommand.Execute())
	for _, info := range split.Methods() {
		assert.Contains(t, buf.String(), string(info.Method))
	}

	buf.Reset()
	rootCommand.SetArgs([]string{"schema"})
	require.NoError(t, rootCommand.Execute())
	assert.True(t, json.Valid(buf.Bytes()))

	buf.Reset()
	rootCommand.SetArgs([]string{"split", "preq_sld_bls", "-n", "10", "-p", "n_folds=4", "-f", "json"})
	require.NoError(t, rootCommand.Execute())
	assert.Len(t, decodeJSONLines(t, buf.Bytes()), 3)

	buf.Reset()
	rootCommand.SetArgs([]string{"version"})
	require.NoError(t, rootCommand.Execute())
	assert.Contains(t, buf.String(), Version)
}

func TestQuietFlag(t *testing.T) {
	t.Cleanup(func() {
		_ = rootCommand.PersistentFlags().Set("quiet", "false")
	})
	var buf bytes.Buffer
	rootCommand.SetOut(&buf)
	rootCommand.SetArgs([]string{"--quiet", "version"})
	require.NoError(t, rootCommand.Execute())
	assert.False(t, log.Logger().Core().Enabled(zap.ErrorLevel))
	assert.True(t, log.Logger().Core().Enabled(zap.FatalLevel))

	rootCommand.SetArgs([]string{"--quiet=false", "version"})
	require.NoError(t, rootCommand.Execute())
	assert.True(t, log.Logger().Core().Enabled(zap.InfoLevel))
}
