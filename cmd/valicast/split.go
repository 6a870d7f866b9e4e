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
	"io"
	"os"

	"github.com/juju/errors"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/valicast/valicast/base"
	"github.com/valicast/valicast/base/log"
	"github.com/valicast/valicast/common/util"
	"github.com/valicast/valicast/config"
	"github.com/valicast/valicast/split"
	"go.uber.org/zap"
)

var splitCommand = &cobra.Command{
	Use:   "split [method]",
	Short: "Print train and test indices of a validation scheme",
	Example: `  valicast split holdout --length 10 --param train_size=0.7
  valicast split cv_hvbl --length 120 --param n_folds=5 --param gap_before=3 --param gap_after=3
  valicast split rep_holdout --csv series.csv --seed 42 --param n_reps=10 --param train_size=0.6 --param test_size=0.1
  valicast split --config valicast.toml --format json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := loadSplitConfig(cmd.Flags(), args)
		if err != nil {
			return errors.Trace(err)
		}
		return runSplit(conf, cmd.OutOrStdout())
	},
}

func init() {
	addSplitFlags(splitCommand.Flags())
	rootCommand.AddCommand(splitCommand)
}

func addSplitFlags(flags *pflag.FlagSet) {
	flags.StringP("config", "c", "", "configuration file path")
	flags.IntP("length", "n", 0, "length of the time series")
	flags.StringArrayP("param", "p", nil, "scheme parameter as name=value (repeatable)")
	flags.Int64("seed", 0, "seed of randomized schemes")
	flags.String("csv", "", "CSV file of the time series, used when --length is not set")
	flags.Bool("header", true, "CSV file has a header line")
	flags.String("delimiter", ",", "CSV delimiter")
	flags.StringP("format", "f", "table", "output format (table, json, csv)")
	flags.StringP("output", "o", "", "output file (default stdout)")
	flags.Bool("progress", false, "show progress while writing to --output")
}

// loadSplitConfig reads the configuration file, then applies flags set on the command line.
func loadSplitConfig(flags *pflag.FlagSet, args []string) (*config.Config, error) {
	configPath, _ := flags.GetString("config")
	conf, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, errors.Annotatef(err, "failed to load config %q", configPath)
	}
	if len(args) > 0 {
		conf.Method = args[0]
	}
	if flags.Changed("length") {
		conf.Length, _ = flags.GetInt("length")
	}
	if flags.Changed("param") {
		pairs, _ := flags.GetStringArray("param")
		params, err := util.ParseParams(pairs)
		if err != nil {
			return nil, errors.Trace(err)
		}
		for name, value := range params {
			conf.Params[name] = value
		}
	}
	if flags.Changed("seed") {
		conf.Seed, _ = flags.GetInt64("seed")
	}
	if flags.Changed("csv") {
		conf.Input.CSV, _ = flags.GetString("csv")
	}
	if flags.Changed("header") {
		conf.Input.Header, _ = flags.GetBool("header")
	}
	if flags.Changed("delimiter") {
		conf.Input.Delimiter, _ = flags.GetString("delimiter")
	}
	if flags.Changed("format") {
		conf.Output.Format, _ = flags.GetString("format")
	}
	if flags.Changed("output") {
		conf.Output.Path, _ = flags.GetString("output")
	}
	if flags.Changed("progress") {
		conf.Output.Progress, _ = flags.GetBool("progress")
	}
	if err = conf.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	return conf, nil
}

func runSplit(conf *config.Config, stdout io.Writer) error {
	n := conf.Length
	if n == 0 {
		file, err := os.Open(conf.Input.CSV)
		if err != nil {
			return errors.Trace(err)
		}
		defer file.Close()
		if n, err = base.CountRecords(file, conf.Input.Delimiter, conf.Input.Header); err != nil {
			return errors.Annotatef(err, "failed to read %s", conf.Input.CSV)
		}
		log.Logger().Info("load time series", zap.String("csv", conf.Input.CSV), zap.Int("length", n))
	}

	seq, err := split.GetIndices(conf.Method, n, conf.SplitParams(), base.NewRandomGenerator(conf.Seed))
	if err != nil {
		return errors.Trace(err)
	}

	out := stdout
	var bar *progressbar.ProgressBar
	if conf.Output.Path != "" {
		file, err := os.Create(conf.Output.Path)
		if err != nil {
			return errors.Trace(err)
		}
		defer file.Close()
		out = file
		if conf.Output.Progress {
			bar = progressbar.Default(-1, "writing splits")
		}
	}
	writer, err := newSplitWriter(conf.Output.Format, out)
	if err != nil {
		return errors.Trace(err)
	}

	count := 0
	for s := range seq {
		if err = writer.Write(count, s); err != nil {
			return errors.Trace(err)
		}
		count++
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}
	if err = writer.Flush(); err != nil {
		return errors.Trace(err)
	}
	log.Logger().Info("write splits", zap.String("method", conf.Method),
		zap.Int("length", n), zap.Int("splits", count))
	return nil
}
