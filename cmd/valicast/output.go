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
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/juju/errors"
	"github.com/olekukonko/tablewriter"
	"github.com/valicast/valicast/split"
)

type splitWriter interface {
	Write(i int, s split.Split) error
	Flush() error
}

func newSplitWriter(format string, w io.Writer) (splitWriter, error) {
	switch format {
	case "table":
		table := tablewriter.NewWriter(w)
		table.Header([]string{"#", "Train", "Test", "Train Size", "Test Size"})
		return &tableWriter{table: table}, nil
	case "json":
		return &jsonWriter{encoder: json.NewEncoder(w)}, nil
	case "csv":
		return &csvWriter{w: bufio.NewWriter(w)}, nil
	default:
		return nil, errors.NotSupportedf("output format %q", format)
	}
}

type tableWriter struct {
	table *tablewriter.Table
}

func (t *tableWriter) Write(i int, s split.Split) error {
	return t.table.Append([]string{
		strconv.Itoa(i),
		formatRanges(s.Train),
		formatRanges(s.Test),
		strconv.Itoa(len(s.Train)),
		strconv.Itoa(len(s.Test)),
	})
}

func (t *tableWriter) Flush() error {
	return t.table.Render()
}

type jsonSplit struct {
	Index int   `json:"split"`
	Train []int `json:"train"`
	Test  []int `json:"test"`
}

// jsonWriter writes one JSON object per line.
type jsonWriter struct {
	encoder *json.Encoder
}

func (j *jsonWriter) Write(i int, s split.Split) error {
	return j.encoder.Encode(jsonSplit{Index: i, Train: s.Train, Test: s.Test})
}

func (j *jsonWriter) Flush() error {
	return nil
}

// csvWriter writes one "split,set,index" record per index.
type csvWriter struct {
	w      *bufio.Writer
	header bool
}

func (c *csvWriter) Write(i int, s split.Split) error {
	if !c.header {
		if _, err := c.w.WriteString("split,set,index\n"); err != nil {
			return errors.Trace(err)
		}
		c.header = true
	}
	for _, set := range []struct {
		name    string
		indices []int
	}{{"train", s.Train}, {"test", s.Test}} {
		for _, index := range set.indices {
			if _, err := fmt.Fprintf(c.w, "%d,%s,%d\n", i, set.name, index); err != nil {
				return errors.Trace(err)
			}
		}
	}
	return nil
}

func (c *csvWriter) Flush() error {
	return c.w.Flush()
}

// formatRanges compresses ascending indices into ranges, e.g. [0 1 2 5 7 8] to "0-2,5,7-8".
func formatRanges(indices []int) string {
	if len(indices) == 0 {
		return "-"
	}
	var builder strings.Builder
	begin := indices[0]
	for i := 1; i <= len(indices); i++ {
		if i < len(indices) && indices[i] == indices[i-1]+1 {
			continue
		}
		if builder.Len() > 0 {
			builder.WriteByte(',')
		}
		end := indices[i-1]
		if begin == end {
			builder.WriteString(strconv.Itoa(begin))
		} else {
			builder.WriteString(strconv.Itoa(begin) + "-" + strconv.Itoa(end))
		}
		if i < len(indices) {
			begin = indices[i]
		}
	}
	return builder.String()
}
