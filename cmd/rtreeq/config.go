// Copyright 2023 The rtree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/gogama/rtree"
	"github.com/gogama/rtree/packedrtree"
	"github.com/gogama/rtree/snapshot"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// envPrefix prefixes the environment variable for each flag, so that
// RTREEQ_MAX_FANOUT sets --max-fanout.
const envPrefix = "RTREEQ"

type config struct {
	Input        string   `mapstructure:"input"`
	MaxFanout    int      `mapstructure:"max-fanout"`
	MinFanout    int      `mapstructure:"min-fanout"`
	Bulk         bool     `mapstructure:"bulk"`
	BBoxes       []string `mapstructure:"bbox"`
	Parallel     int      `mapstructure:"parallel"`
	Snapshot     string   `mapstructure:"snapshot"`
	FromSnapshot string   `mapstructure:"from-snapshot"`
	NodeSize     int      `mapstructure:"node-size"`
	Compression  string   `mapstructure:"compression"`
	Trace        bool     `mapstructure:"trace"`

	boxes       []rtree.Box
	compression snapshot.Compression
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("rtreeq", pflag.ContinueOnError)
	fs.String("config", "", "optional config file (YAML, JSON or TOML)")
	fs.String("input", "", "GeoJSON FeatureCollection to index")
	fs.Int("max-fanout", rtree.DefaultMaxFanout, "maximum entries per tree node")
	fs.Int("min-fanout", 0, "minimum entries per tree node (0 means max-fanout/2)")
	fs.Bool("bulk", false, "bulk load the tree instead of inserting one feature at a time")
	fs.StringArray("bbox", nil, "query box as xmin,ymin,xmax,ymax (repeatable)")
	fs.Int("parallel", 4, "number of queries to run at once")
	fs.String("snapshot", "", "write an index snapshot of the input to this file")
	fs.String("from-snapshot", "", "query this snapshot file instead of an input file")
	fs.Int("node-size", packedrtree.DefaultNodeSize, "node size of the snapshot index")
	fs.String("compression", "zstd", "snapshot compression: none, zstd or lz4")
	fs.Bool("trace", false, "trace tree structure changes to standard error")
	return fs
}

// loadConfig resolves the configuration from, in decreasing order of
// precedence, command line flags, RTREEQ_* environment variables, an
// optional config file, and defaults.
func loadConfig(args []string) (*config, error) {
	fs := newFlagSet()
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var c config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *config) validate() (err error) {
	switch {
	case c.Input == "" && c.FromSnapshot == "":
		return fmt.Errorf("one of --input or --from-snapshot is required")
	case c.Input != "" && c.FromSnapshot != "":
		return fmt.Errorf("--input and --from-snapshot are mutually exclusive")
	case c.MaxFanout < 2:
		return fmt.Errorf("--max-fanout must be at least 2 (got %d)", c.MaxFanout)
	case c.MinFanout < 0 || c.MinFanout > (c.MaxFanout+1)/2:
		return fmt.Errorf("--min-fanout must be in [0, %d] (got %d)", (c.MaxFanout+1)/2, c.MinFanout)
	case c.Parallel < 1:
		return fmt.Errorf("--parallel must be at least 1 (got %d)", c.Parallel)
	case c.NodeSize < 2 || c.NodeSize > 0xffff:
		return fmt.Errorf("--node-size must be in [2, 65535] (got %d)", c.NodeSize)
	}
	if c.compression, err = snapshot.ParseCompression(c.Compression); err != nil {
		return err
	}
	c.boxes, err = parseBoxes(c.BBoxes)
	return
}

// parseBoxes parses query boxes. Each box is four numbers, and numbers
// may be separated by commas, semicolons or spaces, so that a list of
// boxes survives being flattened into one environment variable.
func parseBoxes(ss []string) ([]rtree.Box, error) {
	fields := strings.FieldsFunc(strings.Join(ss, ","), func(r rune) bool {
		return r == ',' || r == ';' || unicode.IsSpace(r)
	})
	if len(fields)%4 != 0 {
		return nil, fmt.Errorf("query boxes need 4 numbers each, got %d numbers", len(fields))
	}
	boxes := make([]rtree.Box, 0, len(fields)/4)
	var v [4]float64
	for i := 0; i < len(fields); i += 4 {
		for j := range v {
			f, err := strconv.ParseFloat(fields[i+j], 64)
			if err != nil {
				return nil, fmt.Errorf("query box %d: %w", i/4, err)
			}
			v[j] = f
		}
		b := rtree.Box{XMin: v[0], YMin: v[1], XMax: v[2], YMax: v[3]}
		if b.IsEmpty() {
			return nil, fmt.Errorf("query box %d: %s is empty", i/4, b)
		}
		boxes = append(boxes, b)
	}
	return boxes, nil
}
