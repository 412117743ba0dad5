// Copyright 2023 The rtree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Command rtreeq indexes the features of a GeoJSON FeatureCollection in
// an R-Tree, runs bounding box queries against it, and optionally saves
// an index snapshot that later runs can query directly.
//
// Usage:
//
//	rtreeq --input places.geojson --bbox 0,0,10,10 [--bbox ...] [--snapshot places.rtr]
//	rtreeq --from-snapshot places.rtr --bbox 0,0,10,10
//
// Every flag can also be set by an RTREEQ_* environment variable, such
// as RTREEQ_MAX_FANOUT, or in a config file named by --config.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/gogama/rtree"
	"github.com/gogama/rtree/orbgeom"
	"github.com/gogama/rtree/packedrtree"
	"github.com/gogama/rtree/snapshot"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/paulmach/orb/geojson"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "rtreeq:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	c, err := loadConfig(args)
	if err != nil {
		return err
	}
	setupTracing(c.Trace)

	var query func(rtree.Box) []string
	if c.FromSnapshot != "" {
		query, err = snapshotQuery(c.FromSnapshot)
	} else {
		query, err = treeQuery(c)
	}
	if err != nil {
		return err
	}

	results, err := runQueries(ctx, c.boxes, c.Parallel, query)
	if err != nil {
		return err
	}
	for i, keys := range results {
		fmt.Fprintf(out, "query %d: %d features %v\n", i, len(keys), keys)
	}
	return nil
}

func setupTracing(enabled bool) {
	level := tracing.LevelInfo
	if enabled {
		level = tracing.LevelDebug
	}
	gtrace.CoreTracer = gologadapter.New()
	gtrace.CoreTracer.SetTraceLevel(level)
	tracing.Select(rtree.TraceKey).SetTraceLevel(level)
}

// readFeatures reads a GeoJSON FeatureCollection. Features with neither
// an ID nor a name are given their position in the collection as ID.
func readFeatures(path string) ([]orbgeom.Feature, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	fs := orbgeom.Features(fc)
	for i := range fs {
		if fs[i].Key() == "" {
			fs[i].ID = i
		}
	}
	return fs, nil
}

// treeQuery indexes the input features in a tree, writes a snapshot if
// one was requested, and returns a function that finds the keys of the
// features whose geometry meets a box.
func treeQuery(c *config) (func(rtree.Box) []string, error) {
	fs, err := readFeatures(c.Input)
	if err != nil {
		return nil, err
	}
	tree := rtree.New[orbgeom.Feature](rtree.WithMaxFanout(c.MaxFanout), rtree.WithMinFanout(c.MinFanout))
	if c.Bulk {
		tree.Load(fs)
	} else {
		tree.InsertSlice(fs)
	}
	if c.Snapshot != "" {
		if err = writeSnapshot(c, tree); err != nil {
			return nil, err
		}
	}
	return func(b rtree.Box) []string {
		var keys []string
		for f := range tree.QueryFunc(b, func(f orbgeom.Feature) bool { return f.IntersectsBox(b) }) {
			keys = append(keys, f.Key())
		}
		return keys
	}, nil
}

func writeSnapshot(c *config, tree *rtree.Tree[orbgeom.Feature]) (err error) {
	snap, err := packedrtree.NewSnapshot(tree, uint16(c.NodeSize))
	if err != nil {
		return err
	}
	f, err := os.Create(c.Snapshot)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return snapshot.Write(f, filepath.Base(c.Input), snap, orbgeom.Feature.Key, c.compression)
}

// snapshotQuery reads a snapshot and returns a function that finds the
// keys of the records whose box meets a box.
func snapshotQuery(path string) (func(rtree.Box) []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	_, index, recs, err := snapshot.Read(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return func(b rtree.Box) []string {
		var keys []string
		if index == nil {
			return keys
		}
		for r := range index.SearchSeq(b) {
			keys = append(keys, recs[r.Offset].Key)
		}
		return keys
	}, nil
}

// runQueries runs each query on at most parallel goroutines at once.
// The index being queried is not modified while queries run. The keys
// found by each query are sorted.
func runQueries(ctx context.Context, boxes []rtree.Box, parallel int, query func(rtree.Box) []string) ([][]string, error) {
	results := make([][]string, len(boxes))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i, b := range boxes {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			keys := query(b)
			slices.Sort(keys)
			results[i] = keys
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
