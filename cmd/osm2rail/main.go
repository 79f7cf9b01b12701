package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/LdDl/osm2rail"
	"github.com/pkg/errors"
	"golang.org/x/exp/slog"
)

var (
	configFile    = flag.String("config", "", "Filename of YAML configuration. Flags override values from it")
	envFile       = flag.String("env", ".env", "Filename of .env file with OSM2RAIL_* variables (ignored if missing)")
	osmFileName   = flag.String("file", "railways.osm.pbf", "Filename of *.osm.pbf or *.osm (XML) file")
	out           = flag.String("out", "segments", "Prefix of output files. E.g.: if prefix is 'segments' and format is 'csv' then 'segments.csv' will be produced")
	format        = flag.String("format", "json", "Format of output. Expected values: json / csv / geojson")
	geomFormat    = flag.String("geomf", "wkt", "Format of output geometry for CSV. Expected values: wkt / geojson")
	units         = flag.String("units", "km", "Units of output distances. Expected values: km for kilometers / m for meters")
	railwayValues = flag.String("railway", "rail", "Set of needed `railway` tag values (separated by commas)")
	limit         = flag.Int("limit", 0, "Process only first N railway ways (0 means all)")
	workers       = flag.Int("workers", 1, "Number of goroutines for segmentation")
	strict        = flag.Bool("strict", false, "Fail if any node coordinates are missing instead of skipping such nodes")
	doContraction = flag.Bool("contract", false, "Prepare contraction hierarchies for railway graph?")
	verbose       = flag.Bool("verbose", false, "Print debug information")
)

func main() {
	flag.Parse()
	logger := osm2rail.NewLogger(os.Stderr, *verbose)
	slog.SetDefault(logger)

	cfg, err := prepareConfig()
	if err != nil {
		logger.Error("bad configuration", "err", err)
		os.Exit(1)
	}
	err = run(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("failed", "err", err)
		os.Exit(1)
	}
}

// prepareConfig merges defaults, YAML file, environment and explicitly set flags (in that order)
func prepareConfig() (osm2rail.Config, error) {
	cfg := osm2rail.DefaultConfig()
	var err error
	if *configFile != "" {
		cfg, err = osm2rail.ReadConfig(*configFile)
		if err != nil {
			return cfg, err
		}
	}
	err = osm2rail.LoadEnvFile(*envFile)
	if err != nil {
		return cfg, err
	}
	err = cfg.ApplyEnv()
	if err != nil {
		return cfg, err
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "file":
			cfg.File = *osmFileName
		case "out":
			cfg.Output.Prefix = *out
		case "format":
			cfg.Output.Format = *format
		case "geomf":
			cfg.Output.GeomFormat = *geomFormat
		case "units":
			cfg.Output.Units = *units
		case "railway":
			cfg.RailwayValues = strings.Split(*railwayValues, ",")
		case "limit":
			cfg.Limit = *limit
		case "workers":
			cfg.Workers = *workers
		case "strict":
			cfg.Strict = *strict
		case "contract":
			cfg.Contract = *doContraction
		}
	})
	return cfg, cfg.Validate()
}

func run(ctx context.Context, cfg osm2rail.Config, logger *slog.Logger) error {
	outUnits, err := osm2rail.ParseUnits(cfg.Output.Units)
	if err != nil {
		return err
	}
	parser := osm2rail.NewParser(
		cfg.File,
		osm2rail.WithRailwayValues(cfg.RailwayValues),
		osm2rail.WithLimit(cfg.Limit),
		osm2rail.WithStrictMode(cfg.Strict),
		osm2rail.WithNodeTags(cfg.NodeTags),
		osm2rail.WithLogger(logger),
	)
	logger.Debug(parser.String())

	data, err := parser.ReadOSM(ctx)
	if err != nil {
		return errors.Wrap(err, "Can't read OSM data")
	}

	st := time.Now()
	segments := data.Segments(cfg.Workers)
	logger.Info("segmented railways", "ways", len(data.Ways), "segments", len(segments), "elapsed", time.Since(st))

	st = time.Now()
	stats, resolved, err := data.Stats(segments, outUnits, cfg.Strict)
	if err != nil {
		return err
	}
	logger.Info("evaluated distances", "found_nodes", resolved.Found, "not_found_nodes", resolved.NotFound, "elapsed", time.Since(st))

	fname := osm2rail.SegmentsFilename(cfg.Output.Prefix, strings.ToLower(cfg.Output.Format))
	err = osm2rail.ExportSegments(fname, cfg.Output.Format, stats, data.Nodes, cfg.Output.GeomFormat)
	if err != nil {
		return err
	}
	logger.Info("segments exported", "filename", fname)

	if !cfg.Contract {
		return nil
	}
	return contract(cfg.Output.Prefix, stats, logger)
}

// contract prepares contraction hierarchies for railway graph and writes vertices and shortcuts
func contract(prefix string, stats []osm2rail.SegmentStats, logger *slog.Logger) error {
	graph, err := osm2rail.BuildGraph(stats)
	if err != nil {
		return errors.Wrap(err, "Can't build railway graph")
	}
	logger.Info("starting contraction process", "vertices", len(graph.Vertices))
	st := time.Now()
	graph.PrepareContractionHierarchies()
	logger.Info("done contraction process", "elapsed", time.Since(st))

	fnameVertices := prefix + "_vertices.csv"
	fileVertices, err := os.Create(fnameVertices)
	if err != nil {
		return errors.Wrap(err, "Can't create vertices file")
	}
	defer fileVertices.Close()
	writerVertices := csv.NewWriter(fileVertices)
	writerVertices.Comma = ';'
	// 		vertex_id - int64, ID of OSM node
	// 		order_pos - int, Position of vertex in hierarchies (evaluted by library)
	// 		importance - int, Importance of vertex in graph (evaluted by library)
	err = writerVertices.Write([]string{"vertex_id", "order_pos", "importance"})
	if err != nil {
		return errors.Wrap(err, "Can't write vertices header")
	}
	for i := range graph.Vertices {
		err = writerVertices.Write([]string{
			fmt.Sprintf("%d", graph.Vertices[i].Label),
			fmt.Sprintf("%d", graph.Vertices[i].OrderPos()),
			fmt.Sprintf("%d", graph.Vertices[i].Importance()),
		})
		if err != nil {
			return errors.Wrap(err, "Can't write vertex")
		}
	}
	writerVertices.Flush()
	if err = writerVertices.Error(); err != nil {
		return errors.Wrap(err, "Can't flush vertices")
	}

	// 	from_vertex_id - int64, ID of source vertex
	// 	to_vertex_id - int64, ID of target vertex
	// 	weight - float64, Weight of an edge
	// 	via_vertex_id - int64, ID of vertex through which the shortcut exists
	fnameShortcuts := prefix + "_shortcuts.csv"
	err = graph.ExportShortcutsToFile(fnameShortcuts)
	if err != nil {
		return errors.Wrap(err, "Can't export shortcuts")
	}
	logger.Info("graph exported", "vertices", fnameVertices, "shortcuts", fnameShortcuts)
	return nil
}
