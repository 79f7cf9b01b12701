package main

import (
	"context"
	"flag"
	"os"
	"strings"

	"github.com/LdDl/osm2rail"
	"github.com/pkg/errors"
)

var (
	osmFileName   = flag.String("file", "railways.osm.pbf", "Filename of *.osm.pbf or *.osm (XML) file")
	out           = flag.String("out", "railway_tags.json", "Filename of output JSON file")
	minCount      = flag.Int64("min", 100, "Keep only key/value pairs met at least this number of times")
	railwayValues = flag.String("railway", "rail", "Set of needed `railway` tag values (separated by commas)")
	nodes         = flag.Bool("nodes", false, "Aggregate tags of nodes referenced by railways instead of tags of railways")
	verbose       = flag.Bool("verbose", false, "Print debug information")
)

func main() {
	flag.Parse()
	logger := osm2rail.NewLogger(os.Stderr, *verbose)

	parser := osm2rail.NewParser(
		*osmFileName,
		osm2rail.WithRailwayValues(strings.Split(*railwayValues, ",")),
		osm2rail.WithNodeTags(*nodes),
		osm2rail.WithLogger(logger),
	)
	data, err := parser.ReadOSM(context.Background())
	if err != nil {
		logger.Error("can't read OSM data", "err", err)
		os.Exit(1)
	}

	var freq osm2rail.TagFrequency
	if *nodes {
		freq = make(osm2rail.TagFrequency)
		for _, node := range data.Nodes {
			freq.Add(node)
		}
	} else {
		freq = osm2rail.CollectTagFrequency(data.Ways)
	}
	filtered := freq.Filter(*minCount)
	logger.Info("tags aggregated", "keys", len(freq), "kept_keys", len(filtered), "min_count", *minCount)

	err = writeJSON(*out, filtered)
	if err != nil {
		logger.Error("can't write tags", "err", err)
		os.Exit(1)
	}
	logger.Info("tags exported", "filename", *out)
}

func writeJSON(fname string, freq osm2rail.TagFrequency) error {
	file, err := os.Create(fname)
	if err != nil {
		return errors.Wrap(err, "Can't create file")
	}
	defer file.Close()
	err = osm2rail.WriteTagFrequencyJSON(file, freq)
	if err != nil {
		return err
	}
	return file.Close()
}
