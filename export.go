package osm2rail

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// ErrUnknownFormat is returned for unsupported output or geometry format
var ErrUnknownFormat = errors.New("unknown format")

const (
	FORMAT_JSON    = "json"
	FORMAT_CSV     = "csv"
	FORMAT_GEOJSON = "geojson"
	GEOM_WKT       = "wkt"
	GEOM_GEOJSON   = "geojson"
)

// WriteSegmentsJSON writes segments as pretty printed JSON array
func WriteSegmentsJSON(w io.Writer, stats []SegmentStats) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	err := encoder.Encode(stats)
	if err != nil {
		return errors.Wrap(err, "Can't encode segments")
	}
	return nil
}

// WriteSegmentsCSV writes segments as ';'-separated CSV. Geometry column is either WKT or GeoJSON
func WriteSegmentsCSV(w io.Writer, stats []SegmentStats, store NodeStore, geomFormat string) error {
	geomFormat = strings.ToLower(geomFormat)
	if geomFormat != GEOM_WKT && geomFormat != GEOM_GEOJSON {
		return errors.Wrapf(ErrUnknownFormat, "geometry format '%s'", geomFormat)
	}
	writer := csv.NewWriter(w)
	writer.Comma = ';'

	err := writer.Write([]string{"id", "name", "distance", "num_nodes", "node_ids", "geom"})
	if err != nil {
		return errors.Wrap(err, "Can't write header")
	}
	for _, s := range stats {
		nodeIDs := make([]string, len(s.NodeIDs))
		for i, nodeID := range s.NodeIDs {
			nodeIDs[i] = fmt.Sprintf("%d", nodeID)
		}
		line := Segment{WayID: s.ID, Name: s.Name, Nodes: s.NodeIDs}.LineString(store)
		var geomStr string
		if geomFormat == GEOM_GEOJSON {
			geomStr, err = PrepareGeoJSONLinestring(line)
			if err != nil {
				return errors.Wrapf(err, "Way ID: '%d'", s.ID)
			}
		} else {
			geomStr = PrepareWKTLinestring(line)
		}
		err = writer.Write([]string{
			fmt.Sprintf("%d", s.ID),
			s.Name,
			fmt.Sprintf("%f", s.Distance),
			fmt.Sprintf("%d", s.NumNodes),
			strings.Join(nodeIDs, ","),
			geomStr,
		})
		if err != nil {
			return errors.Wrap(err, "Can't write segment")
		}
	}
	writer.Flush()
	return errors.Wrap(writer.Error(), "Can't flush CSV")
}

// WriteSegmentsGeoJSON writes segments as GeoJSON FeatureCollection. Returns number of skipped segments
func WriteSegmentsGeoJSON(w io.Writer, stats []SegmentStats, store NodeStore) (int, error) {
	fc, skipped := PrepareGeoJSONSegments(stats, store)
	b, err := fc.MarshalJSON()
	if err != nil {
		return skipped, errors.Wrap(err, "Can't marshal feature collection")
	}
	_, err = w.Write(b)
	if err != nil {
		return skipped, errors.Wrap(err, "Can't write feature collection")
	}
	return skipped, nil
}

// WriteTagFrequencyJSON writes tag frequency table as pretty printed JSON
func WriteTagFrequencyJSON(w io.Writer, freq TagFrequency) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	err := encoder.Encode(freq)
	if err != nil {
		return errors.Wrap(err, "Can't encode tag frequency")
	}
	return nil
}

// SegmentsFilename returns output file name for given prefix and format. E.g.: 'segments' + 'csv' -> 'segments.csv'
func SegmentsFilename(prefix, format string) string {
	ext := "." + format
	return strings.TrimSuffix(prefix, ext) + ext
}

// ExportSegments writes segments into file in given format (json / csv / geojson)
func ExportSegments(fname, format string, stats []SegmentStats, store NodeStore, geomFormat string) error {
	format = strings.ToLower(format)
	if format != FORMAT_JSON && format != FORMAT_CSV && format != FORMAT_GEOJSON {
		return errors.Wrapf(ErrUnknownFormat, "output format '%s'", format)
	}
	file, err := os.Create(fname)
	if err != nil {
		return errors.Wrap(err, "Can't create file")
	}
	defer file.Close()

	switch format {
	case FORMAT_CSV:
		err = WriteSegmentsCSV(file, stats, store, geomFormat)
	case FORMAT_GEOJSON:
		_, err = WriteSegmentsGeoJSON(file, stats, store)
	default:
		err = WriteSegmentsJSON(file, stats)
	}
	if err != nil {
		return errors.Wrapf(err, "Can't export segments to '%s'", fname)
	}
	return file.Close()
}
