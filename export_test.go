package osm2rail

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	geojson "github.com/paulmach/go.geojson"
	"github.com/paulmach/osm"
	"github.com/pkg/errors"
)

func sampleStats() []SegmentStats {
	return []SegmentStats{
		{ID: 1, Name: "way 1", Distance: 1.5, NodeIDs: []osm.NodeID{1, 2, 3}, NumNodes: 3},
		{ID: 2, Name: "way; 2", Distance: 0, NodeIDs: []osm.NodeID{3, 99}, NumNodes: 2},
	}
}

func TestWriteSegmentsJSON(t *testing.T) {
	buf := bytes.Buffer{}
	err := WriteSegmentsJSON(&buf, sampleStats())
	if err != nil {
		t.Fatal(err)
	}
	records := []map[string]interface{}{}
	err = json.Unmarshal(buf.Bytes(), &records)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("Should be 2 records, but got %d", len(records))
	}
	for _, key := range []string{"id", "name", "distance", "node_ids", "num_nodes"} {
		if _, ok := records[0][key]; !ok {
			t.Errorf("Record should contain '%s' field, but got %v", key, records[0])
		}
	}
	if records[0]["num_nodes"].(float64) != 3 || records[0]["distance"].(float64) != 1.5 {
		t.Errorf("Record has been written incorrectly: %v", records[0])
	}
}

func TestWriteSegmentsCSV(t *testing.T) {
	store := sampleStore()
	for _, geomFormat := range []string{GEOM_WKT, GEOM_GEOJSON} {
		buf := bytes.Buffer{}
		err := WriteSegmentsCSV(&buf, sampleStats(), store, geomFormat)
		if err != nil {
			t.Fatal(err)
		}
		reader := csv.NewReader(&buf)
		reader.Comma = ';'
		rows, err := reader.ReadAll()
		if err != nil {
			t.Fatal(err)
		}
		if len(rows) != 3 {
			t.Fatalf("Should be header and 2 rows, but got %d rows", len(rows))
		}
		if strings.Join(rows[0], ";") != "id;name;distance;num_nodes;node_ids;geom" {
			t.Errorf("Wrong header: %v", rows[0])
		}
		if rows[1][4] != "1,2,3" {
			t.Errorf("Node IDs should be '1,2,3', but got '%s'", rows[1][4])
		}
		if rows[2][1] != "way; 2" {
			t.Errorf("Name should be 'way; 2', but got '%s'", rows[2][1])
		}
		switch geomFormat {
		case GEOM_WKT:
			if !strings.HasPrefix(rows[1][5], "LINESTRING") {
				t.Errorf("Geometry should be WKT LineString, but got '%s'", rows[1][5])
			}
		case GEOM_GEOJSON:
			geom, err := geojson.UnmarshalGeometry([]byte(rows[1][5]))
			if err != nil {
				t.Fatal(err)
			}
			if !geom.IsLineString() || len(geom.LineString) != 3 {
				t.Errorf("Geometry should be LineString of 3 points, but got %v", geom)
			}
		}
	}

	err := WriteSegmentsCSV(&bytes.Buffer{}, sampleStats(), store, "kml")
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Unknown geometry format should give ErrUnknownFormat, but got %v", err)
	}
}

func TestWriteSegmentsGeoJSON(t *testing.T) {
	buf := bytes.Buffer{}
	skipped, err := WriteSegmentsGeoJSON(&buf, sampleStats(), sampleStore())
	if err != nil {
		t.Fatal(err)
	}
	// Second segment has single resolved node
	if skipped != 1 {
		t.Errorf("Should be 1 skipped segment, but got %d", skipped)
	}
	fc, err := geojson.UnmarshalFeatureCollection(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if len(fc.Features) != 1 {
		t.Fatalf("Should be 1 feature, but got %d", len(fc.Features))
	}
	feature := fc.Features[0]
	if name, _ := feature.PropertyString("name"); name != "way 1" {
		t.Errorf("Feature name should be 'way 1', but got '%s'", name)
	}
	if distance, _ := feature.PropertyFloat64("distance"); distance != 1.5 {
		t.Errorf("Feature distance should be 1.5, but got %f", distance)
	}
}

func TestWriteTagFrequencyJSON(t *testing.T) {
	buf := bytes.Buffer{}
	err := WriteTagFrequencyJSON(&buf, CollectTagFrequency(sampleTagged()).Filter(2))
	if err != nil {
		t.Fatal(err)
	}
	freq := TagFrequency{}
	err = json.Unmarshal(buf.Bytes(), &freq)
	if err != nil {
		t.Fatal(err)
	}
	if freq["railway"]["rail"] != 4 || freq["gauge"]["1520"] != 2 || len(freq) != 2 {
		t.Errorf("Tag frequency has been written incorrectly: %v", freq)
	}
}

func TestExportSegments(t *testing.T) {
	dir := t.TempDir()
	for _, format := range []string{FORMAT_JSON, FORMAT_CSV, FORMAT_GEOJSON} {
		fname := SegmentsFilename(filepath.Join(dir, "segments"), format)
		if filepath.Ext(fname) != "."+format {
			t.Errorf("File name should have '.%s' extension, but got '%s'", format, fname)
		}
		err := ExportSegments(fname, format, sampleStats(), sampleStore(), GEOM_WKT)
		if err != nil {
			t.Fatal(err)
		}
		info, err := os.Stat(fname)
		if err != nil {
			t.Fatal(err)
		}
		if info.Size() == 0 {
			t.Errorf("File '%s' should not be empty", fname)
		}
	}
	err := ExportSegments(filepath.Join(dir, "segments.kml"), "kml", sampleStats(), sampleStore(), GEOM_WKT)
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Unknown output format should give ErrUnknownFormat, but got %v", err)
	}
	if name := SegmentsFilename("out.csv", FORMAT_CSV); name != "out.csv" {
		t.Errorf("Extension should not be doubled, but got '%s'", name)
	}
}
