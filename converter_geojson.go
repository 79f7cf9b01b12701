package osm2rail

import (
	geojson "github.com/paulmach/go.geojson"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

func lineToPositions(line orb.LineString) [][]float64 {
	pts2d := make([][]float64, len(line))
	for i := range line {
		pts2d[i] = []float64{line[i].Lon(), line[i].Lat()}
	}
	return pts2d
}

// PrepareGeoJSONLinestring returns GeoJSON representation of LineString
func PrepareGeoJSONLinestring(line orb.LineString) (string, error) {
	b, err := geojson.NewLineStringGeometry(lineToPositions(line)).MarshalJSON()
	if err != nil {
		return "", errors.Wrap(err, "Can't convert geometry to GeoJSON")
	}
	return string(b), nil
}

// PrepareGeoJSONSegments returns FeatureCollection with one LineString feature per segment.
// Segments with less than 2 resolved nodes have no line geometry and are skipped
func PrepareGeoJSONSegments(stats []SegmentStats, store NodeStore) (*geojson.FeatureCollection, int) {
	fc := geojson.NewFeatureCollection()
	skipped := 0
	for _, s := range stats {
		line := Segment{WayID: s.ID, Name: s.Name, Nodes: s.NodeIDs}.LineString(store)
		if len(line) < 2 {
			skipped++
			continue
		}
		feature := geojson.NewLineStringFeature(lineToPositions(line))
		feature.SetProperty("id", int64(s.ID))
		feature.SetProperty("name", s.Name)
		feature.SetProperty("distance", s.Distance)
		feature.SetProperty("num_nodes", s.NumNodes)
		fc.AddFeature(feature)
	}
	return fc, skipped
}
