package osm2rail

import (
	"github.com/paulmach/osm"
	"github.com/pkg/errors"
)

// OSMData is what has been read from OSM file: railway ways and nodes referenced by them
type OSMData struct {
	Ways  []RailwayWay
	Nodes NodeStore
}

// SegmentStats is output record for single segment
type SegmentStats struct {
	ID       osm.WayID    `json:"id"`
	Name     string       `json:"name"`
	Distance float64      `json:"distance"`
	NodeIDs  []osm.NodeID `json:"node_ids"`
	NumNodes int          `json:"num_nodes"`
}

// Segments splits railway ways by junctions. Values of workers greater than 1 enable parallel processing
func (data *OSMData) Segments(workers int) []Segment {
	if workers > 1 {
		return SegmentRailwaysParallel(data.Ways, workers)
	}
	return SegmentRailways(data.Ways)
}

// Stats evaluates distance for every segment in given units.
// In strict mode first segment with unresolved node aborts processing; otherwise unresolved nodes are only counted
func (data *OSMData) Stats(segments []Segment, units Units, strict bool) ([]SegmentStats, ResolveStats, error) {
	stats := make([]SegmentStats, 0, len(segments))
	total := ResolveStats{}
	for _, segment := range segments {
		var distance float64
		if strict {
			var err error
			distance, err = segment.DistanceStrict(data.Nodes)
			if err != nil {
				return nil, total, errors.Wrap(err, "Can't evaluate segment distance")
			}
			total.Add(ResolveStats{Found: len(segment.Nodes)})
		} else {
			var resolved ResolveStats
			distance, resolved = segment.DistanceStats(data.Nodes)
			total.Add(resolved)
		}
		stats = append(stats, SegmentStats{
			ID:       segment.WayID,
			Name:     segment.Name,
			Distance: units.FromKilometers(distance),
			NodeIDs:  segment.Nodes,
			NumNodes: len(segment.Nodes),
		})
	}
	return stats, total, nil
}
