package osm2rail

import (
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/pkg/errors"
)

var (
	// ErrMissingNode is returned in strict mode when node coordinates can't be resolved
	ErrMissingNode = errors.New("node is missing in node store")
	// ErrUnknownUnits is returned for unsupported distance units
	ErrUnknownUnits = errors.New("unknown units")
)

// ResolveStats counts how many node references were resolved to coordinates
type ResolveStats struct {
	Found    int
	NotFound int
}

// Add accumulates other into stats
func (stats *ResolveStats) Add(other ResolveStats) {
	stats.Found += other.Found
	stats.NotFound += other.NotFound
}

// resolve returns coordinates of nodes which exist in store (in segment order) and the first missing node
func (segment Segment) resolve(store NodeStore) ([]GeoPoint, ResolveStats, osm.NodeID) {
	line := make([]GeoPoint, 0, len(segment.Nodes))
	stats := ResolveStats{}
	var firstMissing osm.NodeID
	for _, nodeID := range segment.Nodes {
		node, ok := store.Lookup(nodeID)
		if !ok {
			if stats.NotFound == 0 {
				firstMissing = nodeID
			}
			stats.NotFound++
			continue
		}
		stats.Found++
		line = append(line, node.GeoPoint())
	}
	return line, stats, firstMissing
}

// Distance returns great-circle length of segment (kilometers).
// Nodes which are absent in store are skipped: line goes straight through remaining neighbours.
// Less than two resolved nodes give zero length
func (segment Segment) Distance(store NodeStore) float64 {
	distance, _ := segment.DistanceStats(store)
	return distance
}

// DistanceStats returns the same as Distance and tells how many nodes have been resolved
func (segment Segment) DistanceStats(store NodeStore) (float64, ResolveStats) {
	line, stats, _ := segment.resolve(store)
	return getSphericalLength(line), stats
}

// DistanceStrict returns length of segment (kilometers) or error wrapping ErrMissingNode if any node can't be resolved
func (segment Segment) DistanceStrict(store NodeStore) (float64, error) {
	line, stats, firstMissing := segment.resolve(store)
	if stats.NotFound > 0 {
		return 0, errors.Wrapf(ErrMissingNode, "Way ID: '%d', node ID: '%d' (%d of %d nodes missing)", segment.WayID, firstMissing, stats.NotFound, len(segment.Nodes))
	}
	return getSphericalLength(line), nil
}

// LineString returns geometry of segment. Unresolved nodes are skipped the same way as in Distance
func (segment Segment) LineString(store NodeStore) orb.LineString {
	line, _, _ := segment.resolve(store)
	return toLineString(line)
}

// Units of output distances
type Units uint16

const (
	UNITS_KILOMETERS = Units(iota + 1)
	UNITS_METERS
)

func (iotaIdx Units) String() string {
	return [...]string{"km", "m"}[iotaIdx-1]
}

// ParseUnits parses units from string. Expected values: km, m
func ParseUnits(s string) (Units, error) {
	switch strings.ToLower(s) {
	case "km", "kilometers":
		return UNITS_KILOMETERS, nil
	case "m", "meters":
		return UNITS_METERS, nil
	default:
		return 0, errors.Wrapf(ErrUnknownUnits, "'%s'", s)
	}
}

// FromKilometers converts distance in kilometers to units
func (units Units) FromKilometers(km float64) float64 {
	if units == UNITS_METERS {
		return km * 1000.0
	}
	return km
}
