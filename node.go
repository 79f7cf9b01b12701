package osm2rail

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
)

// Node is a point referenced by at least one railway way
type Node struct {
	ID   osm.NodeID
	Lat  float64
	Lon  float64
	Tags map[string]string
}

func newNode(node *osm.Node, withTags bool) Node {
	prepared := Node{
		ID:  node.ID,
		Lat: node.Lat,
		Lon: node.Lon,
	}
	if withTags && len(node.Tags) > 0 {
		prepared.Tags = node.Tags.Map()
	}
	return prepared
}

// Point returns node location as orb.Point (Lon == X, Lat == Y)
func (node Node) Point() orb.Point {
	return orb.Point{node.Lon, node.Lat}
}

// GeoPoint returns node location as GeoPoint
func (node Node) GeoPoint() GeoPoint {
	return GeoPoint{Lat: node.Lat, Lon: node.Lon}
}

// TagMap returns node tags. Could be nil when tags were not collected
func (node Node) TagMap() map[string]string {
	return node.Tags
}

// NodeStore maps node identifiers to nodes. It is built once by the parser and must not be modified afterwards
type NodeStore map[osm.NodeID]Node

// Lookup returns node for given identifier. Absent identifier is not an error: ok is false then
func (store NodeStore) Lookup(id osm.NodeID) (Node, bool) {
	node, ok := store[id]
	return node, ok
}
