package osm2rail

import (
	"strconv"

	"github.com/paulmach/osm"
)

// RailwayWay is OSM way which represents railway track. No splitting is done yet
type RailwayWay struct {
	ID    osm.WayID
	Name  string
	Nodes []osm.NodeID
	Tags  map[string]string
}

// NewRailwayWay prepares RailwayWay from OSM way.
// Name is taken from `name` tag. If there is no such tag then way identifier is used
func NewRailwayWay(way *osm.Way) RailwayWay {
	tags := way.Tags.Map()
	name, ok := tags["name"]
	if !ok {
		name = strconv.FormatInt(int64(way.ID), 10)
	}
	nodes := make([]osm.NodeID, 0, len(way.Nodes))
	for _, wayNode := range way.Nodes {
		nodes = append(nodes, wayNode.ID)
	}
	return RailwayWay{
		ID:    way.ID,
		Name:  name,
		Nodes: nodes,
		Tags:  tags,
	}
}

// TagMap returns way tags
func (way RailwayWay) TagMap() map[string]string {
	return way.Tags
}
