package osm2rail

import (
	"github.com/paulmach/osm"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// NodeUsage counts how many times every node is referenced across ways.
// Node which is used twice by the same way (loop) counts twice
type NodeUsage map[osm.NodeID]int

// CountNodeUsage returns usage counts for all nodes of given ways
func CountNodeUsage(ways []RailwayWay) NodeUsage {
	usage := make(NodeUsage)
	for _, way := range ways {
		for _, nodeID := range way.Nodes {
			usage[nodeID]++
		}
	}
	return usage
}

// Merge adds counts of other to usage. Merging order does not matter
func (usage NodeUsage) Merge(other NodeUsage) {
	for nodeID, count := range other {
		usage[nodeID] += count
	}
}

// Junctions returns set of nodes which are used more than once
func (usage NodeUsage) Junctions() Junctions {
	junctions := make(Junctions)
	for nodeID, count := range usage {
		if count > 1 {
			junctions[nodeID] = struct{}{}
		}
	}
	return junctions
}

// Junctions is set of node identifiers where ways meet (or where way meets itself)
type Junctions map[osm.NodeID]struct{}

// FindJunctions returns junction set for given ways
func FindJunctions(ways []RailwayWay) Junctions {
	return CountNodeUsage(ways).Junctions()
}

// Contains checks if node is a junction
func (junctions Junctions) Contains(nodeID osm.NodeID) bool {
	_, ok := junctions[nodeID]
	return ok
}

// Sorted returns junction identifiers in ascending order
func (junctions Junctions) Sorted() []osm.NodeID {
	ids := maps.Keys(junctions)
	slices.Sort(ids)
	return ids
}
