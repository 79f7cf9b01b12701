package osm2rail

import (
	"github.com/LdDl/ch"
	"github.com/pkg/errors"
)

type graphArc struct {
	source int64
	target int64
}

// BuildGraph prepares routable graph where vertices are segment end nodes and every segment is an edge weighted by its distance.
// Railway track is treated as bidirectional. For parallel segments between the same vertices the shortest one is kept.
// Segments with less than 2 nodes or with the same first and last node do not produce edges
func BuildGraph(stats []SegmentStats) (*ch.Graph, error) {
	weights := make(map[graphArc]float64)
	arcs := []graphArc{}
	for _, s := range stats {
		if len(s.NodeIDs) < 2 {
			continue
		}
		source := int64(s.NodeIDs[0])
		target := int64(s.NodeIDs[len(s.NodeIDs)-1])
		if source == target {
			continue
		}
		for _, arc := range []graphArc{{source, target}, {target, source}} {
			if weight, ok := weights[arc]; ok {
				if s.Distance < weight {
					weights[arc] = s.Distance
				}
				continue
			}
			weights[arc] = s.Distance
			arcs = append(arcs, arc)
		}
	}

	graph := ch.Graph{}
	created := make(map[int64]struct{})
	for _, arc := range arcs {
		for _, vertex := range []int64{arc.source, arc.target} {
			if _, ok := created[vertex]; ok {
				continue
			}
			err := graph.CreateVertex(vertex)
			if err != nil {
				return nil, errors.Wrapf(err, "Can't create vertex %d", vertex)
			}
			created[vertex] = struct{}{}
		}
		err := graph.AddEdge(arc.source, arc.target, weights[arc])
		if err != nil {
			return nil, errors.Wrapf(err, "Can't add edge %d -> %d", arc.source, arc.target)
		}
	}
	return &graph, nil
}
