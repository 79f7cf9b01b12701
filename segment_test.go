package osm2rail

import (
	"reflect"
	"testing"

	"github.com/paulmach/osm"
)

func TestSegmentRailways(t *testing.T) {
	segments := SegmentRailways(sampleWays())
	if len(segments) != 7 {
		t.Fatalf("Number of segments should be 7, but got %d: %v", len(segments), segments)
	}
	correct := []Segment{
		{WayID: 1, Name: "way 1", Nodes: []osm.NodeID{1, 2}},
		{WayID: 1, Name: "way 1", Nodes: []osm.NodeID{2, 3}},
		{WayID: 1, Name: "way 1", Nodes: []osm.NodeID{3, 6}},
		{WayID: 1, Name: "way 1", Nodes: []osm.NodeID{6, 8, 9}},
		{WayID: 2, Name: "way 2", Nodes: []osm.NodeID{2, 3}},
		{WayID: 3, Name: "way 3", Nodes: []osm.NodeID{4, 5, 6}},
		{WayID: 3, Name: "way 3", Nodes: []osm.NodeID{6, 7}},
	}
	if !reflect.DeepEqual(segments, correct) {
		t.Errorf("Segments should be %v, but got %v", correct, segments)
	}
}

func TestSplit(t *testing.T) {
	junctions := Junctions{2: {}, 5: {}, 9: {}}
	cases := []struct {
		name  string
		nodes []osm.NodeID
		want  [][]osm.NodeID
	}{
		{"empty", []osm.NodeID{}, [][]osm.NodeID{{}}},
		{"single node", []osm.NodeID{2}, [][]osm.NodeID{{2}}},
		{"no junctions", []osm.NodeID{1, 3, 4}, [][]osm.NodeID{{1, 3, 4}}},
		{"first node junction", []osm.NodeID{2, 3, 4}, [][]osm.NodeID{{2, 3, 4}}},
		{"last node junction", []osm.NodeID{1, 3, 5}, [][]osm.NodeID{{1, 3, 5}}},
		{"both ends junctions", []osm.NodeID{2, 3, 5}, [][]osm.NodeID{{2, 3, 5}}},
		{"interior junction", []osm.NodeID{1, 2, 3}, [][]osm.NodeID{{1, 2}, {2, 3}}},
		{"adjacent junctions", []osm.NodeID{1, 2, 5, 3}, [][]osm.NodeID{{1, 2}, {2, 5}, {5, 3}}},
		{"two nodes both junctions", []osm.NodeID{2, 5}, [][]osm.NodeID{{2, 5}}},
		{"loop on junction", []osm.NodeID{9, 1, 3, 9}, [][]osm.NodeID{{9, 1, 3, 9}}},
		{"loop through interior", []osm.NodeID{1, 9, 3, 9, 4}, [][]osm.NodeID{{1, 9}, {9, 3, 9}, {9, 4}}},
	}
	for _, c := range cases {
		way := RailwayWay{ID: 42, Name: "test", Nodes: c.nodes}
		segments := way.Split(junctions)
		got := make([][]osm.NodeID, len(segments))
		for i, segment := range segments {
			got[i] = segment.Nodes
			if segment.WayID != 42 || segment.Name != "test" {
				t.Errorf("[%s] Segment should inherit way ID and name, but got %d '%s'", c.name, segment.WayID, segment.Name)
			}
		}
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("[%s] Segments should be %v, but got %v", c.name, c.want, got)
		}
	}
}

func TestSplitProperties(t *testing.T) {
	ways := []RailwayWay{
		{ID: 1, Nodes: []osm.NodeID{100, 101, 102, 103, 104, 105, 106, 107}},
		{ID: 2, Nodes: []osm.NodeID{200, 102, 201, 105, 202}},
		{ID: 3, Nodes: []osm.NodeID{300, 301, 302, 301, 303}},
		{ID: 4, Nodes: []osm.NodeID{400, 401, 402}},
		{ID: 5, Nodes: []osm.NodeID{107, 500, 501, 100}},
	}
	junctions := FindJunctions(ways)
	for _, way := range ways {
		segments := way.Split(junctions)

		// Number of segments: one plus interior junction positions (a junction at the last position closes the last segment)
		cuts := 0
		for i := 1; i < len(way.Nodes)-1; i++ {
			if junctions.Contains(way.Nodes[i]) {
				cuts++
			}
		}
		if len(segments) != cuts+1 {
			t.Errorf("Way %d: number of segments should be %d, but got %d", way.ID, cuts+1, len(segments))
		}

		// Reconstruction: drop the first node of every segment but the first one
		restored := append([]osm.NodeID{}, segments[0].Nodes...)
		for _, segment := range segments[1:] {
			restored = append(restored, segment.Nodes[1:]...)
		}
		if !reflect.DeepEqual(restored, way.Nodes) {
			t.Errorf("Way %d: restored nodes should be %v, but got %v", way.ID, way.Nodes, restored)
		}

		// Connectivity: adjacent segments share the cut junction
		for i := 1; i < len(segments); i++ {
			prev := segments[i-1].Nodes
			cut := prev[len(prev)-1]
			if segments[i].Nodes[0] != cut {
				t.Errorf("Way %d: segment %d should start with %d, but starts with %d", way.ID, i, cut, segments[i].Nodes[0])
			}
			if !junctions.Contains(cut) {
				t.Errorf("Way %d: cut node %d should be a junction", way.ID, cut)
			}
		}

		for _, segment := range segments {
			if len(segment.Nodes) < 2 {
				t.Errorf("Way %d: segment %v should have at least 2 nodes", way.ID, segment.Nodes)
			}
		}
	}

	// Isolated way without repeated nodes is passed through
	isolated := ways[3].Split(junctions)
	if len(isolated) != 1 || !reflect.DeepEqual(isolated[0].Nodes, ways[3].Nodes) {
		t.Errorf("Isolated way should give single segment %v, but got %v", ways[3].Nodes, isolated)
	}
}

func TestSplitCopiesNodes(t *testing.T) {
	way := RailwayWay{ID: 1, Nodes: []osm.NodeID{1, 2, 3}}
	segments := way.Split(Junctions{2: {}})
	way.Nodes[1] = 999
	if segments[0].Nodes[1] != 2 || segments[1].Nodes[0] != 2 {
		t.Errorf("Segments should not share memory with way, but got %v", segments)
	}
	segments[0].Nodes[1] = 777
	if segments[1].Nodes[0] != 2 {
		t.Errorf("Segments should not share memory with each other, but got %v", segments)
	}
}

func TestSegmentRailwaysParallel(t *testing.T) {
	ways := []RailwayWay{}
	for i := 0; i < 50; i++ {
		base := osm.NodeID(i * 10)
		// Every way shares its last node with the first node of the next one and crosses node 5000
		ways = append(ways, RailwayWay{
			ID:    osm.WayID(i + 1),
			Nodes: []osm.NodeID{base, base + 1, 5000, base + 2, base + 10},
		})
	}
	sequential := SegmentRailways(ways)
	for _, workers := range []int{0, 1, 2, 3, 7, 64} {
		parallel := SegmentRailwaysParallel(ways, workers)
		if !reflect.DeepEqual(parallel, sequential) {
			t.Errorf("Parallel segmentation with %d workers should be equal to sequential one", workers)
		}
	}
}

func TestPartitionWays(t *testing.T) {
	ways := make([]RailwayWay, 10)
	for i := range ways {
		ways[i].ID = osm.WayID(i)
	}
	chunks := partitionWays(ways, 3)
	if len(chunks) != 3 {
		t.Fatalf("Should be 3 chunks, but got %d", len(chunks))
	}
	total := 0
	next := osm.WayID(0)
	for _, chunk := range chunks {
		for _, way := range chunk {
			if way.ID != next {
				t.Errorf("Chunks should keep order: expected way %d, got %d", next, way.ID)
			}
			next++
		}
		total += len(chunk)
	}
	if total != len(ways) {
		t.Errorf("Chunks should contain %d ways, but got %d", len(ways), total)
	}
	if chunks := partitionWays(ways[:2], 5); len(chunks) != 2 {
		t.Errorf("Number of chunks should not exceed number of ways, but got %d", len(chunks))
	}
}
