package osm2rail

import (
	"sync"

	"github.com/paulmach/osm"
)

// Segment is a piece of railway way between junctions (or way ends).
// Adjacent segments of the same way share exactly one node: the junction where the way has been cut
type Segment struct {
	WayID osm.WayID
	Name  string
	Nodes []osm.NodeID
}

// Split cuts way into segments after every junction node except the first node of the way.
// Cut node is kept as the last node of one segment and as the first node of the next one, so no edge is lost.
// Ways with less than 2 nodes are returned as a single segment as is
func (way RailwayWay) Split(junctions Junctions) []Segment {
	if len(way.Nodes) < 2 {
		return []Segment{way.newSegment(way.Nodes)}
	}
	segments := make([]Segment, 0, 1)
	start := 0
	for i := 1; i < len(way.Nodes); i++ {
		if !junctions.Contains(way.Nodes[i]) {
			continue
		}
		segments = append(segments, way.newSegment(way.Nodes[start:i+1]))
		start = i
	}
	// Way which ends on a junction has nothing left after the last cut
	if start < len(way.Nodes)-1 {
		segments = append(segments, way.newSegment(way.Nodes[start:]))
	}
	return segments
}

// newSegment copies nodes, so segment stays valid after the parent way is dropped
func (way RailwayWay) newSegment(nodes []osm.NodeID) Segment {
	segmentNodes := make([]osm.NodeID, len(nodes))
	copy(segmentNodes, nodes)
	return Segment{
		WayID: way.ID,
		Name:  way.Name,
		Nodes: segmentNodes,
	}
}

// SegmentRailways finds junctions among given ways and splits every way by them.
// Segments are returned in the order of ways
func SegmentRailways(ways []RailwayWay) []Segment {
	junctions := FindJunctions(ways)
	segments := make([]Segment, 0, len(ways))
	for _, way := range ways {
		segments = append(segments, way.Split(junctions)...)
	}
	return segments
}

// SegmentRailwaysParallel does the same as SegmentRailways, but counts node usage and splits ways in `workers` goroutines.
// Result is identical to the sequential one
func SegmentRailwaysParallel(ways []RailwayWay, workers int) []Segment {
	if workers < 2 || len(ways) < 2 {
		return SegmentRailways(ways)
	}
	chunks := partitionWays(ways, workers)

	partialUsage := make([]NodeUsage, len(chunks))
	var wg sync.WaitGroup
	for i := range chunks {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			partialUsage[i] = CountNodeUsage(chunks[i])
		}(i)
	}
	wg.Wait()

	usage := make(NodeUsage)
	for _, partial := range partialUsage {
		usage.Merge(partial)
	}
	junctions := usage.Junctions()

	partialSegments := make([][]Segment, len(chunks))
	for i := range chunks {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			chunkSegments := make([]Segment, 0, len(chunks[i]))
			for _, way := range chunks[i] {
				chunkSegments = append(chunkSegments, way.Split(junctions)...)
			}
			partialSegments[i] = chunkSegments
		}(i)
	}
	wg.Wait()

	total := 0
	for _, part := range partialSegments {
		total += len(part)
	}
	segments := make([]Segment, 0, total)
	for _, part := range partialSegments {
		segments = append(segments, part...)
	}
	return segments
}

// partitionWays splits ways into at most n contiguous chunks of nearly equal size
func partitionWays(ways []RailwayWay, n int) [][]RailwayWay {
	if n > len(ways) {
		n = len(ways)
	}
	size := (len(ways) + n - 1) / n
	chunks := make([][]RailwayWay, 0, n)
	for start := 0; start < len(ways); start += size {
		end := start + size
		if end > len(ways) {
			end = len(ways)
		}
		chunks = append(chunks, ways[start:end])
	}
	return chunks
}
