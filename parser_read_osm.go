package osm2rail

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"github.com/pkg/errors"
)

// ErrUnknownExtension is returned when scanner can't be guessed from file extension
var ErrUnknownExtension = errors.New("file extension is not handled")

type OSMScanner interface {
	Scan() bool
	Close() error
	Err() error
	Object() osm.Object
}

// ReadOSM reads railway ways and nodes referenced by them.
// Any I/O or decoding error is fatal: partially read data is never returned
func (parser *Parser) ReadOSM(ctx context.Context) (*OSMData, error) {
	parser.logger.Info("opening file", "filename", parser.filename)
	file, err := os.Open(parser.filename)
	if err != nil {
		return nil, errors.Wrap(err, "Can't open file")
	}
	defer file.Close()

	st := time.Now()
	ways, nodesSeen, err := parser.scanWays(ctx, file)
	if err != nil {
		return nil, errors.Wrap(err, "Can't process ways")
	}
	parser.logger.Info("processed ways", "ways", len(ways), "referenced_nodes", len(nodesSeen), "elapsed", time.Since(st))

	// Seek file to start
	_, err = file.Seek(0, io.SeekStart)
	if err != nil {
		return nil, errors.Wrap(err, "Can't repeat seeking after ways scanning")
	}

	st = time.Now()
	nodes, err := parser.scanNodes(ctx, file, nodesSeen)
	if err != nil {
		return nil, errors.Wrap(err, "Can't process nodes")
	}
	parser.logger.Info("processed nodes", "nodes", len(nodes), "elapsed", time.Since(st))

	// Scanned nodes are removed from nodesSeen, so leftovers are missing in file
	if len(nodesSeen) > 0 {
		if parser.strictMode {
			return nil, errors.Wrapf(ErrMissingNode, "%d referenced nodes are absent in '%s'", len(nodesSeen), parser.filename)
		}
		parser.logger.Warn("referenced nodes are absent in file", "missing", len(nodesSeen))
	}

	return &OSMData{
		Ways:  ways,
		Nodes: nodes,
	}, nil
}

func (parser *Parser) scanWays(ctx context.Context, file io.Reader) ([]RailwayWay, map[osm.NodeID]struct{}, error) {
	scanner, err := parser.newScanner(ctx, file, osm.TypeWay)
	if err != nil {
		return nil, nil, err
	}
	defer scanner.Close()

	ways := []RailwayWay{}
	nodesSeen := make(map[osm.NodeID]struct{})
	for scanner.Scan() {
		obj := scanner.Object()
		if obj.ObjectID().Type() != osm.TypeWay {
			continue
		}
		way := obj.(*osm.Way)
		if !parser.isRailway(way.Tags.Find("railway")) {
			continue
		}
		preparedWay := NewRailwayWay(way)
		for _, nodeID := range preparedWay.Nodes {
			nodesSeen[nodeID] = struct{}{}
		}
		ways = append(ways, preparedWay)
		if parser.limit > 0 && len(ways) >= parser.limit {
			break
		}
	}
	err = scanner.Err()
	if err != nil {
		return nil, nil, err
	}
	return ways, nodesSeen, nil
}

func (parser *Parser) scanNodes(ctx context.Context, file io.Reader, nodesSeen map[osm.NodeID]struct{}) (NodeStore, error) {
	scanner, err := parser.newScanner(ctx, file, osm.TypeNode)
	if err != nil {
		return nil, err
	}
	defer scanner.Close()

	nodes := make(NodeStore, len(nodesSeen))
	for scanner.Scan() {
		obj := scanner.Object()
		if obj.ObjectID().Type() != osm.TypeNode {
			continue
		}
		node := obj.(*osm.Node)
		if _, ok := nodesSeen[node.ID]; !ok {
			continue
		}
		delete(nodesSeen, node.ID)
		nodes[node.ID] = newNode(node, parser.nodeTags)
		if len(nodesSeen) == 0 {
			break
		}
	}
	err = scanner.Err()
	if err != nil {
		return nil, err
	}
	return nodes, nil
}

// newScanner guesses file extension and prepares scanner. PBF scanner skips objects of other types than `only`
func (parser *Parser) newScanner(ctx context.Context, file io.Reader, only osm.Type) (OSMScanner, error) {
	ext := filepath.Ext(parser.filename)
	switch ext {
	case ".osm", ".xml":
		return osmxml.New(ctx, file), nil
	case ".pbf":
		scanner := osmpbf.New(ctx, file, parser.workers)
		scanner.SkipNodes = only != osm.TypeNode
		scanner.SkipWays = only != osm.TypeWay
		scanner.SkipRelations = true
		return scanner, nil
	default:
		return nil, errors.Wrapf(ErrUnknownExtension, "extension '%s' for file '%s'", ext, parser.filename)
	}
}
