package osm2rail

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"golang.org/x/exp/slog"
)

type Parser struct {
	filename      string
	railwayValues []string
	logger        *slog.Logger
	limit         int
	workers       int
	strictMode    bool
	nodeTags      bool
}

func (parser *Parser) String() string {
	return fmt.Sprintf(`
Railway parser parameters:
	filename: '%s'
	railway_values: '%s'
	limit: %d
	workers: %d
	strict_mode enabled?: %t
	node_tags enabled?: %t
	`,
		parser.filename,
		strings.Join(parser.railwayValues, ","),
		parser.limit,
		parser.workers,
		parser.strictMode,
		parser.nodeTags,
	)
}

func NewParser(fileName string, options ...func(*Parser)) *Parser {
	parser := &Parser{
		filename:      fileName,
		railwayValues: defaultRailwayValues,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		limit:         0,
		workers:       runtime.GOMAXPROCS(-1),
		strictMode:    false,
		nodeTags:      true,
	}
	for _, option := range options {
		option(parser)
	}
	return parser
}

// WithRailwayValues sets values of `railway` tag to keep. Default is `rail`
func WithRailwayValues(railwayValues []string) func(*Parser) {
	return func(parser *Parser) {
		if len(railwayValues) > 0 {
			parser.railwayValues = railwayValues
		}
	}
}

// WithLimit keeps only first `limit` railway ways. Zero or negative value means no limit
func WithLimit(limit int) func(*Parser) {
	return func(parser *Parser) {
		parser.limit = limit
	}
}

// WithWorkers sets number of goroutines used by PBF decoder
func WithWorkers(workers int) func(*Parser) {
	return func(parser *Parser) {
		if workers > 0 {
			parser.workers = workers
		}
	}
}

// WithStrictMode makes ReadOSM fail when ways reference nodes which are absent in the file
func WithStrictMode(strictMode bool) func(*Parser) {
	return func(parser *Parser) {
		parser.strictMode = strictMode
	}
}

// WithNodeTags enables collecting of node tags
func WithNodeTags(nodeTags bool) func(*Parser) {
	return func(parser *Parser) {
		parser.nodeTags = nodeTags
	}
}

func WithLogger(logger *slog.Logger) func(*Parser) {
	return func(parser *Parser) {
		if logger != nil {
			parser.logger = logger
		}
	}
}

func (parser *Parser) isRailway(value string) bool {
	if value == "" {
		return false
	}
	for _, railwayValue := range parser.railwayValues {
		if railwayValue == value {
			return true
		}
	}
	return false
}
