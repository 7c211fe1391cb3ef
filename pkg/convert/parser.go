package convert

import (
	"context"
	"fmt"

	"github.com/yaklabco/mdlite/pkg/config"
	"github.com/yaklabco/mdlite/pkg/mdast"
	"github.com/yaklabco/mdlite/pkg/parser"
	"github.com/yaklabco/mdlite/pkg/parser/goldmark"
)

// Parser turns Markdown bytes into a Document.
//
// Implementations must not mutate content, must return a Document whose
// Source equals content, and must be safe for concurrent use: the runner
// shares one Parser across workers.
type Parser interface {
	// Name identifies the engine in logs and reports.
	Name() string

	// Parse converts content into a Document. path is informational and
	// must not be used for I/O.
	Parse(ctx context.Context, path string, content []byte) (*mdast.Document, error)
}

// NewParser returns the parser engine selected by cfg.
func NewParser(cfg *config.Config) (Parser, error) {
	engine := config.EngineNative
	if cfg != nil && cfg.Engine != "" {
		engine = cfg.Engine
	}

	switch engine {
	case config.EngineNative:
		var opts []parser.Option
		if cfg != nil && cfg.MaxTokens > 0 {
			opts = append(opts, parser.WithMaxTokens(cfg.MaxTokens))
		}
		return parser.New(opts...), nil

	case config.EngineGoldmark:
		flavor := ""
		if cfg != nil {
			flavor = string(cfg.Flavor)
		}
		return goldmark.New(flavor), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, engine)
	}
}
