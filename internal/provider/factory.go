package provider

import (
	"fmt"

	"github.com/jonesrussell/keyraces/internal/config"
	"github.com/jonesrussell/keyraces/internal/logger"
)

// Provider names accepted in configuration.
const (
	NameWikipedia   = "wikipedia"
	NameBallotpedia = "ballotpedia"
)

// ForName builds the adapter selected by configuration.
func ForName(name string, cfg config.BehaviorConfig, log logger.Interface) (Adapter, error) {
	switch name {
	case NameWikipedia:
		return NewWikipediaAdapter(cfg, log)
	case NameBallotpedia:
		return NewBallotpediaAdapter(cfg, log), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", name)
	}
}
