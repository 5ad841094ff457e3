package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"partsalert/internal/classify"
)

type watchlistFile struct {
	Watchlist []classify.WatchSpec `yaml:"watchlist"`
}

// LoadWatchlist reads an ordered GPU watchlist from a YAML file:
//
//	watchlist:
//	  - label: RTX 5090
//	    pattern: '\brtx\s*-?\s*5090\b'
func LoadWatchlist(path string) (classify.Watchlist, error) {
	data, err := os.ReadFile(path) //nolint:gosec // operator-supplied path
	if err != nil {
		return nil, fmt.Errorf("read watchlist: %w", err)
	}

	var f watchlistFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse watchlist %s: %w", path, err)
	}
	if len(f.Watchlist) == 0 {
		return nil, fmt.Errorf("watchlist %s: no entries", path)
	}

	w, err := classify.CompileWatchlist(f.Watchlist)
	if err != nil {
		return nil, fmt.Errorf("watchlist %s: %w", path, err)
	}
	return w, nil
}
