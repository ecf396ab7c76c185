// Package store loads family data files. Persistence proper lives outside
// the engine; this is the boundary that turns a data file into the roster
// and assertion list the assembler consumes. Assertion file order is the
// "most recent wins" order used during edge canonicalization.
package store

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kinview/kinview/pkg/logging"
	"github.com/kinview/kinview/pkg/model"
)

// Load reads a family JSON file. Structural problems (unreadable file,
// invalid JSON, people without IDs) are errors; soft data problems like
// duplicate IDs are left for the assembler to report.
func Load(path string) (*model.Family, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading family file: %w", err)
	}

	var family model.Family
	if err := json.Unmarshal(raw, &family); err != nil {
		return nil, fmt.Errorf("parsing family file %s: %w", path, err)
	}

	for i, p := range family.People {
		if p.ID == "" {
			return nil, fmt.Errorf("family file %s: person at index %d has no id", path, i)
		}
	}
	for i, a := range family.Assertions {
		if a.From == "" || a.To == "" || a.Kind == "" {
			return nil, fmt.Errorf("family file %s: assertion at index %d is incomplete", path, i)
		}
	}

	logging.Debug("loaded family file",
		"path", path, "people", len(family.People), "assertions", len(family.Assertions))

	return &family, nil
}
