package layout

import (
	"fmt"

	"github.com/kinview/kinview/pkg/graph"
	"github.com/kinview/kinview/pkg/logging"
	"github.com/kinview/kinview/pkg/model"
	"github.com/kinview/kinview/pkg/relation"
)

// Placement is the computed position of one person in the generational
// layout. Generation 0 is the root's row; negative generations are
// ancestors, positive are descendants. Y grows downward with generation.
type Placement struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Generation int     `json:"generation"`
}

// Config holds the spacing constants for the generational layout.
type Config struct {
	RowHeight float64 // Vertical distance between generations
	Spacing   float64 // Horizontal distance between adjacent people
}

// DefaultConfig matches the spacing the bundled renderer assumes.
func DefaultConfig() Config {
	return Config{RowHeight: 120, Spacing: 90}
}

// queueNode is one BFS queue entry, mirroring the distance-queue entries of
// the earlier traversal code.
type queueNode struct {
	personID   string
	generation int
}

// Generations assigns every person reachable from rootID a generation index
// and a deterministic 2-D position via breadth-first traversal.
//
// Stepping rules per canonical edge, walking from the visited endpoint to
// the unvisited one: lateral edges keep the generation; an ancestor- or
// descendant-category edge steps up or down depending on which role the
// reached endpoint plays (the edge's source person is the named relative,
// so reaching the "mother" side of an ancestor edge steps to generation-1).
// A person reached twice keeps the first-assigned generation; that
// first-write-wins tie-break stops people reachable over two relative paths
// from bouncing between rows, and the visited guard makes cycles terminate.
//
// People not reachable from the root are omitted from the result; they are
// simply not part of this rooted view. A root that is not in the roster
// yields an empty map and an UnreachableRoot issue.
func Generations(g *graph.FamilyGraph, rootID string, cfg Config) (map[string]Placement, []model.Issue) {
	if cfg.RowHeight <= 0 {
		cfg.RowHeight = DefaultConfig().RowHeight
	}
	if cfg.Spacing <= 0 {
		cfg.Spacing = DefaultConfig().Spacing
	}

	if !g.Has(rootID) {
		return map[string]Placement{}, []model.Issue{{
			Kind:    model.IssueUnreachableRoot,
			Message: fmt.Sprintf("root person %q is not in the roster", rootID),
			From:    rootID,
		}}
	}

	placements := make(map[string]Placement)
	cursor := make(map[int]float64) // next free x per generation

	placements[rootID] = Placement{X: 0, Y: 0, Generation: 0}
	cursor[0] = cfg.Spacing

	queue := []queueNode{{personID: rootID, generation: 0}}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		origin := placements[current.personID]

		// Bucket newly discovered neighbors by their target generation so
		// each sibling group can be centered around the originating person.
		groups := make(map[int][]string)
		var groupOrder []int
		for _, e := range g.EdgesOf(current.personID) {
			other := e.Other(current.personID)
			if _, seen := placements[other]; seen {
				continue
			}
			gen := stepGeneration(current.generation, e, other)
			if _, ok := groups[gen]; !ok {
				groupOrder = append(groupOrder, gen)
			}
			groups[gen] = append(groups[gen], other)
			// Reserve the slot now: first write wins even against a later
			// edge of the same person.
			placements[other] = Placement{Generation: gen}
		}

		for _, gen := range groupOrder {
			members := groups[gen]
			start := origin.X - float64(len(members)-1)*cfg.Spacing/2
			if next, ok := cursor[gen]; ok && start < next {
				start = next
			}
			for i, id := range members {
				x := start + float64(i)*cfg.Spacing
				placements[id] = Placement{
					X:          x,
					Y:          float64(gen) * cfg.RowHeight,
					Generation: gen,
				}
				queue = append(queue, queueNode{personID: id, generation: gen})
			}
			cursor[gen] = start + float64(len(members))*cfg.Spacing
		}
	}

	logging.Debug("generational layout complete",
		"root", rootID, "placed", len(placements), "total", g.Len())

	return placements, nil
}

// stepGeneration computes the generation of the endpoint being reached.
// The edge's source person plays the role its kind names (for "mother" the
// source is the mother), so the direction of the step depends on which
// endpoint is being entered.
func stepGeneration(fromGen int, e *graph.Edge, reached string) int {
	switch e.Category {
	case relation.CategoryAncestor:
		if reached == e.Source {
			return fromGen - 1
		}
		return fromGen + 1
	case relation.CategoryDescendant:
		if reached == e.Source {
			return fromGen + 1
		}
		return fromGen - 1
	default:
		return fromGen
	}
}
