package graph

import (
	"fmt"

	"github.com/kinview/kinview/pkg/logging"
	"github.com/kinview/kinview/pkg/model"
	"github.com/kinview/kinview/pkg/relation"
)

// pairKey identifies an unordered person pair.
type pairKey struct {
	a, b string
}

func keyFor(from, to string) pairKey {
	if from < to {
		return pairKey{from, to}
	}
	return pairKey{to, from}
}

// Assemble builds a FamilyGraph from a roster and a list of directed
// relationship assertions. It never fails on malformed data: assertions
// referencing unknown people are dropped with a DanglingReference issue,
// duplicate roster entries keep their first occurrence, and ambiguous
// reciprocals degrade to the generic label with an AmbiguousReciprocal
// issue.
//
// Canonicalization keeps at most one edge per unordered person pair. A
// later assertion for an already-edged pair wins: it decides the edge's
// direction and display label. When the superseded assertion ran in the
// opposite direction it is folded into the winner's reciprocal label
// instead of being derived, so explicitly asserted labels are preserved.
func Assemble(people []model.Person, assertions []model.Assertion) *FamilyGraph {
	g := newFamilyGraph()

	for _, p := range people {
		if !g.addPerson(p) {
			g.issues = append(g.issues, model.Issue{
				Kind:    model.IssueDuplicatePerson,
				Message: fmt.Sprintf("person %q listed more than once, keeping the first entry", p.ID),
				From:    p.ID,
			})
		}
	}

	edgeByPair := make(map[pairKey]*Edge)

	for _, a := range assertions {
		if !g.Has(a.From) || !g.Has(a.To) {
			missing := a.From
			if g.Has(a.From) {
				missing = a.To
			}
			g.issues = append(g.issues, model.Issue{
				Kind:    model.IssueDanglingReference,
				Message: fmt.Sprintf("assertion %s -> %s (%s) references unknown person %q", a.From, a.To, a.Kind, missing),
				From:    a.From,
				To:      a.To,
			})
			continue
		}
		if a.From == a.To {
			logging.Debug("skipping self-assertion", "person", a.From, "kind", a.Kind)
			continue
		}

		kind := a.Kind
		if !relation.Known(kind) {
			logging.Debug("unrecognized relation kind, treating as other", "kind", kind)
			kind = relation.KindOther
		}

		key := keyFor(a.From, a.To)
		prev := edgeByPair[key]

		edge := &Edge{
			Source:       a.From,
			Target:       a.To,
			Kind:         kind,
			Category:     relation.CategoryOf(kind),
			DisplayLabel: string(kind),
		}

		// Reverse assertion already present for this pair: fold its label in
		// as the reciprocal rather than deriving one.
		if prev != nil && prev.Source == a.To {
			edge.ReciprocalLabel = prev.DisplayLabel
			edge.Exact = true
		} else {
			source, _ := g.Person(a.From)
			target, _ := g.Person(a.To)
			rec, exact := relation.Reciprocal(kind, target.Gender, source.Gender)
			edge.ReciprocalLabel = string(rec)
			edge.Exact = exact
			if !exact {
				g.issues = append(g.issues, model.Issue{
					Kind:    model.IssueAmbiguousReciprocal,
					Message: fmt.Sprintf("gender unknown for %s -> %s (%s), using generic reciprocal %q", a.From, a.To, kind, rec),
					From:    a.From,
					To:      a.To,
				})
			}
		}

		if prev != nil {
			// Most recent assertion wins; rewrite the canonical edge in its
			// existing slot so edge order stays stable.
			*prev = *edge
		} else {
			edgeByPair[key] = edge
			g.edges = append(g.edges, edge)
			g.graph.SetEdge(g.graph.NewEdge(g.graph.Node(g.ids[a.From]), g.graph.Node(g.ids[a.To])))
		}
	}

	g.buildAdjacency()

	logging.Debug("assembled family graph",
		"people", len(g.order), "edges", len(g.edges), "issues", len(g.issues))

	return g
}
