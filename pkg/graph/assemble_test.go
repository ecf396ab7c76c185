package graph

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/kinview/kinview/pkg/model"
	"github.com/kinview/kinview/pkg/relation"
)

func person(id string, gender relation.Gender) model.Person {
	return model.Person{ID: id, Name: id, Gender: gender}
}

func TestAssembleMotherSon(t *testing.T) {
	g := Assemble(
		[]model.Person{person("ann", relation.Female), person("bob", relation.Male)},
		[]model.Assertion{{From: "ann", To: "bob", Kind: relation.KindMother}},
	)

	if len(g.Issues()) != 0 {
		t.Fatalf("unexpected issues: %v", g.Issues())
	}
	edges := g.Edges()
	if len(edges) != 1 {
		t.Fatalf("expected 1 edge, got %d", len(edges))
	}
	e := edges[0]
	if e.DisplayLabel != "mother" {
		t.Errorf("displayLabel = %q, want mother", e.DisplayLabel)
	}
	if e.ReciprocalLabel != "son" {
		t.Errorf("reciprocalLabel = %q, want son", e.ReciprocalLabel)
	}
	if e.Category != relation.CategoryAncestor {
		t.Errorf("category = %s, want ancestor", e.Category)
	}
	if !e.Exact {
		t.Error("edge should be exact with both genders known")
	}
}

func TestAssembleConflictingDirectionsKeepsLater(t *testing.T) {
	// A->B "father" then B->A "son" for the same pair: the later assertion
	// decides the canonical direction, the earlier label becomes the
	// reciprocal, and only one edge survives.
	g := Assemble(
		[]model.Person{person("a", relation.Male), person("b", relation.Male)},
		[]model.Assertion{
			{From: "a", To: "b", Kind: relation.KindFather},
			{From: "b", To: "a", Kind: relation.KindSon},
		},
	)

	edges := g.Edges()
	if len(edges) != 1 {
		t.Fatalf("expected 1 canonical edge, got %d", len(edges))
	}
	e := edges[0]
	if e.Source != "b" || e.Target != "a" {
		t.Errorf("canonical direction = %s->%s, want b->a", e.Source, e.Target)
	}
	if e.DisplayLabel != "son" {
		t.Errorf("displayLabel = %q, want son", e.DisplayLabel)
	}
	if e.ReciprocalLabel != "father" {
		t.Errorf("reciprocalLabel = %q, want father (folded from the earlier assertion)", e.ReciprocalLabel)
	}
	if !e.Exact {
		t.Error("folded reciprocal is explicitly asserted and must be exact")
	}
}

func TestAssembleSameDirectionReplacement(t *testing.T) {
	g := Assemble(
		[]model.Person{person("a", relation.Male), person("b", relation.Male)},
		[]model.Assertion{
			{From: "a", To: "b", Kind: relation.KindFriend},
			{From: "a", To: "b", Kind: relation.KindBrother},
		},
	)

	edges := g.Edges()
	if len(edges) != 1 {
		t.Fatalf("expected 1 edge, got %d", len(edges))
	}
	if edges[0].DisplayLabel != "brother" {
		t.Errorf("most recent assertion should win, got %q", edges[0].DisplayLabel)
	}
}

func TestAssembleDanglingReference(t *testing.T) {
	g := Assemble(
		[]model.Person{person("a", relation.Male)},
		[]model.Assertion{{From: "a", To: "ghost", Kind: relation.KindBrother}},
	)

	if len(g.Edges()) != 0 {
		t.Errorf("dangling assertion must not create an edge, got %d", len(g.Edges()))
	}
	issues := g.Issues()
	if len(issues) != 1 || issues[0].Kind != model.IssueDanglingReference {
		t.Fatalf("expected one DanglingReference issue, got %v", issues)
	}
}

func TestAssembleAmbiguousReciprocal(t *testing.T) {
	g := Assemble(
		[]model.Person{person("a", relation.Female), person("b", relation.Unknown)},
		[]model.Assertion{{From: "a", To: "b", Kind: relation.KindMother}},
	)

	edges := g.Edges()
	if len(edges) != 1 {
		t.Fatalf("expected 1 edge, got %d", len(edges))
	}
	if edges[0].ReciprocalLabel != "child" {
		t.Errorf("reciprocalLabel = %q, want generic child", edges[0].ReciprocalLabel)
	}
	if edges[0].Exact {
		t.Error("edge should be flagged low-confidence")
	}

	found := false
	for _, issue := range g.Issues() {
		if issue.Kind == model.IssueAmbiguousReciprocal {
			found = true
		}
	}
	if !found {
		t.Error("expected an AmbiguousReciprocal issue")
	}
}

func TestAssembleIncludesOrphans(t *testing.T) {
	g := Assemble(
		[]model.Person{person("a", relation.Male), person("b", relation.Male), person("loner", relation.Female)},
		[]model.Assertion{{From: "a", To: "b", Kind: relation.KindBrother}},
	)

	if g.Len() != 3 {
		t.Errorf("expected all 3 people in the graph, got %d", g.Len())
	}
	if !g.Has("loner") {
		t.Error("orphan missing from node set")
	}
	if comps := g.Components(); len(comps) != 2 {
		t.Errorf("expected 2 components, got %d", len(comps))
	}
}

func TestAssembleDuplicatePerson(t *testing.T) {
	g := Assemble(
		[]model.Person{
			{ID: "a", Name: "First", Gender: relation.Male},
			{ID: "a", Name: "Second", Gender: relation.Female},
		},
		nil,
	)

	if g.Len() != 1 {
		t.Fatalf("expected 1 person, got %d", g.Len())
	}
	p, _ := g.Person("a")
	if p.Name != "First" {
		t.Errorf("first roster entry should win, got %q", p.Name)
	}
	if len(g.Issues()) != 1 || g.Issues()[0].Kind != model.IssueDuplicatePerson {
		t.Errorf("expected a DuplicatePerson issue, got %v", g.Issues())
	}
}

func TestAssembleUnrecognizedKind(t *testing.T) {
	g := Assemble(
		[]model.Person{person("a", relation.Male), person("b", relation.Male)},
		[]model.Assertion{{From: "a", To: "b", Kind: relation.Kind("twice-removed")}},
	)

	edges := g.Edges()
	if len(edges) != 1 {
		t.Fatalf("expected 1 edge, got %d", len(edges))
	}
	if edges[0].Kind != relation.KindOther {
		t.Errorf("unrecognized kind should become other, got %s", edges[0].Kind)
	}
}

func TestAssembleSkipsSelfAssertions(t *testing.T) {
	g := Assemble(
		[]model.Person{person("a", relation.Male)},
		[]model.Assertion{{From: "a", To: "a", Kind: relation.KindBrother}},
	)
	if len(g.Edges()) != 0 {
		t.Errorf("self-assertion must not create an edge")
	}
}

// TestAssemblePairDedupProperty generates random assertion lists, including
// reversed duplicates, and checks that the canonical edge set never holds
// more than one edge per unordered pair.
func TestAssemblePairDedupProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	kinds := relation.Kinds()
	genders := []relation.Gender{relation.Male, relation.Female, relation.Unknown}

	for trial := 0; trial < 50; trial++ {
		n := 2 + rng.Intn(10)
		people := make([]model.Person, n)
		for i := range people {
			people[i] = person(fmt.Sprintf("p%d", i), genders[rng.Intn(len(genders))])
		}

		var assertions []model.Assertion
		for i := 0; i < 5+rng.Intn(40); i++ {
			from := people[rng.Intn(n)].ID
			to := people[rng.Intn(n)].ID
			assertions = append(assertions, model.Assertion{
				From: from,
				To:   to,
				Kind: kinds[rng.Intn(len(kinds))],
			})
			// Sometimes assert the reverse direction too.
			if rng.Intn(3) == 0 {
				assertions = append(assertions, model.Assertion{
					From: to,
					To:   from,
					Kind: kinds[rng.Intn(len(kinds))],
				})
			}
		}

		g := Assemble(people, assertions)

		seen := make(map[[2]string]bool)
		for _, e := range g.Edges() {
			key := [2]string{e.Source, e.Target}
			if e.Target < e.Source {
				key = [2]string{e.Target, e.Source}
			}
			if seen[key] {
				t.Fatalf("trial %d: duplicate edge for pair %v", trial, key)
			}
			seen[key] = true
			if !g.Has(e.Source) || !g.Has(e.Target) {
				t.Fatalf("trial %d: edge references person missing from node set", trial)
			}
		}
	}
}

func TestNeighborsDeterministic(t *testing.T) {
	people := []model.Person{
		person("a", relation.Male), person("b", relation.Male),
		person("c", relation.Female), person("d", relation.Female),
	}
	assertions := []model.Assertion{
		{From: "a", To: "b", Kind: relation.KindBrother},
		{From: "a", To: "c", Kind: relation.KindSister},
		{From: "a", To: "d", Kind: relation.KindCousin},
	}

	first := Assemble(people, assertions).Neighbors("a")
	second := Assemble(people, assertions).Neighbors("a")

	if len(first) != 3 || len(second) != 3 {
		t.Fatalf("expected 3 neighbors, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("neighbor order differs between runs: %v vs %v", first, second)
		}
	}
}
