package paths

import (
	"testing"

	"github.com/kinview/kinview/pkg/graph"
	"github.com/kinview/kinview/pkg/model"
	"github.com/kinview/kinview/pkg/relation"
)

func buildGraph(ids []string, assertions []model.Assertion) *graph.FamilyGraph {
	people := make([]model.Person, len(ids))
	for i, id := range ids {
		people[i] = model.Person{ID: id, Name: id}
	}
	return graph.Assemble(people, assertions)
}

func TestShortestPicksShorterRoute(t *testing.T) {
	// Two routes from a to f: a-b-c-f (3 hops) and a-d-f (2 hops).
	g := buildGraph([]string{"a", "b", "c", "d", "e", "f"}, []model.Assertion{
		{From: "a", To: "b", Kind: relation.KindBrother},
		{From: "b", To: "c", Kind: relation.KindBrother},
		{From: "c", To: "f", Kind: relation.KindBrother},
		{From: "a", To: "d", Kind: relation.KindCousin},
		{From: "d", To: "f", Kind: relation.KindCousin},
		{From: "e", To: "f", Kind: relation.KindFriend},
	})

	path := Shortest(g, "a", "f")
	want := []string{"a", "d", "f"}
	if len(path) != len(want) {
		t.Fatalf("path = %v, want %v", path, want)
	}
	for i := range want {
		if path[i] != want[i] {
			t.Fatalf("path = %v, want %v", path, want)
		}
	}
}

func TestShortestDirectEdgeBeatsRelay(t *testing.T) {
	// a and c are connected both directly and via b; the direct hop wins.
	g := buildGraph([]string{"a", "b", "c"}, []model.Assertion{
		{From: "a", To: "b", Kind: relation.KindBrother},
		{From: "b", To: "c", Kind: relation.KindBrother},
		{From: "a", To: "c", Kind: relation.KindCousin},
	})

	path := Shortest(g, "a", "c")
	if len(path) != 2 || path[0] != "a" || path[1] != "c" {
		t.Errorf("path = %v, want [a c]", path)
	}
}

func TestShortestSameEndpoints(t *testing.T) {
	g := buildGraph([]string{"a"}, nil)
	path := Shortest(g, "a", "a")
	if len(path) != 1 || path[0] != "a" {
		t.Errorf("path = %v, want [a]", path)
	}
}

func TestShortestDisconnected(t *testing.T) {
	g := buildGraph([]string{"a", "b", "x", "y"}, []model.Assertion{
		{From: "a", To: "b", Kind: relation.KindBrother},
		{From: "x", To: "y", Kind: relation.KindBrother},
	})

	if path := Shortest(g, "a", "y"); path != nil {
		t.Errorf("expected nil path across components, got %v", path)
	}
}

func TestShortestUnknownEndpoints(t *testing.T) {
	g := buildGraph([]string{"a", "b"}, []model.Assertion{
		{From: "a", To: "b", Kind: relation.KindBrother},
	})

	if path := Shortest(g, "ghost", "b"); path != nil {
		t.Errorf("unknown start should yield nil, got %v", path)
	}
	if path := Shortest(g, "a", "ghost"); path != nil {
		t.Errorf("unknown end should yield nil, got %v", path)
	}
}

func TestShortestIgnoresDirection(t *testing.T) {
	// The assertion points c->a but the walk runs a->c just the same.
	g := buildGraph([]string{"a", "c"}, []model.Assertion{
		{From: "c", To: "a", Kind: relation.KindFather},
	})

	path := Shortest(g, "a", "c")
	if len(path) != 2 || path[0] != "a" || path[1] != "c" {
		t.Errorf("path = %v, want [a c]", path)
	}
}
