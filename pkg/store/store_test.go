package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kinview/kinview/pkg/relation"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadValidFile(t *testing.T) {
	path := writeFile(t, "family.json", `{
		"name": "Smith",
		"people": [
			{"id": "ann", "name": "Ann", "gender": "female"},
			{"id": "bob", "name": "Bob", "gender": "male"}
		],
		"assertions": [
			{"from": "ann", "to": "bob", "kind": "mother"}
		]
	}`)

	family, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if family.Name != "Smith" {
		t.Errorf("name = %q, want Smith", family.Name)
	}
	if len(family.People) != 2 || len(family.Assertions) != 1 {
		t.Fatalf("got %d people, %d assertions", len(family.People), len(family.Assertions))
	}
	if family.People[0].Gender != relation.Female {
		t.Errorf("gender = %q, want female", family.People[0].Gender)
	}
	if family.Assertions[0].Kind != relation.KindMother {
		t.Errorf("kind = %q, want mother", family.Assertions[0].Kind)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	path := writeFile(t, "bad.json", `{"people": [`)
	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestLoadPersonWithoutID(t *testing.T) {
	path := writeFile(t, "noid.json", `{"people": [{"name": "Ann"}]}`)
	if _, err := Load(path); err == nil {
		t.Error("expected error for person without id")
	}
}

func TestLoadIncompleteAssertion(t *testing.T) {
	path := writeFile(t, "partial.json", `{
		"people": [{"id": "a"}, {"id": "b"}],
		"assertions": [{"from": "a", "to": "b"}]
	}`)
	if _, err := Load(path); err == nil {
		t.Error("expected error for assertion without kind")
	}
}

func TestLoadLeavesSoftProblemsAlone(t *testing.T) {
	// Dangling references and duplicate ids load fine; the assembler
	// reports them as issues later.
	path := writeFile(t, "soft.json", `{
		"people": [{"id": "a"}, {"id": "a"}],
		"assertions": [{"from": "a", "to": "ghost", "kind": "brother"}]
	}`)
	family, err := Load(path)
	if err != nil {
		t.Fatalf("soft problems must not fail loading: %v", err)
	}
	if len(family.People) != 2 || len(family.Assertions) != 1 {
		t.Errorf("got %d people, %d assertions", len(family.People), len(family.Assertions))
	}
}
