package model

import "github.com/kinview/kinview/pkg/relation"

// Person is one member of the family roster. Identity fields are owned by
// the roster provider and are never mutated by the engine.
type Person struct {
	ID     string          `json:"id"`               // Unique, stable identifier
	Name   string          `json:"name"`             // Display name
	Gender relation.Gender `json:"gender"`           // male, female, or unknown
	Avatar string          `json:"avatar,omitempty"` // Avatar reference for the renderer
	Status string          `json:"status,omitempty"` // Free-form status flag (e.g., "deceased")
}

// Assertion is one directed, typed relationship claim as recorded by the
// source of truth. Multiple assertions for the same ordered pair and kind
// are equivalent; existence is authoritative, not arrival order.
type Assertion struct {
	From       string        `json:"from"` // Source person ID
	To         string        `json:"to"`   // Target person ID
	Kind       relation.Kind `json:"kind"` // Relationship looking from From to To
	AssertedBy string        `json:"assertedBy,omitempty"`
}

// Family is the on-disk container the roster provider hands to the engine.
type Family struct {
	Name       string      `json:"name"`
	People     []Person    `json:"people"`
	Assertions []Assertion `json:"assertions"`
}

// IssueKind classifies a non-fatal data problem found during assembly or
// layout. Malformed data degrades and reports; it never aborts a run.
type IssueKind string

const (
	IssueDanglingReference   IssueKind = "dangling_reference"   // Assertion names an unknown person
	IssueAmbiguousReciprocal IssueKind = "ambiguous_reciprocal" // Gender missing, generic reciprocal used
	IssueUnreachableRoot     IssueKind = "unreachable_root"     // Layout root not in the roster
	IssueDisconnectedPath    IssueKind = "disconnected_path"    // No route between selected people
	IssueDuplicatePerson     IssueKind = "duplicate_person"     // Roster lists the same ID twice
)

// Issue is a reported data problem. From/To are person IDs where they apply.
type Issue struct {
	Kind    IssueKind `json:"kind"`
	Message string    `json:"message"`
	From    string    `json:"from,omitempty"`
	To      string    `json:"to,omitempty"`
}
