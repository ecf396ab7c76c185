package output

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/kinview/kinview/pkg/graph"
	"github.com/kinview/kinview/pkg/relation"
)

// PrintFamilyReport prints a colorized console summary of an assembled
// family graph: roster size, edge counts per category, connectivity, and
// any data issues.
func PrintFamilyReport(name string, g *graph.FamilyGraph) {
	bold := color.New(color.Bold)
	red := color.New(color.FgRed)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	cyan := color.New(color.FgCyan)

	if name == "" {
		name = "(unnamed family)"
	}
	bold.Println("kinview - Family Graph Report")
	bold.Println("=============================")
	fmt.Printf("Family: %s\n", name)
	fmt.Printf("People: %d\n", g.Len())

	byCategory := map[relation.Category]int{}
	inexact := 0
	for _, e := range g.Edges() {
		byCategory[e.Category]++
		if !e.Exact {
			inexact++
		}
	}
	fmt.Printf("Relationships: %d (ancestor %d, descendant %d, lateral %d)\n",
		len(g.Edges()),
		byCategory[relation.CategoryAncestor],
		byCategory[relation.CategoryDescendant],
		byCategory[relation.CategoryLateral],
	)
	if inexact > 0 {
		yellow.Printf("Low-confidence reciprocals: %d (gender unknown)\n", inexact)
	}

	components := g.Components()
	orphans := 0
	for _, c := range components {
		if len(c) == 1 {
			orphans++
		}
	}
	if len(components) <= 1 {
		green.Println("Connectivity: fully connected")
	} else {
		yellow.Printf("Connectivity: %d components (%d unconnected people)\n", len(components), orphans)
	}
	fmt.Println()

	issues := g.Issues()
	if len(issues) == 0 {
		green.Println("No data issues.")
		return
	}

	red.Printf("DATA ISSUES (%d):\n", len(issues))
	for _, issue := range issues {
		yellow.Printf("  [%s]\n", issue.Kind)
		cyan.Printf("    %s\n", issue.Message)
	}
	fmt.Println()
	yellow.Println("Some relationships could not be shown; the rest of the graph is unaffected.")
}
