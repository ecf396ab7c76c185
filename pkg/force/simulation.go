package force

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/kinview/kinview/pkg/graph"
)

// Config holds the physical constants of the simulation. Zero values fall
// back to the defaults; bounds must be positive.
type Config struct {
	Width      float64 `json:"width"`      // Canvas width
	Height     float64 `json:"height"`     // Canvas height
	Padding    float64 `json:"padding"`    // Minimum inset from each canvas edge
	Damping    float64 `json:"damping"`    // Velocity retention per step, in (0,1)
	Repulsion  float64 `json:"repulsion"`  // Pairwise repulsion strength
	Attraction float64 `json:"attraction"` // Spring constant along edges
	TimeStep   float64 `json:"timeStep"`   // Integration scale per step
	AlphaDecay float64 `json:"alphaDecay"` // Cooling factor applied to alpha each step
	AlphaMin   float64 `json:"alphaMin"`   // Alpha below which the simulation settles
	Seed       int64   `json:"-"`          // Seed for initial placement; 0 means unseeded
}

// DefaultConfig returns constants that stay stable for graphs of a few
// hundred nodes.
func DefaultConfig(width, height float64) Config {
	return Config{
		Width:      width,
		Height:     height,
		Padding:    20,
		Damping:    0.85,
		Repulsion:  6000,
		Attraction: 0.02,
		TimeStep:   0.9,
		AlphaDecay: 0.995,
		AlphaMin:   0.005,
	}
}

// Node is the mutable per-person state owned by one simulation instance.
type Node struct {
	ID     string  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	VX     float64 `json:"vx"`
	VY     float64 `json:"vy"`
}

// Position is a snapshot of one node's coordinates.
type Position struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// link is an edge by node index, resolved once at construction.
type link struct {
	a, b int
}

// Simulation is a force-directed layout run over one assembled graph. Each
// instance owns its node state outright; two views of the same graph must
// each construct their own instance. Stepping is cooperative: the caller
// invokes Step once per animation frame and stops whenever it wants, and a
// stopped simulation simply keeps its last positions.
type Simulation struct {
	nodes []*Node
	index map[string]int
	links []link
	cfg   Config
	alpha float64
	rng   *rand.Rand
}

// New builds a simulation for the people and canonical edges of g. Nodes
// start at random offsets near the canvas center. Non-positive bounds or a
// damping outside (0,1) are programmer errors and fail construction.
func New(g *graph.FamilyGraph, cfg Config) (*Simulation, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("force: canvas bounds must be positive, got %gx%g", cfg.Width, cfg.Height)
	}
	defaults := DefaultConfig(cfg.Width, cfg.Height)
	if cfg.Damping == 0 {
		cfg.Damping = defaults.Damping
	}
	if cfg.Damping <= 0 || cfg.Damping >= 1 {
		return nil, fmt.Errorf("force: damping must be in (0,1), got %g", cfg.Damping)
	}
	if cfg.Repulsion <= 0 {
		cfg.Repulsion = defaults.Repulsion
	}
	if cfg.Attraction <= 0 {
		cfg.Attraction = defaults.Attraction
	}
	if cfg.TimeStep <= 0 {
		cfg.TimeStep = defaults.TimeStep
	}
	if cfg.AlphaDecay <= 0 || cfg.AlphaDecay >= 1 {
		cfg.AlphaDecay = defaults.AlphaDecay
	}
	if cfg.AlphaMin <= 0 {
		cfg.AlphaMin = defaults.AlphaMin
	}
	if cfg.Padding < 0 || cfg.Padding*2 >= math.Min(cfg.Width, cfg.Height) {
		cfg.Padding = defaults.Padding
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	if cfg.Seed == 0 {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}

	s := &Simulation{
		index: make(map[string]int),
		cfg:   cfg,
		alpha: 1,
		rng:   rng,
	}

	cx, cy := cfg.Width/2, cfg.Height/2
	spread := math.Min(cfg.Width, cfg.Height) / 4
	for _, p := range g.People() {
		s.index[p.ID] = len(s.nodes)
		s.nodes = append(s.nodes, &Node{
			ID: p.ID,
			X:  cx + (s.rng.Float64()-0.5)*spread,
			Y:  cy + (s.rng.Float64()-0.5)*spread,
		})
	}
	for _, e := range g.Edges() {
		s.links = append(s.links, link{a: s.index[e.Source], b: s.index[e.Target]})
	}

	return s, nil
}

// Alpha returns the current temperature of the simulation.
func (s *Simulation) Alpha() float64 {
	return s.alpha
}

// Reheat resets the temperature to 1 so a settled simulation produces a
// fresh layout on resumed stepping. Node identities and current positions
// are kept.
func (s *Simulation) Reheat() {
	s.alpha = 1
}

// Step advances the simulation by one frame and reports whether the system
// is still hot enough to be worth stepping again. A step is all-or-nothing:
// forces for every node are accumulated into a scratch buffer first, then
// every node is integrated, so no caller ever observes a half-applied step.
func (s *Simulation) Step() bool {
	if len(s.nodes) == 0 || s.alpha <= s.cfg.AlphaMin {
		return false
	}

	fx := make([]float64, len(s.nodes))
	fy := make([]float64, len(s.nodes))

	// Pairwise repulsion, inverse square with a 1-unit floor on distance so
	// coincident nodes cannot blow up the force.
	for i := 0; i < len(s.nodes); i++ {
		for j := i + 1; j < len(s.nodes); j++ {
			dx := s.nodes[i].X - s.nodes[j].X
			dy := s.nodes[i].Y - s.nodes[j].Y
			distSq := dx*dx + dy*dy
			if distSq < 1 {
				distSq = 1
				// Nudge exactly coincident nodes apart deterministically.
				if dx == 0 && dy == 0 {
					dx = 1
				}
			}
			dist := math.Sqrt(distSq)
			f := s.cfg.Repulsion / distSq
			fx[i] += f * dx / dist
			fy[i] += f * dy / dist
			fx[j] -= f * dx / dist
			fy[j] -= f * dy / dist
		}
	}

	// Spring attraction along edges, proportional to the signed distance.
	for _, l := range s.links {
		dx := s.nodes[l.b].X - s.nodes[l.a].X
		dy := s.nodes[l.b].Y - s.nodes[l.a].Y
		fx[l.a] += s.cfg.Attraction * dx
		fy[l.a] += s.cfg.Attraction * dy
		fx[l.b] -= s.cfg.Attraction * dx
		fy[l.b] -= s.cfg.Attraction * dy
	}

	// Damped explicit-Euler integration, clamped to the canvas inset.
	scale := s.cfg.TimeStep * s.alpha
	minX, maxX := s.cfg.Padding, s.cfg.Width-s.cfg.Padding
	minY, maxY := s.cfg.Padding, s.cfg.Height-s.cfg.Padding
	for i, n := range s.nodes {
		n.VX = n.VX*s.cfg.Damping + fx[i]*scale
		n.VY = n.VY*s.cfg.Damping + fy[i]*scale
		n.X = clamp(n.X+n.VX, minX, maxX)
		n.Y = clamp(n.Y+n.VY, minY, maxY)
	}

	s.alpha *= s.cfg.AlphaDecay
	return s.alpha > s.cfg.AlphaMin
}

// Positions returns a copy of the current node coordinates. The copy is
// safe to hand to a renderer while the simulation keeps stepping.
func (s *Simulation) Positions() []Position {
	out := make([]Position, len(s.nodes))
	for i, n := range s.nodes {
		out[i] = Position{ID: n.ID, X: n.X, Y: n.Y}
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
