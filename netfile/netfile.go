// SPDX-License-Identifier: MIT

package netfile

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvnet/element"
	"github.com/katalvlaran/lvnet/fluid"
	"github.com/katalvlaran/lvnet/network"
)

// Sentinel errors for description parsing.
var (
	// ErrEmptyDocument indicates a description without branches.
	ErrEmptyDocument = errors.New("netfile: no branches described")

	// ErrUnknownKind indicates a branch kind other than resistor, pipe or source.
	ErrUnknownKind = errors.New("netfile: unknown branch kind")

	// ErrBadLoop indicates a loop that lists neither or both of nodes and branches.
	ErrBadLoop = errors.New("netfile: loop needs exactly one of nodes or branches")

	// ErrUnknownTransition indicates a transition policy other than expected or sample.
	ErrUnknownTransition = errors.New("netfile: unknown transition policy")
)

// Branch kinds accepted in a description.
const (
	KindResistor = "resistor"
	KindPipe     = "pipe"
	KindSource   = "source"
)

// Transition policies accepted in a description.
const (
	TransitionExpected = "expected"
	TransitionSample   = "sample"
)

// Document is a parsed network description.
type Document struct {
	Name       string             `yaml:"name"`
	Fluid      *FluidSpec         `yaml:"fluid,omitempty"`
	Transition string             `yaml:"transition,omitempty"`
	Seed       uint64             `yaml:"seed,omitempty"`
	Branches   []BranchSpec       `yaml:"branches"`
	Injections map[string]float64 `yaml:"injections,omitempty"`
	Loops      []LoopSpec         `yaml:"loops,omitempty"`
	Solver     SolverSpec         `yaml:"solver"`
}

// FluidSpec overrides the default water properties for pipes.
type FluidSpec struct {
	Density   float64 `yaml:"density"`
	Viscosity float64 `yaml:"viscosity"`
}

// BranchSpec describes one branch; which fields apply depends on Kind.
type BranchSpec struct {
	Kind string `yaml:"kind"`
	Name string `yaml:"name,omitempty"`
	From string `yaml:"from"`
	To   string `yaml:"to"`

	Resistance float64 `yaml:"resistance,omitempty"`
	Value      float64 `yaml:"value,omitempty"`

	Length    float64 `yaml:"length,omitempty"`
	Diameter  float64 `yaml:"diameter,omitempty"`
	Roughness float64 `yaml:"roughness,omitempty"`
}

// LoopSpec describes a loop by nodes or by branches.
type LoopSpec struct {
	Name     string   `yaml:"name"`
	Nodes    []string `yaml:"nodes,omitempty"`
	Branches []string `yaml:"branches,omitempty"`
}

// SolverSpec holds solver settings; zero values take the package defaults.
type SolverSpec struct {
	Tolerance     float64   `yaml:"tolerance,omitempty"`
	MaxIterations int       `yaml:"max_iterations,omitempty"`
	Reference     string    `yaml:"reference,omitempty"`
	Guess         []float64 `yaml:"guess,omitempty"`
	InitialFlow   float64   `yaml:"initial_flow,omitempty"`
}

// Load reads and parses the description at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read network: %w", err)
	}

	return Parse(data)
}

// Parse decodes a YAML description, fills defaults and validates it.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse network: %w", err)
	}
	doc.applyDefaults()
	if err := doc.validate(); err != nil {
		return nil, err
	}

	return &doc, nil
}

// applyDefaults fills in missing values with defaults
func (d *Document) applyDefaults() {
	if d.Transition == "" {
		d.Transition = TransitionExpected
	}
	if d.Solver.Tolerance == 0 {
		d.Solver.Tolerance = network.DefaultTolerance
	}
	if d.Solver.MaxIterations == 0 {
		d.Solver.MaxIterations = network.DefaultMaxIterations
	}
	for i := range d.Loops {
		if d.Loops[i].Name == "" {
			d.Loops[i].Name = fmt.Sprintf("%d", i+1)
		}
	}
}

func (d *Document) validate() error {
	if len(d.Branches) == 0 {
		return ErrEmptyDocument
	}
	for i, b := range d.Branches {
		switch b.Kind {
		case KindResistor, KindPipe, KindSource:
		default:
			return fmt.Errorf("branch %d: %w %q", i, ErrUnknownKind, b.Kind)
		}
	}
	for _, l := range d.Loops {
		if (len(l.Nodes) == 0) == (len(l.Branches) == 0) {
			return fmt.Errorf("loop %q: %w", l.Name, ErrBadLoop)
		}
	}
	switch d.Transition {
	case TransitionExpected, TransitionSample:
	default:
		return fmt.Errorf("%w %q", ErrUnknownTransition, d.Transition)
	}

	return nil
}

// Build constructs the network: branches, injections, then loops. Without
// listed loops the fundamental cycles are derived.
func (d *Document) Build() (*network.Network, error) {
	f := fluid.Water()
	if d.Fluid != nil {
		var err error
		if f, err = fluid.New(d.Fluid.Density, d.Fluid.Viscosity); err != nil {
			return nil, fmt.Errorf("fluid: %w", err)
		}
	}
	var policy element.TransitionPolicy = element.ExpectedValue{}
	if d.Transition == TransitionSample {
		policy = element.NewSeededSampler(d.Seed)
	}

	branches := make([]element.Branch, 0, len(d.Branches))
	for i, spec := range d.Branches {
		b, err := spec.build(f, policy)
		if err != nil {
			return nil, fmt.Errorf("branch %d (%s %s-%s): %w", i, spec.Kind, spec.From, spec.To, err)
		}
		branches = append(branches, b)
	}
	net, err := network.New(branches)
	if err != nil {
		return nil, err
	}

	nodes := make([]string, 0, len(d.Injections))
	for node := range d.Injections {
		nodes = append(nodes, node)
	}
	sort.Strings(nodes)
	for _, node := range nodes {
		if err = net.SetInjection(node, d.Injections[node]); err != nil {
			return nil, err
		}
	}

	if len(d.Loops) == 0 {
		if err = net.DeriveLoops(); err != nil {
			return nil, err
		}
		return net, nil
	}
	for _, l := range d.Loops {
		loop := network.NewLoop(l.Name, l.Nodes...)
		if len(l.Branches) > 0 {
			loop = network.LoopFromBranches(l.Name, l.Branches...)
		}
		if err = net.AddLoop(loop); err != nil {
			return nil, err
		}
	}

	return net, nil
}

func (b BranchSpec) build(f *fluid.Fluid, policy element.TransitionPolicy) (element.Branch, error) {
	var opts []element.Option
	if b.Name != "" {
		opts = append(opts, element.WithName(b.Name))
	}
	switch b.Kind {
	case KindResistor:
		return element.NewResistor(b.From, b.To, b.Resistance, opts...)
	case KindSource:
		return element.NewSource(b.From, b.To, b.Value, opts...)
	case KindPipe:
		opts = append(opts, element.WithTransition(policy))
		return element.NewPipe(b.From, b.To, b.Length, b.Diameter, b.Roughness, f, opts...)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownKind, b.Kind)
	}
}

// Options translates the solver block into solve options.
func (d *Document) Options() []network.SolveOption {
	opts := []network.SolveOption{
		network.WithTolerance(d.Solver.Tolerance),
		network.WithMaxIterations(d.Solver.MaxIterations),
	}
	if d.Solver.Reference != "" {
		opts = append(opts, network.WithReferenceNode(d.Solver.Reference))
	}

	return opts
}

// Guess returns the explicit guess when one is listed, otherwise n copies of
// InitialFlow.
func (d *Document) Guess(n int) []float64 {
	if len(d.Solver.Guess) > 0 {
		return append([]float64(nil), d.Solver.Guess...)
	}
	g := make([]float64, n)
	for i := range g {
		g[i] = d.Solver.InitialFlow
	}

	return g
}
