// Package csp is a small generic finite-domain constraint solver.
//
// It plays the role deppy's pkg/deppy plays for boolean SAT problems: a
// domain-agnostic engine that a higher layer feeds with Variables and
// Constraints, never the other way around. internal/adjudicate is the only
// package that builds Problems from Diplomacy rules; this package knows
// nothing about them.
package csp

import "fmt"

// Identifier uniquely names a Variable within a single Problem.
type Identifier string

func (id Identifier) String() string { return string(id) }

// Variable is one unknown of the problem, with a finite set of candidate
// values. Rank controls search order: variables with a lower Rank are
// assigned before variables with a higher one, mirroring the
// support_status -> strength -> convoy_status -> outcome ordering spec.md
// §4.C prescribes.
type Variable struct {
	ID     Identifier
	Domain []string
	Rank   int
}

func (v *Variable) String() string {
	return fmt.Sprintf("%s in %v", v.ID, v.Domain)
}

// Constraint limits which assignments are acceptable. The solver calls
// Check only once every one of its Vars is present in assignment; Check
// then returns whether that assignment satisfies the rule.
type Constraint interface {
	Vars() []Identifier
	Check(assignment map[Identifier]string) bool
	String() string
}

// Problem is an accumulated set of Variables and Constraints, built fresh
// for a single turn and solved once.
type Problem struct {
	variables   map[Identifier]*Variable
	order       []Identifier
	constraints []Constraint
	// byVar indexes constraints that mention each variable, so the solver
	// only re-checks constraints that could possibly have changed truth
	// value after a new assignment.
	byVar map[Identifier][]Constraint
}

func NewProblem() *Problem {
	return &Problem{
		variables: make(map[Identifier]*Variable),
		byVar:     make(map[Identifier][]Constraint),
	}
}

// AddVariable registers a variable with its initial domain. Calling
// AddVariable twice with the same Identifier overwrites the previous
// definition while keeping its original position in the insertion order.
func (p *Problem) AddVariable(id Identifier, domain []string, rank int) *Variable {
	v := &Variable{ID: id, Domain: domain, Rank: rank}
	if _, exists := p.variables[id]; !exists {
		p.order = append(p.order, id)
	}
	p.variables[id] = v
	return v
}

func (p *Problem) Variable(id Identifier) *Variable {
	return p.variables[id]
}

func (p *Problem) Variables() []*Variable {
	out := make([]*Variable, len(p.order))
	for i, id := range p.order {
		out[i] = p.variables[id]
	}
	return out
}

// AddConstraint registers c and indexes it against every variable it
// mentions.
func (p *Problem) AddConstraint(c Constraint) {
	p.constraints = append(p.constraints, c)
	for _, id := range c.Vars() {
		p.byVar[id] = append(p.byVar[id], c)
	}
}

func (p *Problem) Constraints() []Constraint {
	return p.constraints
}

// Pin fixes a variable to a single value, collapsing its domain to that
// value. internal/adjudicate uses it for the Szykman tiebreak, pinning a
// convoy_status to disrupted before solving again.
func (p *Problem) Pin(id Identifier, value string) {
	if v, ok := p.variables[id]; ok {
		v.Domain = []string{value}
	}
}
