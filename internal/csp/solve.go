package csp

import (
	"sort"
)

// Solver runs backtracking search with forward checking over a Problem.
// The zero value is usable; NewSolver only exists to apply Options the way
// deppy's solver.New applies functional Options over a bare struct.
type Solver struct {
	tracer Tracer
}

type Option func(*Solver)

func WithTracer(t Tracer) Option {
	return func(s *Solver) { s.tracer = t }
}

func NewSolver(opts ...Option) *Solver {
	s := &Solver{tracer: NoopTracer{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Solve returns the single assignment satisfying every Constraint in p.
// It returns *Inconsistent if no assignment does, and *NonUnique if more
// than one does — spec.md §4.C requires the caller to treat both as fatal.
func (s *Solver) Solve(p *Problem) (map[Identifier]string, error) {
	if s.tracer == nil {
		s.tracer = NoopTracer{}
	}
	order := orderedVariables(p)
	domains := snapshotDomains(order)

	assignment := make(map[Identifier]string, len(order))
	var lastFailure Constraint

	first, ok := s.search(p, order, 0, domains, assignment, &lastFailure)
	if !ok {
		var offending []Constraint
		if lastFailure != nil {
			offending = []Constraint{lastFailure}
		}
		return nil, &Inconsistent{Offending: offending}
	}

	// Uniqueness check: block the exact assignment just found and search
	// again. If a second full assignment exists, the encoder is missing a
	// tiebreak (spec.md §4.C, §7).
	blocked := append([]Constraint{}, p.constraints...)
	p2 := &Problem{variables: p.variables, order: p.order, constraints: blocked, byVar: copyByVar(p.byVar)}
	p2.AddConstraint(differsFrom(first))

	domains2 := snapshotDomains(order)
	second, ok2 := s.search(p2, order, 0, domains2, make(map[Identifier]string, len(order)), &lastFailure)
	if ok2 {
		return nil, &NonUnique{First: first, Second: second}
	}

	return first, nil
}

func copyByVar(in map[Identifier][]Constraint) map[Identifier][]Constraint {
	out := make(map[Identifier][]Constraint, len(in))
	for k, v := range in {
		out[k] = append([]Constraint{}, v...)
	}
	return out
}

// differsFrom builds a Constraint satisfied by every assignment except the
// one given — it has no verdict until every variable it names is assigned,
// since that is the earliest point equality to the blocked solution can be
// decided.
func differsFrom(solution map[Identifier]string) Constraint {
	vars := make([]Identifier, 0, len(solution))
	for id := range solution {
		vars = append(vars, id)
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i] < vars[j] })
	return &notEqualAssignment{vars: vars, solution: solution}
}

type notEqualAssignment struct {
	vars     []Identifier
	solution map[Identifier]string
}

func (n *notEqualAssignment) Vars() []Identifier { return n.vars }

func (n *notEqualAssignment) Check(assignment map[Identifier]string) bool {
	for _, id := range n.vars {
		if assignment[id] != n.solution[id] {
			return true
		}
	}
	return false
}

func (n *notEqualAssignment) String() string {
	return "assignment must differ from the previously found solution"
}

func orderedVariables(p *Problem) []*Variable {
	vars := p.Variables()
	sort.SliceStable(vars, func(i, j int) bool {
		if vars[i].Rank != vars[j].Rank {
			return vars[i].Rank < vars[j].Rank
		}
		return vars[i].ID < vars[j].ID
	})
	return vars
}

func snapshotDomains(vars []*Variable) map[Identifier][]string {
	domains := make(map[Identifier][]string, len(vars))
	for _, v := range vars {
		domains[v.ID] = append([]string{}, v.Domain...)
	}
	return domains
}

func cloneDomains(domains map[Identifier][]string) map[Identifier][]string {
	out := make(map[Identifier][]string, len(domains))
	for k, v := range domains {
		out[k] = append([]string{}, v...)
	}
	return out
}

// search assigns vars[index:] in order, backtracking on failure. assignment
// is mutated in place; on success the returned map is a copy of it, so the
// caller may keep it.
func (s *Solver) search(p *Problem, vars []*Variable, index int, domains map[Identifier][]string, assignment map[Identifier]string, lastFailure *Constraint) (map[Identifier]string, bool) {
	if index == len(vars) {
		result := make(map[Identifier]string, len(assignment))
		for k, v := range assignment {
			result[k] = v
		}
		return result, true
	}

	v := vars[index]
	for _, value := range domains[v.ID] {
		assignment[v.ID] = value

		if c := firstViolated(p.byVar[v.ID], assignment); c != nil {
			*lastFailure = c
			delete(assignment, v.ID)
			continue
		}

		pruned, wiped := forwardCheck(p, v.ID, assignment, domains)
		if !wiped {
			s.tracer.Decision(v.ID, value)
			if result, ok := s.search(p, vars, index+1, pruned, assignment, lastFailure); ok {
				return result, true
			}
		}

		if c := firstViolated(p.byVar[v.ID], assignment); c != nil {
			s.tracer.Backtrack(v.ID, c)
		}
		delete(assignment, v.ID)
	}
	return nil, false
}

func firstViolated(constraints []Constraint, assignment map[Identifier]string) Constraint {
	for _, c := range constraints {
		if !allPresent(c.Vars(), assignment) {
			continue
		}
		if !c.Check(assignment) {
			return c
		}
	}
	return nil
}

func allPresent(ids []Identifier, assignment map[Identifier]string) bool {
	for _, id := range ids {
		if _, ok := assignment[id]; !ok {
			return false
		}
	}
	return true
}

// forwardCheck filters the domain of each unassigned variable that is the
// last unassigned variable of a constraint shared with just-assigned,
// dropping any value that would make that constraint fail. Constraints
// with two or more variables still unassigned prune nothing. It returns wiped=true if
// any domain was pruned to empty, meaning the caller should backtrack
// without recursing further.
func forwardCheck(p *Problem, justAssigned Identifier, assignment map[Identifier]string, domains map[Identifier][]string) (map[Identifier][]string, bool) {
	next := cloneDomains(domains)
	for _, c := range p.byVar[justAssigned] {
		for _, other := range c.Vars() {
			if other == justAssigned {
				continue
			}
			if _, assigned := assignment[other]; assigned {
				continue
			}
			if !lastUnassigned(c.Vars(), other, assignment) {
				continue
			}
			kept := next[other][:0:0]
			for _, candidate := range next[other] {
				trial := assignment
				trial[other] = candidate
				ok := c.Check(trial)
				delete(trial, other)
				if ok {
					kept = append(kept, candidate)
				}
			}
			next[other] = kept
			if len(kept) == 0 {
				return next, true
			}
		}
	}
	return next, false
}

// lastUnassigned reports whether candidate is the only variable of ids not
// yet present in assignment — the only case in which a constraint's truth
// value can already be pinned down by trying a single candidate value.
func lastUnassigned(ids []Identifier, candidate Identifier, assignment map[Identifier]string) bool {
	for _, id := range ids {
		if id == candidate {
			continue
		}
		if _, ok := assignment[id]; !ok {
			return false
		}
	}
	return true
}
