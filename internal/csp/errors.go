package csp

import (
	"fmt"
	"strings"
)

// Inconsistent is returned when no assignment satisfies every Constraint.
// Per spec.md §7 this is always a bug in the encoder, never a legitimate
// turn outcome: void orders are left out of the problem before the
// search starts, so a genuinely unsatisfiable problem means some
// constraint family contradicts another.
type Inconsistent struct {
	Offending []Constraint
}

func (e *Inconsistent) Error() string {
	if len(e.Offending) == 0 {
		return "csp: no solution exists"
	}
	parts := make([]string, len(e.Offending))
	for i, c := range e.Offending {
		parts[i] = c.String()
	}
	return fmt.Sprintf("csp: no solution exists; last constraints checked:\n%s", strings.Join(parts, "\n"))
}

// NonUnique is returned when two distinct assignments both satisfy every
// Constraint. spec.md §4.C requires the solution to be unique under the
// standard rules; surfacing this as a fatal error (rather than silently
// returning the first solution found) is how a missing tiebreak gets
// caught instead of producing a flip-floppy adjudicator.
type NonUnique struct {
	First, Second map[Identifier]string
}

func (e *NonUnique) Error() string {
	return "csp: multiple solutions satisfy the constraints (missing tiebreak in the encoder)"
}
