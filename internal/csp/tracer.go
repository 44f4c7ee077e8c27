package csp

import "github.com/rs/zerolog"

// Tracer observes the search as it progresses. The default implementation
// logs through zerolog the way deppy's DefaultTracer printed to stdout,
// but structured and leveled instead of a bare fmt.Println.
type Tracer interface {
	Decision(variable Identifier, value string)
	Backtrack(variable Identifier, reason Constraint)
}

// ZerologTracer logs search decisions at debug level and backtracks at
// trace level; which of them are written depends on the level of the
// given logger and on zerolog's global level.
type ZerologTracer struct {
	Log zerolog.Logger
}

func (t ZerologTracer) Decision(variable Identifier, value string) {
	t.Log.Debug().Str("variable", string(variable)).Str("value", value).Msg("assigned")
}

func (t ZerologTracer) Backtrack(variable Identifier, reason Constraint) {
	t.Log.Trace().Str("variable", string(variable)).Str("constraint", reason.String()).Msg("backtrack")
}

// NoopTracer discards every event; it is the solver's default so that
// tracing is opt-in.
type NoopTracer struct{}

func (NoopTracer) Decision(Identifier, string)       {}
func (NoopTracer) Backtrack(Identifier, Constraint) {}
