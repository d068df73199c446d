/*
Package watch drives a scan state through rounds and broadcasts emitted
results to subscribers.

The parscan core is deliberately synchronous: Update is a pure function
from inputs and state to a successor state. Driver processes usually want
the opposite surface, a long-lived owner that workers can subscribe to.
Pipeline provides that surface on top of a caster broadcaster.
*/
package watch

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to a global core-tracer.
func tracer() tracing.Trace {
	return gtrace.CoreTracer
}
