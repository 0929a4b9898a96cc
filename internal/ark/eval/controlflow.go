package eval

import "github.com/ursalang/ark/internal/ark/value"

// ControlFlowKind discriminates the three non-local exits Ark supports
// (spec.md §6). It is never wrapped in an error: a control signal is not
// a failure, it is ordinary (if non-local) control transfer, which is why
// evaluation threads it as a second return value rather than via Go's
// panic/recover — spec.md §9 recommends exactly this shape for systems
// targets, where panic/recover's cost and opacity are worse than a
// result type every caller already has to check.
type ControlFlowKind int

const (
	// FlowNone means the expression completed normally; Payload is unused.
	FlowNone ControlFlowKind = iota
	FlowBreak
	FlowContinue
	FlowReturn
)

// ControlFlow carries a non-local exit in flight up the evaluation of an
// expression tree, until the construct that catches its Kind (Loop for
// Break/Continue, Call for Return) absorbs it.
type ControlFlow struct {
	Kind    ControlFlowKind
	Payload value.Value
}

func (c ControlFlow) isNone() bool { return c.Kind == FlowNone }

var none = ControlFlow{Kind: FlowNone}
