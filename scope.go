package testlogging

import (
	"context"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/atomic"
)

var scopeStackIDs atomic.Uint64

// ScopeStack tracks the scopes opened on one logical flow. The flow is the
// context.Context: BeginScope returns a child context holding the new scope,
// so scopes follow a context across goroutines and are never visible to
// flows that did not derive from it.
//
// Each ScopeStack uses its own context key. Two loggers with different stacks
// never see each other's scopes even when they share a context.
type ScopeStack struct {
	id uint64
}

type scopeCtxKey struct {
	id uint64
}

type scopeNode struct {
	state  any
	depth  int
	parent *scopeNode
	closed atomic.Bool
}

// NewScopeStack returns an empty ScopeStack.
func NewScopeStack() *ScopeStack {
	return &ScopeStack{id: scopeStackIDs.Inc()}
}

// Begin opens a scope for state on top of the scopes already open in ctx.
// inner is closed together with the returned scope; a nil inner is replaced
// by a no-op scope. onClose runs once, after inner has been closed.
func (s *ScopeStack) Begin(ctx context.Context, state any, inner Scope, onClose func(depth int) error) (context.Context, *ScopeHandle) {
	if ctx == nil {
		ctx = context.Background()
	}
	if inner == nil {
		inner = noopScope{}
	}

	parent := s.top(ctx)
	node := &scopeNode{
		state:  state,
		depth:  depthOf(parent),
		parent: parent,
	}

	handle := &ScopeHandle{
		node:    node,
		inner:   inner,
		onClose: onClose,
	}
	return context.WithValue(ctx, scopeCtxKey{id: s.id}, node), handle
}

// Depth returns the number of scopes open in ctx.
func (s *ScopeStack) Depth(ctx context.Context) int {
	return depthOf(s.top(ctx))
}

// Snapshot returns the states of the scopes open in ctx, innermost first. The
// returned slice is a copy and does not change when scopes are later opened
// or closed.
func (s *ScopeStack) Snapshot(ctx context.Context) []any {
	var states []any
	for n := s.top(ctx); n != nil; n = n.parent {
		if !n.closed.Load() {
			states = append(states, n.state)
		}
	}
	return states
}

func (s *ScopeStack) top(ctx context.Context) *scopeNode {
	if s == nil || ctx == nil {
		return nil
	}
	node, _ := ctx.Value(scopeCtxKey{id: s.id}).(*scopeNode)
	return node
}

func depthOf(n *scopeNode) int {
	depth := 0
	for ; n != nil; n = n.parent {
		if !n.closed.Load() {
			depth++
		}
	}
	return depth
}

// ScopeHandle is the Scope returned by the loggers in this package.
//
// Scopes are expected to be closed in reverse order of opening. Closing one
// out of order is tolerated: it is removed from every later snapshot and
// depth calculation, and no error is raised.
type ScopeHandle struct {
	node    *scopeNode
	inner   Scope
	onClose func(depth int) error
	closed  atomic.Bool
}

// State returns the state the scope was opened with.
func (h *ScopeHandle) State() any {
	return h.node.state
}

// Depth returns the number of scopes that were open when this one began.
func (h *ScopeHandle) Depth() int {
	return h.node.depth
}

// Close ends the scope, closes the inner scope and runs the release callback.
// Only the first call has any effect.
func (h *ScopeHandle) Close() error {
	if h == nil || !h.closed.CompareAndSwap(false, true) {
		return nil
	}
	h.node.closed.Store(true)

	var result *multierror.Error
	if h.inner != nil {
		if err := h.inner.Close(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if h.onClose != nil {
		if err := h.onClose(h.node.depth); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// noopScope is the stand-in used where no real scope exists.
type noopScope struct{}

func (noopScope) Close() error { return nil }
