package resolve

import (
	"fmt"
)

// Kind tags a resolver type in the execution history.
type Kind string

const (
	KindUseCard        Kind = "use-card"
	KindAttack         Kind = "attack"
	KindResponseWindow Kind = "response-window"
	KindDodgeChain     Kind = "dodge-chain"
	KindJudgement      Kind = "judgement"
	KindDamage         Kind = "damage"
	KindHeal           Kind = "heal"
	KindDraw           Kind = "draw"
	KindDyingRescue    Kind = "dying-rescue"
)

// Resolver is one unit of resolution logic. Its side effects are limited
// to mutating state through the context services, pushing follow-up
// resolvers, and writing the session for resolvers pushed later in the
// same chain.
type Resolver interface {
	Kind() Kind
	Resolve(ctx *Context) (Result, error)
}

// HistoryEntry records one executed frame. Entries are appended once per
// pop and never mutated or removed afterwards.
type HistoryEntry struct {
	Sequence int
	Kind     Kind
	Result   Result
}

type frame struct {
	resolver Resolver
	ctx      Context
}

// Stack is the resolution interpreter: a LIFO sequence of (resolver,
// context) frames drained one at a time. A resolver defers completion by
// pushing new work instead of blocking, which keeps effect chains
// inspectable and avoids native recursion. The stack lives for one
// top-level action and is discarded once drained.
//
// The engine is call-stack-synchronous: exactly one logical thread of
// control exists, so the stack is deliberately unsynchronized.
type Stack struct {
	frames  []frame
	history []HistoryEntry
	seq     int
}

// NewStack creates an empty resolution stack.
func NewStack() *Stack {
	return &Stack{frames: make([]frame, 0, 16)}
}

// Push adds a frame. Distinct frames may carry different contexts; a
// nested effect often acts on a different seat. Pushing a nil resolver is
// a programming error.
func (s *Stack) Push(r Resolver, ctx Context) {
	if r == nil {
		panic("resolve: push of nil resolver")
	}
	s.frames = append(s.frames, frame{resolver: r, ctx: ctx})
}

// Pop removes and executes exactly the most recently pushed frame,
// appends its kind and result to the history, and returns the result.
// Popping an empty stack is a hard fault. A structural error from the
// resolver is recorded and propagated; resolution-level failures come
// back as Result data.
func (s *Stack) Pop() (Result, error) {
	if len(s.frames) == 0 {
		return Result{}, fmt.Errorf("resolve: pop on empty resolution stack")
	}
	idx := len(s.frames) - 1
	f := s.frames[idx]
	s.frames = s.frames[:idx]

	res, err := f.resolver.Resolve(&f.ctx)
	if err != nil {
		res = Failure(ErrInvalidState, "resolve.structural-fault")
	}
	s.history = append(s.history, HistoryEntry{
		Sequence: s.seq,
		Kind:     f.resolver.Kind(),
		Result:   res,
	})
	s.seq++
	if err != nil {
		return res, fmt.Errorf("resolve %s: %w", f.resolver.Kind(), err)
	}
	return res, nil
}

// IsEmpty reports whether no frames are pending.
func (s *Stack) IsEmpty() bool {
	return len(s.frames) == 0
}

// History returns an ordered snapshot of everything executed across the
// stack's lifetime, not just pending frames.
func (s *Stack) History() []HistoryEntry {
	out := make([]HistoryEntry, len(s.history))
	copy(out, s.history)
	return out
}

// ResolveAll pops until the stack is empty. A structural fault stops
// the drain immediately and propagates; any unpopped frames are left
// stranded for the host to inspect.
func (s *Stack) ResolveAll() error {
	for !s.IsEmpty() {
		if _, err := s.Pop(); err != nil {
			return err
		}
	}
	return nil
}
