// Package smt implements the abstract boolean/integer builder capability
// described in the specification's DESIGN NOTES §9:
//
//	{fresh_bool, fresh_int, and, or, not, implies, iff, eq, lt, le,
//	 if_then_else, push, pop, assert, check, extract}
//
// Constraint and KPI builders depend only on this interface, never on the
// concrete solving engine, so the engine underneath is swappable. The
// concrete engine here is github.com/crillab/gophersat/bf, a pure-Go SAT
// solver operating on boolean formulas. Finite-domain integers and KPI
// counters are realized as encodings over boolean variables — the same
// trick any SAT-based CP solver uses to support "integers" without a
// native theory for them.
package smt

import (
	"fmt"

	"github.com/crillab/gophersat/bf"
)

// Bool is a boolean term: either a fresh named variable or a formula
// built from combinators over other Bools. name is non-empty only for
// terms created directly by FreshBool/True/False, which is what makes
// them extractable from a Model.
type Bool struct {
	f    bf.Formula
	name string
}

// Model is a satisfying assignment, mapping fresh variable names to their
// boolean value.
type Model map[string]bool

// Builder accumulates fresh variables and a stack of assertion frames,
// and can check satisfiability of their conjunction.
type Builder struct {
	varSeq int
	frames [][]bf.Formula // frames[0] is the base (unpoppable) frame
}

// NewBuilder returns a Builder with an empty base frame.
func NewBuilder() *Builder {
	return &Builder{frames: [][]bf.Formula{nil}}
}

// FreshBool allocates a new named boolean variable. The name is used only
// for debugging/model lookup; callers never need to reference it directly.
func (b *Builder) FreshBool(label string) Bool {
	b.varSeq++
	name := fmt.Sprintf("%s#%d", label, b.varSeq)
	return Bool{f: bf.Var(name), name: name}
}

// True and False are the boolean constants, built from a single fresh
// variable forced (or forbidden) at the base frame so they behave as
// genuine constants under any downstream combinator.
func (b *Builder) True() Bool {
	v := b.FreshBool("true")
	b.frames[0] = append(b.frames[0], v.f)
	return v
}

func (b *Builder) False() Bool {
	v := b.FreshBool("false")
	b.frames[0] = append(b.frames[0], bf.Not(v.f))
	return v
}

func (b *Builder) Not(a Bool) Bool { return Bool{f: bf.Not(a.f)} }

func (b *Builder) And(terms ...Bool) Bool {
	if len(terms) == 0 {
		return b.True()
	}
	fs := make([]bf.Formula, len(terms))
	for i, t := range terms {
		fs[i] = t.f
	}
	return Bool{f: bf.And(fs...)}
}

func (b *Builder) Or(terms ...Bool) Bool {
	if len(terms) == 0 {
		return b.False()
	}
	fs := make([]bf.Formula, len(terms))
	for i, t := range terms {
		fs[i] = t.f
	}
	return Bool{f: bf.Or(fs...)}
}

// Implies returns a => c, built from Not/Or since the engine's primitive
// set is just {Var, Not, And, Or}.
func (b *Builder) Implies(a, c Bool) Bool {
	return Bool{f: bf.Or(bf.Not(a.f), c.f)}
}

// Iff returns a <=> c.
func (b *Builder) Iff(a, c Bool) Bool {
	return b.And(b.Implies(a, c), b.Implies(c, a))
}

// Assert adds a constraint to the current (top) frame.
func (b *Builder) Assert(a Bool) {
	top := len(b.frames) - 1
	b.frames[top] = append(b.frames[top], a.f)
}

// Push opens a new assertion frame.
func (b *Builder) Push() {
	b.frames = append(b.frames, nil)
}

// Pop discards the most recent frame. Popping the base frame is a bug in
// the caller (the base frame holds hard constraints that must never be
// rolled back) and panics.
func (b *Builder) Pop() {
	if len(b.frames) <= 1 {
		panic("smt: Pop called with no pushed frame")
	}
	b.frames = b.frames[:len(b.frames)-1]
}

// Check solves the conjunction of every asserted formula across every
// live frame. It re-solves from scratch each call: push/pop are
// simulated on top of a non-incremental engine, which is correct (if not
// maximally fast) per DESIGN NOTES §9's "any SMT backend with these
// primitives can be plugged in".
func (b *Builder) Check() (Model, bool) {
	var all []bf.Formula
	for _, frame := range b.frames {
		all = append(all, frame...)
	}
	if len(all) == 0 {
		return Model{}, true
	}
	m := bf.Solve(bf.And(all...))
	if m == nil {
		return nil, false
	}
	return Model(m), true
}

// Extract reads a Bool's value out of a satisfying Model. Only valid for
// Bools built directly from FreshBool (or combinators thereof evaluated
// by the caller); composite formulas should be re-evaluated by the caller
// from their fresh-variable components instead of calling Extract on them.
func (m Model) Extract(v Bool) bool {
	if v.name == "" {
		panic("smt: Extract called on a non-atomic term")
	}
	return m[v.name]
}
