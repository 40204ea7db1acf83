package smt

// IntExpr is a small bounded non-negative integer expression, represented
// (like DomainInt) as a map from value to its indicator formula. Unlike
// DomainInt it is never itself a fresh variable with an asserted
// exactly-one constraint — it's built by composing other expressions
// (AbsDiff, Add, Clamp) whose component indicators are already mutually
// exclusive by construction, so no extra constraint is needed to keep it
// well-formed. This is what lets K1 (§4.4, a sum of clamped |home-away|
// differences, not a plain bit count) share machinery with Counter's
// bit-sums without inventing a native integer theory.
type IntExpr struct {
	hi int
	eq map[int]Bool
}

// FromCounter views a Counter's sequential-counter indicators as an
// IntExpr over 0..n.
func (b *Builder) FromCounter(c Counter) IntExpr {
	e := IntExpr{hi: c.n, eq: make(map[int]Bool, c.n+1)}
	for v := 0; v <= c.n; v++ {
		e.eq[v] = b.And(b.AtLeast(c, v), b.Not(b.AtLeast(c, v+1)))
	}
	return e
}

// AbsDiff returns |a-b| as an IntExpr.
func (b *Builder) AbsDiff(a, c IntExpr) IntExpr {
	hi := a.hi
	if c.hi > hi {
		hi = c.hi
	}
	out := IntExpr{hi: hi, eq: make(map[int]Bool)}
	for x := 0; x <= a.hi; x++ {
		for y := 0; y <= c.hi; y++ {
			v := x - y
			if v < 0 {
				v = -v
			}
			term := b.And(a.eq[x], c.eq[y])
			if existing, ok := out.eq[v]; ok {
				out.eq[v] = b.Or(existing, term)
			} else {
				out.eq[v] = term
			}
		}
	}
	return out
}

// ClampOneToZero maps value 1 to 0, leaving every other value unchanged.
// This is K1's "out-by-one is fine because 4h/3a is not improvable" rule.
func (b *Builder) ClampOneToZero(a IntExpr) IntExpr {
	out := IntExpr{hi: a.hi, eq: make(map[int]Bool, len(a.eq))}
	for v, ind := range a.eq {
		if v == 1 {
			continue
		}
		out.eq[v] = ind
	}
	if one, ok := a.eq[1]; ok {
		if zero, ok := out.eq[0]; ok {
			out.eq[0] = b.Or(zero, one)
		} else {
			out.eq[0] = one
		}
	}
	return out
}

// Add returns a+b as an IntExpr, by convolution over both operands' value
// ranges.
func (b *Builder) Add(a, c IntExpr) IntExpr {
	out := IntExpr{hi: a.hi + c.hi, eq: make(map[int]Bool)}
	for x := 0; x <= a.hi; x++ {
		ax, ok := a.eq[x]
		if !ok {
			continue
		}
		for y := 0; y <= c.hi; y++ {
			cy, ok := c.eq[y]
			if !ok {
				continue
			}
			term := b.And(ax, cy)
			v := x + y
			if existing, ok := out.eq[v]; ok {
				out.eq[v] = b.Or(existing, term)
			} else {
				out.eq[v] = term
			}
		}
	}
	return out
}

// Sum folds Add over a slice of IntExprs, starting from the constant 0.
func (b *Builder) Sum(terms []IntExpr) IntExpr {
	total := IntExpr{hi: 0, eq: map[int]Bool{0: b.True()}}
	for _, t := range terms {
		total = b.Add(total, t)
	}
	return total
}

// IntLessThan returns the indicator for expr < limit.
func (b *Builder) IntLessThan(e IntExpr, limit int) Bool {
	if limit <= 0 {
		return b.False()
	}
	var terms []Bool
	for v := 0; v < limit && v <= e.hi; v++ {
		if ind, ok := e.eq[v]; ok {
			terms = append(terms, ind)
		}
	}
	return b.Or(terms...)
}

// IfThenElse is the abstract builder's conditional primitive.
func (b *Builder) IfThenElse(cond, then_, else_ Bool) Bool {
	return b.Or(b.And(cond, then_), b.And(b.Not(cond), else_))
}
