package smt

import "fmt"

// Counter represents the sum of a set of boolean indicator bits, encoded
// as a Sinz-style sequential counter: r[i][j] means "at least j of the
// first i bits are true". This gives every "sum < limit" / "sum <= limit"
// query used by the KPI-tightening loop (§4.5) a cheap boolean formula
// without the builder needing genuine integer arithmetic.
type Counter struct {
	n        int
	atLeast  []Bool // atLeast[j], j in 1..n; atLeast[0] is implicitly True
}

// NewCounter builds a Counter over the given bits.
func (b *Builder) NewCounter(label string, bits []Bool) Counter {
	n := len(bits)
	c := Counter{n: n, atLeast: make([]Bool, n+1)}
	if n == 0 {
		return c
	}

	// r[i][j], i in 1..n, j in 1..n (only j<=i is meaningful).
	r := make([][]Bool, n+1)
	for i := 1; i <= n; i++ {
		r[i] = make([]Bool, n+1)
	}

	for i := 1; i <= n; i++ {
		for j := 1; j <= i; j++ {
			name := fmt.Sprintf("%s.atleast[%d,%d]", label, i, j)
			v := b.FreshBool(name)
			r[i][j] = v

			switch {
			case j == 1 && i == 1:
				b.Assert(b.Iff(v, bits[0]))
			case j == 1:
				b.Assert(b.Iff(v, b.Or(r[i-1][1], bits[i-1])))
			case j == i:
				b.Assert(b.Iff(v, b.And(r[i-1][j-1], bits[i-1])))
			default:
				b.Assert(b.Iff(v, b.Or(r[i-1][j], b.And(r[i-1][j-1], bits[i-1]))))
			}
		}
	}

	for j := 1; j <= n; j++ {
		c.atLeast[j] = r[n][j]
	}
	return c
}

// AtLeast returns the indicator for sum >= j. j<=0 is always true, j>n is
// always false.
func (b *Builder) AtLeast(c Counter, j int) Bool {
	if j <= 0 {
		return b.True()
	}
	if j > c.n {
		return b.False()
	}
	return c.atLeast[j]
}

// LessThan returns the indicator for sum < limit.
func (b *Builder) LessThan(c Counter, limit int) Bool {
	return b.Not(b.AtLeast(c, limit))
}

// LessEq returns the indicator for sum <= limit.
func (b *Builder) LessEq(c Counter, limit int) Bool {
	return b.LessThan(c, limit+1)
}
