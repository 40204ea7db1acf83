package smt

import "fmt"

// DomainInt is a finite-domain integer realized as a one-hot vector of
// boolean indicators, one per value in [lo, hi]. Exactly one indicator is
// forced true by an exactly-one constraint asserted at creation time —
// this is how match_week/home_opp_idx/away_opp_idx (§3) are represented;
// their -1 "no opponent" / "idle" case is just another domain value.
type DomainInt struct {
	lo, hi int
	bits   map[int]Bool // value -> indicator
}

// FreshInt allocates a finite-domain integer over [lo, hi] inclusive and
// asserts (in the builder's current frame) that exactly one value holds.
func (b *Builder) FreshInt(label string, lo, hi int) DomainInt {
	d := DomainInt{lo: lo, hi: hi, bits: make(map[int]Bool, hi-lo+1)}
	for v := lo; v <= hi; v++ {
		d.bits[v] = b.FreshBool(fmt.Sprintf("%s=%d", label, v))
	}
	b.Assert(b.exactlyOne(d.allBits()))
	return d
}

func (d DomainInt) allBits() []Bool {
	out := make([]Bool, 0, len(d.bits))
	for v := d.lo; v <= d.hi; v++ {
		out = append(out, d.bits[v])
	}
	return out
}

// exactlyOne asserts "at least one, and no two simultaneously" over a
// small indicator set via direct pairwise exclusion — adequate since
// every DomainInt in this scheduler ranges over at most a few dozen
// values (weeks or teams).
func (b *Builder) exactlyOne(bits []Bool) Bool {
	atLeastOne := b.Or(bits...)
	var pairwise []Bool
	for i := 0; i < len(bits); i++ {
		for j := i + 1; j < len(bits); j++ {
			pairwise = append(pairwise, b.Not(b.And(bits[i], bits[j])))
		}
	}
	return b.And(append([]Bool{atLeastOne}, pairwise...)...)
}

// Eq returns the indicator for DomainInt == value, or False() if value is
// outside the domain's range.
func (b *Builder) Eq(d DomainInt, value int) Bool {
	if bit, ok := d.bits[value]; ok {
		return bit
	}
	return b.False()
}

// EqVar returns the indicator for d1 == d2 over their shared domain.
func (b *Builder) EqVar(d1, d2 DomainInt) Bool {
	var terms []Bool
	for v := max(d1.lo, d2.lo); v <= min(d1.hi, d2.hi); v++ {
		terms = append(terms, b.And(d1.bits[v], d2.bits[v]))
	}
	return b.Or(terms...)
}
