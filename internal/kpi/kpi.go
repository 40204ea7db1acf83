// Package kpi builds the three soft-objective integer expressions of
// §4.4 (K1-K3), one set per division lattice.
package kpi

import (
	"github.com/racquetleague/leaguer/internal/lattice"
	"github.com/racquetleague/leaguer/internal/model"
	"github.com/racquetleague/leaguer/internal/smt"
)

// hostsAway is true iff host ever hosts visitor within l, i.e. visitor
// plays away at host.
func hostsAway(b *smt.Builder, l *lattice.Lattice, host, visitor string) smt.Bool {
	h, ok := l.TeamIndex[host]
	v, ok2 := l.TeamIndex[visitor]
	if !ok || !ok2 {
		return b.False()
	}
	return b.Or(l.Grid[h][v][:]...)
}

// K1 — home/away imbalance, summed across l's teams: |home_count-
// away_count| with the off-by-one case clamped to 0.
func K1(b *smt.Builder, l *lattice.Lattice) smt.IntExpr {
	var terms []smt.IntExpr
	for ti, team := range l.Teams {
		var homeBits, awayBits []smt.Bool
		for w := 0; w < l.Weeks; w++ {
			homeBits = append(homeBits, b.Not(b.Eq(l.HomeOppIdx[ti][w], -1)))
			awayBits = append(awayBits, b.Not(b.Eq(l.AwayOppIdx[ti][w], -1)))
		}
		h := b.FromCounter(b.NewCounter(l.Division+"/k1/home/"+team, homeBits))
		a := b.FromCounter(b.NewCounter(l.Division+"/k1/away/"+team, awayBits))
		terms = append(terms, b.ClampOneToZero(b.AbsDiff(h, a)))
	}
	return b.Sum(terms)
}

// K2 — away twice at same club: for every same-club pair (t1,t2) within
// l and every other team t in l, 1 if t plays both t1 and t2 away.
func K2(b *smt.Builder, l *lattice.Lattice) smt.IntExpr {
	var bits []smt.Bool
	for i, t1 := range l.Teams {
		for _, t2 := range l.Teams[i+1:] {
			if !model.SameClub(t1, t2) {
				continue
			}
			for _, t := range l.Teams {
				bits = append(bits, b.And(hostsAway(b, l, t1, t), hostsAway(b, l, t2, t)))
			}
		}
	}
	return b.FromCounter(b.NewCounter(l.Division+"/k2", bits))
}

// K3 — repeat of old fixture: 1 per distinct old (home,away) pair,
// restricted to l's teams, whose new schedule still plays that
// orientation. A pair repeated across several old-fixture rows counts
// once, matching the original's membership-test dedup.
func K3(b *smt.Builder, l *lattice.Lattice, oldFixtures []model.OldFixture) smt.IntExpr {
	seen := make(map[[2]string]bool, len(oldFixtures))
	var bits []smt.Bool
	for _, f := range oldFixtures {
		if _, ok := l.TeamIndex[f.Home]; !ok {
			continue
		}
		if _, ok := l.TeamIndex[f.Away]; !ok {
			continue
		}
		pair := [2]string{f.Home, f.Away}
		if seen[pair] {
			continue
		}
		seen[pair] = true
		bits = append(bits, hostsAway(b, l, f.Home, f.Away))
	}
	return b.FromCounter(b.NewCounter(l.Division+"/k3", bits))
}
