// Package constraints builds the hard-constraint conjunction of §4.3
// (C1-C10) over a division's lattice.
package constraints

import (
	"time"

	"github.com/racquetleague/leaguer/internal/apperr"
	"github.com/racquetleague/leaguer/internal/lattice"
	"github.com/racquetleague/leaguer/internal/model"
	"github.com/racquetleague/leaguer/internal/smt"
)

// HomeDateFunc returns the real calendar date of team's home slot in the
// given week, already adjusted for the competition's week spread.
type HomeDateFunc func(team string, week int) time.Time

// AssertDivision asserts C1-C9 over one division's lattice. restDays is
// the minimum inter-match gap (C8); homeDate supplies the spread-adjusted
// home dates C8 compares. Returns apperr.ModelUnsat if C9's same-club
// scheduling can provably never fit within l.Weeks, rather than indexing
// past the lattice.
func AssertDivision(b *smt.Builder, l *lattice.Lattice, restDays int, homeDate HomeDateFunc) error {
	assertGridMatchWeekCoupling(b, l)
	assertSingleOrientation(b, l)
	assertOppIdxCoupling(b, l)
	assertEachPairOnce(b, l)
	assertOncePerWeek(b, l)
	assertEnoughRest(b, l, restDays, homeDate)
	return assertSameClubEarly(b, l)
}

// C1 — grid/match_week coupling: grid[h,a,w] <=> match_week[h,a] = w.
func assertGridMatchWeekCoupling(b *smt.Builder, l *lattice.Lattice) {
	t := len(l.Teams)
	for h := 0; h < t; h++ {
		for a := 0; a < t; a++ {
			for w := 0; w < l.Weeks; w++ {
				b.Assert(b.Iff(l.Grid[h][a][w], b.Eq(l.MatchWeek[h][a], w)))
			}
		}
	}
}

// C2 (match_week range -1..W-1) holds automatically: FreshInt(-1, W-1)
// only ever allocates indicators in that range.

// C3 — single orientation: every pair is hosted by at most one side, and
// (excluding self-pairs) by exactly one side.
func assertSingleOrientation(b *smt.Builder, l *lattice.Lattice) {
	t := len(l.Teams)
	for h := 0; h < t; h++ {
		for a := 0; a < t; a++ {
			hostsNeither := b.Or(b.Eq(l.MatchWeek[h][a], -1), b.Eq(l.MatchWeek[a][h], -1))
			b.Assert(hostsNeither)
			if h != a {
				exactlyOneHosts := b.Not(b.Iff(b.Eq(l.MatchWeek[h][a], -1), b.Eq(l.MatchWeek[a][h], -1)))
				b.Assert(exactlyOneHosts)
			}
		}
	}
}

// C4/C5 — home_opp_idx/away_opp_idx coupling: grid[h,a,w] <=>
// home_opp_idx[h,w] = index(a), and symmetrically for away_opp_idx.
func assertOppIdxCoupling(b *smt.Builder, l *lattice.Lattice) {
	t := len(l.Teams)
	for h := 0; h < t; h++ {
		for a := 0; a < t; a++ {
			for w := 0; w < l.Weeks; w++ {
				b.Assert(b.Iff(l.Grid[h][a][w], b.Eq(l.HomeOppIdx[h][w], a)))
				b.Assert(b.Iff(l.Grid[h][a][w], b.Eq(l.AwayOppIdx[a][w], h)))
			}
		}
	}
}

// C6 — each pairing happens exactly once, no self-match, no both-
// directions. Redundant with C1-C3; retained for solver performance.
func assertEachPairOnce(b *smt.Builder, l *lattice.Lattice) {
	t := len(l.Teams)
	var pairingHappens, playsSelf, playsBoth []smt.Bool

	for h := 0; h < t; h++ {
		for a := 0; a < t; a++ {
			if h == a {
				playsSelf = append(playsSelf, b.Or(l.Grid[h][h][:]...))
				continue
			}
			playsHome := b.Or(l.Grid[h][a][:]...)
			playsAway := b.Or(l.Grid[a][h][:]...)
			pairingHappens = append(pairingHappens, b.Or(playsHome, playsAway))
			playsBoth = append(playsBoth, b.And(playsHome, playsAway))
		}
	}

	b.Assert(b.And(pairingHappens...))
	b.Assert(b.Not(b.Or(playsSelf...)))
	b.Assert(b.Not(b.Or(playsBoth...)))
}

// C7 — at most one fixture per team per week.
func assertOncePerWeek(b *smt.Builder, l *lattice.Lattice) {
	t := len(l.Teams)
	for w := 0; w < l.Weeks; w++ {
		for h := 0; h < t; h++ {
			for a := 0; a < t; a++ {
				if h == a {
					continue
				}
				var homeOtherHome, homeAnyAway, awayAnyHome, awayOtherAway []smt.Bool
				for opp := 0; opp < t; opp++ {
					if opp != a {
						homeOtherHome = append(homeOtherHome, l.Grid[h][opp][w])
					}
					homeAnyAway = append(homeAnyAway, l.Grid[opp][h][w])
					awayAnyHome = append(awayAnyHome, l.Grid[a][opp][w])
					if opp != h {
						awayOtherAway = append(awayOtherAway, l.Grid[opp][a][w])
					}
				}
				thisMatch := l.Grid[h][a][w]
				anyOther := b.Or(
					b.Or(homeOtherHome...),
					b.Or(homeAnyAway...),
					b.Or(awayAnyHome...),
					b.Or(awayOtherAway...),
				)
				b.Assert(b.Implies(thisMatch, b.Not(anyOther)))
			}
		}
	}
}

// C8 — enough rest: a team that hosts/visits in week w must not be made
// to play again too soon in week w+1, measured in real spread-adjusted
// days (DESIGN NOTES §9's resolution of that open question). The host's
// own back-to-back home week is allowed; a team's weekly slot is assumed
// ready.
func assertEnoughRest(b *smt.Builder, l *lattice.Lattice, restDays int, homeDate HomeDateFunc) {
	t := len(l.Teams)
	rest := time.Duration(restDays) * 24 * time.Hour

	for w := 0; w < l.Weeks-1; w++ {
		homeDateThisWeek := make([]time.Time, t)
		homeDateNextWeek := make([]time.Time, t)
		for i, name := range l.Teams {
			homeDateThisWeek[i] = homeDate(name, w)
			homeDateNextWeek[i] = homeDate(name, w+1)
		}

		for h := 0; h < t; h++ {
			for a := 0; a < t; a++ {
				if h == a {
					continue
				}
				thisMatchDate := homeDateThisWeek[h]
				deadline := thisMatchDate.Add(rest)

				var tooSoon []smt.Bool
				for n := 0; n < t; n++ {
					if homeDateNextWeek[n].Before(deadline) {
						tooSoon = append(tooSoon, l.Grid[n][h][w+1]) // h plays away too soon
						tooSoon = append(tooSoon, l.Grid[n][a][w+1]) // a plays away too soon
					}
				}
				if homeDateNextWeek[a].Before(deadline) {
					for n := 0; n < t; n++ {
						tooSoon = append(tooSoon, l.Grid[a][n][w+1]) // a hosts too soon
					}
				}

				thisMatch := l.Grid[h][a][w]
				b.Assert(b.Implies(thisMatch, b.Not(b.Or(tooSoon...))))
			}
		}
	}
}

// C9 — same-club pairs play in the earliest available week for both
// teams, each pair claiming the next free week for both sides in turn.
// This is the source's stronger, per-pair-incremental-counter form,
// preserved for fidelity over the weaker "first S weeks" alternative
// (DESIGN NOTES open question).
func assertSameClubEarly(b *smt.Builder, l *lattice.Lattice) error {
	nextFreeWeek := make(map[string]int, len(l.Teams))
	for _, name := range l.Teams {
		nextFreeWeek[name] = 0
	}

	for i, team1 := range l.Teams {
		for _, team2 := range l.Teams[i+1:] {
			if !model.SameClub(team1, team2) {
				continue
			}
			week := nextFreeWeek[team1]
			if nextFreeWeek[team2] > week {
				week = nextFreeWeek[team2]
			}
			if week >= l.Weeks {
				return apperr.New(apperr.ModelUnsat,
					"division %q has no free week left for same-club pair %s v %s within %d weeks",
					l.Division, team1, team2, l.Weeks)
			}
			h, a := l.TeamIndex[team1], l.TeamIndex[team2]
			b.Assert(b.Or(l.Grid[h][a][week], l.Grid[a][h][week]))
			nextFreeWeek[team1] = week + 1
			nextFreeWeek[team2] = week + 1
		}
	}
	return nil
}

// AssertSharedSlot is C10: for every week, not both sharing teams host.
// team1/lattice1 and team2/lattice2 may belong to the same or different
// divisions.
func AssertSharedSlot(b *smt.Builder, l1 *lattice.Lattice, team1 string, l2 *lattice.Lattice, team2 string) {
	weeks := l1.Weeks
	if l2.Weeks < weeks {
		weeks = l2.Weeks
	}
	i1, i2 := l1.TeamIndex[team1], l2.TeamIndex[team2]

	for w := 0; w < weeks; w++ {
		var t1Home, t2Home []smt.Bool
		for opp := 0; opp < len(l1.Teams); opp++ {
			t1Home = append(t1Home, l1.Grid[i1][opp][w])
		}
		for opp := 0; opp < len(l2.Teams); opp++ {
			t2Home = append(t2Home, l2.Grid[i2][opp][w])
		}
		b.Assert(b.Not(b.And(b.Or(t1Home...), b.Or(t2Home...))))
	}
}
