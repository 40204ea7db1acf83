// Package lattice allocates the per-division schedule-variable model of
// §4.2/§3: the grid/match_week/home_opp_idx/away_opp_idx views, kept
// deliberately redundant so the constraint builder can express hard
// constraints against whichever view is tightest (§3, §9 "redundant
// views").
package lattice

import (
	"strconv"

	"github.com/racquetleague/leaguer/internal/smt"
)

// Lattice holds one division's decision-variable views.
type Lattice struct {
	Division string
	Teams    []string // ordered; index is the team's compact id
	Weeks    int

	TeamIndex map[string]int

	// Grid[h][a][w]: team h hosts team a in week w.
	Grid [][][]smt.Bool
	// MatchWeek[h][a]: week h hosts a, or domain value -1 if never.
	MatchWeek [][]smt.DomainInt
	// HomeOppIdx[h][w]: index of the team h hosts in week w, or -1.
	HomeOppIdx [][]smt.DomainInt
	// AwayOppIdx[a][w]: index of the team a visits in week w, or -1.
	AwayOppIdx [][]smt.DomainInt
}

// Build allocates every variable of the lattice for one division. Weeks
// is the configured competition length W; teams must already be ordered
// consistently with how the caller wants team ids assigned (normalize
// preserves input order).
func Build(b *smt.Builder, division string, teams []string, weeks int) *Lattice {
	t := len(teams)
	l := &Lattice{
		Division:  division,
		Teams:     teams,
		Weeks:     weeks,
		TeamIndex: make(map[string]int, t),
	}
	for i, name := range teams {
		l.TeamIndex[name] = i
	}

	l.Grid = make([][][]smt.Bool, t)
	for h := 0; h < t; h++ {
		l.Grid[h] = make([][]smt.Bool, t)
		for a := 0; a < t; a++ {
			l.Grid[h][a] = make([]smt.Bool, weeks)
			for w := 0; w < weeks; w++ {
				l.Grid[h][a][w] = b.FreshBool(gridLabel(division, teams[h], teams[a], w))
			}
		}
	}

	l.MatchWeek = make([][]smt.DomainInt, t)
	for h := 0; h < t; h++ {
		l.MatchWeek[h] = make([]smt.DomainInt, t)
		for a := 0; a < t; a++ {
			l.MatchWeek[h][a] = b.FreshInt(matchWeekLabel(division, teams[h], teams[a]), -1, weeks-1)
		}
	}

	l.HomeOppIdx = make([][]smt.DomainInt, t)
	for h := 0; h < t; h++ {
		l.HomeOppIdx[h] = make([]smt.DomainInt, weeks)
		for w := 0; w < weeks; w++ {
			l.HomeOppIdx[h][w] = b.FreshInt(homeOppLabel(division, teams[h], w), -1, t-1)
		}
	}

	l.AwayOppIdx = make([][]smt.DomainInt, t)
	for a := 0; a < t; a++ {
		l.AwayOppIdx[a] = make([]smt.DomainInt, weeks)
		for w := 0; w < weeks; w++ {
			l.AwayOppIdx[a][w] = b.FreshInt(awayOppLabel(division, teams[a], w), -1, t-1)
		}
	}

	return l
}

func gridLabel(division, home, away string, week int) string {
	return division + "/grid/" + home + "/" + away + "/" + weekSuffix(week)
}

func matchWeekLabel(division, home, away string) string {
	return division + "/match_week/" + home + "/" + away
}

func homeOppLabel(division, team string, week int) string {
	return division + "/home_opp_idx/" + team + "/" + weekSuffix(week)
}

func awayOppLabel(division, team string, week int) string {
	return division + "/away_opp_idx/" + team + "/" + weekSuffix(week)
}

func weekSuffix(week int) string {
	return strconv.Itoa(week)
}
