package lattice

import (
	"testing"

	"github.com/racquetleague/leaguer/internal/smt"
)

func TestBuildAllocatesShapes(t *testing.T) {
	b := smt.NewBuilder()
	teams := []string{"Royston 1", "Baldock 1", "Letchworth 1"}
	l := Build(b, "Premier", teams, 5)

	t.Run("team index", func(t *testing.T) {
		for i, name := range teams {
			if l.TeamIndex[name] != i {
				t.Errorf("TeamIndex[%q] = %d, want %d", name, l.TeamIndex[name], i)
			}
		}
	})

	t.Run("grid shape", func(t *testing.T) {
		if len(l.Grid) != len(teams) {
			t.Fatalf("Grid has %d rows, want %d", len(l.Grid), len(teams))
		}
		for h := range l.Grid {
			if len(l.Grid[h]) != len(teams) {
				t.Fatalf("Grid[%d] has %d cols, want %d", h, len(l.Grid[h]), len(teams))
			}
			for a := range l.Grid[h] {
				if len(l.Grid[h][a]) != 5 {
					t.Fatalf("Grid[%d][%d] has %d weeks, want 5", h, a, len(l.Grid[h][a]))
				}
			}
		}
	})

	t.Run("match week shape", func(t *testing.T) {
		if len(l.MatchWeek) != len(teams) || len(l.MatchWeek[0]) != len(teams) {
			t.Errorf("MatchWeek shape = %dx%d, want %dx%d", len(l.MatchWeek), len(l.MatchWeek[0]), len(teams), len(teams))
		}
	})

	t.Run("home/away opp idx shape", func(t *testing.T) {
		if len(l.HomeOppIdx) != len(teams) || len(l.HomeOppIdx[0]) != 5 {
			t.Errorf("HomeOppIdx shape = %dx%d, want %dx5", len(l.HomeOppIdx), len(l.HomeOppIdx[0]))
		}
		if len(l.AwayOppIdx) != len(teams) || len(l.AwayOppIdx[0]) != 5 {
			t.Errorf("AwayOppIdx shape = %dx%d, want %dx5", len(l.AwayOppIdx), len(l.AwayOppIdx[0]))
		}
	})
}

func TestDomainIntsAreExactlyOne(t *testing.T) {
	b := smt.NewBuilder()
	l := Build(b, "Premier", []string{"A", "B"}, 2)

	// Each MatchWeek domain variable must itself already be satisfiable:
	// the exactly-one constraint is asserted at allocation time.
	if _, ok := b.Check(); !ok {
		t.Fatal("lattice allocation alone should be satisfiable")
	}

	m, _ := b.Check()
	count := 0
	for v := -1; v <= 1; v++ {
		if m.Extract(b.Eq(l.MatchWeek[0][1], v)) {
			count++
		}
	}
	if count != 1 {
		t.Errorf("MatchWeek[0][1] has %d values true, want exactly 1", count)
	}
}

func TestDistinctDivisionsGetDistinctLabels(t *testing.T) {
	b := smt.NewBuilder()
	teams := []string{"A", "B"}
	l1 := Build(b, "Premier", teams, 2)
	l2 := Build(b, "Reserve", teams, 2)

	// Variables from different divisions must not alias: forcing one
	// division's grid cell must not constrain the other's.
	b.Assert(l1.Grid[0][1][0])
	b.Assert(b.Not(l2.Grid[0][1][0]))
	if _, ok := b.Check(); !ok {
		t.Error("grid cells from different divisions should be independent variables")
	}
}
