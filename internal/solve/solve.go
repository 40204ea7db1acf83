// Package solve is the optimizer driver of §4.5: it asserts every
// division's hard constraints, confirms satisfiability, minimizes the
// three KPIs in strict lexicographic order, and extracts the final
// schedule.
package solve

import (
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/racquetleague/leaguer/internal/apperr"
	"github.com/racquetleague/leaguer/internal/constraints"
	"github.com/racquetleague/leaguer/internal/kpi"
	"github.com/racquetleague/leaguer/internal/lattice"
	"github.com/racquetleague/leaguer/internal/model"
	"github.com/racquetleague/leaguer/internal/smt"
)

// maxTighteningIterations bounds the per-division KPI backoff loop (§4.5
// "up to a small bound (e.g. 50)").
const maxTighteningIterations = 50

// defaultLocation mirrors the source's single fixed venue label; the
// inputs carry no richer location data to draw from.
const defaultLocation = "Main Location"

// Bounds records, per KPI, the largest value each division's KPI was held
// to (a settled "KPI < n" bound is recorded as n-1). -1 means the
// tightening loop never found a feasible limit (KPITighteningTimeout),
// so only the hard constraints bind that KPI.
type Bounds struct {
	K1, K2, K3 int
}

// Result is the driver's output: the extracted schedule plus the final
// per-division KPI bounds (printed in the CLI's post-run KPI summary).
type Result struct {
	Matches []model.ScheduledMatch
	Bounds  map[string]Bounds
}

type divisionState struct {
	l          *lattice.Lattice
	k1, k2, k3 smt.IntExpr

	k1Bound, k2Bound, k3Bound int
}

// Run builds every division's lattice, asserts C1-C10, and minimizes
// K1/K2/K3 in that order before extracting the schedule. weeks, restDays
// and spread are the configuration knobs of §6.
func Run(b *smt.Builder, cat *model.Catalogue, weeks, restDays, spread int) (*Result, error) {
	homeDate := func(team string, week int) time.Time {
		return cat.SlotOf[team].HomeDate(week, spread)
	}

	order := make([]string, 0, len(cat.Divisions))
	lats := make(map[string]*lattice.Lattice, len(cat.Divisions))
	states := make(map[string]*divisionState, len(cat.Divisions))

	for _, d := range cat.Divisions {
		l := lattice.Build(b, d.Name, d.Teams, weeks)
		lats[d.Name] = l
		order = append(order, d.Name)

		if err := constraints.AssertDivision(b, l, restDays, homeDate); err != nil {
			return nil, err
		}
		states[d.Name] = &divisionState{
			l:       l,
			k1:      kpi.K1(b, l),
			k2:      kpi.K2(b, l),
			k3:      kpi.K3(b, l, cat.OldFixtures),
			k1Bound: -1, k2Bound: -1, k3Bound: -1,
		}

		if _, ok := b.Check(); !ok {
			return nil, apperr.New(apperr.ModelUnsat, "division %q has no feasible schedule under its hard constraints", d.Name)
		}
		log.Debugf("provisional %s: satisfiable", d.Name)
	}

	for _, pair := range sharedSlotPairs(cat, lats) {
		constraints.AssertSharedSlot(b, pair.L1, pair.Team1, pair.L2, pair.Team2)
	}
	if _, ok := b.Check(); !ok {
		return nil, apperr.New(apperr.ModelUnsat, "no feasible schedule once shared-slot constraints are applied")
	}
	log.Debug("constraining shared slots: satisfiable")

	for _, kp := range kpiOrder(states) {
		tighten(b, kp, order, states)
	}

	finalModel, ok := b.Check()
	if !ok {
		return nil, apperr.New(apperr.ModelUnsat, "solver became unsatisfiable while extracting the final model")
	}

	matches, err := extract(finalModel, order, lats, cat, spread)
	if err != nil {
		return nil, err
	}

	bounds := make(map[string]Bounds, len(order))
	for _, name := range order {
		st := states[name]
		bounds[name] = Bounds{K1: st.k1Bound, K2: st.k2Bound, K3: st.k3Bound}
	}

	return &Result{Matches: matches, Bounds: bounds}, nil
}

type kpiSpec struct {
	name string
	get  func(*divisionState) smt.IntExpr
	set  func(*divisionState, int)
}

func kpiOrder(states map[string]*divisionState) []kpiSpec {
	return []kpiSpec{
		{"home_away_imbalance", func(s *divisionState) smt.IntExpr { return s.k1 }, func(s *divisionState, v int) { s.k1Bound = v }},
		{"away_twice_at_same_club", func(s *divisionState) smt.IntExpr { return s.k2 }, func(s *divisionState, v int) { s.k2Bound = v }},
		{"repeat_of_old_fixture", func(s *divisionState) smt.IntExpr { return s.k3 }, func(s *divisionState, v int) { s.k3Bound = v }},
	}
}

// tighten runs one KPI's lexicographic minimization step: first try every
// division at once, then back off to a per-division loop.
func tighten(b *smt.Builder, kp kpiSpec, order []string, states map[string]*divisionState) {
	b.Push()
	var allBelowOne []smt.Bool
	for _, name := range order {
		allBelowOne = append(allBelowOne, b.IntLessThan(kp.get(states[name]), 1))
	}
	b.Assert(b.And(allBelowOne...))

	if _, ok := b.Check(); ok {
		log.Infof("%s: all divisions <1", kp.name)
		for _, name := range order {
			kp.set(states[name], 0)
		}
		return
	}
	b.Pop()
	log.Infof("%s: not jointly <1, tightening per division", kp.name)

	for _, name := range order {
		st := states[name]
		limit := 1
		achieved := false
		for iter := 0; iter < maxTighteningIterations; iter++ {
			b.Push()
			b.Assert(b.IntLessThan(kp.get(st), limit))
			if _, ok := b.Check(); ok {
				kp.set(st, limit-1)
				achieved = true
				log.Infof("%s: %s settled at <%d", kp.name, name, limit)
				break
			}
			b.Pop()
			limit++
		}
		if !achieved {
			err := apperr.New(apperr.KPITighteningTimeout, "%s: %s exhausted %d iterations without a feasible bound", name, kp.name, maxTighteningIterations)
			log.Warn(err.Error())
		}
	}
}

// SharedSlotPair names one shared-slot C10 obligation between two teams,
// possibly in different divisions.
type SharedSlotPair struct {
	L1, L2       *lattice.Lattice
	Team1, Team2 string
}

func sharedSlotPairs(cat *model.Catalogue, lats map[string]*lattice.Lattice) []SharedSlotPair {
	var out []SharedSlotPair
	for team, slot := range cat.SlotOf {
		if slot.Sharing == "" || slot.Primary != team {
			continue
		}
		out = append(out, SharedSlotPair{
			L1: lats[cat.DivisionOf[team]], Team1: team,
			L2: lats[cat.DivisionOf[slot.Sharing]], Team2: slot.Sharing,
		})
	}
	return out
}

// extract reads off every scheduled match from the final model, failing
// with ExtractionInvariant if any unordered pair is missing or duplicated.
func extract(m smt.Model, order []string, lats map[string]*lattice.Lattice, cat *model.Catalogue, spread int) ([]model.ScheduledMatch, error) {
	var out []model.ScheduledMatch

	for _, name := range order {
		l := lats[name]
		seen := make(map[[2]int]bool)

		for h, homeTeam := range l.Teams {
			for a, awayTeam := range l.Teams {
				if h == a {
					continue
				}
				for w := 0; w < l.Weeks; w++ {
					if !m.Extract(l.Grid[h][a][w]) {
						continue
					}
					if seen[[2]int{h, a}] || seen[[2]int{a, h}] {
						return nil, apperr.New(apperr.ExtractionInvariant,
							"%s vs %s scheduled more than once in division %q", homeTeam, awayTeam, name)
					}
					seen[[2]int{h, a}] = true

					slot := cat.SlotOf[homeTeam]
					out = append(out, model.ScheduledMatch{
						Division: name,
						Home:     homeTeam,
						Away:     awayTeam,
						Date:     slot.HomeDate(w, spread),
						Time:     slot.Time,
						Court:    slot.Court,
						Location: defaultLocation,
					})
				}
			}
		}

		for i, t1 := range l.Teams {
			for _, t2 := range l.Teams[i+1:] {
				h1, h2 := l.TeamIndex[t1], l.TeamIndex[t2]
				if !seen[[2]int{h1, h2}] && !seen[[2]int{h2, h1}] {
					return nil, apperr.New(apperr.ExtractionInvariant,
						"%s vs %s never scheduled in division %q", t1, t2, name)
				}
			}
		}
	}

	return out, nil
}
