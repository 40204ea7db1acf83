// Package audit implements the §4.6 self-audit: after the schedule is
// extracted, re-scan every shared slot for teams that ended up playing
// at home on the same date. Adapted from the source's standalone
// validator, narrowed to the one check that matters post-solve — every
// other invariant is enforced structurally by the constraint builder.
package audit

import (
	"sort"
	"time"

	"github.com/racquetleague/leaguer/internal/model"
)

// SharedPair names two teams who share one weekly slot.
type SharedPair struct {
	Team1, Team2 string
}

// SharedPairsFromCatalogue lists every shared-slot pair in cat.
func SharedPairsFromCatalogue(cat *model.Catalogue) []SharedPair {
	var out []SharedPair
	for team, slot := range cat.SlotOf {
		if slot.Sharing != "" && slot.Primary == team {
			out = append(out, SharedPair{Team1: team, Team2: slot.Sharing})
		}
	}
	return out
}

// Clash records one date on which both teams of a shared slot played at
// home.
type Clash struct {
	Team1, Team2 string
	Date         time.Time
}

// Run finds every residual shared-slot clash in matches. An empty result
// means the solve was correct; a non-empty one indicates a modeling
// regression (§7 SharedSlotResidualClash).
func Run(matches []model.ScheduledMatch, pairs []SharedPair) []Clash {
	homeDatesOf := make(map[string]map[time.Time]bool)
	for _, m := range matches {
		if homeDatesOf[m.Home] == nil {
			homeDatesOf[m.Home] = make(map[time.Time]bool)
		}
		homeDatesOf[m.Home][m.Date] = true
	}

	var clashes []Clash
	for _, pair := range pairs {
		var shared []time.Time
		for d := range homeDatesOf[pair.Team1] {
			if homeDatesOf[pair.Team2][d] {
				shared = append(shared, d)
			}
		}
		sort.Slice(shared, func(i, j int) bool { return shared[i].Before(shared[j]) })
		for _, d := range shared {
			clashes = append(clashes, Clash{Team1: pair.Team1, Team2: pair.Team2, Date: d})
		}
	}
	return clashes
}
