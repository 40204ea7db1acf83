// Package normalize implements §4.1: it turns raw fixture/slot/old-
// fixture rows into the typed Catalogue the rest of the pipeline
// consumes, rejecting any input inconsistency before any solving starts.
package normalize

import (
	"sort"
	"time"

	"github.com/tiendc/go-deepcopy"

	"github.com/racquetleague/leaguer/internal/apperr"
	"github.com/racquetleague/leaguer/internal/model"
)

const byeTeam = "Bye"

const slotDateLayout = "02/01/2006"

// Build validates and assembles the catalogue from the three external
// record streams.
func Build(fixtures []model.FixtureRow, slots []model.SlotRow, oldFixtures []model.OldFixture) (*model.Catalogue, error) {
	divisionOf, divisionOrder, divisionTeams, err := scanFixtures(fixtures)
	if err != nil {
		return nil, err
	}

	slotOf, slotDates, err := scanSlots(slots)
	if err != nil {
		return nil, err
	}

	if err := crossCheckTeams(divisionOf, slotOf); err != nil {
		return nil, err
	}
	if err := checkDateSpread(slotDates); err != nil {
		return nil, err
	}

	divisions := make([]model.Division, 0, len(divisionOrder))
	for _, name := range divisionOrder {
		divisions = append(divisions, model.Division{Name: name, Teams: divisionTeams[name]})
	}

	var clonedOldFixtures []model.OldFixture
	if err := deepcopy.Copy(&clonedOldFixtures, oldFixtures); err != nil {
		return nil, apperr.Wrap(apperr.InputConsistency, err, "failed to clone old fixtures")
	}

	return &model.Catalogue{
		Divisions:   divisions,
		DivisionOf:  divisionOf,
		SlotOf:      slotOf,
		OldFixtures: clonedOldFixtures,
	}, nil
}

func scanFixtures(fixtures []model.FixtureRow) (map[string]string, []string, map[string][]string, error) {
	divisionOf := make(map[string]string)
	var divisionOrder []string
	divisionTeams := make(map[string][]string)

	for _, row := range fixtures {
		if row.Team1 == byeTeam {
			continue
		}
		if _, ok := divisionTeams[row.Draw]; !ok {
			divisionOrder = append(divisionOrder, row.Draw)
		}
		for _, team := range []string{row.Team1, row.Team2} {
			if team == "" || team == byeTeam {
				continue
			}
			if _, seen := divisionOf[team]; seen {
				continue
			}
			divisionOf[team] = row.Draw
			divisionTeams[row.Draw] = append(divisionTeams[row.Draw], team)
		}
	}

	return divisionOf, divisionOrder, divisionTeams, nil
}

func scanSlots(slots []model.SlotRow) (map[string]model.Slot, []time.Time, error) {
	slotOf := make(map[string]model.Slot)
	var dates []time.Time

	for _, row := range slots {
		firstWeekDate, err := time.Parse(slotDateLayout, row.Date)
		if err != nil {
			return nil, nil, apperr.Wrap(apperr.InputConsistency, err, "slot date %q for team %q is not DD/MM/YYYY", row.Date, row.Team1)
		}
		dates = append(dates, firstWeekDate)

		slot := model.Slot{
			FirstWeekDate: firstWeekDate,
			Time:          row.Time,
			Court:         row.Court,
			Primary:       row.Team1,
			Sharing:       row.Team2,
		}

		for _, team := range []string{row.Team1, row.Team2} {
			if team == "" {
				continue
			}
			if _, seen := slotOf[team]; seen {
				return nil, nil, apperr.New(apperr.InputConsistency, "team %q appears in more than one slot", team)
			}
			slotOf[team] = slot
		}
	}

	return slotOf, dates, nil
}

func crossCheckTeams(divisionOf map[string]string, slotOf map[string]model.Slot) error {
	var missingSlot, missingFixture []string

	for team := range divisionOf {
		if _, ok := slotOf[team]; !ok {
			missingSlot = append(missingSlot, team)
		}
	}
	for team := range slotOf {
		if _, ok := divisionOf[team]; !ok {
			missingFixture = append(missingFixture, team)
		}
	}

	if len(missingSlot) > 0 {
		sort.Strings(missingSlot)
		return apperr.New(apperr.InputConsistency, "teams with no slot: %v", missingSlot)
	}
	if len(missingFixture) > 0 {
		sort.Strings(missingFixture)
		return apperr.New(apperr.InputConsistency, "teams with a slot but no fixture: %v", missingFixture)
	}
	return nil
}

func checkDateSpread(dates []time.Time) error {
	if len(dates) == 0 {
		return nil
	}
	min, max := dates[0], dates[0]
	for _, d := range dates[1:] {
		if d.Before(min) {
			min = d
		}
		if d.After(max) {
			max = d
		}
	}
	if max.Sub(min) > 7*24*time.Hour {
		return apperr.New(apperr.InputConsistency, "first-week slot dates span %s, more than 7 days (%s to %s)",
			max.Sub(min), min.Format(slotDateLayout), max.Format(slotDateLayout))
	}
	return nil
}
