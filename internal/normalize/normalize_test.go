package normalize

import (
	"testing"

	"github.com/racquetleague/leaguer/internal/model"
)

func baseFixtures() []model.FixtureRow {
	return []model.FixtureRow{
		{Draw: "Premier", Team1: "Alpha 1", Team2: "Beta 1"},
		{Draw: "Premier", Team1: "Gamma 1", Team2: "Delta 1"},
	}
}

func baseSlots() []model.SlotRow {
	return []model.SlotRow{
		{Date: "25/04/2026", Time: "19:00", Court: "1", Team1: "Alpha 1"},
		{Date: "26/04/2026", Time: "19:00", Court: "2", Team1: "Beta 1"},
		{Date: "27/04/2026", Time: "19:00", Court: "1", Team1: "Gamma 1"},
		{Date: "25/04/2026", Time: "20:00", Court: "3", Team1: "Delta 1"},
	}
}

func TestBuildFiltersByeRows(t *testing.T) {
	fixtures := append(baseFixtures(), model.FixtureRow{Draw: "Premier", Team1: "Bye", Team2: "Alpha 1"})
	cat, err := Build(fixtures, baseSlots(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := cat.DivisionOf["Bye"]; ok {
		t.Error("Bye should never appear as a team")
	}
}

func TestBuildAssemblesDivisions(t *testing.T) {
	cat, err := Build(baseFixtures(), baseSlots(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cat.Divisions) != 1 || cat.Divisions[0].Name != "Premier" {
		t.Fatalf("expected one Premier division, got %+v", cat.Divisions)
	}
	if len(cat.Divisions[0].Teams) != 4 {
		t.Errorf("expected 4 teams, got %d: %v", len(cat.Divisions[0].Teams), cat.Divisions[0].Teams)
	}
}

func TestBuildRejectsDuplicateSlot(t *testing.T) {
	slots := append(baseSlots(), model.SlotRow{Date: "28/04/2026", Time: "18:00", Court: "4", Team1: "Alpha 1"})
	if _, err := Build(baseFixtures(), slots, nil); err == nil {
		t.Error("expected an error when a team appears in two slots")
	}
}

func TestBuildRejectsMissingSlot(t *testing.T) {
	slots := baseSlots()[1:] // drop Alpha 1's slot
	if _, err := Build(baseFixtures(), slots, nil); err == nil {
		t.Error("expected an error when a team has no slot")
	}
}

func TestBuildRejectsMissingFixture(t *testing.T) {
	slots := append(baseSlots(), model.SlotRow{Date: "25/04/2026", Time: "19:00", Court: "5", Team1: "Nowhere 1"})
	if _, err := Build(baseFixtures(), slots, nil); err == nil {
		t.Error("expected an error when a slot's team has no fixture")
	}
}

func TestBuildRejectsMalformedDate(t *testing.T) {
	slots := baseSlots()
	slots[0].Date = "2026-04-25"
	if _, err := Build(baseFixtures(), slots, nil); err == nil {
		t.Error("expected an error for a non DD/MM/YYYY date")
	}
}

func TestBuildRejectsExcessiveDateSpread(t *testing.T) {
	slots := baseSlots()
	slots[2].Date = "10/05/2026" // more than 7 days after 25/04/2026
	if _, err := Build(baseFixtures(), slots, nil); err == nil {
		t.Error("expected an error when first-week dates span more than 7 days")
	}
}

func TestBuildClonesOldFixturesDefensively(t *testing.T) {
	old := []model.OldFixture{{Home: "Alpha 1", Away: "Beta 1"}}
	cat, err := Build(baseFixtures(), baseSlots(), old)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	old[0].Home = "Mutated"
	if cat.OldFixtures[0].Home != "Alpha 1" {
		t.Error("mutating the caller's slice should not affect the catalogue's clone")
	}
}

func TestBuildSharedSlotKeepsBothTeams(t *testing.T) {
	slots := []model.SlotRow{
		{Date: "25/04/2026", Time: "19:00", Court: "1", Team1: "Alpha 1", Team2: "Beta 1"},
		{Date: "26/04/2026", Time: "19:00", Court: "2", Team1: "Gamma 1"},
		{Date: "25/04/2026", Time: "20:00", Court: "3", Team1: "Delta 1"},
	}
	cat, err := Build(baseFixtures(), slots, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cat.SlotOf["Alpha 1"].Sharing != "Beta 1" {
		t.Errorf("Alpha 1's slot should record Beta 1 as sharing, got %q", cat.SlotOf["Alpha 1"].Sharing)
	}
}
