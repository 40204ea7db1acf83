package audit

import (
	"testing"
	"time"

	"github.com/racquetleague/leaguer/internal/model"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestSharedPairsFromCatalogueOnlyEmitsFromPrimarySide(t *testing.T) {
	cat := &model.Catalogue{
		SlotOf: map[string]model.Slot{
			"Royston 1": {Primary: "Royston 1", Sharing: "Royston 2"},
			"Royston 2": {Primary: "Royston 1", Sharing: "Royston 2"},
			"Baldock 1": {Primary: "Baldock 1"},
		},
	}
	pairs := SharedPairsFromCatalogue(cat)
	if len(pairs) != 1 {
		t.Fatalf("expected exactly 1 shared pair, got %d: %+v", len(pairs), pairs)
	}
	if pairs[0].Team1 != "Royston 1" || pairs[0].Team2 != "Royston 2" {
		t.Errorf("unexpected pair: %+v", pairs[0])
	}
}

func TestRunFindsNoClashWhenTeamsNeverCollide(t *testing.T) {
	matches := []model.ScheduledMatch{
		{Home: "Royston 1", Away: "Baldock 1", Date: date(2026, 4, 25)},
		{Home: "Royston 2", Away: "Letchworth 1", Date: date(2026, 4, 26)},
	}
	pairs := []SharedPair{{Team1: "Royston 1", Team2: "Royston 2"}}

	if clashes := Run(matches, pairs); len(clashes) != 0 {
		t.Errorf("expected no clashes, got %+v", clashes)
	}
}

func TestRunFindsClashWhenBothHomeOnSameDate(t *testing.T) {
	shared := date(2026, 4, 25)
	matches := []model.ScheduledMatch{
		{Home: "Royston 1", Away: "Baldock 1", Date: shared},
		{Home: "Royston 2", Away: "Letchworth 1", Date: shared},
	}
	pairs := []SharedPair{{Team1: "Royston 1", Team2: "Royston 2"}}

	clashes := Run(matches, pairs)
	if len(clashes) != 1 {
		t.Fatalf("expected exactly 1 clash, got %d: %+v", len(clashes), clashes)
	}
	if !clashes[0].Date.Equal(shared) {
		t.Errorf("clash date = %v, want %v", clashes[0].Date, shared)
	}
}

func TestRunSortsClashesByDate(t *testing.T) {
	later := date(2026, 5, 2)
	earlier := date(2026, 4, 25)
	matches := []model.ScheduledMatch{
		{Home: "Royston 1", Away: "Baldock 1", Date: later},
		{Home: "Royston 2", Away: "Baldock 2", Date: later},
		{Home: "Royston 1", Away: "Letchworth 1", Date: earlier},
		{Home: "Royston 2", Away: "Letchworth 2", Date: earlier},
	}
	pairs := []SharedPair{{Team1: "Royston 1", Team2: "Royston 2"}}

	clashes := Run(matches, pairs)
	if len(clashes) != 2 {
		t.Fatalf("expected 2 clashes, got %d", len(clashes))
	}
	if !clashes[0].Date.Equal(earlier) || !clashes[1].Date.Equal(later) {
		t.Errorf("expected clashes sorted earliest first, got %v then %v", clashes[0].Date, clashes[1].Date)
	}
}
