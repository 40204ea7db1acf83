// Package tabular is the §6 external-interface adapter: it reads the
// three named-column input record streams (xlsx or csv) and writes the
// populated output stream back in the same layout. Column layout and
// format selection are this package's own concern — §1 treats raw
// ingestion/emission as an external collaborator whose contract the
// core only needs satisfied, not how it's satisfied.
package tabular

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/racquetleague/leaguer/internal/apperr"
	"github.com/racquetleague/leaguer/internal/model"
)

var fixtureHeaders = []string{"Date", "Time", "League Type", "Event", "Draw", "Nr", "Team 1", "Team 2", "Court", "Location"}
var slotHeaders = []string{"Date", "Time", "Court", "Team 1", "Team 2"}

const fixturesSheet = "Fixtures"

// ReadFixtures loads fixture rows (or old-fixture rows, same layout)
// from path.
func ReadFixtures(path string) ([]model.FixtureRow, error) {
	records, err := readRows(path, fixtureHeaders)
	if err != nil {
		return nil, err
	}
	rows := make([]model.FixtureRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, model.FixtureRow{
			Date: r["Date"], Time: r["Time"], LeagueType: r["League Type"],
			Event: r["Event"], Draw: r["Draw"], Nr: r["Nr"],
			Team1: r["Team 1"], Team2: r["Team 2"],
			Court: r["Court"], Location: r["Location"],
		})
	}
	return rows, nil
}

// ReadOldFixtures loads the optional old-fixtures file. A missing file
// is not an error: old fixtures are optional input.
func ReadOldFixtures(path string) ([]model.OldFixture, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	rows, err := ReadFixtures(path)
	if err != nil {
		return nil, err
	}
	out := make([]model.OldFixture, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.OldFixture{Home: r.Team1, Away: r.Team2})
	}
	return out, nil
}

// ReadSlots loads slot rows from path.
func ReadSlots(path string) ([]model.SlotRow, error) {
	records, err := readRows(path, slotHeaders)
	if err != nil {
		return nil, err
	}
	rows := make([]model.SlotRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, model.SlotRow{
			Date: r["Date"], Time: r["Time"], Court: r["Court"],
			Team1: r["Team 1"], Team2: r["Team 2"],
		})
	}
	return rows, nil
}

func readRows(path string, headers []string) ([]map[string]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return readCSV(path)
	case ".xlsx":
		return readXLSX(path, headers)
	default:
		return nil, apperr.New(apperr.InputConsistency, "unsupported input file extension: %s", path)
	}
}

func readCSV(path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperr.Wrap(apperr.InputConsistency, err, "opening %s", path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, apperr.Wrap(apperr.InputConsistency, err, "reading %s", path)
	}
	if len(records) == 0 {
		return nil, nil
	}

	header := records[0]
	var out []map[string]string
	for _, row := range records[1:] {
		rec := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(row) {
				rec[col] = row[i]
			}
		}
		out = append(out, rec)
	}
	return out, nil
}

func readXLSX(path string, headers []string) ([]map[string]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperr.Wrap(apperr.InputConsistency, err, "opening %s", path)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, apperr.Wrap(apperr.InputConsistency, err, "reading sheet %q of %s", sheet, path)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := rows[0]
	var out []map[string]string
	for _, row := range rows[1:] {
		rec := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(row) {
				rec[col] = row[i]
			}
		}
		out = append(out, rec)
	}
	_ = headers // header is read off the file itself; the caller's layout is only asserted by field lookup
	return out, nil
}

// WriteFixtures writes the populated fixture rows, matched by (Team1,
// Team2) in either orientation against matches, plus per-division
// has_team_N boolean columns, to path.
func WriteFixtures(path string, rows []model.FixtureRow, matches []model.ScheduledMatch, divisionTeams map[string][]string) error {
	populated, extraHeaders, err := populate(rows, matches, divisionTeams)
	if err != nil {
		return err
	}

	headers := append(append([]string{}, fixtureHeaders...), extraHeaders...)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return writeCSV(path, headers, populated)
	case ".xlsx":
		return writeXLSX(path, headers, populated)
	default:
		return apperr.New(apperr.InputConsistency, "unsupported output file extension: %s", path)
	}
}

func populate(rows []model.FixtureRow, matches []model.ScheduledMatch, divisionTeams map[string][]string) ([]map[string]string, []string, error) {
	byPair := make(map[[2]string]model.ScheduledMatch, len(matches))
	for _, m := range matches {
		byPair[[2]string{m.Home, m.Away}] = m
		byPair[[2]string{m.Away, m.Home}] = m
	}

	extraSet := make(map[string]bool)
	out := make([]map[string]string, 0, len(rows))

	for _, row := range rows {
		if row.Team1 == "Bye" || row.Team2 == "Bye" {
			continue
		}

		m, ok := byPair[[2]string{row.Team1, row.Team2}]
		if !ok {
			return nil, nil, apperr.New(apperr.ExtractionInvariant, "no scheduled match found for %s vs %s", row.Team1, row.Team2)
		}

		rec := map[string]string{
			"Date": m.Date.Format("02/01/2006"), "Time": m.Time,
			"League Type": row.LeagueType, "Event": row.Event, "Draw": row.Draw, "Nr": row.Nr,
			"Team 1": m.Home, "Team 2": m.Away,
			"Court": m.Court, "Location": m.Location,
		}

		teams := divisionTeams[row.Draw]
		for idx, team := range teams {
			col := fmt.Sprintf("has_team_%d", idx+1)
			extraSet[col] = true
			if team == m.Home || team == m.Away {
				rec[col] = "1"
			} else {
				rec[col] = "0"
			}
		}
		out = append(out, rec)
	}

	extraHeaders := make([]string, 0, len(extraSet))
	for col := range extraSet {
		extraHeaders = append(extraHeaders, col)
	}
	sort.Slice(extraHeaders, func(i, j int) bool {
		ni, _ := strconv.Atoi(strings.TrimPrefix(extraHeaders[i], "has_team_"))
		nj, _ := strconv.Atoi(strings.TrimPrefix(extraHeaders[j], "has_team_"))
		return ni < nj
	})

	return out, extraHeaders, nil
}

func writeCSV(path string, headers []string, rows []map[string]string) error {
	f, err := os.Create(path)
	if err != nil {
		return apperr.Wrap(apperr.InputConsistency, err, "creating %s", path)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(headers); err != nil {
		return apperr.Wrap(apperr.InputConsistency, err, "writing header to %s", path)
	}
	for _, rec := range rows {
		row := make([]string, len(headers))
		for i, h := range headers {
			row[i] = rec[h]
		}
		if err := w.Write(row); err != nil {
			return apperr.Wrap(apperr.InputConsistency, err, "writing row to %s", path)
		}
	}
	w.Flush()
	return w.Error()
}

func writeXLSX(path string, headers []string, rows []map[string]string) error {
	f := excelize.NewFile()
	defer f.Close()

	f.NewSheet(fixturesSheet)
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(fixturesSheet, cell, h)
	}
	for r, rec := range rows {
		for c, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			f.SetCellValue(fixturesSheet, cell, rec[h])
		}
	}
	f.DeleteSheet("Sheet1")

	if err := f.SaveAs(path); err != nil {
		return apperr.Wrap(apperr.InputConsistency, err, "saving %s", path)
	}
	return nil
}
