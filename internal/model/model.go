// Package model defines the domain entities shared by every stage of the
// scheduling pipeline (§3 of the specification).
package model

import "time"

// Team is identified by a name whose final two characters are a
// club-scoped team number (e.g. "Royston 2").
type Team struct {
	Name     string
	Division string
}

// ClubKey is the team's name with its trailing team number removed. Two
// teams are "same-club" iff their club keys are equal.
func ClubKey(teamName string) string {
	if len(teamName) < 2 {
		return teamName
	}
	return teamName[:len(teamName)-2]
}

// SameClub reports whether two team names belong to the same club.
func SameClub(a, b string) bool {
	return ClubKey(a) == ClubKey(b)
}

// Slot is a weekly home venue for exactly one primary team and optionally
// one sharing team.
type Slot struct {
	FirstWeekDate time.Time
	Time          string
	Court         string
	Primary       string
	Sharing       string // "" if unshared
}

// HasTeam reports whether the slot is owned (primary or shared) by team.
func (s Slot) HasTeam(team string) bool {
	return s.Primary == team || (s.Sharing != "" && s.Sharing == team)
}

// HomeDate returns a team's Nth home date, accounting for the week spread.
func (s Slot) HomeDate(week, spread int) time.Time {
	return s.FirstWeekDate.AddDate(0, 0, 7*week*spread)
}

// Division is an ordered list of teams playing a single round-robin
// amongst themselves.
type Division struct {
	Name  string
	Teams []string
}

// OldFixture is an ordered pair from a previous season, used only to
// compute the "repeat of old fixture" KPI.
type OldFixture struct {
	Home string
	Away string
}

// ScheduledMatch is the output entity: a division fixture assigned to a
// concrete date/time/court.
type ScheduledMatch struct {
	Division string
	Home     string
	Away     string
	Date     time.Time
	Time     string
	Court    string
	Location string
}

// FixtureRow is a single row of the external fixtures record stream,
// before (or after) scheduling. Team1 == "Bye" rows are filtered by the
// normalizer and never reach the scheduling core.
type FixtureRow struct {
	Date       string
	Time       string
	LeagueType string
	Event      string
	Draw       string
	Nr         string
	Team1      string
	Team2      string
	Court      string
	Location   string
}

// SlotRow is a single row of the external slots record stream.
type SlotRow struct {
	Date  string // DD/MM/YYYY
	Time  string // HH:MM[:SS]
	Court string
	Team1 string
	Team2 string // optional sharing team
}

// Catalogue is the normalized input produced by §4.1: everything the
// lattice/constraint/KPI builders need, keyed for O(1) lookup.
type Catalogue struct {
	Divisions      []Division
	DivisionOf     map[string]string // team -> division name
	SlotOf         map[string]Slot   // team -> its home slot
	OldFixtures    []OldFixture
}
