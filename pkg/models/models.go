// Package models defines data structures shared across the application.
package models

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"time"
)

// ISODate is the canonical layout for calendar date keys (e.g. "2025-12-15").
// All holiday sets, existing-entry sets and submission targets are keyed by
// dates rendered in this layout.
const ISODate = "2006-01-02"

// Account identifies the authenticated tracker user.
type Account struct {
	// AccountID is the tracker's unique identifier for the user
	AccountID string

	// DisplayName is the user's human-readable name
	DisplayName string
}

// Issue holds the metadata returned by the connectivity check.
type Issue struct {
	// Key is the issue identifier (e.g. "INC-123")
	Key string

	// Summary is the issue's title field
	Summary string

	// Assignee is the assignee's display name, empty when unassigned
	Assignee string
}

// Worklog is a single existing worklog row as reported by the tracker.
type Worklog struct {
	// Started is the tracker timestamp, "YYYY-MM-DDTHH:MM:SS.sss±ZZZZ"
	Started string

	// AuthorAccountID identifies who recorded the entry
	AuthorAccountID string
}

// Date returns the calendar date portion of Started in ISODate form.
func (w Worklog) Date() string {
	if len(w.Started) < len(ISODate) {
		return w.Started
	}
	return w.Started[:len(ISODate)]
}

// TimeEntry is a worklog to be submitted. It exists only in memory; its
// durable form is the remote record created by submission.
type TimeEntry struct {
	// Date is the target calendar date in ISODate form
	Date string

	// Minutes is the duration to record
	Minutes int

	// Comment is the free-text worklog comment
	Comment string
}

// TimeSpent renders the duration in the tracker's "<minutes>m" notation.
func (e TimeEntry) TimeSpent() string {
	return fmt.Sprintf("%dm", e.Minutes)
}

// DateSet is a set of calendar dates keyed by their ISODate form.
type DateSet map[string]struct{}

// NewDateSet returns a set containing the given dates.
func NewDateSet(dates ...string) DateSet {
	s := make(DateSet, len(dates))
	for _, d := range dates {
		s.Add(d)
	}
	return s
}

// Add inserts a date into the set.
func (s DateSet) Add(date string) {
	s[date] = struct{}{}
}

// Contains reports whether the set holds the given date.
func (s DateSet) Contains(date string) bool {
	_, ok := s[date]
	return ok
}

// Union adds every date of other into s.
func (s DateSet) Union(other DateSet) {
	for d := range other {
		s[d] = struct{}{}
	}
}

// periodKeyPattern matches the accepted period keys: "YYYY" or "YYYY-MM".
var periodKeyPattern = regexp.MustCompile(`^\d{4}(-(0[1-9]|1[0-2]))?$`)

// ItemMap routes calendar periods to issue keys. Keys are either "YYYY-MM"
// (month granularity) or "YYYY" (year granularity). The zero value is a valid
// empty map.
type ItemMap map[string]string

// ParseItemMap builds an ItemMap from a JSON object string, validating every
// period key and issue value. An empty input yields an empty map; malformed
// JSON or an invalid entry is an error, never partial data.
func ParseItemMap(raw string) (ItemMap, error) {
	if raw == "" {
		return ItemMap{}, nil
	}

	var entries map[string]string
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("invalid issue map JSON: %v", err)
	}

	m := make(ItemMap, len(entries))
	for period, issue := range entries {
		if !periodKeyPattern.MatchString(period) {
			return nil, fmt.Errorf("invalid period key %q: expected YYYY or YYYY-MM", period)
		}
		if issue == "" {
			return nil, fmt.Errorf("empty issue key for period %q", period)
		}
		m[period] = issue
	}

	return m, nil
}

// Resolve returns the issue key to log time against for the given date.
// Precedence: exact "YYYY-MM" entry, then "YYYY" entry, then fallback.
// An empty result means the date is unresolvable.
func (m ItemMap) Resolve(t time.Time, fallback string) string {
	monthKey := fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
	yearKey := fmt.Sprintf("%04d", t.Year())

	if issue, ok := m[monthKey]; ok {
		return issue
	}
	if issue, ok := m[yearKey]; ok {
		return issue
	}
	return fallback
}

// FirstIssue returns the issue mapped under the lowest period key, or "" for
// an empty map. Used to pick a representative issue for connectivity checks.
func (m ItemMap) FirstIssue() string {
	if len(m) == 0 {
		return ""
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return m[keys[0]]
}
