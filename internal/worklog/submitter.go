// Package worklog drives the weekly submission workflow: compute the work
// week, route dates to issues, and create the entries the tracker is missing.
package worklog

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rcastillo/autolog/internal/config"
	"github.com/rcastillo/autolog/internal/jira"
	"github.com/rcastillo/autolog/internal/logging"
	"github.com/rcastillo/autolog/internal/schedule"
	"github.com/rcastillo/autolog/pkg/models"
)

// Tracker is the tracker surface the submitter depends on.
type Tracker interface {
	Myself(ctx context.Context) (models.Account, error)
	WorklogDates(ctx context.Context, accountID, issueKey string) (models.DateSet, error)
	AddWorklog(ctx context.Context, issueKey string, entry models.TimeEntry) error
}

// HolidaySource resolves public holidays for a single year.
type HolidaySource interface {
	Holidays(ctx context.Context, year int) (models.DateSet, error)
}

// Summary reports the outcome of a run.
type Summary struct {
	// Created is the number of newly submitted entries
	Created int

	// From and To bound the processed date range (Monday and Friday)
	From string
	To   string
}

// Submitter orchestrates one weekly submission run.
type Submitter struct {
	cfg      *config.Config
	tracker  Tracker
	holidays HolidaySource

	// Now is the clock used to derive the target week. Overridable in tests.
	Now func() time.Time

	// DryRun resolves and reports without submitting anything.
	DryRun bool
}

// NewSubmitter creates a submitter over the given collaborators.
func NewSubmitter(cfg *config.Config, tracker Tracker, holidays HolidaySource) *Submitter {
	return &Submitter{
		cfg:      cfg,
		tracker:  tracker,
		holidays: holidays,
		Now:      time.Now,
	}
}

// group is one issue's share of the work week, in ascending date order.
type group struct {
	issueKey string
	dates    []time.Time
}

// Run executes the workflow. Identity resolution failure aborts before any
// holiday or worklog traffic; every other failure is contained to the year,
// issue, or date it occurred on.
func (s *Submitter) Run(ctx context.Context) (Summary, error) {
	account, err := s.tracker.Myself(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("cannot resolve account identity: %w", err)
	}

	week := schedule.WorkWeek(s.Now())
	if len(week) == 0 {
		return Summary{}, fmt.Errorf("computed an empty work week")
	}

	summary := Summary{
		From: week[0].Format(models.ISODate),
		To:   week[len(week)-1].Format(models.ISODate),
	}

	logging.Info("starting weekly submission",
		"user", account.DisplayName,
		"from", summary.From,
		"to", summary.To,
		"dry_run", s.DryRun)

	holidaySet := s.fetchHolidays(ctx, schedule.Years(week))
	groups := s.groupByIssue(week)

	for _, g := range groups {
		existing := s.existingDates(ctx, account.AccountID, g.issueKey)
		logging.Info("processing issue",
			"issue", g.issueKey,
			"candidate_days", len(g.dates))

		for _, date := range g.dates {
			if s.submitDate(ctx, g.issueKey, date, holidaySet, existing) {
				summary.Created++
			}
		}
	}

	logging.Info("weekly submission finished",
		"created", summary.Created,
		"from", summary.From,
		"to", summary.To)
	return summary, nil
}

// fetchHolidays unions holiday sets across the given years. Each year fails
// independently: a lookup error degrades that year to "no holidays known".
func (s *Submitter) fetchHolidays(ctx context.Context, years []int) models.DateSet {
	all := make(models.DateSet)
	for _, year := range years {
		dates, err := s.holidays.Holidays(ctx, year)
		if err != nil {
			logging.Warn("holiday lookup failed, assuming no holidays",
				"year", year,
				"error", err)
			continue
		}
		logging.Info("holidays loaded", "year", year, "count", len(dates))
		all.Union(dates)
	}
	return all
}

// groupByIssue partitions the week's dates by their resolved issue key,
// preserving first-seen order so runs are deterministic. Unresolved dates are
// reported and excluded.
func (s *Submitter) groupByIssue(week []time.Time) []group {
	var groups []group
	index := make(map[string]int)

	for _, date := range week {
		issueKey := s.cfg.Jira.IssueMap.Resolve(date, s.cfg.Jira.DefaultIssue)
		if issueKey == "" {
			logging.Warn("no issue configured for date, skipping",
				"date", date.Format(models.ISODate))
			continue
		}

		i, ok := index[issueKey]
		if !ok {
			i = len(groups)
			index[issueKey] = i
			groups = append(groups, group{issueKey: issueKey})
		}
		groups[i].dates = append(groups[i].dates, date)
	}
	return groups
}

// existingDates fetches the issue's already-recorded dates for this account,
// degrading to an empty set on failure. A 401 gets its own message since the
// remedy (refreshing the session cookie) differs from other failures.
func (s *Submitter) existingDates(ctx context.Context, accountID, issueKey string) models.DateSet {
	existing, err := s.tracker.WorklogDates(ctx, accountID, issueKey)
	if err != nil {
		if errors.Is(err, jira.ErrUnauthorized) {
			logging.Warn("session expired while listing worklogs, re-copy the cookie and re-run",
				"issue", issueKey,
				"error", err)
		} else {
			logging.Warn("could not list existing worklogs",
				"issue", issueKey,
				"error", err)
		}
		return make(models.DateSet)
	}
	return existing
}

// submitDate submits one date's entry unless it is a holiday or already
// recorded. Reports whether a new entry was created. On success the date is
// added to the group's existing set so the same (issue, date) pair cannot be
// submitted twice within this run.
func (s *Submitter) submitDate(ctx context.Context, issueKey string, date time.Time, holidays, existing models.DateSet) bool {
	dateStr := date.Format(models.ISODate)

	if holidays.Contains(dateStr) {
		logging.Info("public holiday, nothing to log", "date", dateStr)
		return false
	}
	if existing.Contains(dateStr) {
		logging.Info("already recorded, skipping", "date", dateStr, "issue", issueKey)
		return false
	}

	hours := s.cfg.Worklog.NormalHours
	if date.Weekday() == time.Friday {
		hours = s.cfg.Worklog.ReducedHours
	}

	entry := models.TimeEntry{
		Date:    dateStr,
		Minutes: int(math.Round(hours * 60)),
		Comment: s.cfg.Worklog.Comment,
	}

	if s.DryRun {
		logging.Info("dry run, would submit",
			"date", dateStr,
			"issue", issueKey,
			"time_spent", entry.TimeSpent())
		return false
	}

	if err := s.tracker.AddWorklog(ctx, issueKey, entry); err != nil {
		logging.Error("worklog submission failed",
			"date", dateStr,
			"issue", issueKey,
			"error", err)
		return false
	}

	existing.Add(dateStr)
	logging.Info("worklog created",
		"date", dateStr,
		"issue", issueKey,
		"hours", hours)
	return true
}
