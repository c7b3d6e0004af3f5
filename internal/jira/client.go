// Package jira wraps the tracker's REST API v3 for the operations this tool
// needs: identity lookup, issue metadata, and worklog listing/creation.
package jira

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	jira "github.com/andygrunwald/go-jira"

	"github.com/rcastillo/autolog/internal/config"
	"github.com/rcastillo/autolog/pkg/models"
)

// Sentinel errors for responses whose remedy differs from a generic failure.
var (
	// ErrUnauthorized signals an expired or invalid session cookie.
	ErrUnauthorized = errors.New("session expired or invalid")
	// ErrNotFound signals a missing issue or insufficient permissions.
	ErrNotFound = errors.New("issue not found or not visible")
)

// startedSuffix fixes the local start time-of-day and timezone appended to
// each submitted entry's date, matching what the tracker UI records.
const startedSuffix = "T09:00:00.000-0300"

// Client handles interactions with the JIRA API.
type Client struct {
	client *jira.Client
}

// cookieTransport injects the raw SSO session cookie into every request.
// Corporate SSO setups hand out cookies rather than API tokens, so basic
// auth transports do not apply here.
type cookieTransport struct {
	cookie string
	base   http.RoundTripper
}

func (t *cookieTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.Header.Set("Cookie", t.cookie)
	r.Header.Set("Accept", "application/json")
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(r)
}

// NewClient creates a tracker client from the loaded configuration.
func NewClient(cfg *config.Config) (*Client, error) {
	if cfg.Jira.BaseURL == "" || cfg.Jira.Cookie == "" {
		return nil, fmt.Errorf("jira base URL and session cookie are required")
	}

	httpClient := &http.Client{
		Transport: &cookieTransport{cookie: cfg.Jira.Cookie},
	}

	client, err := jira.NewClient(httpClient, cfg.Jira.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create jira client: %v", err)
	}

	return &Client{client: client}, nil
}

// get performs a GET against a v3 path and decodes the response into out.
func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := c.client.NewRequestWithContext(ctx, http.MethodGet, path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %v", err)
	}
	resp, err := c.client.Do(req, out)
	if err != nil {
		return statusError(resp, err)
	}
	return nil
}

// statusError maps a failed response onto the package's sentinel errors,
// preserving the underlying message (which includes the response body).
func statusError(resp *jira.Response, err error) error {
	if resp != nil {
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return fmt.Errorf("%w: %v", ErrUnauthorized, err)
		case http.StatusNotFound:
			return fmt.Errorf("%w: %v", ErrNotFound, err)
		}
	}
	return err
}

// myselfResponse is the subset of GET /rest/api/3/myself we consume.
type myselfResponse struct {
	AccountID   string `json:"accountId"`
	DisplayName string `json:"displayName"`
}

// Myself returns the authenticated user's account identity. Any failure here
// gates the whole run: without an account ID the existing-entry filter cannot
// be scoped to the right author.
func (c *Client) Myself(ctx context.Context) (models.Account, error) {
	var me myselfResponse
	if err := c.get(ctx, "rest/api/3/myself", &me); err != nil {
		return models.Account{}, fmt.Errorf("failed to resolve current user: %w", err)
	}
	if me.AccountID == "" {
		return models.Account{}, fmt.Errorf("current user response carried no account id")
	}
	return models.Account{AccountID: me.AccountID, DisplayName: me.DisplayName}, nil
}

// issueResponse is the subset of GET /rest/api/3/issue/{key} we consume.
type issueResponse struct {
	Key    string `json:"key"`
	Fields struct {
		Summary  string `json:"summary"`
		Assignee *struct {
			DisplayName string `json:"displayName"`
		} `json:"assignee"`
	} `json:"fields"`
}

// GetIssue fetches an issue's metadata. Used by the connectivity check to
// validate the session cookie before any submission work.
func (c *Client) GetIssue(ctx context.Context, key string) (models.Issue, error) {
	var issue issueResponse
	if err := c.get(ctx, fmt.Sprintf("rest/api/3/issue/%s", key), &issue); err != nil {
		return models.Issue{}, err
	}

	result := models.Issue{Key: issue.Key, Summary: issue.Fields.Summary}
	if issue.Fields.Assignee != nil {
		result.Assignee = issue.Fields.Assignee.DisplayName
	}
	return result, nil
}

// worklogListResponse is the subset of GET .../worklog we consume.
type worklogListResponse struct {
	Worklogs []struct {
		Started string `json:"started"`
		Author  struct {
			AccountID string `json:"accountId"`
		} `json:"author"`
	} `json:"worklogs"`
}

// WorklogDates returns the calendar dates for which the given account already
// has a worklog on the given issue. The endpoint reports entries from all
// authors; rows from other accounts are discarded.
func (c *Client) WorklogDates(ctx context.Context, accountID, issueKey string) (models.DateSet, error) {
	var list worklogListResponse
	if err := c.get(ctx, fmt.Sprintf("rest/api/3/issue/%s/worklog", issueKey), &list); err != nil {
		return nil, fmt.Errorf("failed to list worklogs for %s: %w", issueKey, err)
	}

	dates := make(models.DateSet)
	for _, row := range list.Worklogs {
		if row.Author.AccountID != accountID {
			continue
		}
		wl := models.Worklog{Started: row.Started, AuthorAccountID: row.Author.AccountID}
		dates.Add(wl.Date())
	}
	return dates, nil
}

// adfNode is a node of the tracker's rich-text document format.
type adfNode struct {
	Type    string    `json:"type"`
	Text    string    `json:"text,omitempty"`
	Content []adfNode `json:"content,omitempty"`
}

// adfDocument is the comment envelope expected by API v3.
type adfDocument struct {
	Version int       `json:"version"`
	Type    string    `json:"type"`
	Content []adfNode `json:"content"`
}

// worklogCreateRequest is the POST .../worklog body.
type worklogCreateRequest struct {
	TimeSpent string      `json:"timeSpent"`
	Started   string      `json:"started"`
	Comment   adfDocument `json:"comment"`
}

// plainParagraph wraps text in a single-paragraph rich-text document.
func plainParagraph(text string) adfDocument {
	return adfDocument{
		Version: 1,
		Type:    "doc",
		Content: []adfNode{
			{
				Type: "paragraph",
				Content: []adfNode{
					{Type: "text", Text: text},
				},
			},
		},
	}
}

// AddWorklog submits a new time entry on the given issue. The tracker
// answers 201 on creation; any other status is an error.
func (c *Client) AddWorklog(ctx context.Context, issueKey string, entry models.TimeEntry) error {
	body := worklogCreateRequest{
		TimeSpent: entry.TimeSpent(),
		Started:   entry.Date + startedSuffix,
		Comment:   plainParagraph(entry.Comment),
	}

	req, err := c.client.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("rest/api/3/issue/%s/worklog", issueKey), body)
	if err != nil {
		return fmt.Errorf("creating request: %v", err)
	}

	resp, err := c.client.Do(req, nil)
	if err != nil {
		return fmt.Errorf("failed to create worklog on %s for %s: %w",
			issueKey, entry.Date, statusError(resp, err))
	}
	return nil
}
