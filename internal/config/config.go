// Package config provides centralized configuration management for the application.
package config

import (
	"fmt"
	"strings"

	"github.com/rcastillo/autolog/pkg/models"
	"github.com/spf13/viper"
)

// Default values applied when the corresponding environment variable is unset.
const (
	// DefaultNormalHours is the duration logged Monday through Thursday.
	DefaultNormalHours = 8.5
	// DefaultReducedHours is the duration logged on Friday.
	DefaultReducedHours = 6
	// DefaultComment is the worklog comment text.
	DefaultComment = "Regular activity"
	// DefaultHolidayCountry is the ISO country code for holiday lookups.
	DefaultHolidayCountry = "CL"
)

// Config holds all configuration parameters for the application. It is built
// once at process start and passed explicitly to every component.
type Config struct {
	Jira    JiraConfig
	Worklog WorklogConfig
	Holiday HolidayConfig
}

// JiraConfig holds tracker connection and routing settings.
type JiraConfig struct {
	// BaseURL is the tracker root, e.g. "https://company.atlassian.net"
	BaseURL string

	// Cookie is the raw SSO session cookie granting API access
	Cookie string

	// DefaultIssue is the fallback issue key when no map entry matches
	DefaultIssue string

	// IssueMap routes calendar periods to issue keys
	IssueMap models.ItemMap
}

// WorklogConfig holds the shape of the entries to submit.
type WorklogConfig struct {
	// NormalHours is the daily duration Monday through Thursday
	NormalHours float64

	// ReducedHours is the daily duration on Friday
	ReducedHours float64

	// Comment is the free-text comment attached to every entry
	Comment string
}

// HolidayConfig holds public holiday lookup settings.
type HolidayConfig struct {
	// Country is the ISO 3166-1 alpha-2 code passed to the holiday API
	Country string
}

// LoadConfig initializes and loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Map specific environment variables
	v.BindEnv("jira.url", "JIRA_URL")
	v.BindEnv("jira.cookie", "JIRA_COOKIE")
	v.BindEnv("jira.issue", "JIRA_ISSUE")
	v.BindEnv("jira.issue_map_json", "JIRA_ISSUE_MAP_JSON")
	v.BindEnv("hours.normal", "HOURS_NORMAL")
	v.BindEnv("hours.reduced", "HOURS_REDUCED")
	v.BindEnv("worklog.comment", "WORKLOG_COMMENT")
	v.BindEnv("holiday.country", "HOLIDAY_COUNTRY")

	v.SetDefault("hours.normal", DefaultNormalHours)
	v.SetDefault("hours.reduced", DefaultReducedHours)
	v.SetDefault("worklog.comment", DefaultComment)
	v.SetDefault("holiday.country", DefaultHolidayCountry)

	issueMap, err := models.ParseItemMap(v.GetString("jira.issue_map_json"))
	if err != nil {
		return nil, fmt.Errorf("JIRA_ISSUE_MAP_JSON: %v", err)
	}

	config := &Config{
		Jira: JiraConfig{
			BaseURL:      strings.TrimRight(v.GetString("jira.url"), "/"),
			Cookie:       v.GetString("jira.cookie"),
			DefaultIssue: v.GetString("jira.issue"),
			IssueMap:     issueMap,
		},
		Worklog: WorklogConfig{
			NormalHours:  v.GetFloat64("hours.normal"),
			ReducedHours: v.GetFloat64("hours.reduced"),
			Comment:      v.GetString("worklog.comment"),
		},
		Holiday: HolidayConfig{
			Country: v.GetString("holiday.country"),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// validateConfig ensures that all required configuration values are provided.
func validateConfig(config *Config) error {
	var missingVars []string

	if config.Jira.BaseURL == "" {
		missingVars = append(missingVars, "JIRA_URL")
	}
	if config.Jira.Cookie == "" {
		missingVars = append(missingVars, "JIRA_COOKIE")
	}

	if len(missingVars) > 0 {
		return fmt.Errorf("missing required environment variables: %v", missingVars)
	}

	if config.Worklog.NormalHours <= 0 || config.Worklog.ReducedHours <= 0 {
		return fmt.Errorf("daily hours must be positive (normal=%v, reduced=%v)",
			config.Worklog.NormalHours, config.Worklog.ReducedHours)
	}

	return nil
}

// ProbeIssue returns the issue key to use for connectivity checks: the
// configured default, or any mapped issue when no default is set. Empty when
// neither exists.
func (c *Config) ProbeIssue() string {
	if c.Jira.DefaultIssue != "" {
		return c.Jira.DefaultIssue
	}
	return c.Jira.IssueMap.FirstIssue()
}
