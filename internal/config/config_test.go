package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setEnv registers env vars for one test, restoring the previous values on
// cleanup. t.Setenv handles both directions.
func setEnv(t *testing.T, vars map[string]string) {
	t.Helper()
	for _, key := range []string{
		"JIRA_URL", "JIRA_COOKIE", "JIRA_ISSUE", "JIRA_ISSUE_MAP_JSON",
		"HOURS_NORMAL", "HOURS_REDUCED", "WORKLOG_COMMENT", "HOLIDAY_COUNTRY",
	} {
		t.Setenv(key, vars[key])
	}
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		vars    map[string]string
		wantErr bool
	}{
		{
			name: "Minimal valid configuration",
			vars: map[string]string{
				"JIRA_URL":    "https://jira.example.com",
				"JIRA_COOKIE": "cloud.session.token=abc",
			},
			wantErr: false,
		},
		{
			name: "Missing URL",
			vars: map[string]string{
				"JIRA_COOKIE": "cloud.session.token=abc",
			},
			wantErr: true,
		},
		{
			name: "Missing cookie",
			vars: map[string]string{
				"JIRA_URL": "https://jira.example.com",
			},
			wantErr: true,
		},
		{
			name: "Malformed issue map is a load error",
			vars: map[string]string{
				"JIRA_URL":            "https://jira.example.com",
				"JIRA_COOKIE":         "cloud.session.token=abc",
				"JIRA_ISSUE_MAP_JSON": `{"2025-12":`,
			},
			wantErr: true,
		},
		{
			name: "Zero hours rejected",
			vars: map[string]string{
				"JIRA_URL":     "https://jira.example.com",
				"JIRA_COOKIE":  "cloud.session.token=abc",
				"HOURS_NORMAL": "0",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setEnv(t, tt.vars)

			config, err := LoadConfig()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, config)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, config)
			}
		})
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	setEnv(t, map[string]string{
		"JIRA_URL":    "https://jira.example.com/",
		"JIRA_COOKIE": "cloud.session.token=abc",
	})

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://jira.example.com", config.Jira.BaseURL, "trailing slash is trimmed")
	assert.Equal(t, 8.5, config.Worklog.NormalHours)
	assert.Equal(t, 6.0, config.Worklog.ReducedHours)
	assert.Equal(t, "Regular activity", config.Worklog.Comment)
	assert.Equal(t, "CL", config.Holiday.Country)
	assert.Empty(t, config.Jira.DefaultIssue)
	assert.Empty(t, config.Jira.IssueMap)
}

func TestLoadConfigOverrides(t *testing.T) {
	setEnv(t, map[string]string{
		"JIRA_URL":            "https://jira.example.com",
		"JIRA_COOKIE":         "cloud.session.token=abc",
		"JIRA_ISSUE":          "OPS-1",
		"JIRA_ISSUE_MAP_JSON": `{"2025-12":"INC-123","2026-01":"INC-456"}`,
		"HOURS_NORMAL":        "7.5",
		"HOURS_REDUCED":       "5",
		"WORKLOG_COMMENT":     "Sprint work",
		"HOLIDAY_COUNTRY":     "AR",
	})

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "OPS-1", config.Jira.DefaultIssue)
	assert.Equal(t, "INC-123", config.Jira.IssueMap["2025-12"])
	assert.Equal(t, "INC-456", config.Jira.IssueMap["2026-01"])
	assert.Equal(t, 7.5, config.Worklog.NormalHours)
	assert.Equal(t, 5.0, config.Worklog.ReducedHours)
	assert.Equal(t, "Sprint work", config.Worklog.Comment)
	assert.Equal(t, "AR", config.Holiday.Country)
}

func TestProbeIssue(t *testing.T) {
	tests := []struct {
		name     string
		config   Config
		expected string
	}{
		{
			name: "Default issue wins",
			config: Config{Jira: JiraConfig{
				DefaultIssue: "OPS-1",
				IssueMap:     map[string]string{"2025-12": "INC-123"},
			}},
			expected: "OPS-1",
		},
		{
			name: "Map issue when no default",
			config: Config{Jira: JiraConfig{
				IssueMap: map[string]string{"2025-12": "INC-123"},
			}},
			expected: "INC-123",
		},
		{
			name:     "Empty when neither configured",
			config:   Config{},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.config.ProbeIssue())
		})
	}
}
