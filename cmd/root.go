// Package cmd provides the command-line interface for autolog.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "autolog",
	Short: "Autolog submits weekly worklogs to Jira",
	Long: `Autolog automates the weekly time-logging routine: it computes the current
Monday-Friday window, skips public holidays and days you already logged, and
creates one worklog entry per remaining workday, routing days to issues via
an optional month-to-issue mapping.

Configuration is environment-based (JIRA_URL, JIRA_COOKIE, JIRA_ISSUE,
JIRA_ISSUE_MAP_JSON, HOURS_NORMAL, HOURS_REDUCED, WORKLOG_COMMENT,
HOLIDAY_COUNTRY).`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(checkCmd)
}
