package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcastillo/autolog/internal/config"
	"github.com/rcastillo/autolog/internal/holiday"
	"github.com/rcastillo/autolog/internal/jira"
	"github.com/rcastillo/autolog/internal/logging"
	"github.com/rcastillo/autolog/internal/worklog"
)

// checkCmd validates the session cookie against one representative issue and,
// on confirmation, runs the weekly submission in-process.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the session cookie, then optionally submit",
	Long: `Check fetches one configured issue's metadata to verify that the session
cookie is still valid. On success it shows the issue and asks for
confirmation before running the weekly submission.

The probe issue is JIRA_ISSUE when set, otherwise any issue from
JIRA_ISSUE_MAP_JSON.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		assumeYes, err := cmd.Flags().GetBool("yes")
		if err != nil {
			return err
		}

		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %v", err)
		}

		probeKey := cfg.ProbeIssue()
		if probeKey == "" {
			return fmt.Errorf("no issue to probe: set JIRA_ISSUE or JIRA_ISSUE_MAP_JSON")
		}

		tracker, err := jira.NewClient(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize jira client: %v", err)
		}

		logging.Info("probing issue access",
			"issue", probeKey,
			"cookie", logging.MaskSensitive(cfg.Jira.Cookie))

		issue, err := tracker.GetIssue(cmd.Context(), probeKey)
		switch {
		case errors.Is(err, jira.ErrUnauthorized):
			return fmt.Errorf("session cookie expired: copy a fresh cookie from the browser into JIRA_COOKIE")
		case errors.Is(err, jira.ErrNotFound):
			return fmt.Errorf("issue %s does not exist or is not visible to this account", probeKey)
		case err != nil:
			return fmt.Errorf("connectivity check failed: %v", err)
		}

		assignee := issue.Assignee
		if assignee == "" {
			assignee = "unassigned"
		}
		logging.Info("session cookie valid",
			"issue", issue.Key,
			"summary", issue.Summary,
			"assignee", assignee)

		if !assumeYes {
			fmt.Fprint(cmd.OutOrStdout(), "Run the weekly submission now? (y/n): ")
			reader := bufio.NewReader(cmd.InOrStdin())
			answer, _ := reader.ReadString('\n')
			if strings.ToLower(strings.TrimSpace(answer)) != "y" {
				logging.Info("submission cancelled by user")
				return nil
			}
		}

		submitter := worklog.NewSubmitter(cfg, tracker, holiday.NewClient(cfg.Holiday.Country))
		summary, err := submitter.Run(cmd.Context())
		if err != nil {
			return err
		}

		logging.Info("done",
			"created", summary.Created,
			"from", summary.From,
			"to", summary.To)
		return nil
	},
}

func init() {
	checkCmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")
}
