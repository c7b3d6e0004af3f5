package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcastillo/autolog/internal/config"
	"github.com/rcastillo/autolog/internal/holiday"
	"github.com/rcastillo/autolog/internal/jira"
	"github.com/rcastillo/autolog/internal/logging"
	"github.com/rcastillo/autolog/internal/worklog"
)

// submitCmd runs the weekly submission workflow end to end.
var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit this week's missing worklogs",
	Long: `Submit creates one worklog entry per remaining workday of the current
Monday-Friday window.

A day is skipped when it is a public holiday (per the configured country's
public holiday calendar) or when the authenticated account already has a
worklog on the issue that day. Friday entries use the reduced daily hours;
Monday through Thursday use the normal daily hours.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dryRun, err := cmd.Flags().GetBool("dry-run")
		if err != nil {
			return err
		}

		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %v", err)
		}

		tracker, err := jira.NewClient(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize jira client: %v", err)
		}

		submitter := worklog.NewSubmitter(cfg, tracker, holiday.NewClient(cfg.Holiday.Country))
		submitter.DryRun = dryRun

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
	submitCmd.Flags().Bool("dry-run", false, "resolve and report without creating any worklog")
}
