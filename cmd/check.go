package cmd

import (
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/autobrr/rxrule/pkg/config"
	"github.com/autobrr/rxrule/pkg/logger"
	"github.com/autobrr/rxrule/pkg/notification"
)

var (
	flagNotify         bool
	flagViolationsOnly bool
)

var checkCmd = &cobra.Command{
	Use:   "check RULE [VALUE...]",
	Short: "Check values against a rule",
	Long:  `This command checks the given values, or the lines read from stdin when none are given, against a configured rule.`,

	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ensureInitialized(false)

		// set log
		log := logger.GetLogger("check")

		// retrieve rule
		ruleName := args[0]
		r, err := config.GetRule(ruleName)
		if err != nil {
			log.WithError(err).Fatal("Failed retrieving rule")
		}

		// retrieve values
		values := args[1:]
		if len(values) == 0 {
			values, err = readValues(cmd.InOrStdin())
			if err != nil {
				log.WithError(err).Fatal("Failed reading values from stdin")
			}
		}

		// check values
		summary, err := checkValues(r, values)
		if err != nil {
			log.WithError(err).Fatal("Failed checking values")
		}

		writeOutcomes(cmd.OutOrStdout(), summary.Outcomes, flagViolationsOnly)

		violations := len(summary.violations())
		log.WithField("run_time", summary.RunTime).
			Infof("Checked %s value(s) against %q: %s violation(s)",
				humanize.Comma(int64(summary.Checked)), ruleName, humanize.Comma(int64(violations)))

		// notify
		if flagNotify {
			sender := notification.NewDiscordSender(log, config.Config.Notifications)
			if !sender.CanSend() {
				log.Warnf("Notifications requested but %s is not configured", sender.Name())
			} else if err := sender.Send(cmd.Context(), summary.report(ruleName, r)); err != nil {
				log.WithError(err).Errorf("Failed sending %s notification", sender.Name())
			}
		}

		if violations > 0 {
			return errViolations
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().BoolVar(&flagNotify, "notify", false, "Send a report to the configured notification service")
	checkCmd.Flags().BoolVar(&flagViolationsOnly, "violations-only", false, "Only print rejected values")

	rootCmd.AddCommand(checkCmd)
}
