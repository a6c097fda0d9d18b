package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/autobrr/rxrule/pkg/config"
	"github.com/autobrr/rxrule/pkg/logger"
)

var patternCmd = &cobra.Command{
	Use:   "pattern [RULE...]",
	Short: "Print the HTML pattern attribute of rules",
	Long:  `This command prints the HTML pattern attribute derived for every configured rule, or only for the named rules. Rules without one print "-".`,

	RunE: func(cmd *cobra.Command, args []string) error {
		ensureInitialized(false)

		// set log
		log := logger.GetLogger("pattern")

		names := args
		if len(names) == 0 {
			names = config.RuleNames()
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, name := range names {
			r, err := config.GetRule(name)
			if err != nil {
				log.WithError(err).Fatal("Failed retrieving rule")
			}

			fmt.Fprintf(w, "%s\t%s\t%s\n", name, r.Pattern(), htmlPatternOrDash(r))
		}

		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(patternCmd)
}
