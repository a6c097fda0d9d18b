package cmd

import (
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/autobrr/rxrule/pkg/config"
	"github.com/autobrr/rxrule/pkg/logger"
	"github.com/autobrr/rxrule/pkg/paths"
)

var (
	flagIncludeDirs bool
	flagIgnorePaths []string
)

var pathsCmd = &cobra.Command{
	Use:   "paths RULE PATH",
	Short: "Check file names under a folder against a rule",
	Long:  `This command walks a folder and checks the name of every file, and optionally every folder, against a configured rule.`,

	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ensureInitialized(false)

		// set log
		log := logger.GetLogger("paths")

		// retrieve rule
		ruleName := args[0]
		r, err := config.GetRule(ruleName)
		if err != nil {
			log.WithError(err).Fatal("Failed retrieving rule")
		}

		// walk folder
		found, err := paths.InFolder(args[1], paths.WalkOptions{
			IncludeFiles:   true,
			IncludeFolders: flagIncludeDirs,
			IgnorePrefixes: flagIgnorePaths,
		})
		if err != nil {
			log.WithError(err).Fatal("Failed walking folder")
		}

		var totalSize int64
		names := make([]string, 0, len(found))
		for _, p := range found {
			names = append(names, p.FileName)
			totalSize += p.Size
		}

		// check names
		summary, err := checkValues(r, names)
		if err != nil {
			log.WithError(err).Fatal("Failed checking file names")
		}

		for i, o := range summary.Outcomes {
			if o.Violation != nil {
				log.WithField("path", found[i].Path).Warnf("Rejected name %q: %s", o.Value, o.Violation.Message)
			}
		}
		writeOutcomes(cmd.OutOrStdout(), summary.Outcomes, true)

		violations := len(summary.violations())
		log.WithField("size", humanize.IBytes(uint64(totalSize))).
			Infof("Checked %s path(s) against %q: %s violation(s)",
				humanize.Comma(int64(summary.Checked)), ruleName, humanize.Comma(int64(violations)))

		if violations > 0 {
			return errViolations
		}
		return nil
	},
}

func init() {
	pathsCmd.Flags().BoolVar(&flagIncludeDirs, "dirs", false, "Also check folder names")
	pathsCmd.Flags().StringSliceVar(&flagIgnorePaths, "ignore", nil, "Path prefixes to skip")

	rootCmd.AddCommand(pathsCmd)
}
