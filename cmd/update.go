package cmd

import (
	"fmt"

	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"

	"github.com/autobrr/rxrule/pkg/runtime"
)

const repoSlug = "autobrr/rxrule"

var updateCmd = &cobra.Command{
	Use:           "update",
	Short:         "Update rxrule",
	Long:          `Update rxrule to the latest GitHub release.`,
	SilenceUsage:  true,
	SilenceErrors: true,

	RunE: func(cmd *cobra.Command, args []string) error {
		release, err := selfupdate.UpdateSelf(cmd.Context(), runtime.Version, selfupdate.ParseSlug(repoSlug))
		if err != nil {
			return fmt.Errorf("could not update binary: %w", err)
		}

		if release.LessOrEqual(runtime.Version) {
			fmt.Fprintf(cmd.OutOrStdout(), "Already up to date: %s\n", runtime.Version)
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Successfully updated to version: %s\n", release.Version())
		return nil
	},
}

func init() {
	updateCmd.SetUsageTemplate(`Usage:
  {{.CommandPath}}
  
Flags:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}
`)

	rootCmd.AddCommand(updateCmd)
}
