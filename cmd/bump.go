package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/romnn/go-bumpversion/internal/config"
	"github.com/romnn/go-bumpversion/internal/hooks"
	"github.com/romnn/go-bumpversion/internal/orchestrator"
)

var (
	flagDryRun      bool
	flagAllowDirty  bool
	flagCommit      bool
	flagNoCommit    bool
	flagTag         bool
	flagNoTag       bool
	flagSignTags    bool
	flagMessage     string
	flagTagName     string
	flagTagMessage  string
	flagCurrentVer  string
	flagNewVer      string
)

var bumpCmd = &cobra.Command{
	Use:   "bump [component]",
	Short: "Bump a version component and rewrite every configured file",
	Long: `Bump increments the named version component (for example "major",
"minor", "patch", or any configured part name) according to the component
ordering declared in the discovered config file, then rewrites every file
the config names to replace the old version string with the new one.

Pass --new-version instead of a component name to set the version directly,
skipping the bump algebra entirely.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var component string
		if len(args) == 1 {
			component = args[0]
		}

		overrides := config.Overrides{DryRun: flagDryRun}
		if cmd.Flags().Changed("current-version") {
			overrides.CurrentVersion = &flagCurrentVer
		}
		if cmd.Flags().Changed("new-version") {
			overrides.NewVersion = &flagNewVer
		}
		if cmd.Flags().Changed("allow-dirty") {
			overrides.AllowDirty = &flagAllowDirty
		}
		if cmd.Flags().Changed("commit") {
			overrides.Commit = &flagCommit
		}
		if cmd.Flags().Changed("no-commit") {
			v := !flagNoCommit
			overrides.Commit = &v
		}
		if cmd.Flags().Changed("tag") {
			overrides.Tag = &flagTag
		}
		if cmd.Flags().Changed("no-tag") {
			v := !flagNoTag
			overrides.Tag = &v
		}
		if cmd.Flags().Changed("sign-tags") {
			overrides.SignTags = &flagSignTags
		}
		if cmd.Flags().Changed("message") {
			overrides.Message = &flagMessage
		}
		if cmd.Flags().Changed("tag-name") {
			overrides.TagName = &flagTagName
		}
		if cmd.Flags().Changed("tag-message") {
			overrides.TagMessage = &flagTagMessage
		}

		if component == "" && overrides.NewVersion == nil {
			return fmt.Errorf("either a component name or --new-version is required")
		}

		result, err := orchestrator.Run(context.Background(), fs, orchestrator.Options{
			Dir:        workDir,
			Component:  component,
			Overrides:  overrides,
			DryRun:     flagDryRun,
			ProcessEnv: hooks.ProcessEnv(),
			VCS:        activeVCS(),
		})
		if err != nil {
			return err
		}

		if flagDryRun {
			fmt.Fprintf(cmd.OutOrStdout(), "would bump %s -> %s\n", result.CurrentRaw, result.NextRaw)
			for _, change := range result.Plan.Changes {
				fmt.Fprintf(cmd.OutOrStdout(), "--- %s\n%s", change.Path, change.Diff)
			}
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", result.CurrentRaw, result.NextRaw)
		if result.CommitID != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "committed %s\n", result.CommitID)
		}
		if result.TagName != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "tagged %s\n", result.TagName)
		}
		return nil
	},
}

func init() {
	bumpCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "compute and display diffs, write nothing")
	bumpCmd.Flags().BoolVar(&flagAllowDirty, "allow-dirty", false, "skip the dirty-working-tree check")
	bumpCmd.Flags().BoolVar(&flagCommit, "commit", false, "commit the rewritten files")
	bumpCmd.Flags().BoolVar(&flagNoCommit, "no-commit", false, "do not commit")
	bumpCmd.Flags().BoolVar(&flagTag, "tag", false, "tag the commit")
	bumpCmd.Flags().BoolVar(&flagNoTag, "no-tag", false, "do not tag")
	bumpCmd.Flags().BoolVar(&flagSignTags, "sign-tags", false, "sign the created tag")
	bumpCmd.Flags().StringVar(&flagMessage, "message", "", "override the commit message template")
	bumpCmd.Flags().StringVar(&flagTagName, "tag-name", "", "override the tag name template")
	bumpCmd.Flags().StringVar(&flagTagMessage, "tag-message", "", "override the tag message template")
	bumpCmd.Flags().StringVar(&flagCurrentVer, "current-version", "", "override the current version read from config")
	bumpCmd.Flags().StringVar(&flagNewVer, "new-version", "", "set the new version directly, skipping the bump algebra")

	rootCmd.AddCommand(bumpCmd)
}
