package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/romnn/go-bumpversion/internal/config"
	"github.com/romnn/go-bumpversion/internal/orchestrator"
	"github.com/romnn/go-bumpversion/internal/semver"
)

var showCmd = &cobra.Command{
	Use:   "show [component]",
	Short: "Print the computed next version without writing anything",
	Long: `Show loads the config, parses the current version, and prints what the
next version would be after bumping the named component — a pure read, no
RewritePlan is built and no files are touched (upstream bump-my-version's
"show" command). With no component argument it prints the current version.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(fs, workDir)
		if err != nil {
			return err
		}

		specs, err := orchestrator.ComponentSpecs(cfg)
		if err != nil {
			return err
		}
		parseTmpls, err := orchestrator.ParseTemplateList(cfg.Parse)
		if err != nil {
			return err
		}
		current, err := semver.Parse(specs, parseTmpls[0], cfg.CurrentVersion)
		if err != nil {
			return err
		}

		if len(args) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), cfg.CurrentVersion)
			return nil
		}

		next, err := current.Bump(args[0])
		if err != nil {
			return err
		}
		serializeTmpls, err := orchestrator.ParseTemplateList(cfg.Serialize)
		if err != nil {
			return err
		}
		raw, err := semver.Serialize(next, serializeTmpls)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), raw)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
