package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/romnn/go-bumpversion/internal/config"
	"github.com/romnn/go-bumpversion/internal/orchestrator"
	"github.com/romnn/go-bumpversion/internal/semver"
)

var showPartCmd = &cobra.Command{
	Use:   "show-part <name>",
	Short: "List the allowed values and current value of one configured part",
	Long: `show-part prints one component's current value and, for a values-kind
component, every allowed value in order (mirrors upstream bump-my-version's
show-bump, useful for shell completion and debugging).`,
	Args: cobra.ExactArgs(1),
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

		name := args[0]
		var spec *semver.ComponentSpec
		for i := range specs {
			if specs[i].Name == name {
				spec = &specs[i]
				break
			}
		}
		if spec == nil {
			return fmt.Errorf("no such component %q", name)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "current: %s\n", current.Get(name))
		if spec.Kind == semver.KindValues {
			fmt.Fprintf(cmd.OutOrStdout(), "values: %s\n", strings.Join(spec.Values, ", "))
			if spec.Optional {
				fmt.Fprintf(cmd.OutOrStdout(), "optional_value: %s\n", spec.OptionalValue)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showPartCmd)
}
