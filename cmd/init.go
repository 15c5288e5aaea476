package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

const initConfigFileName = ".bumpversion.toml"

const initConfigTemplate = `[tool.bumpversion]
current_version = "0.1.0"
parse = "{major}.{minor}.{patch}"
serialize = ["{major}.{minor}.{patch}"]
commit = false
tag = false
allow_dirty = false
message = "Bump version: {current_version} -> {new_version}"
tag_name = "v{new_version}"
`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter .bumpversion.toml in the current directory",
	Long: `init writes a .bumpversion.toml with the spec's documented defaults
(standard major.minor.patch parsing, no VCS integration enabled) unless one
already exists.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		exists, err := afero.Exists(fs, initConfigFileName)
		if err != nil {
			return err
		}
		if exists {
			fmt.Fprintf(cmd.OutOrStdout(), "%s already exists\n", initConfigFileName)
			return nil
		}
		if err := afero.WriteFile(fs, initConfigFileName, []byte(initConfigTemplate), 0o644); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", initConfigFileName)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
