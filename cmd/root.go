// Package cmd wires the cobra command tree to internal/orchestrator, one
// Run func per user-visible operation (spec §6's CLI surface plus the
// supplemental show/show-part/emit/init commands).
//
// Grounded on the teacher's cmd/root.go (PersistentPreRun initializing the
// logger before any subcommand body runs) and cmd/major.go's pattern of one
// file per subcommand registering itself onto rootCmd from init().
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/romnn/go-bumpversion/internal/bumperrors"
	"github.com/romnn/go-bumpversion/internal/logging"
	"github.com/romnn/go-bumpversion/internal/vcs"
	"github.com/romnn/go-bumpversion/internal/vcs/git"
)

var (
	logFormat string
	verbose   bool
	logLevel  string
	workDir   string

	fs = afero.NewOsFs()
)

var rootCmd = &cobra.Command{
	Use:           "bump",
	Short:         "Bump a project's version and rewrite every file that names it",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logging.Init(logFormat, verbose)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
}

// Execute runs the command tree and returns the spec §6 exit code the
// process should terminate with.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if berr, ok := err.(*bumperrors.Error); ok {
			return bumperrors.ExitCode(berr.Kind)
		}
		return 6
	}
	return 0
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "log output format (console, json, development)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug-level logging")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (unused alias of --verbose for upstream compatibility)")
	rootCmd.PersistentFlags().StringVar(&workDir, "dir", ".", "working directory root")

	vcs.RegisterVCS(git.NewGitVCS())
}

func activeVCS() vcs.VersionControlSystem {
	return vcs.GetActiveVCS()
}
