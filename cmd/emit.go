package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/romnn/go-bumpversion/internal/config"
	"github.com/romnn/go-bumpversion/internal/emit"
	"github.com/romnn/go-bumpversion/internal/orchestrator"
	"github.com/romnn/go-bumpversion/internal/semver"
)

var (
	emitOutputPath  string
	emitPackageName string
)

var emitCmd = &cobra.Command{
	Use:   "emit <go|python|json|yaml>",
	Short: "Generate a small version-source file from the current version",
	Long: `emit renders the current version into a small source or data file in one
of four formats, using its own mustache-based template dialect (distinct
from the Format Engine that drives search/replace rewriting).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format := emit.Format(args[0])
		if !emit.IsValidFormat(string(format)) {
			return fmt.Errorf("unsupported format %q, want one of: %v", args[0], emit.SupportedFormats())
		}

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

		data := emit.Data{
			FullVersion: cfg.CurrentVersion,
			PackageName: emitPackageName,
		}
		for _, name := range current.Order {
			data.Components = append(data.Components, emit.Component{Name: name, Value: current.Get(name)})
		}

		rendered, err := emit.Render(format, data)
		if err != nil {
			return err
		}

		outPath := emitOutputPath
		if outPath == "" {
			outPath = emit.DefaultOutputPath(format)
		}
		outPath = filepath.Join(workDir, outPath)

		if err := afero.WriteFile(fs, outPath, []byte(rendered), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", outPath, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", outPath)
		return nil
	},
}

func init() {
	emitCmd.Flags().StringVar(&emitOutputPath, "output", "", "override the default output path for the chosen format")
	emitCmd.Flags().StringVar(&emitPackageName, "package", "main", "Go package name (go format only)")
	rootCmd.AddCommand(emitCmd)
}
