package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gobeam/internal/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init [file]",
	Short: "Write an example beam case file",
	Long: `Write an example case (a simply supported 10 m span with a midspan point
load) to start from. The format follows the extension: .json for JSON,
anything else for YAML.

Examples:
  gobeam init beam.yaml
  gobeam init beam.json --force`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "beam.yaml"
		if len(args) == 1 {
			path = args[0]
		}
		if _, err := os.Stat(path); err == nil && !initForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		if err := config.Save(path, config.DefaultCase()); err != nil {
			return err
		}
		slog.Debug("file written", "path", path)
		fmt.Printf("  Wrote %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing file")
}
