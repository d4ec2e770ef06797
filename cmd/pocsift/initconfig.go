package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"pocsift/internal/pipeline"
)

var initConfigCmd = &cobra.Command{
	Use:   "init-config",
	Short: "Write an example pocsift.yaml",
	Long: `Write an annotated example configuration file to the given path
(default pocsift.yaml). Refuses to overwrite an existing file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")

		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists, refusing to overwrite", path)
		}
		if err := os.WriteFile(path, []byte(pipeline.ExampleConfigFile()), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}

		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s Wrote %s\n", green("✓"), path)
		return nil
	},
}

func init() {
	initConfigCmd.Flags().String("config", "pocsift.yaml", "Path of the config file to write")
	rootCmd.AddCommand(initConfigCmd)
}
