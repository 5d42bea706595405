package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	addProjectName string
	addSourceDesc  string
)

var addCmd = &cobra.Command{
	Use:   "add <file|url>",
	Short: "Save a source locator to a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadProject(addProjectName)
		if err != nil {
			return err
		}
		s, err := p.AddSource(args[0], addSourceDesc)
		if err != nil {
			return err
		}
		if err := p.Save(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Source added: %s (%s)\n", s.Name, s.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVarP(&addProjectName, "project", "p", "", "project name")
	addCmd.Flags().StringVar(&addSourceDesc, "desc", "", "source description")
}
