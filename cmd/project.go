package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	pmProject string
	pmClear   bool
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage per-project settings",
}

var projectSetLanguageCmd = &cobra.Command{
	Use:   "set-language <tag>",
	Short: "Set or clear a project's message language (BCP 47 tag, e.g. es or en)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if pmProject == "" {
			return fmt.Errorf("--project is required")
		}
		p, err := loadProject(pmProject)
		if err != nil {
			return err
		}
		tag := ""
		if !pmClear {
			if len(args) == 0 || args[0] == "" {
				return fmt.Errorf("language tag is required unless --clear is set")
			}
			tag = args[0]
		}
		if err := p.SetLanguage(tag); err != nil {
			return err
		}
		if err := p.Save(); err != nil {
			return err
		}
		if pmClear {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Cleared project language for %s\n", pmProject)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Set project language for %s: %s\n", pmProject, p.Config.Language)
		}
		return nil
	},
}

var projectRemoveSourceCmd = &cobra.Command{
	Use:   "remove-source <id|locator>",
	Short: "Remove a saved source from a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if pmProject == "" {
			return fmt.Errorf("--project is required")
		}
		p, err := loadProject(pmProject)
		if err != nil {
			return err
		}
		if err := p.RemoveSource(args[0]); err != nil {
			return err
		}
		if err := p.Save(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Removed source %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(projectCmd)
	projectCmd.AddCommand(projectSetLanguageCmd)
	projectCmd.AddCommand(projectRemoveSourceCmd)

	projectCmd.PersistentFlags().StringVarP(&pmProject, "project", "p", "", "project name")
	projectSetLanguageCmd.Flags().BoolVar(&pmClear, "clear", false, "clear the project's language override")
}
