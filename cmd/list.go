package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/pareto-cli/internal/project"
)

var (
	listProjects bool
	listSources  bool
	listProjName string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects or saved sources",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if listProjects == listSources { // either both true or both false
			return fmt.Errorf("specify exactly one of --projects or --sources")
		}
		if listProjects {
			return listAllProjects(out)
		}
		p, err := loadProject(listProjName)
		if err != nil {
			return err
		}
		sources := p.SortedSources()
		if len(sources) == 0 {
			fmt.Fprintln(out, "(no sources)")
			return nil
		}
		for _, s := range sources {
			line := fmt.Sprintf("- %s: %s", s.ID, s.Locator)
			if s.Description != "" {
				line += " (" + s.Description + ")"
			}
			fmt.Fprintln(out, line)
		}
		return nil
	},
}

func listAllProjects(out io.Writer) error {
	root, err := defaultProjectsDir()
	if err != nil {
		return err
	}
	dirs, err := os.ReadDir(root)
	if err != nil {
		return err
	}
	found := false
	for _, e := range dirs {
		if !e.IsDir() {
			continue
		}
		pj := filepath.Join(root, e.Name(), project.FileName)
		if _, err := os.Stat(pj); err == nil {
			fmt.Fprintf(out, "- %s\n", e.Name())
			found = true
		}
	}
	if !found {
		fmt.Fprintln(out, "(no projects)")
	}
	return nil
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listProjects, "projects", false, "list projects")
	listCmd.Flags().BoolVar(&listSources, "sources", false, "list saved sources in a project")
	listCmd.Flags().StringVarP(&listProjName, "project", "p", "", "project name for --sources")
}
