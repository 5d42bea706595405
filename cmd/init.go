package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/pareto-cli/internal/project"
	"github.com/KaramelBytes/pareto-cli/internal/utils"
)

var (
	initDescription string
)

var initCmd = &cobra.Command{
	Use:   "init <project-name>",
	Short: "Initialize a new project for saved sources",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		projDir, err := resolveProjectDirByName(name)
		if err != nil {
			return err
		}
		// Refuse to overwrite an existing project.
		if info, err := os.Stat(projDir); err == nil && info.IsDir() {
			projectFile := filepath.Join(projDir, project.FileName)
			if _, err := os.Stat(projectFile); err == nil {
				return fmt.Errorf("project already exists at %s", projDir)
			}
			entries, err := os.ReadDir(projDir)
			if err != nil {
				return fmt.Errorf("inspect project directory: %w", err)
			}
			if len(entries) > 0 {
				return fmt.Errorf("directory %s already exists and is not empty; refusing to initialize project", projDir)
			}
		} else if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("stat project directory: %w", err)
		}
		p := project.NewProject(name, initDescription, projDir)
		if err := p.Save(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Project initialized: %s\n", projDir)
		return nil
	},
}

func defaultProjectsDir() (string, error) {
	dir := settings().ProjectsDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dir = filepath.Join(home, ".pareto", "projects")
	}
	dir, err := utils.ExpandHome(dir)
	if err != nil {
		return "", err
	}
	dir = filepath.Clean(dir)
	if err := utils.EnsureDir(dir); err != nil {
		return "", err
	}
	return dir, nil
}

func resolveProjectDirByName(name string) (string, error) {
	if name == "" {
		return "", errors.New("project name is required")
	}
	if filepath.Base(name) != name || name == "." || name == ".." {
		return "", fmt.Errorf("invalid project name %q", name)
	}
	root, err := defaultProjectsDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, name), nil
}

// loadProject loads a project by name. With an empty name it looks for a
// project.json in the working directory or its parents.
func loadProject(name string) (*project.Project, error) {
	if name == "" {
		dir, err := project.FindRoot("")
		if err != nil {
			return nil, fmt.Errorf("--project is required: %w", err)
		}
		return project.LoadProject(dir)
	}
	dir, err := resolveProjectDirByName(name)
	if err != nil {
		return nil, err
	}
	return project.LoadProject(dir)
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().StringVarP(&initDescription, "desc", "d", "", "project description")
}
