package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/verbena/internal/config"
	"github.com/jackzampolin/verbena/internal/home"
	"github.com/jackzampolin/verbena/internal/taxonomy"
	"github.com/jackzampolin/verbena/internal/userdata"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the verbena home directory",
	Long: `Initialize the verbena home directory.

Creates the directory layout, a default config file, the starter
se-verb taxonomy and empty override and study data files. The verb
database files are distributed separately and dropped into the data
directory.

Existing files are preserved unless --force is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := home.New(homeDir)
		if err != nil {
			return err
		}
		if err := h.EnsureExists(); err != nil {
			return err
		}
		fmt.Printf("Home directory: %s\n", h.Path())

		if h.ConfigExists() && !initForce {
			fmt.Printf("Config exists:  %s (use --force to overwrite)\n", h.ConfigPath())
		} else {
			if err := config.WriteDefault(h.ConfigPath()); err != nil {
				return err
			}
			fmt.Printf("Config:         %s\n", h.ConfigPath())
		}

		if fileExists(h.TaxonomyPath()) && !initForce {
			fmt.Printf("Taxonomy exists: %s (use --force to overwrite)\n", h.TaxonomyPath())
		} else {
			if err := taxonomy.WriteStarter(h.TaxonomyPath()); err != nil {
				return err
			}
			fmt.Printf("Taxonomy:       %s\n", h.TaxonomyPath())
		}

		// Empty store files, so the data directory is complete from the
		// start. These are user-owned and never forced.
		if !fileExists(h.OverridesPath()) {
			if err := os.WriteFile(h.OverridesPath(), []byte("{}\n"), 0o644); err != nil {
				return err
			}
			fmt.Printf("Overrides:      %s\n", h.OverridesPath())
		}
		if !fileExists(h.UserDataPath()) {
			doc, err := json.MarshalIndent(userdata.DefaultDocument(), "", "  ")
			if err != nil {
				return err
			}
			if err := os.WriteFile(h.UserDataPath(), append(doc, '\n'), 0o644); err != nil {
				return err
			}
			fmt.Printf("Study data:     %s\n", h.UserDataPath())
		}

		fmt.Printf("\nDrop the verb database files into %s and run 'verbena serve'.\n", h.DataPath())
		return nil
	},
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite existing config and taxonomy files")

	rootCmd.AddCommand(initCmd)
}
