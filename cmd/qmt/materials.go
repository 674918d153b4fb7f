package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tomlaeven/qmt/pkg/materials"
)

var materialsCmd = &cobra.Command{
	Use:   "materials",
	Short: "List the materials in the database",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runMaterials(cmd); err != nil {
			fmt.Fprintf(os.Stderr, "materials failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	materialsCmd.Flags().String("db", "", "Material database YAML (default: built-in set)")
	rootCmd.AddCommand(materialsCmd)
}

func runMaterials(cmd *cobra.Command) error {
	db := materials.Default()
	if path, _ := cmd.Flags().GetString("db"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		db, err = materials.Load(f)
		if err != nil {
			return err
		}
	}

	for _, name := range db.Names() {
		m, err := db.Material(name)
		if err != nil {
			return err
		}
		fmt.Printf("%-12s %s\n", m.Name, m.Class)
	}
	return nil
}
