package main

import (
	"encoding/json"
	"fmt"

	"github.com/fcanata061/srcpkg/internal/db"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <name|recipe>",
	Short: "Show the installed record (if any) or the recipe for a package",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		if rec, err := db.New(cfg.DB).Load(name); err == nil && rec != nil {
			data, err := json.MarshalIndent(rec, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}

		meta, err := loadRecipe(name)
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(meta, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	},
}
