package main

import (
	"fmt"

	"github.com/fcanata061/srcpkg/internal/db"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed packages",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		recs, err := db.New(cfg.DB).All()
		if err != nil {
			return err
		}
		for _, rec := range recs {
			fmt.Printf("%s-%s\n", rec.Name, rec.Version)
		}
		return nil
	},
}
