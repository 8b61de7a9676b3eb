package main

import (
	"fmt"

	"github.com/fcanata061/srcpkg/internal/db"
	"github.com/fcanata061/srcpkg/internal/installer"
	"github.com/fcanata061/srcpkg/internal/log"
	"github.com/spf13/cobra"
)

var orphansRemoveFlag bool
var orphansRootFlag string

var orphansCmd = &cobra.Command{
	Use:   "orphans",
	Short: "List (or remove) installed packages no other package depends on",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		orphans, err := db.New(cfg.DB).Orphans()
		if err != nil {
			return err
		}

		for _, rec := range orphans {
			fmt.Printf("%s-%s\n", rec.Name, rec.Version)
			if orphansRemoveFlag {
				if err := installer.Remove(rec.Name, orphansRootFlag, cfg, log.Default()); err != nil {
					return fmt.Errorf("remove orphan %s: %w", rec.Name, err)
				}
			}
		}
		return nil
	},
}

func init() {
	orphansCmd.Flags().BoolVar(&orphansRemoveFlag, "remove", false, "remove orphaned packages instead of just listing them")
	orphansCmd.Flags().StringVar(&orphansRootFlag, "root", "/", "live filesystem root to remove from")
}
