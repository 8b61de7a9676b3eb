package main

import (
	"fmt"

	"github.com/fcanata061/srcpkg/internal/installer"
	"github.com/fcanata061/srcpkg/internal/log"
	"github.com/spf13/cobra"
)

var removeRootFlag string

var removeCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove an installed package's files, hooks, and database record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := installer.Remove(args[0], removeRootFlag, cfg, log.Default()); err != nil {
			return err
		}
		fmt.Printf("removed %s\n", args[0])
		return nil
	},
}

func init() {
	removeCmd.Flags().StringVar(&removeRootFlag, "root", "/", "live filesystem root to remove from")
}
