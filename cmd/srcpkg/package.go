package main

import (
	"fmt"

	"github.com/fcanata061/srcpkg/internal/log"
	"github.com/fcanata061/srcpkg/internal/packager"
	"github.com/spf13/cobra"
)

var packageCmd = &cobra.Command{
	Use:   "package <recipe>",
	Short: "Build a recipe and emit a tar.xz package archive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		meta, err := loadRecipe(args[0])
		if err != nil {
			return err
		}

		stage, err := runBuildPipeline(meta, false)
		if err != nil {
			return err
		}

		out := cfg.PackagePath(meta.Name, meta.Version)
		if err := packager.Package(stage, out, meta.Package, log.Default()); err != nil {
			return fmt.Errorf("package %s: %w", meta.Name, err)
		}
		fmt.Println(out)
		return nil
	},
}
