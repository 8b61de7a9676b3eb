package main

import (
	"fmt"

	"github.com/fcanata061/srcpkg/internal/installer"
	"github.com/fcanata061/srcpkg/internal/log"
	"github.com/fcanata061/srcpkg/internal/packager"
	"github.com/fcanata061/srcpkg/internal/resolver"
	"github.com/spf13/cobra"
)

var liveRootFlag string

var installCmd = &cobra.Command{
	Use:   "install <recipe>",
	Short: "Resolve dependencies, build, package, and install onto the live filesystem",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		meta, err := loadRecipe(args[0])
		if err != nil {
			return err
		}

		order, err := resolver.Resolve(meta, loadRecipe, isInstalled)
		if err != nil {
			return err
		}

		for _, dep := range order {
			stage, err := runBuildPipeline(dep, false)
			if err != nil {
				return err
			}
			out := cfg.PackagePath(dep.Name, dep.Version)
			if err := packager.Package(stage, out, dep.Package, log.Default()); err != nil {
				return fmt.Errorf("package %s: %w", dep.Name, err)
			}
			if err := installer.Install(dep, stage, liveRootFlag, cfg, log.Default()); err != nil {
				return fmt.Errorf("install %s: %w", dep.Name, err)
			}
			fmt.Printf("installed %s-%s\n", dep.Name, dep.Version)
		}
		return nil
	},
}

func init() {
	installCmd.Flags().StringVar(&liveRootFlag, "root", "/", "live filesystem root to install onto")
}
