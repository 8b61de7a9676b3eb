package main

import (
	"fmt"

	"github.com/fcanata061/srcpkg/internal/db"
	"github.com/fcanata061/srcpkg/internal/installer"
	"github.com/fcanata061/srcpkg/internal/log"
	"github.com/fcanata061/srcpkg/internal/packager"
	"github.com/fcanata061/srcpkg/internal/resolver"
	"github.com/fcanata061/srcpkg/internal/upgrade"
	"github.com/spf13/cobra"
)

var upgradeRootFlag string

var upgradeCmd = &cobra.Command{
	Use:   "upgrade <recipe>",
	Short: "Reinstall a package if its recipe version is strictly newer than the installed one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		rec, err := db.New(cfg.DB).Load(name)
		if err != nil {
			return err
		}
		if rec == nil {
			fmt.Printf("%s is not installed, nothing to upgrade\n", name)
			return nil
		}

		meta, err := loadRecipe(name)
		if err != nil {
			return err
		}

		cand := upgrade.Candidate{Installed: rec, Available: meta}
		if !cand.NeedsUpgrade() {
			fmt.Printf("%s-%s is up to date\n", rec.Name, rec.Version)
			return nil
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
			if err := installer.Install(dep, stage, upgradeRootFlag, cfg, log.Default()); err != nil {
				return fmt.Errorf("install %s: %w", dep.Name, err)
			}
		}
		fmt.Printf("upgraded %s %s -> %s\n", name, rec.Version, meta.Version)
		return nil
	},
}

func init() {
	upgradeCmd.Flags().StringVar(&upgradeRootFlag, "root", "/", "live filesystem root to install onto")
}
