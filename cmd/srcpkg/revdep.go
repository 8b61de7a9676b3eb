package main

import (
	"fmt"

	"github.com/fcanata061/srcpkg/internal/db"
	"github.com/fcanata061/srcpkg/internal/dbfmt"
	"github.com/fcanata061/srcpkg/internal/installer"
	"github.com/fcanata061/srcpkg/internal/log"
	"github.com/fcanata061/srcpkg/internal/packager"
	"github.com/fcanata061/srcpkg/internal/resolver"
	"github.com/fcanata061/srcpkg/internal/revdep"
	"github.com/spf13/cobra"
)

var revdepRebuildFlag bool
var revdepFormatFlag string
var revdepRootFlag string

var revdepCmd = &cobra.Command{
	Use:   "revdep",
	Short: "Audit installed packages for unresolved shared-library dependencies",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := db.New(cfg.DB)
		records, err := store.All()
		if err != nil {
			return err
		}

		broken := revdep.Audit(records, log.Default())
		report, err := dbfmt.EncodeRevdepReport(broken, dbfmt.Format(revdepFormatFlag))
		if err != nil {
			return err
		}
		fmt.Println(string(report))

		if !revdepRebuildFlag {
			return nil
		}

		// Enumeration order, not a dependency-aware order (spec Open
		// Questions flags this explicitly as a known limitation).
		for _, name := range revdep.RebuildOrder(broken) {
			rec, err := store.Load(name)
			if err != nil {
				return fmt.Errorf("load database record for %s: %w", name, err)
			}
			// The recipe is reconstructed from the embedded database copy
			// (spec Phase 4), so rebuild works even if the original
			// recipe file no longer exists in the repo.
			if rec == nil || rec.Recipe.Name == "" {
				log.Default().Warn("no embedded recipe for package, skipping rebuild", "package", name)
				continue
			}
			meta := &rec.Recipe

			depOrder, err := resolver.Resolve(meta, loadRecipe, isInstalled)
			if err != nil {
				return fmt.Errorf("resolve dependencies for %s: %w", name, err)
			}
			for _, dep := range depOrder {
				stage, err := runBuildPipeline(dep, false)
				if err != nil {
					return err
				}
				pkgOut := cfg.PackagePath(dep.Name, dep.Version)
				if err := packager.Package(stage, pkgOut, dep.Package, log.Default()); err != nil {
					return fmt.Errorf("package %s: %w", dep.Name, err)
				}
				if err := installer.Install(dep, stage, revdepRootFlag, cfg, log.Default()); err != nil {
					return fmt.Errorf("reinstall %s: %w", dep.Name, err)
				}
			}
			fmt.Printf("rebuilt %s-%s\n", meta.Name, meta.Version)
		}
		return nil
	},
}

func init() {
	revdepCmd.Flags().BoolVar(&revdepRebuildFlag, "rebuild", false, "rebuild every dirty package in enumeration order")
	revdepCmd.Flags().StringVar(&revdepFormatFlag, "format", "json", "report format: json or yaml")
	revdepCmd.Flags().StringVar(&revdepRootFlag, "root", "/", "live filesystem root to install onto during rebuild")
}
