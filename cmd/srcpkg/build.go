package main

import (
	"fmt"
	"os"

	"github.com/fcanata061/srcpkg/internal/builder"
	"github.com/fcanata061/srcpkg/internal/extractor"
	"github.com/fcanata061/srcpkg/internal/fetcher"
	"github.com/fcanata061/srcpkg/internal/log"
	"github.com/fcanata061/srcpkg/internal/patcher"
	"github.com/fcanata061/srcpkg/internal/progress"
	"github.com/fcanata061/srcpkg/internal/recipe"
	"github.com/spf13/cobra"
)

var buildOnlyFlag bool

var buildCmd = &cobra.Command{
	Use:   "build <recipe>",
	Short: "Fetch, extract, patch, and build a recipe into a staging tree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		meta, err := loadRecipe(args[0])
		if err != nil {
			return err
		}
		_, err = runBuildPipeline(meta, buildOnlyFlag)
		return err
	},
}

func init() {
	buildCmd.Flags().BoolVar(&buildOnlyFlag, "build-only", false, "skip the install phase of the build script")
}

// runBuildPipeline runs fetch, extract, patch, then the scripted build
// phases for meta, and returns the staging directory it populated.
func runBuildPipeline(meta *recipe.PackageMeta, buildOnly bool) (string, error) {
	logger := log.Default()
	src := srcDir(cfg, meta.Name)
	stage := stageDir(cfg, meta.Name)

	sp := progress.New(os.Stderr, fmt.Sprintf("fetching %s", meta.Name))
	defer sp.Stop()

	f := fetcher.New(cfg.Src)
	f.Logger = logger
	archivePath, err := f.Fetch(globalCtx, &meta.Source, src)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", meta.Name, err)
	}

	var root string
	if meta.Source.Kind == recipe.SourceGit {
		root = archivePath
	} else {
		sp.SetMessage(fmt.Sprintf("extracting %s", meta.Name))
		root, err = extractor.Extract(archivePath, src)
		if err != nil {
			return "", fmt.Errorf("extract %s: %w", meta.Name, err)
		}
	}

	if len(meta.Patches) > 0 {
		sp.SetMessage(fmt.Sprintf("patching %s", meta.Name))
		if err := patcher.Apply(meta.Patches, root, patchesDir(cfg, meta.Name)); err != nil {
			return "", fmt.Errorf("patch %s: %w", meta.Name, err)
		}
	}

	sp.SetMessage(fmt.Sprintf("building %s", meta.Name))
	buildLog, err := log.OpenBuildLog(cfg.LogPath(meta.Name))
	if err != nil {
		return "", fmt.Errorf("open build log for %s: %w", meta.Name, err)
	}
	defer buildLog.Close()

	if err := os.MkdirAll(stage, 0o755); err != nil {
		return "", fmt.Errorf("create stage dir: %w", err)
	}

	err = builder.Run(&meta.Build, builder.Options{
		SrcRoot:   root,
		DestDir:   stage,
		BuildOnly: buildOnly,
		Log:       buildLog,
	})
	if err != nil {
		return "", fmt.Errorf("build %s: %w", meta.Name, err)
	}
	return stage, nil
}
