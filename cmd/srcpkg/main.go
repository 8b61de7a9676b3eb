package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fcanata061/srcpkg/internal/config"
	"github.com/fcanata061/srcpkg/internal/errs"
	"github.com/fcanata061/srcpkg/internal/log"
	"github.com/spf13/cobra"
)

var (
	quietFlag   bool
	verboseFlag bool
	debugFlag   bool
)

// globalCtx is canceled on SIGINT/SIGTERM; it is passed to the fetcher's
// downloader and git invocations and to sync's git pull. Build-phase
// subprocesses are started without it.
var globalCtx context.Context
var globalCancel context.CancelFunc

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "srcpkg",
	Short: "A source-based package manager",
	Long: `srcpkg builds packages from source recipes: fetch, extract, patch,
build into a staging root, package as tar.xz, then install onto the live
filesystem with a tracked manifest.`,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Show errors only")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Show verbose output (INFO level)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Show debug output (subprocess argv, env overlays)")

	rootCmd.PersistentPreRun = initLogger

	var err error
	cfg, err = config.Default()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to resolve config: %v\n", err)
		exitWithCode(ExitGeneral)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create state directories: %v\n", err)
		exitWithCode(ExitGeneral)
	}

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(packageCmd)
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(orphansCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(upgradeCmd)
	rootCmd.AddCommand(revdepCmd)
}

func main() {
	globalCtx, globalCancel = context.WithCancel(context.Background())
	defer globalCancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		fmt.Fprintf(os.Stderr, "\nReceived %s, stopping...\n", sig)
		globalCancel()

		<-sigChan
		fmt.Fprintln(os.Stderr, "forced exit")
		exitWithCode(ExitInterrupted)
	}()

	if err := rootCmd.Execute(); err != nil {
		if globalCtx.Err() == context.Canceled {
			exitWithCode(ExitInterrupted)
		}
		exitWithCode(exitCodeFor(err))
	}
	if globalCtx.Err() == context.Canceled {
		exitWithCode(ExitInterrupted)
	}
}

// exitCodeFor maps an error to the exit code table in spec §6: a failed
// external command propagates its own exit code, an Interrupted maps to
// 130, everything else is a general failure.
func exitCodeFor(err error) int {
	var interrupted *errs.Interrupted
	if errors.As(err, &interrupted) {
		return ExitInterrupted
	}

	var buildErr *errs.BuildScriptFailedError
	if errors.As(err, &buildErr) && buildErr.ExitCode > 0 {
		return buildErr.ExitCode
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
		return exitErr.ExitCode()
	}

	fmt.Fprintln(os.Stderr, err)
	return ExitGeneral
}

func initLogger(cmd *cobra.Command, args []string) {
	level := determineLogLevel()
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	log.SetDefault(log.New(handler))
}

func determineLogLevel() slog.Level {
	if debugFlag {
		return slog.LevelDebug
	}
	if verboseFlag {
		return slog.LevelInfo
	}
	if quietFlag {
		return slog.LevelError
	}
	if isTruthy(os.Getenv("SRCPKG_DEBUG")) {
		return slog.LevelDebug
	}
	if isTruthy(os.Getenv("SRCPKG_VERBOSE")) {
		return slog.LevelInfo
	}
	if isTruthy(os.Getenv("SRCPKG_QUIET")) {
		return slog.LevelError
	}
	return slog.LevelWarn
}

func isTruthy(s string) bool {
	s = strings.ToLower(s)
	return s == "1" || s == "true" || s == "yes" || s == "on"
}
