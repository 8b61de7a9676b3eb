package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"
)

// syncCmd updates the local recipe repository clone. The source this spec
// was distilled from also pushes back after pulling; that push is a
// personal-workflow leak (spec §9 Open Questions flags it explicitly) and
// is intentionally not reproduced here — sync only pulls.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Update the recipe repository (git pull --rebase)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmdPull := exec.CommandContext(globalCtx, "git", "-C", cfg.Repo, "pull", "--rebase")
		cmdPull.Stdout = os.Stderr
		cmdPull.Stderr = os.Stderr
		if err := cmdPull.Run(); err != nil {
			return fmt.Errorf("sync recipe repository: %w", err)
		}
		return nil
	},
}
