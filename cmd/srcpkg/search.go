package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fcanata061/srcpkg/internal/config"
	"github.com/fcanata061/srcpkg/internal/recipe"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Search the recipe repository by name substring",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		term := strings.ToLower(args[0])
		idx, err := recipe.ScanRepo(cfg.Repo, config.RepoCategories)
		if err != nil {
			return err
		}

		var names []string
		for name := range idx {
			if strings.Contains(strings.ToLower(name), term) {
				names = append(names, name)
			}
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}
