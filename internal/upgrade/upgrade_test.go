package upgrade

import (
	"testing"

	"github.com/fcanata061/srcpkg/internal/db"
	"github.com/fcanata061/srcpkg/internal/recipe"
	"github.com/stretchr/testify/require"
)

func TestPlanSelectsOnlyStrictlyNewerRecipes(t *testing.T) {
	records := []*db.InstalledPkg{
		{Name: "zlib", Version: "1.2.13"},
		{Name: "gcc", Version: "13.2.0"},
	}
	recipes := map[string]*recipe.PackageMeta{
		"zlib": {Name: "zlib", Version: "1.3"},
		"gcc":  {Name: "gcc", Version: "13.2.0"},
	}
	load := func(name string) (*recipe.PackageMeta, error) { return recipes[name], nil }

	plan, err := Plan(records, load)
	require.NoError(t, err)
	require.Len(t, plan, 1)
	require.Equal(t, "zlib", plan[0].Installed.Name)
	require.Equal(t, "1.3", plan[0].Available.Version)
}

func TestPlanSkipsPackagesWithNoAvailableRecipe(t *testing.T) {
	records := []*db.InstalledPkg{{Name: "orphaned-tool", Version: "1.0"}}
	load := func(name string) (*recipe.PackageMeta, error) { return nil, nil }

	plan, err := Plan(records, load)
	require.NoError(t, err)
	require.Empty(t, plan)
}
