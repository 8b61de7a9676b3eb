package db

import (
	"testing"

	"github.com/fcanata061/srcpkg/internal/recipe"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	d := New(t.TempDir())
	rec := &InstalledPkg{
		Name:    "zlib",
		Version: "1.3",
		Files:   []string{"/usr/lib/libz.so"},
		Recipe:  recipe.PackageMeta{Name: "zlib", Version: "1.3"},
	}
	require.NoError(t, d.Save(rec))

	got, err := d.Load("zlib")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, rec.Version, got.Version)
	require.Equal(t, rec.Files, got.Files)
}

func TestLoadMissingReturnsNilNotError(t *testing.T) {
	d := New(t.TempDir())
	got, err := d.Load("nope")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestRemoveThenLoadIsNil(t *testing.T) {
	d := New(t.TempDir())
	require.NoError(t, d.Save(&InstalledPkg{Name: "gcc", Version: "13"}))
	require.NoError(t, d.Remove("gcc"))

	got, err := d.Load("gcc")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestRemoveNonexistentIsNotAnError(t *testing.T) {
	d := New(t.TempDir())
	require.NoError(t, d.Remove("never-installed"))
}

func TestAllSortedByName(t *testing.T) {
	d := New(t.TempDir())
	require.NoError(t, d.Save(&InstalledPkg{Name: "zlib", Version: "1.3"}))
	require.NoError(t, d.Save(&InstalledPkg{Name: "acl", Version: "2.3"}))
	require.NoError(t, d.Save(&InstalledPkg{Name: "mesa", Version: "24.0"}))

	all, err := d.All()
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, []string{"acl", "mesa", "zlib"}, []string{all[0].Name, all[1].Name, all[2].Name})
}

func TestOrphansExcludesDependedUponPackages(t *testing.T) {
	d := New(t.TempDir())
	require.NoError(t, d.Save(&InstalledPkg{Name: "zlib", Version: "1.3"}))
	require.NoError(t, d.Save(&InstalledPkg{Name: "libpng", Version: "1.6", Depends: []string{"zlib"}}))
	require.NoError(t, d.Save(&InstalledPkg{Name: "gimp", Version: "2.10", Depends: []string{"libpng"}}))

	orphans, err := d.Orphans()
	require.NoError(t, err)
	require.Len(t, orphans, 1)
	require.Equal(t, "gimp", orphans[0].Name)
}
