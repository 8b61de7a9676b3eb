package dbfmt

import (
	"testing"

	"github.com/fcanata061/srcpkg/internal/revdep"
	"github.com/stretchr/testify/require"
)

func TestEncodeRevdepReportJSON(t *testing.T) {
	broken := []revdep.Broken{{Package: "gimp", MissingLibrary: []string{"libpng16.so.16"}}}
	out, err := EncodeRevdepReport(broken, JSON)
	require.NoError(t, err)
	require.Contains(t, string(out), "\"package\": \"gimp\"")
}

func TestEncodeRevdepReportYAML(t *testing.T) {
	broken := []revdep.Broken{{Package: "gimp", MissingLibrary: []string{"libpng16.so.16"}}}
	out, err := EncodeRevdepReport(broken, YAML)
	require.NoError(t, err)
	require.Contains(t, string(out), "package: gimp")
}

func TestEncodeRevdepReportEmptyIsEmptyArrayNotNull(t *testing.T) {
	out, err := EncodeRevdepReport(nil, JSON)
	require.NoError(t, err)
	require.Equal(t, "[]", string(out))
}
