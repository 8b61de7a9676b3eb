package version

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompareNumericBeforeAlpha(t *testing.T) {
	require.True(t, LessThan("1.2", "1.2a"))
}

func TestCompareNumericOrdering(t *testing.T) {
	require.True(t, LessThan("1.2", "1.10"))
	require.True(t, GreaterThan("1.10", "1.2"))
}

func TestCompareShorterIsLess(t *testing.T) {
	require.True(t, LessThan("1.2", "1.2.1"))
	require.Equal(t, 0, Compare("1.2", "1.2"))
}

func TestCompareMonotoneUnderAppend(t *testing.T) {
	for _, v := range []string{"1.0", "2.5.3", "abc", "1.0-rc1"} {
		require.True(t, LessThan(v, v+".1"), "expected %q < %q", v, v+".1")
	}
}

func TestCompareAlphabeticLexicographic(t *testing.T) {
	require.True(t, LessThan("1.2a", "1.2b"))
}
