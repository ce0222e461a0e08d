package pathutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpand(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("KEBABIFY_TEST_DIR", "/tmp/kebab")

	tests := []struct {
		in   string
		want string
	}{
		{"~", home},
		{"~/src", filepath.Join(home, "src")},
		{"$KEBABIFY_TEST_DIR/app", "/tmp/kebab/app"},
		{"/already/absolute", "/already/absolute"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Expand(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDedupRoots(t *testing.T) {
	base := t.TempDir()
	a := filepath.Join(base, "a")
	b := filepath.Join(base, "b")
	require.NoError(t, os.MkdirAll(a, 0755))
	require.NoError(t, os.MkdirAll(b, 0755))
	link := filepath.Join(base, "link-to-a")
	require.NoError(t, os.Symlink(a, link))

	roots, err := DedupRoots([]string{a, b, link, filepath.Join(a, "..", "a")})
	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, roots)
}

func TestDedupRootsDropsNestedRoots(t *testing.T) {
	base := t.TempDir()
	outer := filepath.Join(base, "src")
	inner := filepath.Join(outer, "FooBar")
	sibling := filepath.Join(base, "srcOther")
	require.NoError(t, os.MkdirAll(inner, 0755))
	require.NoError(t, os.MkdirAll(sibling, 0755))

	tests := []struct {
		name  string
		roots []string
		want  []string
	}{
		{"inner after outer", []string{outer, inner}, []string{outer}},
		{"inner before outer", []string{inner, outer}, []string{outer}},
		{"shared prefix is not nesting", []string{outer, sibling}, []string{outer, sibling}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roots, err := DedupRoots(tt.roots)
			require.NoError(t, err)
			assert.Equal(t, tt.want, roots)
		})
	}
}

func TestIsWithin(t *testing.T) {
	sep := string(filepath.Separator)
	assert.True(t, IsWithin(sep+"a", sep+"a"+sep+"b"))
	assert.False(t, IsWithin(sep+"a", sep+"a"))
	assert.False(t, IsWithin(sep+"a", sep+"ab"))
	assert.True(t, IsWithin(sep, sep+"a"))
}
