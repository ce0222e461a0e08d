package scanner

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grovetools/kebabify/errors"
	"github.com/grovetools/kebabify/ignore"
	"github.com/grovetools/kebabify/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func itemsByPath(result *ScanResult) map[string]FileSystemItem {
	out := make(map[string]FileSystemItem, len(result.Items))
	for _, item := range result.Items {
		out[item.OriginalPath] = item
	}
	return out
}

func TestScanComputesTargets(t *testing.T) {
	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{
		"fooBar/BazQux.ts":          "export const x = 1\n",
		"fooBar/innerDir/myFile.js": "",
		"already-kebab/index.ts":    "",
		"README.md":                 "",
		"node_modules/someLib/a.js": "",
		".hidden/camelCase.ts":      "",
		"dist/bundleOut.js":         "",
	})

	result, err := New(Options{}).Scan([]string{root})
	require.NoError(t, err)

	items := itemsByPath(result)
	assert.Equal(t, len(result.Items), result.TotalItems)

	dir := items["fooBar"]
	assert.True(t, dir.IsDirectory)
	assert.True(t, dir.NeedsRename)
	assert.Equal(t, "foo-bar", dir.NewPath)

	file := items["fooBar/BazQux.ts"]
	assert.False(t, file.IsDirectory)
	assert.True(t, file.NeedsRename)
	assert.Equal(t, "foo-bar/baz-qux.ts", file.NewPath)

	nested := items["fooBar/innerDir/myFile.js"]
	assert.Equal(t, "foo-bar/inner-dir/my-file.js", nested.NewPath)

	kept := items["already-kebab/index.ts"]
	assert.False(t, kept.NeedsRename)
	assert.Equal(t, "already-kebab/index.ts", kept.NewPath)

	readme := items["README.md"]
	assert.True(t, readme.NeedsRename)
	assert.Equal(t, "readme.md", readme.NewPath)

	for p := range items {
		assert.NotContains(t, p, "node_modules")
		assert.NotContains(t, p, ".hidden")
		assert.NotContains(t, p, "dist")
	}
}

func TestChildUnderUnchangedNameGetsConvertedParent(t *testing.T) {
	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{
		"myDir/index.ts": "",
	})

	result, err := New(Options{}).Scan([]string{root})
	require.NoError(t, err)

	child := itemsByPath(result)["myDir/index.ts"]
	assert.False(t, child.NeedsRename, "basename unchanged")
	assert.Equal(t, "my-dir/index.ts", child.NewPath)
}

func TestNeedsRenameMatchesBasenameChange(t *testing.T) {
	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{
		"aB/cD/eF.ts": "",
		"aB/plain.ts": "",
		"x/yZ":        "",
	})

	result, err := New(Options{}).Scan([]string{root})
	require.NoError(t, err)

	for _, item := range result.Items {
		origBase := filepath.Base(item.OriginalPath)
		newBase := filepath.Base(item.NewPath)
		assert.Equal(t, origBase != newBase, item.NeedsRename, item.OriginalPath)
		assert.Equal(t,
			strings.Count(item.OriginalPath, "/"),
			strings.Count(item.NewPath, "/"))
	}
}

func TestScanExtraIgnorePatterns(t *testing.T) {
	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{
		"vendor/libThing.js": "",
		"src/appMain.ts":     "",
	})

	matcher, err := ignore.NewMatcher([]string{"vendor"})
	require.NoError(t, err)

	result, err := New(Options{Ignore: matcher}).Scan([]string{root})
	require.NoError(t, err)

	items := itemsByPath(result)
	assert.Contains(t, items, "src/appMain.ts")
	assert.NotContains(t, items, "vendor")
	assert.NotContains(t, items, "vendor/libThing.js")
}

func TestScanMultipleRoots(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	testutil.WriteTree(t, first, map[string]string{"oneFile.ts": ""})
	testutil.WriteTree(t, second, map[string]string{"twoFile.ts": ""})

	result, err := New(Options{}).Scan([]string{first, second})
	require.NoError(t, err)
	require.Len(t, result.Items, 2)
	assert.Equal(t, first, result.Items[0].Root)
	assert.Equal(t, second, result.Items[1].Root)
	assert.Len(t, result.Pending(), 2)
}

func TestScanRootErrors(t *testing.T) {
	t.Run("missing root", func(t *testing.T) {
		_, err := New(Options{}).Scan([]string{filepath.Join(t.TempDir(), "nope")})
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrCodeNotFound))
	})

	t.Run("file root", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "file.txt")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0644))
		_, err := New(Options{}).Scan([]string{file})
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrCodeNotADirectory))
	})

	t.Run("validates all roots before walking", func(t *testing.T) {
		good := t.TempDir()
		_, err := New(Options{}).Scan([]string{good, filepath.Join(good, "missing")})
		assert.True(t, errors.Is(err, errors.ErrCodeNotFound))
	})
}
