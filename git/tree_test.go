package git

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/grovetools/kebabify/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckTrees(t *testing.T) {
	t.Run("not version controlled", func(t *testing.T) {
		testutil.RequireGit(t)
		dir := t.TempDir()
		if IsGitRepo(dir) {
			t.Skip("temp dir is inside a git work tree")
		}

		status, err := CheckTrees([]string{dir})
		require.NoError(t, err)
		assert.Equal(t, NotVersionControlled, status.State)
		assert.False(t, status.FullyVersioned())
		assert.Equal(t, []string{dir}, status.Unversioned)
	})

	t.Run("clean", func(t *testing.T) {
		repo := t.TempDir()
		testutil.InitGitRepo(t, repo)
		testutil.CreateCommit(t, repo, "src/fooBar.ts", "x")
		// untracked files never make a tree dirty
		require.NoError(t, os.WriteFile(filepath.Join(repo, "src", "newFile.ts"), []byte("y"), 0644))

		status, err := CheckTrees([]string{filepath.Join(repo, "src")})
		require.NoError(t, err)
		assert.Equal(t, Clean, status.State)
		assert.True(t, status.FullyVersioned())
		assert.Len(t, status.Repositories, 1)
		assert.Empty(t, status.DirtyFiles)
	})

	t.Run("dirty", func(t *testing.T) {
		repo := t.TempDir()
		testutil.InitGitRepo(t, repo)
		testutil.CreateCommit(t, repo, "src/fooBar.ts", "x")
		require.NoError(t, os.WriteFile(filepath.Join(repo, "src", "fooBar.ts"), []byte("changed"), 0644))

		status, err := CheckTrees([]string{filepath.Join(repo, "src")})
		require.NoError(t, err)
		assert.Equal(t, Dirty, status.State)
		require.Len(t, status.DirtyFiles, 1)
		assert.Equal(t, "fooBar.ts", filepath.Base(status.DirtyFiles[0]))
		assert.Equal(t, status.Repositories, status.DirtyRepositories)
	})

	t.Run("changes outside checked directory are ignored", func(t *testing.T) {
		repo := t.TempDir()
		testutil.InitGitRepo(t, repo)
		testutil.CreateCommit(t, repo, "src/a.ts", "a")
		testutil.CreateCommit(t, repo, "docs/b.md", "b")
		require.NoError(t, os.WriteFile(filepath.Join(repo, "docs", "b.md"), []byte("changed"), 0644))

		status, err := CheckTrees([]string{filepath.Join(repo, "src")})
		require.NoError(t, err)
		assert.Equal(t, Clean, status.State)
	})
}

func TestTreeStateString(t *testing.T) {
	assert.Equal(t, "clean", Clean.String())
	assert.Equal(t, "dirty", Dirty.String())
	assert.Equal(t, "not-version-controlled", NotVersionControlled.String())
}
