package git

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/grovetools/kebabify/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	output := "# branch.oid 1234\x00" +
		"# branch.head main\x00" +
		"# branch.upstream origin/main\x00" +
		"# branch.ab +2 -1\x00" +
		"1 .M N... 100644 100644 100644 aaa bbb src/fooBar.ts\x00" +
		"1 A. N... 000000 100644 100644 000 ccc with space.ts\x00" +
		"2 R. N... 100644 100644 100644 ddd ddd R100 new-name.ts\x00oldName.ts\x00" +
		"u UU N... 100644 100644 100644 100644 e1 e2 e3 conflicted.ts\x00" +
		"? scratchPad.ts\x00"

	status := parseStatus(output)

	assert.Equal(t, "main", status.Branch)
	assert.True(t, status.HasUpstream)
	assert.Equal(t, 2, status.AheadCount)
	assert.Equal(t, 1, status.BehindCount)
	assert.True(t, status.IsDirty)
	assert.Equal(t, 1, status.UntrackedCount)

	require.Len(t, status.Entries, 5)
	assert.Equal(t, StatusEntry{Kind: EntryChanged, XY: ".M", Path: "src/fooBar.ts"}, status.Entries[0])
	assert.Equal(t, "with space.ts", status.Entries[1].Path)
	assert.Equal(t, StatusEntry{Kind: EntryRenamed, XY: "R.", Path: "new-name.ts", OrigPath: "oldName.ts"}, status.Entries[2])
	assert.Equal(t, EntryUnmerged, status.Entries[3].Kind)
	assert.Equal(t, "conflicted.ts", status.Entries[3].Path)

	tracked := status.TrackedChanges()
	assert.Len(t, tracked, 4)
	for _, e := range tracked {
		assert.NotEqual(t, "scratchPad.ts", e.Path)
	}
}

func TestGetStatus(t *testing.T) {
	t.Run("non-git directory", func(t *testing.T) {
		testutil.RequireGit(t)
		tempDir := t.TempDir()
		if IsGitRepo(tempDir) {
			t.Skip("temp dir is inside a git work tree")
		}
		_, err := GetStatus(tempDir)
		assert.Error(t, err)
	})

	t.Run("clean repo", func(t *testing.T) {
		tempDir := t.TempDir()
		testutil.InitGitRepo(t, tempDir)

		status, err := GetStatus(tempDir)
		require.NoError(t, err)
		assert.False(t, status.IsDirty)
		assert.Empty(t, status.Entries)
		assert.NotEmpty(t, status.Branch)
	})

	t.Run("with changes", func(t *testing.T) {
		tempDir := t.TempDir()
		testutil.InitGitRepo(t, tempDir)

		require.NoError(t, os.WriteFile(filepath.Join(tempDir, "staged.txt"), []byte("staged"), 0644))
		testutil.RunGitCommand(t, tempDir, "add", "staged.txt")
		require.NoError(t, os.WriteFile(filepath.Join(tempDir, "README.md"), []byte("modified"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(tempDir, "untracked.txt"), []byte("untracked"), 0644))

		status, err := GetStatus(tempDir)
		require.NoError(t, err)
		assert.True(t, status.IsDirty)
		assert.Equal(t, 1, status.StagedCount, "staged.txt should be staged")
		assert.Equal(t, 1, status.ModifiedCount, "README.md should be modified")
		assert.Equal(t, 1, status.UntrackedCount, "untracked.txt should be untracked")
		assert.Len(t, status.TrackedChanges(), 2)
	})

	t.Run("pathspec limits entries", func(t *testing.T) {
		tempDir := t.TempDir()
		testutil.InitGitRepo(t, tempDir)
		testutil.CreateCommit(t, tempDir, "inside/a.ts", "a")
		testutil.CreateCommit(t, tempDir, "outside/b.ts", "b")
		require.NoError(t, os.WriteFile(filepath.Join(tempDir, "outside", "b.ts"), []byte("changed"), 0644))

		status, err := GetStatus(tempDir, "inside")
		require.NoError(t, err)
		assert.Empty(t, status.TrackedChanges())

		status, err = GetStatus(tempDir, "outside")
		require.NoError(t, err)
		require.Len(t, status.TrackedChanges(), 1)
		assert.Equal(t, "outside/b.ts", status.TrackedChanges()[0].Path)
	})
}
