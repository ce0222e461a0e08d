package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/grovetools/kebabify/errors"
	"github.com/grovetools/kebabify/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate runs the test from an empty directory with no global config.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("NO_COLOR", "1")
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func sampleProject(t *testing.T, dir string) string {
	t.Helper()
	src := filepath.Join(dir, "src")
	testutil.WriteTree(t, src, map[string]string{
		"myComponents/userCard.tsx":    "import { Avatar } from './avatarImage';\n",
		"myComponents/avatarImage.tsx": "export const Avatar = 1;\n",
		"index.ts":                     "export * from './myComponents/userCard';\n",
	})
	return src
}

func TestRootConvertsTree(t *testing.T) {
	dir := isolate(t)
	src := sampleProject(t, dir)

	stdout, _, err := execute(t, src, "--json")
	require.NoError(t, err)

	var summary map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(stdout), &summary))
	assert.Equal(t, "not-version-controlled", summary["treeState"])
	assert.Equal(t, false, summary["usedGitMove"])

	assert.Equal(t, []string{
		"index.ts",
		"my-components/",
		"my-components/avatar-image.tsx",
		"my-components/user-card.tsx",
	}, testutil.ReadTree(t, src))
	assert.Equal(t, "import { Avatar } from './avatar-image';\n", testutil.ReadFile(t, src, "my-components/user-card.tsx"))
	assert.Equal(t, "export * from './my-components/user-card';\n", testutil.ReadFile(t, src, "index.ts"))
}

func TestRootDryRun(t *testing.T) {
	dir := isolate(t)
	src := sampleProject(t, dir)
	before := testutil.ReadTree(t, src)

	stdout, _, err := execute(t, src, "--dry-run", "--no-color")
	require.NoError(t, err)
	assert.Contains(t, stdout, "src/myComponents → src/my-components")
	assert.Contains(t, stdout, "Would rename: 3 entries")
	assert.Equal(t, before, testutil.ReadTree(t, src))
	assert.Equal(t, "export * from './myComponents/userCard';\n", testutil.ReadFile(t, src, "index.ts"))
}

func TestRootConfigDisablesImports(t *testing.T) {
	dir := isolate(t)
	src := sampleProject(t, dir)
	testutil.WriteTree(t, dir, map[string]string{".kebabify.yml": "rewrite_imports: false\n"})

	_, _, err := execute(t, src)
	require.NoError(t, err)
	assert.Contains(t, testutil.ReadTree(t, src), "my-components/user-card.tsx")
	assert.Equal(t, "export * from './myComponents/userCard';\n", testutil.ReadFile(t, src, "index.ts"))
}

func TestRootFlagsOverrideConfig(t *testing.T) {
	dir := isolate(t)
	src := sampleProject(t, dir)
	testutil.WriteTree(t, dir, map[string]string{".kebabify.yml": "git_move: always\n"})

	_, _, err := execute(t, src, "--dry-run")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidInput, errors.GetCode(err))

	_, _, err = execute(t, src, "--dry-run", "--git-move=never")
	require.NoError(t, err)
}

func TestRootInvalidGitMoveFlag(t *testing.T) {
	dir := isolate(t)
	src := sampleProject(t, dir)

	_, _, err := execute(t, src, "--git-move=sometimes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid git move mode")
}

func TestRootDirtyTree(t *testing.T) {
	testutil.RequireGit(t)
	dir := isolate(t)
	testutil.InitGitRepo(t, dir)
	src := sampleProject(t, dir)
	testutil.CommitAll(t, dir, "initial")
	require.NoError(t, os.WriteFile(filepath.Join(src, "index.ts"), []byte("// changed\n"), 0644))

	_, _, err := execute(t, src)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeGitDirty, errors.GetCode(err))
	assert.Contains(t, testutil.ReadTree(t, src), "myComponents/")

	_, _, err = execute(t, src, "--force")
	require.NoError(t, err)
	assert.Contains(t, testutil.ReadTree(t, src), "my-components/")
	status := testutil.RunGitCommand(t, dir, "status", "--porcelain")
	assert.Contains(t, status, "R  src/myComponents/avatarImage.tsx -> src/my-components/avatar-image.tsx")
}

func TestExecuteExitCodes(t *testing.T) {
	dir := isolate(t)

	assert.Equal(t, 2, Execute(context.Background(), []string{}))
	assert.Equal(t, 2, Execute(context.Background(), []string{"--bogus", dir}))
	assert.Equal(t, 1, Execute(context.Background(), []string{filepath.Join(dir, "missing")}))
	assert.Equal(t, 0, Execute(context.Background(), []string{dir, "--json"}))
}

func TestVersionSubcommand(t *testing.T) {
	isolate(t)
	stdout, _, err := execute(t, "version", "--json")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"goVersion"`)
}
