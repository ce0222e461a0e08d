package testutil

import (
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

// RequireGit skips the test if git is not available
func RequireGit(t *testing.T) {
	t.Helper()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
}

// InitGitRepo initializes a git repository in the given directory
func InitGitRepo(t *testing.T, dir string) {
	t.Helper()
	RequireGit(t)

	RunGitCommand(t, dir, "init")
	RunGitCommand(t, dir, "config", "user.name", "Test User")
	RunGitCommand(t, dir, "config", "user.email", "test@example.com")
	RunGitCommand(t, dir, "config", "core.ignorecase", "false")

	// Create initial commit
	testFile := filepath.Join(dir, "README.md")
	if err := os.WriteFile(testFile, []byte("# Test Project\n"), 0600); err != nil {
		t.Fatalf("Failed to create README: %v", err)
	}

	RunGitCommand(t, dir, "add", ".")
	RunGitCommand(t, dir, "commit", "-m", "Initial commit")

	// Ensure we have a main branch (rename from master if needed)
	cmd := exec.Command("git", "branch", "-m", "main")
	cmd.Dir = dir
	_ = cmd.Run() // Ignore error as branch might already be named main
}

// RunGitCommand runs a git command in the given directory
func RunGitCommand(t *testing.T, dir string, args ...string) string {
	t.Helper()

	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v failed with output: %s", args, string(output))
	return string(output)
}

// CommitAll stages everything under dir and commits it
func CommitAll(t *testing.T, dir, message string) {
	t.Helper()

	RunGitCommand(t, dir, "add", "-A")
	RunGitCommand(t, dir, "commit", "-m", message)
}

// CreateCommit creates a file and commits it
func CreateCommit(t *testing.T, dir, filename, content string) {
	t.Helper()

	filePath := filepath.Join(dir, filename)
	require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
	if err := os.WriteFile(filePath, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to create file %s: %v", filename, err)
	}

	RunGitCommand(t, dir, "add", filename)
	RunGitCommand(t, dir, "commit", "-m", "Add "+filename)
}

// WriteTree creates the given files (slash separated paths relative to
// root) along with their parent directories.
func WriteTree(t *testing.T, root string, files map[string]string) {
	t.Helper()

	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	}
}

// ReadTree lists every file and directory below root as sorted slash
// separated relative paths. Directories get a trailing slash.
func ReadTree(t *testing.T, root string) []string {
	t.Helper()

	var out []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == root {
			return nil
		}
		if d.IsDir() && d.Name() == ".git" {
			return filepath.SkipDir
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			rel += "/"
		}
		out = append(out, rel)
		return nil
	})
	require.NoError(t, err)
	sort.Strings(out)
	return out
}

// ReadFile returns the content of a slash separated path below root
func ReadFile(t *testing.T, root, rel string) string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}
