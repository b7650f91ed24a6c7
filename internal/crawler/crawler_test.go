package crawler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("class C {}"), 0o644))
}

func TestCrawler_Expand(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b.cs"))
	writeFile(t, filepath.Join(root, "a.cs"))
	writeFile(t, filepath.Join(root, "ui", "Main.CS"))
	writeFile(t, filepath.Join(root, "ui", "readme.md"))
	writeFile(t, filepath.Join(root, "obj", "Generated.cs"))
	writeFile(t, filepath.Join(root, ".git", "x.cs"))

	single := filepath.Join(root, "b.cs")
	missing := filepath.Join(root, "gone.cs")

	t.Run("Files keep argument order", func(t *testing.T) {
		c := NewCrawler(false, nil)
		inputs, err := c.Expand([]string{single, missing, filepath.Join(root, "a.cs")})
		require.NoError(t, err)

		assert.Equal(t, []Input{
			{Path: single},
			{Path: missing, Missing: true},
			{Path: filepath.Join(root, "a.cs")},
		}, inputs)
	})

	t.Run("Directory without recursion is missing", func(t *testing.T) {
		c := NewCrawler(false, nil)
		inputs, err := c.Expand([]string{root})
		require.NoError(t, err)
		assert.Equal(t, []Input{{Path: root, Missing: true}}, inputs)
	})

	t.Run("Path under a regular file is missing", func(t *testing.T) {
		c := NewCrawler(true, nil)
		bad := filepath.Join(single, "Sub.cs")
		inputs, err := c.Expand([]string{bad, single})
		require.NoError(t, err)

		assert.Equal(t, []Input{
			{Path: bad, Missing: true},
			{Path: single},
		}, inputs)
	})

	t.Run("Recursive expansion is lexical and skips ignored dirs", func(t *testing.T) {
		c := NewCrawler(true, []string{".git", "obj"})
		inputs, err := c.Expand([]string{root})
		require.NoError(t, err)

		assert.Equal(t, []Input{
			{Path: filepath.Join(root, "a.cs")},
			{Path: filepath.Join(root, "b.cs")},
			{Path: filepath.Join(root, "ui", "Main.CS")},
		}, inputs)
	})
}
