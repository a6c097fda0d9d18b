package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	for _, dir := range []string{"docs", "skip/nested"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, dir), 0755))
	}

	files := map[string]string{
		"readme.md":             "hello",
		"docs/guide.md":         "guide",
		"skip/hidden.md":        "",
		"skip/nested/deeper.md": "",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(content), 0644))
	}

	return root
}

func names(paths []Path) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		out = append(out, p.FileName)
	}
	return out
}

func TestInFolder(t *testing.T) {
	root := createTree(t)

	tests := []struct {
		name     string
		opts     WalkOptions
		expected []string
	}{
		{
			name:     "files_only",
			opts:     WalkOptions{IncludeFiles: true},
			expected: []string{"guide.md", "readme.md", "hidden.md", "deeper.md"},
		},
		{
			name:     "folders_only",
			opts:     WalkOptions{IncludeFolders: true},
			expected: []string{"docs", "skip", "nested"},
		},
		{
			name: "ignored_prefix",
			opts: WalkOptions{
				IncludeFiles:   true,
				IncludeFolders: true,
				IgnorePrefixes: []string{filepath.Join(root, "skip")},
			},
			expected: []string{"docs", "guide.md", "readme.md"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paths, err := InFolder(root, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, names(paths))
		})
	}
}

func TestInFolder_FileDetails(t *testing.T) {
	root := createTree(t)

	paths, err := InFolder(root, WalkOptions{IncludeFiles: true})
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	guide := paths[0]
	assert.Equal(t, filepath.Join(root, "docs", "guide.md"), guide.Path)
	assert.Equal(t, filepath.Join(root, "docs"), guide.Directory)
	assert.Equal(t, int64(5), guide.Size)
	assert.False(t, guide.IsDir)
}

func TestInFolder_Errors(t *testing.T) {
	root := createTree(t)

	_, err := InFolder(filepath.Join(root, "missing"), WalkOptions{IncludeFiles: true})
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = InFolder(filepath.Join(root, "readme.md"), WalkOptions{IncludeFiles: true})
	assert.Error(t, err)
}

func TestIsIgnored(t *testing.T) {
	assert.True(t, IsIgnored("/data/tmp/file", []string{"/data/tmp"}))
	assert.False(t, IsIgnored("/data/file", []string{"/data/tmp"}))
	assert.False(t, IsIgnored("/data/file", []string{""}))
	assert.False(t, IsIgnored("/data/file", nil))
}
