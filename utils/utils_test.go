package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindRoot(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "config"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "config", "config.yaml"), nil, 0o644))
	deep := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(deep, 0o755))

	got, err := FindRoot(deep)
	require.NoError(t, err)
	assert.Equal(t, root, got)
}

func TestFindRootNotFound(t *testing.T) {
	// 临时目录外层可能存在 go.mod，只检查出错时的信息
	if _, err := FindRoot(string(filepath.Separator)); err != nil {
		assert.Contains(t, err.Error(), "未找到项目根目录")
	}
}

func TestGetProjectRootFromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(RootEnv, dir)

	got, err := GetProjectRoot()
	require.NoError(t, err)
	assert.Equal(t, dir, got)

	t.Setenv(RootEnv, filepath.Join(dir, "missing"))
	_, err = GetProjectRoot()
	require.Error(t, err)
}

func TestGetProjectRootFromSource(t *testing.T) {
	t.Setenv(RootEnv, "")

	got, err := GetProjectRoot()
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(got, "go.mod"))
}
