package filex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) func() {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	return func() { _ = os.Chdir(old) }
}

func TestEnsureParentDir_CreatesNested(t *testing.T) {
	tmp := t.TempDir()
	target := filepath.Join(tmp, "a", "b", "store.db")

	require.NoError(t, EnsureParentDir(target))

	fi, err := os.Stat(filepath.Join(tmp, "a", "b"))
	require.NoError(t, err)
	require.True(t, fi.IsDir())
}

func TestEnsureParentDir_BareName(t *testing.T) {
	require.NoError(t, EnsureParentDir("store.db"))
}

func TestResolveTarget(t *testing.T) {
	tmp := t.TempDir()
	defer chdir(t, tmp)()

	cwd, err := os.Getwd()
	require.NoError(t, err)

	got, err := ResolveTarget("", "notes.txt")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(cwd, "notes.txt"), got)

	got, err = ResolveTarget(tmp, "../../etc/notes.txt")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(tmp, "notes.txt"), got, "name is reduced to its base")

	explicit := filepath.Join(tmp, "renamed.bin")
	got, err = ResolveTarget(explicit, "notes.txt")
	require.NoError(t, err)
	require.Equal(t, explicit, got)

	_, err = ResolveTarget(tmp, "")
	require.Error(t, err)
}

func TestSaveFile_WritesData(t *testing.T) {
	tmp := t.TempDir()
	dst := filepath.Join(tmp, "out", "copy.txt")

	got, err := SaveFile(dst, "notes.txt", []byte("hello"))
	require.NoError(t, err)
	require.Equal(t, dst, got)

	b, err := os.ReadFile(dst)
	require.NoError(t, err)
	require.Equal(t, "hello", string(b))
}
