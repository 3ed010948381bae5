package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsDevRun(t *testing.T) {
	// This test runs inside "go test", so IsDevRun() MUST return true.
	assert.True(t, IsDevRun())
}

func TestResolveDataDir(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	exe, err := os.Executable()
	require.NoError(t, err)
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}

	devDir := t.TempDir()

	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{
			name: "Explicit Data Dir Wins",
			cfg:  Config{Mode: ModePackaged, DataDir: devDir},
			want: devDir,
		},
		{
			name: "Relative Data Dir Is Made Absolute",
			cfg:  Config{DataDir: "data"},
			want: filepath.Join(wd, "data"),
		},
		{
			name: "Packaged Uses Executable Dir",
			cfg:  Config{Mode: ModePackaged},
			want: filepath.Dir(exe),
		},
		{
			name: "Dev Uses Dev Dir",
			cfg:  Config{Mode: ModeDev, DevDir: devDir},
			want: devDir,
		},
		{
			name: "Auto Under Go Test Is Dev",
			cfg:  Config{Mode: ModeAuto, DevDir: devDir},
			want: devDir,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveDataDir(tt.cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, filepath.IsAbs(got))
		})
	}

	t.Run("Unknown Mode", func(t *testing.T) {
		_, err := ResolveDataDir(Config{Mode: "portable"})
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestResolveDataDir_DevFallback(t *testing.T) {
	t.Run("Uses Project Root", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte("module example.com/app\n"), 0644))
		nested := filepath.Join(root, "cmd", "app")
		require.NoError(t, os.MkdirAll(nested, 0755))
		t.Chdir(nested)

		got, err := ResolveDataDir(Config{Mode: ModeDev})
		require.NoError(t, err)
		assert.Equal(t, evalDir(t, root), evalDir(t, got))
	})

	t.Run("Same Dir From Anywhere In Project", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0755))
		deep := filepath.Join(root, "a", "b")
		require.NoError(t, os.MkdirAll(deep, 0755))

		t.Chdir(root)
		fromRoot, err := ResolveDataDir(Config{Mode: ModeDev})
		require.NoError(t, err)

		t.Chdir(deep)
		fromDeep, err := ResolveDataDir(Config{Mode: ModeDev})
		require.NoError(t, err)
		assert.Equal(t, fromRoot, fromDeep)
	})
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte("module example.com/app\n"), 0644))
	nested := filepath.Join(root, "pkg", "x")
	require.NoError(t, os.MkdirAll(nested, 0755))

	got, ok := FindProjectRoot(nested)
	require.True(t, ok)
	assert.Equal(t, root, got)

	got, ok = FindProjectRoot(root)
	require.True(t, ok)
	assert.Equal(t, root, got)
}

// evalDir resolves symlinks so temp dirs compare equal on macOS.
func evalDir(t *testing.T, dir string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	return resolved
}
