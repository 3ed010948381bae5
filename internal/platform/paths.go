package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// IsDevRun checks if the current process is running via `go run` or `go test`.
// It relies on the fact that these commands build binaries in temporary directories.
func IsDevRun() bool {
	exe, err := os.Executable()
	if err != nil {
		return false
	}

	if strings.HasPrefix(strings.ToLower(exe), strings.ToLower(os.TempDir())) {
		return true
	}

	// go test binaries
	if strings.HasSuffix(exe, ".test") || strings.HasSuffix(exe, ".test.exe") {
		return true
	}

	return false
}

// ResolveDataDir returns the absolute directory holding the document.
//
// An explicit DataDir wins. Otherwise packaged mode uses the directory of the
// executable (symlinks resolved) and dev mode uses DevDir, else the project root
// enclosing the working directory (see FindProjectRoot), else the working
// directory itself. Auto mode is dev when IsDevRun reports true.
func ResolveDataDir(cfg Config) (string, error) {
	if cfg.DataDir != "" {
		return filepath.Abs(cfg.DataDir)
	}

	mode := cfg.Mode
	if mode == "" || mode == ModeAuto {
		mode = ModePackaged
		if IsDevRun() {
			mode = ModeDev
		}
	}

	switch mode {
	case ModePackaged:
		exe, err := os.Executable()
		if err != nil {
			return "", fmt.Errorf("failed to locate executable: %w", err)
		}
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		return filepath.Dir(exe), nil
	case ModeDev:
		if cfg.DevDir != "" {
			return filepath.Abs(cfg.DevDir)
		}
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		if root, ok := FindProjectRoot(wd); ok {
			return root, nil
		}
		return wd, nil
	default:
		return "", fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, mode)
	}
}

// FindProjectRoot walks upwards from startDir to the first directory holding a
// go.mod file or a .git directory. The second result is false when the
// filesystem root is reached without a match.
func FindProjectRoot(startDir string) (string, bool) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false
	}

	for {
		if hasFile(dir, "go.mod") || hasFile(dir, ".git") {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func hasFile(dir, name string) bool {
	_, err := os.Stat(filepath.Join(dir, name))
	return err == nil
}
