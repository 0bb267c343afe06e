package completion

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

const (
	dirPerm  os.FileMode = 0755
	filePerm os.FileMode = 0644
)

// userDirs are the per-user base directories completion scripts are installed below
type userDirs struct {
	home   string
	data   string // $XDG_DATA_HOME or ~/.local/share
	config string // $XDG_CONFIG_HOME or ~/.config
}

func currentUserDirs() (userDirs, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return userDirs{}, fmt.Errorf("couldn't get user home directory: %w", err)
	}

	return newUserDirs(home, os.Getenv("XDG_DATA_HOME"), os.Getenv("XDG_CONFIG_HOME")), nil
}

// newUserDirs resolves the XDG base directories. Relative XDG values are invalid and ignored.
func newUserDirs(home, xdgData, xdgConfig string) userDirs {
	dirs := userDirs{
		home:   home,
		data:   filepath.Join(home, ".local", "share"),
		config: filepath.Join(home, ".config"),
	}
	if filepath.IsAbs(xdgData) {
		dirs.data = xdgData
	}
	if filepath.IsAbs(xdgConfig) {
		dirs.config = xdgConfig
	}

	return dirs
}

// pathsFor returns where shell looks for user completion scripts
func pathsFor(dirs userDirs, shell string) (CompletionPaths, error) {
	switch shell {
	case "bash":
		return CompletionPaths{
			Primary:  filepath.Join(dirs.data, "bash-completion", "completions"),
			Fallback: filepath.Join(dirs.home, ".bash_completion.d"),
			Comment:  "loaded on demand by bash-completion 2",
		}, nil
	case "zsh":
		return CompletionPaths{
			Primary:  filepath.Join(dirs.home, ".zsh", "completion"),
			Fallback: filepath.Join(dirs.home, ".zfunc"),
			Comment:  "must be part of $fpath",
		}, nil
	case "fish":
		return CompletionPaths{
			Primary:   filepath.Join(dirs.config, "fish", "completions"),
			Fallback:  filepath.Join(dirs.data, "fish", "vendor_completions.d"),
			Extension: ".fish",
			Comment:   "fish user completions directory",
		}, nil
	}

	return CompletionPaths{}, fmt.Errorf("unsupported shell: %s", shell)
}

// ensurePermission sets perm on path unless it already has it. Windows has no POSIX permissions.
func ensurePermission(path string, perm os.FileMode) error {
	if runtime.GOOS == "windows" {
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}
	if actual := info.Mode().Perm(); actual != perm {
		if err := os.Chmod(path, perm); err != nil {
			return fmt.Errorf("failed to set permissions on %s from %o to %o: %w", path, actual, perm, err)
		}
	}

	return nil
}
