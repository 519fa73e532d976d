package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// AppName is the directory name filebak uses under XDG base directories.
const AppName = "filebak"

// Sentinel errors for path resolution.
var (
	// ErrHomeDirNotFound indicates the user's home directory could not be determined.
	ErrHomeDirNotFound = errors.New("home directory not found")
)

// DefaultDirPerm is the default permission for newly created directories (private).
const DefaultDirPerm = 0o700

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm (0700) is used.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// Home returns the user's home directory.
// Note: It returns an empty string on error. Use ResolveHome for proper
// error handling.
func Home() string {
	h, _ := ResolveHome()
	return h
}

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrHomeDirNotFound, err.Error())
	}
	return home, nil
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
func ConfigHome() string {
	return xdg.ConfigHome
}

// DataHome returns the XDG data home directory.
// On Linux: ~/.local/share
// On macOS: ~/Library/Application Support
func DataHome() string {
	return xdg.DataHome
}

// ConfigDir returns filebak's configuration directory.
// On Linux: ~/.config/filebak
func ConfigDir() string {
	return filepath.Join(ConfigHome(), AppName)
}

// DefaultDestination returns the default backup destination root.
// On Linux: ~/.local/share/filebak/backups
func DefaultDestination() string {
	return filepath.Join(DataHome(), AppName, "backups")
}

// ExpandHome expands a leading ~ to the user's home directory.
// Paths without the prefix are returned unchanged.
func ExpandHome(path string) string {
	if path == "~" {
		return Home()
	}
	if len(path) > 1 && path[0] == '~' && path[1] == filepath.Separator {
		return filepath.Join(Home(), path[2:])
	}
	return path
}
