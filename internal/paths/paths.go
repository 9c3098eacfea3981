package paths

import (
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// AppName is used for directory naming under the XDG base directories.
const AppName = "cfgvault"

// Sentinel errors for path resolution.
var (
	// ErrHomeDirNotFound indicates the user's home directory could not be determined.
	ErrHomeDirNotFound = errors.New("home directory not found")

	// ErrUnknownConfig indicates a requested well-known config name is not in the catalog.
	ErrUnknownConfig = errors.New("unknown config name")
)

// DefaultDirPerm is the default permission for newly created directories (private).
const DefaultDirPerm = 0o700

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm (0700) is used.
// This function is idempotent; it returns nil if the directory already exists.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// Home returns the user's home directory.
// Note: It returns an empty string on error.
// Use ResolveHome for proper error handling.
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
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// ConfigDir returns the directory holding the cfgvault config file.
// Returns: <ConfigHome>/cfgvault/
func ConfigDir() string {
	return filepath.Join(ConfigHome(), AppName)
}

// DefaultBackupRoot returns the default directory under which backup sets
// are created.
// Returns: <DataHome>/cfgvault/backups/
func DefaultBackupRoot() string {
	return filepath.Join(xdg.DataHome, AppName, "backups")
}

// ExpandHome expands a leading ~ to the user's home directory.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	if path == "~" {
		return home
	}

	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}

	return path
}

// Hostname returns the local host name, or "unknown" if it cannot be determined.
func Hostname() string {
	h, err := os.Hostname()
	if err != nil || h == "" {
		return "unknown"
	}
	return h
}

// Username returns the current user's name, or "unknown" if it cannot be determined.
func Username() string {
	u, err := user.Current()
	if err != nil || u.Username == "" {
		return "unknown"
	}
	return u.Username
}

// KnownConfig describes a well-known configuration file location.
// The engine itself never discovers paths; this catalog is resolved at the
// CLI edge and the resulting paths are handed in.
type KnownConfig struct {
	// Name is the short identifier used on the command line (e.g. "git").
	Name string

	// Path is the resolved absolute path to the configuration file.
	Path string
}

// knownConfigs maps short names to home-relative config file locations.
// Paths use ~ notation and are expanded at lookup time.
var knownConfigs = map[string]string{
	"git":      "~/.gitconfig",
	"ssh":      "~/.ssh/config",
	"bash":     "~/.bashrc",
	"zsh":      "~/.zshrc",
	"vim":      "~/.vimrc",
	"tmux":     "~/.tmux.conf",
	"starship": "~/.config/starship.toml",
}

// windowsKnownConfigs overrides or extends the catalog on Windows.
var windowsKnownConfigs = map[string]string{
	"terminal":   "~/AppData/Local/Packages/Microsoft.WindowsTerminal_8wekyb3d8bbwe/LocalState/settings.json",
	"powershell": "~/Documents/PowerShell/Microsoft.PowerShell_profile.ps1",
}

// KnownConfigNames returns the sorted short names of all catalog entries
// applicable to the current platform.
func KnownConfigNames() []string {
	names := make([]string, 0, len(knownConfigs)+len(windowsKnownConfigs))
	for name := range knownConfigs {
		names = append(names, name)
	}
	if runtime.GOOS == "windows" {
		for name := range windowsKnownConfigs {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// LookupKnownConfig resolves a catalog name to its config file location.
// Returns ErrUnknownConfig for names not in the catalog.
func LookupKnownConfig(name string) (KnownConfig, error) {
	rel, ok := knownConfigs[name]
	if !ok && runtime.GOOS == "windows" {
		rel, ok = windowsKnownConfigs[name]
	}
	if !ok {
		return KnownConfig{}, errors.Wrapf(ErrUnknownConfig, "%q", name)
	}
	return KnownConfig{Name: name, Path: ExpandHome(rel)}, nil
}
