package utils

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
)

// AppName names the config and data directories.
const AppName = "kotoba"

// PathResolver locates the config directory and bundled data files of the binary.
type PathResolver struct {
	executableDir string
	homeDir       string
	configDir     string
}

// NewPathResolver determines the executable location and the platform config directory.
func NewPathResolver() (*PathResolver, error) {
	execDir, err := GetExecutableDir()
	if err != nil {
		return nil, err
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Could not determine home directory: %v", err)
		homeDir = os.TempDir()
	}
	pr := &PathResolver{
		executableDir: execDir,
		homeDir:       homeDir,
		configDir:     getConfigDir(homeDir),
	}
	log.Debugf("PathResolver initialized: execDir=%s, configDir=%s", pr.executableDir, pr.configDir)
	return pr, nil
}

// getConfigDir returns the appropriate config directory for the platform
func getConfigDir(homeDir string) string {
	switch runtime.GOOS {
	case "linux":
		if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, AppName)
		}
		return filepath.Join(homeDir, ".config", AppName)
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, AppName)
		}
		return filepath.Join(homeDir, "AppData", "Roaming", AppName)
	default:
		return filepath.Join(homeDir, ".config", AppName)
	}
}

// ConfigDir returns the config directory.
func (pr *PathResolver) ConfigDir() string { return pr.configDir }

// ResolveDataFile finds a data file named by a possibly relative path. It tries, in order:
// the path itself, the path next to the executable, and the data directories of the
// executable and the config dir. A file found nowhere resolves to the path as given.
func (pr *PathResolver) ResolveDataFile(path string) string {
	for _, candidate := range pr.dataFileCandidates(path) {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			log.Debugf("Resolved data file %s to %s", path, candidate)
			return candidate
		}
	}
	return path
}

func (pr *PathResolver) dataFileCandidates(path string) []string {
	if filepath.IsAbs(path) {
		return []string{path}
	}
	base := filepath.Base(path)
	return []string{
		path,
		filepath.Join(pr.executableDir, path),
		filepath.Join(pr.executableDir, "data", base),
		filepath.Join(filepath.Dir(pr.executableDir), "data", base),
		filepath.Join(pr.configDir, "data", base),
	}
}

// ResolveStatePath places a relative state file (the database) in the config directory.
// Absolute paths and ":memory:" are returned unchanged.
func (pr *PathResolver) ResolveStatePath(path string) string {
	if path == ":memory:" || filepath.IsAbs(path) {
		return path
	}
	if err := EnsureDir(pr.configDir); err != nil {
		log.Warnf("Cannot create %s: %v. Using %s relative to the working directory", pr.configDir, err, path)
		return path
	}
	return filepath.Join(pr.configDir, path)
}
