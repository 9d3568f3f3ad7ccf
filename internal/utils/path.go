package utils

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
)

// AppName names the config directory.
const AppName = "openers"

// PathResolver finds corpus and config files relative to the binary, the
// working directory and the user's config dir.
type PathResolver struct {
	executableDir string
	homeDir       string
	configDir     string
}

// NewPathResolver creates a resolver anchored at the running executable.
func NewPathResolver() (*PathResolver, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}
	// symlinked installs should still find data next to the real binary
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return nil, err
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Could not determine home directory: %v", err)
		homeDir = os.TempDir()
	}

	pr := &PathResolver{
		executableDir: filepath.Dir(execPath),
		homeDir:       homeDir,
		configDir:     configDirFor(homeDir),
	}
	log.Debugf("PathResolver initialized: execDir=%s, configDir=%s", pr.executableDir, pr.configDir)
	return pr, nil
}

// configDirFor returns the platform config directory for the app
func configDirFor(homeDir string) string {
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

// GetCorpusPath resolves a word list file or chunk directory. Candidates are
// tried in order: absolute path, next to the executable, the working dir,
// then "data" dirs beside the executable and in the config dir. If nothing
// matches the executable-relative path is returned for error reporting.
func (pr *PathResolver) GetCorpusPath(userSpecifiedPath string) string {
	candidates := pr.corpusCandidates(userSpecifiedPath)
	for _, path := range candidates {
		if IsCorpusPath(path) {
			log.Debugf("Found corpus at: %s", path)
			return path
		}
		log.Debugf("Corpus candidate not valid: %s", path)
	}
	return filepath.Join(pr.executableDir, userSpecifiedPath)
}

func (pr *PathResolver) corpusCandidates(userSpecifiedPath string) []string {
	var candidates []string
	if filepath.IsAbs(userSpecifiedPath) {
		return append(candidates, userSpecifiedPath)
	}
	candidates = append(candidates, filepath.Join(pr.executableDir, userSpecifiedPath))
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, userSpecifiedPath))
	}
	return append(candidates,
		filepath.Join(pr.executableDir, "data"),
		filepath.Join(filepath.Dir(pr.executableDir), "data"),
		filepath.Join(pr.configDir, "data"),
	)
}

// IsCorpusPath reports whether path is a regular file or a directory that
// holds dict_*.bin chunk files.
func IsCorpusPath(path string) bool {
	stat, err := os.Stat(path)
	if err != nil {
		return false
	}
	if !stat.IsDir() {
		return true
	}
	matches, err := filepath.Glob(filepath.Join(path, "dict_*.bin"))
	return err == nil && len(matches) > 0
}
