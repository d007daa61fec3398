package config

import (
	"os"
	"path/filepath"

	"github.com/aic/aic/internal/config/data"
)

const AppName = "aic"

var (
	// AppConfigDir is ~/.config/aic
	AppConfigDir string

	// AppDataDir is ~/.local/share/aic
	AppDataDir string

	// AppStateDir is ~/.local/state/aic
	AppStateDir string

	// AppConfigFile is ~/.config/aic/aic.yaml
	AppConfigFile string

	// AppEndpointsFile is ~/.config/aic/endpoints.ini
	AppEndpointsFile string

	// AppHotkeysFile is ~/.config/aic/hotkeys.yaml
	AppHotkeysFile string

	// AppAliasesFile is ~/.config/aic/aliases.yaml
	AppAliasesFile string

	// AppEndpointsDir is ~/.local/share/aic/endpoints
	AppEndpointsDir string

	// AppLogFile is ~/.local/state/aic/aic.log
	AppLogFile string
)

// InitLocs initializes all application directory paths.
// It respects XDG environment variables if set.
func InitLocs() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = filepath.Join(home, ".config")
	}
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = filepath.Join(home, ".local", "share")
	}
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		stateHome = filepath.Join(home, ".local", "state")
	}

	AppConfigDir = filepath.Join(configHome, AppName)
	AppDataDir = filepath.Join(dataHome, AppName)
	AppStateDir = filepath.Join(stateHome, AppName)

	AppConfigFile = filepath.Join(AppConfigDir, "aic.yaml")
	AppEndpointsFile = filepath.Join(AppConfigDir, "endpoints.ini")
	AppHotkeysFile = filepath.Join(AppConfigDir, "hotkeys.yaml")
	AppAliasesFile = filepath.Join(AppConfigDir, "aliases.yaml")

	AppEndpointsDir = filepath.Join(AppDataDir, "endpoints")
	AppLogFile = filepath.Join(AppStateDir, "aic.log")

	// Set the endpoints directory in data package to avoid circular import
	data.SetDefaultEndpointsDir(AppEndpointsDir)

	for _, dir := range []string{AppConfigDir, AppDataDir, AppStateDir, AppEndpointsDir} {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return err
		}
	}

	return nil
}
