package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the user-facing configuration, loaded from
// $XDG_CONFIG_HOME/rebase-edit/config.toml. A missing or unreadable file
// means defaults; a broken file is reported once and otherwise ignored.
type Config struct {
	Avatars bool                  `toml:"avatars"`
	LogFile string                `toml:"log_file"`
	Keys    KeyMappings[[]string] `toml:"keys"`
}

var Current = Load()

func Load() *Config {
	config := &Config{
		Avatars: true,
		Keys:    DefaultKeys(),
	}
	path, err := configFilePath()
	if err != nil {
		return config
	}
	if _, err := os.Stat(path); err != nil {
		return config
	}
	if _, err := toml.DecodeFile(path, config); err != nil {
		os.Stderr.WriteString("rebase-edit: ignoring broken config: " + err.Error() + "\n")
	}
	return config
}

func configFilePath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "rebase-edit", "config.toml"), nil
}
