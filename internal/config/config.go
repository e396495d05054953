// Package config resolves runtime settings from flags, environment, an
// optional .env file and an optional config.yaml, in that order of priority.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// AppName names the data, config and state directories.
const AppName = "focusflow"

const (
	BackendSQLite = "sqlite"
	BackendDiskv  = "diskv"
)

// Keys understood by Load. Environment variables use the FOCUSFLOW_ prefix
// (FOCUSFLOW_DB_PATH and so on); flags use dashes (--db-path).
const (
	KeyBackend = "backend"
	KeyDBPath  = "db_path"
	KeyKVDir   = "kv_dir"
	KeyLogFile = "log_file"
	KeyDebug   = "debug"
)

type Config struct {
	// Backend selects the key-value store: "sqlite" (default) or "diskv".
	Backend string
	// DBPath is the SQLite database file.
	DBPath string
	// KVDir is the diskv base directory.
	KVDir   string
	LogFile string
	Debug   bool
}

// DataDir returns $XDG_DATA_HOME/focusflow.
func DataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// Load reads configuration from the XDG config directory.
func Load(flags *pflag.FlagSet) (*Config, error) {
	return LoadFrom(filepath.Join(xdg.ConfigHome, AppName), flags)
}

// LoadFrom is Load with an explicit directory for config.yaml.
func LoadFrom(configDir string, flags *pflag.FlagSet) (*Config, error) {
	// A missing .env is the normal case.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(strings.ToUpper(AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyBackend, BackendSQLite)
	v.SetDefault(KeyDBPath, filepath.Join(DataDir(), AppName+".db"))
	v.SetDefault(KeyKVDir, filepath.Join(DataDir(), "kv"))
	v.SetDefault(KeyLogFile, filepath.Join(xdg.StateHome, AppName, AppName+".log"))
	v.SetDefault(KeyDebug, false)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if flags != nil {
		for _, k := range []string{KeyBackend, KeyDBPath, KeyKVDir, KeyLogFile, KeyDebug} {
			if f := flags.Lookup(strings.ReplaceAll(k, "_", "-")); f != nil {
				if err := v.BindPFlag(k, f); err != nil {
					return nil, fmt.Errorf("bind flag %q: %w", f.Name, err)
				}
			}
		}
	}

	cfg := &Config{
		Backend: strings.ToLower(v.GetString(KeyBackend)),
		DBPath:  v.GetString(KeyDBPath),
		KVDir:   v.GetString(KeyKVDir),
		LogFile: v.GetString(KeyLogFile),
		Debug:   v.GetBool(KeyDebug),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects unknown backends and empty paths.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendSQLite:
		if c.DBPath == "" {
			return errors.New("config: db_path is empty")
		}
	case BackendDiskv:
		if c.KVDir == "" {
			return errors.New("config: kv_dir is empty")
		}
	default:
		return fmt.Errorf("config: unknown backend %q", c.Backend)
	}
	return nil
}
