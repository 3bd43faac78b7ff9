package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/satishbabariya/schemaflow/internal/debug"
)

// AppFs is the filesystem every command reads and writes through.
var AppFs = afero.NewOsFs()

// FileName is the name of the config file searched for in the working
// directory, the home directory and ~/.config/schemaflow.
const FileName = ".schemaflow.yaml"

// Config holds the application configuration
type Config struct {
	MigrationPath   string
	OutputDir       string
	RequiredVersion string
	Debug           bool
}

// LoadConfig loads configuration from the config file, the environment
// (SCHEMAFLOW_*), and .env / .env.local. An explicit configFile must exist;
// otherwise a missing config file is not an error.
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()
	v.SetFs(AppFs)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(".schemaflow")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(home)
			v.AddConfigPath(filepath.Join(home, ".config", "schemaflow"))
		}
	}

	// Set environment variable prefix
	v.SetEnvPrefix("SCHEMAFLOW")
	v.AutomaticEnv()

	// Set defaults
	v.SetDefault("migration_path", "schema.migration")
	v.SetDefault("output_dir", "./generated")
	v.SetDefault("required_version", "")
	v.SetDefault("debug", false)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, err
		}
	}

	loadDotEnv()

	return &Config{
		MigrationPath:   v.GetString("migration_path"),
		OutputDir:       v.GetString("output_dir"),
		RequiredVersion: v.GetString("required_version"),
		Debug:           v.GetBool("debug"),
	}, nil
}

// loadDotEnv loads .env, then .env.local with higher priority. Both are
// optional and read through AppFs. Variables already set in the
// environment win over .env but not over .env.local.
func loadDotEnv() {
	loadEnvFile(".env", false)
	loadEnvFile(".env.local", true)
}

func loadEnvFile(path string, override bool) {
	data, err := afero.ReadFile(AppFs, path)
	if err != nil {
		return
	}

	vars, err := godotenv.Unmarshal(string(data))
	if err != nil {
		debug.Warn("ignoring malformed env file", "path", path, "error", err)
		return
	}

	for key, value := range vars {
		if _, exists := os.LookupEnv(key); exists && !override {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			debug.Warn("failed to set variable from env file", "path", path, "key", key, "error", err)
		}
	}
}

// SaveConfig writes cfg to path.
func SaveConfig(cfg *Config, path string) error {
	v := viper.New()
	v.SetFs(AppFs)

	v.Set("migration_path", cfg.MigrationPath)
	v.Set("output_dir", cfg.OutputDir)
	if cfg.RequiredVersion != "" {
		v.Set("required_version", cfg.RequiredVersion)
	}
	v.Set("debug", cfg.Debug)

	if dir := filepath.Dir(path); dir != "." {
		if err := AppFs.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return v.WriteConfigAs(path)
}
