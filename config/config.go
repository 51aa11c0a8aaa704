// Package config resolves the settings the prompt generator needs once at
// startup: detected OS, save directory, listen address and the optional model
// used to try prompts.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

const (
	configName = ".promptgen"
	envPrefix  = "PROMPTGEN"

	// DefaultServerAddr keeps the form on the loopback interface.
	DefaultServerAddr = "127.0.0.1:7860"
)

// Config holds the user-facing settings.
type Config struct {
	SaveDir    string    `mapstructure:"save_dir"`
	ServerAddr string    `mapstructure:"server_addr"`
	LLM        LLMConfig `mapstructure:"llm"`
}

// LLMConfig is optional; an empty provider disables prompt trials.
type LLMConfig struct {
	Provider string `mapstructure:"provider"`
	Model    string `mapstructure:"model"`
	APIKey   string `mapstructure:"api_key"`
	BaseURL  string `mapstructure:"base_url"`
}

// Runtime is the process-wide state resolved once and passed explicitly.
type Runtime struct {
	OS      string
	SaveDir string
}

// Load reads configuration from cfgFile (or the default search path), the
// PROMPTGEN_* environment and defaults. A missing config file is not an error.
func Load(v *viper.Viper, cfgFile string) (Config, error) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("save_dir", "")
	v.SetDefault("server_addr", DefaultServerAddr)
	v.SetDefault("llm.provider", "")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.base_url", "")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigName(configName)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DetectOS returns the lower-case platform name ("linux", "darwin", "windows").
func DetectOS() string {
	return runtime.GOOS
}

// DocumentsRoot returns the user's Documents folder for goos. getenv is
// os.Getenv outside tests.
func DocumentsRoot(goos string, getenv func(string) string) (string, error) {
	key := "HOME"
	if goos == "windows" {
		key = "USERPROFILE"
	}
	home := getenv(key)
	if home == "" {
		var err error
		home, err = os.UserHomeDir()
		if err != nil {
			return "", err
		}
	}
	return filepath.Join(home, "Documents"), nil
}

// DefaultSaveDir is <documents>/Prompts/Prompt_Generator/Template_Prompts.
func DefaultSaveDir(goos string, getenv func(string) string) (string, error) {
	root, err := DocumentsRoot(goos, getenv)
	if err != nil {
		return "", err
	}
	return filepath.Join(root, "Prompts", "Prompt_Generator", "Template_Prompts"), nil
}

// Resolve fixes the OS and save directory for the life of the process.
func Resolve(cfg Config, goos string, getenv func(string) string) (Runtime, error) {
	dir := cfg.SaveDir
	if dir == "" {
		var err error
		dir, err = DefaultSaveDir(goos, getenv)
		if err != nil {
			return Runtime{}, err
		}
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return Runtime{}, err
	}
	return Runtime{OS: goos, SaveDir: abs}, nil
}
