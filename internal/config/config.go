package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"
)

const (
	DefaultAPIURL            = "http://127.0.0.1:7333"
	DefaultDBFileName        = ".todod.db"
	DefaultLogLevel          = "debug"
	DefaultSearchConcurrency = 4

	configFileName           = ".todod.toml"
	configDirEnvKey          = "TODOD_CONFIG_DIR"
	trustProjectConfigEnvKey = "TODOD_TRUST_PROJECT_CONFIG"
)

// ServerConfig holds settings only the server process reads.
type ServerConfig struct {
	SearchConcurrency    int  `mapstructure:"search_concurrency" toml:"search_concurrency"`
	DefaultCascadeDelete bool `mapstructure:"default_cascade_delete" toml:"default_cascade_delete"`
}

// Config defines runtime configuration for todod.
type Config struct {
	APIURL                   string       `mapstructure:"api_url" toml:"api_url"`
	DBPath                   string       `mapstructure:"db_path" toml:"db_path"`
	LogLevel                 string       `mapstructure:"log_level" toml:"log_level"`
	Server                   ServerConfig `mapstructure:"server" toml:"server"`
	TrustedProjectConfigPath string       `mapstructure:"-" toml:"-"`
}

// Default returns default configuration values.
func Default() Config {
	return Config{
		APIURL:   DefaultAPIURL,
		DBPath:   "",
		LogLevel: DefaultLogLevel,
		Server: ServerConfig{
			SearchConcurrency:    DefaultSearchConcurrency,
			DefaultCascadeDelete: false,
		},
	}
}

// envBindings maps config keys to the environment variables that override them.
// Earlier names win.
var envBindings = map[string][]string{
	"api_url":                   {"TODOD_API_URL"},
	"db_path":                   {"TODOD_DB", "TODOD_DB_PATH"},
	"log_level":                 {"TODOD_LOG_LEVEL"},
	"server.search_concurrency": {"TODOD_SEARCH_CONCURRENCY"},
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("toml")

	def := Default()
	v.SetDefault("api_url", def.APIURL)
	v.SetDefault("db_path", def.DBPath)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("server.search_concurrency", def.Server.SearchConcurrency)
	v.SetDefault("server.default_cascade_delete", def.Server.DefaultCascadeDelete)
	return v
}

// mergeFileIfExists merges the TOML file at path into v. A missing file is not
// an error.
func mergeFileIfExists(v *viper.Viper, path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if info.IsDir() {
		return false, nil
	}
	v.SetConfigFile(path)
	if err := v.MergeInConfig(); err != nil {
		return false, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return true, nil
}

func overrideConfigPath() (string, bool) {
	dir := strings.TrimSpace(os.Getenv(configDirEnvKey))
	if dir == "" {
		return "", false
	}
	return filepath.Join(dir, configFileName), true
}

func trustProjectConfig() bool {
	raw := strings.TrimSpace(os.Getenv(trustProjectConfigEnvKey))
	if raw == "" {
		return false
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false
	}
	return value
}

var allowedKeys = []string{
	"api_url",
	"db_path",
	"log_level",
	"server.search_concurrency",
	"server.default_cascade_delete",
}

// AllowedKeys returns the set of valid config keys.
func AllowedKeys() []string {
	return allowedKeys
}

// IsAllowedKey checks if a key is a valid config key.
func IsAllowedKey(key string) bool {
	for _, k := range allowedKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Get returns the value of a config key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "api_url":
		return c.APIURL, nil
	case "db_path":
		return c.DBPath, nil
	case "log_level":
		return c.LogLevel, nil
	case "server.search_concurrency":
		return strconv.Itoa(c.Server.SearchConcurrency), nil
	case "server.default_cascade_delete":
		return strconv.FormatBool(c.Server.DefaultCascadeDelete), nil
	default:
		return "", fmt.Errorf("unknown key: %s", key)
	}
}

// GlobalPath returns the path to the global config file.
func GlobalPath() (string, error) {
	if path, ok := overrideConfigPath(); ok {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configFileName), nil
}

// ProjectPath returns the path to the project config file.
func ProjectPath() (string, error) {
	if path, ok := overrideConfigPath(); ok {
		return path, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, configFileName), nil
}

// SetKey reads the TOML file at path, sets key=value, and writes it back.
func SetKey(path, key, value string) error {
	if !IsAllowedKey(key) {
		return fmt.Errorf("unknown key: %s", key)
	}

	data := make(map[string]any)
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &data); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	}

	parsedValue, err := parseSetValue(key, value)
	if err != nil {
		return err
	}
	if err := setNestedKey(data, strings.Split(key, "."), parsedValue); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(data)
}

// Load reads config from trusted files and applies env overrides.
func Load() (*Config, error) {
	v := newViper()
	trustedProjectPath := ""

	if overridePath, ok := overrideConfigPath(); ok {
		if _, err := mergeFileIfExists(v, overridePath); err != nil {
			return nil, err
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			if _, err := mergeFileIfExists(v, filepath.Join(home, configFileName)); err != nil {
				return nil, err
			}
		}

		if trustProjectConfig() {
			if cwd, err := os.Getwd(); err == nil {
				projectPath := filepath.Join(cwd, configFileName)
				loaded, err := mergeFileIfExists(v, projectPath)
				if err != nil {
					return nil, err
				}
				if loaded {
					trustedProjectPath = projectPath
				}
			}
		}
	}

	for key, names := range envBindings {
		args := append([]string{key}, names...)
		if err := v.BindEnv(args...); err != nil {
			return nil, fmt.Errorf("bind env for %s: %w", key, err)
		}
	}

	cfg := Default()
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.TrustedProjectConfigPath = trustedProjectPath

	if strings.TrimSpace(cfg.DBPath) == "" {
		if cwd, err := os.Getwd(); err == nil {
			cfg.DBPath = filepath.Join(cwd, DefaultDBFileName)
		}
	}
	if strings.TrimSpace(cfg.LogLevel) == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if cfg.Server.SearchConcurrency <= 0 {
		cfg.Server.SearchConcurrency = DefaultSearchConcurrency
	}

	return &cfg, nil
}

func parseSetValue(key, value string) (any, error) {
	value = strings.TrimSpace(value)
	switch key {
	case "server.search_concurrency":
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("%s must be a positive integer", key)
		}
		return parsed, nil
	case "server.default_cascade_delete":
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("%s must be true or false", key)
		}
		return parsed, nil
	case "log_level":
		switch strings.ToLower(value) {
		case "debug", "info", "warn", "warning", "error":
			return strings.ToLower(value), nil
		default:
			return nil, fmt.Errorf("log_level must be one of debug, info, warn, error")
		}
	default:
		return value, nil
	}
}

func setNestedKey(data map[string]any, parts []string, value any) error {
	if len(parts) == 0 {
		return fmt.Errorf("invalid config key")
	}
	if len(parts) == 1 {
		data[parts[0]] = value
		return nil
	}
	childRaw, ok := data[parts[0]]
	if !ok {
		child := map[string]any{}
		data[parts[0]] = child
		return setNestedKey(child, parts[1:], value)
	}
	child, ok := childRaw.(map[string]any)
	if !ok {
		return fmt.Errorf("cannot set nested key %q", strings.Join(parts, "."))
	}
	return setNestedKey(child, parts[1:], value)
}
