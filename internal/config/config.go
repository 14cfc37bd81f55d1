package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config is the effective configuration snapshot for one review invocation.
// It is assembled once (defaults <- file <- env <- flags) and passed down;
// engines never read viper directly.
type Config struct {
	Extensions []string `mapstructure:"extensions" yaml:"extensions"`
	Exclude    []string `mapstructure:"exclude" yaml:"exclude"`
	Workers    int      `mapstructure:"workers" yaml:"workers"`
	Format     string   `mapstructure:"format" yaml:"format"`
	FailOn     string   `mapstructure:"fail_on" yaml:"fail_on"`
	RulesPack  string   `mapstructure:"rules_pack" yaml:"rules_pack"`

	Analysis AnalysisConfig `mapstructure:"analysis" yaml:"analysis"`
	Security SecurityConfig `mapstructure:"security" yaml:"security"`
	AI       AIConfig       `mapstructure:"ai" yaml:"ai"`
}

// AnalysisConfig holds the quality thresholds.
type AnalysisConfig struct {
	MaxLineLength       int `mapstructure:"max_line_length" yaml:"max_line_length"`
	MaxFileLength       int `mapstructure:"max_file_length" yaml:"max_file_length"`
	ComplexityThreshold int `mapstructure:"complexity_threshold" yaml:"complexity_threshold"`
	MaxFunctionLength   int `mapstructure:"max_function_length" yaml:"max_function_length"`
	MaxParameters       int `mapstructure:"max_parameters" yaml:"max_parameters"`
}

// SecurityConfig gates the security scan and its secret-detection pass.
type SecurityConfig struct {
	Enabled      bool `mapstructure:"enabled" yaml:"enabled"`
	CheckSecrets bool `mapstructure:"check_secrets" yaml:"check_secrets"`
}

// AIConfig controls the optional model augmentation.
type AIConfig struct {
	Enabled         bool        `mapstructure:"enabled" yaml:"enabled"`
	Provider        string      `mapstructure:"provider" yaml:"provider"`
	Model           string      `mapstructure:"model" yaml:"model"`
	BaseURL         string      `mapstructure:"base_url" yaml:"base_url"`
	TimeoutSeconds  int         `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	MaxContentChars int         `mapstructure:"max_content_chars" yaml:"max_content_chars"`
	RedactSecrets   bool        `mapstructure:"redact_secrets" yaml:"redact_secrets"`
	Cache           CacheConfig `mapstructure:"cache" yaml:"cache"`
}

// CacheConfig controls caching of model responses.
type CacheConfig struct {
	Enabled    bool   `mapstructure:"enabled" yaml:"enabled"`
	Dir        string `mapstructure:"dir" yaml:"dir"`
	TTLSeconds int    `mapstructure:"ttl_seconds" yaml:"ttl_seconds"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("extensions", []string{".py", ".js", ".jsx", ".ts", ".tsx", ".java", ".cpp", ".cc", ".h", ".go", ".rs"})
	v.SetDefault("exclude", []string{"vendor/*", "node_modules/*", "*.gen.go", "dist/*"})
	v.SetDefault("workers", runtime.NumCPU())
	v.SetDefault("format", "text")
	v.SetDefault("fail_on", "none")
	v.SetDefault("rules_pack", "")

	v.SetDefault("analysis.max_line_length", 120)
	v.SetDefault("analysis.max_file_length", 500)
	v.SetDefault("analysis.complexity_threshold", 10)
	v.SetDefault("analysis.max_function_length", 50)
	v.SetDefault("analysis.max_parameters", 5)

	v.SetDefault("security.enabled", true)
	v.SetDefault("security.check_secrets", true)

	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.provider", "ollama")
	v.SetDefault("ai.model", "llama3.2")
	v.SetDefault("ai.base_url", "")
	v.SetDefault("ai.timeout_seconds", 60)
	v.SetDefault("ai.max_content_chars", 2000)
	v.SetDefault("ai.redact_secrets", true)
	v.SetDefault("ai.cache.enabled", false)
	v.SetDefault("ai.cache.dir", "")
	v.SetDefault("ai.cache.ttl_seconds", 86400)
}

// Dir returns the platform-appropriate config directory.
func Dir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "reviewd"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "reviewd"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "reviewd"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "reviewd"), nil
	default:
		return filepath.Join(home, ".config", "reviewd"), nil
	}
}

// Path returns the default location of the config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "reviewd.yaml"), nil
}

// Load builds the effective config. When file is non-empty that exact file
// must exist and parse; otherwise reviewd.yaml is searched in the working
// directory and the config directory, and a missing file is not an error.
func Load(file string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("reviewd")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := Dir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	v.SetEnvPrefix("REVIEWD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Default returns the configuration with no file or environment applied.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// Defaults always unmarshal cleanly.
	_ = v.Unmarshal(&cfg)
	return cfg
}

// Save writes cfg to the default config file location as YAML.
func Save(cfg Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Set updates one dotted key (e.g. "ai.model") in the config file, creating
// the file from defaults when it does not exist yet.
func Set(key, value string) error {
	path, err := Path()
	if err != nil {
		return err
	}

	v := viper.New()
	setDefaults(v)
	if _, statErr := os.Stat(path); statErr == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config: %w", err)
		}
	}

	if !v.IsSet(key) {
		return fmt.Errorf("unknown config key: %s", key)
	}
	v.Set(key, parseScalar(value))

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}
	return Save(cfg)
}

// parseScalar keeps booleans and integers typed in the written YAML.
func parseScalar(s string) any {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return s
}

// SupportsExtension reports whether ext (including the dot) is reviewed.
func (c Config) SupportsExtension(ext string) bool {
	ext = strings.ToLower(ext)
	for _, e := range c.Extensions {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}
