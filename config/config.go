package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for codechat.
type Config struct {
	Knowledge  KnowledgeConfig  `yaml:"knowledge"`
	Classifier ClassifierConfig `yaml:"classifier"`
	Lexicon    LexiconConfig    `yaml:"lexicon"`
	Resolver   ResolverConfig   `yaml:"resolver"`
	Server     ServerConfig     `yaml:"server"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// KnowledgeConfig controls where topic, language and comparison data come from.
type KnowledgeConfig struct {
	Embedded bool     `yaml:"embedded"` // Include the built-in programming knowledge base
	Dir      string   `yaml:"dir"`      // Optional directory with extra knowledge files
	Includes []string `yaml:"includes"`
	Excludes []string `yaml:"excludes"`
}

// ClassifierConfig holds fallback classifier configuration.
type ClassifierConfig struct {
	NgramMin            int           `yaml:"ngram_min"`
	NgramMax            int           `yaml:"ngram_max"`
	MaxIter             int           `yaml:"max_iter"`
	Tolerance           float64       `yaml:"tolerance"`
	C                   float64       `yaml:"c"`           // Inverse L2 regularization strength
	MultiClass          string        `yaml:"multi_class"` // "multinomial" or "ovr"
	ConfidenceThreshold float64       `yaml:"confidence_threshold"`
	CacheSize           int           `yaml:"cache_size"` // 0 = no prediction cache
	CacheTTL            time.Duration `yaml:"cache_ttl"`
}

// LexiconConfig holds lemmatizer dictionary configuration.
type LexiconConfig struct {
	Source  string        `yaml:"source"`   // "embedded" or an http(s) base URL
	DataDir string        `yaml:"data_dir"` // Relative paths resolve against the root directory
	Timeout time.Duration `yaml:"timeout"`
}

// ResolverConfig holds response resolution configuration.
type ResolverConfig struct {
	DefaultMessage string `yaml:"default_message"`
	Seed           uint64 `yaml:"seed"` // 0 = unseeded
}

// ServerConfig holds HTTP API configuration.
type ServerConfig struct {
	Addr string `yaml:"addr"`
	Mode string `yaml:"mode"` // gin mode: debug, release, test
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "console" or "json"
	File   string `yaml:"file"`
}

const (
	MultiClassMultinomial = "multinomial"
	MultiClassOVR         = "ovr"

	LexiconSourceEmbedded = "embedded"

	DefaultMessage = "I'm not sure. Please ask a specific programming question."
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Knowledge: KnowledgeConfig{
			Embedded: true,
			Includes: []string{"**/*.yaml", "**/*.yml"},
			Excludes: []string{"**/.git/**", "**/testdata/**"},
		},
		Classifier: ClassifierConfig{
			NgramMin:            1,
			NgramMax:            2,
			MaxIter:             1000,
			Tolerance:           1e-6,
			C:                   1.0,
			MultiClass:          MultiClassMultinomial,
			ConfidenceThreshold: 0.2,
			CacheSize:           256,
			CacheTTL:            10 * time.Minute,
		},
		Lexicon: LexiconConfig{
			Source:  LexiconSourceEmbedded,
			DataDir: ".codechat",
			Timeout: 30 * time.Second,
		},
		Resolver: ResolverConfig{
			DefaultMessage: DefaultMessage,
		},
		Server: ServerConfig{
			Addr: ":8080",
			Mode: "release",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for codechat.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "codechat.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".codechat", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// ApplyEnv overrides configuration values from CODECHAT_* environment variables.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("CODECHAT_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("CODECHAT_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("CODECHAT_LEXICON_SOURCE"); v != "" {
		c.Lexicon.Source = v
	}
	if v := os.Getenv("CODECHAT_SERVER_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("CODECHAT_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid CODECHAT_SEED %q: %w", v, err)
		}
		c.Resolver.Seed = seed
	}
	return nil
}

// Validate reports the first out-of-range setting.
func (c *Config) Validate() error {
	cc := c.Classifier
	if cc.NgramMin < 1 || cc.NgramMax < cc.NgramMin {
		return fmt.Errorf("invalid ngram range [%d, %d]", cc.NgramMin, cc.NgramMax)
	}
	if cc.MaxIter <= 0 {
		return fmt.Errorf("max_iter must be positive, got %d", cc.MaxIter)
	}
	if cc.C <= 0 {
		return fmt.Errorf("c must be positive, got %g", cc.C)
	}
	if cc.MultiClass != MultiClassMultinomial && cc.MultiClass != MultiClassOVR {
		return fmt.Errorf("unknown multi_class %q", cc.MultiClass)
	}
	if cc.ConfidenceThreshold < 0 || cc.ConfidenceThreshold > 1 {
		return fmt.Errorf("confidence_threshold must be within [0, 1], got %g", cc.ConfidenceThreshold)
	}
	if cc.CacheSize < 0 {
		return fmt.Errorf("cache_size must not be negative, got %d", cc.CacheSize)
	}
	if c.Resolver.DefaultMessage == "" {
		return fmt.Errorf("default_message must not be empty")
	}
	if c.Lexicon.Source == "" {
		return fmt.Errorf("lexicon source must not be empty")
	}
	return nil
}

// DataDir returns the lexicon data directory, resolved against dir when relative.
// An empty data_dir keeps the lexicon in memory and yields "".
func (c *Config) DataDir(dir string) string {
	if c.Lexicon.DataDir == "" {
		return ""
	}
	if filepath.IsAbs(c.Lexicon.DataDir) {
		return c.Lexicon.DataDir
	}
	return filepath.Join(dir, c.Lexicon.DataDir)
}

// LexiconDBPath returns the path to the lexicon database.
func LexiconDBPath(dataDir string) string {
	return filepath.Join(dataDir, "lexicon.db")
}

// EnsureDataDir ensures the data directory exists.
func EnsureDataDir(dataDir string) error {
	return os.MkdirAll(dataDir, 0755)
}
