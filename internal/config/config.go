package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/seoscribe/seoscribe/internal/seo"
)

//go:embed default.yaml
var DefaultConfigYAML []byte

type Config struct {
	Site      Site      `yaml:"site"`
	Scoring   Scoring   `yaml:"scoring"`
	Research  Research  `yaml:"research"`
	Optimizer Optimizer `yaml:"optimizer"`
	Output    Output    `yaml:"output"`
	Server    Server    `yaml:"server"`
	Logging   Logging   `yaml:"logging"`
}

type Site struct {
	BaseURL  string `yaml:"base_url" validate:"omitempty,url"`
	Language string `yaml:"language"`
}

// Scoring holds the tunable boundaries for the criterion engine. Zero
// values fall back to the engine defaults.
type Scoring struct {
	DensityMin        float64 `yaml:"density_min" validate:"gte=0"`
	DensityMax        float64 `yaml:"density_max" validate:"gte=0,gtefield=DensityMin"`
	TitleMinChars     int     `yaml:"title_min_chars" validate:"gte=0"`
	TitleMaxChars     int     `yaml:"title_max_chars" validate:"gte=0"`
	MetaMinChars      int     `yaml:"meta_min_chars" validate:"gte=0"`
	MetaMaxChars      int     `yaml:"meta_max_chars" validate:"gte=0"`
	MinWords          int     `yaml:"min_words" validate:"gte=0"`
	MaxSentences      int     `yaml:"max_sentences_per_paragraph" validate:"gte=0"`
	TitleKeywordWords int     `yaml:"title_keyword_window" validate:"gte=0"`

	PowerWords    []string `yaml:"power_words"`
	PositiveWords []string `yaml:"positive_words"`
	NegativeWords []string `yaml:"negative_words"`
	StopWords     []string `yaml:"stop_words"`
}

type Research struct {
	Feeds    []Feed        `yaml:"feeds" validate:"dive"`
	NewsAPI  NewsAPIConfig `yaml:"newsapi"`
	DaysBack int           `yaml:"days_back" validate:"gte=0"`
}

type Feed struct {
	URL  string `yaml:"url" validate:"required,url"`
	Name string `yaml:"name"`
}

type NewsAPIConfig struct {
	Enabled   bool   `yaml:"enabled"`
	APIKeyEnv string `yaml:"api_key_env"`
}

type Optimizer struct {
	Provider    string `yaml:"provider" validate:"oneof=ollama openai none"`
	Model       string `yaml:"model"`
	OllamaURL   string `yaml:"ollama_url"`
	OpenAIModel string `yaml:"openai_model"`
	APIKeyEnv   string `yaml:"api_key_env"`
	MaxTokens   int    `yaml:"max_tokens" validate:"gte=0"`
}

type Output struct {
	DataDir string `yaml:"data_dir"`
}

type Server struct {
	Port int `yaml:"port" validate:"gte=1,lte=65535"`
}

type Logging struct {
	Level string `yaml:"level"`
}

// ConfigDir returns the XDG config directory for seoscribe.
func ConfigDir() string {
	return filepath.Join(homeDir(), ".config", "seoscribe")
}

// DataDir returns the XDG data directory for seoscribe.
func DataDir() string {
	return filepath.Join(homeDir(), ".local", "share", "seoscribe")
}

// ResolveConfigPath finds the config file following priority:
// explicit path > ~/.config/seoscribe/config.yaml > ./config.yaml
func ResolveConfigPath(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	xdgConfig := filepath.Join(ConfigDir(), "config.yaml")
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig, nil
	}

	cwdConfig := "config.yaml"
	if _, err := os.Stat(cwdConfig); err == nil {
		return cwdConfig, nil
	}

	return "", fmt.Errorf(
		"no config file found; searched:\n  %s\n  ./config.yaml\n\nRun 'seoscribe init' to create a default config",
		xdgConfig,
	)
}

// Load reads, parses, and validates a config YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return parse(data)
}

// parse parses YAML bytes into a Config, applying defaults and validating.
func parse(data []byte) (*Config, error) {
	cfg := &Config{
		Site: Site{Language: "en"},
		Scoring: Scoring{
			DensityMin:        1.0,
			DensityMax:        3.0,
			TitleMinChars:     30,
			TitleMaxChars:     60,
			MetaMinChars:      120,
			MetaMaxChars:      160,
			MinWords:          900,
			MaxSentences:      5,
			TitleKeywordWords: 3,
		},
		Research: Research{
			NewsAPI:  NewsAPIConfig{APIKeyEnv: "NEWSAPI_KEY"},
			DaysBack: 7,
		},
		Optimizer: Optimizer{
			Provider:    "ollama",
			Model:       "qwen2.5:7b",
			OllamaURL:   "http://localhost:11434",
			OpenAIModel: "gpt-4o-mini",
			APIKeyEnv:   "OPENAI_API_KEY",
			MaxTokens:   512,
		},
		Server:  Server{Port: 8000},
		Logging: Logging{Level: "INFO"},
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Thresholds maps the scoring section onto engine thresholds.
func (c *Config) Thresholds() seo.Thresholds {
	return seo.Thresholds{
		DensityMin:               c.Scoring.DensityMin,
		DensityMax:               c.Scoring.DensityMax,
		TitleMinChars:            c.Scoring.TitleMinChars,
		TitleMaxChars:            c.Scoring.TitleMaxChars,
		MetaMinChars:             c.Scoring.MetaMinChars,
		MetaMaxChars:             c.Scoring.MetaMaxChars,
		MinWords:                 c.Scoring.MinWords,
		MaxSentencesPerParagraph: c.Scoring.MaxSentences,
		TitleKeywordWindow:       c.Scoring.TitleKeywordWords,
		PowerWords:               c.Scoring.PowerWords,
		PositiveWords:            c.Scoring.PositiveWords,
		NegativeWords:            c.Scoring.NegativeWords,
		StopWords:                c.Scoring.StopWords,
	}
}

// GetDataDir returns the effective data directory from config or XDG default.
func (c *Config) GetDataDir() string {
	if c.Output.DataDir != "" {
		return c.Output.DataDir
	}
	return DataDir()
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
