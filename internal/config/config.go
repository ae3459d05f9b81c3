package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	ProviderOpenAI  = "openai"
	ProviderBedrock = "bedrock"

	DefaultOpenAIModel  = "gpt-4o-mini"
	DefaultBedrockModel = "anthropic.claude-3-haiku-20240307-v1:0"
)

type Config struct {
	Region       string         `yaml:"region"`
	Compliance   ComplianceConf `yaml:"compliance"`
	Scanner      ScannerConfig  `yaml:"scanner"`
	Exclude      []string       `yaml:"exclude"`
	MaxFileBytes int64          `yaml:"max_file_bytes"`
	OutputFormat string         `yaml:"output_format"`
	MinRisk      string         `yaml:"min_risk"`
	Slack        SlackConfig    `yaml:"slack"`
}

type ComplianceConf struct {
	Provider           string        `yaml:"provider"`
	Model              string        `yaml:"model"`
	BaseURL            string        `yaml:"base_url"`
	APIKeyEnv          string        `yaml:"api_key_env"`
	APIKeySSMParameter string        `yaml:"api_key_ssm_parameter"`
	MaxTokens          int           `yaml:"max_tokens"`
	Timeout            time.Duration `yaml:"timeout"`
}

type ScannerConfig struct {
	Rules map[string]RuleConfig `yaml:"rules"`
}

type RuleConfig struct {
	Disabled bool   `yaml:"disabled"`
	Risk     string `yaml:"risk"`
}

type SlackConfig struct {
	WebhookURL string `yaml:"webhook_url"`
	Channel    string `yaml:"channel"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Region: "us-east-1",
		Compliance: ComplianceConf{
			Provider:  ProviderOpenAI,
			APIKeyEnv: "OPENAI_API_KEY",
			MaxTokens: 500,
			Timeout:   60 * time.Second,
		},
		Scanner:      ScannerConfig{Rules: map[string]RuleConfig{}},
		Exclude:      []string{".git", "node_modules", "__pycache__", ".venv"},
		MaxFileBytes: 256 * 1024,
		OutputFormat: "table",
	}
}

// LoadConfig reads a YAML file over the defaults. An empty path returns the
// defaults unchanged.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if cfg.Scanner.Rules == nil {
		cfg.Scanner.Rules = map[string]RuleConfig{}
	}

	return cfg, nil
}

// ModelOrDefault returns the configured model or the provider default.
func (c *ComplianceConf) ModelOrDefault() string {
	if c.Model != "" {
		return c.Model
	}
	if c.Provider == ProviderBedrock {
		return DefaultBedrockModel
	}
	return DefaultOpenAIModel
}

func (c *Config) Validate() error {
	if c.OutputFormat != "" && c.OutputFormat != "table" && c.OutputFormat != "json" && c.OutputFormat != "csv" {
		return fmt.Errorf("invalid output_format: %s", c.OutputFormat)
	}

	validRisks := map[string]bool{"LOW": true, "MEDIUM": true, "HIGH": true, "CRITICAL": true}
	if c.MinRisk != "" && !validRisks[strings.ToUpper(c.MinRisk)] {
		return fmt.Errorf("invalid min_risk: %s", c.MinRisk)
	}
	for id, rc := range c.Scanner.Rules {
		if rc.Risk != "" && !validRisks[strings.ToUpper(rc.Risk)] {
			return fmt.Errorf("invalid risk %q for rule %s", rc.Risk, id)
		}
	}

	switch c.Compliance.Provider {
	case ProviderOpenAI, ProviderBedrock:
	default:
		return fmt.Errorf("invalid compliance.provider: %s", c.Compliance.Provider)
	}
	if c.Compliance.MaxTokens <= 0 {
		return errors.New("compliance.max_tokens must be positive")
	}
	if c.Compliance.Timeout <= 0 {
		return errors.New("compliance.timeout must be positive")
	}
	if c.MaxFileBytes <= 0 {
		return errors.New("max_file_bytes must be positive")
	}

	return nil
}
