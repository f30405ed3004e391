package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the complete keynote-mcp configuration
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Automation AutomationConfig `yaml:"automation"`
	Unsplash   UnsplashConfig   `yaml:"unsplash"`
	Logging    LoggingConfig    `yaml:"logging"`
	Hooks      HooksConfig      `yaml:"hooks"`
	LLM        LLMConfig        `yaml:"llm"`
}

// ServerConfig names the MCP server
type ServerConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// AutomationConfig controls how scripts are run
type AutomationConfig struct {
	Interpreter      string `yaml:"interpreter"`        // default osascript
	Compiler         string `yaml:"compiler"`           // default osacompile
	TimeoutMS        int    `yaml:"timeout_ms"`         // default 30000
	CompileTimeoutMS int    `yaml:"compile_timeout_ms"` // default 10000

	// SerializeDocuments runs at most one script per target document at a time
	SerializeDocuments bool `yaml:"serialize_documents"`
}

// Timeout returns the per-script bound
func (a AutomationConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutMS) * time.Millisecond
}

// CompileTimeout returns the bound for osacompile
func (a AutomationConfig) CompileTimeout() time.Duration {
	return time.Duration(a.CompileTimeoutMS) * time.Millisecond
}

// UnsplashConfig enables the image tools. An empty access key disables them.
type UnsplashConfig struct {
	AccessKey   string `yaml:"access_key"` // supports ${VAR}
	BaseURL     string `yaml:"base_url"`
	DownloadDir string `yaml:"download_dir"`
	TimeoutMS   int    `yaml:"timeout_ms"`
}

// Timeout returns the HTTP client timeout
func (u UnsplashConfig) Timeout() time.Duration {
	return time.Duration(u.TimeoutMS) * time.Millisecond
}

// LoggingConfig contains logger settings
type LoggingConfig struct {
	Level  string `yaml:"level"` // debug, info, warn, error
	File   string `yaml:"file"`
	Pretty bool   `yaml:"pretty"`
}

// HooksConfig contains hook-related settings
type HooksConfig struct {
	// ToolConfirm enables user confirmation before specified tools (chat only)
	ToolConfirm []string `yaml:"tool_confirm"`
	// Deny refuses the specified tools outright
	Deny []string `yaml:"deny"`
}

// LLMConfig configures the chat command
type LLMConfig struct {
	APIKey      string  `yaml:"api_key"` // supports ${VAR}
	BaseURL     string  `yaml:"base_url"`
	Model       string  `yaml:"model"`
	Temperature float32 `yaml:"temperature"`
	MaxTurns    int     `yaml:"max_turns"`
}

// Default returns a configuration with every default applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads and parses the YAML config file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	cfg.expand()
	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// LoadWithDefaults loads .env, then the first config file found in
// ./keynote-mcp.yaml, ./configs/keynote-mcp.yaml,
// ~/.config/keynote-mcp/keynote-mcp.yaml and /etc/keynote-mcp/keynote-mcp.yaml
func LoadWithDefaults() (*Config, error) {
	if err := LoadEnvFile(".env"); err != nil {
		return nil, err
	}

	locations := []string{
		"./keynote-mcp.yaml",
		"./configs/keynote-mcp.yaml",
	}

	if home, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(home, ".config", "keynote-mcp", "keynote-mcp.yaml"))
	}

	locations = append(locations, "/etc/keynote-mcp/keynote-mcp.yaml")

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return Load(loc)
		}
	}

	// No config found - defaults plus environment
	cfg := &Config{}
	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

// LoadEnvFile loads variables from path into the environment without
// overriding ones already set. A missing file is not an error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// expand resolves ${VAR} references in fields that commonly hold secrets
// or machine specific paths
func (c *Config) expand() {
	c.Unsplash.AccessKey = ExpandEnv(c.Unsplash.AccessKey)
	c.Unsplash.BaseURL = ExpandEnv(c.Unsplash.BaseURL)
	c.Unsplash.DownloadDir = ExpandEnv(c.Unsplash.DownloadDir)
	c.LLM.APIKey = ExpandEnv(c.LLM.APIKey)
	c.LLM.BaseURL = ExpandEnv(c.LLM.BaseURL)
	c.Logging.File = ExpandEnv(c.Logging.File)
}

// applyEnv lets well-known environment variables override the file
func (c *Config) applyEnv() {
	if v := os.Getenv("UNSPLASH_KEY"); v != "" {
		c.Unsplash.AccessKey = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("OPENAI_API_BASE_URL"); v != "" {
		c.LLM.BaseURL = v
	}
	if v := os.Getenv("KEYNOTE_MCP_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Name == "" {
		c.Server.Name = "keynote-mcp"
	}
	if c.Automation.Interpreter == "" {
		c.Automation.Interpreter = "osascript"
	}
	if c.Automation.Compiler == "" {
		c.Automation.Compiler = "osacompile"
	}
	if c.Automation.TimeoutMS == 0 {
		c.Automation.TimeoutMS = 30000
	}
	if c.Automation.CompileTimeoutMS == 0 {
		c.Automation.CompileTimeoutMS = 10000
	}
	if c.Unsplash.TimeoutMS == 0 {
		c.Unsplash.TimeoutMS = 30000
	}
	if c.Unsplash.DownloadDir == "" {
		c.Unsplash.DownloadDir = os.TempDir()
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "gpt-4-turbo"
	}
	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = 0.7
	}
	if c.LLM.MaxTurns == 0 {
		c.LLM.MaxTurns = 20
	}
}

// Validate checks config correctness
func (c *Config) Validate() error {
	if c.Automation.TimeoutMS < 0 {
		return fmt.Errorf("automation.timeout_ms must be positive")
	}
	if c.Automation.CompileTimeoutMS < 0 {
		return fmt.Errorf("automation.compile_timeout_ms must be positive")
	}
	if c.Unsplash.TimeoutMS < 0 {
		return fmt.Errorf("unsplash.timeout_ms must be positive")
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}

	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be between 0 and 2")
	}
	if c.LLM.MaxTurns < 0 {
		return fmt.Errorf("llm.max_turns must be positive")
	}

	for _, name := range c.Hooks.ToolConfirm {
		if err := validateToolName(name); err != nil {
			return fmt.Errorf("hooks.tool_confirm: %w", err)
		}
	}
	for _, name := range c.Hooks.Deny {
		if err := validateToolName(name); err != nil {
			return fmt.Errorf("hooks.deny: %w", err)
		}
	}

	return nil
}

// validateToolName checks a tool name against the pattern tool names use:
// ^[a-zA-Z0-9_-]+$
func validateToolName(name string) error {
	if name == "" {
		return fmt.Errorf("tool name cannot be empty")
	}
	for _, ch := range name {
		if !((ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') || ch == '_' || ch == '-') {
			return fmt.Errorf("tool name '%s' contains invalid character '%c' (only alphanumeric, underscore, and hyphen allowed)", name, ch)
		}
	}
	return nil
}
