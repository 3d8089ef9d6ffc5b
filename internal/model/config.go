package model

// Config is the complete realitycheck configuration.
// Timeouts are in seconds; zero means no extra deadline.
type Config struct {
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	LLM    LLMConfig    `yaml:"llm" mapstructure:"llm"`
	Client ClientConfig `yaml:"client" mapstructure:"client"`
	Fetch  FetchConfig  `yaml:"fetch" mapstructure:"fetch"`
}

// ServerConfig configures the analysis endpoint
type ServerConfig struct {
	Host            string `yaml:"host" mapstructure:"host"`
	Port            int    `yaml:"port" mapstructure:"port"`
	ReadTimeout     int    `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout    int    `yaml:"write_timeout" mapstructure:"write_timeout"`
	ShutdownTimeout int    `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
	MaxBodyBytes    int64  `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
}

// LLMConfig configures the completion provider
type LLMConfig struct {
	Provider    string  `yaml:"provider" mapstructure:"provider"` // openai, anthropic, ollama
	Model       string  `yaml:"model" mapstructure:"model"`
	APIKey      string  `yaml:"api_key,omitempty" mapstructure:"api_key"`
	BaseURL     string  `yaml:"base_url" mapstructure:"base_url"`
	Temperature float32 `yaml:"temperature" mapstructure:"temperature"`
	Timeout     int     `yaml:"timeout" mapstructure:"timeout"`
	MaxTokens   int     `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// ClientConfig configures the command-line client
type ClientConfig struct {
	Endpoint      string `yaml:"endpoint" mapstructure:"endpoint"`
	Timeout       int    `yaml:"timeout" mapstructure:"timeout"`
	MinTextLength int    `yaml:"min_text_length" mapstructure:"min_text_length"`
}

// FetchConfig configures article fetching for check --url
type FetchConfig struct {
	Timeout       int    `yaml:"timeout" mapstructure:"timeout"`
	UserAgent     string `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes  int64  `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	RespectRobots bool   `yaml:"respect_robots" mapstructure:"respect_robots"`
	HTTPProxy     string `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy    string `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     30,
			WriteTimeout:    0, // completion calls can be slow; the platform decides
			ShutdownTimeout: 30,
			MaxBodyBytes:    1 << 20,
		},
		LLM: LLMConfig{
			Provider:    "openai",
			Model:       "google/gemini-2.5-flash",
			BaseURL:     "https://ai.gateway.lovable.dev/v1",
			Temperature: 0.3,
			Timeout:     0,
			MaxTokens:   0,
		},
		Client: ClientConfig{
			Endpoint:      "http://localhost:8080/fact-check",
			Timeout:       0,
			MinTextLength: 20,
		},
		Fetch: FetchConfig{
			Timeout:       30,
			UserAgent:     "RealityCheck/0.1 (+https://github.com/ppiankov/realitycheck)",
			MaxBodyBytes:  2_000_000,
			RespectRobots: true,
		},
	}
}

// Redacted returns a copy safe to print
func (c Config) Redacted() Config {
	if c.LLM.APIKey != "" {
		c.LLM.APIKey = "********"
	}
	return c
}
