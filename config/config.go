package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Engine    EngineConfig    `mapstructure:"engine"`
	Platforms PlatformsConfig `mapstructure:"platforms"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// EngineConfig holds scoring/visibility engine configuration
type EngineConfig struct {
	MaxQueriesPerPlatform int           `mapstructure:"max_queries_per_platform"`
	QueryTimeout          time.Duration `mapstructure:"query_timeout"`
	ReportCacheTTL        time.Duration `mapstructure:"report_cache_ttl"`
	MaxCachedReports      int           `mapstructure:"max_cached_reports"`
	RecommendationLimit   int           `mapstructure:"recommendation_limit"`
	DataDir               string        `mapstructure:"data_dir"`
}

// PlatformsConfig names the answer platforms and their credentials. A
// platform without an API key is simply excluded from checking.
type PlatformsConfig struct {
	Gemini     GeminiConfig     `mapstructure:"gemini"`
	OpenAI     OpenAIConfig     `mapstructure:"openai"`
	Perplexity PerplexityConfig `mapstructure:"perplexity"`
}

// GeminiConfig holds Gemini API configuration
type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// OpenAIConfig holds OpenAI API configuration
type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

// PerplexityConfig holds Perplexity API configuration
type PerplexityConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

// RateLimitConfig holds public-endpoint rate limiter parameters
type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

// Load loads configuration from file and environment
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	setDefaults(v)
	bindEnvVars(v)

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is not an error, defaults and env apply
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8082)
	v.SetDefault("server.mode", "release")

	v.SetDefault("engine.max_queries_per_platform", 3)
	v.SetDefault("engine.query_timeout", "20s")
	v.SetDefault("engine.report_cache_ttl", "30m")
	v.SetDefault("engine.max_cached_reports", 1000)
	v.SetDefault("engine.recommendation_limit", 10)
	v.SetDefault("engine.data_dir", "./data")

	v.SetDefault("platforms.gemini.model", "gemini-1.5-flash")
	v.SetDefault("platforms.openai.base_url", "https://api.openai.com/v1")
	v.SetDefault("platforms.openai.model", "gpt-4o-mini")
	v.SetDefault("platforms.perplexity.base_url", "https://api.perplexity.ai")
	v.SetDefault("platforms.perplexity.model", "sonar")

	v.SetDefault("rate_limit.requests_per_second", 2)
	v.SetDefault("rate_limit.burst", 5)
}

func bindEnvVars(v *viper.Viper) {
	v.SetEnvPrefix("AIVIS")
	v.AutomaticEnv()

	v.BindEnv("server.port", "PORT")
	v.BindEnv("platforms.gemini.api_key", "GEMINI_API_KEY")
	v.BindEnv("platforms.openai.api_key", "OPENAI_API_KEY")
	v.BindEnv("platforms.perplexity.api_key", "PERPLEXITY_API_KEY")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Engine.MaxQueriesPerPlatform <= 0 {
		return fmt.Errorf("engine.max_queries_per_platform must be positive")
	}
	if c.Engine.QueryTimeout <= 0 {
		return fmt.Errorf("engine.query_timeout must be positive")
	}
	if c.RateLimit.RequestsPerSecond <= 0 {
		return fmt.Errorf("rate_limit.requests_per_second must be positive")
	}
	return nil
}
