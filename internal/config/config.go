package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds all runtime settings. Values come from a .env file when
// present, with environment variables taking precedence.
type Config struct {
	AppPort      int    `mapstructure:"APP_PORT"`
	DatabasePath string `mapstructure:"DATABASE_PATH"`
	UploadDir    string `mapstructure:"UPLOAD_DIR"`
	BaseURL      string `mapstructure:"BASE_URL"`

	// External memory service (PowerMem wrapper).
	MemoryAPIURL      string `mapstructure:"MEMORY_API_URL"`
	MemorySearchLimit int    `mapstructure:"MEMORY_SEARCH_LIMIT"`

	// Qwen via the DashScope OpenAI-compatible endpoint.
	LLMBaseURL     string `mapstructure:"LLM_BASE_URL"`
	LLMAPIKey      string `mapstructure:"LLM_API_KEY"`
	LLMModel       string `mapstructure:"LLM_MODEL"`
	LLMVisionModel string `mapstructure:"LLM_VISION_MODEL"`

	LogLevel string `mapstructure:"LOG_LEVEL"`
}

func LoadConfig() (*Config, error) {
	viper.SetDefault("APP_PORT", 8000)
	viper.SetDefault("DATABASE_PATH", "/data/membox.db")
	viper.SetDefault("UPLOAD_DIR", "/data/uploads")
	viper.SetDefault("BASE_URL", "http://localhost:8000")
	viper.SetDefault("MEMORY_API_URL", "http://localhost:8765")
	viper.SetDefault("MEMORY_SEARCH_LIMIT", 5)
	viper.SetDefault("LLM_BASE_URL", "https://dashscope.aliyuncs.com/compatible-mode/v1")
	viper.SetDefault("LLM_API_KEY", "")
	viper.SetDefault("LLM_MODEL", "qwen-plus")
	viper.SetDefault("LLM_VISION_MODEL", "qwen-vl-plus")
	viper.SetDefault("LOG_LEVEL", "INFO")

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./backend")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
