package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the main application configuration struct. It is resolved
// once at startup and passed explicitly into constructors.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Store  StoreConfig  `mapstructure:"store"`
	LLM    LLMConfig    `mapstructure:"llm"`
	Sheets SheetsConfig `mapstructure:"sheets"`
	Log    LogConfig    `mapstructure:"log"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type StoreConfig struct {
	// Backend selects where the single collection slot lives:
	// "file" (default) or "redis".
	Backend  string `mapstructure:"backend"`
	FilePath string `mapstructure:"file_path"`
	RedisURL string `mapstructure:"redis_url"`
	RedisKey string `mapstructure:"redis_key"`
}

type LLMConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type SheetsConfig struct {
	CredentialsFile string `mapstructure:"credentials_file"`
	TokenFile       string `mapstructure:"token_file"`
	SpreadsheetName string `mapstructure:"spreadsheet_name"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

// Load reads configuration from config.yaml (optional) with environment
// overrides like JOBTRAIL_LLM_API_KEY. A local .env is loaded first.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")

	v.SetEnvPrefix("JOBTRAIL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Store.Backend == "" {
		cfg.Store.Backend = "file"
	}
	if cfg.Store.FilePath == "" {
		cfg.Store.FilePath = "jobtrail.json"
	}
	if cfg.Store.RedisKey == "" {
		cfg.Store.RedisKey = "jobtrail:applications"
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = "gemini-2.5-flash"
	}
	if cfg.Sheets.CredentialsFile == "" {
		cfg.Sheets.CredentialsFile = "credentials.json"
	}
	if cfg.Sheets.TokenFile == "" {
		cfg.Sheets.TokenFile = "token.json"
	}
	if cfg.Sheets.SpreadsheetName == "" {
		cfg.Sheets.SpreadsheetName = "JobTrail Applications"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

func validate(cfg *Config) error {
	switch cfg.Store.Backend {
	case "file", "redis":
	default:
		return fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
	if cfg.Store.Backend == "redis" && cfg.Store.RedisURL == "" {
		return fmt.Errorf("store.redis_url is required for the redis backend")
	}
	return nil
}
