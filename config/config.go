package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port          string `mapstructure:"port"`
	SiteURL       string `mapstructure:"site_url"`
	MongoURI      string `mapstructure:"MONGODB_URI"`
	MongoDatabase string `mapstructure:"mongo_database"`

	CongressAPIBase string `mapstructure:"congress_api_base"`
	CongressAPIKey  string `mapstructure:"CONGRESS_API_KEY"`
	OpenFECAPIBase  string `mapstructure:"openfec_api_base"`
	OpenFECAPIKey   string `mapstructure:"OPENFEC_API_KEY"`

	AIProvider    string `mapstructure:"ai_provider"`
	AIEndpoint    string `mapstructure:"ai_endpoint"`
	Model         string `mapstructure:"model"`
	OpenAIAPIKey  string `mapstructure:"OPENAI_API_KEY"`
	GeminiAPIKeys string `mapstructure:"GEMINI_API_KEYS"`

	CronSecret string `mapstructure:"CRON_SECRET"`

	IngestLimit    int    `mapstructure:"ingest_limit"`
	ChamberFilter  string `mapstructure:"chamber_filter"`
	IngestSchedule string `mapstructure:"ingest_schedule"`
	UpdateSchedule string `mapstructure:"update_schedule"`
}

func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	v.AutomaticEnv()

	v.SetDefault("port", "8080")
	v.SetDefault("site_url", "http://localhost:8080")
	v.SetDefault("mongo_database", "dailylaw")
	v.SetDefault("congress_api_base", "https://api.congress.gov/v3")
	v.SetDefault("openfec_api_base", "https://api.open.fec.gov/v1")
	v.SetDefault("ai_provider", "openai")
	v.SetDefault("ingest_limit", 200)
	v.SetDefault("ingest_schedule", "0 6 * * *")
	v.SetDefault("update_schedule", "0 */5 * * *")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Secrets come from the environment, never the config file.
	v.BindEnv("MONGODB_URI")
	v.BindEnv("CONGRESS_API_KEY")
	v.BindEnv("OPENFEC_API_KEY")
	v.BindEnv("OPENAI_API_KEY")
	v.BindEnv("GEMINI_API_KEYS")
	v.BindEnv("CRON_SECRET")

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// The legislative source is a hard dependency; the jobs must not start
	// without it. The FEC key is deliberately not checked here: funding data
	// is best-effort enrichment.
	if config.CongressAPIKey == "" {
		return nil, fmt.Errorf("CONGRESS_API_KEY is required")
	}
	if config.MongoURI == "" {
		return nil, fmt.Errorf("MONGODB_URI is required")
	}

	return &config, nil
}

// GeminiKeys splits the comma-separated GEMINI_API_KEYS value.
func (c *Config) GeminiKeys() []string {
	if c.GeminiAPIKeys == "" {
		return nil
	}
	var keys []string
	for _, k := range strings.Split(c.GeminiAPIKeys, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}
