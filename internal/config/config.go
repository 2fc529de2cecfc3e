// Package config provides configuration loading and validation for the CLI.
package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/jonathan/job-fit-analyzer/internal/llm"
	"github.com/jonathan/job-fit-analyzer/internal/location"
	"github.com/jonathan/job-fit-analyzer/internal/secrets"
)

const (
	// EnvPrefix prefixes every environment override, e.g. FIT_AGENT_CACHE_MAX_SIZE
	EnvPrefix = "FIT_AGENT"
	// DefaultName is the config file looked up in the working directory
	DefaultName = "fit_agent"
)

// Config is the full runtime configuration
type Config struct {
	LLM      LLMConfig      `mapstructure:"llm"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Evidence EvidenceConfig `mapstructure:"evidence"`
	Store    StoreConfig    `mapstructure:"store"`
	Batch    BatchConfig    `mapstructure:"batch"`
	Profile  ProfileConfig  `mapstructure:"profile"`
}

// LLMConfig selects the model backend
type LLMConfig struct {
	Provider   string        `mapstructure:"provider" validate:"oneof=gemini vertex"`
	APIKey     string        `mapstructure:"api_key"`
	APIKeyFile string        `mapstructure:"api_key_file"`
	Project    string        `mapstructure:"project"`
	Location   string        `mapstructure:"location"`
	Models     ModelsConfig  `mapstructure:"models"`
	Timeout    time.Duration `mapstructure:"timeout" validate:"gte=0"`
}

// ModelsConfig maps tiers to model names
type ModelsConfig struct {
	Lite     string `mapstructure:"lite"`
	Standard string `mapstructure:"standard" validate:"required"`
	Advanced string `mapstructure:"advanced"`
}

// CacheConfig sizes the AI result cache
type CacheConfig struct {
	MaxSize  int           `mapstructure:"max_size" validate:"gte=1"`
	TTL      time.Duration `mapstructure:"ttl" validate:"gte=0"`
	RedisURL string        `mapstructure:"redis_url"`
}

// EvidenceConfig configures career-document search
type EvidenceConfig struct {
	DatabaseURL         string        `mapstructure:"database_url"`
	EmbeddingModel      string        `mapstructure:"embedding_model"`
	Dimensions          int           `mapstructure:"dimensions" validate:"gte=1"`
	SimilarityThreshold float64       `mapstructure:"similarity_threshold" validate:"gte=0,lte=1"`
	MaxResults          int           `mapstructure:"max_results" validate:"gte=1"`
	Timeout             time.Duration `mapstructure:"timeout" validate:"gte=0"`
}

// StoreConfig selects the job store
type StoreConfig struct {
	Driver string `mapstructure:"driver" validate:"oneof=postgres sqlite"`
	DSN    string `mapstructure:"dsn"`
}

// BatchConfig holds batch analysis defaults
type BatchConfig struct {
	MinDescriptionLength int           `mapstructure:"min_description_length" validate:"gte=1"`
	Limit                int           `mapstructure:"limit" validate:"gte=1"`
	Delay                time.Duration `mapstructure:"delay" validate:"gte=0"`
}

// ProfileConfig overrides parts of the candidate profile
type ProfileConfig struct {
	HomeState string `mapstructure:"home_state" validate:"len=2,us_state"`
	// Skills replaces the built-in skill list when set. Names are normalized.
	Skills []string `mapstructure:"skills"`
}

// wellKnownEnv binds unprefixed variables shared with other tools
var wellKnownEnv = map[string]string{
	"llm.api_key":           "GEMINI_API_KEY",
	"store.dsn":             "DATABASE_URL",
	"cache.redis_url":       "REDIS_URL",
	"evidence.database_url": "EVIDENCE_DATABASE_URL",
}

func setDefaults(v *viper.Viper) {
	models := llm.DefaultConfig()
	v.SetDefault("llm.provider", string(llm.ProviderGemini))
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.api_key_file", "")
	v.SetDefault("llm.project", "")
	v.SetDefault("llm.location", models.Location)
	v.SetDefault("llm.models.lite", models.GetModel(llm.TierLite))
	v.SetDefault("llm.models.standard", models.GetModel(llm.TierStandard))
	v.SetDefault("llm.models.advanced", models.GetModel(llm.TierAdvanced))
	v.SetDefault("llm.timeout", 60*time.Second)

	v.SetDefault("cache.max_size", 500)
	v.SetDefault("cache.ttl", 24*time.Hour)
	v.SetDefault("cache.redis_url", "")

	v.SetDefault("evidence.database_url", "")
	v.SetDefault("evidence.embedding_model", models.EmbeddingModel)
	v.SetDefault("evidence.dimensions", 1536)
	v.SetDefault("evidence.similarity_threshold", 0.5)
	v.SetDefault("evidence.max_results", 5)
	v.SetDefault("evidence.timeout", 10*time.Second)

	v.SetDefault("store.driver", "postgres")
	v.SetDefault("store.dsn", "")

	v.SetDefault("batch.min_description_length", 500)
	v.SetDefault("batch.limit", 10)
	v.SetDefault("batch.delay", time.Second)

	v.SetDefault("profile.home_state", "GA")
}

// Load reads the configuration from path, or from fit_agent.{yaml,json} in the
// working directory when path is empty, then applies environment overrides.
// A missing default file is not an error; a missing explicit file is.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range wellKnownEnv {
		prefixed := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(DefaultName)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.Profile.HomeState = strings.ToUpper(strings.TrimSpace(cfg.Profile.HomeState))
	return &cfg, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("us_state", func(fl validator.FieldLevel) bool {
		return location.IsState(fl.Field().String())
	})
	return v
}

// Validate checks value ranges and enumerations. Only the first violation is reported.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("config error: %w", err)
	}
	fe := verrs[0]
	field := fe.Namespace()
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}
	return fmt.Errorf("config error: '%s' %s", field, describe(fe))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "len":
		return fmt.Sprintf("must be exactly %s characters", fe.Param())
	case "required":
		return "is required"
	case "us_state":
		return "must be a US state code"
	}
	return fmt.Sprintf("failed the %s check", fe.Tag())
}

// APIKey resolves the model API key from the file or inline value
func (c *Config) APIKey() (string, error) {
	return secrets.Load(secrets.Source{Name: "Gemini API key", Value: c.LLM.APIKey, File: c.LLM.APIKeyFile})
}

// LLMClientConfig converts the model settings for llm.NewClient
func (c *Config) LLMClientConfig() *llm.Config {
	cfg := llm.DefaultConfig()
	cfg.Provider = llm.Provider(c.LLM.Provider)
	cfg.Project = c.LLM.Project
	if c.LLM.Location != "" {
		cfg.Location = c.LLM.Location
	}
	if c.Evidence.EmbeddingModel != "" {
		cfg.EmbeddingModel = c.Evidence.EmbeddingModel
	}
	for tier, model := range map[llm.ModelTier]string{
		llm.TierLite:     c.LLM.Models.Lite,
		llm.TierStandard: c.LLM.Models.Standard,
		llm.TierAdvanced: c.LLM.Models.Advanced,
	} {
		if model != "" {
			cfg = cfg.WithModel(tier, model)
		}
	}
	return cfg
}
