package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonathan/job-fit-analyzer/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, env := range wellKnownEnv {
		t.Setenv(env, "")
	}
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, "gemini-2.5-flash", cfg.LLM.Models.Standard)
	assert.Equal(t, 60*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 500, cfg.Cache.MaxSize)
	assert.Equal(t, 24*time.Hour, cfg.Cache.TTL)
	assert.Equal(t, "gemini-embedding-001", cfg.Evidence.EmbeddingModel)
	assert.Equal(t, 1536, cfg.Evidence.Dimensions)
	assert.InDelta(t, 0.5, cfg.Evidence.SimilarityThreshold, 1e-9)
	assert.Equal(t, 5, cfg.Evidence.MaxResults)
	assert.Equal(t, 10*time.Second, cfg.Evidence.Timeout)
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, 500, cfg.Batch.MinDescriptionLength)
	assert.Equal(t, 10, cfg.Batch.Limit)
	assert.Equal(t, time.Second, cfg.Batch.Delay)
	assert.Equal(t, "GA", cfg.Profile.HomeState)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_YAMLFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "fit_agent.yaml", `
llm:
  provider: vertex
  project: my-project
  models:
    advanced: gemini-2.5-pro-exp
cache:
  max_size: 50
  ttl: 1h
store:
  driver: sqlite
  dsn: /tmp/jobs.db
profile:
  home_state: fl
  skills: [golang, k8s]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "vertex", cfg.LLM.Provider)
	assert.Equal(t, "my-project", cfg.LLM.Project)
	assert.Equal(t, "gemini-2.5-pro-exp", cfg.LLM.Models.Advanced)
	assert.Equal(t, "gemini-2.5-flash", cfg.LLM.Models.Standard)
	assert.Equal(t, 50, cfg.Cache.MaxSize)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "/tmp/jobs.db", cfg.Store.DSN)
	assert.Equal(t, "FL", cfg.Profile.HomeState)
	assert.Equal(t, []string{"golang", "k8s"}, cfg.Profile.Skills)
}

func TestLoad_JSONFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "config.json", `{"batch": {"limit": 25, "delay": "3s"}}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.Batch.Limit)
	assert.Equal(t, 3*time.Second, cfg.Batch.Delay)
}

func TestLoad_DiscoversDefaultFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fit_agent.yaml"), []byte("batch:\n  limit: 3\n"), 0o644))
	t.Chdir(dir)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Batch.Limit)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("FIT_AGENT_CACHE_MAX_SIZE", "42")
	t.Setenv("FIT_AGENT_BATCH_DELAY", "250ms")
	t.Setenv("GEMINI_API_KEY", "from-env")
	t.Setenv("DATABASE_URL", "postgres://localhost/jobs")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("EVIDENCE_DATABASE_URL", "postgres://localhost/evidence")
	path := writeConfig(t, "fit_agent.yaml", "cache:\n  max_size: 7\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 42, cfg.Cache.MaxSize, "environment wins over the file")
	assert.Equal(t, 250*time.Millisecond, cfg.Batch.Delay)
	assert.Equal(t, "from-env", cfg.LLM.APIKey)
	assert.Equal(t, "postgres://localhost/jobs", cfg.Store.DSN)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Cache.RedisURL)
	assert.Equal(t, "postgres://localhost/evidence", cfg.Evidence.DatabaseURL)
}

func TestLoad_PrefixedKeyWinsOverWellKnown(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "shared")
	t.Setenv("FIT_AGENT_LLM_API_KEY", "dedicated")

	cfg, err := Load(writeConfig(t, "c.yaml", "{}"))
	require.NoError(t, err)
	assert.Equal(t, "dedicated", cfg.LLM.APIKey)
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)

	t.Run("missing explicit file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read config file")
	})

	t.Run("malformed file", func(t *testing.T) {
		_, err := Load(writeConfig(t, "bad.json", "{ invalid json }"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read config file")
	})
}

func validConfig(t *testing.T) *Config {
	t.Helper()
	clearEnv(t)
	t.Chdir(t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"unknown provider", func(c *Config) { c.LLM.Provider = "openai" }, "config error: 'llm.provider' must be one of [gemini vertex]"},
		{"empty standard model", func(c *Config) { c.LLM.Models.Standard = "" }, "config error: 'llm.models.standard' is required"},
		{"zero cache size", func(c *Config) { c.Cache.MaxSize = 0 }, "config error: 'cache.max_size' must be at least 1"},
		{"threshold above one", func(c *Config) { c.Evidence.SimilarityThreshold = 1.5 }, "config error: 'evidence.similarity_threshold' must be at most 1"},
		{"unknown driver", func(c *Config) { c.Store.Driver = "mysql" }, "config error: 'store.driver' must be one of [postgres sqlite]"},
		{"negative batch delay", func(c *Config) { c.Batch.Delay = -time.Second }, "config error: 'batch.delay' must be at least 0"},
		{"full state name", func(c *Config) { c.Profile.HomeState = "Georgia" }, "config error: 'profile.home_state' must be exactly 2 characters"},
		{"unknown state code", func(c *Config) { c.Profile.HomeState = "XX" }, "config error: 'profile.home_state' must be a US state code"},
		{"zero min description length", func(c *Config) { c.Batch.MinDescriptionLength = 0 }, "config error: 'batch.min_description_length' must be at least 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(cfg)
			require.EqualError(t, cfg.Validate(), tt.wantErr)
		})
	}
}

func TestAPIKey(t *testing.T) {
	cfg := &Config{}
	_, err := cfg.APIKey()
	require.EqualError(t, err, "Gemini API key is not configured")

	cfg.LLM.APIKey = " inline "
	key, err := cfg.APIKey()
	require.NoError(t, err)
	assert.Equal(t, "inline", key)

	cfg.LLM.APIKeyFile = writeConfig(t, "key", "from-file\n")
	key, err = cfg.APIKey()
	require.NoError(t, err)
	assert.Equal(t, "from-file", key)
}

func TestLLMClientConfig(t *testing.T) {
	cfg := validConfig(t)
	cfg.LLM.Provider = "vertex"
	cfg.LLM.Project = "proj"
	cfg.LLM.Models.Advanced = "custom-pro"

	got := cfg.LLMClientConfig()

	assert.Equal(t, llm.ProviderVertex, got.Provider)
	assert.Equal(t, "proj", got.Project)
	assert.Equal(t, "us-central1", got.Location)
	assert.Equal(t, "custom-pro", got.GetModel(llm.TierAdvanced))
	assert.Equal(t, "gemini-2.5-flash", got.GetModel(llm.TierStandard))
	assert.Equal(t, "gemini-embedding-001", got.EmbeddingModel)
}
