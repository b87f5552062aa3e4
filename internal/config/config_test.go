package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/abhisek/fluentcheck/internal/llm"
)

// clearEnv blanks every variable Load or LLM reads.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"FLUENTCHECK_LLM_PROVIDER",
		"FLUENTCHECK_ANTHROPIC_API_KEY", "FLUENTCHECK_ANTHROPIC_MODEL",
		"FLUENTCHECK_OPENAI_API_KEY", "FLUENTCHECK_OPENAI_MODEL", "FLUENTCHECK_OPENAI_BASE_URL",
		"FLUENTCHECK_GEMINI_API_KEY", "FLUENTCHECK_GEMINI_MODEL",
		"FLUENTCHECK_OPENROUTER_API_KEY", "FLUENTCHECK_OPENROUTER_MODEL",
		"FLUENTCHECK_USE_CLASSIFIER", "FLUENTCHECK_CLASSIFIER_TIMEOUT",
		"FLUENTCHECK_DB", "FLUENTCHECK_LOG_LEVEL", "FLUENTCHECK_LOG_FORMAT",
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func missingFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "absent.env")
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	req := require.New(t)

	cfg, err := Load(missingFile(t))
	req.NoError(err)
	req.Equal(Default(), cfg)
	req.True(cfg.UseClassifier)
	req.Equal(20*time.Second, cfg.ClassifierTimeout)
	req.False(cfg.LLM().Enabled())
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	req := require.New(t)

	t.Setenv("FLUENTCHECK_LLM_PROVIDER", "OpenAI")
	t.Setenv("FLUENTCHECK_OPENAI_API_KEY", "sk-test")
	t.Setenv("FLUENTCHECK_OPENAI_MODEL", "gpt-4.1-mini")
	t.Setenv("FLUENTCHECK_CLASSIFIER_TIMEOUT", "5s")
	t.Setenv("FLUENTCHECK_USE_CLASSIFIER", "false")
	t.Setenv("FLUENTCHECK_LOG_FORMAT", "json")

	cfg, err := Load(missingFile(t))
	req.NoError(err)
	req.Equal("openai", cfg.LLMProvider)
	req.Equal(5*time.Second, cfg.ClassifierTimeout)
	req.False(cfg.UseClassifier)
	req.Equal("json", cfg.LogFormat)

	lc := cfg.LLM()
	req.Equal(llm.ProviderOpenAI, lc.Provider)
	req.Equal("sk-test", lc.OpenAI.APIKey)
	req.Equal("gpt-4.1-mini", lc.OpenAI.Model)
	req.NoError(lc.Validate())
}

func TestLoad_DotEnvFile(t *testing.T) {
	clearEnv(t)
	req := require.New(t)

	path := filepath.Join(t.TempDir(), "test.env")
	req.NoError(os.WriteFile(path, []byte("FLUENTCHECK_LLM_PROVIDER=mock\nFLUENTCHECK_DB=/tmp/fc.db\n"), 0o600))

	cfg, err := Load(path)
	req.NoError(err)
	req.Equal(llm.ProviderMock, cfg.LLMProvider)
	req.Equal("/tmp/fc.db", cfg.DBPath)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown provider", "FLUENTCHECK_LLM_PROVIDER", "cohere"},
		{"bad log level", "FLUENTCHECK_LOG_LEVEL", "verbose"},
		{"bad log format", "FLUENTCHECK_LOG_FORMAT", "xml"},
		{"bad timeout", "FLUENTCHECK_CLASSIFIER_TIMEOUT", "soon"},
		{"non-positive timeout", "FLUENTCHECK_CLASSIFIER_TIMEOUT", "0s"},
		{"bad base URL", "FLUENTCHECK_OPENAI_BASE_URL", "not a url"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load(missingFile(t))
			require.Error(t, err)
		})
	}
}

func TestLoad_NormalizesCase(t *testing.T) {
	tests := []struct {
		key, value string
		get        func(Config) string
		want       string
	}{
		{"FLUENTCHECK_LOG_LEVEL", "Warn", func(c Config) string { return c.LogLevel }, "warn"},
		{"FLUENTCHECK_LOG_LEVEL", " DEBUG ", func(c Config) string { return c.LogLevel }, "debug"},
		{"FLUENTCHECK_LOG_FORMAT", "JSON", func(c Config) string { return c.LogFormat }, "json"},
		{"FLUENTCHECK_LLM_PROVIDER", "OpenAI", func(c Config) string { return c.LLMProvider }, "openai"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			cfg, err := Load(missingFile(t))
			require.NoError(t, err)
			require.Equal(t, tt.want, tt.get(cfg))
		})
	}
}

func TestLLM_DiscoversVendorKeys(t *testing.T) {
	clearEnv(t)
	req := require.New(t)

	t.Setenv("OPENAI_API_KEY", "sk-vendor")

	cfg := Default()
	cfg.LLMProvider = ""
	lc := cfg.LLM()
	req.Equal(llm.ProviderOpenAI, lc.Provider)
	req.Equal("sk-vendor", lc.OpenAI.APIKey)

	// An explicit "none" is respected.
	cfg.LLMProvider = llm.ProviderNone
	req.False(cfg.LLM().Enabled())

	// So is a disabled classifier.
	cfg.LLMProvider = ""
	cfg.UseClassifier = false
	req.False(cfg.LLM().Enabled())
}
