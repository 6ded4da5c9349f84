package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "k")
	t.Setenv("FREIGHT_AUTH_MODE", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, AuthNone, cfg.Auth.Mode)
	assert.Equal(t, 60*time.Second, cfg.Flow.Timeout)
	assert.Equal(t, 300*time.Second, cfg.Flow.CacheTTL)
	assert.Equal(t, "flow-invocations", cfg.Kafka.Topic)
	assert.Equal(t, "en", cfg.Locale.Default)
}

func TestLoadRunnerURLTrimsSlash(t *testing.T) {
	t.Setenv("FREIGHT_FLOW_RUNNER_URL", "http://flows:3400/")
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://flows:3400", cfg.Flow.RunnerURL)
}

func TestLoadRejectsInvalidCombinations(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
	}{
		{"token mode without token", map[string]string{"GEMINI_API_KEY": "k", "FREIGHT_AUTH_MODE": "token"}},
		{"firebase without project", map[string]string{"GEMINI_API_KEY": "k", "FREIGHT_AUTH_MODE": "firebase"}},
		{"unknown auth mode", map[string]string{"GEMINI_API_KEY": "k", "FREIGHT_AUTH_MODE": "basic"}},
		{"no flow runtime", map[string]string{"GEMINI_API_KEY": "", "FREIGHT_FLOW_RUNNER_URL": ""}},
		{"negative timeout", map[string]string{"GEMINI_API_KEY": "k", "FREIGHT_FLOW_TIMEOUT": "-1"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadZeroTimeoutDisablesIt(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "k")
	t.Setenv("FREIGHT_FLOW_TIMEOUT", "0")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Zero(t, cfg.Flow.Timeout)
}
