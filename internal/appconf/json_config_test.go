package appconf

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadFromFile_ValidConfig(t *testing.T) {
	path := writeConfigFile(t, `{"port": 3000, "env": "development"}`)

	config, err := LoadFromFile(path)
	require.NoError(t, err)
	require.NotNil(t, config)

	// Explicitly set values
	assert.Equal(t, 3000, config.Port)
	assert.Equal(t, "development", config.Env)

	// Defaults applied
	assert.Equal(t, []string{"test"}, config.ApiKeys)
	assert.Equal(t, 100, config.RateLimit)
	assert.Equal(t, "./makanmap.db", config.DataPath)
}

func TestLoadFromFile_FullConfig(t *testing.T) {
	path := writeConfigFile(t, `{
		"port": 8080,
		"env": "production",
		"apiKeys": ["key1", "key2", "key3"],
		"rateLimit": 50,
		"dataPath": "/data/makanmap.db",
		"routingUrl": "https://routing.example.com"
	}`)

	config, err := LoadFromFile(path)
	require.NoError(t, err)
	require.NotNil(t, config)

	assert.Equal(t, 8080, config.Port)
	assert.Equal(t, "production", config.Env)
	assert.Equal(t, []string{"key1", "key2", "key3"}, config.ApiKeys)
	assert.Equal(t, 50, config.RateLimit)
	assert.Equal(t, "/data/makanmap.db", config.DataPath)
	assert.Equal(t, "https://routing.example.com", config.RoutingURL)
}

func TestLoadFromFile_MalformedJSON(t *testing.T) {
	path := writeConfigFile(t, `{"port": 3000,`)

	config, err := LoadFromFile(path)
	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to parse JSON config")
}

func TestLoadFromFile_InvalidConfig(t *testing.T) {
	path := writeConfigFile(t, `{"env": "staging"}`)

	config, err := LoadFromFile(path)
	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestLoadFromFile_FileNotFound(t *testing.T) {
	config, err := LoadFromFile("nonexistent.json")
	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to stat config file")
}

func TestValidate_InvalidPort(t *testing.T) {
	tests := []struct {
		name string
		port int
	}{
		{"port negative", -1},
		{"port too high", 99999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &JSONConfig{
				Port:      tt.port,
				Env:       "development",
				ApiKeys:   []string{"test"},
				RateLimit: 100,
			}
			err := config.validate()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "port must be between")
		})
	}
}

func TestValidate_InvalidEnv(t *testing.T) {
	config := &JSONConfig{
		Port:      4000,
		Env:       "staging",
		ApiKeys:   []string{"test"},
		RateLimit: 100,
	}
	err := config.validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "env must be one of")
}

func TestValidate_InvalidRateLimit(t *testing.T) {
	config := &JSONConfig{
		Port:      4000,
		Env:       "development",
		ApiKeys:   []string{"test"},
		RateLimit: -1,
	}
	err := config.validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "rate-limit must be at least 1")
}

func TestValidate_EmptyApiKeyString(t *testing.T) {
	config := &JSONConfig{
		Port:      4000,
		Env:       "development",
		ApiKeys:   []string{"test", ""},
		RateLimit: 100,
	}
	err := config.validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "api-keys cannot contain empty strings")
}

func TestToConfig(t *testing.T) {
	jsonConfig := &JSONConfig{
		Port:       8080,
		Env:        "production",
		ApiKeys:    []string{"k"},
		RateLimit:  10,
		DataPath:   "/tmp/db",
		RoutingURL: "https://routing.example.com",
	}

	config := jsonConfig.ToConfig()

	assert.Equal(t, 8080, config.Port)
	assert.Equal(t, Production, config.Env)
	assert.Equal(t, "https://routing.example.com", config.Engine.RoutingBaseURL)
	assert.Equal(t, 1.3, config.Engine.WalkingDetourFactor)
}
