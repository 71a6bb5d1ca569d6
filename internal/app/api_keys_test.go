package app

import (
	"github.com/stretchr/testify/assert"
	"makanmap.sg/internal/appconf"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestBlankKeyIsInvalid(t *testing.T) {
	app := &Application{
		Config: appconf.Config{
			ApiKeys: []string{"key"},
		},
	}
	assert.True(t, app.IsInvalidAPIKey(""))
}

func TestIsInvalidAPIKey(t *testing.T) {
	tests := []struct {
		name          string
		configKeys    []string
		testKey       string
		shouldBeValid bool
	}{
		{
			name:          "Valid key matches configured key",
			configKeys:    []string{"test-key", "another-key"},
			testKey:       "test-key",
			shouldBeValid: true,
		},
		{
			name:          "Valid key matches second configured key",
			configKeys:    []string{"test-key", "another-key"},
			testKey:       "another-key",
			shouldBeValid: true,
		},
		{
			name:          "Invalid key does not match any configured key",
			configKeys:    []string{"test-key", "another-key"},
			testKey:       "wrong-key",
			shouldBeValid: false,
		},
		{
			name:          "Empty key is invalid",
			configKeys:    []string{"test-key"},
			testKey:       "",
			shouldBeValid: false,
		},
		{
			name:          "Key with whitespace does not match trimmed key",
			configKeys:    []string{"test-key"},
			testKey:       " test-key ",
			shouldBeValid: false,
		},
		{
			name:          "No configured keys rejects everything",
			configKeys:    []string{},
			testKey:       "anything",
			shouldBeValid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := &Application{
				Config: appconf.Config{ApiKeys: tt.configKeys},
			}
			assert.Equal(t, !tt.shouldBeValid, app.IsInvalidAPIKey(tt.testKey))
		})
	}
}

func TestRequestHasInvalidAPIKey(t *testing.T) {
	app := &Application{
		Config: appconf.Config{ApiKeys: []string{"test-key"}},
	}

	r := httptest.NewRequest(http.MethodGet, "/api/where/search/food.json?key=test-key", nil)
	assert.False(t, app.RequestHasInvalidAPIKey(r))

	r = httptest.NewRequest(http.MethodGet, "/api/where/search/food.json?key=bogus", nil)
	assert.True(t, app.RequestHasInvalidAPIKey(r))

	r = httptest.NewRequest(http.MethodGet, "/api/where/search/food.json", nil)
	assert.True(t, app.RequestHasInvalidAPIKey(r))
}
