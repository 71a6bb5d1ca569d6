package appconf

import (
	"encoding/json"
	"fmt"
	"os"
)

// JSONConfig is the file-based configuration format. Fields left out of the
// file receive defaults before validation.
type JSONConfig struct {
	Port       int      `json:"port"`
	Env        string   `json:"env"`
	ApiKeys    []string `json:"apiKeys"`
	RateLimit  int      `json:"rateLimit"`
	DataPath   string   `json:"dataPath"`
	RoutingURL string   `json:"routingUrl"`
}

func (c *JSONConfig) applyDefaults() {
	if c.Port == 0 {
		c.Port = 4000
	}
	if c.Env == "" {
		c.Env = "development"
	}
	if len(c.ApiKeys) == 0 {
		c.ApiKeys = []string{"test"}
	}
	if c.RateLimit == 0 {
		c.RateLimit = 100
	}
	if c.DataPath == "" {
		c.DataPath = "./makanmap.db"
	}
}

func (c *JSONConfig) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}
	switch c.Env {
	case "development", "test", "production":
	default:
		return fmt.Errorf("env must be one of development, test, production; got %q", c.Env)
	}
	if c.RateLimit < 1 {
		return fmt.Errorf("rate-limit must be at least 1, got %d", c.RateLimit)
	}
	if len(c.ApiKeys) == 0 {
		return fmt.Errorf("api-keys cannot be empty")
	}
	for _, key := range c.ApiKeys {
		if key == "" {
			return fmt.Errorf("api-keys cannot contain empty strings")
		}
	}
	return nil
}

// LoadFromFile reads, defaults, and validates a JSON configuration file.
func LoadFromFile(path string) (*JSONConfig, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg JSONConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse JSON config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// ToConfig converts the file representation into the runtime Config.
func (c *JSONConfig) ToConfig() Config {
	engine := DefaultEngine()
	engine.RoutingBaseURL = c.RoutingURL

	return Config{
		Port:      c.Port,
		Env:       EnvFlagToEnvironment(c.Env),
		ApiKeys:   c.ApiKeys,
		RateLimit: c.RateLimit,
		DataPath:  c.DataPath,
		Engine:    engine,
		Sources:   DefaultSourcePolicy(),
	}
}
