package commons

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"karkhana/internal/config"
)

// LoadConfig reads a yaml config file. Used for deployments that mount a
// config file instead of setting environment variables; config.Load is the
// env-driven path.
func LoadConfig(path string) (*config.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return &cfg, nil
}
