package monitor

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the host-side monitor configuration, loaded from YAML.
type Config struct {
	PortName string `yaml:"portName"`
	BaudRate int    `yaml:"baudRate"`

	// ShowDiagnostics forwards the deck's non-protocol lines to the log
	// instead of dropping them.
	ShowDiagnostics bool `yaml:"showDiagnostics"`
}

// Load reads and validates a config file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	cfg.normalize()
	return cfg, nil
}

// Validate rejects configs the monitor cannot run with.
func (c *Config) Validate() error {
	if c.PortName == "" {
		return errors.New("config: portName required")
	}
	if c.BaudRate < 0 {
		return errors.New("config: baudRate must be >= 0")
	}
	return nil
}

func (c *Config) normalize() {
	if c.BaudRate == 0 {
		c.BaudRate = 115200
	}
}
