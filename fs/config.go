package fs

import (
	"os"

	"gopkg.in/yaml.v3"
)

// LoadConfig reads a YAML config file, filling unset fields from
// DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.SectorSize == 0 {
		cfg.SectorSize = DefaultConfig().SectorSize
	}
	if cfg.SectorCount == 0 {
		cfg.SectorCount = DefaultConfig().SectorCount
	}
	return cfg, nil
}
