// Package calib builds and persists master calibration frames from raw
// calibration exposures. It consumes the spe package and never touches the
// binary format itself.
package calib

import (
	"fmt"
	"os"
	"sort"

	"github.com/goccy/go-json"
)

// ImageTypes are the calibration exposure kinds the pipeline understands.
var ImageTypes = []string{"bias", "dark", "flat"}

// Config is the pipeline configuration file: per image type, the raw
// calibration SPE file and the master artifact path. A master path may be
// empty, in which case the master is rebuilt every run and never persisted.
type Config struct {
	Calib  map[string]string `json:"calib"`
	Master map[string]string `json:"master"`
}

// LoadConfig reads and validates a JSON configuration file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	known := make(map[string]bool, len(ImageTypes))
	for _, t := range ImageTypes {
		known[t] = true
	}
	if len(c.Calib) == 0 {
		return fmt.Errorf("no calibration files configured")
	}
	for imtype := range c.Calib {
		if !known[imtype] {
			return fmt.Errorf("unknown image type %q", imtype)
		}
	}
	for imtype := range c.Master {
		if _, ok := c.Calib[imtype]; !ok {
			return fmt.Errorf("master %q has no calibration file", imtype)
		}
	}
	return nil
}

// imageTypes returns the configured image types in stable order.
func (c Config) imageTypes() []string {
	types := make([]string, 0, len(c.Calib))
	for t := range c.Calib {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
