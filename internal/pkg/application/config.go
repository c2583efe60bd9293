package application

import (
	"fmt"
	"io"
	"time"

	"github.com/lemap/hubwatch/internal/pkg/application/detector"
	"github.com/lemap/hubwatch/internal/pkg/application/notifications"
	"github.com/lemap/hubwatch/internal/pkg/application/recorder"
	"github.com/lemap/hubwatch/pkg/types"
	yaml "gopkg.in/yaml.v2"
)

type RecorderConfig struct {
	// Window is the time to live given to a counter on every increment.
	Window time.Duration `yaml:"window"`
}

type Config struct {
	Catalog  types.Catalog   `yaml:"catalog"`
	Detector detector.Config `yaml:"detector"`
	Recorder RecorderConfig  `yaml:"recorder"`

	notifications.Config `yaml:",inline"`
}

func DefaultConfig() *Config {
	return &Config{
		Catalog: types.DefaultCatalog(),
		Detector: detector.Config{
			Threshold: detector.DefaultThreshold,
			Interval:  detector.DefaultInterval,
			HealthTTL: detector.DefaultHealthTTL,
		},
		Recorder: RecorderConfig{
			Window: recorder.DefaultWindow,
		},
	}
}

// LoadConfiguration reads a yaml configuration. Settings missing from the
// document keep their default values.
func LoadConfiguration(data io.Reader) (*Config, error) {
	buf, err := io.ReadAll(data)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(buf, cfg); err != nil {
		return nil, err
	}

	cfg.Catalog = cfg.Catalog.WithDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// yaml decodes a bare number into a time.Duration as nanoseconds, so
// anything shorter than a second is taken to be a missing unit.
func (c *Config) validate() error {
	durations := []struct {
		name  string
		value time.Duration
	}{
		{"detector.interval", c.Detector.Interval},
		{"detector.healthTTL", c.Detector.HealthTTL},
		{"recorder.window", c.Recorder.Window},
	}

	for _, d := range durations {
		if d.value > 0 && d.value < time.Second {
			return fmt.Errorf("%s is %s, durations need a unit such as \"30s\"", d.name, d.value)
		}
	}

	return nil
}
