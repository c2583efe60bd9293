package detector

import "time"

const (
	DefaultThreshold = 3
	DefaultInterval  = 30 * time.Second
	DefaultHealthTTL = 900 * time.Second
)

type Config struct {
	// Threshold is the number of occurrences within the counter window
	// that makes a spike.
	Threshold int `yaml:"threshold"`
	// Interval is the time between two detection cycles.
	Interval time.Duration `yaml:"interval"`
	// HealthTTL is how long a hub stays unhealthy after a spike.
	HealthTTL time.Duration `yaml:"healthTTL"`
}

func (c Config) withDefaults() Config {
	if c.Threshold < 1 {
		c.Threshold = DefaultThreshold
	}
	if c.Interval <= 0 {
		c.Interval = DefaultInterval
	}
	if c.HealthTTL <= 0 {
		c.HealthTTL = DefaultHealthTTL
	}
	return c
}
