package config

// Default configuration values.
const (
	DefaultFormat = "text"
	DefaultFailOn = "major"
)

// ApplyDefaults fills in a Config's zero-valued fields with defaults.
func ApplyDefaults(c *Config) {
	if c == nil {
		return
	}
	if c.Format == "" {
		c.Format = DefaultFormat
	}
	if c.FailOn == "" {
		c.FailOn = DefaultFailOn
	}
}
