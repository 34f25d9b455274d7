package slack

import "time"

// Defaults of the incoming webhook transport
const (
	DefaultWebHookURL = "https://hooks.slack.com/services/"
	DefaultUserAgent  = "slackmsg/1.0"
	DefaultTimeout    = 2 * time.Second
	DefaultRetries    = 3
)

// Config describes the incoming webhook transport
type Config struct {
	URL       string
	UserAgent string
	Timeout   time.Duration
	Retries   int
}

// DefaultConfig returns the config used for empty Config fields
func DefaultConfig() Config {
	return Config{
		URL:       DefaultWebHookURL,
		UserAgent: DefaultUserAgent,
		Timeout:   DefaultTimeout,
		Retries:   DefaultRetries,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.URL == "" {
		c.URL = def.URL
	}
	if c.UserAgent == "" {
		c.UserAgent = def.UserAgent
	}
	if c.Timeout <= 0 {
		c.Timeout = def.Timeout
	}
	if c.Retries <= 0 {
		c.Retries = def.Retries
	}
	return c
}
