package sse

import "time"

// Config holds configuration for SSE connections
type Config struct {
	// KeepAliveInterval is how often a comment line is sent to keep proxies
	// from closing an idle stream
	KeepAliveInterval time.Duration

	// Retry is the reconnect delay suggested to EventSource clients
	Retry time.Duration
}

// DefaultConfig returns the default SSE configuration
func DefaultConfig() *Config {
	return &Config{
		KeepAliveInterval: 10 * time.Second,
		Retry:             2 * time.Second,
	}
}
