package config

import (
	"net"
	"strconv"
)

// MetricsConfig controls the Prometheus endpoint served by "cozyhearth run"
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// Listen address; port 0 picks a free port
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port" validate:"omitempty,min=1024,max=65535"`

	// Scrape path, "/metrics" by default
	Path string `mapstructure:"path" validate:"omitempty,startswith=/"`
}

// Address joins Host and Port
func (c MetricsConfig) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
