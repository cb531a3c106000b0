package server

import "strings"

// Config holds configuration for the fixture replay server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"1325"`
	// Root is the directory holding recorded JSON bodies.
	Root string `mapstructure:"root" default:"fixtures"`
	// Bind is the address the server binds to.
	Bind string `mapstructure:"bind" default:"127.0.0.1"`
}

// Address returns the listen address in host:port form.
func (c Config) Address() string {
	return c.Bind + ":" + strings.TrimPrefix(c.Port, ":")
}

// IsValid checks that the port and recording root are set.
func (c Config) IsValid() bool {
	return strings.TrimPrefix(c.Port, ":") != "" && c.Root != ""
}
