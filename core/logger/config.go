package logger

// Config holds configuration for the logger.
type Config struct {
	// Level is the minimum enabled level (debug, info, warn, error).
	Level string `mapstructure:"level" default:"info"`
	// Format selects the console flavour: "console" (colored levels) or "plain".
	Format string `mapstructure:"format" default:"console"`
}

const (
	FormatConsole = "console"
	FormatPlain   = "plain"
)
