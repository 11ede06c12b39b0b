// Package logger wraps zap behind a small structured logging interface.
package logger

// Logger is the structured logger used across analogstick.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	With(fields ...Field) Logger
	Sync() error
}

// Field represents a structured log field
type Field struct {
	Key   string
	Value interface{}
}

// F is shorthand for building a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Config defines logging configuration
type Config struct {
	Level       string `yaml:"level"`
	Format      string `yaml:"format"` // json or console
	Output      string `yaml:"output"` // stderr, stdout or a file path
	Development bool   `yaml:"development"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Format: "console",
		Output: "stderr",
	}
}

// WritesToTerminal reports whether log lines would land on the controlling terminal.
func (c Config) WritesToTerminal() bool {
	return c.Output == "" || c.Output == "stderr" || c.Output == "stdout"
}
