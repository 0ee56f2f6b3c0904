package config

// LoggingConfig controls the charm logger behind every command and the run loop
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=text json logfmt"`

	// stdout, stderr or file; file requires file_path
	Output   string `mapstructure:"output" validate:"required,oneof=stdout stderr file"`
	FilePath string `mapstructure:"file_path" validate:"required_if=Output file"`

	// Prefix tags each line, e.g. with the slot when several inns share a log
	Prefix string `mapstructure:"prefix"`

	// TimeFormat is a Go reference layout; empty keeps the logger's default
	TimeFormat    string `mapstructure:"time_format"`
	IncludeCaller bool   `mapstructure:"include_caller"`
}
