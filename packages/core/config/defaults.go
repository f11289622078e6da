package config

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		EmptySections: EmptySectionsOmit,
		PendingSplit:  PendingSplitFixme,
		MinFileColumn: 25,
		Output:        "-",
	}
}
