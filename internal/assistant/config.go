package assistant

// Config holds model request settings for the assistant.
type Config struct {
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
}

// DefaultConfig returns the settings used when none are configured.
// Zero values leave the provider defaults in place, so completions are not
// capped unless max_tokens is set.
func DefaultConfig() Config {
	return Config{}
}
