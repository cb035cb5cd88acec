package autoextract

// Config holds tunable settings for extraction, fetching, and serving.
// The zero value fails validation; start from DefaultConfig.
type Config struct {
	Extractor ExtractorConfig `yaml:"extractor" json:"extractor"`
	Fetch     FetchConfig     `yaml:"fetch" json:"fetch"`
	Server    ServerConfig    `yaml:"server" json:"server"`
}

// ExtractorConfig tunes list detection thresholds.
type ExtractorConfig struct {
	// MinNumber is the smallest sibling-group size treated as a list.
	MinNumber int `yaml:"min_number" json:"minNumber"`

	// MinLength and MaxLength bound the expected link text length in runes.
	MinLength int `yaml:"min_length" json:"minLength"`
	MaxLength int `yaml:"max_length" json:"maxLength"`

	// SimilarityThreshold is the minimum mean shape similarity a
	// candidate must share with its siblings, in [0, 1].
	SimilarityThreshold float64 `yaml:"similarity_threshold" json:"similarityThreshold"`
}

// FetchConfig tunes HTTP fetching.
type FetchConfig struct {
	// TimeoutSeconds bounds each fetch.
	TimeoutSeconds int `yaml:"timeout_seconds" json:"timeoutSeconds"`

	// RatePerSecond is the per-domain request rate for batch runs.
	RatePerSecond float64 `yaml:"rate_per_second" json:"ratePerSecond"`
}

// ServerConfig tunes the HTTP API server.
type ServerConfig struct {
	Addr string `yaml:"addr" json:"addr"`
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		Extractor: ExtractorConfig{
			MinNumber:           DefaultMinNumber,
			MinLength:           DefaultMinLength,
			MaxLength:           DefaultMaxLength,
			SimilarityThreshold: DefaultSimilarityThreshold,
		},
		Fetch: FetchConfig{
			TimeoutSeconds: 10,
			RatePerSecond:  1.0,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

// Validate returns an error if the config contains invalid fields.
func (c *Config) Validate() error {
	if c.Extractor.MinNumber < 1 {
		return Errorf(EINVALID, "extractor min_number must be at least 1")
	}
	if c.Extractor.MinLength < 0 {
		return Errorf(EINVALID, "extractor min_length must not be negative")
	}
	if c.Extractor.MaxLength < c.Extractor.MinLength {
		return Errorf(EINVALID, "extractor max_length %d below min_length %d", c.Extractor.MaxLength, c.Extractor.MinLength)
	}
	if c.Extractor.SimilarityThreshold < 0 || c.Extractor.SimilarityThreshold > 1 {
		return Errorf(EINVALID, "extractor similarity_threshold must be within [0, 1]")
	}
	if c.Fetch.TimeoutSeconds < 0 {
		return Errorf(EINVALID, "fetch timeout_seconds must not be negative")
	}
	if c.Fetch.RatePerSecond <= 0 {
		return Errorf(EINVALID, "fetch rate_per_second must be positive")
	}
	if c.Server.Addr == "" {
		return Errorf(EINVALID, "server addr required")
	}
	return nil
}
