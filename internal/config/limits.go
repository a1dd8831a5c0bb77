package config

type Limits struct {
	LoopMaxIterations   int             `yaml:"loop_max_iterations" validate:"min=1,max=20"`
	QualityTarget       float64         `yaml:"quality_target" validate:"min=0,max=1"`
	EnrichMaxIterations int             `yaml:"enrich_max_iterations" validate:"min=1,max=20"`
	MaxRetries          int             `yaml:"max_retries" validate:"min=0,max=10"`
	RateLimit           RateLimitConfig `yaml:"rate_limit"`
}

type RateLimitConfig struct {
	RequestsPerMinute int `yaml:"requests_per_minute" validate:"min=1,max=1000"`
	BurstSize         int `yaml:"burst_size" validate:"min=1,max=100"`
}

func DefaultLimits() Limits {
	return Limits{
		LoopMaxIterations:   3,
		QualityTarget:       0.7,
		EnrichMaxIterations: 3,
		MaxRetries:          3,
		RateLimit: RateLimitConfig{
			RequestsPerMinute: 30,
			BurstSize:         5,
		},
	}
}
