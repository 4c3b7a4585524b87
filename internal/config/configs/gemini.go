package configs

import "time"

// Gemini configures the generateContent collaborator. An empty APIKey keeps
// the service in demo mode until a key is set at runtime.
type Gemini struct {
	APIKey     string        `env:"API_KEY"`
	Model      string        `env:"MODEL" envDefault:"gemini-2.5-flash"`
	BaseURL    string        `env:"BASE_URL"`
	APIVersion string        `env:"API_VERSION" envDefault:"v1beta"`
	Timeout    time.Duration `env:"TIMEOUT" envDefault:"60s"`
}
