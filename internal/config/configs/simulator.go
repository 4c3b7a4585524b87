package configs

import "time"

// Simulator tunes the synthetic dashboard.
type Simulator struct {
	// Interval is the metrics tick period.
	Interval time.Duration `env:"INTERVAL" envDefault:"3s"`
	// VariantPacing is the delay between consecutive variant requests.
	VariantPacing time.Duration `env:"VARIANT_PACING" envDefault:"500ms"`
	// Seed fixes the random source; zero seeds from the clock.
	Seed uint64 `env:"SEED" envDefault:"0"`
}
