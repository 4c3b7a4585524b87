package configs

// Redis holds the connection settings of the redis backend.
type Redis struct {
	Addr      string `env:"ADDRESS" envDefault:"localhost:6379"`
	Password  string `env:"PASSWORD"`
	DB        int    `env:"DB" envDefault:"0"`
	KeyPrefix string `env:"KEY_PREFIX" envDefault:"creativesync:"`
}
