package configs

// HTTP defines configuration for the HTTP server.
type HTTP struct {
	// Port is the TCP port the HTTP server will listen on. Defaults to 8080.
	Port uint16 `env:"PORT" envDefault:"8080"`
	// AllowedOrigins lists the browser origins allowed by CORS.
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}
