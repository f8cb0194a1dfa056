package config

import "github.com/caarlos0/env/v10"

// EngineConfig agrupa lo que necesita el motor de constitucion, tambien desde la CLI.
type EngineConfig struct {
	ImbalanceThreshold int    `env:"IMBALANCE_THRESHOLD" envDefault:"15"`
	CatalogDir         string `env:"CATALOG_DIR"`
	LogLevel           string `env:"LOG_LEVEL" envDefault:"info"`
}

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort         string `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL      string `env:"DATABASE_URL,required,notEmpty"`
	DatabaseMaxConns int32  `env:"DATABASE_MAX_CONNS" envDefault:"10"`
	AutoMigrate      bool   `env:"AUTO_MIGRATE" envDefault:"true"`
	RedisAddr        string `env:"REDIS_ADDR"`
	RedisPassword    string `env:"REDIS_PASSWORD"`
	RedisDB          int    `env:"REDIS_DB" envDefault:"0"`
	JWTSecret        string `env:"JWT_SECRET"`
	JWTIssuer        string `env:"JWT_ISSUER" envDefault:"veda-auth"`

	AssessRateWindowMinutes int `env:"ASSESS_RATE_WINDOW_MINUTES" envDefault:"60"`
	AssessRateMax           int `env:"ASSESS_RATE_MAX" envDefault:"5"`

	Engine EngineConfig
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadEngineConfig carga solo la parte del motor; no exige base de datos.
func LoadEngineConfig() (*EngineConfig, error) {
	var cfg EngineConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
