package config

import "github.com/caarlos0/env/v9"

type Config struct {
	Port       string `env:"PORT" envDefault:"8080"`
	DBUser     string `env:"DB_USER,required"`
	DBPassword string `env:"DB_PASSWORD,required"`
	DBHost     string `env:"DB_HOST,required"` // hostname, or an absolute unix socket path
	DBName     string `env:"DB_NAME,required"`
	DBPort     string `env:"DB_PORT" envDefault:"3306"`

	AdminAPIKey string `env:"ADMIN_API_KEY,required"`

	// CreatorShareBps is the creator cohort's share of a fund in basis
	// points; the remainder goes to the user cohort. A fund row may carry
	// its own override.
	CreatorShareBps int `env:"CREATOR_SHARE_BPS" envDefault:"5000"`

	CycleLengthDays int `env:"CYCLE_LENGTH_DAYS" envDefault:"30"`
	CyclesPerSeason int `env:"CYCLES_PER_SEASON" envDefault:"3"`

	WorkerCron string `env:"WORKER_CRON" envDefault:"@hourly"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
