package config

import (
	"flag"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Env        string     `yaml:"env" env-default:"prod"`
	HTTPServer HTTPServer `yaml:"http_server"`
	Catalog    Catalog    `yaml:"catalog"`
	Favorites  Favorites  `yaml:"favorites"`
}

type HTTPServer struct {
	Address        string        `yaml:"address" env-required:"true"`
	Timeout        time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout    time.Duration `yaml:"idle_timeout" env-default:"60s"`
	AllowedOrigins []string      `yaml:"allowed_origins" env-default:"*"`
}

type Catalog struct {
	BaseURL          string        `yaml:"base_url" env:"CATALOG_BASE_URL" env-required:"true"`
	Timeout          time.Duration `yaml:"timeout" env-default:"10s"`
	CacheTTL         time.Duration `yaml:"cache_ttl" env-default:"5m"`
	BreakerThreshold int           `yaml:"breaker_threshold" env-default:"5"`
	BreakerCooldown  time.Duration `yaml:"breaker_cooldown" env-default:"1m"`
}

type Favorites struct {
	Path string `yaml:"path" env:"FAVORITES_PATH" env-default:"favorites.json"`
}

func MustLoad() *Config {
	// .env is optional, real environment takes precedence
	_ = godotenv.Load()

	configPath := fetchConfigPath()
	if configPath == "" {
		panic("config path is empty")
	}

	return MustLoadByPath(configPath)
}

func MustLoadByPath(configPath string) *Config {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("config reading error: " + err.Error())
	}

	return &cfg
}

// fetchConfigPath fetches config path from command line flag or environment variable.
// Priority: flag > env > default.
// Default value is empty string.
func fetchConfigPath() string {
	var res string

	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
