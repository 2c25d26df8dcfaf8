package server

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config is the process-level configuration, loaded from a .env file (when
// present) and the environment, with flags layered on top by main.
type Config struct {
	Addr    string
	LogFile string
	TickHz  int
	Debug   bool
}

// LoadConfig reads SNAKEPIT_* env vars. A missing .env is fine; env vars
// and defaults still apply.
func LoadConfig() Config {
	_ = godotenv.Load()

	cfg := Config{
		Addr:    ":8080",
		LogFile: "snakepit.log",
		TickHz:  TicksPerSecond,
	}
	if v := os.Getenv("SNAKEPIT_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("SNAKEPIT_LOG"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("SNAKEPIT_TICK_HZ"); v != "" {
		if hz, err := strconv.Atoi(v); err == nil && hz > 0 {
			cfg.TickHz = hz
		}
	}
	if v := os.Getenv("SNAKEPIT_DEBUG"); v == "1" || v == "true" {
		cfg.Debug = true
	}
	return cfg
}
