package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2/log"
)

var ErrInvalidConfig = errors.New("invalid config")

const (
	envAddr            = "CHESS_ADDR"
	envAllowOrigins    = "CHESS_ALLOW_ORIGINS"
	envReadBufferSize  = "CHESS_WS_READ_BUFFER"
	envWriteBufferSize = "CHESS_WS_WRITE_BUFFER"
	envLogLevel        = "CHESS_LOG_LEVEL"
)

// Config holds the settings of the game server.
type Config struct {
	Addr            string
	AllowOrigins    string
	ReadBufferSize  int
	WriteBufferSize int
	LogLevel        string
}

func Default() Config {
	return Config{
		Addr:            ":3000",
		AllowOrigins:    "http://localhost:5173",
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		LogLevel:        "info",
	}
}

// Load returns the defaults overridden by any CHESS_* environment variables.
func Load() (Config, error) {
	cfg := Default()
	if v, ok := os.LookupEnv(envAddr); ok {
		if v == "" {
			return Config{}, fmt.Errorf("%w: %s must not be empty", ErrInvalidConfig, envAddr)
		}
		cfg.Addr = v
	}
	if v, ok := os.LookupEnv(envAllowOrigins); ok {
		cfg.AllowOrigins = v
	}

	var err error
	if cfg.ReadBufferSize, err = bufferSize(envReadBufferSize, cfg.ReadBufferSize); err != nil {
		return Config{}, err
	}
	if cfg.WriteBufferSize, err = bufferSize(envWriteBufferSize, cfg.WriteBufferSize); err != nil {
		return Config{}, err
	}

	if v, ok := os.LookupEnv(envLogLevel); ok {
		cfg.LogLevel = strings.ToLower(v)
	}
	if _, err := cfg.FiberLogLevel(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func bufferSize(name string, def int) (int, error) {
	v, ok := os.LookupEnv(name)
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer, got %q", ErrInvalidConfig, name, v)
	}
	return n, nil
}

// Origins splits AllowOrigins into the list the websocket upgrader expects.
func (c Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func (c Config) FiberLogLevel() (log.Level, error) {
	switch c.LogLevel {
	case "trace":
		return log.LevelTrace, nil
	case "debug":
		return log.LevelDebug, nil
	case "info", "":
		return log.LevelInfo, nil
	case "warn":
		return log.LevelWarn, nil
	case "error":
		return log.LevelError, nil
	}
	return log.LevelInfo, fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.LogLevel)
}
