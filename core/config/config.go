package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrParseConfig is returned when environment variables cannot be parsed
// into the target struct.
var ErrParseConfig = errors.New("failed to parse config")

var (
	cacheMu sync.Mutex
	cache   = map[reflect.Type]any{}

	loadDotenv sync.Once
)

// Load populates cfg from environment variables, loading .env files on
// first use. Each configuration type is parsed once per process; later
// calls for the same type return the cached value.
func Load[T any](cfg *T) error {
	if cfg == nil {
		return fmt.Errorf("%w: nil config pointer", ErrParseConfig)
	}

	// Missing .env files are not an error; real deployments use the environment directly.
	loadDotenv.Do(func() { _ = godotenv.Load() })

	key := reflect.TypeOf(*cfg)

	cacheMu.Lock()
	defer cacheMu.Unlock()

	if cached, ok := cache[key]; ok {
		*cfg = cached.(T)
		return nil
	}

	if err := env.Parse(cfg); err != nil {
		return errors.Join(ErrParseConfig, err)
	}

	cache[key] = *cfg
	return nil
}

// MustLoad is like Load but panics on failure. Intended for application startup.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}

// Reset clears the config cache. Test harnesses use it to reload
// configuration between cases; production code should never call it.
func Reset() {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	cache = map[reflect.Type]any{}
}
