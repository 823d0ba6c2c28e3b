package config

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	cache  sync.Map // reflect.Type -> loaded config value
	dotenv sync.Once
)

// Load parses environment variables into cfg. The first successful load of a
// given type is cached; later calls for the same type return the cached value
// so every package sees identical configuration.
func Load[T any](cfg *T) error {
	dotenv.Do(func() {
		// Missing .env files are fine; the environment itself is the source
		// of truth in production.
		_ = godotenv.Load()
	})

	t := reflect.TypeOf(cfg).Elem()
	if v, ok := cache.Load(t); ok {
		*cfg = v.(T)
		return nil
	}

	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("config: load %s: %w", t.Name(), err)
	}

	actual, _ := cache.LoadOrStore(t, *cfg)
	*cfg = actual.(T)
	return nil
}

// MustLoad is Load that panics on failure, for use during startup where a
// missing required variable should abort the process.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}
