package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

var loadEnvOnce sync.Once

// MustNew loads a config struct or panics. Meant for process startup only.
func MustNew[T any](prefix string) *T {
	conf, err := New[T](prefix)
	if err != nil {
		panic(err)
	}
	return conf
}

// New populates a config struct from the environment, optionally seeded from
// an env file. The file defaults to ".env" and can be overridden with
// ENV_FILE; a missing default file is not an error.
func New[T any](prefix string) (*T, error) {
	var loadErr error
	loadEnvOnce.Do(func() {
		path := strings.TrimSpace(os.Getenv("ENV_FILE"))
		if path != "" {
			loadErr = exportEnvFile(path)
			return
		}
		loadErr = exportEnvFileIfExists(".env")
	})
	if loadErr != nil {
		return nil, fmt.Errorf("failed to load env file: %w", loadErr)
	}

	var conf T
	if err := envconfig.Process(prefix, &conf); err != nil {
		return nil, err
	}
	return &conf, nil
}

func exportEnvFileIfExists(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if info.IsDir() {
		return nil
	}
	return exportEnvFile(path)
}

// exportEnvFile reads the file with viper and exports every key into the
// process environment so envconfig picks it up.
func exportEnvFile(path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return err
	}

	for key, value := range v.AllSettings() {
		if err := os.Setenv(strings.ToUpper(key), fmt.Sprint(value)); err != nil {
			return err
		}
	}
	return nil
}
