// Package flagsource provides ready-made flag providers for darklaunch
// proxies: a fixed value, an environment variable read per call, and a
// watched flag file.
package flagsource

import (
	"context"
	"os"

	"github.com/finops-claw-gang/darklaunch"
)

// Static returns a provider that always yields the given mode string.
func Static(mode string) darklaunch.FlagProvider {
	return func(context.Context) (string, error) {
		return mode, nil
	}
}

// Env returns a provider that reads the environment variable on every call,
// so the mode can be changed without restarting the process.
func Env(key string) darklaunch.FlagProvider {
	return func(context.Context) (string, error) {
		return os.Getenv(key), nil
	}
}

// EnvOr is Env with a fallback for when the variable is unset or empty.
func EnvOr(key, fallback string) darklaunch.FlagProvider {
	return func(context.Context) (string, error) {
		if v := os.Getenv(key); v != "" {
			return v, nil
		}
		return fallback, nil
	}
}
