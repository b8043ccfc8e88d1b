package pisano

import (
	"log/slog"
	"os"
	"strconv"
)

// FillEnvVar returns the value of a runtime Environment Variable
func FillEnvVar(ev string) string {
	// If the EnvVar doesn't exist return a default string
	value := os.Getenv(ev)
	if value == "" {
		value = "ENOENT"
	}
	return value
}

// EnvIntOr reads an integer Environment Variable with a fallback.
// Used to override config values like the starting modulus.
func EnvIntOr(ev string, fallback int) int {
	value := os.Getenv(ev)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		slog.Error("invalid integer in env var",
			slog.String("var", ev),
			slog.Any("Error", err))
		return fallback
	}
	return n
}
