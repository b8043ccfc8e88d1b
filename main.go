package main

import (
	"context"
	"log/slog"
	"os"

	Ps "github.com/maroda/pisano/analysis"
	Pd "github.com/maroda/pisano/display"
	Po "github.com/maroda/pisano/obvy"
)

// loadConfig uses the optional first argument as a config path,
// falling back to defaults when no file is given.
func loadConfig() *Ps.ConfigFile {
	if len(os.Args) > 1 {
		cfg, err := Ps.LoadConfigFileName(os.Args[1])
		if err != nil {
			slog.Error("Could not load config, using defaults",
				slog.String("file", os.Args[1]),
				slog.Any("Error", err))
			return Ps.DefaultConfig()
		}
		return cfg
	}

	cfg := Ps.DefaultConfig()
	cfg.Modulus = Ps.EnvIntOr("PISANO_MODULUS", cfg.Modulus)
	return cfg
}

// initTracing starts a trace pipeline when PISANO_TRACING names one.
// Spans come from the instrumented /api/period handler.
func initTracing() func() {
	switch Ps.FillEnvVar("PISANO_TRACING") {
	case "honeycomb":
		shutdown, err := Po.InitOTelHNY()
		if err != nil {
			slog.Error("Could not init tracing", slog.Any("Error", err))
			return func() {}
		}
		return shutdown
	case "grafana":
		tp, err := Po.InitOTelGRF()
		if err != nil {
			slog.Error("Could not init tracing", slog.Any("Error", err))
			return func() {}
		}
		return func() { _ = tp.Shutdown(context.Background()) }
	}
	return func() {}
}

func main() {
	cfg := loadConfig()
	shutdown := initTracing()
	defer shutdown()
	slog.Info("Pisano initializing",
		slog.Int("modulus", cfg.Modulus),
		slog.Int("cap", cfg.Cap))

	// PISANO_MODE=web serves the data endpoint without a terminal
	if Ps.FillEnvVar("PISANO_MODE") == "web" {
		if err := Pd.StartWebNoTUI(cfg); err != nil {
			slog.Error("Problem starting web server", slog.Any("Error", err))
			panic("Failed to start pisano web server")
		}
		return
	}

	if err := Pd.StartPisanoViewWithConfig(cfg); err != nil {
		slog.Error("Problem starting PisanoView", slog.Any("Error", err))
		panic("Failed to start pisano view")
	}
}
