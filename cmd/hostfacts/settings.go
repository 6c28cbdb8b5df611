package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ancients-collective/hostfacts/internal/config"
	"github.com/ancients-collective/hostfacts/internal/probe"
	"github.com/ancients-collective/hostfacts/internal/runner"
	"github.com/ancients-collective/hostfacts/internal/types"
)

// loadConfig reads the optional config file and applies explicitly set flags
// on top of it.
func (a *app) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	loader := config.New(runner.Commands())

	cfg := config.Defaults()
	if a.flags.configPath != "" {
		loaded, err := loader.Load(a.flags.configPath)
		if err != nil {
			return nil, fmt.Errorf("Invalid config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = a.flags.logLevel
	}
	if flags.Changed("format") {
		cfg.Format = a.flags.format
	}
	if flags.Changed("no-color") {
		cfg.NoColor = a.flags.noColor
	}
	if flags.Changed("family") {
		cfg.Family = a.flags.family
	}
	if flags.Changed("timeout") {
		cfg.Timeout = a.flags.timeout
	}

	if err := loader.Validate(cfg); err != nil {
		return nil, fmt.Errorf("Invalid flags: %w", err)
	}
	return cfg, nil
}

// newLogger returns a logger writing to stderr so stdout stays clean.
func (a *app) newLogger(cfg *config.Config) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(a.stderr)

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.WarnLevel
	}
	log.SetLevel(level)
	return log
}

// resolveFamily returns the configured family, or the detected one.
func resolveFamily(cfg *config.Config) types.OSFamily {
	if cfg.Family != "" {
		if f, ok := types.ParseFamily(cfg.Family); ok {
			return f
		}
	}
	return probe.Detect()
}

// newProbe wires the allowlist runner and the family strategy into a probe.
func newProbe(cfg *config.Config, log logrus.FieldLogger) *probe.Probe {
	family := resolveFamily(cfg)
	log.WithField("family", family).Debug("Selected OS family")

	r := runner.NewAllowlistRunner(runner.Options{
		Timeout:       cfg.TimeoutDuration(),
		PathOverrides: cfg.Commands,
		Logger:        log,
	})
	strategy := probe.NewStrategy(family, probe.Options{
		Runner:      r,
		MeminfoPath: cfg.MeminfoPath,
	})
	return probe.New(strategy, log)
}
