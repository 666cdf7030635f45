package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/diwise/case-mapping/internal/pkg/application/casebuilder"
	"github.com/diwise/case-mapping/pkg/datamodels/uco"
	"github.com/diwise/service-chassis/pkg/infrastructure/buildinfo"
	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
)

const serviceName string = "case-example"

func defaultFlags() FlagMap {
	return FlagMap{
		configPath: "",
		outputPath: "-",
		logFormat:  "json",
	}
}

func main() {
	serviceVersion := buildinfo.SourceVersion()

	flags := parseExternalConfig(defaultFlags())

	ctx, logger, cleanup := o11y.Init(context.Background(), serviceName, serviceVersion, flags[logFormat])
	defer cleanup()

	cfg, err := loadConfiguration(ctx, flags)
	if err != nil {
		logger.Error("failed to load configuration", "err", err.Error())
		cleanup()
		os.Exit(1)
	}

	if err = run(ctx, cfg); err != nil {
		logger.Error("failed to build example case", "err", err.Error())
		cleanup()
		os.Exit(1)
	}
}

func loadConfiguration(ctx context.Context, flags FlagMap) (*AppConfig, error) {
	appCfg := &AppConfig{output: flags[outputPath]}

	if flags[configPath] == "" {
		appCfg.builderConfig = onlyEnvironment(ctx)
		return appCfg, nil
	}

	f, err := os.Open(flags[configPath])
	if err != nil {
		return nil, fmt.Errorf("failed to open configuration file: %w", err)
	}
	defer f.Close()

	cfg, err := casebuilder.LoadConfiguration(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %s: %w", flags[configPath], err)
	}

	appCfg.builderConfig = cfg.WithEnvironment(ctx)

	return appCfg, nil
}

func run(ctx context.Context, cfg *AppConfig) error {
	ctx = logging.NewContextWithLogger(ctx, logging.GetFromContext(ctx), "prefix", cfg.builderConfig.Prefix.Label)
	log := logging.GetFromContext(ctx)

	app, err := casebuilder.New(ctx, cfg.builderConfig)
	if err != nil {
		return err
	}

	bundle, err := app.Build(ctx)
	if err != nil {
		return err
	}

	if cfg.toStdout() {
		err = app.Write(ctx, bundle, os.Stdout)
	} else {
		err = writeFile(ctx, app, bundle, cfg.output)
	}

	if err != nil {
		return fmt.Errorf("failed to write case: %w", err)
	}

	log.Info("example case written", "output", cfg.output, "bundle_id", bundle.ID())

	return nil
}

func writeFile(ctx context.Context, app casebuilder.CaseBuilder, bundle *uco.Bundle, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err = app.Write(ctx, bundle, f); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

func parseExternalConfig(flags FlagMap) FlagMap {

	// Allow environment variables to override certain defaults
	flags[outputPath] = env.GetVariableOrDefault(context.Background(), "CASE_OUTPUT", flags[outputPath])

	apply := func(f FlagType) func(string) error {
		return func(value string) error {
			flags[f] = value
			return nil
		}
	}

	// Allow command line arguments to override defaults and environment variables
	flag.Func("config", "path to the yaml configuration file", apply(configPath))
	flag.Func("output", "file to write the case to, - for stdout", apply(outputPath))
	flag.Func("log-format", "log format (json or text)", apply(logFormat))
	flag.Parse()

	return flags
}
