package main

import (
	"context"

	"github.com/diwise/case-mapping/internal/pkg/application/casebuilder"
)

type FlagType int
type FlagMap map[FlagType]string

const (
	configPath FlagType = iota
	outputPath

	logFormat
)

type AppConfig struct {
	builderConfig *casebuilder.Config
	output        string
}

func (cfg *AppConfig) toStdout() bool {
	return cfg.output == "" || cfg.output == "-"
}

func onlyEnvironment(ctx context.Context) *casebuilder.Config {
	return casebuilder.DefaultConfiguration().WithEnvironment(ctx)
}
