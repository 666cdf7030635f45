package casebuilder

import (
	"context"
	"io"

	"github.com/diwise/case-mapping/pkg/caseuco/identifiers"
	"github.com/diwise/case-mapping/pkg/caseuco/types/literals"
	"github.com/diwise/case-mapping/pkg/datamodels/uco"
	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	yaml "gopkg.in/yaml.v2"
)

type IdentifierConfig struct {
	Mode string `yaml:"mode"`
	Seed string `yaml:"seed"`
}

type Config struct {
	Prefix       uco.Prefix       `yaml:"prefix"`
	IntegerWidth string           `yaml:"integerWidth"`
	Identifiers  IdentifierConfig `yaml:"identifiers"`
}

func DefaultConfiguration() *Config {
	return &Config{
		Prefix:       uco.DefaultPrefix(),
		IntegerWidth: "default",
		Identifiers: IdentifierConfig{
			Mode: "uuid",
		},
	}
}

// LoadConfiguration reads a yaml configuration. Settings missing from the
// document keep their default values.
func LoadConfiguration(data io.Reader) (*Config, error) {
	buf, err := io.ReadAll(data)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfiguration()
	err = yaml.Unmarshal(buf, cfg)

	return cfg, err
}

// WithEnvironment returns a copy of cfg where settings present in the
// environment replace those from the configuration file
func (cfg Config) WithEnvironment(ctx context.Context) *Config {
	cfg.Prefix.Label = env.GetVariableOrDefault(ctx, "CASE_PREFIX_LABEL", cfg.Prefix.Label)
	cfg.Prefix.IRI = env.GetVariableOrDefault(ctx, "CASE_PREFIX_IRI", cfg.Prefix.IRI)
	cfg.IntegerWidth = env.GetVariableOrDefault(ctx, "CASE_INTEGER_WIDTH", cfg.IntegerWidth)
	cfg.Identifiers.Mode = env.GetVariableOrDefault(ctx, "CASE_ID_MODE", cfg.Identifiers.Mode)
	cfg.Identifiers.Seed = env.GetVariableOrDefault(ctx, "CASE_ID_SEED", cfg.Identifiers.Seed)
	return &cfg
}

func (cfg *Config) identifierFunc() (identifiers.Func, error) {
	return identifiers.New(cfg.Identifiers.Mode, cfg.Prefix.Label, cfg.Identifiers.Seed)
}

func (cfg *Config) coercer() (*literals.Coercer, error) {
	width, err := literals.ParseIntegerWidth(cfg.IntegerWidth)
	if err != nil {
		return nil, err
	}
	return literals.New(literals.IntegerWidth(width)), nil
}
