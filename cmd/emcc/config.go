package main

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/emcc/edgefile"
)

// engineConfig is the shared run configuration. Values load from a YAML
// file first (when -config is given) and explicit flags override them.
type engineConfig struct {
	Input       string `yaml:"input" validate:"required"`
	Output      string `yaml:"output"`
	MemoryBytes uint64 `yaml:"memory_bytes" validate:"required,gte=1048576"`
	NumNodes    uint64 `yaml:"num_nodes"`
	Variant     int    `yaml:"variant" validate:"gte=0,lte=9"`
	Strategy    string `yaml:"strategy" validate:"omitempty,oneof=sibeyn star"`
	Seed        int64  `yaml:"seed"`
}

var validate = validator.New()

// loadConfig reads a YAML config file into cfg.
func loadConfig(path string, cfg *engineConfig) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	return nil
}

// checkConfig validates cfg, translating validator errors into the
// argument-error contract.
func checkConfig(cfg *engineConfig) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

func createStarWriter(path string) (*edgefile.Writer, error) {
	return edgefile.CreateWriter(path)
}
