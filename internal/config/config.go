/*
PURPOSE:
  Defines the configuration structure and loading logic for Result Harvester.
  Adheres to "Config IS Code" philosophy.

REQUIREMENTS:
  User-specified:
  - Allow configuration of the default base path and report side outputs.
  - Declare external batch tools (image resizing etc.) by name.

  Implementation-discovered:
  - Needs to support YAML parsing.
  - Directory naming conventions (run<N>, results, final-result) are fixed
    contracts and deliberately NOT configurable here.

ARCHITECTURE INTEGRATION:
  - Used by: internal/cli, internal/engine, internal/jobs
  - Dependencies: gopkg.in/yaml.v3

ERROR HANDLING:
  - Returns explicit error if config file is invalid.
  - Missing default config files fall back to defaults silently.

IMPLEMENTATION RULES:
  - Config struct tags should support yaml.
  - Defaults should be sensible (per-run reports on, hidden dirs skipped).

USAGE:
  cfg, err := config.Load("harvester.yaml")

SELF-HEALING INSTRUCTIONS:
  - If new fields are needed, add to Config struct and update DefaultConfig().

RELATED FILES:
  - internal/cli/root.go
  - internal/jobs/runner.go

MAINTENANCE:
  - Update when adding new tuning parameters.
*/

package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the full configuration for Result Harvester.
type Config struct {
	// BasePath is used when no base directory is given on the command line.
	BasePath string `yaml:"base_path"`
	// PerRunReport also writes <run>/final-result/final_result.csv for each processed run.
	PerRunReport bool `yaml:"per_run_report"`
	// JSONReport writes a final_result.jsonl sidecar next to the combined report.
	JSONReport bool `yaml:"json_report"`
	// IncludeHidden keeps model/dataset directories whose names start with a dot.
	IncludeHidden bool   `yaml:"include_hidden"`
	LogLevel      string `yaml:"log_level"`
	LogFormat     string `yaml:"log_format"`
	// Tools are external batch jobs, keyed by name.
	Tools map[string]Tool `yaml:"tools"`
}

// Tool describes an external process invoked as an opaque batch job.
type Tool struct {
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
	// PerFile runs the command once per input file instead of once with all files.
	PerFile bool          `yaml:"per_file"`
	Timeout time.Duration `yaml:"timeout"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		BasePath:     ".",
		PerRunReport: true,
		LogLevel:     "info",
		LogFormat:    "text",
		Tools: map[string]Tool{
			"binary-invert": {
				Command: "python3",
				Args:    []string{"scripts/binary_image_inverter.py"},
				PerFile: true,
				Timeout: 5 * time.Minute,
			},
			"resize": {
				Command: "python3",
				Args:    []string{"scripts/image_resizer.py"},
				PerFile: true,
				Timeout: 5 * time.Minute,
			},
			"transparent-to-black": {
				Command: "python3",
				Args:    []string{"scripts/transparent_to_black.py"},
				Timeout: 10 * time.Minute,
			},
			"reorganize": {
				Command: "python3",
				Args:    []string{"scripts/file_reorganizer.py"},
				Timeout: 10 * time.Minute,
			},
		},
	}
}

// Load reads configuration from a file.
// If path is specified, it attempts to load that file.
// If path is empty, it searches for default files in order.
// If no file found, returns default config.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	var data []byte
	var err error

	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
	} else {
		defaults := []string{"harvester.yaml", "result_harvester.yaml"}
		found := false
		for _, name := range defaults {
			data, err = os.ReadFile(name)
			if err == nil {
				path = name
				found = true
				break
			}
		}
		if !found {
			return cfg, nil
		}
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return cfg, nil
}
