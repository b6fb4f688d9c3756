package cliengine

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config overrides the built-in engine command table. Example:
//
//	engines:
//	  claude:
//	    command: ["claude", "-p", "--model", "opus"]
//	    timeout: 10m
//	  llama:
//	    command: ["ollama", "run", "llama3"]
type Config struct {
	Engines map[string]EngineConfig `yaml:"engines"`
}

type EngineConfig struct {
	Command []string `yaml:"command"`
	Timeout string   `yaml:"timeout"`

	timeout time.Duration
}

// LoadConfig reads a YAML engine config. A missing file yields the zero
// config, so built-in defaults apply.
func LoadConfig(path string) (Config, error) {
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read engine config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse engine config %s: %w", path, err)
	}
	for name, engine := range cfg.Engines {
		if engine.Timeout == "" {
			continue
		}
		d, err := time.ParseDuration(engine.Timeout)
		if err != nil {
			return Config{}, fmt.Errorf("engine config %s: engine %s: invalid timeout %q: %w", path, name, engine.Timeout, err)
		}
		engine.timeout = d
		cfg.Engines[name] = engine
	}
	return cfg, nil
}
