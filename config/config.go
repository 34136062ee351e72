package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"
)

// TrainingConfig holds the hyperparameters and resource limits cmd/crftrain
// reads before starting an orchestrator.Run loop.
type TrainingConfig struct {
	// LearningRate scales each gradient step.
	LearningRate float64 `mapstructure:"learningRate"`
	// L2Strength is the L2 regularization coefficient subtracted from the
	// gradient each step (0 disables regularization).
	L2Strength float64 `mapstructure:"l2Strength"`
	// MaxIterations caps the number of passes over the training set.
	MaxIterations int `mapstructure:"maxIterations"`
	// Workers is the orchestrator fan-out width.
	Workers int `mapstructure:"workers"`
	// ModelDir holds the model files: ModelDir/statespace.yaml (read,
	// declares the label graph) and ModelDir/weights.bin (the trained
	// parameter vector, written via modelio).
	ModelDir string `mapstructure:"modelDir"`
	// DataPath is the training set: a JSON array of labeled examples, in
	// the shape cmd/crftrain decodes.
	DataPath string `mapstructure:"dataPath"`
	// LogLevel is loaded with the rest of the configuration; no logger in
	// this module reads it, so it does not change what is logged.
	LogLevel string `mapstructure:"logLevel"`
}

// ServerConfig holds the settings cmd/crftagd reads before starting a
// server.Server.
type ServerConfig struct {
	// ListenAddr is the address server.Server binds, e.g. ":8080".
	ListenAddr string `mapstructure:"listenAddr"`
	// ModelDir is where the parameter vector and StateSpace/Indexer are
	// read from at startup.
	ModelDir string `mapstructure:"modelDir"`
	// LogLevel is loaded with the rest of the configuration; the server's
	// logger does not read it, so it does not change what is logged.
	LogLevel string `mapstructure:"logLevel"`
}

// trainingDefaults mirror conservative, safe-to-ship-without-tuning
// values; callers overriding via YAML or env vars only need to specify
// what differs.
var trainingDefaults = map[string]interface{}{
	"learningRate":  0.1,
	"l2Strength":    1e-4,
	"maxIterations": 100,
	"workers":       1,
	"modelDir":      "./model",
	"dataPath":      "./train.json",
	"logLevel":      "info",
}

var serverDefaults = map[string]interface{}{
	"listenAddr": ":8080",
	"modelDir":   "./model",
	"logLevel":   "info",
}

// TrainingFromYaml loads a TrainingConfig from path, applying
// trainingDefaults first and allowing CRFTRAIN_-prefixed environment
// variables to override any field (e.g. CRFTRAIN_WORKERS=8).
func TrainingFromYaml(path string) (*TrainingConfig, error) {
	cfg := &TrainingConfig{}
	if err := loadYaml(path, "CRFTRAIN", trainingDefaults, cfg); err != nil {
		return nil, fmt.Errorf("config.TrainingFromYaml: %w", err)
	}
	return cfg, nil
}

// ServerFromYaml loads a ServerConfig from path, applying serverDefaults
// first and allowing CRFTAGD_-prefixed environment variables to override
// any field (e.g. CRFTAGD_LISTENADDR=:9090).
func ServerFromYaml(path string) (*ServerConfig, error) {
	cfg := &ServerConfig{}
	if err := loadYaml(path, "CRFTAGD", serverDefaults, cfg); err != nil {
		return nil, fmt.Errorf("config.ServerFromYaml: %w", err)
	}
	return cfg, nil
}

// loadYaml is the shared viper plumbing behind TrainingFromYaml and
// ServerFromYaml: defaults first, then the YAML file, then envPrefix_-
// bound environment variables, unmarshaled into out.
func loadYaml(path, envPrefix string, defaults map[string]interface{}, out interface{}) error {
	vp := viper.New()
	for k, v := range defaults {
		vp.SetDefault(k, v)
	}

	vp.SetConfigFile(path)
	vp.SetConfigType("yaml")
	vp.AddConfigPath(filepath.Dir(path))
	vp.SetEnvPrefix(envPrefix)
	vp.AutomaticEnv()

	if err := vp.ReadInConfig(); err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := vp.Unmarshal(out); err != nil {
		return fmt.Errorf("unmarshaling %s: %w", path, err)
	}

	return nil
}
