package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v2"
)

var (
	config     *EngineConfig
	configOnce sync.Once
	configErr  error
	configMu   sync.RWMutex
)

// Load loads the configuration from the specified YAML file once and caches it
// globally. Subsequent calls return the cached configuration.
func Load(configPath string) (*EngineConfig, error) {
	configOnce.Do(func() {
		cfg, err := Parse(configPath)
		if err != nil {
			configErr = err
			return
		}
		configMu.Lock()
		config = cfg
		configMu.Unlock()
	})
	if configErr != nil {
		return nil, configErr
	}
	configMu.RLock()
	defer configMu.RUnlock()
	return config, nil
}

// Parse parses the YAML config file without touching the global cache.
func Parse(configPath string) (*EngineConfig, error) {
	// Resolve symlinks to handle Kubernetes ConfigMap mounts
	resolved, _ := filepath.EvalSymlinks(configPath)
	if resolved == "" {
		resolved = configPath
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &EngineConfig{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Get returns the current cached configuration, or nil before Load.
func Get() *EngineConfig {
	configMu.RLock()
	defer configMu.RUnlock()
	return config
}

func validate(cfg *EngineConfig) error {
	for name, v := range map[string]float64{
		"type":       cfg.Thresholds.Type,
		"category":   cfg.Thresholds.Category,
		"urgency":    cfg.Thresholds.Urgency,
		"sentiment":  cfg.Thresholds.Sentiment,
		"complexity": cfg.Thresholds.Complexity,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("threshold %q out of range [0,1]: %v", name, v)
		}
	}
	if cfg.Training.ValidationSplit < 0 || cfg.Training.ValidationSplit >= 1 {
		return fmt.Errorf("validation_split out of range [0,1): %v", cfg.Training.ValidationSplit)
	}
	if cfg.Training.Dropout < 0 || cfg.Training.Dropout >= 1 {
		return fmt.Errorf("dropout out of range [0,1): %v", cfg.Training.Dropout)
	}
	if cfg.Training.BatchSize < 1 {
		return fmt.Errorf("batch_size must be positive: %d", cfg.Training.BatchSize)
	}
	return nil
}
