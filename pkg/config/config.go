// Package config defines and loads the intake engine configuration.
package config

// EngineConfig is the top-level configuration for the intake engine.
type EngineConfig struct {
	// ModelDir is the root directory for persisted model artifacts.
	// One subdirectory per classification task.
	ModelDir string `yaml:"model_dir"`

	// Thresholds holds the per-task confidence gates for the ensemble.
	// A learned prediction below its task threshold falls back to the
	// rule-based prediction.
	Thresholds ThresholdConfig `yaml:"thresholds"`

	// Training holds the hyperparameters for the synthetic training pass.
	Training TrainingConfig `yaml:"training"`

	// Warmup trains-or-loads all models eagerly at startup instead of on
	// the first classification call.
	Warmup bool `yaml:"warmup"`
}

// ThresholdConfig holds per-task confidence thresholds.
type ThresholdConfig struct {
	Type       float64 `yaml:"type,omitempty"`
	Category   float64 `yaml:"category,omitempty"`
	Urgency    float64 `yaml:"urgency,omitempty"`
	Sentiment  float64 `yaml:"sentiment,omitempty"`
	Complexity float64 `yaml:"complexity,omitempty"`
}

// TrainingConfig holds hyperparameters for synthetic-corpus training.
type TrainingConfig struct {
	// ExamplesPerLabel is the number of synthetic examples generated per label.
	ExamplesPerLabel int `yaml:"examples_per_label,omitempty"`

	// Epochs is the fixed number of passes over the corpus. There is no
	// early stopping; validation loss is monitored only.
	Epochs int `yaml:"epochs,omitempty"`

	// BatchSize is the minibatch size.
	BatchSize int `yaml:"batch_size,omitempty"`

	// LearningRate is the Adam step size.
	LearningRate float64 `yaml:"learning_rate,omitempty"`

	// Dropout is the hidden-layer dropout rate applied during training.
	Dropout float64 `yaml:"dropout,omitempty"`

	// ValidationSplit is the held-out fraction used for monitoring.
	ValidationSplit float64 `yaml:"validation_split,omitempty"`

	// Seed seeds corpus generation and weight initialization. Zero means
	// a time-derived seed.
	Seed int64 `yaml:"seed,omitempty"`
}

// Default returns an EngineConfig with all defaults applied.
func Default() *EngineConfig {
	cfg := &EngineConfig{}
	cfg.applyDefaults()
	return cfg
}

func (c *EngineConfig) applyDefaults() {
	if c.ModelDir == "" {
		c.ModelDir = "models"
	}
	if c.Thresholds.Type == 0 {
		c.Thresholds.Type = 0.65
	}
	if c.Thresholds.Category == 0 {
		c.Thresholds.Category = 0.60
	}
	if c.Thresholds.Urgency == 0 {
		c.Thresholds.Urgency = 0.70
	}
	if c.Thresholds.Sentiment == 0 {
		c.Thresholds.Sentiment = 0.70
	}
	if c.Thresholds.Complexity == 0 {
		c.Thresholds.Complexity = 0.65
	}
	if c.Training.ExamplesPerLabel == 0 {
		c.Training.ExamplesPerLabel = 120
	}
	if c.Training.Epochs == 0 {
		c.Training.Epochs = 50
	}
	if c.Training.BatchSize == 0 {
		c.Training.BatchSize = 32
	}
	if c.Training.LearningRate == 0 {
		c.Training.LearningRate = 0.001
	}
	if c.Training.Dropout == 0 {
		c.Training.Dropout = 0.25
	}
	if c.Training.ValidationSplit == 0 {
		c.Training.ValidationSplit = 0.2
	}
}
