package mesh

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MQTTConfig holds the broker settings for report publishing.
type MQTTConfig struct {
	Broker        string `yaml:"broker" json:"broker"`
	PublishPrefix string `yaml:"publishPrefix" json:"publishPrefix"`
	ClientID      string `yaml:"clientId" json:"clientId"`
	Username      string `yaml:"username,omitempty" json:"username,omitempty"`
	Password      string `yaml:"password,omitempty" json:"password,omitempty"`
}

// TuningConfig collects the tunable knobs of the pipeline. The defaults are
// the documented contract values; a YAML file can override them per
// deployment.
type TuningConfig struct {
	Weights            EnsembleWeights `yaml:"weights"`
	SmoothingPasses    int             `yaml:"smoothingPasses"`
	SmoothingThreshold float64         `yaml:"smoothingThreshold"`
	NoiseSigma         float64         `yaml:"noiseSigma"`
	WetnessRadius      float64         `yaml:"wetnessRadius"`
	TextureSize        int             `yaml:"textureSize"`
	HierarchicalLimit  int             `yaml:"hierarchicalLimit"`
	MQTT               MQTTConfig      `yaml:"mqtt,omitempty"`
}

// DefaultTuning returns the documented default configuration.
func DefaultTuning() *TuningConfig {
	return &TuningConfig{
		Weights:            DefaultEnsembleWeights(),
		SmoothingPasses:    DefaultSmoothingPasses,
		SmoothingThreshold: DefaultSmoothingThreshold,
		NoiseSigma:         DefaultNoiseSigma,
		WetnessRadius:      DefaultWetnessRadius,
		TextureSize:        DefaultTextureSize,
		HierarchicalLimit:  HierarchicalLimit,
	}
}

// LoadTuning reads a tuning config from a YAML file, starting from the
// defaults so a file only needs the keys it overrides.
func LoadTuning(path string) (*TuningConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tuning config: %w", err)
	}

	cfg := DefaultTuning()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing tuning YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveTuning writes a tuning config to a YAML file.
func SaveTuning(path string, cfg *TuningConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling tuning YAML: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing tuning config: %w", err)
	}
	return nil
}

// Validate rejects values the pipeline cannot work with.
func (c *TuningConfig) Validate() error {
	if c.Weights.KMeans < 0 || c.Weights.DBSCAN < 0 || c.Weights.Hierarchical < 0 || c.Weights.HeightBands < 0 {
		return fmt.Errorf("ensemble weights must be non-negative")
	}
	if c.SmoothingPasses < 0 {
		return fmt.Errorf("smoothingPasses must be non-negative, got %d", c.SmoothingPasses)
	}
	if c.SmoothingThreshold < 0 || c.SmoothingThreshold >= 1 {
		return fmt.Errorf("smoothingThreshold must be in [0,1), got %g", c.SmoothingThreshold)
	}
	if c.NoiseSigma < 0 {
		return fmt.Errorf("noiseSigma must be non-negative, got %g", c.NoiseSigma)
	}
	if c.WetnessRadius <= 0 {
		return fmt.Errorf("wetnessRadius must be positive, got %g", c.WetnessRadius)
	}
	if c.TextureSize <= 1 {
		return fmt.Errorf("textureSize must be at least 2, got %d", c.TextureSize)
	}
	if c.HierarchicalLimit < 0 {
		return fmt.Errorf("hierarchicalLimit must be non-negative, got %d", c.HierarchicalLimit)
	}
	return nil
}
