package reinforcement

import (
	"context"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// TrainingConfig holds the algorithmic parameters kept outside of code:
// learning rates, exploration epsilons, and the training deadline.
// Fields carry no yaml tags: the file passes through viper, which lowercases
// every key, and the yaml package matches lowercased field names by default.
type TrainingConfig struct {
	// HyperParams is a key-val list of named parameters.
	HyperParams []HyperParameter
	// TrainingDeadline describes when to terminate training; currently a
	// single "duration" entry.
	TrainingDeadline map[string]string
}

type HyperParameter struct {
	Key string  `yaml:"key"`
	Val float64 `yaml:"val"`
}

// GetHyperParamOrDefault looks up a named parameter, falling back to the
// passed default when the config does not name it.
func (cfg *TrainingConfig) GetHyperParamOrDefault(param string, defaultVal float64) float64 {
	for _, kvp := range cfg.HyperParams {
		if kvp.Key == param {
			return kvp.Val
		}
	}
	return defaultVal
}

// WithTrainingDeadline returns a context extended by the training deadline,
// if one is specified.
func (cfg *TrainingConfig) WithTrainingDeadline(
	ctx context.Context,
) (context.Context, context.CancelFunc, error) {
	if val, ok := cfg.TrainingDeadline["duration"]; ok {
		duration, err := time.ParseDuration(val)
		if err != nil {
			return nil, nil, err
		}
		innerCtx, cancel := context.WithTimeout(ctx, duration)
		return innerCtx, cancel, nil
	}
	defaultCtx, cancel := context.WithCancel(ctx)
	return defaultCtx, cancel, nil
}

type outerConfig struct {
	Kind string      `mapstructure:"kind"`
	Def  interface{} `mapstructure:"def"`
}

type trainingSection struct {
	Training TrainingConfig `yaml:"training"`
}

// FromYaml reads the training section of a config file.
func FromYaml(path string) (*TrainingConfig, error) {
	vp := viper.New()
	// The full path must be handed to SetConfigFile: viper ignores its
	// search paths once an explicit file is set.
	vp.SetConfigFile(path)
	vp.SetConfigType("yaml")
	if err := vp.ReadInConfig(); err != nil {
		return nil, err
	}

	outer := &outerConfig{}
	if err := vp.Unmarshal(outer); err != nil {
		return nil, err
	}

	def, err := yaml.Marshal(outer.Def)
	if err != nil {
		return nil, err
	}

	section := &trainingSection{}
	if err = yaml.Unmarshal(def, section); err != nil {
		return nil, err
	}

	return &section.Training, nil
}
