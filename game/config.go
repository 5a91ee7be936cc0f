package game

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Configuration holds the immutable parameters of one environment. It is
// read-only after Validate and may be shared by any number of States, e.g.
// for parallel episode rollouts; each State owns its own mutable Grid/Robot.
// Note the absence of yaml tags: the config file passes through viper, which
// lowercases every key, and the yaml package matches lowercased field names
// by default. Keys in the file itself may use any casing.
type Configuration struct {
	Rows     int
	Columns  int
	NbRobots int
	Mode     string
	// Horizon bounds the episode length; zero selects the default
	// Rows*Columns*10, resolved by Validate.
	Horizon             int
	RewardOutsideGrid   float64
	RewardDuplicateBeep float64
	RewardPerStep       float64
	// MapFile optionally points at an ASCII board layout; empty selects
	// the built-in token layout.
	MapFile string

	mode   CommandMode
	tokens []Token
}

// DefaultConfiguration returns the canonical 5x7 single-robot board with the
// original reward constants.
func DefaultConfiguration() Configuration {
	return Configuration{
		Rows:                5,
		Columns:             7,
		NbRobots:            1,
		Mode:                "normal",
		RewardOutsideGrid:   -1.0,
		RewardDuplicateBeep: -1.0,
		RewardPerStep:       -0.01,
	}
}

// Validate checks the configuration invariants, parses the command mode and
// resolves the default horizon. It must be called once before the
// configuration is used; the configuration must not be mutated afterward.
func (c *Configuration) Validate() (err error) {
	if c.Rows <= 0 || c.Columns <= 0 {
		return fmt.Errorf("grid extent %dx%d: rows and columns must be positive", c.Rows, c.Columns)
	}
	if c.NbRobots < 1 {
		return errors.New("nbRobots must be at least 1")
	}
	if c.mode, err = ParseMode(c.Mode); err != nil {
		return err
	}
	for name, r := range map[string]float64{
		"rewardOutsideGrid":   c.RewardOutsideGrid,
		"rewardDuplicateBeep": c.RewardDuplicateBeep,
		"rewardPerStep":       c.RewardPerStep,
	} {
		if math.IsNaN(r) || math.IsInf(r, 0) {
			return fmt.Errorf("%s must be finite", name)
		}
	}
	if c.RewardOutsideGrid > 0 || c.RewardDuplicateBeep > 0 {
		return errors.New("boundary and duplicate-beep rewards are penalties and must not be positive")
	}
	if c.Horizon < 0 {
		return errors.New("horizon must not be negative")
	}
	if c.Horizon == 0 {
		c.Horizon = c.Rows * c.Columns * 10
	}
	return c.loadTokens()
}

// loadTokens resolves the marker layout once: either the built-in table or
// the configured map file, whose extent must match the configured grid.
func (c *Configuration) loadTokens() error {
	if c.MapFile == "" {
		c.tokens = DefaultTokens
		return nil
	}
	layout, err := os.ReadFile(c.MapFile)
	if err != nil {
		return fmt.Errorf("map file: %w", err)
	}
	tokens, rows, columns, err := ParseMapString(string(layout))
	if err != nil {
		return fmt.Errorf("map file %s: %w", c.MapFile, err)
	}
	if rows != c.Rows || columns != c.Columns {
		return fmt.Errorf("map file %s is %dx%d, configuration wants %dx%d",
			c.MapFile, columns, rows, c.Columns, c.Rows)
	}
	c.tokens = tokens
	return nil
}

// Tokens returns the marker layout resolved by Validate.
func (c Configuration) Tokens() []Token {
	if c.tokens == nil {
		return DefaultTokens
	}
	return c.tokens
}

// CommandMode returns the mode parsed by Validate.
func (c Configuration) CommandMode() CommandMode {
	return c.mode
}

// ActionSpaceSize is 6 for either command mode.
func (c Configuration) ActionSpaceSize() int {
	return ActionSpaceSize
}

// NbOrientations is the number of discrete headings.
func (c Configuration) NbOrientations() int {
	return 4
}

// NbColors is the size of the color enumeration, Blank included.
func (c Configuration) NbColors() int {
	return NbColors
}

type outerConfig struct {
	Kind string      `mapstructure:"kind"`
	Def  interface{} `mapstructure:"def"`
}

type envSection struct {
	Environment Configuration `yaml:"environment"`
}

// ConfigFromYaml reads the environment section of a config file and returns
// a validated Configuration.
func ConfigFromYaml(path string) (Configuration, error) {
	vp := viper.New()
	// The full path must be handed to SetConfigFile: viper ignores its
	// search paths once an explicit file is set.
	vp.SetConfigFile(path)
	vp.SetConfigType("yaml")
	if err := vp.ReadInConfig(); err != nil {
		return Configuration{}, err
	}

	outer := &outerConfig{}
	if err := vp.Unmarshal(outer); err != nil {
		return Configuration{}, err
	}

	def, err := yaml.Marshal(outer.Def)
	if err != nil {
		return Configuration{}, err
	}

	section := envSection{Environment: DefaultConfiguration()}
	if err = yaml.Unmarshal(def, &section); err != nil {
		return Configuration{}, err
	}

	cfg := section.Environment
	if err = cfg.Validate(); err != nil {
		return Configuration{}, err
	}
	return cfg, nil
}
