// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"log"

	"github.com/spf13/viper"
)

// RootSettingsFile is the settings file looked for when --settings is not
// passed. A missing default file is not an error.
const RootSettingsFile = "settings.yaml"

// AlignConfig is settings for minimap2 alignment and PAF filtering
type AlignConfig struct {
	// the minimap2 preset used when mapping sequences
	Preset string `mapstructure:"preset"`

	// the secondary-to-primary score ratio of chains worth keeping
	Secondary float64 `mapstructure:"secondary"`

	// the minimum identity an alignment needs to survive filtering
	MinIdentity float64 `mapstructure:"min-identity"`

	// the minimum alignment block length in bases
	MinLength int `mapstructure:"min-length"`
}

// DistanceConfig is settings for distance based confidence weighting
type DistanceConfig struct {
	// the divergence below which a contig keeps full confidence
	DivergenceThreshold float64 `mapstructure:"divergence-threshold"`

	// the distance at which confidence bottoms out
	MaxDistance float64 `mapstructure:"max-distance"`

	// the floor for the confidence weight of a diverged contig
	MinWeight float64 `mapstructure:"min-weight"`
}

// ScoreConfig is settings for scoring and classification
type ScoreConfig struct {
	// the union coverage a single placement needs to count as intact
	CompletenessThreshold float64 `mapstructure:"completeness-threshold"`

	// the Jaccard overlap for matching predicted against true intervals
	MinOverlapRatio float64 `mapstructure:"min-overlap-ratio"`

	// the level the agreement metrics are computed at: base or interval
	Level string `mapstructure:"level"`

	// the weight of the alignment F1 in the overall score
	AlignmentWeight float64 `mapstructure:"alignment-weight"`

	// the weight of the genome coverage in the overall score
	CoverageWeight float64 `mapstructure:"coverage-weight"`

	// whether to break the agreement metrics down per class
	PerClass bool `mapstructure:"per-class"`
}

// Config is the root-level settings struct and is a mix
// of settings available in settings.yaml and those
// available from the command line
type Config struct {
	// the mode for picking class representatives: mash or first
	Mode string `mapstructure:"mode"`

	// the number of loci profiled concurrently, zero meaning all CPUs
	Threads int `mapstructure:"threads"`

	// alignment and filtering settings
	Align AlignConfig

	// distance weighting settings
	Distance DistanceConfig

	// scoring and classification settings
	Score ScoreConfig
}

// New returns a new Config struct populated by
// Viper settings (either from the local settings.yaml)
// and/or command line arguments
func New() Config {
	setDefaults()

	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		log.Fatalf("unable to decode settings into struct, %v", err)
	}

	return c
}

// setDefaults registers the default for every setting so a bare run
// without a settings file behaves the same as a documented one.
func setDefaults() {
	viper.SetDefault("mode", "mash")
	viper.SetDefault("threads", 0)

	viper.SetDefault("align.preset", "asm20")
	viper.SetDefault("align.secondary", 0.1)
	viper.SetDefault("align.min-identity", 0.95)
	viper.SetDefault("align.min-length", 500)

	viper.SetDefault("distance.divergence-threshold", 0.05)
	viper.SetDefault("distance.max-distance", 1.0)
	viper.SetDefault("distance.min-weight", 0.1)

	viper.SetDefault("score.completeness-threshold", 0.95)
	viper.SetDefault("score.min-overlap-ratio", 0.8)
	viper.SetDefault("score.level", "interval")
	viper.SetDefault("score.alignment-weight", 0.7)
	viper.SetDefault("score.coverage-weight", 0.3)
	viper.SetDefault("score.per-class", false)
}
