// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"log"

	"github.com/spf13/viper"
)

// FragmentConfig settings about assembly fragments
type FragmentConfig struct {
	// the minimum length of a fragment between two junctions
	MinSize int `mapstructure:"min-size"`

	// the minimum distance between two internal sites before they're
	// grouped and resolved together
	MinSiteDistance int `mapstructure:"min-site-distance"`
}

// MutationConfig is settings for silent mutation search and scoring
type MutationConfig struct {
	// width of the window, centered on a mutation, scanned for
	// newly created recognition sites
	ScanWindow int `mapstructure:"scan-window"`

	// codon usage frequency beneath which a codon is considered rare
	RareCodonThreshold float64 `mapstructure:"rare-codon-threshold"`

	// whether to scan for created sites of every registry enzyme,
	// not just the assembly enzyme
	CheckAllEnzymes bool `mapstructure:"check-all-enzymes"`
}

// JunctionConfig is settings for junction placement
type JunctionConfig struct {
	// the minimum overhang quality for a junction to be valid
	QualityMin float64 `mapstructure:"quality-min"`
}

// SearchConfig bounds the overhang set optimizer
type SearchConfig struct {
	// the largest combination count that is searched exhaustively
	ExhaustiveCap int `mapstructure:"exhaustive-cap"`

	// the maximum number of greedy improvement passes
	GreedyIterations int `mapstructure:"greedy-iterations"`
}

// Config is the root-level settings struct and is a mix of settings
// available in settings.yaml and those available from the command line
type Config struct {
	// Fragment level settings
	Fragments FragmentConfig

	// silent mutation settings
	Mutations MutationConfig

	// junction placement settings
	Junctions JunctionConfig

	// overhang set search settings
	Search SearchConfig

	// the strategy the user would prefer, all else being equal
	PreferredStrategy string `mapstructure:"strategy"`

	// organism whose codon usage table is used for scoring
	Organism string `mapstructure:"organism"`
}

// setDefaults sets the default value for each setting on viper
func setDefaults() {
	viper.SetDefault("fragments.min-size", 100)
	viper.SetDefault("fragments.min-site-distance", 50)
	viper.SetDefault("mutations.scan-window", 30)
	viper.SetDefault("mutations.rare-codon-threshold", 0.1)
	viper.SetDefault("mutations.check-all-enzymes", false)
	viper.SetDefault("junctions.quality-min", 50.0)
	viper.SetDefault("search.exhaustive-cap", 10000)
	viper.SetDefault("search.greedy-iterations", 100)
	viper.SetDefault("strategy", "mutagenic_junction")
	viper.SetDefault("organism", "e_coli")
}

// New returns a new Config struct populated by Viper settings
// (either from the local settings.yaml) and/or command line arguments
func New() *Config {
	setDefaults()

	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		log.Fatalf("unable to decode settings into config: %v", err)
	}

	return &c
}
