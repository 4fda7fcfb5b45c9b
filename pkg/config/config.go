package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Run modes. Demo substitutes curated fixtures for every external call so
// the whole pipeline runs offline.
const (
	ModeDemo = "demo"
	ModeLive = "live"
)

type Config struct {
	DataRoot string
	Mode     string
	HTTP     HTTPConfig
	Clean    CleanConfig
	Cluster  ClusterConfig
	Align    AlignConfig
	Catalog  CatalogConfig
}

type HTTPConfig struct {
	Timeout   time.Duration
	RateDelay time.Duration
	UserAgent string
}

// CleanConfig bounds the length filter applied by the expander.
type CleanConfig struct {
	MinLength int
	MaxLength int
}

type ClusterConfig struct {
	Linkage    string
	TightCut   float64
	LooseCut   float64
	RandomSeed int64
}

type AlignConfig struct {
	Binary  string
	Timeout time.Duration
}

type CatalogConfig struct {
	Path string
}

func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("data_root", "./data")
	v.SetDefault("mode", ModeDemo)
	v.SetDefault("http.timeout", "30s")
	v.SetDefault("http.rate_delay", "500ms")
	v.SetDefault("http.user_agent", "jrfatlas/1.0 (capsid reference db)")
	v.SetDefault("clean.min_length", 100)
	v.SetDefault("clean.max_length", 2000)
	v.SetDefault("cluster.linkage", "average")
	v.SetDefault("cluster.tight_cut", 0.3)
	v.SetDefault("cluster.loose_cut", 0.5)
	v.SetDefault("cluster.random_seed", 42)
	v.SetDefault("align.binary", "TMalign")
	v.SetDefault("align.timeout", "60s")
	v.SetDefault("catalog.path", "") // empty -> <data_root>/catalog.db

	v.SetConfigName("jrfatlas")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("JRFATLAS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Config file is optional; defaults + env are enough.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		DataRoot: v.GetString("data_root"),
		Mode:     v.GetString("mode"),
		HTTP: HTTPConfig{
			Timeout:   v.GetDuration("http.timeout"),
			RateDelay: v.GetDuration("http.rate_delay"),
			UserAgent: v.GetString("http.user_agent"),
		},
		Clean: CleanConfig{
			MinLength: v.GetInt("clean.min_length"),
			MaxLength: v.GetInt("clean.max_length"),
		},
		Cluster: ClusterConfig{
			Linkage:    v.GetString("cluster.linkage"),
			TightCut:   v.GetFloat64("cluster.tight_cut"),
			LooseCut:   v.GetFloat64("cluster.loose_cut"),
			RandomSeed: v.GetInt64("cluster.random_seed"),
		},
		Align: AlignConfig{
			Binary:  v.GetString("align.binary"),
			Timeout: v.GetDuration("align.timeout"),
		},
		Catalog: CatalogConfig{
			Path: v.GetString("catalog.path"),
		},
	}

	if cfg.Catalog.Path == "" {
		cfg.Catalog.Path = filepath.Join(cfg.DataRoot, "catalog.db")
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Mode != ModeDemo && c.Mode != ModeLive {
		return fmt.Errorf("invalid mode %q (want %q or %q)", c.Mode, ModeDemo, ModeLive)
	}
	if c.Clean.MinLength <= 0 || c.Clean.MaxLength < c.Clean.MinLength {
		return fmt.Errorf("invalid length band [%d,%d]", c.Clean.MinLength, c.Clean.MaxLength)
	}
	if c.Cluster.TightCut <= 0 || c.Cluster.LooseCut < c.Cluster.TightCut {
		return fmt.Errorf("invalid cluster cuts tight=%.2f loose=%.2f", c.Cluster.TightCut, c.Cluster.LooseCut)
	}
	return nil
}

// Stage output directories, mirroring the on-disk layout of the atlas.
func (c *Config) RawDir() string      { return filepath.Join(c.DataRoot, "data_raw") }
func (c *Config) CleanDir() string    { return filepath.Join(c.DataRoot, "data_clean") }
func (c *Config) AnalysesDir() string { return filepath.Join(c.DataRoot, "analyses") }
func (c *Config) FiguresDir() string  { return filepath.Join(c.DataRoot, "figures") }
func (c *Config) PDBDir() string      { return filepath.Join(c.DataRoot, "data_raw", "pdb_structures") }
