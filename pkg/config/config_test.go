package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ModeDemo, cfg.Mode)
	assert.Equal(t, "./data", cfg.DataRoot)
	assert.Equal(t, 30*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, 500*time.Millisecond, cfg.HTTP.RateDelay)
	assert.Equal(t, 100, cfg.Clean.MinLength)
	assert.Equal(t, 2000, cfg.Clean.MaxLength)
	assert.Equal(t, "average", cfg.Cluster.Linkage)
	assert.Equal(t, 0.3, cfg.Cluster.TightCut)
	assert.Equal(t, 0.5, cfg.Cluster.LooseCut)
	assert.Equal(t, "TMalign", cfg.Align.Binary)

	// Catalog path defaults under the data root.
	assert.Equal(t, filepath.Join(cfg.DataRoot, "catalog.db"), cfg.Catalog.Path)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("JRFATLAS_MODE", ModeLive)
	t.Setenv("JRFATLAS_DATA_ROOT", "/tmp/atlas")
	t.Setenv("JRFATLAS_HTTP_RATE_DELAY", "2s")
	t.Setenv("JRFATLAS_CLEAN_MIN_LENGTH", "80")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ModeLive, cfg.Mode)
	assert.Equal(t, "/tmp/atlas", cfg.DataRoot)
	assert.Equal(t, 2*time.Second, cfg.HTTP.RateDelay)
	assert.Equal(t, 80, cfg.Clean.MinLength)
	assert.Equal(t, filepath.Join("/tmp/atlas", "catalog.db"), cfg.Catalog.Path)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Run("unknown mode", func(t *testing.T) {
		t.Setenv("JRFATLAS_MODE", "dry-run")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("inverted length band", func(t *testing.T) {
		t.Setenv("JRFATLAS_CLEAN_MIN_LENGTH", "500")
		t.Setenv("JRFATLAS_CLEAN_MAX_LENGTH", "100")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("inverted cluster cuts", func(t *testing.T) {
		t.Setenv("JRFATLAS_CLUSTER_TIGHT_CUT", "0.9")
		t.Setenv("JRFATLAS_CLUSTER_LOOSE_CUT", "0.2")
		_, err := Load()
		assert.Error(t, err)
	})
}

func TestDirLayout(t *testing.T) {
	cfg := &Config{DataRoot: "/srv/atlas"}
	assert.Equal(t, "/srv/atlas/data_raw", cfg.RawDir())
	assert.Equal(t, "/srv/atlas/data_clean", cfg.CleanDir())
	assert.Equal(t, "/srv/atlas/analyses", cfg.AnalysesDir())
	assert.Equal(t, "/srv/atlas/figures", cfg.FiguresDir())
	assert.Equal(t, filepath.Join("/srv/atlas", "data_raw", "pdb_structures"), cfg.PDBDir())
}
