package fsort

import (
	"testing"

	"github.com/stretchr/testify/require"

	"fsort/internal/mmapfile"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := NewConfig(DefaultNumPages, "/tmp/fsort_tmp")
	require.NoError(t, err)
	require.Greater(t, cfg.RegionSize, int64(0))
	require.Equal(t, "/tmp/fsort_tmp", cfg.TempDir)
}

func TestNewConfigRejectsNonPositiveNumPages(t *testing.T) {
	_, err := NewConfig(0, "/tmp/fsort_tmp")
	require.ErrorIs(t, err, ErrConfig)

	_, err = NewConfig(-5, "/tmp/fsort_tmp")
	require.ErrorIs(t, err, ErrConfig)
}

func TestNewConfigRejectsOversizedRegion(t *testing.T) {
	hugeNumPages := int((int64(1) << 32) / int64(mmapfile.PageSize()))
	_, err := NewConfig(hugeNumPages+1, "/tmp/fsort_tmp")
	require.ErrorIs(t, err, ErrConfig)
}
