package pricing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceForCounty(t *testing.T) {
	table := NewTable()

	tests := []struct {
		county string
		want   int64
	}{
		{"Baltimore City", 35000},
		{"  baltimore   city ", 35000},
		{"Montgomery", 35000},
		{"Montgomery County", 35000},
		{"Garrett County", 32500},
		{"Atlantis", 32500},
		{"", 32500},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, table.PriceForCounty(tt.county), tt.county)
	}
}

func TestGlobalPriceForCounty(t *testing.T) {
	assert.Equal(t, int64(35000), PriceForCounty("Baltimore City"))
	assert.Equal(t, DefaultPrice, PriceForCounty("Unlisted"))
}

func TestLoadOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pricing.yml")
	require.NoError(t, os.WriteFile(path, []byte("default: 30000\ncounties:\n  Garrett County: 31000\n"), 0o644))

	table := NewTable()
	require.NoError(t, table.LoadOverlay(path))

	assert.Equal(t, int64(31000), table.PriceForCounty("Garrett"))
	assert.Equal(t, int64(30000), table.PriceForCounty("Atlantis"))
	assert.Equal(t, int64(35000), table.PriceForCounty("Baltimore City"))
}

func TestLoadOverlayRejectsNegative(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pricing.yml")
	require.NoError(t, os.WriteFile(path, []byte("counties:\n  Kent County: -1\n"), 0o644))

	assert.Error(t, NewTable().LoadOverlay(path))
}

func TestMarylandCounties(t *testing.T) {
	assert.Len(t, MarylandCounties(), 24)
	assert.True(t, IsMarylandCounty("Baltimore City"))
	assert.True(t, IsMarylandCounty("howard"))
	assert.False(t, IsMarylandCounty("Fairfax County"))
}
