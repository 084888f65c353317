package sheaf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultAtlasSize, cfg.Atlas.Width)
	assert.Equal(t, DefaultAtlasPadding, cfg.Atlas.Padding)
	assert.False(t, cfg.Debug)
}

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
atlas:
  width: 1024
  padding: 2
batch:
  max_sprites_per_group: 500
debug: true
`))
	require.NoError(t, err)
	assert.Equal(t, 1024, cfg.Atlas.Width)
	assert.Equal(t, DefaultAtlasSize, cfg.Atlas.Height, "missing keys keep defaults")
	assert.Equal(t, 2, cfg.Atlas.Padding)
	assert.Equal(t, 500, cfg.Batch.MaxSpritesPerGroup)
	assert.Equal(t, defaultRequestCapacity, cfg.Batch.InitialCapacity)
	assert.True(t, cfg.Batch.Debug, "top-level debug enables batch stats")
}

func TestParseConfigEmpty(t *testing.T) {
	cfg, err := ParseConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"malformed", "atlas: [1, 2"},
		{"zero width", "atlas:\n  width: 0\n"},
		{"negative padding", "atlas:\n  padding: -1\n"},
		{"negative capacity", "batch:\n  initial_capacity: -5\n"},
		{"negative group size", "batch:\n  max_sprites_per_group: -1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
	_, err := ParseConfig([]byte("atlas:\n  height: -3\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.ErrorIs(t, err, ErrInvalidDimensions)
}

func TestIsPowerOfTwo(t *testing.T) {
	for _, n := range []int{1, 2, 64, 2048} {
		assert.True(t, isPowerOfTwo(n), n)
	}
	for _, n := range []int{0, -2, 3, 1000} {
		assert.False(t, isPowerOfTwo(n), n)
	}
}
