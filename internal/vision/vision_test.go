package vision

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegionsPartitionsBothColumns(t *testing.T) {
	regions := Regions(1920, 1080)
	require.Len(t, regions, SlotCount)

	for i := 0; i < 5; i++ {
		assert.Equal(t, 0, regions[i].Min.X, "blue column hugs the left edge")
		assert.False(t, regions[i].Empty())
	}
	for i := 5; i < 10; i++ {
		assert.Equal(t, 1920, regions[i].Max.X, "red column hugs the right edge")
		assert.False(t, regions[i].Empty())
	}

	// Rows within a column must not overlap.
	for i := 1; i < 5; i++ {
		assert.GreaterOrEqual(t, regions[i].Min.Y, regions[i-1].Max.Y)
	}
}

func TestIdentifyIsNotImplemented(t *testing.T) {
	names, err := Identify("whatever.png")
	assert.Nil(t, names)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotImplemented))
}
