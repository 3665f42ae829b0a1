package native

import (
	"image"
	"testing"

	domain "github.com/inference-gateway/gridpick/internal/domain"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

func TestToDisplays(t *testing.T) {
	displays := toDisplays([]image.Rectangle{
		image.Rect(0, 0, 1440, 900),
		image.Rect(0, 0, 0, 0),
		image.Rect(-1920, 0, 0, 1080),
	})

	require.Len(t, displays, 2)
	assert.True(t, displays[0].Primary)
	assert.Equal(t, domain.Rect{Width: 1440, Height: 900}, displays[0].Bounds)
	assert.Equal(t, 1, displays[1].ID, "ids stay dense after skipping empty bounds")
	assert.Equal(t, domain.Rect{X: -1920, Width: 1920, Height: 1080}, displays[1].Bounds)
	assert.False(t, displays[1].Primary)
}

func TestRobotButton(t *testing.T) {
	assert.Equal(t, "left", robotButton(domain.MouseButtonLeft))
	assert.Equal(t, "center", robotButton(domain.MouseButtonMiddle))
	assert.Equal(t, "right", robotButton(domain.MouseButtonRight))
}
