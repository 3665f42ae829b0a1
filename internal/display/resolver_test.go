package display

import (
	"errors"
	"testing"

	domain "github.com/inference-gateway/gridpick/internal/domain"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

func monitor(id, x, y, w, h int) domain.Display {
	r := domain.Rect{X: x, Y: y, Width: w, Height: h}
	return domain.Display{ID: id, Bounds: r, WorkArea: r}
}

func TestResolveTarget(t *testing.T) {
	tests := []struct {
		name       string
		displays   []domain.Display
		policy     Policy
		expectedID int
		expectErr  error
	}{
		{
			name:       "largest picks the second of 800x600 and 1920x1080",
			displays:   []domain.Display{monitor(0, 0, 0, 800, 600), monitor(1, 800, 0, 1920, 1080)},
			policy:     Largest(),
			expectedID: 1,
		},
		{
			name:       "largest breaks ties by enumeration order",
			displays:   []domain.Display{monitor(0, 0, 0, 1920, 1080), monitor(1, 1920, 0, 1080, 1920)},
			policy:     Largest(),
			expectedID: 0,
		},
		{
			name:       "single display",
			displays:   []domain.Display{monitor(0, 0, 0, 1280, 720)},
			policy:     Largest(),
			expectedID: 0,
		},
		{
			name:       "explicit index",
			displays:   []domain.Display{monitor(0, 0, 0, 800, 600), monitor(1, 800, 0, 1920, 1080)},
			policy:     AtIndex(0),
			expectedID: 0,
		},
		{
			name:      "index past the end",
			displays:  []domain.Display{monitor(0, 0, 0, 800, 600), monitor(1, 800, 0, 1920, 1080)},
			policy:    AtIndex(2),
			expectErr: domain.ErrIndexOutOfRange,
		},
		{
			name:      "negative index",
			displays:  []domain.Display{monitor(0, 0, 0, 800, 600)},
			policy:    AtIndex(-1),
			expectErr: domain.ErrIndexOutOfRange,
		},
		{
			name:      "no displays",
			displays:  nil,
			policy:    Largest(),
			expectErr: domain.ErrNoDisplays,
		},
		{
			name:       "primary picks the display at the origin",
			displays:   []domain.Display{monitor(0, -1920, 0, 1920, 1080), monitor(1, 0, 0, 1280, 1024)},
			policy:     Policy{Kind: PolicyPrimary},
			expectedID: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveTarget(tt.displays, tt.policy)
			if tt.expectErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.expectErr), "expected %v, got %v", tt.expectErr, err)

				var geomErr *domain.GeometryError
				assert.True(t, errors.As(err, &geomErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedID, got.ID)
		})
	}
}

func TestResolveTarget_ReturnsCopy(t *testing.T) {
	displays := []domain.Display{monitor(0, 0, 0, 1920, 1080)}

	got, err := ResolveTarget(displays, Largest())
	require.NoError(t, err)

	got.Bounds.Width = 1
	assert.Equal(t, 1920, displays[0].Bounds.Width)
}

func TestParsePolicyKind(t *testing.T) {
	kind, err := ParsePolicyKind("INDEX")
	require.NoError(t, err)
	assert.Equal(t, PolicyIndex, kind)

	kind, err = ParsePolicyKind("")
	require.NoError(t, err)
	assert.Equal(t, PolicyLargest, kind)

	_, err = ParsePolicyKind("smallest")
	assert.Error(t, err)
}

func TestVirtualBounds(t *testing.T) {
	bounds := VirtualBounds([]domain.Display{
		monitor(0, 0, 0, 1920, 1080),
		monitor(1, 1920, -200, 1280, 1024),
	})
	assert.Equal(t, domain.NewRect(0, -200, 3200, 1080), bounds)
	assert.Equal(t, domain.Rect{}, VirtualBounds(nil))
}
