package x11

import (
	"testing"

	domain "github.com/inference-gateway/gridpick/internal/domain"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

func TestBuildDisplays(t *testing.T) {
	root := domain.Rect{Width: 3200, Height: 1080}

	tests := []struct {
		name        string
		heads       []domain.Rect
		workarea    *domain.Rect
		wantBounds  []domain.Rect
		wantPrimary int
		wantWork    []domain.Rect
	}{
		{
			name:        "no xinerama falls back to root",
			wantBounds:  []domain.Rect{root},
			wantPrimary: 0,
			wantWork:    []domain.Rect{root},
		},
		{
			name: "heads sorted left to right",
			heads: []domain.Rect{
				{X: 1920, Y: 0, Width: 1280, Height: 1024},
				{X: 0, Y: 0, Width: 1920, Height: 1080},
			},
			wantBounds: []domain.Rect{
				{X: 0, Y: 0, Width: 1920, Height: 1080},
				{X: 1920, Y: 0, Width: 1280, Height: 1024},
			},
			wantPrimary: 0,
			wantWork: []domain.Rect{
				{X: 0, Y: 0, Width: 1920, Height: 1080},
				{X: 1920, Y: 0, Width: 1280, Height: 1024},
			},
		},
		{
			name: "work area clipped per head",
			heads: []domain.Rect{
				{X: 0, Y: 0, Width: 1920, Height: 1080},
				{X: 1920, Y: 0, Width: 1280, Height: 1024},
			},
			workarea: &domain.Rect{X: 0, Y: 32, Width: 3200, Height: 1048},
			wantBounds: []domain.Rect{
				{X: 0, Y: 0, Width: 1920, Height: 1080},
				{X: 1920, Y: 0, Width: 1280, Height: 1024},
			},
			wantPrimary: 0,
			wantWork: []domain.Rect{
				{X: 0, Y: 32, Width: 1920, Height: 1048},
				{X: 1920, Y: 32, Width: 1280, Height: 992},
			},
		},
		{
			name:        "no head at origin marks first as primary",
			heads:       []domain.Rect{{X: 100, Y: 0, Width: 800, Height: 600}},
			wantBounds:  []domain.Rect{{X: 100, Y: 0, Width: 800, Height: 600}},
			wantPrimary: 0,
			wantWork:    []domain.Rect{{X: 100, Y: 0, Width: 800, Height: 600}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			displays := buildDisplays(tt.heads, tt.workarea, root)
			require.Len(t, displays, len(tt.wantBounds))
			for i, d := range displays {
				assert.Equal(t, i, d.ID)
				assert.Equal(t, tt.wantBounds[i], d.Bounds)
				assert.Equal(t, tt.wantWork[i], d.WorkArea)
				assert.Equal(t, i == tt.wantPrimary, d.Primary, "display %d primary", i)
			}
		})
	}
}
