package surface

import (
	"context"
	"sync"

	domain "github.com/inference-gateway/gridpick/internal/domain"
)

// Renderer is what a concrete surface implements. Tracker makes it
// idempotent.
type Renderer interface {
	RenderGrid(ctx context.Context, signal domain.GridSignal) error
	ClearGrid(ctx context.Context) error
	RenderZoom(ctx context.Context, signal domain.ZoomSignal) error
	ClearZoom(ctx context.Context) error
	Notify(ctx context.Context, notice domain.Notice) error
}

// Tracker implements domain.Surface over a Renderer: showing a shown view or
// hiding a hidden one does not reach the renderer
type Tracker struct {
	renderer Renderer

	mu   sync.Mutex
	grid bool
	zoom bool
}

var _ domain.Surface = (*Tracker)(nil)

// NewTracker wraps renderer
func NewTracker(renderer Renderer) *Tracker {
	return &Tracker{renderer: renderer}
}

// Visible reports which views are currently shown
func (t *Tracker) Visible() (grid, zoom bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.grid, t.zoom
}

// ShowGrid renders the grid unless it is already shown
func (t *Tracker) ShowGrid(ctx context.Context, signal domain.GridSignal) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.grid {
		return nil
	}
	if err := t.renderer.RenderGrid(ctx, signal); err != nil {
		return err
	}
	t.grid = true
	return nil
}

// HideGrid clears the grid if it is shown
func (t *Tracker) HideGrid(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.grid {
		return nil
	}
	if err := t.renderer.ClearGrid(ctx); err != nil {
		return err
	}
	t.grid = false
	return nil
}

// ShowZoom renders the zoom view unless it is already shown
func (t *Tracker) ShowZoom(ctx context.Context, signal domain.ZoomSignal) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.zoom {
		return nil
	}
	if err := t.renderer.RenderZoom(ctx, signal); err != nil {
		return err
	}
	t.zoom = true
	return nil
}

// HideZoom clears the zoom view if it is shown
func (t *Tracker) HideZoom(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.zoom {
		return nil
	}
	if err := t.renderer.ClearZoom(ctx); err != nil {
		return err
	}
	t.zoom = false
	return nil
}

// Notify passes the notice through
func (t *Tracker) Notify(ctx context.Context, notice domain.Notice) error {
	return t.renderer.Notify(ctx, notice)
}
