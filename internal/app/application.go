package app

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	config "github.com/inference-gateway/gridpick/config"
	container "github.com/inference-gateway/gridpick/internal/container"
	logger "github.com/inference-gateway/gridpick/internal/logger"
	picker "github.com/inference-gateway/gridpick/internal/picker"
	surface "github.com/inference-gateway/gridpick/internal/surface"
	stdio "github.com/inference-gateway/gridpick/internal/surface/stdio"
	web "github.com/inference-gateway/gridpick/internal/web"
)

// Surface types
const (
	SurfaceStdio = "stdio"
	SurfaceWeb   = "web"
)

// PickerApplication runs the coordinator against the configured surface
// until its context is cancelled
type PickerApplication struct {
	services *container.ServiceContainer
	in       io.Reader
	out      io.Writer
}

// NewPickerApplication creates the application. in and out carry the stdio
// protocol and are unused by the web surface.
func NewPickerApplication(services *container.ServiceContainer, in io.Reader, out io.Writer) *PickerApplication {
	return &PickerApplication{services: services, in: in, out: out}
}

// transport is a surface that also feeds operator input to the picker
type transport interface {
	surface.Renderer
	serve(ctx context.Context, sink picker.Submitter) error
}

type stdioTransport struct{ *stdio.Surface }

func (t stdioTransport) serve(ctx context.Context, sink picker.Submitter) error {
	return t.Run(ctx, sink)
}

type webTransport struct{ *web.Server }

func (t webTransport) serve(ctx context.Context, sink picker.Submitter) error {
	return t.Start(ctx, sink)
}

func (a *PickerApplication) transport(cfg *config.Config) (transport, error) {
	encoder := a.services.GetFrameEncoder()
	switch cfg.Surface.Type {
	case "", SurfaceStdio:
		return stdioTransport{stdio.New(a.in, a.out, cfg.Surface.FramesDir, encoder)}, nil
	case SurfaceWeb:
		server := web.NewServer(cfg.Surface.Web.Host, cfg.Surface.Web.Port, encoder)
		server.AllowOrigins(cfg.Surface.Web.AllowedOrigins...)
		return webTransport{server}, nil
	default:
		return nil, fmt.Errorf("unsupported surface type: %s", cfg.Surface.Type)
	}
}

// Run starts the surface and the coordinator. It returns when ctx is
// cancelled, the stdio input closes or the web listener fails.
func (a *PickerApplication) Run(ctx context.Context) error {
	cfg := a.services.GetConfig()

	t, err := a.transport(cfg)
	if err != nil {
		return err
	}

	coordinator, err := a.services.NewCoordinator(surface.NewTracker(t))
	if err != nil {
		return err
	}

	a.services.WatchConfig()
	logger.Info("Picker application starting", "surface", cfg.Surface.Type, "backend", cfg.Dispatch.Backend)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return coordinator.Run(gctx)
	})
	g.Go(func() error {
		defer cancel()
		return t.serve(gctx, coordinator)
	})

	return g.Wait()
}
