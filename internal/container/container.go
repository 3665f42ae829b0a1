package container

import (
	"context"
	"fmt"
	"io"
	"sync"

	config "github.com/inference-gateway/gridpick/config"
	capture "github.com/inference-gateway/gridpick/internal/capture"
	display "github.com/inference-gateway/gridpick/internal/display"
	domain "github.com/inference-gateway/gridpick/internal/domain"
	storage "github.com/inference-gateway/gridpick/internal/infra/storage"
	injector "github.com/inference-gateway/gridpick/internal/injector"
	logger "github.com/inference-gateway/gridpick/internal/logger"
	picker "github.com/inference-gateway/gridpick/internal/picker"
	surface "github.com/inference-gateway/gridpick/internal/surface"
	zoom "github.com/inference-gateway/gridpick/internal/zoom"

	_ "github.com/inference-gateway/gridpick/internal/display/native"
	_ "github.com/inference-gateway/gridpick/internal/display/wayland"
	_ "github.com/inference-gateway/gridpick/internal/display/x11"
)

// Dispatch backends
const (
	BackendDisplay = "display"
	BackendXdotool = "xdotool"
	BackendDryRun  = "dry-run"
)

// ServiceContainer builds and owns the picker's collaborators. Each one is
// created on first use so that offline commands never touch the display
// server.
type ServiceContainer struct {
	loader *config.Loader
	store  *config.Store

	// DryRunOutput receives the commands printed by the dry-run backend
	DryRunOutput io.Writer

	mu         sync.Mutex
	provider   display.Provider
	controller display.DisplayController
	acquirer   *capture.Acquirer
	injector   domain.PointerInjector
	dryRun     bool
	journal    domain.DispatchJournal
	encoder    *surface.FrameEncoder
}

// NewServiceContainer creates a container around the loaded configuration.
// loader may be nil when no hot reload is wanted.
func NewServiceContainer(cfg *config.Config, loader *config.Loader) *ServiceContainer {
	return &ServiceContainer{
		loader:       loader,
		store:        config.NewStore(cfg),
		DryRunOutput: io.Discard,
	}
}

// GetConfig returns a snapshot of the current configuration
func (c *ServiceContainer) GetConfig() *config.Config {
	return c.store.Snapshot()
}

// GetConfigStore returns the live configuration store
func (c *ServiceContainer) GetConfigStore() *config.Store {
	return c.store
}

// WatchConfig starts hot reloading the configuration file
func (c *ServiceContainer) WatchConfig() {
	if c.loader == nil {
		return
	}
	c.store.Watch(c.loader, func(err error) {
		logger.Warn("Configuration reload rejected", "path", c.loader.Path(), "error", err)
	})
}

// GetDisplayController connects to the configured display server
func (c *ServiceContainer) GetDisplayController() (display.DisplayController, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.displayController()
}

func (c *ServiceContainer) displayController() (display.DisplayController, error) {
	if c.controller != nil {
		return c.controller, nil
	}

	cfg := c.store.Snapshot()
	provider, err := display.SelectProvider(cfg.Display.Server)
	if err != nil {
		return nil, err
	}

	controller, err := provider.GetController(cfg.Display.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s display server: %w", provider.GetDisplayInfo().Name, err)
	}

	logger.Info("Display server connected", "server", provider.GetDisplayInfo().Name, "display", cfg.Display.Name)
	c.provider = provider
	c.controller = controller
	return controller, nil
}

// GetDisplayInfo describes the connected display server
func (c *ServiceContainer) GetDisplayInfo() (display.DisplayInfo, error) {
	if _, err := c.GetDisplayController(); err != nil {
		return display.DisplayInfo{}, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.provider.GetDisplayInfo(), nil
}

// GetAcquirer returns the display enumeration and capture adapter
func (c *ServiceContainer) GetAcquirer() (*capture.Acquirer, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.acquirer != nil {
		return c.acquirer, nil
	}
	controller, err := c.displayController()
	if err != nil {
		return nil, err
	}
	c.acquirer = capture.NewAcquirer(controller)
	return c.acquirer, nil
}

// GetInjector returns the configured pointer injector, wrapped in the rate
// limiter when enabled
func (c *ServiceContainer) GetInjector() (domain.PointerInjector, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.injector != nil {
		return c.injector, nil
	}

	cfg := c.store.Snapshot()
	var inj domain.PointerInjector

	switch cfg.Dispatch.Backend {
	case BackendXdotool:
		x := injector.NewXdotoolInjector(cfg.Dispatch.XdotoolPath, nil)
		if err := x.CheckAvailable(); err != nil {
			return nil, err
		}
		inj = x
	case BackendDryRun:
		inj = injector.NewDryRunInjector(c.DryRunOutput)
		c.dryRun = true
	case "", BackendDisplay:
		controller, err := c.displayController()
		if err != nil {
			return nil, err
		}
		inj = injector.NewControllerInjector(controller)
	default:
		return nil, fmt.Errorf("unsupported dispatch backend: %s", cfg.Dispatch.Backend)
	}

	if cfg.Dispatch.RateLimit.Enabled {
		inj = injector.NewRateLimited(inj, injector.NewRateLimiter(injector.RateLimitConfig{
			Enabled:             true,
			MaxActionsPerMinute: cfg.Dispatch.RateLimit.MaxActionsPerMinute,
			WindowSeconds:       cfg.Dispatch.RateLimit.WindowSeconds,
		}))
	}

	logger.Debug("Pointer injector ready", "backend", cfg.Dispatch.Backend, "rate_limited", cfg.Dispatch.RateLimit.Enabled)
	c.injector = inj
	return inj, nil
}

// GetLocator returns a pointer position reader for the configured backend
func (c *ServiceContainer) GetLocator() (injector.Locator, error) {
	cfg := c.store.Snapshot()
	switch cfg.Dispatch.Backend {
	case BackendXdotool:
		x := injector.NewXdotoolInjector(cfg.Dispatch.XdotoolPath, nil)
		if err := x.CheckAvailable(); err != nil {
			return nil, err
		}
		return x, nil
	case BackendDryRun:
		return nil, fmt.Errorf("the %s backend cannot read the pointer position", BackendDryRun)
	default:
		controller, err := c.GetDisplayController()
		if err != nil {
			return nil, err
		}
		return injector.NewControllerInjector(controller), nil
	}
}

// GetJournal opens the configured dispatch journal
func (c *ServiceContainer) GetJournal() (domain.DispatchJournal, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.journal != nil {
		return c.journal, nil
	}

	cfg := c.store.Snapshot()
	journal, err := storage.NewStorage(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s dispatch journal: %w", cfg.Storage.Type, err)
	}
	c.journal = journal
	return journal, nil
}

// GetFrameEncoder returns the encoder surfaces use for frames
func (c *ServiceContainer) GetFrameEncoder() *surface.FrameEncoder {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.encoder == nil {
		cfg := c.store.Snapshot()
		c.encoder = surface.NewFrameEncoder(surface.FrameConfig{
			Format:  cfg.Surface.FrameFormat,
			Quality: cfg.Surface.FrameQuality,
		})
	}
	return c.encoder
}

// Settings converts the current configuration into picker settings. It is
// called once per activation.
func (c *ServiceContainer) Settings() picker.Settings {
	return SettingsFrom(c.store.Snapshot())
}

// SettingsFrom maps a validated configuration onto picker settings
func SettingsFrom(cfg *config.Config) picker.Settings {
	interpolation, err := zoom.ParseInterpolation(cfg.Zoom.Interpolation)
	if err != nil {
		interpolation = zoom.InterpolationNearest
	}

	return picker.Settings{
		Grid:          cfg.Grid,
		ZoomFactor:    cfg.Zoom.Factor,
		Padding:       cfg.Zoom.Padding,
		MaxViewport:   cfg.ZoomViewportLimit(),
		Button:        domain.ParseMouseButton(cfg.Dispatch.Button),
		Interpolation: interpolation,
		Cooldown:      cfg.Dispatch.Cooldown,
		Timeout:       cfg.Dispatch.Timeout,
	}
}

// PolicyFrom maps the display section onto a resolver policy
func PolicyFrom(cfg *config.Config) display.Policy {
	kind, err := display.ParsePolicyKind(cfg.Display.Policy)
	if err != nil {
		return display.Largest()
	}
	return display.Policy{Kind: kind, Index: cfg.Display.Index}
}

// NewCoordinator wires a coordinator to the given surface. The display
// source, injector and journal come from the container.
func (c *ServiceContainer) NewCoordinator(s domain.Surface) (*picker.Coordinator, error) {
	acquirer, err := c.GetAcquirer()
	if err != nil {
		return nil, err
	}
	inj, err := c.GetInjector()
	if err != nil {
		return nil, err
	}
	journal, err := c.GetJournal()
	if err != nil {
		return nil, err
	}

	cfg := c.store.Snapshot()
	coordinator := picker.NewCoordinator(picker.Options{
		Displays: acquirer,
		Capturer: acquirer,
		Injector: inj,
		Surface:  s,
		Journal:  journal,
		Settings: c.Settings,
		Policy:   PolicyFrom(cfg),
		DryRun:   c.isDryRun(),
	})

	c.store.Subscribe(func(next *config.Config, _ domain.ConfigErrors) {
		if next.Display.Policy == cfg.Display.Policy && next.Display.Index == cfg.Display.Index {
			return
		}
		cfg = next
		coordinator.Submit(picker.SelectDisplayEvent{Policy: PolicyFrom(next)})
	})

	return coordinator, nil
}

// isDryRun reports whether the built injector only prints its commands.
// The backend is fixed at first use and does not follow reloads.
func (c *ServiceContainer) isDryRun() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dryRun
}

// Close releases the display connection and the journal
func (c *ServiceContainer) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var firstErr error
	if c.journal != nil {
		if err := c.journal.Close(); err != nil {
			firstErr = fmt.Errorf("failed to close journal: %w", err)
		}
		c.journal = nil
	}
	if c.controller != nil {
		if err := c.controller.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to close display controller: %w", err)
		}
		c.controller = nil
	}
	c.acquirer = nil
	c.injector = nil
	return firstErr
}

// Ping checks that the journal backend is reachable
func (c *ServiceContainer) Ping(ctx context.Context) error {
	journal, err := c.GetJournal()
	if err != nil {
		return err
	}
	return journal.Health(ctx)
}
