package picker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	uuid "github.com/google/uuid"
	constants "github.com/inference-gateway/gridpick/internal/constants"
	display "github.com/inference-gateway/gridpick/internal/display"
	domain "github.com/inference-gateway/gridpick/internal/domain"
	logger "github.com/inference-gateway/gridpick/internal/logger"
	zoom "github.com/inference-gateway/gridpick/internal/zoom"
)

// Options wires the coordinator to its collaborators
type Options struct {
	Displays domain.DisplaySource
	Capturer domain.ScreenCapturer
	Injector domain.PointerInjector
	Surface  domain.Surface
	Journal  domain.DispatchJournal

	// Settings is called once per activation, so cooldown and timeout
	// changes apply from the next activation on
	Settings func() Settings
	Policy   display.Policy
	// DryRun marks completions of an injector that only prints commands
	DryRun bool

	NewID func() string
	Now   func() time.Time
}

// Submitter accepts picker events without blocking
type Submitter interface {
	Submit(ev Event) bool
}

// Coordinator owns the picker session. A single goroutine takes events off
// the queue one at a time, steps the machine and runs the resulting
// effects. Dispatches run on their own goroutine and report back through the
// queue.
type Coordinator struct {
	machine *Machine
	opts    Options

	events chan Event
	done   chan struct{}

	session Session
	state   atomic.Int32

	cooldown   *time.Timer
	dispatches sync.WaitGroup
	stopOnce   sync.Once
}

// NewCoordinator creates a coordinator in the Idle state
func NewCoordinator(opts Options) *Coordinator {
	if opts.Settings == nil {
		opts.Settings = DefaultSettings
	}
	if opts.Policy.Kind == "" {
		opts.Policy = display.Largest()
	}
	if opts.NewID == nil {
		opts.NewID = func() string { return uuid.New().String() }
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	c := &Coordinator{
		machine: NewMachine(),
		opts:    opts,
		events:  make(chan Event, constants.EventChannelBufferSize),
		done:    make(chan struct{}),
		session: NewSession(opts.Policy),
	}
	c.state.Store(int32(domain.StateIdle))
	return c
}

// State returns the current dispatch state
func (c *Coordinator) State() domain.DispatchState {
	return domain.DispatchState(c.state.Load())
}

// Submit queues an event without blocking. It returns false when the queue
// is full or the coordinator has stopped.
func (c *Coordinator) Submit(ev Event) bool {
	select {
	case <-c.done:
		return false
	default:
	}

	select {
	case c.events <- ev:
		return true
	default:
		logger.Warn("Picker event queue full, dropping event", "event_type", ev.EventType())
		return false
	}
}

// post queues an internal completion. Completions are never dropped while
// the coordinator runs.
func (c *Coordinator) post(ev Event) {
	select {
	case c.events <- ev:
	case <-c.done:
	}
}

// Run processes events until ctx is cancelled. On return the surfaces are
// hidden and in-flight dispatches have finished or timed out.
func (c *Coordinator) Run(ctx context.Context) error {
	logger.Info("Picker started", "policy", c.session.Policy.String())
	defer c.shutdown()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Picker stopping", "state", c.State().String())
			return nil

		case ev := <-c.events:
			c.handle(ctx, ev)
		}
	}
}

func (c *Coordinator) shutdown() {
	c.stopOnce.Do(func() {
		close(c.done)
		if c.cooldown != nil {
			c.cooldown.Stop()
		}

		ctx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
		defer cancel()

		c.hideZoom(ctx)
		c.hideGrid(ctx)

		finished := make(chan struct{})
		go func() {
			c.dispatches.Wait()
			close(finished)
		}()

		select {
		case <-finished:
		case <-ctx.Done():
			logger.Warn("Timed out waiting for in-flight dispatch")
		}
	})
}

func (c *Coordinator) handle(ctx context.Context, ev Event) {
	from := c.session.State

	next, effects, err := c.machine.Step(c.session, ev)
	c.session = next
	c.state.Store(int32(next.State))

	if err != nil {
		if errors.Is(err, ErrDropped) {
			logger.Debug("Picker event dropped", "event_type", ev.EventType(), "state", from.String())
		} else {
			logger.Warn("Picker event rejected", "event_type", ev.EventType(), "state", from.String(), "error", err)
		}
	}

	if from != next.State {
		logger.Debug("Picker state transition",
			"from", from.String(),
			"to", next.State.String(),
			"event_type", ev.EventType(),
			"activation_id", next.ActivationID)
	}

	for _, effect := range effects {
		c.run(ctx, effect)
	}
}

func (c *Coordinator) run(ctx context.Context, effect Effect) {
	switch e := effect.(type) {
	case ShowGridEffect:
		if err := c.opts.Surface.ShowGrid(ctx, e.Signal); err != nil {
			logger.Warn("Failed to show grid", "activation_id", e.Signal.ActivationID, "error", err)
		}

	case HideGridEffect:
		c.hideGrid(ctx)

	case ShowZoomEffect:
		c.showZoom(ctx, e.Signal)

	case HideZoomEffect:
		c.hideZoom(ctx)

	case PrepareActivationEffect:
		c.handle(ctx, c.prepare(ctx, e.Policy))

	case DispatchEffect:
		c.dispatches.Add(1)
		go c.dispatch(ctx, e)

	case StartCooldownEffect:
		c.startCooldown(e.Generation, e.Duration)

	case ReportEffect:
		c.report(ctx, e)

	default:
		logger.Error("Unknown picker effect", "effect_type", effect.EffectType())
	}
}

func (c *Coordinator) hideGrid(ctx context.Context) {
	if err := c.opts.Surface.HideGrid(ctx); err != nil {
		logger.Warn("Failed to hide grid", "error", err)
	}
}

func (c *Coordinator) hideZoom(ctx context.Context) {
	if err := c.opts.Surface.HideZoom(ctx); err != nil {
		logger.Warn("Failed to hide zoom", "error", err)
	}
}

func (c *Coordinator) showZoom(ctx context.Context, signal domain.ZoomSignal) {
	frame, err := zoom.Render(signal.Screenshot, signal.Region, signal.Viewport, c.session.Settings.Interpolation)
	if err != nil {
		logger.Warn("Failed to render zoom frame", "activation_id", signal.ActivationID, "error", err)
	} else {
		signal.Frame = frame
	}

	if err := c.opts.Surface.ShowZoom(ctx, signal); err != nil {
		logger.Warn("Failed to show zoom", "activation_id", signal.ActivationID, "error", err)
	}
}

// prepare takes the activation snapshot: a fresh display enumeration, the
// resolved target and one screenshot of it
func (c *Coordinator) prepare(ctx context.Context, policy display.Policy) Event {
	displays, err := c.opts.Displays.ListDisplays(ctx)
	if err != nil {
		return ActivationFailedEvent{Err: fmt.Errorf("failed to list displays: %w", err)}
	}

	target, err := display.ResolveTarget(displays, policy)
	if err != nil {
		return ActivationFailedEvent{Err: err}
	}

	shot, err := c.opts.Capturer.Capture(ctx, target.Bounds)
	if err != nil {
		return ActivationFailedEvent{Err: fmt.Errorf("failed to capture %s: %w", target, err)}
	}

	id := c.opts.NewID()
	logger.Info("Picker activated", "activation_id", id, "display", target.String(), "policy", policy.String())

	return ActivationReadyEvent{
		ActivationID: id,
		Display:      target,
		Screenshot:   shot,
		Settings:     c.opts.Settings(),
	}
}

// dispatch issues move then click. It is detached from ctx cancellation so
// a click already handed to the injector is never cut off, but each
// primitive is bounded by the dispatch timeout.
func (c *Coordinator) dispatch(ctx context.Context, e DispatchEffect) {
	defer c.dispatches.Done()

	dctx := logger.WithActivation(context.WithoutCancel(ctx), e.ActivationID)
	start := c.opts.Now()

	err := c.inject(dctx, e)
	duration := c.opts.Now().Sub(start)

	c.record(dctx, e, err, duration)
	c.post(DispatchCompletedEvent{
		Generation: e.Generation,
		Point:      e.Point,
		Err:        err,
		Duration:   duration,
		DryRun:     c.opts.DryRun,
	})
}

func (c *Coordinator) inject(ctx context.Context, e DispatchEffect) error {
	timeout := e.Timeout
	if timeout <= 0 {
		timeout = constants.DefaultDispatchTimeout
	}

	moveCtx, cancel := context.WithTimeout(ctx, timeout)
	err := c.opts.Injector.Move(moveCtx, e.Point.X, e.Point.Y)
	cancel()
	if err != nil {
		return asInjectionError("move", e.Point, err)
	}

	clickCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := c.opts.Injector.Click(clickCtx, e.Button); err != nil {
		return asInjectionError("click", e.Point, err)
	}
	return nil
}

func asInjectionError(op string, p domain.Point, err error) error {
	var injErr *domain.InjectionError
	if errors.As(err, &injErr) {
		return err
	}
	return &domain.InjectionError{Op: op, Point: p, Err: err}
}

func (c *Coordinator) record(ctx context.Context, e DispatchEffect, err error, duration time.Duration) {
	if c.opts.Journal == nil {
		return
	}

	rec := domain.DispatchRecord{
		ID:           c.opts.NewID(),
		ActivationID: e.ActivationID,
		DisplayID:    e.DisplayID,
		CellIndex:    e.CellIndex,
		Point:        e.Point,
		Button:       e.Button.String(),
		Success:      err == nil,
		Duration:     duration,
		CreatedAt:    c.opts.Now(),
	}
	if err != nil {
		rec.Error = err.Error()
	}

	if jerr := c.opts.Journal.Record(ctx, rec); jerr != nil {
		logger.Sugar(ctx).Warnw("Failed to journal dispatch", "error", jerr)
	}
}

func (c *Coordinator) startCooldown(generation uint64, d time.Duration) {
	if c.cooldown != nil {
		c.cooldown.Stop()
	}
	if d < 0 {
		d = constants.DefaultCooldown
	}
	c.cooldown = time.AfterFunc(d, func() {
		c.post(CooldownElapsedEvent{Generation: generation})
	})
}

func (c *Coordinator) report(ctx context.Context, e ReportEffect) {
	notice := domain.Notice{
		ActivationID: c.session.ActivationID,
		Level:        e.Level,
		Message:      e.Message,
		Point:        e.Point,
		Time:         c.opts.Now(),
	}

	log := logger.Sugar(logger.WithActivation(ctx, notice.ActivationID))
	switch e.Level {
	case domain.NoticeError:
		log.Errorw(e.Message, "error", e.Err)
	case domain.NoticeWarning:
		log.Warnw(e.Message)
	default:
		log.Infow(e.Message)
	}

	if err := c.opts.Surface.Notify(ctx, notice); err != nil {
		logger.Warn("Failed to notify surface", "error", err)
	}
}
