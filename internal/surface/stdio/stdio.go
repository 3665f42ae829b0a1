package stdio

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	domain "github.com/inference-gateway/gridpick/internal/domain"
	logger "github.com/inference-gateway/gridpick/internal/logger"
	picker "github.com/inference-gateway/gridpick/internal/picker"
	surface "github.com/inference-gateway/gridpick/internal/surface"
)

const maxLineSize = 64 * 1024

// Surface speaks the JSON-lines protocol over a reader/writer pair. Frames
// are written to FramesDir and referenced by path.
type Surface struct {
	in        io.Reader
	out       io.Writer
	framesDir string
	encoder   *surface.FrameEncoder
	now       func() time.Time

	mu sync.Mutex
}

var _ surface.Renderer = (*Surface)(nil)

// New creates a stdio surface
func New(in io.Reader, out io.Writer, framesDir string, encoder *surface.FrameEncoder) *Surface {
	return &Surface{
		in:        in,
		out:       out,
		framesDir: framesDir,
		encoder:   encoder,
		now:       time.Now,
	}
}

// Run reads inbound messages until ctx is done or the input closes. Each
// decoded message is submitted; malformed ones are answered with an error
// message.
func (s *Surface) Run(ctx context.Context, sink picker.Submitter) error {
	lines := make(chan []byte)
	errs := make(chan error, 1)

	go func() {
		scanner := bufio.NewScanner(s.in)
		scanner.Buffer(make([]byte, 0, 4096), maxLineSize)
		for scanner.Scan() {
			line := append([]byte(nil), scanner.Bytes()...)
			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
		}
		errs <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-errs:
			if err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}
			return nil
		case line := <-lines:
			s.handleLine(line, sink)
		}
	}
}

func (s *Surface) handleLine(line []byte, sink picker.Submitter) {
	if len(line) == 0 {
		return
	}

	in, err := surface.DecodeInbound(line)
	if err == nil {
		var ev picker.Event
		if ev, err = in.Event(); err == nil {
			if !sink.Submit(ev) {
				err = fmt.Errorf("picker is busy, %s dropped", in.Type)
			}
		}
	}

	if err != nil {
		logger.Debug("Rejected inbound message", "error", err)
		_ = s.write(surface.ErrorMessage(err, s.now()))
	}
}

// RenderGrid writes the screenshot frame and announces the grid
func (s *Surface) RenderGrid(ctx context.Context, signal domain.GridSignal) error {
	var frame string
	if signal.Screenshot != nil {
		path, err := s.encoder.WriteFile(s.framesDir, signal.ActivationID+"-grid", signal.Screenshot.Image)
		if err != nil {
			return err
		}
		frame = path
	}
	return s.write(surface.GridShown(signal, frame, s.now()))
}

// ClearGrid announces that the grid is gone
func (s *Surface) ClearGrid(ctx context.Context) error {
	return s.write(surface.Hidden(surface.OutGridHidden, s.now()))
}

// RenderZoom writes the magnified frame and announces the zoom view
func (s *Surface) RenderZoom(ctx context.Context, signal domain.ZoomSignal) error {
	var frame string
	if signal.Frame != nil {
		name := fmt.Sprintf("%s-zoom-%d", signal.ActivationID, signal.Cell.Label())
		path, err := s.encoder.WriteFile(s.framesDir, name, signal.Frame)
		if err != nil {
			return err
		}
		frame = path
	}
	return s.write(surface.ZoomShown(signal, frame, s.now()))
}

// ClearZoom announces that the zoom view is gone
func (s *Surface) ClearZoom(ctx context.Context) error {
	return s.write(surface.Hidden(surface.OutZoomHidden, s.now()))
}

// Notify writes the notice
func (s *Surface) Notify(ctx context.Context, notice domain.Notice) error {
	return s.write(surface.NoticeMessage(notice))
}

func (s *Surface) write(msg surface.Outbound) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode %s message: %w", msg.Type, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.out.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write %s message: %w", msg.Type, err)
	}
	return nil
}
