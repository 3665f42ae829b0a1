package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"image"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	uuid "github.com/google/uuid"
	websocket "github.com/gorilla/websocket"

	constants "github.com/inference-gateway/gridpick/internal/constants"
	domain "github.com/inference-gateway/gridpick/internal/domain"
	logger "github.com/inference-gateway/gridpick/internal/logger"
	picker "github.com/inference-gateway/gridpick/internal/picker"
	surface "github.com/inference-gateway/gridpick/internal/surface"
)

//go:embed templates/*
var templates embed.FS

const (
	gridFramePath = "/frames/grid"
	zoomFramePath = "/frames/zoom"
)

// Server is the websocket surface: it serves an operator page, pushes
// outbound messages to every connected client and feeds inbound ones to the
// picker
type Server struct {
	addr     string
	encoder  *surface.FrameEncoder
	upgrader websocket.Upgrader
	hub      *Hub
	now      func() time.Time

	sinkMu sync.RWMutex
	sink   picker.Submitter

	frameMu sync.RWMutex
	frames  map[string]*surface.Frame

	allowedOrigins []string
}

var _ surface.Renderer = (*Server)(nil)

// NewServer creates a websocket surface listening on host:port
func NewServer(host string, port int, encoder *surface.FrameEncoder) *Server {
	s := &Server{
		addr:    net.JoinHostPort(host, fmt.Sprintf("%d", port)),
		encoder: encoder,
		hub:     NewHub(),
		now:     time.Now,
		frames:  make(map[string]*surface.Frame),
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}
	return s
}

// AllowOrigins adds browser origins (scheme://host[:port]) that may open the
// websocket besides the page served by this surface
func (s *Server) AllowOrigins(origins ...string) {
	for _, o := range origins {
		if o = strings.TrimRight(strings.TrimSpace(o), "/"); o != "" {
			s.allowedOrigins = append(s.allowedOrigins, o)
		}
	}
}

// checkOrigin accepts clients without an Origin header (agents, CLIs), the
// page served by this surface and the configured origins. Any other web page
// could otherwise drive the pointer.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if strings.EqualFold(u.Host, r.Host) {
		return true
	}
	for _, allowed := range s.allowedOrigins {
		if strings.EqualFold(origin, allowed) {
			return true
		}
	}
	logger.Warn("Rejected websocket from foreign origin", "origin", origin)
	return false
}

// Addr returns the configured listen address
func (s *Server) Addr() string {
	return s.addr
}

// Hub returns the client hub
func (s *Server) Hub() *Hub {
	return s.hub
}

// Handler returns the HTTP routes of the surface
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc(gridFramePath, s.handleFrame(surface.OutGridShown))
	mux.HandleFunc(zoomFramePath, s.handleFrame(surface.OutZoomShown))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// Start serves until ctx is cancelled, submitting inbound messages to sink
func (s *Server) Start(ctx context.Context, sink picker.Submitter) error {
	s.setSink(sink)

	server := &http.Server{
		Addr:         s.addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		<-ctx.Done()
		logger.Info("Shutting down web surface...")
		s.hub.Shutdown()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("Web surface shutdown error", "error", err)
		}
	}()

	logger.Info("Web surface started", "url", fmt.Sprintf("http://%s", s.addr))

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func (s *Server) setSink(sink picker.Submitter) {
	s.sinkMu.Lock()
	defer s.sinkMu.Unlock()
	s.sink = sink
}

func (s *Server) submit(ev picker.Event) bool {
	s.sinkMu.RLock()
	defer s.sinkMu.RUnlock()
	if s.sink == nil {
		return false
	}
	return s.sink.Submit(ev)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	tmpl, err := template.ParseFS(templates, "templates/index.html")
	if err != nil {
		http.Error(w, "Template error", http.StatusInternalServerError)
		logger.Error("Failed to parse template", "error", err)
		return
	}

	data := struct {
		Title string
	}{
		Title: "gridpick",
	}

	if err := tmpl.Execute(w, data); err != nil {
		logger.Error("Failed to execute template", "error", err)
	}
}

func (s *Server) handleFrame(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.frameMu.RLock()
		frame := s.frames[kind]
		s.frameMu.RUnlock()

		if frame == nil {
			http.NotFound(w, r)
			return
		}

		w.Header().Set("Content-Type", s.encoder.ContentType())
		w.Header().Set("Cache-Control", "no-store")
		if _, err := w.Write(frame.Data); err != nil {
			logger.Debug("Failed to write frame", "error", err)
		}
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("WebSocket upgrade failed", "error", err)
		return
	}

	c := newClient(uuid.New().String(), conn)
	s.hub.register(c)
	go c.writePump()

	s.readLoop(c)
	s.hub.unregister(c.id)
}

func (s *Server) readLoop(c *client) {
	conn := c.conn
	conn.SetReadLimit(64 * 1024)
	if err := conn.SetReadDeadline(time.Now().Add(constants.WebSocketPongWait)); err != nil {
		logger.Warn("Failed to set read deadline", "id", c.id, "error", err)
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(constants.WebSocketPongWait))
	})

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("Surface client read error", "id", c.id, "error", err)
			}
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}

		if err := s.handleInbound(data); err != nil {
			logger.Debug("Rejected inbound message", "id", c.id, "error", err)
			s.reply(c, surface.ErrorMessage(err, s.now()))
		}
	}
}

func (s *Server) handleInbound(data []byte) error {
	in, err := surface.DecodeInbound(data)
	if err != nil {
		return err
	}
	ev, err := in.Event()
	if err != nil {
		return err
	}
	if !s.submit(ev) {
		return fmt.Errorf("picker is busy, %s dropped", in.Type)
	}
	return nil
}

func (s *Server) reply(c *client, msg surface.Outbound) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	c.enqueue(data)
}

func (s *Server) broadcast(msg surface.Outbound) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode %s message: %w", msg.Type, err)
	}
	s.hub.Broadcast(data)
	return nil
}

func (s *Server) publishFrame(kind string, img image.Image, path string) (string, error) {
	if img == nil {
		s.setFrame(kind, nil)
		return "", nil
	}

	frame, err := s.encoder.Encode(img)
	if err != nil {
		return "", err
	}
	s.setFrame(kind, frame)
	return fmt.Sprintf("%s?t=%d", path, s.now().UnixNano()), nil
}

func (s *Server) setFrame(kind string, frame *surface.Frame) {
	s.frameMu.Lock()
	defer s.frameMu.Unlock()
	s.frames[kind] = frame
}

// RenderGrid publishes the screenshot frame and announces the grid
func (s *Server) RenderGrid(ctx context.Context, signal domain.GridSignal) error {
	var img image.Image
	if signal.Screenshot != nil {
		img = signal.Screenshot.Image
	}
	frame, err := s.publishFrame(surface.OutGridShown, img, gridFramePath)
	if err != nil {
		return err
	}
	return s.broadcast(surface.GridShown(signal, frame, s.now()))
}

// ClearGrid announces that the grid is gone
func (s *Server) ClearGrid(ctx context.Context) error {
	s.setFrame(surface.OutGridShown, nil)
	return s.broadcast(surface.Hidden(surface.OutGridHidden, s.now()))
}

// RenderZoom publishes the magnified frame and announces the zoom view
func (s *Server) RenderZoom(ctx context.Context, signal domain.ZoomSignal) error {
	frame, err := s.publishFrame(surface.OutZoomShown, signal.Frame, zoomFramePath)
	if err != nil {
		return err
	}
	return s.broadcast(surface.ZoomShown(signal, frame, s.now()))
}

// ClearZoom announces that the zoom view is gone
func (s *Server) ClearZoom(ctx context.Context) error {
	s.setFrame(surface.OutZoomShown, nil)
	return s.broadcast(surface.Hidden(surface.OutZoomHidden, s.now()))
}

// Notify broadcasts the notice
func (s *Server) Notify(ctx context.Context, notice domain.Notice) error {
	return s.broadcast(surface.NoticeMessage(notice))
}
