// Package api exposes panels over HTTP with gin.
//
// Routes:
//
//	GET  /panels                    ids of every stored panel
//	GET  /panels/:id                decoded grid document and decode report
//	PUT  /panels/:id                encode a grid document and store it
//	GET  /panels/:id/wire           raw wire arrays
//	GET  /panels/:id/preview.png    rendered preview (?size=, ?thumb=1)
//	GET  /custom-panels             panels that need the glyph renderer
//	GET  /ws                        websocket stream of store events
//
// Panel ids are hexadecimal ("0x00182") or decimal.
package api

import (
	"log"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/katalvlaran/panelwire/codec"
	"github.com/katalvlaran/panelwire/config"
	"github.com/katalvlaran/panelwire/store"
)

// Server holds the collaborators behind the routes.
type Server struct {
	st       store.Lister
	registry *codec.Registry
	hub      *Hub
	logger   *log.Logger

	mu  sync.RWMutex
	cfg config.Config

	// per-panel write lock so concurrent PUTs do not interleave fields
	locks sync.Map
}

// Option configures a Server.
type Option func(*Server)

// WithLogger routes request and codec diagnostics to l.
func WithLogger(l *log.Logger) Option { return func(s *Server) { s.logger = l } }

// WithConfig replaces the default configuration.
func WithConfig(c config.Config) Option { return func(s *Server) { s.cfg = c } }

// WithRegistry shares r instead of a private registry.
func WithRegistry(r *codec.Registry) Option { return func(s *Server) { s.registry = r } }

// New returns a Server over st.
func New(st store.Lister, opts ...Option) *Server {
	s := &Server{st: st, cfg: config.Default()}
	for _, opt := range opts {
		opt(s)
	}
	if s.registry == nil {
		s.registry = codec.NewRegistry()
	}
	s.hub = NewHub(s.logger)
	return s
}

// SetConfig swaps the configuration used by later requests.
func (s *Server) SetConfig(c config.Config) {
	s.mu.Lock()
	s.cfg = c
	s.mu.Unlock()
}

// Config returns the configuration in use.
func (s *Server) Config() config.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Hub returns the event hub.
func (s *Server) Hub() *Hub { return s.hub }

// Registry returns the custom-panel registry.
func (s *Server) Registry() *codec.Registry { return s.registry }

func (s *Server) lock(key uint32) func() {
	v, _ := s.locks.LoadOrStore(key, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// Router builds the gin engine. Logging middleware is added only when the
// server has a logger.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if s.logger != nil {
		r.Use(gin.LoggerWithWriter(s.logger.Writer()))
	}

	r.GET("/panels", s.listPanels)
	r.GET("/panels/:id", s.getPanel)
	r.PUT("/panels/:id", s.putPanel)
	r.GET("/panels/:id/wire", s.getWire)
	r.GET("/panels/:id/preview.png", s.getPreview)
	r.GET("/custom-panels", s.listCustom)
	r.GET("/ws", gin.WrapH(s.hub))
	return r
}
