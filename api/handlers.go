package api

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/katalvlaran/panelwire/codec"
	"github.com/katalvlaran/panelwire/grid"
	"github.com/katalvlaran/panelwire/preview"
	"github.com/katalvlaran/panelwire/wire"
)

// Event is what the hub broadcasts after a panel is stored.
type Event struct {
	Type   string       `json:"type"`
	ID     string       `json:"id"`
	Report codec.Report `json:"report"`
	Custom bool         `json:"custom,omitempty"`
}

// PanelResponse is the body of GET /panels/:id.
type PanelResponse struct {
	ID     string        `json:"id"`
	Grid   grid.Document `json:"grid"`
	Report codec.Report  `json:"report"`
}

// StoreResponse is the body of a successful PUT /panels/:id.
type StoreResponse struct {
	ID          string       `json:"id"`
	Points      int          `json:"points"`
	Connections int          `json:"connections"`
	Report      codec.Report `json:"report"`
}

var errNotFound = errors.New("api: panel not stored")

func parseID(c *gin.Context) (wire.ObjectID, bool) {
	v, err := strconv.ParseUint(c.Param("id"), 0, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid panel id " + strconv.Quote(c.Param("id"))})
		return 0, false
	}
	return wire.ObjectID(v), true
}

// load reads id, treating a panel with no points as absent.
func (s *Server) load(c *gin.Context, id wire.ObjectID) (*wire.Panel, error) {
	p, err := wire.Load(c.Request.Context(), s.st, id)
	if err != nil {
		return nil, err
	}
	if p.NumPoints() == 0 {
		return nil, errNotFound
	}
	return p, nil
}

func (s *Server) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, grid.ErrOutOfRange), errors.Is(err, grid.ErrWrongRole),
		errors.Is(err, grid.ErrBadDimensions), errors.Is(err, codec.ErrNoPrevious):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		if s.logger != nil {
			s.logger.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func (s *Server) listPanels(c *gin.Context) {
	ids, err := s.st.Objects(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	c.JSON(http.StatusOK, gin.H{"panels": out})
}

func (s *Server) getPanel(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	p, err := s.load(c, id)
	if err != nil {
		s.fail(c, err)
		return
	}
	g, rep, err := codec.Decode(s.Config().PanelContext(id, s.logger), p)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, PanelResponse{ID: id.String(), Grid: g.ToDocument(), Report: rep})
}

func (s *Server) getWire(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	p, err := s.load(c, id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// putPanel encodes the posted document over whatever is stored for id.
// ?decorationsOnly=1 and ?flash=1 map onto the encoder options.
func (s *Server) putPanel(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var doc grid.Document
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	g, err := grid.FromDocument(doc)
	if err != nil {
		s.fail(c, err)
		return
	}

	defer s.lock(uint32(id))()
	cfg := s.Config()
	seen := codec.NewRegistry()
	opts := append(cfg.EncodeOptions(), codec.WithRegistry(seen))
	prev, err := s.load(c, id)
	switch {
	case err == nil:
		opts = append(opts, codec.WithPrevious(prev))
	case !errors.Is(err, errNotFound):
		s.fail(c, err)
		return
	}
	if c.Query("decorationsOnly") == "1" {
		opts = append(opts, codec.WithDecorationsOnly())
	}
	if c.Query("flash") == "1" {
		opts = append(opts, codec.WithFlash())
	}

	out, rep, err := codec.Encode(cfg.PanelContext(id, s.logger), g, opts...)
	if err != nil {
		s.fail(c, err)
		return
	}
	if err := wire.Store(c.Request.Context(), s.st, id, out); err != nil {
		s.fail(c, err)
		return
	}

	// the shared registry follows the latest store of each panel
	custom := seen.Len() > 0
	if custom {
		for _, cp := range seen.List() {
			s.registry.Record(cp.ID, cp.PillarWidth)
		}
	} else {
		s.registry.Forget(id)
	}
	if err := s.hub.Broadcast(Event{Type: "stored", ID: id.String(), Report: rep, Custom: custom}); err != nil && s.logger != nil {
		s.logger.Printf("broadcast %s: %v", id, err)
	}
	c.JSON(http.StatusOK, StoreResponse{
		ID:          id.String(),
		Points:      out.NumPoints(),
		Connections: out.NumConnections(),
		Report:      rep,
	})
}

func (s *Server) getPreview(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	p, err := s.load(c, id)
	if err != nil {
		s.fail(c, err)
		return
	}
	cfg := s.Config()
	size := cfg.PreviewSize
	if v, err := strconv.Atoi(c.Query("size")); err == nil && v > 0 && v <= 4096 {
		size = v
	}
	img, err := preview.Render(id, p, preview.WithSize(size))
	if err != nil {
		s.fail(c, err)
		return
	}
	if c.Query("thumb") == "1" {
		img = preview.Thumbnail(img, cfg.ThumbnailSize)
	}
	var buf bytes.Buffer
	if err := preview.EncodePNG(&buf, img); err != nil {
		s.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (s *Server) listCustom(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"panels": s.registry.List()})
}
