package httpserver

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tinytelemetry/logsheet/internal/report"
)

// SnapshotSource is the narrow contract the API needs: the latest written report.
type SnapshotSource interface {
	Latest() *report.Report
}

// Server provides a read-only HTTP view of the current report.
type Server struct {
	addr      string
	source    SnapshotSource
	server    *http.Server
	ctx       context.Context
	cancel    context.CancelFunc
	startTime time.Time
}

// NewServer creates a new HTTP API server.
func NewServer(addr string, source SnapshotSource) *Server {
	if addr == "" {
		addr = "127.0.0.1:3000"
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		addr:   addr,
		source: source,
		ctx:    ctx,
		cancel: cancel,
	}
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/api/health", s.handleHealth)
	r.GET("/api/summary", s.handleSheet(report.SummarySheet))
	r.GET("/api/keywords", s.handleSheet(report.KeywordsSheet))
	r.GET("/api/sheets/:name", s.handleNamedSheet)
	return r
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	gin.SetMode(gin.ReleaseMode)

	s.server = &http.Server{
		Handler:           s.routes(),
		BaseContext:       func(_ net.Listener) context.Context { return s.ctx },
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}

	s.startTime = time.Now()

	go s.server.Serve(listener)
	return nil
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop() error {
	s.cancel()
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(c *gin.Context) {
	var cycles int64
	if rep := s.source.Latest(); rep != nil {
		cycles = rep.Cycles
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(s.startTime).String(),
		"cycles": cycles,
	})
}

func (s *Server) handleSheet(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		s.writeSheet(c, name)
	}
}

func (s *Server) handleNamedSheet(c *gin.Context) {
	s.writeSheet(c, c.Param("name"))
}

func (s *Server) writeSheet(c *gin.Context, name string) {
	rep := s.source.Latest()
	if rep == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no report generated yet"})
		return
	}
	sheet, ok := rep.Sheet(name)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown sheet", "sheets": rep.SheetNames()})
		return
	}

	rows := make([]map[string]any, len(sheet.Rows))
	for i, row := range sheet.Rows {
		m := make(map[string]any, len(sheet.Header))
		for j, col := range sheet.Header {
			if j < len(row) {
				m[col] = row[j]
			}
		}
		rows[i] = m
	}

	c.JSON(http.StatusOK, gin.H{
		"sheet":     sheet.Name,
		"columns":   sheet.Header,
		"rows":      rows,
		"row_count": len(rows),
		"cycles":    rep.Cycles,
	})
}
