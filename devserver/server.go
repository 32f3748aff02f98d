// Package devserver is a stand-in for the document processing backend.
//
// It serves the same routes as the real server over a local directory of
// JSON files so docpanel can be exercised without the extraction service.
// It never parses PDFs and never generates spreadsheets: /processar only
// classifies each file and /processar-pdf always reports that extraction
// is unavailable.
package devserver

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/weversonbarbieri/accountant-pdf-extract/log"
)

// DefaultAddr matches the real backend's development address.
const DefaultAddr = "127.0.0.1:5000"

// shutdownTimeout bounds graceful shutdown.
const shutdownTimeout = 5 * time.Second

// Server serves the backend routes over Dir.
type Server struct {
	dir    string
	logger *log.Logger
	engine *gin.Engine
}

// New creates a server over dir, which must exist.
func New(dir string, logger *log.Logger) (*Server, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("devserver directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("devserver directory: %s is not a directory", dir)
	}
	if logger == nil {
		logger = log.Nop()
	}

	s := &Server{dir: dir, logger: logger}
	s.engine = s.setupRoutes()
	return s, nil
}

// Handler returns the HTTP handler serving every route.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) setupRoutes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger(s.logger))
	engine.SetHTMLTemplate(template.Must(template.New(indexTemplate).Parse(indexHTML)))

	engine.GET("/", s.handleIndex)
	engine.POST("/upload", s.handleUpload)
	engine.POST("/processar", s.handleProcess)
	engine.POST("/processar-pdf", s.handleProcessPDF)
	engine.POST("/excluir-arquivo", s.handleDelete)
	return engine
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is canceled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.logger.Info("devserver listening", map[string]any{
		"addr": ln.Addr().String(),
		"dir":  s.dir,
	})

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// requestLogger logs one line per request.
func requestLogger(logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request", map[string]any{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      c.Writer.Status(),
			"request_id":  c.GetHeader("X-Request-ID"),
			"duration_ms": time.Since(start).Milliseconds(),
		})
	}
}
