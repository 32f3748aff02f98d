// Package client implements the HTTP calls docpanel makes to the document
// processing backend.
//
// Every call is a single POST (or GET for the listing) with no retries.
// Requests carry an X-Request-ID so backend logs can be matched with the
// docpanel session log.
package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"

	"github.com/weversonbarbieri/accountant-pdf-extract/iox"
	"github.com/weversonbarbieri/accountant-pdf-extract/log"
	"github.com/weversonbarbieri/accountant-pdf-extract/metrics"
	"github.com/weversonbarbieri/accountant-pdf-extract/types"
)

// DefaultTimeout is the default per-request timeout. PDF extraction runs
// synchronously on the server and can take several minutes.
const DefaultTimeout = 30 * time.Minute

// maxResponseBytes caps how much of a reply body is read.
const maxResponseBytes = 32 << 20

// Endpoint paths.
const (
	PathIndex   = "/"
	PathUpload  = "/upload"
	PathProcess = "/processar"
	PathPDF     = "/processar-pdf"
	PathDelete  = "/excluir-arquivo"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// Config configures the backend client.
type Config struct {
	// BaseURL is the backend root, e.g. http://127.0.0.1:5000 (required).
	BaseURL string
	// Timeout is the per-request timeout (default 30m).
	Timeout time.Duration
	// Headers are custom HTTP headers added to each request.
	Headers map[string]string
	// PDFMode selects the /processar-pdf variant (default single).
	PDFMode types.PDFMode
	// ListPath is the page listing server-side JSON files (default "/").
	ListPath string
}

// Client talks to the document processing backend.
type Client struct {
	config  Config
	base    *url.URL
	http    *http.Client
	logger  *log.Logger
	metrics *metrics.Collector
}

// New creates a client from the given config. logger and m may be nil.
func New(cfg Config, logger *log.Logger, m *metrics.Collector) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("client requires a base URL")
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", cfg.BaseURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL %q: scheme must be http or https", cfg.BaseURL)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.PDFMode == "" {
		cfg.PDFMode = types.PDFModeSingle
	}
	if !cfg.PDFMode.Valid() {
		return nil, fmt.Errorf("invalid pdf mode %q (must be single or batch)", cfg.PDFMode)
	}
	if cfg.ListPath == "" {
		cfg.ListPath = PathIndex
	}
	if logger == nil {
		logger = log.Nop()
	}

	return &Client{
		config:  cfg,
		base:    base,
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
		metrics: m,
	}, nil
}

// PDFMode returns the configured /processar-pdf variant.
func (c *Client) PDFMode() types.PDFMode {
	return c.config.PDFMode
}

// Upload sends the staged files to /upload under the files[] field.
func (c *Client) Upload(ctx context.Context, files []types.StagedFile) (*types.UploadResponse, error) {
	var out types.UploadResponse
	sent, err := c.postMultipart(ctx, metrics.EndpointUpload, PathUpload, types.UploadField, files, &out)
	if err != nil {
		return nil, err
	}
	if out.Success {
		c.metrics.AddUpload(len(files), sent)
	}
	return &out, nil
}

// Process asks the backend to convert server-side JSON files.
func (c *Client) Process(ctx context.Context, names []string) (*types.ProcessResponse, error) {
	var out types.ProcessResponse
	if err := c.postJSON(ctx, metrics.EndpointProcess, PathProcess, types.ProcessRequest{Files: names}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ProcessPDF sends PDFs for extraction. In single mode only the first
// file is sent.
func (c *Client) ProcessPDF(ctx context.Context, files []types.StagedFile) (*types.PDFResponse, error) {
	if c.config.PDFMode == types.PDFModeSingle && len(files) > 1 {
		files = files[:1]
	}
	var out types.PDFResponse
	if _, err := c.postMultipart(ctx, metrics.EndpointPDF, PathPDF, c.config.PDFMode.Field(), files, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteFile removes a server-side file.
func (c *Client) DeleteFile(ctx context.Context, name string) (*types.DeleteResponse, error) {
	var out types.DeleteResponse
	if err := c.postJSON(ctx, metrics.EndpointDelete, PathDelete, types.DeleteRequest{File: name}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Close releases idle connections.
func (c *Client) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *Client) endpoint(path string) string {
	return c.base.JoinPath(path).String()
}

func (c *Client) postJSON(ctx context.Context, op, path string, in, out any) error {
	body, err := sonic.Marshal(in)
	if err != nil {
		return c.transportError(op, fmt.Errorf("marshal request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path), bytes.NewReader(body))
	if err != nil {
		return c.transportError(op, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return c.doJSON(op, req, out)
}

// transportError counts a failure raised before any request was sent.
func (c *Client) transportError(op string, err error) error {
	c.metrics.IncTransportError()
	return &TransportError{Op: op, Err: err}
}

// doJSON performs req and decodes the JSON reply into out.
// A reply that decodes is returned regardless of its status code; the
// backend reports failures in the body.
func (c *Client) doJSON(op string, req *http.Request, out any) error {
	resp, err := c.do(op, req)
	if err != nil {
		return err
	}
	defer iox.DiscardClose(resp.Body)

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		c.metrics.IncTransportError()
		return &TransportError{Op: op, Err: fmt.Errorf("read response: %w", err)}
	}

	if err := sonic.Unmarshal(data, out); err != nil {
		c.metrics.IncTransportError()
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return &TransportError{Op: op, Err: &StatusError{Code: resp.StatusCode, Status: resp.Status}}
		}
		return &TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// do sends req with the common headers and logs the exchange.
func (c *Client) do(op string, req *http.Request) (*http.Response, error) {
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set("User-Agent", types.UserAgent)
	for k, v := range c.config.Headers {
		req.Header.Set(k, v)
	}

	c.metrics.IncRequest(op)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.IncTransportError()
		c.logger.Warn("request failed", map[string]any{
			"op":          op,
			"request_id":  requestID,
			"url":         req.URL.String(),
			"duration_ms": time.Since(start).Milliseconds(),
			"error":       err.Error(),
		})
		return nil, &TransportError{Op: op, Err: err}
	}

	c.logger.Info("request completed", map[string]any{
		"op":          op,
		"request_id":  requestID,
		"url":         req.URL.String(),
		"status":      resp.StatusCode,
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return resp, nil
}
