// Package metrics provides per-session counters for the docpanel client.
//
// The Collector counts backend requests per endpoint and failures per class
// (user input, server reported, transport). It is a leaf package with no
// internal dependencies. All methods are nil-receiver safe so callers may
// pass a nil *Collector when counting is not wanted.
package metrics

import (
	"maps"
	"sync"
)

// Endpoint names used as counter keys.
const (
	EndpointUpload  = "upload"
	EndpointProcess = "process"
	EndpointPDF     = "process_pdf"
	EndpointDelete  = "delete"
	EndpointList    = "list"
)

// Snapshot is an immutable point-in-time view of the session counters.
// Returned by Collector.Snapshot(). Safe to read concurrently after creation.
type Snapshot struct {
	// Requests sent, keyed by endpoint.
	Requests map[string]int64 `json:"requests" yaml:"requests"`

	// Failure classes
	UserInputErrors      int64 `json:"user_input_errors" yaml:"user_input_errors"`
	ServerReportedErrors int64 `json:"server_reported_errors" yaml:"server_reported_errors"`
	TransportErrors      int64 `json:"transport_errors" yaml:"transport_errors"`

	// Files
	FilesStaged    int64 `json:"files_staged" yaml:"files_staged"`
	FilesRejected  int64 `json:"files_rejected" yaml:"files_rejected"`
	FilesUploaded  int64 `json:"files_uploaded" yaml:"files_uploaded"`
	BytesUploaded  int64 `json:"bytes_uploaded" yaml:"bytes_uploaded"`
	ResultsSuccess int64 `json:"results_success" yaml:"results_success"`
	ResultsError   int64 `json:"results_error" yaml:"results_error"`

	// Dimensions (informational, set at construction)
	SessionID string `json:"session_id" yaml:"session_id"`
	Server    string `json:"server" yaml:"server"`
}

// TotalRequests sums Requests across endpoints.
func (s Snapshot) TotalRequests() int64 {
	var n int64
	for _, v := range s.Requests {
		n += v
	}
	return n
}

// Collector accumulates metrics during a single session.
// Thread-safe via sync.Mutex: the client counts from command goroutines
// while the controller counts from the UI goroutine.
type Collector struct {
	mu sync.Mutex

	requests map[string]int64

	userInputErrors      int64
	serverReportedErrors int64
	transportErrors      int64

	filesStaged    int64
	filesRejected  int64
	filesUploaded  int64
	bytesUploaded  int64
	resultsSuccess int64
	resultsError   int64

	sessionID string
	server    string
}

// NewCollector creates a Collector with dimension labels.
func NewCollector(sessionID, server string) *Collector {
	return &Collector{
		requests:  make(map[string]int64),
		sessionID: sessionID,
		server:    server,
	}
}

// --- Requests ---

// IncRequest records a request sent to endpoint.
func (c *Collector) IncRequest(endpoint string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.requests[endpoint]++
	c.mu.Unlock()
}

// --- Failure classes ---

// IncUserInputError records an operation blocked client-side.
func (c *Collector) IncUserInputError() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.userInputErrors++
	c.mu.Unlock()
}

// IncServerReportedError records a decoded response that signalled failure.
func (c *Collector) IncServerReportedError() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.serverReportedErrors++
	c.mu.Unlock()
}

// IncTransportError records a rejected, timed out or undecodable request.
func (c *Collector) IncTransportError() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.transportErrors++
	c.mu.Unlock()
}

// --- Files ---

// AddFilesStaged records n files accepted into staging.
func (c *Collector) AddFilesStaged(n int) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.filesStaged += int64(n)
	c.mu.Unlock()
}

// AddFilesRejected records n files dropped by the extension filter.
func (c *Collector) AddFilesRejected(n int) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.filesRejected += int64(n)
	c.mu.Unlock()
}

// AddUpload records a completed upload body of files totalling bytes.
func (c *Collector) AddUpload(files int, bytes int64) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.filesUploaded += int64(files)
	c.bytesUploaded += bytes
	c.mu.Unlock()
}

// AddResults records per-file processing outcomes.
func (c *Collector) AddResults(success, failed int) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.resultsSuccess += int64(success)
	c.resultsError += int64(failed)
	c.mu.Unlock()
}

// --- Snapshot ---

// Snapshot returns an immutable point-in-time view of all metrics.
// The returned Snapshot is safe to read concurrently; the Collector can
// continue to be mutated independently.
func (c *Collector) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	return Snapshot{
		Requests: maps.Clone(c.requests),

		UserInputErrors:      c.userInputErrors,
		ServerReportedErrors: c.serverReportedErrors,
		TransportErrors:      c.transportErrors,

		FilesStaged:    c.filesStaged,
		FilesRejected:  c.filesRejected,
		FilesUploaded:  c.filesUploaded,
		BytesUploaded:  c.bytesUploaded,
		ResultsSuccess: c.resultsSuccess,
		ResultsError:   c.resultsError,

		SessionID: c.sessionID,
		Server:    c.server,
	}
}
