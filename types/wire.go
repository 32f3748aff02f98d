package types

// ResultStatus is the per-file outcome reported by /processar.
type ResultStatus string

// Result statuses as sent by the backend.
const (
	StatusSuccess ResultStatus = "Success"
	StatusError   ResultStatus = "Error"
)

// ErrorKind tags a failed result so the UI can pick an explanatory text.
type ErrorKind string

// Error kinds with a fixed help text. Any other value is shown without help.
const (
	ErrorKindNoData       ErrorKind = "no_data"
	ErrorKindNoBlocks     ErrorKind = "no_blocks"
	ErrorKindInvalidJSON  ErrorKind = "invalid_json"
	ErrorKindFileNotFound ErrorKind = "file_not_found"
	ErrorKindGeneric      ErrorKind = "generic_error"
)

// PDFMode selects the /processar-pdf request variant.
type PDFMode string

// PDF request variants.
//   - single: one file under pdf_file, artifacts chosen with a radio list
//   - batch: many files under pdf_files[], artifacts chosen with checkboxes
const (
	PDFModeSingle PDFMode = "single"
	PDFModeBatch  PDFMode = "batch"
)

// Multipart field names.
const (
	UploadField   = "files[]"
	PDFField      = "pdf_file"
	PDFBatchField = "pdf_files[]"
)

// Field returns the multipart field name for the mode.
func (m PDFMode) Field() string {
	if m == PDFModeBatch {
		return PDFBatchField
	}
	return PDFField
}

// Valid reports whether m is a known mode.
func (m PDFMode) Valid() bool {
	return m == PDFModeSingle || m == PDFModeBatch
}

// UploadResponse is the /upload reply.
type UploadResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ProcessRequest is the /processar body.
type ProcessRequest struct {
	Files []string `json:"files"`
}

// ProcessingResult is the server-reported outcome for one file.
type ProcessingResult struct {
	File        string       `json:"file"`
	DisplayFile string       `json:"display_file,omitempty"`
	Message     string       `json:"message"`
	Status      ResultStatus `json:"status"`
	ErrorKind   ErrorKind    `json:"error_kind,omitempty"`
	Artifacts   []string     `json:"artifacts,omitempty"`
}

// Title is the name shown on the result card.
func (r ProcessingResult) Title() string {
	if r.DisplayFile != "" {
		return r.DisplayFile
	}
	return r.File
}

// ProcessResponse is the /processar reply.
type ProcessResponse struct {
	Results []ProcessingResult `json:"results"`
}

// PDFFileResult is one entry of a batch /processar-pdf reply.
type PDFFileResult struct {
	FileName  string   `json:"file_name"`
	Success   bool     `json:"success"`
	Message   string   `json:"message"`
	JSONFiles []string `json:"json_files,omitempty"`
	Detail    string   `json:"detail,omitempty"`
}

// PDFResponse is the /processar-pdf reply. Single-file replies fill the
// top-level fields; batch replies fill Results and TotalProcessed.
type PDFResponse struct {
	Success        bool            `json:"success"`
	FileName       string          `json:"file_name,omitempty"`
	Message        string          `json:"message"`
	ProcessingTime float64         `json:"processing_time,omitempty"`
	JSONFiles      []string        `json:"json_files,omitempty"`
	Detail         string          `json:"detail,omitempty"`
	Results        []PDFFileResult `json:"results,omitempty"`
	TotalProcessed int             `json:"total_processed,omitempty"`
}

// IsBatch reports whether the reply uses the batch shape.
func (r *PDFResponse) IsBatch() bool {
	return r != nil && (len(r.Results) > 0 || r.TotalProcessed > 0)
}

// Artifacts returns every generated JSON file named by the reply, in order.
// Batch entries that failed contribute nothing.
func (r *PDFResponse) Artifacts() []string {
	if r == nil || !r.Success {
		return nil
	}
	if !r.IsBatch() {
		return append([]string(nil), r.JSONFiles...)
	}
	var out []string
	for _, res := range r.Results {
		if res.Success {
			out = append(out, res.JSONFiles...)
		}
	}
	return out
}

// DeleteRequest is the /excluir-arquivo body.
type DeleteRequest struct {
	File string `json:"file"`
}

// DeleteResponse is the /excluir-arquivo reply.
type DeleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
