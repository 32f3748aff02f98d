package view

import (
	"fmt"

	"github.com/weversonbarbieri/accountant-pdf-extract/types"
)

// Placeholder and fixed texts shown in the results area.
const (
	PlaceholderNoResultsYet = "No results yet. Select and process files."
	PlaceholderNoResults    = "No results returned."

	CommunicationErrorTitle  = "Communication error"
	CommunicationErrorDetail = "Ocorreu um erro na comunicação com o servidor. Por favor, tente novamente mais tarde. " +
		"(The server could not be reached. Please try again later.)"

	PDFErrorTitle       = "Processing error"
	PDFUnknownErrorText = "Ocorreu um erro desconhecido. (An unknown error occurred.)"
)

// ResultCard summarises one file's processing outcome.
type ResultCard struct {
	Title     string             `json:"title" yaml:"title"`
	Status    types.ResultStatus `json:"status" yaml:"status"`
	Message   string             `json:"message" yaml:"message"`
	ErrorKind types.ErrorKind    `json:"error_kind,omitempty" yaml:"error_kind,omitempty"`
	Help      *ErrorHelp         `json:"help,omitempty" yaml:"help,omitempty"`
	Artifacts []string           `json:"artifacts,omitempty" yaml:"artifacts,omitempty"`
	Detail    string             `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// Failed reports whether the card carries an error badge.
func (c ResultCard) Failed() bool {
	return c.Status != types.StatusSuccess
}

// ResultsView is the content of a results area. When Cards is empty the
// Placeholder is shown instead.
type ResultsView struct {
	Heading     string       `json:"heading,omitempty" yaml:"heading,omitempty"`
	Cards       []ResultCard `json:"cards" yaml:"cards"`
	Placeholder string       `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
}

// Empty reports whether the view has no cards.
func (v ResultsView) Empty() bool {
	return len(v.Cards) == 0
}

// Counts returns the number of successful and failed cards.
func (v ResultsView) Counts() (success, failed int) {
	for _, c := range v.Cards {
		if c.Failed() {
			failed++
		} else {
			success++
		}
	}
	return success, failed
}

// InitialResults is the results area before anything was processed.
func InitialResults() ResultsView {
	return ResultsView{Placeholder: PlaceholderNoResultsYet}
}

// ResultsFromProcess builds one card per /processar result.
func ResultsFromProcess(resp *types.ProcessResponse) ResultsView {
	if resp == nil || len(resp.Results) == 0 {
		return ResultsView{Placeholder: PlaceholderNoResults}
	}

	cards := make([]ResultCard, 0, len(resp.Results))
	for _, r := range resp.Results {
		status := r.Status
		if status != types.StatusSuccess {
			status = types.StatusError
		}
		cards = append(cards, ResultCard{
			Title:     r.Title(),
			Status:    status,
			Message:   r.Message,
			ErrorKind: r.ErrorKind,
			Help:      HelpFor(r.ErrorKind),
			Artifacts: r.Artifacts,
		})
	}
	return ResultsView{Heading: "Processing results", Cards: cards}
}

// CommunicationError is the generic card shown when a request fails in transport.
func CommunicationError(err error) ResultsView {
	msg := "request failed"
	if err != nil {
		msg = err.Error()
	}
	return ResultsView{
		Cards: []ResultCard{{
			Title:   CommunicationErrorTitle,
			Status:  types.StatusError,
			Message: "Error processing files: " + msg,
			Detail:  CommunicationErrorDetail,
		}},
	}
}

// PDFView is the result panel swapped in after PDF processing.
type PDFView struct {
	Success        bool         `json:"success" yaml:"success"`
	Heading        string       `json:"heading" yaml:"heading"`
	ProcessingTime string       `json:"processing_time,omitempty" yaml:"processing_time,omitempty"`
	Cards          []ResultCard `json:"cards" yaml:"cards"`
	Artifacts      []string     `json:"artifacts,omitempty" yaml:"artifacts,omitempty"`
}

// PDFResult builds the result panel from a /processar-pdf reply.
func PDFResult(resp *types.PDFResponse) PDFView {
	if resp == nil {
		return pdfFailure("", "")
	}
	if !resp.Success {
		return pdfFailure(resp.Message, resp.Detail)
	}
	if resp.IsBatch() {
		return pdfBatch(resp)
	}

	return PDFView{
		Success:        true,
		Heading:        "Processing complete",
		ProcessingTime: FormatProcessingTime(resp.ProcessingTime),
		Cards: []ResultCard{{
			Title:     resp.FileName,
			Status:    types.StatusSuccess,
			Message:   resp.Message,
			Artifacts: resp.JSONFiles,
		}},
		Artifacts: resp.Artifacts(),
	}
}

func pdfBatch(resp *types.PDFResponse) PDFView {
	total := resp.TotalProcessed
	if total == 0 {
		total = len(resp.Results)
	}

	cards := make([]ResultCard, 0, len(resp.Results))
	for _, r := range resp.Results {
		card := ResultCard{
			Title:   r.FileName,
			Status:  types.StatusSuccess,
			Message: r.Message,
		}
		if r.Success {
			card.Artifacts = r.JSONFiles
		} else {
			card.Status = types.StatusError
			card.Detail = r.Detail
		}
		cards = append(cards, card)
	}

	return PDFView{
		Success:   true,
		Heading:   fmt.Sprintf("Processing results (%d files)", total),
		Cards:     cards,
		Artifacts: resp.Artifacts(),
	}
}

func pdfFailure(message, detail string) PDFView {
	if message == "" {
		message = PDFUnknownErrorText
	}
	return PDFView{
		Heading: PDFErrorTitle,
		Cards: []ResultCard{{
			Title:   PDFErrorTitle,
			Status:  types.StatusError,
			Message: message,
			Detail:  detail,
		}},
	}
}

// PDFCommunicationError is the PDF panel shown when the request fails in transport.
func PDFCommunicationError(err error) PDFView {
	rv := CommunicationError(err)
	return PDFView{Heading: CommunicationErrorTitle, Cards: rv.Cards}
}
