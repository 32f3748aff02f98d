package client

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"

	"github.com/weversonbarbieri/accountant-pdf-extract/iox"
	"github.com/weversonbarbieri/accountant-pdf-extract/types"
)

// postMultipart streams files from disk as a multipart body under field
// and decodes the JSON reply into out. It returns the number of body
// bytes handed to the transport.
func (c *Client) postMultipart(ctx context.Context, op, path, field string, files []types.StagedFile, out any) (int64, error) {
	for _, f := range files {
		if _, err := os.Stat(f.Path); err != nil {
			return 0, c.transportError(op, fmt.Errorf("read %s: %w", f.Name, err))
		}
	}

	pr, pw := io.Pipe()
	counter := &iox.CountingWriter{W: pw}
	mw := multipart.NewWriter(counter)

	go func() {
		pw.CloseWithError(writeParts(mw, field, files))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path), pr)
	if err != nil {
		iox.DiscardClose(pr)
		return 0, c.transportError(op, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	if err := c.doJSON(op, req, out); err != nil {
		return counter.N(), err
	}
	return counter.N(), nil
}

// writeParts writes one file part per staged file and the closing boundary.
func writeParts(mw *multipart.Writer, field string, files []types.StagedFile) error {
	for _, f := range files {
		if err := writePart(mw, field, f); err != nil {
			return err
		}
	}
	return mw.Close()
}

func writePart(mw *multipart.Writer, field string, f types.StagedFile) error {
	src, err := os.Open(f.Path)
	if err != nil {
		return fmt.Errorf("open %s: %w", f.Name, err)
	}
	defer iox.DiscardClose(src)

	part, err := mw.CreateFormFile(field, f.Name)
	if err != nil {
		return fmt.Errorf("create part for %s: %w", f.Name, err)
	}
	if _, err := io.Copy(part, src); err != nil {
		return fmt.Errorf("write %s: %w", f.Name, err)
	}
	return nil
}
