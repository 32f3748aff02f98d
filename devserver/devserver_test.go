package devserver

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/weversonbarbieri/accountant-pdf-extract/client"
	"github.com/weversonbarbieri/accountant-pdf-extract/iox"
	"github.com/weversonbarbieri/accountant-pdf-extract/types"
)

const validDoc = `{"Blocks":[{"BlockType":"PAGE"},{"BlockType":"LINE","Text":"Total"}]}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func newTestServer(t *testing.T, mode types.PDFMode) (string, *client.Client) {
	t.Helper()
	dir := t.TempDir()
	s, err := New(dir, nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)

	c, err := client.New(client.Config{BaseURL: ts.URL, PDFMode: mode}, nil, nil)
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	t.Cleanup(iox.CloseFunc(c))
	return dir, c
}

func TestNew_RequiresDirectory(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "missing"), nil); err == nil {
		t.Error("expected error for missing dir")
	}
	file := writeFile(t, t.TempDir(), "f.json", "{}")
	if _, err := New(file, nil); err == nil {
		t.Error("expected error for a regular file")
	}
}

func TestListFiles(t *testing.T) {
	dir, c := newTestServer(t, types.PDFModeSingle)
	writeFile(t, dir, "b.json", validDoc)
	writeFile(t, dir, "a.json", validDoc)
	writeFile(t, dir, "notes.txt", "x")
	if err := os.Mkdir(filepath.Join(dir, "dir.json"), 0o755); err != nil {
		t.Fatal(err)
	}

	names, err := c.ListFiles(t.Context())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if strings.Join(names, ",") != "a.json,b.json" {
		t.Errorf("names = %v", names)
	}
}

func TestListFiles_Empty(t *testing.T) {
	_, c := newTestServer(t, types.PDFModeSingle)
	names, err := c.ListFiles(t.Context())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("names = %v", names)
	}
}

func TestUpload_StoresJSONOnly(t *testing.T) {
	dir, c := newTestServer(t, types.PDFModeSingle)
	src := t.TempDir()

	var files []types.StagedFile
	for name, content := range map[string]string{"doc.json": validDoc, "skip.txt": "x"} {
		f, err := types.StageFromPath(writeFile(t, src, name, content))
		if err != nil {
			t.Fatal(err)
		}
		files = append(files, f)
	}

	resp, err := c.Upload(t.Context(), files)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if !resp.Success || resp.Message != msgUploaded {
		t.Errorf("resp = %+v", resp)
	}
	got, err := os.ReadFile(filepath.Join(dir, "doc.json"))
	if err != nil || string(got) != validDoc {
		t.Errorf("stored doc.json = %q, %v", got, err)
	}
	if _, err := os.Stat(filepath.Join(dir, "skip.txt")); err == nil {
		t.Error("non-JSON part should be skipped")
	}
}

func TestUpload_NoFiles(t *testing.T) {
	_, c := newTestServer(t, types.PDFModeSingle)
	resp, err := c.Upload(t.Context(), nil)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if resp.Success || resp.Message != msgNoUpload {
		t.Errorf("resp = %+v", resp)
	}
}

func TestUpload_NoJSONSaved(t *testing.T) {
	dir, c := newTestServer(t, types.PDFModeSingle)
	f, err := types.StageFromPath(writeFile(t, t.TempDir(), "notes.txt", "x"))
	if err != nil {
		t.Fatal(err)
	}

	resp, err := c.Upload(t.Context(), []types.StagedFile{f})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if resp.Success || resp.Message != msgNoJSONUpload {
		t.Errorf("resp = %+v", resp)
	}
	if _, err := os.Stat(filepath.Join(dir, "notes.txt")); err == nil {
		t.Error("non-JSON part should not be stored")
	}
}

func TestProcess_Classification(t *testing.T) {
	dir, c := newTestServer(t, types.PDFModeSingle)
	writeFile(t, dir, "ok.json", validDoc)
	writeFile(t, dir, "broken.json", `{"Blocks": [`)
	writeFile(t, dir, "empty.json", `{"Blocks": []}`)
	writeFile(t, dir, "pages.json", `{"Blocks": [{"BlockType":"PAGE"}]}`)

	resp, err := c.Process(t.Context(), []string{"ok.json", "broken.json", "empty.json", "pages.json", "gone.json", "../ok.json"})
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	want := []struct {
		status types.ResultStatus
		kind   types.ErrorKind
	}{
		{types.StatusSuccess, ""},
		{types.StatusError, types.ErrorKindInvalidJSON},
		{types.StatusError, types.ErrorKindNoBlocks},
		{types.StatusError, types.ErrorKindNoData},
		{types.StatusError, types.ErrorKindFileNotFound},
		{types.StatusError, types.ErrorKindFileNotFound},
	}
	if len(resp.Results) != len(want) {
		t.Fatalf("results = %+v", resp.Results)
	}
	for i, w := range want {
		r := resp.Results[i]
		if r.Status != w.status || r.ErrorKind != w.kind {
			t.Errorf("result %d (%s) = %s/%s, want %s/%s", i, r.File, r.Status, r.ErrorKind, w.status, w.kind)
		}
	}
}

func TestProcessPDF_ReportsUnavailable(t *testing.T) {
	for _, mode := range []types.PDFMode{types.PDFModeSingle, types.PDFModeBatch} {
		t.Run(string(mode), func(t *testing.T) {
			_, c := newTestServer(t, mode)
			f, err := types.StageFromPath(writeFile(t, t.TempDir(), "scan.pdf", "%PDF-1.4"))
			if err != nil {
				t.Fatal(err)
			}

			resp, err := c.ProcessPDF(t.Context(), []types.StagedFile{f})
			if err != nil {
				t.Fatalf("process pdf: %v", err)
			}
			if resp.Success || resp.FileName != "scan.pdf" || resp.Detail == "" {
				t.Errorf("resp = %+v", resp)
			}
			if len(resp.Artifacts()) != 0 {
				t.Error("no artifacts expected")
			}
		})
	}
}

func TestDelete(t *testing.T) {
	dir, c := newTestServer(t, types.PDFModeSingle)
	writeFile(t, dir, "a.json", validDoc)

	tests := []struct {
		name    string
		file    string
		success bool
		message string
	}{
		{"existing", "a.json", true, "Arquivo a.json excluído com sucesso"},
		{"already gone", "a.json", false, msgNotFound},
		{"empty name", "", false, msgNoName},
		{"traversal", "../a.json", false, msgNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := c.DeleteFile(t.Context(), tt.file)
			if err != nil {
				t.Fatalf("delete: %v", err)
			}
			if resp.Success != tt.success || resp.Message != tt.message {
				t.Errorf("resp = %+v", resp)
			}
		})
	}
	if _, err := os.Stat(filepath.Join(dir, "a.json")); err == nil {
		t.Error("file should be gone")
	}
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	s, err := New(t.TempDir(), nil)
	if err != nil {
		t.Fatal(err)
	}
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	iox.DiscardClose(resp.Body)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("serve: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
