package types //nolint:revive // types is a valid package name

import "testing"

func TestPDFMode_Field(t *testing.T) {
	if got := PDFModeSingle.Field(); got != "pdf_file" {
		t.Errorf("single field = %q, want pdf_file", got)
	}
	if got := PDFModeBatch.Field(); got != "pdf_files[]" {
		t.Errorf("batch field = %q, want pdf_files[]", got)
	}
	if PDFMode("zip").Valid() {
		t.Error("unknown mode should not be valid")
	}
}

func TestProcessingResult_Title(t *testing.T) {
	r := ProcessingResult{File: "raw/a.json"}
	if r.Title() != "raw/a.json" {
		t.Errorf("Title() = %q, want file name", r.Title())
	}
	r.DisplayFile = "a.json"
	if r.Title() != "a.json" {
		t.Errorf("Title() = %q, want display name", r.Title())
	}
}

func TestPDFResponse_Artifacts(t *testing.T) {
	tests := []struct {
		name string
		resp *PDFResponse
		want []string
	}{
		{"nil", nil, nil},
		{"failed", &PDFResponse{Success: false, JSONFiles: []string{"x.json"}}, nil},
		{
			name: "single",
			resp: &PDFResponse{Success: true, FileName: "a.pdf", JSONFiles: []string{"a_1.json", "a_2.json"}},
			want: []string{"a_1.json", "a_2.json"},
		},
		{
			name: "batch skips failed entries",
			resp: &PDFResponse{
				Success:        true,
				TotalProcessed: 2,
				Results: []PDFFileResult{
					{FileName: "a.pdf", Success: true, JSONFiles: []string{"a.json"}},
					{FileName: "b.pdf", Success: false, JSONFiles: []string{"b.json"}},
				},
			},
			want: []string{"a.json"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.resp.Artifacts()
			if len(got) != len(tt.want) {
				t.Fatalf("Artifacts() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Artifacts()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestPDFResponse_IsBatch(t *testing.T) {
	if (&PDFResponse{Success: true, FileName: "a.pdf"}).IsBatch() {
		t.Error("single reply reported as batch")
	}
	if !(&PDFResponse{TotalProcessed: 1}).IsBatch() {
		t.Error("batch reply not detected")
	}
}
