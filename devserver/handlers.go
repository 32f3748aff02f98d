package devserver

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/weversonbarbieri/accountant-pdf-extract/types"
)

// Reply texts, as sent by the real backend.
const (
	msgNoUpload       = "Nenhum arquivo enviado"
	msgUploaded       = "Arquivos enviados com sucesso"
	msgNoJSONUpload   = "Nenhum arquivo JSON enviado"
	msgNoName         = "Nome do arquivo não fornecido"
	msgNotFound       = "Arquivo não encontrado"
	msgDeletedFmt     = "Arquivo %s excluído com sucesso"
	msgNoPDF          = "Nenhum arquivo PDF enviado"
	msgPDFUnavailable = "Extração de PDF indisponível no servidor de desenvolvimento."
	detailPDF         = "docpanel devserver does not run PDF extraction; point --server at the real backend."
)

func (s *Server) handleIndex(c *gin.Context) {
	files, err := s.listJSON()
	if err != nil {
		s.logger.Error("list files failed", map[string]any{"error": err.Error()})
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	c.HTML(http.StatusOK, indexTemplate, gin.H{"Files": files})
}

// listJSON returns the *.json regular files in the directory, sorted by name.
func (s *Server) listJSON() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() && strings.HasSuffix(e.Name(), types.JSONExt) {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

func (s *Server) handleUpload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil || len(form.File[types.UploadField]) == 0 {
		c.JSON(http.StatusOK, types.UploadResponse{Success: false, Message: msgNoUpload})
		return
	}

	saved := 0
	for _, fh := range form.File[types.UploadField] {
		name := filepath.Base(fh.Filename)
		if name == "." || name == string(filepath.Separator) || !strings.HasSuffix(name, types.JSONExt) {
			continue
		}
		if err := c.SaveUploadedFile(fh, filepath.Join(s.dir, name)); err != nil {
			c.JSON(http.StatusOK, types.UploadResponse{Success: false, Message: err.Error()})
			return
		}
		saved++
	}
	if saved == 0 {
		c.JSON(http.StatusOK, types.UploadResponse{Success: false, Message: msgNoJSONUpload})
		return
	}
	c.JSON(http.StatusOK, types.UploadResponse{Success: true, Message: msgUploaded})
}

func (s *Server) handleProcess(c *gin.Context) {
	var req types.ProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ProcessResponse{})
		return
	}

	results := make([]types.ProcessingResult, 0, len(req.Files))
	for _, name := range req.Files {
		results = append(results, s.classify(name))
	}
	c.JSON(http.StatusOK, types.ProcessResponse{Results: results})
}

func (s *Server) handleProcessPDF(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusOK, types.PDFResponse{Success: false, Message: msgNoPDF})
		return
	}
	files := form.File[types.PDFField]
	if len(files) == 0 {
		files = form.File[types.PDFBatchField]
	}
	if len(files) == 0 {
		c.JSON(http.StatusOK, types.PDFResponse{Success: false, Message: msgNoPDF})
		return
	}

	c.JSON(http.StatusOK, types.PDFResponse{
		Success:  false,
		FileName: filepath.Base(files[0].Filename),
		Message:  msgPDFUnavailable,
		Detail:   detailPDF,
	})
}

func (s *Server) handleDelete(c *gin.Context) {
	var req types.DeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.File == "" {
		c.JSON(http.StatusOK, types.DeleteResponse{Success: false, Message: msgNoName})
		return
	}

	path, ok := s.resolve(req.File)
	if !ok {
		c.JSON(http.StatusOK, types.DeleteResponse{Success: false, Message: msgNotFound})
		return
	}
	if err := os.Remove(path); err != nil {
		msg := err.Error()
		if errors.Is(err, fs.ErrNotExist) {
			msg = msgNotFound
		}
		c.JSON(http.StatusOK, types.DeleteResponse{Success: false, Message: msg})
		return
	}
	c.JSON(http.StatusOK, types.DeleteResponse{Success: true, Message: fmt.Sprintf(msgDeletedFmt, req.File)})
}

// resolve maps a file name to a regular file inside the directory.
// Names with path components are rejected.
func (s *Server) resolve(name string) (string, bool) {
	if name != filepath.Base(name) || name == "." || name == ".." {
		return "", false
	}
	path := filepath.Join(s.dir, name)
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return path, true
}
