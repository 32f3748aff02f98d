package devserver

import (
	"os"

	"github.com/bytedance/sonic"

	"github.com/weversonbarbieri/accountant-pdf-extract/types"
)

// Result messages for /processar.
const (
	msgProcessed   = "Arquivo processado com sucesso"
	msgInvalidJSON = "O arquivo JSON é inválido ou está corrompido."
	msgNoBlocks    = "Nenhum bloco de texto ou par chave-valor foi encontrado no arquivo JSON."
	msgNoData      = "Não foram encontrados dados suficientes para gerar relatórios. Verifique se o arquivo JSON contém blocos válidos."
)

// extraction is the part of an extraction document the classifier reads.
type extraction struct {
	Blocks []struct {
		BlockType string `json:"BlockType"`
		Text      string `json:"Text"`
	} `json:"Blocks"`
}

// dataBlockTypes are the block types a spreadsheet can be built from.
var dataBlockTypes = map[string]bool{
	"LINE":          true,
	"KEY_VALUE_SET": true,
	"TABLE":         true,
}

// classify reports what processing name would produce, without producing it.
func (s *Server) classify(name string) types.ProcessingResult {
	res := types.ProcessingResult{File: name}
	fail := func(kind types.ErrorKind, msg string) types.ProcessingResult {
		res.Status = types.StatusError
		res.ErrorKind = kind
		res.Message = msg
		return res
	}

	path, ok := s.resolve(name)
	if !ok {
		return fail(types.ErrorKindFileNotFound, msgNotFound)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fail(types.ErrorKindGeneric, err.Error())
	}

	var doc extraction
	if err := sonic.Unmarshal(data, &doc); err != nil {
		return fail(types.ErrorKindInvalidJSON, msgInvalidJSON)
	}
	if len(doc.Blocks) == 0 {
		return fail(types.ErrorKindNoBlocks, msgNoBlocks)
	}

	for _, b := range doc.Blocks {
		if dataBlockTypes[b.BlockType] {
			res.Status = types.StatusSuccess
			res.Message = msgProcessed
			return res
		}
	}
	return fail(types.ErrorKindNoData, msgNoData)
}
