package view

import "github.com/weversonbarbieri/accountant-pdf-extract/types"

// ErrorHelp is the fixed explanation attached to a failed result card.
// Each text is given in Portuguese (the backend's language) and English.
type ErrorHelp struct {
	Kind       types.ErrorKind `json:"kind" yaml:"kind"`
	Problem    string          `json:"problem" yaml:"problem"`
	Solution   string          `json:"solution" yaml:"solution"`
	ProblemEN  string          `json:"problem_en" yaml:"problem_en"`
	SolutionEN string          `json:"solution_en" yaml:"solution_en"`
}

var errorHelp = map[types.ErrorKind]ErrorHelp{
	types.ErrorKindNoData: {
		Problem:    "O arquivo JSON não contém dados suficientes para gerar planilhas.",
		Solution:   "Verifique se o arquivo JSON contém blocos de texto válidos com pares chave-valor.",
		ProblemEN:  "The JSON file does not contain enough data to build spreadsheets.",
		SolutionEN: "Check that the JSON file holds valid text blocks with key-value pairs.",
	},
	types.ErrorKindNoBlocks: {
		Problem:    "Não foram encontrados blocos de texto no arquivo.",
		Solution:   "O arquivo JSON parece estar vazio ou não contém o formato esperado.",
		ProblemEN:  "No text blocks were found in the file.",
		SolutionEN: "The JSON file looks empty or is not in the expected format.",
	},
	types.ErrorKindInvalidJSON: {
		Problem:    "O arquivo JSON está em formato inválido.",
		Solution:   "Verifique a sintaxe do arquivo JSON ou gere-o novamente.",
		ProblemEN:  "The JSON file is malformed.",
		SolutionEN: "Check the JSON syntax or generate the file again.",
	},
	types.ErrorKindFileNotFound: {
		Problem:    "O arquivo não foi encontrado no servidor.",
		Solution:   "Verifique se o arquivo existe ou tente fazer upload novamente.",
		ProblemEN:  "The file was not found on the server.",
		SolutionEN: "Check that the file exists or upload it again.",
	},
}

// HelpFor returns the explanation for kind, or nil when the kind has none.
func HelpFor(kind types.ErrorKind) *ErrorHelp {
	h, ok := errorHelp[kind]
	if !ok {
		return nil
	}
	h.Kind = kind
	return &h
}
