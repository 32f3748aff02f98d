package devserver

const indexTemplate = "index"

// indexHTML renders the server file list with the markup the page uses:
// one checkbox per file carrying data-filename, plus a delete control.
const indexHTML = `<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="UTF-8">
<title>Processador de Documentos</title>
</head>
<body>
<div class="container">
  <div class="tabs">
    <button class="tab-btn active" data-tab="json-tab">Arquivos JSON</button>
    <button class="tab-btn" data-tab="pdf-tab">Arquivos PDF</button>
  </div>
  <div id="json-tab" class="tab-content active">
    <div class="card">
      <h2>Arquivos disponíveis</h2>
      {{- if .Files }}
      <div class="select-all-container">
        <input type="checkbox" id="select-all">
        <label for="select-all">Selecionar todos</label>
      </div>
      <div class="file-list">
        {{- range $i, $f := .Files }}
        <div class="file-item">
          <input type="checkbox" id="file-{{ $i }}" class="file-checkbox" data-filename="{{ $f }}">
          <label for="file-{{ $i }}" class="file-label">{{ $f }}</label>
          <button type="button" class="btn-icon delete-file" data-filename="{{ $f }}" title="Excluir arquivo">&times;</button>
        </div>
        {{- end }}
      </div>
      {{- else }}
      <p class="no-files">Nenhum arquivo JSON encontrado no diretório.</p>
      {{- end }}
    </div>
  </div>
  <div id="pdf-tab" class="tab-content"></div>
</div>
</body>
</html>
`
