package cacheport

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	apperror "farmmarket/internal/errors"
	"farmmarket/internal/pkg/logger"
)

// FilePort é a implementação padrão do Port: um arquivo JSON por chave
// dentro de um diretório. Espelha a semântica do armazenamento do navegador
// que este núcleo substitui — síncrono, local e pequeno.
type FilePort struct {
	dir    string
	logger logger.Logger
}

// NewFilePort cria o porto de arquivo, garantindo que o diretório exista.
// Se o diretório não puder ser criado, o porto ainda é retornado: todas as
// operações degradam para "ausente" conforme a política de corrupção.
func NewFilePort(dir string, log logger.Logger) *FilePort {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Warn("Cache em arquivo indisponível; operando como vazio.", err)
	}
	return &FilePort{dir: dir, logger: log}
}

func (p *FilePort) path(key string) string {
	return filepath.Join(p.dir, key+".json")
}

// Load lê e decodifica o arquivo da chave. Arquivo ausente é o caso normal
// de primeira execução; conteúdo ilegível é logado como corrupção.
func (p *FilePort) Load(_ context.Context, key string, v interface{}) bool {
	raw, err := os.ReadFile(p.path(key))
	if err != nil {
		if !os.IsNotExist(err) {
			p.logger.Warn("Falha ao ler entrada do cache; tratando como ausente.",
				apperror.NewCorruptionError(key, err))
		}
		return false
	}

	if err := json.Unmarshal(raw, v); err != nil {
		p.logger.Warn("Entrada do cache malformada; tratando como ausente.",
			apperror.NewCorruptionError(key, err))
		return false
	}
	return true
}

// Save serializa v e grava o arquivo da chave. Melhor-esforço.
func (p *FilePort) Save(_ context.Context, key string, v interface{}) {
	raw, err := json.Marshal(v)
	if err != nil {
		p.logger.Warn("Falha ao serializar valor para o cache.",
			apperror.NewInternalError("marshal de entrada do cache", err))
		return
	}

	if err := os.WriteFile(p.path(key), raw, 0o644); err != nil {
		p.logger.Warn("Falha ao gravar entrada do cache.",
			apperror.NewCorruptionError(key, err))
	}
}

// Clear remove o arquivo da chave. Ausência não é erro.
func (p *FilePort) Clear(_ context.Context, key string) {
	if err := os.Remove(p.path(key)); err != nil && !os.IsNotExist(err) {
		p.logger.Warn("Falha ao remover entrada do cache.",
			apperror.NewCorruptionError(key, err))
	}
}
