package cacheport

import (
	"context"
	"encoding/json"
	"sync"

	apperror "farmmarket/internal/errors"
	"farmmarket/internal/pkg/logger"
)

// MemoryPort é a implementação em memória do Port, usada nos testes e no
// modo efêmero (nenhum estado sobrevive ao processo). Guarda os valores já
// serializados para reproduzir fielmente o ciclo de encode/decode dos
// backends duráveis, inclusive o caso de conteúdo corrompido.
type MemoryPort struct {
	mu      sync.Mutex
	entries map[string][]byte
	logger  logger.Logger
}

// NewMemoryPort cria um porto em memória vazio.
func NewMemoryPort(log logger.Logger) *MemoryPort {
	return &MemoryPort{
		entries: make(map[string][]byte),
		logger:  log,
	}
}

func (p *MemoryPort) Load(_ context.Context, key string, v interface{}) bool {
	p.mu.Lock()
	raw, ok := p.entries[key]
	p.mu.Unlock()

	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, v); err != nil {
		p.logger.Warn("Entrada do cache malformada; tratando como ausente.",
			apperror.NewCorruptionError(key, err))
		return false
	}
	return true
}

func (p *MemoryPort) Save(_ context.Context, key string, v interface{}) {
	raw, err := json.Marshal(v)
	if err != nil {
		p.logger.Warn("Falha ao serializar valor para o cache.",
			apperror.NewInternalError("marshal de entrada do cache", err))
		return
	}

	p.mu.Lock()
	p.entries[key] = raw
	p.mu.Unlock()
}

func (p *MemoryPort) Clear(_ context.Context, key string) {
	p.mu.Lock()
	delete(p.entries, key)
	p.mu.Unlock()
}

// Corrupt grava bytes arbitrários sob a chave, sem passar pelo marshal.
// Existe para os testes exercitarem a política de corrupção.
func (p *MemoryPort) Corrupt(key string, raw []byte) {
	p.mu.Lock()
	p.entries[key] = raw
	p.mu.Unlock()
}
