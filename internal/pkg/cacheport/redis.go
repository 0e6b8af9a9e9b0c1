package cacheport

import (
	"context"
	"encoding/json"

	"github.com/go-redis/redis/v8"

	apperror "farmmarket/internal/errors"
	"farmmarket/internal/pkg/logger"
)

// RedisPort é o backend Redis do Port, para instalações em que o estado do
// cliente deve sobreviver fora do sistema de arquivos local. As entradas não
// expiram: o núcleo de estado é quem decide quando limpar cada chave.
type RedisPort struct {
	rdb    *redis.Client
	logger logger.Logger
}

// NewRedisPort cria o porto Redis apontando para addr (e.g. "localhost:6379").
// A conexão é verificada com PING; indisponibilidade vira um aviso, não um
// erro fatal — o porto degrada para "tudo ausente" como os demais backends.
func NewRedisPort(ctx context.Context, addr string, log logger.Logger) *RedisPort {
	rdb := redis.NewClient(&redis.Options{Addr: addr})

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("Redis indisponível; cache operando como vazio.", err)
	}

	return &RedisPort{rdb: rdb, logger: log}
}

func (p *RedisPort) Load(ctx context.Context, key string, v interface{}) bool {
	raw, err := p.rdb.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			p.logger.Warn("Falha ao ler entrada do cache; tratando como ausente.",
				apperror.NewCorruptionError(key, err))
		}
		return false
	}

	if err := json.Unmarshal([]byte(raw), v); err != nil {
		p.logger.Warn("Entrada do cache malformada; tratando como ausente.",
			apperror.NewCorruptionError(key, err))
		return false
	}
	return true
}

func (p *RedisPort) Save(ctx context.Context, key string, v interface{}) {
	raw, err := json.Marshal(v)
	if err != nil {
		p.logger.Warn("Falha ao serializar valor para o cache.",
			apperror.NewInternalError("marshal de entrada do cache", err))
		return
	}

	if err := p.rdb.Set(ctx, key, raw, 0).Err(); err != nil {
		p.logger.Warn("Falha ao gravar entrada do cache.",
			apperror.NewCorruptionError(key, err))
	}
}

func (p *RedisPort) Clear(ctx context.Context, key string) {
	if err := p.rdb.Del(ctx, key).Err(); err != nil {
		p.logger.Warn("Falha ao remover entrada do cache.",
			apperror.NewCorruptionError(key, err))
	}
}
