package cacheport_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"farmmarket/internal/pkg/cacheport"
)

// Endereço local sem servidor Redis escutando: toda operação falha com
// conexão recusada, exercitando a degradação do porto sem infraestrutura.
const unreachableRedis = "127.0.0.1:1"

// TestRedisPort_UnavailableLoad: com o Redis fora do ar, Load reporta
// ausente — nunca erro, nunca pânico.
func TestRedisPort_UnavailableLoad(t *testing.T) {
	ctx := context.Background()
	port := cacheport.NewRedisPort(ctx, unreachableRedis, quietLogger())

	var got snapshot
	assert.NotPanics(t, func() {
		assert.False(t, port.Load(ctx, cacheport.KeyAuthUser, &got))
	})
	assert.Equal(t, snapshot{}, got)
}

// TestRedisPort_UnavailableSaveClear: Save e Clear são melhor-esforço — a
// falha de conexão é engolida e logada, nada sobe ao chamador.
func TestRedisPort_UnavailableSaveClear(t *testing.T) {
	ctx := context.Background()
	port := cacheport.NewRedisPort(ctx, unreachableRedis, quietLogger())

	assert.NotPanics(t, func() {
		port.Save(ctx, cacheport.KeyAuthUser, snapshot{ID: "u1"})
		port.Clear(ctx, cacheport.KeyAuthUser)
	})

	// E o estado continua determinado: tudo ausente.
	var got snapshot
	assert.False(t, port.Load(ctx, cacheport.KeyAuthUser, &got))
}
