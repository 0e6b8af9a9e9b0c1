package cacheport

import "context"

// Chaves de cache em uso. Cada componente de estado é dono exclusivo da sua
// chave; nenhum lock entre componentes é necessário, apenas a garantia de que
// escritas em uma mesma chave não se intercalam (responsabilidade do dono).
const (
	KeyAuthUser     = "auth_user"
	KeyTransactions = "transactions"
)

// Port define o contrato do cache persistente local — a fronteira entre o
// estado em memória e o armazenamento durável. O cache é uma sombra do estado
// em memória, nunca a fonte primária durante uma sessão ativa.
//
// Load NUNCA retorna erro ao chamador: ausência, meio indisponível e conteúdo
// malformado são tratados da mesma forma (loga um aviso e reporta ausente),
// de modo que a aplicação sempre alcança um estado inicial determinado.
// Save e Clear são melhor-esforço: falhas são logadas e engolidas.
type Port interface {
	// Load decodifica o JSON persistido sob key em v.
	// Retorna false quando a entrada está ausente ou ilegível.
	Load(ctx context.Context, key string, v interface{}) bool

	// Save persiste v como JSON sob key.
	Save(ctx context.Context, key string, v interface{})

	// Clear remove a entrada sob key, se existir.
	Clear(ctx context.Context, key string)
}
