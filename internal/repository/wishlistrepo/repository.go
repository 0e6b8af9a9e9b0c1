package wishlistrepo

import (
	"context"
	"fmt"
	"net/url"

	"farmmarket/internal/domain"
	"farmmarket/internal/pkg/logger"
	"farmmarket/internal/pkg/rest"
)

// WishlistRepository dá acesso à coleção remota de listas de desejos
// (/wishlist). O remoto é a fonte de verdade: a coleção em memória do
// sincronizador só muda depois que estas operações confirmam.
type WishlistRepository struct {
	client *rest.Client
	logger logger.Logger
}

// NewWishlistRepository cria uma nova instância do repositório.
func NewWishlistRepository(client *rest.Client, log logger.Logger) *WishlistRepository {
	return &WishlistRepository{client: client, logger: log}
}

// ListByUser busca as entradas do usuário informado.
func (r *WishlistRepository) ListByUser(ctx context.Context, userID string) ([]domain.WishlistEntry, error) {
	r.logger.Debug("Buscando lista de desejos no remoto.",
		map[string]interface{}{"user_id": userID})

	var entries []domain.WishlistEntry
	path := "/wishlist?userId=" + url.QueryEscape(userID)
	if err := r.client.GetJSON(ctx, path, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Create submete uma nova entrada e retorna o registro criado.
// O servidor pode atribuir o ID; o registro retornado é o que vale.
func (r *WishlistRepository) Create(ctx context.Context, entry domain.WishlistEntry) (domain.WishlistEntry, error) {
	r.logger.Debug("Criando entrada de lista de desejos no remoto.",
		map[string]interface{}{"user_id": entry.UserID, "product_id": entry.ProductID})

	var created domain.WishlistEntry
	if err := r.client.PostJSON(ctx, "/wishlist", entry, &created); err != nil {
		return domain.WishlistEntry{}, err
	}
	return created, nil
}

// Delete remove a entrada pelo seu ID.
func (r *WishlistRepository) Delete(ctx context.Context, id string) error {
	r.logger.Debug("Removendo entrada de lista de desejos no remoto.",
		map[string]interface{}{"entry_id": id})

	return r.client.Delete(ctx, fmt.Sprintf("/wishlist/%s", id))
}
