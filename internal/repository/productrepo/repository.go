package productrepo

import (
	"context"
	"fmt"

	"farmmarket/internal/domain"
	"farmmarket/internal/pkg/logger"
	"farmmarket/internal/pkg/rest"
)

// ProductRepository dá acesso ao catálogo remoto de produtos (/products).
// As telas de produto o consomem diretamente; ele existe aqui porque
// compartilha o mesmo cliente remoto das demais camadas de estado.
type ProductRepository struct {
	client *rest.Client
	logger logger.Logger
}

// NewProductRepository cria uma nova instância do repositório de produtos.
func NewProductRepository(client *rest.Client, log logger.Logger) *ProductRepository {
	return &ProductRepository{client: client, logger: log}
}

// List busca o catálogo completo.
func (r *ProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	r.logger.Debug("Buscando catálogo de produtos no remoto.", nil)

	var products []domain.Product
	if err := r.client.GetJSON(ctx, "/products", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Update aplica o registro completo do produto via PATCH.
func (r *ProductRepository) Update(ctx context.Context, id string, product domain.Product) (domain.Product, error) {
	r.logger.Debug("Atualizando produto no remoto.",
		map[string]interface{}{"product_id": id})

	var updated domain.Product
	if err := r.client.PatchJSON(ctx, fmt.Sprintf("/products/%s", id), product, &updated); err != nil {
		return domain.Product{}, err
	}
	return updated, nil
}

// Delete remove o produto do catálogo.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	r.logger.Debug("Removendo produto no remoto.",
		map[string]interface{}{"product_id": id})

	return r.client.Delete(ctx, fmt.Sprintf("/products/%s", id))
}
